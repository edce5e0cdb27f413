package pggateway

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"net"
	"net/netip"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Query executes the query tool and always returns an envelope: any
// failure (driver error, pool exhaustion, timeout) is absorbed into a
// QueryFailure carrying the original text and resolved schema/context,
// never surfaced as a Go error.
//
// The request text is executed verbatim with no bound parameters, plus an
// optional trailing LIMIT clause from augmentQuery. This asymmetry with
// the introspection tools is a deliberate trust boundary: the query
// tool's text is the caller's own SQL.
func (g *Gateway) Query(ctx context.Context, req QueryRequest) Envelope {
	startTime := time.Now()
	schema := g.resolveSchema(req.Schema)
	queryContext := req.Context
	if queryContext == "" {
		queryContext = g.config.Defaults.Context
	}

	fail := func(err error) Envelope {
		g.logger.Error().Err(err).Str("tool", KindQuery).Msg("query failed")
		return QueryFailure{
			Kind:    KindQuery,
			Success: false,
			Query:   req.Query,
			Schema:  schema,
			Context: queryContext,
			Error:   errorDetail(err),
		}
	}

	if len(req.Query) > g.config.Query.MaxSQLLength {
		return fail(fmt.Errorf("SQL query too long: %d bytes exceeds maximum of %d bytes", len(req.Query), g.config.Query.MaxSQLLength))
	}

	// Resolve effective row limit: request override, else configured
	// default. An explicit non-positive override suppresses augmentation
	// rather than falling back to the default; only an absent maxRows
	// (zero) resolves to the configured value.
	limit := req.MaxRows
	if limit == 0 {
		limit = g.config.Defaults.MaxRows
	}
	finalQuery, wasLimited := augmentQuery(req.Query, limit)

	// Acquire semaphore (respects context cancellation to prevent deadlock)
	release, err := g.acquireSlot(ctx)
	if err != nil {
		return fail(err)
	}
	defer release()

	// Per-call deadline, resolved through pattern rules.
	execTimeout, timeoutRule := g.timeoutMgr.GetTimeoutWithPattern(finalQuery)
	queryCtx, cancel := context.WithTimeout(ctx, execTimeout)
	defer cancel()

	conn, err := g.pool.Acquire(queryCtx)
	if err != nil {
		return fail(err)
	}
	defer conn.Release()

	rows, err := conn.Query(queryCtx, finalQuery)
	if err != nil {
		return fail(err)
	}

	fields, resultRows, commandTag, err := collectRows(rows)
	if err != nil {
		return fail(err)
	}

	if msg := oversizedResult(resultRows, g.config.Query.MaxResultLength); msg != "" {
		return fail(fmt.Errorf("%s", msg))
	}

	limitApplied := 0
	if wasLimited {
		limitApplied = limit
	}

	logEvent := g.logger.Info().
		Str("sql", truncateForLog(finalQuery, 200)).
		Dur("duration", time.Since(startTime)).
		Int("row_count", len(resultRows)).
		Bool("was_limited", wasLimited)
	if timeoutRule != "" {
		logEvent = logEvent.Str("timeout_rule", timeoutRule)
	}
	logEvent.Msg("query executed")

	return QuerySuccess{
		Kind:       KindQuery,
		Success:    true,
		Query:      finalQuery,
		Schema:     schema,
		Context:    queryContext,
		CommandTag: commandTag,
		Fields:     fields,
		Rows:       resultRows,
		Metadata: QueryMetadata{
			RowCount:     len(resultRows),
			HasRows:      len(resultRows) > 0,
			WasLimited:   wasLimited,
			LimitApplied: limitApplied,
		},
	}
}

// collectRows drains pgx.Rows into field descriptors and row maps.
func collectRows(rows pgx.Rows) ([]FieldDescriptor, []map[string]any, string, error) {
	defer rows.Close()

	fieldDescs := rows.FieldDescriptions()
	fields := make([]FieldDescriptor, len(fieldDescs))
	for i, fd := range fieldDescs {
		fields[i] = FieldDescriptor{
			Name:         fd.Name,
			DataTypeOID:  fd.DataTypeOID,
			TypeSize:     fd.DataTypeSize,
			TypeModifier: fd.TypeModifier,
		}
	}

	resultRows := make([]map[string]any, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, nil, "", err
		}
		row := make(map[string]any, len(fields))
		for i, fd := range fields {
			row[fd.Name] = convertValue(values[i])
		}
		resultRows = append(resultRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, "", err
	}

	return fields, resultRows, rows.CommandTag().String(), nil
}

// convertValue converts a pgx-returned value to a JSON-friendly Go type.
func convertValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case float32:
		return convertFloat(float64(val))
	case float64:
		return convertFloat(val)
	case netip.Prefix:
		return val.String()
	case net.HardwareAddr:
		return val.String()
	case pgtype.Time:
		if !val.Valid {
			return nil
		}
		us := val.Microseconds
		hours := us / 3_600_000_000
		us -= hours * 3_600_000_000
		minutes := us / 60_000_000
		us -= minutes * 60_000_000
		seconds := us / 1_000_000
		us -= seconds * 1_000_000
		if us > 0 {
			return fmt.Sprintf("%02d:%02d:%02d.%06d", hours, minutes, seconds, us)
		}
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	case pgtype.Interval:
		if !val.Valid {
			return nil
		}
		parts := []string{}
		if val.Months != 0 {
			years := val.Months / 12
			months := val.Months % 12
			if years != 0 {
				parts = append(parts, fmt.Sprintf("%d year(s)", years))
			}
			if months != 0 {
				parts = append(parts, fmt.Sprintf("%d mon(s)", months))
			}
		}
		if val.Days != 0 {
			parts = append(parts, fmt.Sprintf("%d day(s)", val.Days))
		}
		if val.Microseconds != 0 {
			dur := time.Duration(val.Microseconds) * time.Microsecond
			parts = append(parts, dur.String())
		}
		if len(parts) == 0 {
			return "0"
		}
		return strings.Join(parts, " ")
	case pgtype.Numeric:
		if !val.Valid {
			return nil
		}
		if val.NaN {
			return "NaN"
		}
		if val.InfinityModifier == pgtype.Infinity {
			return "Infinity"
		}
		if val.InfinityModifier == pgtype.NegativeInfinity {
			return "-Infinity"
		}
		b, err := val.MarshalJSON()
		if err != nil {
			return nil
		}
		return string(b)
	case pgtype.Range[any]:
		if !val.Valid {
			return nil
		}
		if val.LowerType == pgtype.Empty {
			return "empty"
		}
		var sb strings.Builder
		if val.LowerType == pgtype.Inclusive {
			sb.WriteByte('[')
		} else {
			sb.WriteByte('(')
		}
		if val.LowerType != pgtype.Unbounded {
			sb.WriteString(fmt.Sprintf("%v", convertValue(val.Lower)))
		}
		sb.WriteByte(',')
		if val.UpperType != pgtype.Unbounded {
			sb.WriteString(fmt.Sprintf("%v", convertValue(val.Upper)))
		}
		if val.UpperType == pgtype.Inclusive {
			sb.WriteByte(']')
		} else {
			sb.WriteByte(')')
		}
		return sb.String()
	case pgtype.Point:
		if !val.Valid {
			return nil
		}
		return fmt.Sprintf("(%g,%g)", val.P.X, val.P.Y)
	case pgtype.Line:
		if !val.Valid {
			return nil
		}
		return fmt.Sprintf("{%g,%g,%g}", val.A, val.B, val.C)
	case pgtype.Lseg:
		if !val.Valid {
			return nil
		}
		return fmt.Sprintf("[(%g,%g),(%g,%g)]", val.P[0].X, val.P[0].Y, val.P[1].X, val.P[1].Y)
	case pgtype.Box:
		if !val.Valid {
			return nil
		}
		return fmt.Sprintf("(%g,%g),(%g,%g)", val.P[0].X, val.P[0].Y, val.P[1].X, val.P[1].Y)
	case pgtype.Path:
		if !val.Valid {
			return nil
		}
		points := make([]string, len(val.P))
		for i, p := range val.P {
			points[i] = fmt.Sprintf("(%g,%g)", p.X, p.Y)
		}
		joined := strings.Join(points, ",")
		if val.Closed {
			return "(" + joined + ")"
		}
		return "[" + joined + "]"
	case pgtype.Polygon:
		if !val.Valid {
			return nil
		}
		points := make([]string, len(val.P))
		for i, p := range val.P {
			points[i] = fmt.Sprintf("(%g,%g)", p.X, p.Y)
		}
		return "(" + strings.Join(points, ",") + ")"
	case pgtype.Circle:
		if !val.Valid {
			return nil
		}
		return fmt.Sprintf("<(%g,%g),%g>", val.P.X, val.P.Y, val.R)
	case pgtype.Bits:
		if !val.Valid {
			return nil
		}
		bits := make([]byte, val.Len)
		for i := int32(0); i < val.Len; i++ {
			byteIdx := i / 8
			bitIdx := 7 - (i % 8)
			if val.Bytes[byteIdx]&(1<<uint(bitIdx)) != 0 {
				bits[i] = '1'
			} else {
				bits[i] = '0'
			}
		}
		return string(bits)
	case [16]byte:
		// UUID
		return fmt.Sprintf("%x-%x-%x-%x-%x", val[0:4], val[4:6], val[6:8], val[8:10], val[10:16])
	case []byte:
		// bytea — base64 encode
		return base64.StdEncoding.EncodeToString(val)
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, v := range val {
			result[k] = convertValue(v)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, v := range val {
			result[i] = convertValue(v)
		}
		return result
	default:
		return val
	}
}

func convertFloat(f float64) any {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	return f
}

// oversizedResult returns a non-empty message when the marshaled rows
// exceed maxLen characters. The rows are dropped rather than partially
// returned; the agent is told to add limits instead.
func oversizedResult(rows []map[string]any, maxLen int) string {
	jsonBytes, _ := json.Marshal(rows)
	n := utf8.RuneCount(jsonBytes)
	if n <= maxLen {
		return ""
	}
	return fmt.Sprintf("result is too long: %d characters exceeds maximum of %d; add limits in your query", n, maxLen)
}

// truncateForLog truncates a string for log output to avoid oversized log entries.
func truncateForLog(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	truncateAt := maxLen
	for truncateAt > 0 && !utf8.RuneStart(s[truncateAt]) {
		truncateAt--
	}
	return s[:truncateAt] + "...[truncated]"
}
