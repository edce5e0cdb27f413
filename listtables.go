package pggateway

import (
	"context"
	"fmt"
	"time"
)

// Table metadata for one schema, ordered by name. The pattern variant
// adds a LIKE condition on the table name as a second bound parameter.
const listTablesSQL = `
SELECT t.table_name, t.table_type
FROM information_schema.tables t
WHERE t.table_schema = $1
ORDER BY t.table_name;
`

const listTablesPatternSQL = `
SELECT t.table_name, t.table_type
FROM information_schema.tables t
WHERE t.table_schema = $1
  AND t.table_name LIKE $2
ORDER BY t.table_name;
`

// ListTables executes the list_tables tool and always returns an
// envelope. Pattern matching follows LIKE semantics (e.g. "%user%").
func (g *Gateway) ListTables(ctx context.Context, req ListTablesRequest) Envelope {
	startTime := time.Now()
	schema := g.resolveSchema(req.Schema)

	var pattern *string
	if req.Pattern != "" {
		pattern = &req.Pattern
	}

	fail := func(err error) Envelope {
		g.logger.Error().Err(err).Str("tool", KindListTables).Msg("list_tables failed")
		return ListFailure{
			Kind:    KindListTables,
			Success: false,
			Schema:  schema,
			Pattern: pattern,
			Error:   errorDetail(err),
		}
	}

	release, err := g.acquireSlot(ctx)
	if err != nil {
		return fail(err)
	}
	defer release()

	queryCtx, cancel := context.WithTimeout(ctx, time.Duration(g.config.Query.ListTablesTimeoutSeconds)*time.Second)
	defer cancel()

	conn, err := g.pool.Acquire(queryCtx)
	if err != nil {
		return fail(fmt.Errorf("failed to acquire connection: %w", err))
	}
	defer conn.Release()

	sql := listTablesSQL
	args := []any{schema}
	if pattern != nil {
		sql = listTablesPatternSQL
		args = append(args, *pattern)
	}

	rows, err := conn.Query(queryCtx, sql, args...)
	if err != nil {
		return fail(err)
	}
	defer rows.Close()

	tables := make([]TableDescriptor, 0)
	for rows.Next() {
		var name, tableType string
		if err := rows.Scan(&name, &tableType); err != nil {
			return fail(fmt.Errorf("failed to scan table: %w", err))
		}
		tables = append(tables, TableDescriptor{
			Position:      len(tables) + 1,
			Name:          name,
			Type:          mapTableType(tableType),
			QualifiedName: schema + "." + name,
		})
	}
	if err := rows.Err(); err != nil {
		return fail(err)
	}

	g.logger.Info().
		Str("schema", schema).
		Dur("duration", time.Since(startTime)).
		Int("table_count", len(tables)).
		Bool("pattern_applied", pattern != nil).
		Msg("list_tables executed")

	return ListSuccess{
		Kind:     KindListTables,
		Success:  true,
		Schema:   schema,
		Pattern:  pattern,
		Tables:   tables,
		Metadata: ListMetadata{
			TableCount:     len(tables),
			Found:          len(tables) > 0,
			PatternApplied: pattern != nil,
		},
	}
}

// mapTableType maps information_schema table_type values to the envelope
// vocabulary.
func mapTableType(t string) string {
	switch t {
	case "BASE TABLE":
		return "table"
	case "VIEW":
		return "view"
	case "FOREIGN", "FOREIGN TABLE":
		return "foreign_table"
	case "LOCAL TEMPORARY":
		return "temporary_table"
	default:
		return t
	}
}
