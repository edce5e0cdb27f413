package pggateway

import (
	"context"
	"fmt"
	"time"
)

// Column metadata for a single table, schema and table bound as
// parameters, ordered by ordinal position.
const describeColumnsSQL = `
SELECT
    c.column_name,
    c.data_type,
    CASE c.is_nullable WHEN 'YES' THEN true ELSE false END AS nullable,
    c.column_default,
    c.character_maximum_length,
    c.numeric_precision,
    c.numeric_scale
FROM information_schema.columns c
WHERE c.table_schema = $1
  AND c.table_name = $2
ORDER BY c.ordinal_position;
`

// DescribeTable executes the describe_table tool and always returns an
// envelope. A table with no matching columns (nonexistent table or wrong
// schema) yields a success envelope with zero columns and found=false,
// not a failure.
func (g *Gateway) DescribeTable(ctx context.Context, req DescribeTableRequest) Envelope {
	startTime := time.Now()
	schema := g.resolveSchema(req.Schema)

	fail := func(err error) Envelope {
		g.logger.Error().Err(err).Str("tool", KindDescribeTable).Msg("describe_table failed")
		return DescribeFailure{
			Kind:    KindDescribeTable,
			Success: false,
			Table:   req.TableName,
			Schema:  schema,
			Error:   errorDetail(err),
		}
	}

	release, err := g.acquireSlot(ctx)
	if err != nil {
		return fail(err)
	}
	defer release()

	queryCtx, cancel := context.WithTimeout(ctx, time.Duration(g.config.Query.DescribeTableTimeoutSeconds)*time.Second)
	defer cancel()

	conn, err := g.pool.Acquire(queryCtx)
	if err != nil {
		return fail(fmt.Errorf("failed to acquire connection: %w", err))
	}
	defer conn.Release()

	rows, err := conn.Query(queryCtx, describeColumnsSQL, schema, req.TableName)
	if err != nil {
		return fail(err)
	}
	defer rows.Close()

	columns := make([]ColumnDescriptor, 0)
	for rows.Next() {
		var col ColumnDescriptor
		if err := rows.Scan(&col.Name, &col.DataType, &col.Nullable, &col.Default, &col.MaxLength, &col.Precision, &col.Scale); err != nil {
			return fail(fmt.Errorf("failed to scan column: %w", err))
		}
		col.Position = len(columns) + 1
		col.FullType = fullTypeName(col.DataType, col.MaxLength, col.Precision, col.Scale)
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return fail(err)
	}

	g.logger.Info().
		Str("schema", schema).
		Str("table", req.TableName).
		Dur("duration", time.Since(startTime)).
		Int("column_count", len(columns)).
		Msg("describe_table executed")

	return DescribeSuccess{
		Kind:          KindDescribeTable,
		Success:       true,
		Table:         req.TableName,
		Schema:        schema,
		QualifiedName: schema + "." + req.TableName,
		Columns:       columns,
		Metadata: DescribeMetadata{
			ColumnCount: len(columns),
			Found:       len(columns) > 0,
		},
	}
}

// fullTypeName derives the human-readable full type: the base type plus
// a (length) suffix for character types, or a (precision[,scale]) suffix
// for numeric/decimal. Types whose names already carry their qualifiers
// (e.g. "timestamp without time zone") pass through unchanged.
func fullTypeName(dataType string, maxLength, precision, scale *int) string {
	switch {
	case maxLength != nil:
		return fmt.Sprintf("%s(%d)", dataType, *maxLength)
	case (dataType == "numeric" || dataType == "decimal") && precision != nil:
		if scale != nil && *scale > 0 {
			return fmt.Sprintf("%s(%d,%d)", dataType, *precision, *scale)
		}
		return fmt.Sprintf("%s(%d)", dataType, *precision)
	default:
		return dataType
	}
}
