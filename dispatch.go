package pggateway

import (
	"context"
	"encoding/json"
	"fmt"
)

// UnknownToolError reports a dispatch request for a tool that has no
// handler. It is the one failure that crosses the handler boundary as a
// hard error instead of a success=false envelope.
type UnknownToolError struct {
	Tool string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool: %q", e.Tool)
}

// Dispatch routes a tool call by name to the matching handler and returns
// its envelope unchanged. An unrecognized name returns *UnknownToolError;
// a missing or mistyped required argument returns an argument error. Both
// are fatal to the individual call and surfaced to the protocol runtime,
// never absorbed into an envelope. Every other failure comes back as a
// success=false envelope with a nil error.
func (g *Gateway) Dispatch(ctx context.Context, tool string, args map[string]any) (Envelope, error) {
	switch tool {
	case KindQuery:
		query, err := requireStringArg(args, "query")
		if err != nil {
			return nil, err
		}
		maxRows, err := numberArg(args, "maxRows")
		if err != nil {
			return nil, err
		}
		return g.Query(ctx, QueryRequest{
			Query:   query,
			Schema:  stringArg(args, "schema"),
			Context: stringArg(args, "context"),
			MaxRows: maxRows,
		}), nil
	case KindDescribeTable:
		table, err := requireStringArg(args, "tableName")
		if err != nil {
			return nil, err
		}
		return g.DescribeTable(ctx, DescribeTableRequest{
			TableName: table,
			Schema:    stringArg(args, "schema"),
		}), nil
	case KindListTables:
		return g.ListTables(ctx, ListTablesRequest{
			Schema:  stringArg(args, "schema"),
			Pattern: stringArg(args, "pattern"),
		}), nil
	default:
		return nil, &UnknownToolError{Tool: tool}
	}
}

// stringArg returns the named argument as a string, or "" when absent or
// not a string.
func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

// requireStringArg returns the named argument as a non-empty string, or
// an argument error.
func requireStringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("%s parameter is required", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("%s parameter must be a non-empty string", key)
	}
	return s, nil
}

// numberArg returns the named argument as an int. JSON decoding may hand
// the value over as float64 or json.Number depending on the transport.
func numberArg(args map[string]any, key string) (int, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return 0, nil
	}
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%s parameter must be a number", key)
		}
		return int(i), nil
	default:
		return 0, fmt.Errorf("%s parameter must be a number", key)
	}
}
