package pggateway

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

// Dispatch rejects unknown tools and invalid arguments before touching
// the pool, so a zero-value Gateway is enough for these tests.

func TestDispatch_UnknownTool(t *testing.T) {
	t.Parallel()
	g := &Gateway{}

	env, err := g.Dispatch(context.Background(), "drop_database", nil)
	if env != nil {
		t.Fatalf("expected nil envelope, got %#v", env)
	}
	var unknownErr *UnknownToolError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected *UnknownToolError, got %T: %v", err, err)
	}
	if unknownErr.Tool != "drop_database" {
		t.Fatalf("expected tool name 'drop_database', got %q", unknownErr.Tool)
	}
}

func TestDispatch_QueryMissingRequiredArg(t *testing.T) {
	t.Parallel()
	g := &Gateway{}

	_, err := g.Dispatch(context.Background(), KindQuery, map[string]any{"schema": "public"})
	if err == nil {
		t.Fatal("expected error for missing query parameter")
	}
	var unknownErr *UnknownToolError
	if errors.As(err, &unknownErr) {
		t.Fatalf("argument error must not be an UnknownToolError: %v", err)
	}
}

func TestDispatch_DescribeTableMissingRequiredArg(t *testing.T) {
	t.Parallel()
	g := &Gateway{}

	_, err := g.Dispatch(context.Background(), KindDescribeTable, map[string]any{})
	if err == nil {
		t.Fatal("expected error for missing tableName parameter")
	}
}

func TestDispatch_QueryMaxRowsWrongType(t *testing.T) {
	t.Parallel()
	g := &Gateway{}

	_, err := g.Dispatch(context.Background(), KindQuery, map[string]any{
		"query":   "SELECT 1",
		"maxRows": "five",
	})
	if err == nil {
		t.Fatal("expected error for non-numeric maxRows")
	}
}

func TestRequireStringArg(t *testing.T) {
	t.Parallel()
	if _, err := requireStringArg(map[string]any{}, "query"); err == nil {
		t.Fatal("expected error for absent key")
	}
	if _, err := requireStringArg(map[string]any{"query": ""}, "query"); err == nil {
		t.Fatal("expected error for empty string")
	}
	if _, err := requireStringArg(map[string]any{"query": 42}, "query"); err == nil {
		t.Fatal("expected error for non-string value")
	}
	got, err := requireStringArg(map[string]any{"query": "SELECT 1"}, "query")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "SELECT 1" {
		t.Fatalf("expected 'SELECT 1', got %q", got)
	}
}

func TestNumberArg(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		args    map[string]any
		want    int
		wantErr bool
	}{
		{name: "absent", args: map[string]any{}, want: 0},
		{name: "nil", args: map[string]any{"maxRows": nil}, want: 0},
		{name: "float64", args: map[string]any{"maxRows": float64(7)}, want: 7},
		{name: "int", args: map[string]any{"maxRows": 7}, want: 7},
		{name: "json.Number", args: map[string]any{"maxRows": json.Number("7")}, want: 7},
		{name: "string", args: map[string]any{"maxRows": "7"}, wantErr: true},
		{name: "bool", args: map[string]any{"maxRows": true}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := numberArg(tt.args, "maxRows")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestStringArg(t *testing.T) {
	t.Parallel()
	if got := stringArg(map[string]any{"schema": "sales"}, "schema"); got != "sales" {
		t.Fatalf("expected 'sales', got %q", got)
	}
	if got := stringArg(map[string]any{}, "schema"); got != "" {
		t.Fatalf("expected empty string for absent key, got %q", got)
	}
	if got := stringArg(map[string]any{"schema": 1}, "schema"); got != "" {
		t.Fatalf("expected empty string for non-string value, got %q", got)
	}
}
