package pggateway_test

import (
	"context"
	"os"
	"testing"

	pggateway "github.com/pggateway/pggateway"
	"github.com/rickchristie/govner/pgflock/client"
	"github.com/rs/zerolog"
)

const (
	pgflockLockerPort = 9776
	pgflockPassword   = "pgflock"
)

func acquireTestDB(t *testing.T) string {
	t.Helper()
	connStr, err := client.Lock(pgflockLockerPort, t.Name(), pgflockPassword)
	if err != nil {
		t.Fatalf("Failed to acquire test database: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Unlock(pgflockLockerPort, pgflockPassword, connStr)
	})
	return connStr
}

func testLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).Level(zerolog.Disabled)
}

func defaultConfig() pggateway.Config {
	return pggateway.Config{
		Pool: pggateway.PoolConfig{MaxConns: 5},
		Defaults: pggateway.DefaultsConfig{
			Schema:  "public",
			MaxRows: 1000,
		},
		Query: pggateway.QueryConfig{
			DefaultTimeoutSeconds:       30,
			ListTablesTimeoutSeconds:    10,
			DescribeTableTimeoutSeconds: 10,
			MaxSQLLength:                100000,
			MaxResultLength:             100000,
		},
	}
}

func newTestGateway(t *testing.T, config pggateway.Config) (*pggateway.Gateway, string) {
	t.Helper()
	connStr := acquireTestDB(t)
	ctx := context.Background()
	gw, err := pggateway.New(ctx, connStr, config, testLogger())
	if err != nil {
		t.Fatalf("Failed to create Gateway: %v", err)
	}
	t.Cleanup(func() { gw.Close(ctx) })
	return gw, connStr
}

func setupTable(t *testing.T, gw *pggateway.Gateway, sql string) {
	t.Helper()
	env := gw.Query(context.Background(), pggateway.QueryRequest{Query: sql})
	if failure, ok := env.(pggateway.QueryFailure); ok {
		t.Fatalf("setup failed: %s", failure.Error.Message)
	}
}

func querySuccess(t *testing.T, env pggateway.Envelope) pggateway.QuerySuccess {
	t.Helper()
	success, ok := env.(pggateway.QuerySuccess)
	if !ok {
		if failure, isFail := env.(pggateway.QueryFailure); isFail {
			t.Fatalf("expected success, got failure: %s", failure.Error.Message)
		}
		t.Fatalf("expected QuerySuccess, got %T", env)
	}
	return success
}

func describeSuccess(t *testing.T, env pggateway.Envelope) pggateway.DescribeSuccess {
	t.Helper()
	success, ok := env.(pggateway.DescribeSuccess)
	if !ok {
		if failure, isFail := env.(pggateway.DescribeFailure); isFail {
			t.Fatalf("expected success, got failure: %s", failure.Error.Message)
		}
		t.Fatalf("expected DescribeSuccess, got %T", env)
	}
	return success
}

func listSuccess(t *testing.T, env pggateway.Envelope) pggateway.ListSuccess {
	t.Helper()
	success, ok := env.(pggateway.ListSuccess)
	if !ok {
		if failure, isFail := env.(pggateway.ListFailure); isFail {
			t.Fatalf("expected success, got failure: %s", failure.Error.Message)
		}
		t.Fatalf("expected ListSuccess, got %T", env)
	}
	return success
}
