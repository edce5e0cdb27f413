package pggateway

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/pggateway/pggateway/internal/timeout"
)

// Gateway dispatches the query, describe_table, and list_tables tools
// against a single PostgreSQL database. All exported methods are safe for
// concurrent use from multiple goroutines; the only shared mutable state
// is the connection pool, whose concurrency safety is pgxpool's.
type Gateway struct {
	config     Config
	pool       *pgxpool.Pool
	semaphore  chan struct{}
	timeoutMgr *timeout.Manager
	logger     zerolog.Logger
}

// New creates a new Gateway. connString is the PostgreSQL connection
// string (must include credentials). Panics on invalid config. Returns
// error only for runtime failures (e.g., pool creation).
func New(ctx context.Context, connString string, config Config, logger zerolog.Logger) (*Gateway, error) {
	// --- Config validation (panics on invalid config) ---

	if connString == "" {
		panic("pggateway: connString must be non-empty")
	}
	if config.Pool.MaxConns <= 0 {
		panic("pggateway: pool.max_conns must be > 0")
	}
	if config.Query.DefaultTimeoutSeconds <= 0 {
		panic("pggateway: query.default_timeout_seconds must be > 0")
	}
	if config.Query.ListTablesTimeoutSeconds <= 0 {
		panic("pggateway: query.list_tables_timeout_seconds must be > 0")
	}
	if config.Query.DescribeTableTimeoutSeconds <= 0 {
		panic("pggateway: query.describe_table_timeout_seconds must be > 0")
	}
	if config.Defaults.MaxRows < 0 {
		panic("pggateway: defaults.max_rows must be >= 0")
	}

	// Apply defaults for zero values
	if config.Defaults.Schema == "" {
		config.Defaults.Schema = "public"
	}
	if config.Query.MaxSQLLength == 0 {
		config.Query.MaxSQLLength = 100000
	}
	if config.Query.MaxResultLength == 0 {
		config.Query.MaxResultLength = 100000
	}
	if config.Query.MaxSQLLength < 0 {
		panic("pggateway: query.max_sql_length must be > 0")
	}
	if config.Query.MaxResultLength < 0 {
		panic("pggateway: query.max_result_length must be > 0")
	}

	for _, rule := range config.Query.TimeoutRules {
		if rule.TimeoutSeconds <= 0 {
			panic(fmt.Sprintf("pggateway: timeout_rule with pattern %q has timeout_seconds <= 0", rule.Pattern))
		}
	}

	// --- Configure pgxpool ---

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(config.Pool.MaxConns)
	poolConfig.MinConns = int32(config.Pool.MinConns)
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	// Parse pool duration strings
	if config.Pool.MaxConnLifetime != "" {
		d, err := time.ParseDuration(config.Pool.MaxConnLifetime)
		if err != nil {
			panic(fmt.Sprintf("pggateway: invalid pool.max_conn_lifetime %q: %v", config.Pool.MaxConnLifetime, err))
		}
		poolConfig.MaxConnLifetime = d
	}
	if config.Pool.MaxConnIdleTime != "" {
		d, err := time.ParseDuration(config.Pool.MaxConnIdleTime)
		if err != nil {
			panic(fmt.Sprintf("pggateway: invalid pool.max_conn_idle_time %q: %v", config.Pool.MaxConnIdleTime, err))
		}
		poolConfig.MaxConnIdleTime = d
	}
	if config.Pool.HealthCheckPeriod != "" {
		d, err := time.ParseDuration(config.Pool.HealthCheckPeriod)
		if err != nil {
			panic(fmt.Sprintf("pggateway: invalid pool.health_check_period %q: %v", config.Pool.HealthCheckPeriod, err))
		}
		poolConfig.HealthCheckPeriod = d
	}

	// --- Create pool ---

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	timeoutRules := make([]timeout.Rule, len(config.Query.TimeoutRules))
	for i, r := range config.Query.TimeoutRules {
		timeoutRules[i] = timeout.Rule{
			Pattern: r.Pattern,
			Timeout: time.Duration(r.TimeoutSeconds) * time.Second,
		}
	}
	tmgr := timeout.NewManager(timeout.Config{
		DefaultTimeout: time.Duration(config.Query.DefaultTimeoutSeconds) * time.Second,
		Rules:          timeoutRules,
	})

	return &Gateway{
		config:     config,
		pool:       pool,
		semaphore:  make(chan struct{}, config.Pool.MaxConns),
		timeoutMgr: tmgr,
		logger:     logger,
	}, nil
}

// Ping verifies database connectivity.
func (g *Gateway) Ping(ctx context.Context) error {
	return g.pool.Ping(ctx)
}

// Stat returns a snapshot of pool statistics.
func (g *Gateway) Stat() *pgxpool.Stat {
	return g.pool.Stat()
}

// Close closes the connection pool. Accepts context for API
// forward-compatibility, but does not currently use it — pgxpool does not
// support context-based shutdown.
func (g *Gateway) Close(ctx context.Context) {
	g.pool.Close()
}

// acquireSlot takes a semaphore slot, respecting context cancellation so
// a saturated pool cannot deadlock a cancelled caller. The returned
// release func must be called exactly once.
func (g *Gateway) acquireSlot(ctx context.Context) (func(), error) {
	select {
	case g.semaphore <- struct{}{}:
		return func() { <-g.semaphore }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("failed to acquire query slot: all %d connection slots are in use, context cancelled while waiting: %w", cap(g.semaphore), ctx.Err())
	}
}

// resolveSchema returns the request schema or the configured default.
func (g *Gateway) resolveSchema(schema string) string {
	if schema == "" {
		return g.config.Defaults.Schema
	}
	return schema
}
