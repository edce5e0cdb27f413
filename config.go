package pggateway

// Config is the base configuration used by library mode via New().
// It is read once at startup and never mutated afterwards; the Gateway
// and its handlers receive it explicitly instead of reading ambient state.
type Config struct {
	Pool     PoolConfig     `json:"pool"`
	Defaults DefaultsConfig `json:"defaults"`
	Query    QueryConfig    `json:"query"`
}

// ServerConfig embeds Config and adds server-only fields for CLI mode.
type ServerConfig struct {
	Config
	Connection ConnectionConfig `json:"connection"`
	Server     ServerSettings   `json:"server"`
	Logging    LoggingConfig    `json:"logging"`
}

// ConnectionConfig holds database connection parameters used by CLI mode.
// The password is never stored in the config file; it is taken from the
// environment connection string or prompted interactively.
type ConnectionConfig struct {
	Host    string `json:"host"`
	Port    int    `json:"port"`
	DBName  string `json:"dbname"`
	User    string `json:"user"`
	SSLMode string `json:"sslmode"`
}

// PoolConfig holds connection pool settings.
type PoolConfig struct {
	MaxConns          int    `json:"max_conns"`
	MinConns          int    `json:"min_conns"`
	MaxConnLifetime   string `json:"max_conn_lifetime"`
	MaxConnIdleTime   string `json:"max_conn_idle_time"`
	HealthCheckPeriod string `json:"health_check_period"`
}

// DefaultsConfig holds per-call fallback values. A request field that is
// absent resolves to the corresponding default here.
type DefaultsConfig struct {
	// Schema is the schema used when a request does not name one.
	// Empty means "public".
	Schema string `json:"schema"`
	// Context is the free-text context echoed into query envelopes when
	// the request carries none.
	Context string `json:"context"`
	// MaxRows is the row limit used for LIMIT augmentation when the
	// request does not override it. Zero disables augmentation.
	MaxRows int `json:"max_rows"`
}

// QueryConfig holds query execution settings.
type QueryConfig struct {
	DefaultTimeoutSeconds       int           `json:"default_timeout_seconds"`
	ListTablesTimeoutSeconds    int           `json:"list_tables_timeout_seconds"`
	DescribeTableTimeoutSeconds int           `json:"describe_table_timeout_seconds"`
	MaxSQLLength                int           `json:"max_sql_length"`
	MaxResultLength             int           `json:"max_result_length"`
	TimeoutRules                []TimeoutRule `json:"timeout_rules"`
}

// TimeoutRule maps a SQL pattern to a specific timeout duration.
// The first matching rule wins; unmatched SQL uses the default timeout.
type TimeoutRule struct {
	Pattern        string `json:"pattern"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// ServerSettings holds HTTP server settings for CLI mode.
type ServerSettings struct {
	Port               int    `json:"port"`
	HealthCheckEnabled bool   `json:"health_check_enabled"`
	HealthCheckPath    string `json:"health_check_path"`
}

// LoggingConfig holds logging settings for CLI mode.
type LoggingConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // json, text
	Output string `json:"output"` // stdout, stderr, or file path
}
