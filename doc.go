// Package pggateway exposes a fixed catalog of PostgreSQL operations —
// Query, DescribeTable, and ListTables — to AI agents through the Model
// Context Protocol (MCP).
//
// Each tool call is translated into SQL issued against a pooled pgx
// connection and returns a uniform JSON envelope discriminated by a
// success flag: the success branch carries the domain payload plus a
// metadata block, the failure branch carries the structured Postgres
// error fields (message, code, detail, hint) plus the same contextual
// identifiers a success response would have included. Callers always
// receive well-formed JSON; only an unknown tool name surfaces as a hard
// protocol error.
//
// The query tool is a deliberate pass-through: the caller's SQL is
// executed verbatim, with a single textual augmentation — a trailing
// LIMIT clause appended to SELECT statements that do not already contain
// one, when an effective row limit is configured or requested. This is a
// heuristic, not a SQL parser; pggateway is not a SQL firewall.
// Introspection tools, by contrast, only ever bind schema and table
// names as query parameters.
//
// # Library Usage
//
//	gw, err := pggateway.New(ctx, connString, pggateway.Config{
//		Pool: pggateway.PoolConfig{MaxConns: 10},
//		Defaults: pggateway.DefaultsConfig{
//			Schema:  "public",
//			MaxRows: 1000,
//		},
//		Query: pggateway.QueryConfig{
//			DefaultTimeoutSeconds:       30,
//			ListTablesTimeoutSeconds:    10,
//			DescribeTableTimeoutSeconds: 10,
//		},
//	}, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer gw.Close(ctx)
//
//	// Use directly
//	env := gw.Query(ctx, pggateway.QueryRequest{Query: "SELECT * FROM users"})
//
//	// Or register as MCP tools
//	pggateway.RegisterMCPTools(mcpServer, gw)
//
// Only the query tool's SQL goes through LIMIT augmentation and the
// pattern-based timeout rules; the introspection tools run fixed
// statements under their own configured timeouts.
package pggateway
