package pggateway

// FieldSpec declares one input field of a tool.
type FieldSpec struct {
	Name        string
	Type        string // "string" or "number"
	Required    bool
	Description string
}

// ToolDefinition declares one tool of the catalog: its name, human
// description, and input schema. Definitions are created once at process
// start and never mutated.
type ToolDefinition struct {
	Name        string
	Description string
	ReadOnly    bool
	Fields      []FieldSpec
}

// toolCatalog is the static catalog consumed by the dispatcher and the
// MCP registration layer.
var toolCatalog = []ToolDefinition{
	{
		Name:        KindQuery,
		Description: "Execute a SQL query against the PostgreSQL database. SELECT statements without a LIMIT clause get one appended automatically. Returns a JSON envelope with a success flag.",
		Fields: []FieldSpec{
			{Name: "query", Type: "string", Required: true, Description: "The SQL query to execute"},
			{Name: "schema", Type: "string", Description: "Schema name (defaults to the configured default schema)"},
			{Name: "context", Type: "string", Description: "Free-text context echoed back in the response"},
			{Name: "maxRows", Type: "number", Description: "Row limit override for automatic LIMIT augmentation"},
		},
	},
	{
		Name:        KindDescribeTable,
		Description: "Describe the columns of a table: names, types, nullability, defaults, and precision. An unknown table returns an empty column list with found=false.",
		ReadOnly:    true,
		Fields: []FieldSpec{
			{Name: "tableName", Type: "string", Required: true, Description: "The table name to describe"},
			{Name: "schema", Type: "string", Description: "Schema name (defaults to the configured default schema)"},
		},
	},
	{
		Name:        KindListTables,
		Description: "List tables in a schema, ordered by name, optionally filtered by a LIKE pattern on the table name.",
		ReadOnly:    true,
		Fields: []FieldSpec{
			{Name: "schema", Type: "string", Description: "Schema name (defaults to the configured default schema)"},
			{Name: "pattern", Type: "string", Description: "LIKE pattern on the table name, e.g. %user%"},
		},
	},
}

// Catalog returns the tool catalog. The returned slice is shared; callers
// must not modify it.
func Catalog() []ToolDefinition {
	return toolCatalog
}
