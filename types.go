package pggateway

// QueryRequest is the input for the query tool. Only Query is required;
// the other fields fall back to the configured defaults.
type QueryRequest struct {
	Query   string `json:"query"`
	Schema  string `json:"schema,omitempty"`
	Context string `json:"context,omitempty"`
	MaxRows int    `json:"maxRows,omitempty"`
}

// DescribeTableRequest is the input for the describe_table tool.
type DescribeTableRequest struct {
	TableName string `json:"tableName"`
	Schema    string `json:"schema,omitempty"`
}

// ListTablesRequest is the input for the list_tables tool.
type ListTablesRequest struct {
	Schema  string `json:"schema,omitempty"`
	Pattern string `json:"pattern,omitempty"`
}

// Envelope is the closed set of tool responses. Every variant carries a
// "kind" tag and a "success" discriminator; the calling agent inspects
// the success flag to distinguish a completed call from a failed one.
type Envelope interface {
	envelope()
}

func (QuerySuccess) envelope()    {}
func (QueryFailure) envelope()    {}
func (DescribeSuccess) envelope() {}
func (DescribeFailure) envelope() {}
func (ListSuccess) envelope()     {}
func (ListFailure) envelope()     {}

// ErrorDetail carries the structured fields of a failed statement.
// Code, Detail, and Hint are populated from the Postgres error when the
// failure was driver-reported; a pool or context failure has only Message.
type ErrorDetail struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Detail  string `json:"detail,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

// FieldDescriptor describes one column of a query result, taken from the
// wire-level row description.
type FieldDescriptor struct {
	Name         string `json:"name"`
	DataTypeOID  uint32 `json:"dataTypeOID"`
	TypeSize     int16  `json:"typeSize"`
	TypeModifier int32  `json:"typeModifier"`
}

// QueryMetadata is the metadata block of a successful query envelope.
type QueryMetadata struct {
	RowCount     int  `json:"rowCount"`
	HasRows      bool `json:"hasRows"`
	WasLimited   bool `json:"wasLimited"`
	LimitApplied int  `json:"limitApplied,omitempty"`
}

// QuerySuccess is the success envelope of the query tool. Query echoes
// the final (possibly augmented) text that was actually executed.
type QuerySuccess struct {
	Kind       string            `json:"kind"` // "query"
	Success    bool              `json:"success"`
	Query      string            `json:"query"`
	Schema     string            `json:"schema"`
	Context    string            `json:"context,omitempty"`
	CommandTag string            `json:"commandTag"`
	Fields     []FieldDescriptor `json:"fields"`
	Rows       []map[string]any  `json:"rows"`
	Metadata   QueryMetadata     `json:"metadata"`
}

// QueryFailure is the failure envelope of the query tool. Query echoes
// the original request text, not the augmented one.
type QueryFailure struct {
	Kind    string      `json:"kind"` // "query"
	Success bool        `json:"success"`
	Query   string      `json:"query"`
	Schema  string      `json:"schema"`
	Context string      `json:"context,omitempty"`
	Error   ErrorDetail `json:"error"`
}

// ColumnDescriptor describes a single column of a table.
type ColumnDescriptor struct {
	Position  int     `json:"position"` // 1-based, by ordinal position
	Name      string  `json:"name"`
	DataType  string  `json:"dataType"`
	Nullable  bool    `json:"nullable"`
	Default   *string `json:"default,omitempty"`
	MaxLength *int    `json:"maxLength,omitempty"`
	Precision *int    `json:"precision,omitempty"`
	Scale     *int    `json:"scale,omitempty"`
	// FullType is the human-readable type: the base type plus an optional
	// (length) or (precision[,scale]) suffix, e.g. "character varying(50)".
	FullType string `json:"fullType"`
}

// DescribeMetadata is the metadata block of a successful describe_table
// envelope. Found is false when the table has no matching columns — an
// unknown table is not an error.
type DescribeMetadata struct {
	ColumnCount int  `json:"columnCount"`
	Found       bool `json:"found"`
}

// DescribeSuccess is the success envelope of the describe_table tool.
type DescribeSuccess struct {
	Kind          string             `json:"kind"` // "describe_table"
	Success       bool               `json:"success"`
	Table         string             `json:"table"`
	Schema        string             `json:"schema"`
	QualifiedName string             `json:"qualifiedName"`
	Columns       []ColumnDescriptor `json:"columns"`
	Metadata      DescribeMetadata   `json:"metadata"`
}

// DescribeFailure is the failure envelope of the describe_table tool.
type DescribeFailure struct {
	Kind    string      `json:"kind"` // "describe_table"
	Success bool        `json:"success"`
	Table   string      `json:"table"`
	Schema  string      `json:"schema"`
	Error   ErrorDetail `json:"error"`
}

// TableDescriptor describes a single table in the list_tables output.
type TableDescriptor struct {
	Position      int    `json:"position"` // 1-based, by name order
	Name          string `json:"name"`
	Type          string `json:"type"` // "table", "view", "foreign_table", "temporary_table"
	QualifiedName string `json:"qualifiedName"`
}

// ListMetadata is the metadata block of a successful list_tables envelope.
type ListMetadata struct {
	TableCount     int  `json:"tableCount"`
	Found          bool `json:"found"`
	PatternApplied bool `json:"patternApplied"`
}

// ListSuccess is the success envelope of the list_tables tool. Pattern is
// null when no pattern filter was supplied.
type ListSuccess struct {
	Kind     string            `json:"kind"` // "list_tables"
	Success  bool              `json:"success"`
	Schema   string            `json:"schema"`
	Pattern  *string           `json:"pattern"`
	Tables   []TableDescriptor `json:"tables"`
	Metadata ListMetadata      `json:"metadata"`
}

// ListFailure is the failure envelope of the list_tables tool.
type ListFailure struct {
	Kind    string      `json:"kind"` // "list_tables"
	Success bool        `json:"success"`
	Schema  string      `json:"schema"`
	Pattern *string     `json:"pattern"`
	Error   ErrorDetail `json:"error"`
}
