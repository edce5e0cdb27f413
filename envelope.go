package pggateway

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Tool kind tags, used as the "kind" discriminator of every envelope.
const (
	KindQuery         = "query"
	KindDescribeTable = "describe_table"
	KindListTables    = "list_tables"
)

// errorDetail normalizes any execution failure into an ErrorDetail.
// Driver-reported errors contribute their SQLSTATE code, detail, and hint;
// pool-acquisition and context failures carry only a message. Both are
// shaped identically for envelope purposes.
func errorDetail(err error) ErrorDetail {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ErrorDetail{
			Message: pgErr.Message,
			Code:    pgErr.Code,
			Detail:  pgErr.Detail,
			Hint:    pgErr.Hint,
		}
	}
	return ErrorDetail{Message: err.Error()}
}
