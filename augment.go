package pggateway

import (
	"fmt"
	"strings"
)

// augmentQuery appends ` LIMIT {limit}` to raw iff the trimmed,
// case-folded text starts with "SELECT", does not already contain the
// substring "LIMIT" anywhere, and limit is positive. Returns the final
// text and whether it was modified.
//
// This is a textual heuristic, not a SQL parser: there is no injection
// into subqueries and no statement-tree rewriting. A literal or
// identifier containing "LIMIT" suppresses augmentation — a known
// imprecision that is documented rather than corrected, to keep the
// surface small and predictable.
func augmentQuery(raw string, limit int) (string, bool) {
	if limit <= 0 {
		return raw, false
	}
	trimmedUpper := strings.ToUpper(strings.TrimSpace(raw))
	if !strings.HasPrefix(trimmedUpper, "SELECT") {
		return raw, false
	}
	if strings.Contains(trimmedUpper, "LIMIT") {
		return raw, false
	}
	return fmt.Sprintf("%s LIMIT %d", raw, limit), true
}
