package postgres

import (
	"database/sql"
	"strings"
)

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

// Transaction-pooling proxies break extended-protocol prepared statements.
// These matchers recognize the two failure shapes we see behind pgbouncer so
// repositories can fall back to a single-parameter or literal query.
func isBindParameterMismatch(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "bind message supplies") && strings.Contains(msg, "parameters")
}

func isUnnamedPreparedStatementMissing(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if strings.Contains(msg, "unnamed prepared statement does not exist") {
		return true
	}
	return strings.Contains(msg, "prepared statement") && strings.Contains(msg, "26000")
}
