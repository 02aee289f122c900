package app

import (
	"regexp"
	"strings"
)

// Span attributes have vendor size limits; 512 chars is enough to identify
// any query this service issues.
const maxTracedQueryLength = 512

var queryWhitespaceRegex = regexp.MustCompile(`\s+`)

// formatDBQueryForTrace collapses whitespace and truncates the SQL recorded
// on otelsql spans. Bind values never appear in the query text, only
// placeholders, so nothing sensitive lands in the trace.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespaceRegex.ReplaceAllString(query, " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	return normalized[:maxTracedQueryLength] + "..."
}
