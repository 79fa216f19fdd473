// Package listing filters and pages in-memory result sets returned by the backend.
package listing

import (
	"strings"
)

// Options tune Filter.
type Options struct {
	// MinQueryLen is the shortest trimmed query that filters at all. Defaults to 1.
	MinQueryLen int
	// MinTermMatches is how many query terms must hit a record. Zero means all terms.
	MinTermMatches int
}

// Filter returns the records matching query, in their original order.
// The query is split on whitespace; each term is a case-insensitive substring
// match against any of the strings returned by fields.
func Filter[T any](records []T, query string, fields func(T) []string, opts Options) []T {
	q := strings.TrimSpace(query)
	minLen := opts.MinQueryLen
	if minLen < 1 {
		minLen = 1
	}
	if len([]rune(q)) < minLen {
		return records
	}

	terms := strings.Fields(strings.ToLower(q))
	need := opts.MinTermMatches
	if need <= 0 || need > len(terms) {
		need = len(terms)
	}

	out := make([]T, 0, len(records))
	for _, r := range records {
		if countMatches(terms, fields(r)) >= need {
			out = append(out, r)
		}
	}
	return out
}

func countMatches(terms, fields []string) int {
	lowered := make([]string, len(fields))
	for i, f := range fields {
		lowered[i] = strings.ToLower(f)
	}
	n := 0
	for _, t := range terms {
		for _, f := range lowered {
			if strings.Contains(f, t) {
				n++
				break
			}
		}
	}
	return n
}
