package shared

import (
	"regexp"
	"strings"
)

// fieldPattern restricts projected field names to plain column identifiers,
// so a projection can be passed to the database layer as-is.
var fieldPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Filter holds common list query options: free-text search over a fixed
// field set, page/limit pagination, and an optional projection naming the
// columns to return. An empty projection returns full records.
type Filter struct {
	Search string
	Page   int
	Limit  int
	Fields []string
}

// DefaultFilter returns a filter with default pagination
func DefaultFilter() Filter {
	return Filter{Page: 1, Limit: 20}
}

// Normalize clamps pagination values into a sane range and drops projected
// fields that are not plain column names
func (f *Filter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}

	fields := f.Fields[:0]
	for _, field := range f.Fields {
		field = strings.ToLower(strings.TrimSpace(field))
		if fieldPattern.MatchString(field) {
			fields = append(fields, field)
		}
	}
	f.Fields = fields
}

// Offset returns the row offset for the current page
func (f Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}
