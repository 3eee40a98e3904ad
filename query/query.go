// Package query provides the structs used to deserialize query strings
// from request URLs, and helpers to translate sort arguments into SQL
// ORDER BY expressions restricted to an allowed set of fields.
package query

import "strings"

// DefaultPageSize is the page size used when the request doesn't set one.
const DefaultPageSize int64 = 50

// QuerySearch deserializes the query string of a search request.
//
// Valid URLs could be:
//   - /api/users?q=marian&include_total=true
//   - /api/v1/sales?q=customer:john&page_size=100
//   - /some-endpoint?page_size=20&sort=-name
//
// Bind instances with BindQuerySearch so PageSize defaults to
// DefaultPageSize and the range rules are enforced.
type QuerySearch struct {
	// Q is the free-text query, empty when not set.
	Q string `query:"q"`
	// Sort is a comma-separated field list, each field optionally
	// prefixed with "-" to indicate descending order.
	Sort string `query:"sort"`
	// Offset within the full results, zero indexed.
	Offset int64 `query:"offset" validate:"gte=0"`
	// PageSize is the maximum number of results to return.
	PageSize int64 `query:"page_size" validate:"gte=1"`
	// IncludeTotal asks the endpoint to compute the total results
	// count. Nil when not set.
	IncludeTotal *bool `query:"include_total"`
}

// ParseSort parses the sort argument "col1,col2,-col3..." into a slice of
// strings, translating a leading "-" into the DESC keyword, e.g. "-name"
// --> "name DESC". Fields not present in allowedFields are silently
// dropped; the input order is preserved.
func (q *QuerySearch) ParseSort(allowedFields []string) []string {
	fields := make([]string, 0)
	for _, f := range strings.Split(q.Sort, ",") {
		name := strings.TrimPrefix(f, "-")
		if !contains(allowedFields, name) {
			continue
		}
		if strings.HasPrefix(f, "-") {
			fields = append(fields, name+" DESC")
		} else {
			fields = append(fields, name)
		}
	}
	return fields
}

// SortAsOrderByArgs parses the sort argument "col1,col2,-col3..." into a
// SQL ORDER BY compatible expression, e.g. "name,-age" --> "name, age DESC",
// to be concatenated in a SQL SELECT query. When no field survives the
// allowedFields filter, def is returned verbatim: the caller guarantees
// it is safe to interpolate.
func (q *QuerySearch) SortAsOrderByArgs(allowedFields []string, def string) string {
	sorting := q.ParseSort(allowedFields)
	if len(sorting) == 0 {
		return def
	}
	return strings.Join(sorting, ", ")
}

// Force deserializes query strings with the "force" argument, that can
// be either true or false, or not be set at all.
type Force struct {
	Force *bool `query:"force"`
}

func contains(fields []string, name string) bool {
	for _, f := range fields {
		if f == name {
			return true
		}
	}
	return false
}
