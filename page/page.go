// Package page provides the envelope used to serialize paginated results.
package page

// Page wraps a slice of results plus pagination metadata. Build values
// with WithData, FromSlice or Empty so PageSize stays consistent with
// the data carried.
type Page[T any] struct {
	// Data holds the results in the page, an empty `[]` slice
	// if there are no results.
	Data []T `json:"data"`
	// Offset from the full results, normally zero indexed.
	Offset int64 `json:"offset"`
	// PageSize is the size of the current page result, that could be
	// less than or equal to the size requested depending on how many
	// results were found.
	PageSize int64 `json:"page_size"`
	// Total results count including the ones in this page. Nil when the
	// caller chose not to compute the full count, e.g. for performance.
	Total *int64 `json:"total,omitempty"`

	// Message that might be presented to the user along the results,
	// e.g. a hint of how to improve the query to get more results.
	Message string `json:"message,omitempty"`
	// Warning that might be presented to the user along the results,
	// e.g. the user is querying a deprecated source of information.
	Warning string `json:"warning,omitempty"`
}

// WithData creates a page with the data, total and offset passed.
// PageSize is always derived from the length of data.
func WithData[T any](data []T, total *int64, offset int64) Page[T] {
	if data == nil {
		data = []T{}
	}
	return Page[T]{
		Data:     data,
		Offset:   offset,
		PageSize: int64(len(data)),
		Total:    total,
	}
}

// FromSlice creates a page from the whole result set: offset zero, and
// both PageSize and Total equal to the slice length.
func FromSlice[T any](data []T) Page[T] {
	return WithData(data, Total(int64(len(data))), 0)
}

// Empty creates a page with no data and a total of zero.
func Empty[T any]() Page[T] {
	return WithData([]T{}, Total(0), 0)
}

// Total is a convenience to build the optional total count in place.
func Total(n int64) *int64 {
	return &n
}
