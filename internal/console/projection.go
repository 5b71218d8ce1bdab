package console

import "sort"

// SortKey names a sortable field of a record type.
type SortKey string

// Projector derives a display list from a canonical collection. It is pure:
// the input slice is never mutated and identical inputs yield identical
// output. Sorting is ascending only.
type Projector[T any] struct {
	// Match reports whether a record's searchable field contains the query.
	Match func(record T, query string) bool
	// Less holds the ascending comparator per sort key. Record types
	// without sortable fields leave this nil and preserve server order.
	Less map[SortKey]func(a, b T) bool
}

// Project applies filter, stable ascending sort and pagination, in that
// order. An empty query keeps the whole collection; an unknown or empty
// sort key preserves order; pageSize <= 0 disables pagination.
func (p Projector[T]) Project(records []T, query string, key SortKey, page, pageSize int) []T {
	working := make([]T, 0, len(records))
	if query == "" || p.Match == nil {
		working = append(working, records...)
	} else {
		for _, r := range records {
			if p.Match(r, query) {
				working = append(working, r)
			}
		}
	}

	if key != "" && p.Less != nil {
		if less, ok := p.Less[key]; ok {
			sort.SliceStable(working, func(i, j int) bool { return less(working[i], working[j]) })
		}
	}

	if pageSize <= 0 {
		return working
	}
	start := page * pageSize
	if start < 0 || start >= len(working) {
		return []T{}
	}
	end := start + pageSize
	if end > len(working) {
		end = len(working)
	}
	return working[start:end]
}

// View holds the transient query state layered over one collection: the
// free-text filter, sort key and pagination window. The page index resets
// to zero whenever the filter or the page size changes.
type View[T any] struct {
	projector Projector[T]
	query     string
	sortKey   SortKey
	page      int
	pageSize  int
}

// NewView builds a View with the given initial page size.
func NewView[T any](projector Projector[T], pageSize int) *View[T] {
	if pageSize <= 0 {
		pageSize = 5
	}
	return &View[T]{projector: projector, pageSize: pageSize}
}

// SetQuery updates the filter, resetting to the first page on change.
func (v *View[T]) SetQuery(query string) {
	if query == v.query {
		return
	}
	v.query = query
	v.page = 0
}

// SetSort selects the ascending sort key.
func (v *View[T]) SetSort(key SortKey) {
	v.sortKey = key
}

// SetPage moves the pagination window.
func (v *View[T]) SetPage(page int) {
	if page < 0 {
		page = 0
	}
	v.page = page
}

// SetPageSize changes the window size, resetting to the first page on change.
func (v *View[T]) SetPageSize(size int) {
	if size <= 0 || size == v.pageSize {
		return
	}
	v.pageSize = size
	v.page = 0
}

// Query returns the current filter text.
func (v *View[T]) Query() string { return v.query }

// Page returns the current page index.
func (v *View[T]) Page() int { return v.page }

// PageSize returns the current window size.
func (v *View[T]) PageSize() int { return v.pageSize }

// Rows projects the given canonical records through the current view state.
func (v *View[T]) Rows(records []T) []T {
	return v.projector.Project(records, v.query, v.sortKey, v.page, v.pageSize)
}

// Matches returns how many records pass the current filter, for rendering
// pagination controls.
func (v *View[T]) Matches(records []T) int {
	return len(v.projector.Project(records, v.query, v.sortKey, 0, 0))
}
