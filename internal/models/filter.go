package models

// FilterKind identifies how a host renders a filter.
type FilterKind string

// FilterHeader is a label with no state.
const FilterHeader FilterKind = "header"

// Filter is a single search filter offered by a source.
type Filter struct {
	Kind FilterKind `json:"kind"`
	Name string     `json:"name"`
}

// FilterList is the ordered set of filters a source exposes.
type FilterList []Filter

// HeaderFilter returns a non-interactive label.
func HeaderFilter(name string) Filter {
	return Filter{Kind: FilterHeader, Name: name}
}
