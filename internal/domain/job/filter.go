package job

// DefaultPageSize bounds catalog reads when no limit is given.
const DefaultPageSize = 100

// Filter selects catalog postings, newest first.
type Filter struct {
	// Status restricts results to one status. Empty means any.
	Status Status
	Limit  int
}

// ActiveOnly returns a filter for the active catalog.
func ActiveOnly(limit int) Filter {
	return Filter{Status: StatusActive, Limit: limit}
}

// PageSize returns Limit, or DefaultPageSize when unset.
func (f Filter) PageSize() int {
	if f.Limit <= 0 {
		return DefaultPageSize
	}
	return f.Limit
}

// Accepts reports whether j passes the status filter.
func (f Filter) Accepts(j Job) bool {
	return f.Status == "" || j.Status() == f.Status
}
