// Package pagination derives client-side paging metadata from the page and
// limit a list query was sent with and the totalCount the server reported.
package pagination

// Default paging values used when a caller does not pick its own.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Metadata is recomputed for every paginated call and never persisted.
type Metadata struct {
	CurrentPage     int  `json:"currentPage"`
	Limit           int  `json:"limit"`
	TotalCount      int  `json:"totalCount"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// Calculate derives Metadata for one page.
//
// CurrentPage is page clamped up to 1; the clamp is for display only and
// says nothing about what the server was sent. TotalPages is the ceiling of
// totalCount/limit, and 0 when limit or totalCount is not positive.
//
// Examples:
//   - page 1, limit 5, total 23 -> current 1, pages 5, next, no previous
//   - page 999, limit 10, total 23 -> current 999, pages 3, no next, previous
//   - page 1, limit 0, total 23 -> current 1, pages 0, no next, no previous
func Calculate(page, limit, totalCount int) Metadata {
	current := max(page, 1)
	pages := TotalPages(totalCount, limit)
	return Metadata{
		CurrentPage:     current,
		Limit:           limit,
		TotalCount:      totalCount,
		TotalPages:      pages,
		HasNextPage:     current < pages,
		HasPreviousPage: current > 1,
	}
}

// TotalPages returns ceil(totalCount / limit), or 0 for a non-positive limit
// or count.
func TotalPages(totalCount, limit int) int {
	if limit <= 0 || totalCount <= 0 {
		return 0
	}
	pages := totalCount / limit
	if totalCount%limit != 0 {
		pages++
	}
	return pages
}
