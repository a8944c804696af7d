package pagination

import "sync"

// Pager drives one walk over a paginated list.
type Pager interface {
	// Next returns the page to request next, or false when the walk is done.
	Next() (page int, ok bool)
	// Update records the totalCount reported for the page last returned by Next.
	Update(totalCount int) Metadata
}

// PagePager walks "page + limit" pagination. It stops after the first page
// whose metadata has no next page.
type PagePager struct {
	mu sync.Mutex

	limit int
	start int

	page    int
	first   bool
	hasMore bool
	last    Metadata
}

// NewPagePager builds a PagePager. A startPage below 1 defaults to 1 and a
// non-positive limit defaults to DefaultLimit, so the walk always terminates.
func NewPagePager(startPage, limit int) *PagePager {
	if startPage < 1 {
		startPage = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &PagePager{
		limit:   limit,
		start:   startPage,
		page:    startPage,
		first:   true,
		hasMore: true,
	}
}

// Limit returns the page size the pager requests.
func (p *PagePager) Limit() int {
	return p.limit
}

// Next returns the next page number.
func (p *PagePager) Next() (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.first && !p.hasMore {
		return 0, false
	}
	if !p.first {
		p.page++
	}
	p.first = false
	return p.page, true
}

// Update computes metadata for the current page and decides whether the
// walk continues.
func (p *PagePager) Update(totalCount int) Metadata {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.last = Calculate(p.page, p.limit, totalCount)
	p.hasMore = p.last.HasNextPage
	return p.last
}

// HasMore reports whether another page will be returned by Next.
func (p *PagePager) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.first || p.hasMore
}

// Last returns the metadata computed by the most recent Update.
func (p *PagePager) Last() Metadata {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// Reset restarts the walk from the start page.
func (p *PagePager) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.page = p.start
	p.first = true
	p.hasMore = true
	p.last = Metadata{}
}
