package feed

// Ticket tags a fetch with the parameters it was issued for
type Ticket struct {
	Scope    Scope
	Page     int
	Seq      uint64
	Revision int64
}

// Pager holds the navigation state of one feed for a long-lived consumer
// that keeps paging while fetches are in flight. Stateless request handlers
// build pages directly with NewPage. Pagers for different scopes are fully
// independent. A Pager is not safe for concurrent use.
type Pager[T any] struct {
	scope    Scope
	pageSize int
	page     int
	total    int64
	items    []T
	revision int64
	loaded   bool
	seq      uint64
}

// NewPager creates a pager positioned on page 1
func NewPager[T any](scope Scope, pageSize int) *Pager[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Pager[T]{scope: scope, pageSize: pageSize, page: 1}
}

// Scope returns the scope the pager covers
func (p *Pager[T]) Scope() Scope { return p.scope }
func (p *Pager[T]) PageSize() int { return p.pageSize }
func (p *Pager[T]) PageNumber() int { return p.page }
func (p *Pager[T]) TotalCount() int64 { return p.total }
func (p *Pager[T]) Items() []T { return p.items }
func (p *Pager[T]) Revision() int64 { return p.revision }
func (p *Pager[T]) PageCount() int { return PageCount(p.total, p.pageSize) }

// CanNext reports whether Next would move
func (p *Pager[T]) CanNext() bool {
	return int64(p.page)*int64(p.pageSize) < p.total
}

// CanPrevious reports whether Previous would move
func (p *Pager[T]) CanPrevious() bool {
	return p.page > 1
}

// Next advances one page. It is a no-op returning false when CanNext is false.
func (p *Pager[T]) Next() bool {
	if !p.CanNext() {
		return false
	}
	p.page++
	return true
}

// Previous goes back one page. It is a no-op returning false on page 1.
func (p *Pager[T]) Previous() bool {
	if !p.CanPrevious() {
		return false
	}
	p.page--
	return true
}

// Goto jumps to a page, clamping to 1. The upper bound is unknown until a
// fetch resolves, so out-of-range pages simply load empty.
func (p *Pager[T]) Goto(page int) {
	if page < 1 {
		page = 1
	}
	p.page = page
}

// NeedsRefresh reports whether the scope revision moved past the applied one
func (p *Pager[T]) NeedsRefresh(revision int64) bool {
	return !p.loaded || revision != p.revision
}

// Begin issues a ticket for fetching the current page at the given revision.
// Issuing a ticket supersedes every earlier one.
func (p *Pager[T]) Begin(revision int64) Ticket {
	p.seq++
	return Ticket{Scope: p.scope, Page: p.page, Seq: p.seq, Revision: revision}
}

// Apply stores a fetched page if its ticket is still current. Results for a
// superseded ticket, another page or another scope are discarded and Apply
// returns false.
func (p *Pager[T]) Apply(ticket Ticket, page Page[T]) bool {
	if ticket.Scope != p.scope || ticket.Seq != p.seq || ticket.Page != p.page {
		return false
	}
	p.items = page.Items
	p.total = page.TotalCount
	p.revision = ticket.Revision
	p.loaded = true
	return true
}

// Snapshot returns the applied state as a page
func (p *Pager[T]) Snapshot() Page[T] {
	return NewPage(p.items, p.total, p.page, p.pageSize)
}
