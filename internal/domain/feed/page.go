// Package feed windows ordered event collections into fixed-size pages and
// tracks per-scope navigation state.
package feed

// Page is one window of an ordered collection
type Page[T any] struct {
	Items      []T
	TotalCount int64
	PageNumber int
	PageSize   int
}

// PageCount returns max(1, ceil(total/size)). Empty data still has one page.
func PageCount(total int64, size int) int {
	if size < 1 {
		size = 1
	}
	if total <= 0 {
		return 1
	}
	return int((total + int64(size) - 1) / int64(size))
}

// Offset returns the zero-based index of the first item on a 1-based page
func Offset(pageNumber, pageSize int) int {
	pageNumber, pageSize = normalize(pageNumber, pageSize)
	return (pageNumber - 1) * pageSize
}

// Paginate slices a fully materialized ordered collection.
// An offset past the end yields an empty page, not an error.
func Paginate[T any](ordered []T, pageNumber, pageSize int) Page[T] {
	pageNumber, pageSize = normalize(pageNumber, pageSize)
	total := len(ordered)
	start := (pageNumber - 1) * pageSize

	items := []T{}
	if start < total {
		end := min(start+pageSize, total)
		items = append(items, ordered[start:end]...)
	}

	return Page[T]{
		Items:      items,
		TotalCount: int64(total),
		PageNumber: pageNumber,
		PageSize:   pageSize,
	}
}

// NewPage wraps a window already cut by the store
func NewPage[T any](items []T, totalCount int64, pageNumber, pageSize int) Page[T] {
	pageNumber, pageSize = normalize(pageNumber, pageSize)
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		TotalCount: totalCount,
		PageNumber: pageNumber,
		PageSize:   pageSize,
	}
}

// PageCount returns the number of pages for this page's total
func (p Page[T]) PageCount() int {
	return PageCount(p.TotalCount, p.PageSize)
}

// HasNext reports whether items exist past this page
func (p Page[T]) HasNext() bool {
	return int64(p.PageNumber)*int64(p.PageSize) < p.TotalCount
}

// HasPrevious reports whether this is not the first page
func (p Page[T]) HasPrevious() bool {
	return p.PageNumber > 1
}

// Map converts the items of a page, keeping its window metadata
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, len(p.Items))
	for i, item := range p.Items {
		items[i] = fn(item)
	}
	return Page[U]{
		Items:      items,
		TotalCount: p.TotalCount,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}
}

func normalize(pageNumber, pageSize int) (int, int) {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	return pageNumber, pageSize
}
