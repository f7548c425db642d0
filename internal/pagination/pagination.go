// Package pagination tracks which page of a stored result set is displayed.
//
// The current page number is the only pagination state. It lives in the
// page's address (the "page" query parameter) so a full re-render, a reload
// or a shared link reconstructs the same view without re-fetching.
package pagination

import (
	"net/url"
	"strconv"
)

const (
	// DefaultPageSize is the number of videos shown per gallery page.
	DefaultPageSize = 5
	// QueryParam is the address query parameter carrying the page number.
	QueryParam = "page"
)

// PageView describes the visible page of a result set. PageNumber is 1-based
// and is 0 only when there is nothing to page through.
type PageView struct {
	PageNumber int
	PageSize   int
	TotalPages int
	TotalItems int
}

// TotalPages returns ceil(total / pageSize).
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// New builds the view for a result set of total items, clamping the
// requested page into [1, TotalPages].
func New(total, pageSize, requested int) PageView {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	p := PageView{
		PageSize:   pageSize,
		TotalPages: TotalPages(total, pageSize),
		TotalItems: total,
	}
	if p.TotalPages == 0 {
		return p
	}

	switch {
	case requested < 1:
		p.PageNumber = 1
	case requested > p.TotalPages:
		p.PageNumber = p.TotalPages
	default:
		p.PageNumber = requested
	}
	return p
}

// ShowControls reports whether pagination controls are rendered at all.
func (p PageView) ShowControls() bool {
	return p.TotalPages >= 1
}

// HasNext reports whether the Next transition is allowed.
func (p PageView) HasNext() bool {
	return p.PageNumber >= 1 && p.PageNumber < p.TotalPages
}

// HasPrevious reports whether the Previous transition is allowed.
func (p PageView) HasPrevious() bool {
	return p.PageNumber > 1
}

// Next returns the view one page forward; on the last page it is a no-op.
func (p PageView) Next() PageView {
	if p.HasNext() {
		p.PageNumber++
	}
	return p
}

// Previous returns the view one page back; on the first page it is a no-op.
func (p PageView) Previous() PageView {
	if p.HasPrevious() {
		p.PageNumber--
	}
	return p
}

// Bounds returns the half-open index range [start, end) of the page.
func (p PageView) Bounds() (start, end int) {
	if p.PageNumber < 1 {
		return 0, 0
	}
	start = (p.PageNumber - 1) * p.PageSize
	end = start + p.PageSize
	if start > p.TotalItems {
		start = p.TotalItems
	}
	if end > p.TotalItems {
		end = p.TotalItems
	}
	return start, end
}

// SliceForPage returns items[(page-1)*pageSize : page*pageSize], clamped to
// len(items). Pages outside the result set yield an empty slice. The returned
// slice shares the backing array and must be treated as read-only.
func SliceForPage[T any](items []T, page, pageSize int) []T {
	if page < 1 || pageSize <= 0 {
		return items[:0:0]
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return items[:0:0]
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end:end]
}

// ParsePage reads the page number from a raw query value. Missing or
// unparsable values map to page 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// FromQuery reads the page number from address query values.
func FromQuery(values url.Values) int {
	return ParsePage(values.Get(QueryParam))
}

// Link returns path with the page query parameter set to page.
func Link(path string, page int) string {
	q := url.Values{}
	q.Set(QueryParam, strconv.Itoa(page))
	return path + "?" + q.Encode()
}
