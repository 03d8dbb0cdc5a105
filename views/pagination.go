package views

import (
	"bytes"
	"net/url"
	"strconv"
)

// PerPage is the fixed number of posts per pagination page.
const PerPage = 10

// Pagination is the page-selection state for a list view.
type Pagination struct {
	Current int // 1-based
	Total   int // derived page count
}

// NewPagination derives the page count from a total item count:
// Total = ceil(totalCount / pageSize). Current is clamped to
// [1, Total] when any pages exist.
func NewPagination(totalCount, pageSize, current int) Pagination {
	total := 0
	if totalCount > 0 {
		total = (totalCount + pageSize - 1) / pageSize
	}
	if current < 1 {
		current = 1
	}
	if total > 0 && current > total {
		current = total
	}
	return Pagination{Current: current, Total: total}
}

// Pages returns the page numbers to render as buttons: every page when
// there is more than one, nothing otherwise.
func (p Pagination) Pages() []int {
	if p.Total <= 1 {
		return nil
	}
	pages := make([]int, p.Total)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// writePagination renders one numbered link per page, marking the
// current page active. extra carries query parameters that must survive
// page changes (the search query).
func writePagination(buf *bytes.Buffer, p Pagination, basePath string, extra url.Values) {
	pages := p.Pages()
	if pages == nil {
		return
	}
	buf.WriteString(`<nav class="pagination" aria-label="ページ送り">`)
	for _, n := range pages {
		q := url.Values{}
		for k, vs := range extra {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		q.Set("page", strconv.Itoa(n))

		class := "page"
		if n == p.Current {
			class = "page active"
		}
		buf.WriteString(`<a class="` + class + `" href="` + escape(basePath+"?"+q.Encode()) + `">`)
		buf.WriteString(strconv.Itoa(n))
		buf.WriteString(`</a>`)
	}
	buf.WriteString(`</nav>`)
}
