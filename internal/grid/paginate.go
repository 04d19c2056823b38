package grid

// windowSize is the number of leading page buttons in the page window.
const windowSize = 7

// PaginationState is the page cursor. TotalRecords is supplied from outside
// so the same state serves locally sliced and server-paginated data.
type PaginationState struct {
	Page         int
	PageSize     int
	TotalRecords int
}

func NewPagination(pageSize int) PaginationState {
	if pageSize <= 0 {
		pageSize = 10
	}
	return PaginationState{Page: 1, PageSize: pageSize}
}

// TotalPages is ceil(TotalRecords / PageSize), 0 when there are no records.
func (p PaginationState) TotalPages() int {
	if p.TotalRecords <= 0 || p.PageSize <= 0 {
		return 0
	}
	return (p.TotalRecords + p.PageSize - 1) / p.PageSize
}

// Bounds returns the half-open slice range of the current page over n rows.
func (p PaginationState) Bounds(n int) (int, int) {
	if p.PageSize <= 0 || n <= 0 {
		return 0, 0
	}
	start := (p.Page - 1) * p.PageSize
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	end := start + p.PageSize
	if end > n {
		end = n
	}
	return start, end
}

func (p PaginationState) clamp() PaginationState {
	maxPage := p.TotalPages()
	if maxPage < 1 {
		maxPage = 1
	}
	if p.Page > maxPage {
		p.Page = maxPage
	}
	if p.Page < 1 {
		p.Page = 1
	}
	return p
}

// PageButton is one entry of the page window: either a page number or the
// ellipsis marker between the leading pages and the last page.
type PageButton struct {
	Page     int
	Ellipsis bool
}

type PageInfo struct {
	TotalPages int
	Window     []PageButton
	IsFirst    bool
	IsLast     bool
}

func Derive(p PaginationState) PageInfo {
	total := p.TotalPages()
	return PageInfo{
		TotalPages: total,
		Window:     PageWindow(total),
		IsFirst:    p.Page <= 1,
		IsLast:     p.Page >= total,
	}
}

// PageWindow lists pages 1..min(7, totalPages); past seven pages it appends
// an ellipsis and the final page. The window does not follow the current
// page.
func PageWindow(totalPages int) []PageButton {
	n := totalPages
	if n > windowSize {
		n = windowSize
	}
	out := make([]PageButton, 0, n+2)
	for i := 1; i <= n; i++ {
		out = append(out, PageButton{Page: i})
	}
	if totalPages > windowSize {
		out = append(out, PageButton{Ellipsis: true}, PageButton{Page: totalPages})
	}
	return out
}
