package grid

import "testing"

func windowPages(w []PageButton) []int {
	out := make([]int, len(w))
	for i, b := range w {
		if b.Ellipsis {
			out[i] = -1
			continue
		}
		out[i] = b.Page
	}
	return out
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, size, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{100, 7, 15},
	}
	for _, c := range cases {
		p := PaginationState{Page: 1, PageSize: c.size, TotalRecords: c.total}
		if got := p.TotalPages(); got != c.want {
			t.Errorf("total=%d size=%d: got %d want %d", c.total, c.size, got, c.want)
		}
	}
}

func TestPageWindow(t *testing.T) {
	cases := []struct {
		total int
		want  []int
	}{
		{0, []int{}},
		{1, []int{1}},
		{7, []int{1, 2, 3, 4, 5, 6, 7}},
		{8, []int{1, 2, 3, 4, 5, 6, 7, -1, 8}},
		{10, []int{1, 2, 3, 4, 5, 6, 7, -1, 10}},
	}
	for _, c := range cases {
		got := windowPages(PageWindow(c.total))
		if len(got) != len(c.want) {
			t.Fatalf("total=%d: got %v want %v", c.total, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("total=%d: got %v want %v", c.total, got, c.want)
			}
		}
	}
}

func TestDeriveScenario(t *testing.T) {
	info := Derive(PaginationState{Page: 3, PageSize: 10, TotalRecords: 95})
	if info.TotalPages != 10 {
		t.Fatalf("total pages: %d", info.TotalPages)
	}
	want := []int{1, 2, 3, 4, 5, 6, 7, -1, 10}
	got := windowPages(info.Window)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("window: got %v want %v", got, want)
		}
	}
	if info.IsFirst || info.IsLast {
		t.Fatalf("page 3 of 10 is neither first nor last: %+v", info)
	}
}

func TestSetPageClamps(t *testing.T) {
	s := SetTotalRecords(NewGridState(10), 95)
	if got := SetPage(s, 42).Pagination.Page; got != 10 {
		t.Fatalf("upper clamp: %d", got)
	}
	if got := SetPage(s, -3).Pagination.Page; got != 1 {
		t.Fatalf("lower clamp: %d", got)
	}
	empty := SetTotalRecords(NewGridState(10), 0)
	if got := SetPage(empty, 5).Pagination.Page; got != 1 {
		t.Fatalf("empty dataset stays on page 1: %d", got)
	}
}

func TestNextPrevNoWrap(t *testing.T) {
	s := SetTotalRecords(NewGridState(10), 25)
	if got := PrevPage(s).Pagination.Page; got != 1 {
		t.Fatalf("prev at first page: %d", got)
	}
	s = SetPage(s, 3)
	if got := NextPage(s).Pagination.Page; got != 3 {
		t.Fatalf("next at last page: %d", got)
	}
	if got := PrevPage(s).Pagination.Page; got != 2 {
		t.Fatalf("prev: %d", got)
	}
}

func TestSetPageSizeResetsPage(t *testing.T) {
	s := SetPage(SetTotalRecords(NewGridState(10), 95), 6)
	s = SetPageSize(s, 20)
	if s.Pagination.Page != 1 || s.Pagination.PageSize != 20 {
		t.Fatalf("got %+v", s.Pagination)
	}
	if got := SetPageSize(s, 0); got.Pagination.PageSize != 20 {
		t.Fatalf("zero page size must be ignored: %+v", got.Pagination)
	}
}

func TestShrinkingTotalClampsPage(t *testing.T) {
	s := SetPage(SetTotalRecords(NewGridState(10), 95), 9)
	s = SetTotalRecords(s, 31)
	if s.Pagination.Page != 4 {
		t.Fatalf("page: %d", s.Pagination.Page)
	}
}

func TestBounds(t *testing.T) {
	p := PaginationState{Page: 3, PageSize: 4}
	if s, e := p.Bounds(10); s != 8 || e != 10 {
		t.Fatalf("got %d..%d", s, e)
	}
	if s, e := p.Bounds(5); s != 5 || e != 5 {
		t.Fatalf("past end: %d..%d", s, e)
	}
}
