package grid

// GridState is the complete interaction state of one grid. Reducers below
// take a state and return the next one without touching the input.
type GridState struct {
	Filter     FilterState
	Sort       SortState
	Pagination PaginationState
	Edit       EditState
}

func NewGridState(pageSize int) GridState {
	return GridState{
		Filter:     FilterState{Fields: map[string]string{}},
		Pagination: NewPagination(pageSize),
		Edit:       EditState{Kind: EditIdle},
	}
}

// ApplyFilter sets or clears the substring filter on field and resets to
// page 1. Fields that are unknown or not filterable are ignored.
func ApplyFilter(s GridState, field, value string, cols Columns) GridState {
	if !cols.filterable(field) {
		return s
	}
	s.Filter = s.Filter.Clone()
	if value == "" {
		delete(s.Filter.Fields, field)
	} else {
		s.Filter.Fields[field] = value
	}
	s.Pagination.Page = 1
	return s
}

// ApplyExpression replaces the expression filter. A compile error leaves s
// unchanged.
func ApplyExpression(s GridState, expr string) (GridState, error) {
	if _, err := NewEvaluator(FilterState{Expr: expr}); err != nil {
		return s, err
	}
	s.Filter = s.Filter.Clone()
	s.Filter.Expr = expr
	s.Pagination.Page = 1
	return s, nil
}

func ClearFilters(s GridState) GridState {
	s.Filter = FilterState{Fields: map[string]string{}}
	s.Pagination.Page = 1
	return s
}

// ApplySort selects field for sorting. Selecting the active field toggles the
// direction, a new field starts ascending, and an empty field restores input
// order. Non-sortable fields are ignored.
func ApplySort(s GridState, field string, cols Columns) GridState {
	if field == "" {
		s.Sort = SortState{}
		return s
	}
	if !cols.sortable(field) {
		return s
	}
	if s.Sort.Field == field {
		if s.Sort.Direction == Ascending {
			s.Sort.Direction = Descending
		} else {
			s.Sort.Direction = Ascending
		}
		return s
	}
	s.Sort = SortState{Field: field, Direction: Ascending}
	return s
}

// SetPage moves to page n clamped to [1, max(1, totalPages)].
func SetPage(s GridState, n int) GridState {
	s.Pagination.Page = n
	s.Pagination = s.Pagination.clamp()
	return s
}

func NextPage(s GridState) GridState {
	if s.Pagination.Page >= s.Pagination.TotalPages() {
		return s
	}
	return SetPage(s, s.Pagination.Page+1)
}

func PrevPage(s GridState) GridState {
	if s.Pagination.Page <= 1 {
		return s
	}
	return SetPage(s, s.Pagination.Page-1)
}

// SetPageSize changes the page size and always returns to page 1. Sizes
// below 1 are ignored.
func SetPageSize(s GridState, n int) GridState {
	if n <= 0 {
		return s
	}
	s.Pagination.PageSize = n
	s.Pagination.Page = 1
	return s
}

// SetTotalRecords updates the record count and clamps the page down when the
// page count shrinks below it.
func SetTotalRecords(s GridState, n int) GridState {
	if n < 0 {
		n = 0
	}
	s.Pagination.TotalRecords = n
	s.Pagination = s.Pagination.clamp()
	return s
}
