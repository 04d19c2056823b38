package grid

import "testing"

func TestApplyFilterDoesNotMutateInput(t *testing.T) {
	cols := peopleColumns()
	s0 := NewGridState(10)
	s1 := ApplyFilter(s0, "name", "a", cols)
	if len(s0.Filter.Fields) != 0 {
		t.Fatalf("input state mutated: %v", s0.Filter.Fields)
	}
	s2 := ApplyFilter(s1, "name", "", cols)
	if _, ok := s2.Filter.Fields["name"]; ok {
		t.Fatalf("empty value must clear the entry")
	}
	if s1.Filter.Fields["name"] != "a" {
		t.Fatalf("clearing mutated the previous state")
	}
}

func TestApplyFilterIgnoresNonFilterable(t *testing.T) {
	cols := peopleColumns()
	s := SetPage(SetTotalRecords(NewGridState(1), 3), 3)
	next := ApplyFilter(s, "rate", "4", cols)
	if len(next.Filter.Fields) != 0 || next.Pagination.Page != 3 {
		t.Fatalf("non-filterable field changed state: %+v", next)
	}
}

func TestApplySortEmptyFieldRestoresInputOrder(t *testing.T) {
	cols := peopleColumns()
	s := ApplySort(NewGridState(10), "score", cols)
	s = ApplySort(s, "", cols)
	if s.Sort.Active() {
		t.Fatalf("sort still active: %+v", s.Sort)
	}
}

func TestApplyExpressionRejectsBadSyntax(t *testing.T) {
	s := NewGridState(10)
	next, err := ApplyExpression(s, "score >")
	if err == nil {
		t.Fatalf("expected error")
	}
	if next.Filter.Expr != "" {
		t.Fatalf("state changed on error")
	}
}
