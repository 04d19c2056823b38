package grid

import "testing"

func TestStartEditNonEditableIsNoop(t *testing.T) {
	s, changes := EditTransition(EditState{Kind: EditIdle}, EditEvent{Kind: EventStart, RowID: "1", Field: "rate"}, peopleColumns())
	if s.Editing() || len(changes) != 0 {
		t.Fatalf("got %+v %v", s, changes)
	}
}

func TestEditLifecycle(t *testing.T) {
	cols := peopleColumns()
	s, _ := EditTransition(EditState{}, EditEvent{Kind: EventStart, RowID: "1", Field: "name", Value: "Bob"}, cols)
	if !s.Targets("1", "name") || s.Draft != "Bob" {
		t.Fatalf("start: %+v", s)
	}
	s, _ = EditTransition(s, EditEvent{Kind: EventDraft, Value: "Rob"}, cols)
	if s.Draft != "Rob" {
		t.Fatalf("draft: %+v", s)
	}
	s, changes := EditTransition(s, EditEvent{Kind: EventCommit}, cols)
	if s.Kind != EditIdle {
		t.Fatalf("commit must return to idle: %+v", s)
	}
	if len(changes) != 1 || changes[0] != (CellChange{RowID: "1", Field: "name", Value: "Rob"}) {
		t.Fatalf("changes: %+v", changes)
	}
}

func TestDraftForOtherCellIgnored(t *testing.T) {
	cols := peopleColumns()
	s, _ := EditTransition(EditState{}, EditEvent{Kind: EventStart, RowID: "1", Field: "name", Value: "Bob"}, cols)
	s, _ = EditTransition(s, EditEvent{Kind: EventDraft, RowID: "2", Field: "name", Value: "x"}, cols)
	if s.Draft != "Bob" {
		t.Fatalf("draft for another cell applied: %+v", s)
	}
}

func TestStartWhileEditingCommitsFirst(t *testing.T) {
	cols := peopleColumns()
	s, _ := EditTransition(EditState{}, EditEvent{Kind: EventStart, RowID: "1", Field: "name", Value: "Bob"}, cols)
	s, _ = EditTransition(s, EditEvent{Kind: EventDraft, Value: "Rob"}, cols)
	s, changes := EditTransition(s, EditEvent{Kind: EventStart, RowID: "2", Field: "score", Value: 10}, cols)
	if len(changes) != 1 || changes[0].RowID != "1" || changes[0].Value != "Rob" {
		t.Fatalf("previous edit not committed: %+v", changes)
	}
	if !s.Targets("2", "score") || s.Draft != 10 {
		t.Fatalf("new edit not opened: %+v", s)
	}
}

func TestRestartSameCellKeepsDraft(t *testing.T) {
	cols := peopleColumns()
	s, _ := EditTransition(EditState{}, EditEvent{Kind: EventStart, RowID: "1", Field: "name", Value: "Bob"}, cols)
	s, _ = EditTransition(s, EditEvent{Kind: EventDraft, Value: "Rob"}, cols)
	s, changes := EditTransition(s, EditEvent{Kind: EventStart, RowID: "1", Field: "name", Value: "Bob"}, cols)
	if len(changes) != 0 || s.Draft != "Rob" {
		t.Fatalf("got %+v %v", s, changes)
	}
}

func TestCancelAndIdleEvents(t *testing.T) {
	cols := peopleColumns()
	s, _ := EditTransition(EditState{}, EditEvent{Kind: EventStart, RowID: "1", Field: "name", Value: "Bob"}, cols)
	s, changes := EditTransition(s, EditEvent{Kind: EventCancel}, cols)
	if s.Editing() || len(changes) != 0 {
		t.Fatalf("cancel: %+v %v", s, changes)
	}
	for _, k := range []EditEventKind{EventCommit, EventCancel, EventDraft} {
		next, changes := EditTransition(s, EditEvent{Kind: k, Value: "x"}, cols)
		if next.Editing() || len(changes) != 0 || next.Draft != nil {
			t.Fatalf("%s from idle: %+v %v", k, next, changes)
		}
	}
}
