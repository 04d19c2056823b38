package grid

import (
	"context"
	"errors"

	"github.com/looplab/fsm"
)

type EditKind string

const (
	EditIdle    EditKind = "idle"
	EditEditing EditKind = "editing"
)

// EditState is Idle or Editing{RowID, Field, Draft}. The zero value is Idle.
type EditState struct {
	Kind  EditKind
	RowID string
	Field string
	Draft any
}

func (e EditState) Editing() bool { return e.Kind == EditEditing }

func (e EditState) Targets(rowID, field string) bool {
	return e.Editing() && e.RowID == rowID && e.Field == field
}

type EditEventKind string

const (
	EventStart  EditEventKind = "start"
	EventDraft  EditEventKind = "draft"
	EventCommit EditEventKind = "commit"
	EventCancel EditEventKind = "cancel"
)

// EditEvent drives EditTransition. Start uses RowID, Field and Value (the
// cell's current value); Draft uses Value.
type EditEvent struct {
	Kind  EditEventKind
	RowID string
	Field string
	Value any
}

// CellChange is a write produced by a commit.
type CellChange struct {
	RowID string
	Field string
	Value any
}

var editEvents = fsm.Events{
	{Name: string(EventStart), Src: []string{string(EditIdle)}, Dst: string(EditEditing)},
	{Name: string(EventDraft), Src: []string{string(EditEditing)}, Dst: string(EditEditing)},
	{Name: string(EventCommit), Src: []string{string(EditEditing)}, Dst: string(EditIdle)},
	{Name: string(EventCancel), Src: []string{string(EditEditing)}, Dst: string(EditIdle)},
}

// fire runs ev against the edit transition table starting at from.
func fire(from EditKind, ev EditEventKind) (EditKind, bool) {
	if from == "" {
		from = EditIdle
	}
	m := fsm.NewFSM(string(from), editEvents, fsm.Callbacks{})
	if !m.Can(string(ev)) {
		return from, false
	}
	if err := m.Event(context.Background(), string(ev)); err != nil {
		var nt fsm.NoTransitionError
		if !errors.As(err, &nt) {
			return from, false
		}
	}
	return EditKind(m.Current()), true
}

// EditTransition applies ev to s and returns the next state plus the cell
// writes it implies. Starting an edit on a non-editable column is a no-op.
// Starting an edit while another cell is being edited commits the previous
// one first; restarting the cell already being edited keeps its draft.
func EditTransition(s EditState, ev EditEvent, cols Columns) (EditState, []CellChange) {
	if s.Kind == "" {
		s.Kind = EditIdle
	}
	switch ev.Kind {
	case EventStart:
		if !cols.editable(ev.Field) || ev.RowID == "" {
			return s, nil
		}
		if s.Targets(ev.RowID, ev.Field) {
			return s, nil
		}
		var changes []CellChange
		if s.Editing() {
			s, changes = EditTransition(s, EditEvent{Kind: EventCommit}, cols)
		}
		kind, ok := fire(s.Kind, EventStart)
		if !ok {
			return s, changes
		}
		return EditState{Kind: kind, RowID: ev.RowID, Field: ev.Field, Draft: ev.Value}, changes
	case EventDraft:
		if ev.RowID != "" && (ev.RowID != s.RowID || ev.Field != s.Field) {
			return s, nil
		}
		if _, ok := fire(s.Kind, EventDraft); !ok {
			return s, nil
		}
		s.Draft = ev.Value
		return s, nil
	case EventCommit:
		kind, ok := fire(s.Kind, EventCommit)
		if !ok {
			return s, nil
		}
		change := CellChange{RowID: s.RowID, Field: s.Field, Value: s.Draft}
		return EditState{Kind: kind}, []CellChange{change}
	case EventCancel:
		kind, ok := fire(s.Kind, EventCancel)
		if !ok {
			return s, nil
		}
		return EditState{Kind: kind}, nil
	}
	return s, nil
}
