package store

import (
	"errors"
	"path/filepath"
	"testing"

	"datagrid/internal/grid"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "grid.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestReplaceAllLoadOrder(t *testing.T) {
	s := openTemp(t)
	rows := []grid.Row{
		{ID: "b", Fields: map[string]any{"name": "Bob", "rate": 40.0}},
		{ID: "a", Fields: map[string]any{"name": "Amy"}},
	}
	if err := s.ReplaceAll(rows); err != nil {
		t.Fatal(err)
	}
	if err := s.Insert(grid.Row{ID: "c", Fields: map[string]any{"name": "Cid"}}); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0].ID != "b" || got[1].ID != "a" || got[2].ID != "c" {
		t.Fatalf("order: %+v", got)
	}
	if got[0].Fields["rate"] != 40.0 {
		t.Fatalf("fields: %v", got[0].Fields)
	}
	if n, _ := s.Count(); n != 3 {
		t.Fatalf("count: %d", n)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	s := openTemp(t)
	if err := s.Insert(grid.Row{ID: "1", Fields: map[string]any{"name": "Bob"}}); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateCell("1", "name", "Rob"); err != nil {
		t.Fatal(err)
	}
	got, _ := s.Load()
	if got[0].Fields["name"] != "Rob" {
		t.Fatalf("update: %v", got[0].Fields)
	}
	if err := s.UpdateCell("nope", "name", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update missing: %v", err)
	}
	if err := s.Delete("1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete missing: %v", err)
	}
}

func TestDuplicateInsertFails(t *testing.T) {
	s := openTemp(t)
	r := grid.Row{ID: "1", Fields: map[string]any{}}
	if err := s.Insert(r); err != nil {
		t.Fatal(err)
	}
	if err := s.Insert(r); err == nil {
		t.Fatalf("expected primary key violation")
	}
}

// The store backs a controller through its hooks; a failed write with the
// revert policy leaves controller and store in agreement.
func TestHooksDriveController(t *testing.T) {
	s := openTemp(t)
	seed := []grid.Row{{ID: "1", Fields: map[string]any{"name": "Bob"}}}
	if err := s.ReplaceAll(seed); err != nil {
		t.Fatal(err)
	}
	cols := grid.Columns{{Field: "name", Editable: true, Filterable: true, Sortable: true}}
	c := grid.New(grid.Options{Columns: cols, PageSize: 10, Rollback: grid.RollbackRevert, Hooks: s.Hooks()})
	c.SetRows(seed)

	if err := c.StartEdit("1", "name"); err != nil {
		t.Fatal(err)
	}
	c.ChangeDraft("Rob")
	if err := c.Commit(); err != nil {
		t.Fatal(err)
	}
	if _, err := c.AddRow(grid.Row{ID: "2", Fields: map[string]any{"name": "Amy"}}); err != nil {
		t.Fatal(err)
	}
	// a second row with id 1 is rejected by the controller before the store
	if r, err := c.AddRow(grid.Row{ID: "1"}); err != nil || r.ID != "" {
		t.Fatalf("duplicate add: %+v %v", r, err)
	}
	got, _ := s.Load()
	if len(got) != 2 || got[0].Fields["name"] != "Rob" || got[1].ID != "2" {
		t.Fatalf("store: %+v", got)
	}

	// deleting behind the controller's back makes its delete hook fail
	if err := s.Delete("2"); err != nil {
		t.Fatal(err)
	}
	if err := c.DeleteRow("2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := c.Row("2"); !ok {
		t.Fatalf("revert policy should restore the row locally")
	}
}

func TestReplaceAll(t *testing.T) {
	s := openTemp(t)
	if err := s.Insert(grid.Row{ID: "old"}); err != nil {
		t.Fatal(err)
	}
	if err := s.ReplaceAll([]grid.Row{{ID: "x"}, {ID: "y"}}); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "x" || got[1].ID != "y" {
		t.Fatalf("rows: %+v", got)
	}
}
