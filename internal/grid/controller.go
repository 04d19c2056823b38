package grid

import (
	"github.com/google/uuid"

	"datagrid/internal/util/logx"
)

type Options struct {
	Columns  Columns
	PageSize int
	Mode     PagingMode
	Rollback RollbackPolicy
	Hooks    Hooks
	// NewID generates ids for rows added without one. Defaults to UUIDs.
	NewID func() string
}

// View is the render-ready output of the controller.
type View struct {
	Columns     Columns
	VisibleRows []Row
	PageRows    []Row
	Aggregates  AggregateResult
	Pagination  PaginationState
	Page        PageInfo
	Sort        SortState
	Filter      FilterState
	Edit        EditState
}

// Controller owns a row store and the grid state and runs the
// filter -> sort -> paginate pipeline after every mutation. It is not safe
// for concurrent use; callers deliver events one at a time.
type Controller struct {
	cols     Columns
	mode     PagingMode
	rollback RollbackPolicy
	hooks    Hooks
	newID    func() string

	rows    []Row
	state   GridState
	visible []Row
	aggs    AggregateResult
}

func New(opts Options) *Controller {
	c := &Controller{
		cols:     opts.Columns,
		mode:     opts.Mode,
		rollback: opts.Rollback,
		hooks:    opts.Hooks,
		newID:    opts.NewID,
		state:    NewGridState(opts.PageSize),
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	c.recompute()
	return c
}

func (c *Controller) Columns() Columns { return c.cols }

func (c *Controller) State() GridState {
	s := c.state
	s.Filter = s.Filter.Clone()
	return s
}

// Rows returns a copy of the row store in store order.
func (c *Controller) Rows() []Row { return cloneRows(c.rows) }

func (c *Controller) Row(id string) (Row, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.rows[i].Clone(), true
	}
	return Row{}, false
}

// VisibleRows is the filtered and sorted row set before pagination.
func (c *Controller) VisibleRows() []Row { return cloneRows(c.visible) }

// PageRows is the slice of VisibleRows shown on the current page. In remote
// paging mode the store already holds one page, so all visible rows are
// returned.
func (c *Controller) PageRows() []Row {
	if c.mode == PagingRemote {
		return cloneRows(c.visible)
	}
	start, end := c.state.Pagination.Bounds(len(c.visible))
	return cloneRows(c.visible[start:end])
}

func (c *Controller) Aggregates() AggregateResult {
	out := make(AggregateResult, len(c.aggs))
	for k, v := range c.aggs {
		out[k] = v
	}
	return out
}

func (c *Controller) PageInfo() PageInfo { return Derive(c.state.Pagination) }

func (c *Controller) Edit() EditState { return c.state.Edit }

func (c *Controller) View() View {
	s := c.State()
	return View{
		Columns:     c.cols,
		VisibleRows: c.VisibleRows(),
		PageRows:    c.PageRows(),
		Aggregates:  c.Aggregates(),
		Pagination:  s.Pagination,
		Page:        Derive(s.Pagination),
		Sort:        s.Sort,
		Filter:      s.Filter,
		Edit:        s.Edit,
	}
}

// SetRows replaces the row store wholesale. Filter, sort, page and edit state
// survive, except that an edit on a row that is gone is discarded. Only the
// first row of each id is kept.
func (c *Controller) SetRows(rows []Row) {
	c.rows = UniqueRows(rows)
	c.dropStaleEdit()
	c.update(c.state)
}

// SetRemotePage installs the rows of the current page together with the total
// record count reported by the server.
func (c *Controller) SetRemotePage(rows []Row, totalRecords int) {
	c.rows = UniqueRows(rows)
	c.dropStaleEdit()
	c.update(SetTotalRecords(c.state, totalRecords))
}

func (c *Controller) SetFilter(field, value string) {
	c.update(ApplyFilter(c.state, field, value, c.cols))
}

func (c *Controller) SetExpression(expr string) error {
	next, err := ApplyExpression(c.state, expr)
	if err != nil {
		logx.Debugf("grid: rejected filter expression %q: %v", expr, err)
		return err
	}
	c.update(next)
	return nil
}

func (c *Controller) ClearFilters() { c.update(ClearFilters(c.state)) }

func (c *Controller) SetSort(field string) { c.update(ApplySort(c.state, field, c.cols)) }

func (c *Controller) SetPage(n int) { c.update(SetPage(c.state, n)) }

func (c *Controller) NextPage() { c.update(NextPage(c.state)) }

func (c *Controller) PrevPage() { c.update(PrevPage(c.state)) }

func (c *Controller) FirstPage() { c.update(SetPage(c.state, 1)) }

func (c *Controller) LastPage() {
	c.update(SetPage(c.state, c.state.Pagination.TotalPages()))
}

func (c *Controller) SetPageSize(n int) { c.update(SetPageSize(c.state, n)) }

// AddRow appends a row built from partial. Missing column fields are set to
// nil and an empty id is replaced by a generated one. An id that already
// exists makes the call a no-op returning the zero Row.
func (c *Controller) AddRow(partial Row) (Row, error) {
	row := partial.Clone()
	if row.ID == "" {
		row.ID = c.newID()
	}
	if c.indexOf(row.ID) >= 0 {
		logx.Debugf("grid: add row ignored, id %s exists", row.ID)
		return Row{}, nil
	}
	for _, col := range c.cols {
		if col.Field == "id" {
			continue
		}
		if _, ok := row.Fields[col.Field]; !ok {
			row.Fields[col.Field] = nil
		}
	}
	c.rows = append(c.rows, row)
	c.update(c.state)
	if c.hooks.OnRowAdd == nil {
		return row.Clone(), nil
	}
	if err := c.hooks.OnRowAdd(row.Clone()); err != nil {
		logx.Warnf("grid: add row %s hook failed: %v", row.ID, err)
		if c.rollback == RollbackRevert {
			if i := c.indexOf(row.ID); i >= 0 {
				c.rows = append(c.rows[:i], c.rows[i+1:]...)
			}
			c.dropStaleEdit()
			c.update(c.state)
			logx.Infof("grid: reverted add of row %s", row.ID)
		}
		return row.Clone(), err
	}
	return row.Clone(), nil
}

// DeleteRow removes the row with id. Unknown ids are ignored. A reverted
// delete also brings back an edit that was open on the row.
func (c *Controller) DeleteRow(id string) error {
	i := c.indexOf(id)
	if i < 0 {
		return nil
	}
	removed, edit := c.rows[i], c.state.Edit
	c.rows = append(c.rows[:i:i], c.rows[i+1:]...)
	c.dropStaleEdit()
	c.update(c.state)
	if c.hooks.OnRowDelete == nil {
		return nil
	}
	if err := c.hooks.OnRowDelete(id); err != nil {
		logx.Warnf("grid: delete row %s hook failed: %v", id, err)
		if c.rollback == RollbackRevert {
			if i > len(c.rows) {
				i = len(c.rows)
			}
			c.rows = append(c.rows[:i:i], append([]Row{removed}, c.rows[i:]...)...)
			if edit.Editing() && edit.RowID == id {
				c.state.Edit = edit
			}
			c.update(c.state)
			logx.Infof("grid: reverted delete of row %s", id)
		}
		return err
	}
	return nil
}

// StartEdit opens an edit on (rowID, field) with the cell's current value as
// draft. Unknown rows and non-editable columns are ignored. An edit already
// open on another cell is committed first; the error of that commit is
// returned.
func (c *Controller) StartEdit(rowID, field string) error {
	i := c.indexOf(rowID)
	if i < 0 {
		return nil
	}
	ev := EditEvent{Kind: EventStart, RowID: rowID, Field: field, Value: c.rows[i].Value(field)}
	return c.editEvent(ev)
}

func (c *Controller) ChangeDraft(value any) {
	_ = c.editEvent(EditEvent{Kind: EventDraft, RowID: c.state.Edit.RowID, Field: c.state.Edit.Field, Value: value})
}

// Commit writes the draft into the row store, returns to Idle and calls
// OnCellUpdate. Enter and blur both map here.
func (c *Controller) Commit() error { return c.editEvent(EditEvent{Kind: EventCommit}) }

// Cancel returns to Idle without touching the row store.
func (c *Controller) Cancel() { _ = c.editEvent(EditEvent{Kind: EventCancel}) }

func (c *Controller) editEvent(ev EditEvent) error {
	next, changes := EditTransition(c.state.Edit, ev, c.cols)
	if cur := c.state.Edit; next.Kind != cur.Kind || next.RowID != cur.RowID || next.Field != cur.Field {
		logx.Debugf("grid: edit %s -> %s (%s)", c.state.Edit.Kind, next.Kind, ev.Kind)
	}
	s := c.state
	s.Edit = next
	c.state = s
	var firstErr error
	for _, ch := range changes {
		if err := c.applyChange(ch); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if len(changes) > 0 {
		c.update(c.state)
	}
	return firstErr
}

func (c *Controller) applyChange(ch CellChange) error {
	i := c.indexOf(ch.RowID)
	if i < 0 {
		return nil
	}
	prev, had := c.rows[i].Fields[ch.Field]
	if c.rows[i].Fields == nil {
		c.rows[i].Fields = map[string]any{}
	}
	c.rows[i].Fields[ch.Field] = ch.Value
	if c.hooks.OnCellUpdate == nil {
		return nil
	}
	err := c.hooks.OnCellUpdate(ch.RowID, ch.Field, ch.Value)
	if err == nil {
		return nil
	}
	logx.Warnf("grid: cell update %s.%s hook failed: %v", ch.RowID, ch.Field, err)
	if c.rollback == RollbackRevert {
		if j := c.indexOf(ch.RowID); j >= 0 {
			if had {
				c.rows[j].Fields[ch.Field] = prev
			} else {
				delete(c.rows[j].Fields, ch.Field)
			}
		}
		logx.Infof("grid: reverted cell %s.%s", ch.RowID, ch.Field)
	}
	return err
}

func (c *Controller) dropStaleEdit() {
	if c.state.Edit.Editing() && c.indexOf(c.state.Edit.RowID) < 0 {
		logx.Debugf("grid: discarding edit on removed row %s", c.state.Edit.RowID)
		c.state.Edit, _ = EditTransition(c.state.Edit, EditEvent{Kind: EventCancel}, c.cols)
	}
}

// UniqueRows returns a copy of rows keeping the first row of every id.
func UniqueRows(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for _, r := range rows {
		if seen[r.ID] {
			logx.Warnf("grid: dropping row with duplicate id %s", r.ID)
			continue
		}
		seen[r.ID] = true
		out = append(out, r.Clone())
	}
	return out
}

func (c *Controller) indexOf(id string) int {
	for i := range c.rows {
		if c.rows[i].ID == id {
			return i
		}
	}
	return -1
}

// update installs next, recomputes derived rows and notifies the host of
// sort, filter and page changes.
func (c *Controller) update(next GridState) {
	prev := c.state
	c.state = next
	c.recompute()
	cur := c.state
	if prev.Sort != cur.Sort {
		logx.Debugf("grid: sort %s %s", cur.Sort.Field, cur.Sort.Direction)
		if c.hooks.OnSortChange != nil {
			c.hooks.OnSortChange(cur.Sort)
		}
	}
	if !prev.Filter.equal(cur.Filter) {
		logx.Debugf("grid: filter %v expr=%q", cur.Filter.Fields, cur.Filter.Expr)
		if c.hooks.OnFilterChange != nil {
			c.hooks.OnFilterChange(cur.Filter.Clone())
		}
	}
	if prev.Pagination.PageSize != cur.Pagination.PageSize {
		logx.Debugf("grid: page size %d", cur.Pagination.PageSize)
		if c.hooks.OnPageSizeChange != nil {
			c.hooks.OnPageSizeChange(cur.Pagination.PageSize)
		}
	}
	if prev.Pagination.Page != cur.Pagination.Page {
		logx.Debugf("grid: page %d/%d", cur.Pagination.Page, cur.Pagination.TotalPages())
		if c.hooks.OnPageChange != nil {
			c.hooks.OnPageChange(cur.Pagination.Page)
		}
	}
}

func (c *Controller) recompute() {
	c.visible = SortRows(FilterRows(c.rows, c.state.Filter, c.cols), c.state.Sort)
	c.aggs = Aggregate(c.visible, c.cols)
	if c.mode == PagingLocal {
		c.state = SetTotalRecords(c.state, len(c.visible))
	}
}
