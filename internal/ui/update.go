package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"datagrid/internal/grid"
	"datagrid/internal/util/logx"
)

const pageSizeStep = 5

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth, m.termHeight = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.tbl.SetWidth(msg.Width)
		m.refresh()
		if m.modalActive {
			m.resizeModal()
		}
		return m, nil
	case lineMsg:
		row, ok, err := m.sess.AppendLine(msg.line.Text)
		if ok {
			m.appended++
		}
		if err != nil {
			m.setStatus("persist row "+row.ID, err)
		}
		m.refresh()
		return m, m.waitLine()
	case followErrMsg:
		logx.Warnf("ui: follow: %v", msg.err)
		m.setStatus("follow", msg.err)
		return m, m.waitLine()
	case followDoneMsg:
		m.lines, m.errs = nil, nil
		return m, nil
	case tea.KeyMsg:
		if m.modalActive {
			return m.updateModal(msg)
		}
		if m.inline != inlineNone {
			return m.updateInline(msg)
		}
		return m.updateGrid(msg)
	}
	return m, nil
}

func (m *Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.modalActive = false
		m.modalKind = modalNone
		return m, nil
	}
	if key.Matches(msg, m.keymap.Quit) || key.Matches(msg, m.keymap.Help) && m.modalKind == modalHelp {
		m.modalActive = false
		m.modalKind = modalNone
		return m, nil
	}
	var cmd tea.Cmd
	m.modalVP, cmd = m.modalVP.Update(msg)
	return m, cmd
}

func (m *Model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := m.keymap
	switch {
	case key.Matches(msg, km.Quit):
		return m, tea.Quit
	case key.Matches(msg, km.Up):
		m.tbl.MoveUp(1)
	case key.Matches(msg, km.Down):
		m.tbl.MoveDown(1)
	case key.Matches(msg, km.Left):
		if m.selCol > 0 {
			m.selCol--
		}
		m.refresh()
	case key.Matches(msg, km.Right):
		if m.selCol < len(m.ctrl.Columns())-1 {
			m.selCol++
		}
		m.refresh()
	case key.Matches(msg, km.Sort):
		if col, ok := m.currentColumn(); ok {
			if !col.Sortable {
				m.setStatus(col.Title()+" is not sortable", nil)
				break
			}
			m.ctrl.SetSort(col.Field)
			s := m.ctrl.State().Sort
			m.setStatus(fmt.Sprintf("sorted by %s %s", s.Field, s.Direction), nil)
			m.refresh()
		}
	case key.Matches(msg, km.ClearSort):
		m.ctrl.SetSort("")
		m.setStatus("sort cleared", nil)
		m.refresh()
	case key.Matches(msg, km.Filter):
		col, ok := m.currentColumn()
		if !ok {
			break
		}
		if !col.Filterable {
			m.setStatus(col.Title()+" is not filterable", nil)
			break
		}
		m.inField = col.Field
		return m, m.openInline(inlineFilter, "filter "+col.Title()+": ", m.ctrl.State().Filter.Fields[col.Field])
	case key.Matches(msg, km.ClearFilter):
		m.ctrl.ClearFilters()
		m.setStatus("filters cleared", nil)
		m.refresh()
	case key.Matches(msg, km.Expr):
		return m, m.openInline(inlineExpr, "where ", m.ctrl.State().Filter.Expr)
	case key.Matches(msg, km.Edit):
		return m, m.startEdit()
	case key.Matches(msg, km.NextPage):
		m.ctrl.NextPage()
		m.refresh()
	case key.Matches(msg, km.PrevPage):
		m.ctrl.PrevPage()
		m.refresh()
	case key.Matches(msg, km.FirstPage):
		m.ctrl.FirstPage()
		m.refresh()
	case key.Matches(msg, km.LastPage):
		m.ctrl.LastPage()
		m.refresh()
	case key.Matches(msg, km.Bigger):
		m.ctrl.SetPageSize(m.ctrl.State().Pagination.PageSize + pageSizeStep)
		m.refresh()
	case key.Matches(msg, km.Smaller):
		size := m.ctrl.State().Pagination.PageSize - pageSizeStep
		if size < 1 {
			size = 1
		}
		m.ctrl.SetPageSize(size)
		m.refresh()
	case key.Matches(msg, km.Add):
		row, err := m.ctrl.AddRow(grid.Row{})
		m.setStatus("added row "+row.ID, err)
		m.ctrl.LastPage()
		m.refresh()
		m.tbl.GotoBottom()
	case key.Matches(msg, km.Delete):
		if row, ok := m.currentRow(); ok {
			err := m.ctrl.DeleteRow(row.ID)
			m.setStatus("deleted row "+row.ID, err)
			m.refresh()
		}
	case key.Matches(msg, km.Inspect):
		m.openInspectModal()
	case key.Matches(msg, km.AppLogs):
		m.openAppLogsModal()
	case key.Matches(msg, km.Help):
		m.openHelpModal()
	}
	return m, nil
}

func (m *Model) openInline(mode inlineMode, prompt, value string) tea.Cmd {
	m.inline = mode
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) closeInline() {
	m.inline = inlineNone
	m.inField = ""
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) startEdit() tea.Cmd {
	row, ok := m.currentRow()
	col, okc := m.currentColumn()
	if !ok || !okc {
		return nil
	}
	if !col.Editable {
		m.setStatus(col.Title()+" is read-only", nil)
		return nil
	}
	if err := m.ctrl.StartEdit(row.ID, col.Field); err != nil {
		m.setStatus("save previous edit", err)
	}
	ed := m.ctrl.Edit()
	if !ed.Targets(row.ID, col.Field) {
		return nil
	}
	m.editOrig = ed.Draft
	return m.openInline(inlineEdit, "edit "+col.Title()+": ", grid.DisplayString(ed.Draft))
}

func (m *Model) updateInline(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.applyInline()
		return m, nil
	case tea.KeyEsc:
		// leaving the editor is a blur and commits like enter
		if m.inline == inlineEdit {
			m.applyInline()
			return m, nil
		}
		m.closeInline()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.inline == inlineEdit {
		m.ctrl.ChangeDraft(draftValue(m.editOrig, m.input.Value()))
	}
	return m, cmd
}

func (m *Model) applyInline() {
	value := m.input.Value()
	switch m.inline {
	case inlineFilter:
		m.ctrl.SetFilter(m.inField, strings.TrimSpace(value))
		m.setStatus(fmt.Sprintf("%d rows match", len(m.ctrl.VisibleRows())), nil)
	case inlineExpr:
		if err := m.ctrl.SetExpression(strings.TrimSpace(value)); err != nil {
			m.setStatus("expression", err)
			return
		}
		m.setStatus(fmt.Sprintf("%d rows match", len(m.ctrl.VisibleRows())), nil)
	case inlineEdit:
		ed := m.ctrl.Edit()
		m.ctrl.ChangeDraft(draftValue(m.editOrig, value))
		err := m.ctrl.Commit()
		m.setStatus(fmt.Sprintf("saved %s.%s", ed.RowID, ed.Field), err)
	}
	m.closeInline()
	m.refresh()
}

// draftValue keeps numeric cells numeric: prev is the value the cell held
// when the edit started.
func draftValue(prev any, text string) any {
	t := strings.TrimSpace(text)
	switch prev.(type) {
	case int:
		if n, err := strconv.Atoi(t); err == nil {
			return n
		}
	case float64, float32, int64, int32:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f
		}
	case nil:
		if t == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f
		}
	}
	return text
}
