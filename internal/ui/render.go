package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"datagrid/internal/grid"
	"datagrid/internal/util/logx"
)

const (
	minColWidth = 3
	maxColWidth = 32
)

func (m *Model) View() string {
	v := m.renderGrid()
	if m.modalActive {
		dimmed := lipgloss.NewStyle().Faint(true).Render(v)
		v = overlay(dimmed, m.renderModal())
	}
	return v
}

// refresh rebuilds the table from the controller's current page.
func (m *Model) refresh() {
	cols := m.ctrl.Columns()
	if m.selCol >= len(cols) {
		m.selCol = len(cols) - 1
	}
	if m.selCol < 0 {
		m.selCol = 0
	}
	rows := m.ctrl.PageRows()
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = make([]string, len(cols))
		for j, c := range cols {
			cells[i][j] = cellText(c, r)
		}
	}
	widths := make([]int, len(cols))
	for j, c := range cols {
		w := runeLen(m.headerTitle(j, c))
		for i := range cells {
			if n := runeLen(cells[i][j]); n > w {
				w = n
			}
		}
		widths[j] = clampInt(w, minColWidth, maxColWidth)
	}
	m.visCols = m.fitColumns(widths)

	tcols := make([]table.Column, 0, len(m.visCols))
	for _, j := range m.visCols {
		tcols = append(tcols, table.Column{Title: m.headerTitle(j, cols[j]), Width: widths[j]})
	}
	trows := make([]table.Row, len(rows))
	for i := range rows {
		tr := make(table.Row, 0, len(m.visCols))
		for _, j := range m.visCols {
			tr = append(tr, truncateRunes(cells[i][j], widths[j]))
		}
		trows[i] = tr
	}
	// rows must be cleared before the columns shrink or the table indexes
	// past the end of the old rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
	m.tbl.SetHeight(m.ctrl.State().Pagination.PageSize + 1)
	if c := m.tbl.Cursor(); c >= len(trows) && len(trows) > 0 {
		m.tbl.SetCursor(len(trows) - 1)
	}
}

// fitColumns picks the run of columns that fits the terminal width and
// contains the selected column.
func (m *Model) fitColumns(widths []int) []int {
	if len(widths) == 0 {
		return nil
	}
	avail := m.termWidth
	if avail <= 0 {
		avail = 80
	}
	if m.colOff > m.selCol {
		m.colOff = m.selCol
	}
	span := func(from, to int) int {
		n := 0
		for i := from; i <= to; i++ {
			n += widths[i] + 1
		}
		return n
	}
	for m.colOff < m.selCol && span(m.colOff, m.selCol) > avail {
		m.colOff++
	}
	out := []int{m.colOff}
	used := widths[m.colOff] + 1
	for j := m.colOff + 1; j < len(widths); j++ {
		if used+widths[j]+1 > avail {
			break
		}
		used += widths[j] + 1
		out = append(out, j)
	}
	return out
}

func (m *Model) headerTitle(j int, c grid.ColumnSpec) string {
	title := c.Title()
	if s := m.ctrl.State().Sort; s.Active() && s.Field == c.Field {
		if s.Direction == grid.Descending {
			title += "▼"
		} else {
			title += "▲"
		}
	}
	if _, ok := m.ctrl.State().Filter.Fields[c.Field]; ok {
		title += "*"
	}
	if j == m.selCol {
		return "«" + title + "»"
	}
	return title
}

func cellText(c grid.ColumnSpec, r grid.Row) string {
	v := r.Value(c.Field)
	if c.Render != nil {
		return c.Render(v, r)
	}
	return strings.ReplaceAll(grid.DisplayString(v), "\n", " ")
}

func (m *Model) renderGrid() string {
	parts := []string{m.tbl.View()}
	if agg := m.renderAggregates(); agg != "" {
		parts = append(parts, agg)
	}
	parts = append(parts, m.renderPager(), m.renderInline(), m.renderStatus(), m.help.View(m.keymap))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderAggregates() string {
	aggs := m.ctrl.Aggregates()
	if len(aggs) == 0 {
		return ""
	}
	var items []string
	for _, c := range m.ctrl.Columns() {
		v, ok := aggs[c.Field]
		if !ok {
			continue
		}
		label := "Σ"
		if c.Aggregate == grid.AggregateAverage {
			label = "avg"
		}
		items = append(items, fmt.Sprintf("%s %s: %s", label, c.Title(), formatNumber(v)))
	}
	return m.styles.Aggregates.Render(strings.Join(items, "   "))
}

func (m *Model) renderPager() string {
	info := m.ctrl.PageInfo()
	p := m.ctrl.State().Pagination
	var b strings.Builder
	if info.IsFirst {
		b.WriteString(m.styles.Ellipsis.Render("‹ "))
	} else {
		b.WriteString("‹ ")
	}
	for _, btn := range info.Window {
		if btn.Ellipsis {
			b.WriteString(m.styles.Ellipsis.Render("…"))
			b.WriteString(" ")
			continue
		}
		label := fmt.Sprintf("%d", btn.Page)
		if btn.Page == p.Page {
			b.WriteString(m.styles.PageCurrent.Render(" " + label + " "))
		} else {
			b.WriteString(m.styles.PageOther.Render(label))
		}
		b.WriteString(" ")
	}
	if info.IsLast {
		b.WriteString(m.styles.Ellipsis.Render("›"))
	} else {
		b.WriteString("›")
	}
	start, end := p.Bounds(p.TotalRecords)
	if p.TotalRecords == 0 {
		start = -1
	}
	b.WriteString(fmt.Sprintf("   rows %d-%d of %d   page size %d", start+1, end, p.TotalRecords, p.PageSize))
	return b.String()
}

func (m *Model) renderInline() string {
	switch m.inline {
	case inlineFilter, inlineExpr:
		return m.input.View() + m.styles.Help.Render("    [enter]=apply [esc]=cancel")
	case inlineEdit:
		return m.styles.Editing.Render(m.input.View()) + m.styles.Help.Render("    [enter/esc]=save")
	}
	f := m.ctrl.State().Filter
	if !f.Active() {
		return ""
	}
	keys := make([]string, 0, len(f.Fields))
	for k := range f.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s~%q", k, f.Fields[k]))
	}
	if f.Expr != "" {
		parts = append(parts, "where "+f.Expr)
	}
	return m.styles.Help.Render("filter: " + strings.Join(parts, " ") + "    [F]=clear")
}

func (m *Model) renderStatus() string {
	src := string(m.sess.Source)
	if m.lines != nil {
		src += fmt.Sprintf(" (following, +%d)", m.appended)
	}
	line := fmt.Sprintf("[%s] rows:%d visible:%d", src, len(m.ctrl.Rows()), len(m.ctrl.VisibleRows()))
	if m.lastMsg != "" {
		msg := m.lastMsg
		if m.lastErr {
			msg = m.styles.Error.Render(msg)
		}
		return m.styles.Status.Render(line+" | ") + msg
	}
	return m.styles.Status.Render(line)
}

func (m *Model) openHelpModal() {
	m.modalActive = true
	m.modalKind = modalHelp
	m.modalTitle = "Help"
	full := m.help
	full.ShowAll = true
	m.modalBody = full.View(m.keymap)
	m.resizeModal()
}

func (m *Model) openAppLogsModal() {
	m.modalActive = true
	m.modalKind = modalLogs
	m.modalTitle = "Application Logs"
	m.modalBody = strings.Join(logx.Tail(200), "\n")
	m.resizeModal()
	m.modalVP.GotoBottom()
}

func (m *Model) openInspectModal() {
	row, ok := m.currentRow()
	if !ok {
		return
	}
	m.modalActive = true
	m.modalKind = modalInspect
	m.modalTitle = "Row " + row.ID
	m.modalBody = renderRow(row, m.ctrl.Columns(), m.styles)
	m.resizeModal()
}

func (m *Model) resizeModal() {
	w := m.termWidth - 6
	h := m.termHeight - 6
	if w < 20 {
		w = 20
	}
	if h < 5 {
		h = 5
	}
	m.modalVP = viewport.New(w-4, h-4)
	m.modalVP.SetContent(m.modalBody)
}

func (m *Model) renderModal() string {
	content := m.modalVP.View() + "\n" + m.styles.Help.Render("[esc/enter]=close  [↑/↓]=scroll")
	boxW := m.termWidth - 6
	if boxW < 20 {
		boxW = 20
	}
	title := m.styles.PopupTitle.Render(m.modalTitle)
	body := m.styles.PopupBox.Width(boxW).Render(title + "\n" + content)
	return lipgloss.Place(m.termWidth, m.termHeight, lipgloss.Center, lipgloss.Center, body)
}
