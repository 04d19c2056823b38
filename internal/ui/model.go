package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"datagrid/internal/app"
	"datagrid/internal/config"
	"datagrid/internal/grid"
	"datagrid/internal/ingest"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalHelp
	modalLogs
	modalInspect
)

type inlineMode int

const (
	inlineNone inlineMode = iota
	inlineFilter
	inlineExpr
	inlineEdit
)

type Model struct {
	ctx  context.Context
	cfg  *config.Config
	sess *app.Session
	ctrl *grid.Controller

	// follow pipeline; nil when not following
	lines <-chan ingest.Line
	errs  <-chan error

	tbl      table.Model
	help     help.Model
	input    textinput.Model
	styles   Styles
	keymap   KeyMap
	selCol   int // index into ctrl.Columns()
	colOff   int
	visCols  []int
	inline   inlineMode
	inField  string // column an inline filter applies to
	editOrig any
	lastMsg  string
	lastErr  bool
	appended int

	termWidth  int
	termHeight int

	modalActive bool
	modalKind   modalKind
	modalVP     viewport.Model
	modalTitle  string
	modalBody   string
}

func newModel(ctx context.Context, cfg *config.Config, sess *app.Session) *Model {
	m := &Model{
		ctx:        ctx,
		cfg:        cfg,
		sess:       sess,
		ctrl:       sess.Ctrl,
		help:       help.New(),
		input:      textinput.New(),
		styles:     NewStyles(cfg.Theme != config.ThemeLight),
		keymap:     DefaultKeyMap(),
		termWidth:  100,
		termHeight: 30,
	}
	m.input.CharLimit = 256
	m.tbl = table.New(table.WithFocused(true), table.WithHeight(cfg.PageSize+1))
	ts := table.DefaultStyles()
	ts.Header = m.styles.TableStyles.Header
	ts.Cell = m.styles.TableStyles.Cell
	ts.Selected = m.styles.TableStyles.Selected
	m.tbl.SetStyles(ts)
	m.modalVP = viewport.New(80, 20)
	m.refresh()
	return m
}

func Run(ctx context.Context, cfg *config.Config, sess *app.Session) error {
	m := newModel(ctx, cfg, sess)
	m.lines, m.errs = sess.Follow(ctx)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return m.waitLine()
}

type lineMsg struct{ line ingest.Line }
type followErrMsg struct{ err error }
type followDoneMsg struct{}

// waitLine delivers the next followed line as a message. The follow ends
// when lines is closed.
func (m *Model) waitLine() tea.Cmd {
	if m.lines == nil {
		return nil
	}
	lines, errs, ctx := m.lines, m.errs, m.ctx
	return func() tea.Msg {
		for {
			select {
			case l, ok := <-lines:
				if !ok {
					return followDoneMsg{}
				}
				return lineMsg{line: l}
			case err, ok := <-errs:
				if !ok {
					// lines may still hold buffered rows
					errs = nil
					continue
				}
				return followErrMsg{err: err}
			case <-ctx.Done():
				return followDoneMsg{}
			}
		}
	}
}

func (m *Model) currentColumn() (grid.ColumnSpec, bool) {
	cols := m.ctrl.Columns()
	if m.selCol < 0 || m.selCol >= len(cols) {
		return grid.ColumnSpec{}, false
	}
	return cols[m.selCol], true
}

// currentRow is the row under the table cursor on the current page.
func (m *Model) currentRow() (grid.Row, bool) {
	rows := m.ctrl.PageRows()
	i := m.tbl.Cursor()
	if i < 0 || i >= len(rows) {
		return grid.Row{}, false
	}
	return rows[i], true
}

func (m *Model) setStatus(text string, err error) {
	m.lastErr = err != nil
	if err != nil {
		m.lastMsg = text + ": " + err.Error()
		return
	}
	m.lastMsg = text
}
