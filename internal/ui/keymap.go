package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Sort        key.Binding
	ClearSort   key.Binding
	Filter      key.Binding
	ClearFilter key.Binding
	Expr        key.Binding
	Edit        key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	FirstPage   key.Binding
	LastPage    key.Binding
	Bigger      key.Binding
	Smaller     key.Binding
	Add         key.Binding
	Delete      key.Binding
	Inspect     key.Binding
	AppLogs     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "row up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "row down")),
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev column")),
		Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
		Sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),
		ClearSort:   key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "clear sort")),
		Filter:      key.NewBinding(key.WithKeys("f", "/"), key.WithHelp("f", "filter column")),
		ClearFilter: key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "clear filters")),
		Expr:        key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "filter expression")),
		Edit:        key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit cell")),
		NextPage:    key.NewBinding(key.WithKeys("n", "pgdown"), key.WithHelp("n", "next page")),
		PrevPage:    key.NewBinding(key.WithKeys("p", "pgup"), key.WithHelp("p", "prev page")),
		FirstPage:   key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first page")),
		LastPage:    key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last page")),
		Bigger:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more rows")),
		Smaller:     key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "fewer rows")),
		Add:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add row")),
		Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete row")),
		Inspect:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inspect row")),
		AppLogs:     key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "app logs")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp and FullHelp make KeyMap a help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Sort, k.Filter, k.Edit, k.NextPage, k.PrevPage, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Inspect},
		{k.Sort, k.ClearSort, k.Filter, k.ClearFilter, k.Expr},
		{k.NextPage, k.PrevPage, k.FirstPage, k.LastPage, k.Bigger, k.Smaller},
		{k.Edit, k.Add, k.Delete, k.AppLogs, k.Help, k.Quit},
	}
}
