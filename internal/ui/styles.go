package ui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Base        lipgloss.Style
	Status      lipgloss.Style
	Help        lipgloss.Style
	Error       lipgloss.Style
	Aggregates  lipgloss.Style
	PageCurrent lipgloss.Style
	PageOther   lipgloss.Style
	Ellipsis    lipgloss.Style
	Editing     lipgloss.Style
	PopupBox    lipgloss.Style
	PopupTitle  lipgloss.Style
	TableStyles TableStyles

	// value colors in the row inspector
	Key    lipgloss.Style
	String lipgloss.Style
	Number lipgloss.Style
	Bool   lipgloss.Style
	Null   lipgloss.Style
}

type TableStyles struct {
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Selected lipgloss.Style
}

func NewStyles(dark bool) Styles {
	s := Styles{}
	if dark {
		s.Base = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
		s.Status = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
		s.Help = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
		s.Aggregates = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
		s.PageCurrent = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("81"))
		s.PageOther = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
		s.Editing = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
		s.PopupBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("60")).Padding(1, 2)
		s.PopupTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
		s.Key = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
		s.String = lipgloss.NewStyle().Foreground(lipgloss.Color("180"))
		s.Number = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	} else {
		s.Base = lipgloss.NewStyle()
		s.Status = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Help = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Aggregates = lipgloss.NewStyle().Foreground(lipgloss.Color("28"))
		s.PageCurrent = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("27"))
		s.PageOther = lipgloss.NewStyle()
		s.Editing = lipgloss.NewStyle().Foreground(lipgloss.Color("130"))
		s.PopupBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12")).Padding(1, 2)
		s.PopupTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("27"))
		s.Key = lipgloss.NewStyle().Foreground(lipgloss.Color("27"))
		s.String = lipgloss.NewStyle().Foreground(lipgloss.Color("94"))
		s.Number = lipgloss.NewStyle().Foreground(lipgloss.Color("28"))
	}
	s.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	s.Ellipsis = s.Status
	s.Bool = s.Number
	s.Null = s.Status.Italic(true)
	s.TableStyles = TableStyles{
		Header:   lipgloss.NewStyle().Bold(true).PaddingRight(1),
		Cell:     lipgloss.NewStyle().PaddingRight(1),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220")),
	}
	return s
}
