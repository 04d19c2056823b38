package grid

type AggregateKind string

const (
	AggregateNone    AggregateKind = ""
	AggregateSum     AggregateKind = "sum"
	AggregateAverage AggregateKind = "average"
)

// ColumnSpec describes one column. It is owned by the caller and never
// mutated by the engine. Render and OnClick are carried for the host; the
// engine does not call them.
type ColumnSpec struct {
	Field      string
	Header     string
	Sortable   bool
	Filterable bool
	Editable   bool
	Aggregate  AggregateKind
	Render     func(value any, row Row) string
	OnClick    func(row Row)
}

// Title returns Header, or Field when no header is set.
func (c ColumnSpec) Title() string {
	if c.Header != "" {
		return c.Header
	}
	return c.Field
}

// Columns is an ordered column registry.
type Columns []ColumnSpec

func (cs Columns) Lookup(field string) (ColumnSpec, bool) {
	for _, c := range cs {
		if c.Field == field {
			return c, true
		}
	}
	return ColumnSpec{}, false
}

func (cs Columns) Fields() []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Field
	}
	return out
}

func (cs Columns) sortable(field string) bool {
	c, ok := cs.Lookup(field)
	return ok && c.Sortable
}

func (cs Columns) filterable(field string) bool {
	c, ok := cs.Lookup(field)
	return ok && c.Filterable
}

func (cs Columns) editable(field string) bool {
	c, ok := cs.Lookup(field)
	return ok && c.Editable
}
