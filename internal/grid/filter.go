package grid

import (
	"strings"

	"github.com/Knetic/govaluate"
)

// FilterState maps a field to its substring filter. An empty or absent entry
// means no filter on that field. Expr is an optional govaluate expression
// ANDed with the substring filters.
type FilterState struct {
	Fields map[string]string
	Expr   string
}

func (f FilterState) Active() bool {
	if strings.TrimSpace(f.Expr) != "" {
		return true
	}
	for _, v := range f.Fields {
		if v != "" {
			return true
		}
	}
	return false
}

func (f FilterState) Clone() FilterState {
	out := FilterState{Fields: make(map[string]string, len(f.Fields)), Expr: f.Expr}
	for k, v := range f.Fields {
		out.Fields[k] = v
	}
	return out
}

func (f FilterState) equal(o FilterState) bool {
	if f.Expr != o.Expr {
		return false
	}
	n := 0
	for k, v := range f.Fields {
		if v == "" {
			continue
		}
		if o.Fields[k] != v {
			return false
		}
		n++
	}
	for _, v := range o.Fields {
		if v != "" {
			n--
		}
	}
	return n == 0
}

// Evaluator holds the compiled parts of a FilterState.
type Evaluator struct {
	expr *govaluate.EvaluableExpression
}

func NewEvaluator(f FilterState) (*Evaluator, error) {
	var expr *govaluate.EvaluableExpression
	if strings.TrimSpace(f.Expr) != "" {
		var err error
		expr, err = govaluate.NewEvaluableExpression(f.Expr)
		if err != nil {
			return nil, err
		}
	}
	return &Evaluator{expr: expr}, nil
}

// Match reports whether row passes every active filter. Only filterable
// columns are consulted, so entries for unknown or non-filterable fields are
// inert.
func (e *Evaluator) Match(row Row, f FilterState, cols Columns) bool {
	for _, c := range cols {
		if !c.Filterable {
			continue
		}
		q := f.Fields[c.Field]
		if q == "" {
			continue
		}
		text := DisplayString(row.Value(c.Field))
		if !strings.Contains(strings.ToLower(text), strings.ToLower(q)) {
			return false
		}
	}
	if e.expr != nil {
		params := make(map[string]any, len(row.Fields)+1)
		params["id"] = row.ID
		for k, v := range row.Fields {
			params[k] = v
		}
		result, err := e.expr.Evaluate(params)
		if err != nil {
			return false
		}
		b, ok := result.(bool)
		if !ok || !b {
			return false
		}
	}
	return true
}

// FilterRows returns the rows that pass f, in input order. An expression that
// fails to compile is ignored.
func FilterRows(rows []Row, f FilterState, cols Columns) []Row {
	ev, err := NewEvaluator(f)
	if err != nil {
		ev = &Evaluator{}
	}
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if ev.Match(r, f, cols) {
			out = append(out, r)
		}
	}
	return out
}
