package columns

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"datagrid/internal/grid"
)

type fileColumn struct {
	Field      string `yaml:"field"`
	Header     string `yaml:"header,omitempty"`
	Sortable   *bool  `yaml:"sortable"`
	Filterable *bool  `yaml:"filterable"`
	Editable   bool   `yaml:"editable"`
	Aggregate  string `yaml:"aggregate,omitempty"`
}

type file struct {
	Columns []fileColumn `yaml:"columns"`
}

// Parse decodes a column registry document:
//
//	columns:
//	  - field: rate
//	    header: Hourly rate
//	    editable: true
//	    aggregate: average
//
// sortable and filterable default to true.
func Parse(data []byte) (grid.Columns, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	if len(f.Columns) == 0 {
		return nil, errors.New("columns: no columns defined")
	}
	seen := map[string]bool{}
	out := make(grid.Columns, 0, len(f.Columns))
	for i, fc := range f.Columns {
		field := strings.TrimSpace(fc.Field)
		if field == "" {
			return nil, fmt.Errorf("columns: entry %d has no field", i)
		}
		if seen[field] {
			return nil, fmt.Errorf("columns: duplicate field %q", field)
		}
		seen[field] = true
		agg, err := parseAggregate(fc.Aggregate)
		if err != nil {
			return nil, fmt.Errorf("columns: field %q: %w", field, err)
		}
		out = append(out, grid.ColumnSpec{
			Field:      field,
			Header:     fc.Header,
			Sortable:   boolOr(fc.Sortable, true),
			Filterable: boolOr(fc.Filterable, true),
			Editable:   fc.Editable,
			Aggregate:  agg,
		})
	}
	return out, nil
}

// Marshal encodes cols in the format Parse reads.
func Marshal(cols grid.Columns) ([]byte, error) {
	f := file{Columns: make([]fileColumn, len(cols))}
	for i, c := range cols {
		sortable, filterable := c.Sortable, c.Filterable
		f.Columns[i] = fileColumn{
			Field:      c.Field,
			Header:     c.Header,
			Sortable:   &sortable,
			Filterable: &filterable,
			Editable:   c.Editable,
			Aggregate:  string(c.Aggregate),
		}
	}
	return yaml.Marshal(f)
}

func LoadFile(path string) (grid.Columns, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Infer builds a registry from the fields present in rows. The id column
// comes first and is read-only; other fields follow in order of first
// appearance, each row's new keys sorted by name. Columns holding only
// numbers (and nils) get a sum aggregate.
func Infer(rows []grid.Row) grid.Columns {
	out := grid.Columns{{Field: "id", Header: "id", Sortable: true, Filterable: true}}
	seen := map[string]bool{"id": true}
	numeric := map[string]bool{}
	hasNumber := map[string]bool{}
	for _, r := range rows {
		keys := make([]string, 0, len(r.Fields))
		for k := range r.Fields {
			if strings.TrimSpace(k) == "" || seen[k] {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			seen[k] = true
			numeric[k] = true
			out = append(out, grid.ColumnSpec{Field: k, Header: k, Sortable: true, Filterable: true, Editable: true})
		}
		for k, v := range r.Fields {
			switch {
			case isNumber(v):
				hasNumber[k] = true
			case v != nil:
				numeric[k] = false
			}
		}
	}
	for i := range out {
		if f := out[i].Field; numeric[f] && hasNumber[f] {
			out[i].Aggregate = grid.AggregateSum
		}
	}
	return out
}

// InferOrdered is Infer with the fields named in order moved to the front, in
// that order. The CSV header is the usual source of order.
func InferOrdered(rows []grid.Row, order []string) grid.Columns {
	cols := Infer(rows)
	rank := make(map[string]int, len(order))
	for i, f := range order {
		if _, dup := rank[f]; !dup {
			rank[f] = i
		}
	}
	rest := cols[1:]
	sort.SliceStable(rest, func(i, j int) bool {
		ri, okI := rank[rest[i].Field]
		rj, okJ := rank[rest[j].Field]
		switch {
		case okI && okJ:
			return ri < rj
		default:
			return okI && !okJ
		}
	})
	return cols
}

func isNumber(v any) bool {
	switch v.(type) {
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

func parseAggregate(s string) (grid.AggregateKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return grid.AggregateNone, nil
	case "sum":
		return grid.AggregateSum, nil
	case "average", "avg":
		return grid.AggregateAverage, nil
	}
	return grid.AggregateNone, fmt.Errorf("unknown aggregate %q", s)
}

func boolOr(p *bool, d bool) bool {
	if p == nil {
		return d
	}
	return *p
}
