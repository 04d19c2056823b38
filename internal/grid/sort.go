package grid

import (
	"cmp"
	"sort"
	"strings"
)

type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// SortState names at most one sorted field. An empty Field keeps input order.
type SortState struct {
	Field     string
	Direction Direction
}

func (s SortState) Active() bool { return s.Field != "" }

// SortRows returns a stably sorted copy of rows. Rows with equal keys keep
// their input order in both directions.
func SortRows(rows []Row, s SortState) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)
	if !s.Active() {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		c := compareValues(out[i].Value(s.Field), out[j].Value(s.Field))
		if s.Direction == Descending {
			return c > 0
		}
		return c < 0
	})
	return out
}

// compareValues compares two numbers directly, anything else by case-folded
// display string.
func compareValues(a, b any) int {
	if x, ok := asNumber(a); ok {
		if y, ok := asNumber(b); ok {
			return cmp.Compare(x, y)
		}
	}
	return strings.Compare(strings.ToLower(DisplayString(a)), strings.ToLower(DisplayString(b)))
}
