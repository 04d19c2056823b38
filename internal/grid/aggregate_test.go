package grid

import (
	"math"
	"testing"
)

func TestAggregateSumAndAverage(t *testing.T) {
	res := Aggregate(peopleRows(), peopleColumns())
	if res["score"] != 25 {
		t.Fatalf("sum: %v", res["score"])
	}
	if res["rate"] != 50 {
		t.Fatalf("average: %v", res["rate"])
	}
	if _, ok := res["name"]; ok {
		t.Fatalf("columns without aggregate must be absent")
	}
}

func TestAggregateEmptyAverageIsZero(t *testing.T) {
	res := Aggregate(nil, peopleColumns())
	v, ok := res["rate"]
	if !ok || v != 0 || math.IsNaN(v) {
		t.Fatalf("average over no rows: %v (present=%v)", v, ok)
	}
	if res["score"] != 0 {
		t.Fatalf("sum over no rows: %v", res["score"])
	}
}

func TestAggregateCoercion(t *testing.T) {
	cols := Columns{{Field: "v", Aggregate: AggregateSum}}
	rows := []Row{
		{ID: "1", Fields: map[string]any{"v": "12.5"}},
		{ID: "2", Fields: map[string]any{"v": "n/a"}},
		{ID: "3", Fields: map[string]any{"v": nil}},
		{ID: "4", Fields: map[string]any{}},
		{ID: "5", Fields: map[string]any{"v": int64(3)}},
		{ID: "6", Fields: map[string]any{"v": "NaN"}},
		{ID: "7", Fields: map[string]any{"v": true}},
	}
	if got := Aggregate(rows, cols)["v"]; got != 15.5 {
		t.Fatalf("got %v", got)
	}
}
