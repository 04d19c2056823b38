package grid

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Row is one record of the dataset. Fields holds flat scalar values keyed by
// column field; ID is unique and stable for the lifetime of the dataset.
type Row struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

// Value returns the value stored under field. The pseudo field "id" falls
// back to the row identifier when no explicit field of that name exists.
func (r Row) Value(field string) any {
	if v, ok := r.Fields[field]; ok {
		return v
	}
	if field == "id" {
		return r.ID
	}
	return nil
}

func (r Row) Clone() Row {
	out := Row{ID: r.ID, Fields: make(map[string]any, len(r.Fields))}
	for k, v := range r.Fields {
		out.Fields[k] = v
	}
	return out
}

func cloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i := range rows {
		out[i] = rows[i].Clone()
	}
	return out
}

// DisplayString coerces a cell value to the string shown to the user and
// used for filtering. nil becomes the empty string.
func DisplayString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case json.Number:
		return t.String()
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(t)
	case time.Time:
		return t.Format(time.RFC3339)
	case fmt.Stringer:
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// asNumber reports whether v is a native number. Numeric-looking strings are
// not numbers here; sorting compares them as strings.
func asNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case nil, string, bool:
		return 0, false
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() >= reflect.Int && rv.Kind() <= reflect.Float64 {
		return rv.Convert(reflect.TypeOf(float64(0))).Float(), true
	}
	return 0, false
}

// Numeric coerces v for aggregation. Numbers pass through, numeric strings
// are parsed, everything else (including NaN and infinities) is 0.
func Numeric(v any) float64 {
	f, ok := asNumber(v)
	if !ok {
		s, isStr := v.(string)
		if !isStr {
			return 0
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0
		}
		f = n
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
