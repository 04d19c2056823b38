package ui

import (
	"sort"
	"strconv"
	"strings"

	"datagrid/internal/grid"
)

// overlay draws the non-blank lines of top over base.
func overlay(base, top string) string {
	bLines := strings.Split(base, "\n")
	oLines := strings.Split(top, "\n")
	n := len(bLines)
	if len(oLines) > n {
		n = len(oLines)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		switch {
		case i < len(oLines) && strings.TrimSpace(oLines[i]) != "":
			out[i] = oLines[i]
		case i < len(bLines):
			out[i] = bLines[i]
		}
	}
	return strings.Join(out, "\n")
}

// renderRow lists a row's column values in column order, then any extra
// fields the registry does not name.
func renderRow(r grid.Row, cols grid.Columns, st Styles) string {
	var b strings.Builder
	line := func(k string, v any) {
		b.WriteString(st.Key.Render(k))
		b.WriteString(": ")
		b.WriteString(renderValue(v, st))
		b.WriteString("\n")
	}
	line("id", r.ID)
	named := map[string]bool{"id": true}
	for _, c := range cols {
		if named[c.Field] {
			continue
		}
		named[c.Field] = true
		line(c.Title(), r.Value(c.Field))
	}
	var extra []string
	for k := range r.Fields {
		if !named[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		line(k, r.Fields[k])
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderValue(v any, st Styles) string {
	switch t := v.(type) {
	case nil:
		return st.Null.Render("null")
	case bool:
		return st.Bool.Render(strconv.FormatBool(t))
	case string:
		return st.String.Render(strconv.Quote(t))
	case float64, float32, int, int32, int64, uint, uint32, uint64:
		return st.Number.Render(grid.DisplayString(t))
	}
	return st.String.Render(grid.DisplayString(v))
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func runeLen(s string) int { return len([]rune(s)) }

func truncateRunes(s string, w int) string {
	rs := []rune(s)
	if len(rs) <= w {
		return s
	}
	if w <= 1 {
		return string(rs[:w])
	}
	return string(rs[:w-1]) + "…"
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
