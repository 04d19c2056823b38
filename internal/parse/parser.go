package parse

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"datagrid/internal/grid"
)

type Format string

// GeneratedIDPrefix starts every id the decoders make up for rows without one.
const GeneratedIDPrefix = "#"

const (
	FormatJSON   Format = "json"
	FormatLogfmt Format = "logfmt"
	FormatCSV    Format = "csv"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON, "ndjson", "jsonl":
		return FormatJSON, nil
	case FormatLogfmt, "kv":
		return FormatLogfmt, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", fmt.Errorf("unknown format %q (want json|logfmt|csv)", s)
}

// Decoder turns one input line into a row. ok is false for lines that carry
// no row (blank lines, CSV header, undecodable input).
type Decoder interface {
	Decode(line string) (row grid.Row, ok bool)
}

func NewDecoder(f Format) (Decoder, error) {
	switch f {
	case FormatJSON:
		return &JSONDecoder{}, nil
	case FormatLogfmt:
		return &LogfmtDecoder{}, nil
	case FormatCSV:
		return &CSVDecoder{}, nil
	}
	return nil, fmt.Errorf("no decoder for format %q", f)
}

// sequence hands out ids for rows that do not carry an "id" field.
// Generated ids are "#<n>" and skip any value already seen as an explicit id.
type sequence struct {
	n     int
	taken map[string]bool
}

func (s *sequence) row(fields map[string]any) grid.Row {
	if s.taken == nil {
		s.taken = map[string]bool{}
	}
	var r grid.Row
	if v, ok := fields["id"]; ok {
		r.ID = grid.DisplayString(v)
		delete(fields, "id")
	}
	if r.ID == "" {
		r.ID = s.next()
	}
	s.taken[r.ID] = true
	r.Fields = fields
	return r
}

func (s *sequence) next() string {
	for {
		s.n++
		id := GeneratedIDPrefix + strconv.Itoa(s.n)
		if !s.taken[id] {
			return id
		}
	}
}

// JSON lines
type JSONDecoder struct{ seq sequence }

func (d *JSONDecoder) Decode(line string) (grid.Row, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return grid.Row{}, false
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(line), &m); err != nil || m == nil {
		return grid.Row{}, false
	}
	return d.seq.row(m), true
}

// logfmt (very basic, supports quoted values)
type LogfmtDecoder struct{ seq sequence }

func (d *LogfmtDecoder) Decode(line string) (grid.Row, bool) {
	parts := splitLogfmt(line)
	if len(parts) == 0 {
		return grid.Row{}, false
	}
	fields := make(map[string]any, len(parts))
	for k, v := range parts {
		fields[k] = parseValue(v)
	}
	return d.seq.row(fields), true
}

// CSVDecoder treats the first non-blank line as the header.
type CSVDecoder struct {
	header []string
	seq    sequence
}

func (d *CSVDecoder) Header() []string { return d.header }

func (d *CSVDecoder) Decode(line string) (grid.Row, bool) {
	if strings.TrimSpace(line) == "" {
		return grid.Row{}, false
	}
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	rec, err := r.Read()
	if err != nil {
		return grid.Row{}, false
	}
	if d.header == nil {
		d.header = make([]string, len(rec))
		for i, h := range rec {
			d.header[i] = strings.TrimSpace(h)
		}
		return grid.Row{}, false
	}
	fields := make(map[string]any, len(d.header))
	for i, h := range d.header {
		if h == "" {
			continue
		}
		if i < len(rec) {
			fields[h] = parseValue(rec[i])
		} else {
			fields[h] = nil
		}
	}
	return d.seq.row(fields), true
}

// parseValue keeps numbers numeric so they sort and aggregate as numbers.
func parseValue(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !strings.ContainsAny(s, "nN") {
		return f
	}
	return s
}

func splitLogfmt(s string) map[string]string {
	res := map[string]string{}
	var cur strings.Builder
	inQuote := false
	key := ""
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' {
			inQuote = !inQuote
			continue
		}
		if !inQuote && (c == ' ' || c == '\t') {
			if key != "" {
				res[key] = cur.String()
				key = ""
			}
			cur.Reset()
			continue
		}
		if !inQuote && c == '=' && key == "" {
			key = cur.String()
			cur.Reset()
			continue
		}
		cur.WriteByte(c)
	}
	if key != "" {
		res[key] = cur.String()
	}
	return res
}
