package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"datagrid/internal/grid"
)

var ErrNoRows = errors.New("no rows to export")

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "json", "ndjson", "jsonl":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// ToFile writes rows to path in the given format.
func ToFile(path string, f Format, cols grid.Columns, rows []grid.Row) error {
	if len(rows) == 0 {
		return ErrNoRows
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	switch f {
	case FormatCSV:
		err = WriteCSV(out, cols, rows)
	case FormatJSON:
		err = WriteNDJSON(out, cols, rows)
	default:
		err = fmt.Errorf("unknown export format %q", f)
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return out.Close()
}

// WriteCSV writes one header line of column fields followed by the rows'
// display values.
func WriteCSV(w io.Writer, cols grid.Columns, rows []grid.Row) error {
	if len(rows) == 0 {
		return ErrNoRows
	}
	cw := csv.NewWriter(w)
	fields := cols.Fields()
	if err := cw.Write(fields); err != nil {
		return err
	}
	rec := make([]string, len(fields))
	for _, r := range rows {
		for i, f := range fields {
			rec[i] = grid.DisplayString(r.Value(f))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteNDJSON writes one object per row holding id plus the column fields.
func WriteNDJSON(w io.Writer, cols grid.Columns, rows []grid.Row) error {
	if len(rows) == 0 {
		return ErrNoRows
	}
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, r := range rows {
		obj := map[string]any{"id": r.ID}
		for _, f := range cols.Fields() {
			obj[f] = r.Value(f)
		}
		if err := enc.Encode(obj); err != nil {
			return err
		}
	}
	return bw.Flush()
}
