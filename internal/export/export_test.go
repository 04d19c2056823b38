package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"datagrid/internal/grid"
)

var testCols = grid.Columns{{Field: "name"}, {Field: "rate"}}

func testRows() []grid.Row {
	return []grid.Row{
		{ID: "1", Fields: map[string]any{"name": "Bob, Jr.", "rate": 40.5}},
		{ID: "2", Fields: map[string]any{"name": "Amy"}},
	}
}

func TestWriteCSV(t *testing.T) {
	var b bytes.Buffer
	if err := WriteCSV(&b, testCols, testRows()); err != nil {
		t.Fatal(err)
	}
	want := "name,rate\n\"Bob, Jr.\",40.5\nAmy,\n"
	if b.String() != want {
		t.Fatalf("csv:\n%s\nwant:\n%s", b.String(), want)
	}
}

func TestWriteNDJSON(t *testing.T) {
	var b bytes.Buffer
	if err := WriteNDJSON(&b, testCols, testRows()); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines: %q", lines)
	}
	if lines[1] != `{"id":"2","name":"Amy","rate":null}` {
		t.Fatalf("line: %s", lines[1])
	}
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := ToFile(path, FormatCSV, testCols, testRows()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "name,rate\n") {
		t.Fatalf("file: %s", data)
	}
	if err := ToFile(path, FormatJSON, testCols, nil); !errors.Is(err, ErrNoRows) {
		t.Fatalf("empty: %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("NDJSON"); err != nil || f != FormatJSON {
		t.Fatalf("ndjson: %v %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected error")
	}
}
