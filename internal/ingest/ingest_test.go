package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"datagrid/internal/parse"
)

func TestDrainFileDetectsCSV(t *testing.T) {
	p := filepath.Join(t.TempDir(), "invoices.csv")
	data := "id,client,amount\ninv-1,Acme,120\n\ninv-2,Globex,80.5\n"
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	lines, errs := Read(ctx, Options{Source: SourceFile, Path: p})
	rows, dec, err := Drain(ctx, lines, errs, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[1].ID != "inv-2" || rows[1].Fields["amount"] != 80.5 {
		t.Fatalf("rows: %+v", rows)
	}
	// the returned decoder continues after the header
	r, ok := dec.Decode("inv-3,Initech,10")
	if !ok || r.ID != "inv-3" {
		t.Fatalf("follow decode: %+v", r)
	}
}

func TestDrainStdinJSON(t *testing.T) {
	in := strings.NewReader("{\"name\":\"Bob\"}\n{\"name\":\"Amy\"}\n")
	ctx := context.Background()
	lines, errs := Read(ctx, Options{Source: SourceStdin, Stdin: in})
	rows, _, err := Drain(ctx, lines, errs, parse.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[0].ID != "#1" || rows[1].Fields["name"] != "Amy" {
		t.Fatalf("rows: %+v", rows)
	}
}

func TestDrainDemo(t *testing.T) {
	ctx := context.Background()
	lines, errs := Read(ctx, Options{Source: SourceDemo})
	rows, _, err := Drain(ctx, lines, errs, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 12 || rows[0].ID != "f-101" {
		t.Fatalf("demo rows: %d", len(rows))
	}
}

func TestDrainMissingFile(t *testing.T) {
	ctx := context.Background()
	lines, errs := Read(ctx, Options{Source: SourceFile, Path: filepath.Join(t.TempDir(), "nope")})
	if _, _, err := Drain(ctx, lines, errs, ""); err == nil {
		t.Fatalf("expected error")
	}
}
