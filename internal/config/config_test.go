package config

import (
	"io"
	"testing"

	"datagrid/internal/export"
	"datagrid/internal/grid"
	"datagrid/internal/parse"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATAGRID_PAGE_SIZE", "")
	t.Setenv("DATAGRID_DB", "")
	cfg, err := load(nil, false, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PageSize != 10 || cfg.Rollback != grid.RollbackKeep || cfg.Theme != ThemeDark {
		t.Fatalf("defaults: %s", cfg)
	}
	if cfg.UseStdin || cfg.Headless() {
		t.Fatalf("unexpected mode: %s", cfg)
	}
}

func TestLoadFlags(t *testing.T) {
	args := []string{
		"-file", "rows.csv", "-format", "csv", "-page-size", "25", "-rollback", "revert",
		"-filter", "name=bo", "-filter", "status=active", "-sort", "rate", "-sort-desc",
		"-expr", "rate > 10", "-export", "json", "-out", "x.ndjson", "-theme", "LIGHT", "-no-cache",
	}
	cfg, err := load(args, true, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Format != parse.FormatCSV || cfg.PageSize != 25 || cfg.Rollback != grid.RollbackRevert {
		t.Fatalf("cfg: %s", cfg)
	}
	if cfg.Filters["name"] != "bo" || cfg.Filters["status"] != "active" {
		t.Fatalf("filters: %v", cfg.Filters)
	}
	if !cfg.SortDesc || cfg.SortBy != "rate" || cfg.Expr != "rate > 10" || !cfg.NoCache {
		t.Fatalf("view: %s", cfg)
	}
	if cfg.ExportFormat != export.FormatJSON || !cfg.Headless() || cfg.Theme != ThemeLight {
		t.Fatalf("export: %s", cfg)
	}
	// piped stdin is ignored when a file is given
	if cfg.UseStdin {
		t.Fatalf("stdin should stay off with -file")
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("DATAGRID_PAGE_SIZE", "7")
	t.Setenv("DATAGRID_DB", "/tmp/grid.db")
	cfg, err := load(nil, true, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PageSize != 7 || cfg.DBPath != "/tmp/grid.db" || !cfg.UseStdin {
		t.Fatalf("env: %s", cfg)
	}
}

func TestLoadRejects(t *testing.T) {
	cases := [][]string{
		{"-export", "csv"},
		{"-export", "xml", "-out", "x"},
		{"-page-size", "0"},
		{"-rollback", "maybe"},
		{"-format", "yaml"},
		{"-theme", "blue"},
		{"-filter", "novalue"},
		{"-sort-desc"},
		{"-follow"},
	}
	for _, args := range cases {
		if _, err := load(args, false, io.Discard); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}
