package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"datagrid/internal/export"
	"datagrid/internal/grid"
	"datagrid/internal/parse"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

type Config struct {
	FilePath    string
	UseStdin    bool
	Follow      bool
	Format      parse.Format
	ColumnsPath string
	NoCache     bool
	PageSize    int
	DBPath      string
	Rollback    grid.RollbackPolicy
	Theme       Theme

	// Initial view.
	Filters  map[string]string
	SortBy   string
	SortDesc bool
	Expr     string

	ExportFormat export.Format
	ExportOut    string

	ShowVersion bool

	// Internal
	IsPipedStdin bool
}

// filterFlags collects repeated -filter field=value flags.
type filterFlags map[string]string

func (f filterFlags) String() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + f[k]
	}
	return strings.Join(parts, ",")
}

func (f filterFlags) Set(v string) error {
	field, value, ok := strings.Cut(v, "=")
	field = strings.TrimSpace(field)
	if !ok || field == "" {
		return fmt.Errorf("filter %q: want field=value", v)
	}
	f[field] = value
	return nil
}

// Load parses args (without the program name). stdinPiped reports whether
// standard input is piped.
func Load(args []string, stdinPiped bool) (*Config, error) {
	return load(args, stdinPiped, os.Stderr)
}

func load(args []string, stdinPiped bool, usage io.Writer) (*Config, error) {
	cfg := &Config{IsPipedStdin: stdinPiped, Filters: map[string]string{}}

	fs := flag.NewFlagSet("datagrid", flag.ContinueOnError)
	fs.SetOutput(usage)

	fs.StringVar(&cfg.FilePath, "file", "", "path to an input file (NDJSON, logfmt or CSV)")
	fs.BoolVar(&cfg.Follow, "follow", false, "follow file and add appended lines as rows")
	fs.BoolVar(&cfg.UseStdin, "stdin", false, "read from stdin (default: auto if piped)")
	format := fs.String("format", "", "force input format: json|logfmt|csv (default: detect)")
	fs.StringVar(&cfg.ColumnsPath, "columns", "", "YAML column registry file (default: infer from rows)")
	fs.BoolVar(&cfg.NoCache, "no-cache", false, "do not read or write the per-file column cache")
	fs.IntVar(&cfg.PageSize, "page-size", getenvDefaultInt("DATAGRID_PAGE_SIZE", 10), "rows per page")
	fs.StringVar(&cfg.DBPath, "db", getenvDefault("DATAGRID_DB", ""), "SQLite database used as row store")
	rollback := fs.String("rollback", "keep", "on failed persistence: keep|revert")
	theme := fs.String("theme", string(ThemeDark), "theme: dark|light")
	fs.Var(filterFlags(cfg.Filters), "filter", "initial column filter field=value (repeatable)")
	fs.StringVar(&cfg.SortBy, "sort", "", "initial sort field")
	fs.BoolVar(&cfg.SortDesc, "sort-desc", false, "sort descending")
	fs.StringVar(&cfg.Expr, "expr", "", "filter expression, e.g. 'rate > 40 && status == \"active\"'")
	exportFormat := fs.String("export", "", "export visible rows without the UI: csv|json")
	fs.StringVar(&cfg.ExportOut, "out", "", "output path for export")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.ShowVersion {
		return cfg, nil
	}

	var err error
	if *format != "" {
		if cfg.Format, err = parse.ParseFormat(*format); err != nil {
			return nil, err
		}
	}
	if cfg.Rollback, err = grid.ParseRollbackPolicy(*rollback); err != nil {
		return nil, err
	}
	switch Theme(strings.ToLower(*theme)) {
	case ThemeDark, ThemeLight:
		cfg.Theme = Theme(strings.ToLower(*theme))
	default:
		return nil, fmt.Errorf("unknown theme %q (want dark|light)", *theme)
	}
	if *exportFormat != "" {
		if cfg.ExportFormat, err = export.ParseFormat(*exportFormat); err != nil {
			return nil, err
		}
		if cfg.ExportOut == "" {
			return nil, errors.New("--export requires --out path")
		}
	}
	if cfg.PageSize < 1 {
		return nil, fmt.Errorf("--page-size must be at least 1, got %d", cfg.PageSize)
	}
	if cfg.SortDesc && cfg.SortBy == "" {
		return nil, errors.New("--sort-desc requires --sort")
	}
	if cfg.Follow && cfg.FilePath == "" {
		return nil, errors.New("--follow requires --file")
	}

	if cfg.UseStdin || (cfg.IsPipedStdin && cfg.FilePath == "") {
		cfg.UseStdin = true
	}
	return cfg, nil
}

// Headless reports whether the run exports instead of starting the UI.
func (c *Config) Headless() bool { return c.ExportFormat != "" }

func getenvDefault(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvDefaultInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func (c *Config) String() string {
	return fmt.Sprintf("file=%s stdin=%v follow=%v format=%s page-size=%d db=%s rollback=%s filters=%s sort=%s desc=%v",
		c.FilePath, c.UseStdin, c.Follow, c.Format, c.PageSize, c.DBPath, c.Rollback, filterFlags(c.Filters), c.SortBy, c.SortDesc)
}
