// Package app assembles a grid session from configuration: it loads rows,
// resolves the column registry, opens the optional SQLite store and builds
// the controller the UI and the exporter drive.
package app

import (
	"context"
	"fmt"
	"io"
	"sort"

	"datagrid/internal/columns"
	"datagrid/internal/config"
	"datagrid/internal/export"
	"datagrid/internal/grid"
	"datagrid/internal/ingest"
	"datagrid/internal/parse"
	"datagrid/internal/store"
	"datagrid/internal/util/logx"
)

// SourceStore marks a session whose rows came from the database.
const SourceStore ingest.SourceKind = "db"

type Session struct {
	Ctrl    *grid.Controller
	Store   *store.Store
	Decoder parse.Decoder
	Source  ingest.SourceKind
	Path    string

	follow bool
}

// Build loads rows and wires a controller for cfg. stdin replaces os.Stdin
// when non-nil.
func Build(ctx context.Context, cfg *config.Config, stdin io.Reader) (*Session, error) {
	s := &Session{Path: cfg.FilePath, follow: cfg.Follow}

	if cfg.DBPath != "" {
		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open db %s: %w", cfg.DBPath, err)
		}
		s.Store = st
	}

	rows, err := s.loadRows(ctx, cfg, stdin)
	if err != nil {
		s.Close()
		return nil, err
	}

	cols, err := s.resolveColumns(cfg, rows)
	if err != nil {
		s.Close()
		return nil, err
	}
	logx.Infof("app: %d rows, %d columns from %s", len(rows), len(cols), s.Source)

	opts := grid.Options{Columns: cols, PageSize: cfg.PageSize, Rollback: cfg.Rollback}
	if s.Store != nil {
		opts.Hooks = s.Store.Hooks()
	}
	s.Ctrl = grid.New(opts)
	s.Ctrl.SetRows(rows)

	if err := applyInitialView(s.Ctrl, cfg); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Session) loadRows(ctx context.Context, cfg *config.Config, stdin io.Reader) ([]grid.Row, error) {
	src := ingest.SourceDemo
	switch {
	case cfg.UseStdin:
		src = ingest.SourceStdin
	case cfg.FilePath != "":
		src = ingest.SourceFile
	case s.Store != nil:
		n, err := s.Store.Count()
		if err != nil {
			return nil, err
		}
		if n > 0 {
			s.Source = SourceStore
			return s.Store.Load()
		}
	}
	s.Source = src

	lines, errs := ingest.Read(ctx, ingest.Options{Source: src, Path: cfg.FilePath, Stdin: stdin})
	rows, dec, err := ingest.Drain(ctx, lines, errs, cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src, err)
	}
	s.Decoder = dec
	rows = grid.UniqueRows(rows)
	if s.Store != nil {
		// input given on the command line replaces what the database held
		if err := s.Store.ReplaceAll(rows); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// resolveColumns prefers an explicit registry file, then the registry
// remembered for the input file, then one inferred from rows.
func (s *Session) resolveColumns(cfg *config.Config, rows []grid.Row) (grid.Columns, error) {
	if cfg.ColumnsPath != "" {
		return columns.LoadFile(cfg.ColumnsPath)
	}
	cacheable := s.Source == ingest.SourceFile && !cfg.NoCache
	if cacheable {
		if cols, ok := columns.LoadCached(s.Path); ok {
			return cols, nil
		}
	}
	var cols grid.Columns
	if h, ok := s.Decoder.(interface{ Header() []string }); ok {
		cols = columns.InferOrdered(rows, h.Header())
	} else {
		cols = columns.Infer(rows)
	}
	if cacheable && len(rows) > 0 {
		if err := columns.SaveCached(s.Path, cols); err != nil {
			logx.Warnf("app: column cache: %v", err)
		}
	}
	return cols, nil
}

func applyInitialView(c *grid.Controller, cfg *config.Config) error {
	fields := make([]string, 0, len(cfg.Filters))
	for f := range cfg.Filters {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		c.SetFilter(f, cfg.Filters[f])
	}
	if cfg.Expr != "" {
		if err := c.SetExpression(cfg.Expr); err != nil {
			return fmt.Errorf("--expr: %w", err)
		}
	}
	if cfg.SortBy != "" {
		c.SetSort(cfg.SortBy)
		if cfg.SortDesc {
			c.SetSort(cfg.SortBy)
		}
	}
	return nil
}

// Follow tails the input file for appended lines. It returns nil channels
// when the session was not configured to follow.
func (s *Session) Follow(ctx context.Context) (<-chan ingest.Line, <-chan error) {
	if !s.follow || s.Source != ingest.SourceFile || s.Decoder == nil {
		return nil, nil
	}
	logx.Infof("app: following %s", s.Path)
	return ingest.Read(ctx, ingest.Options{Source: ingest.SourceFile, Path: s.Path, Follow: true})
}

// AppendLine decodes one followed line and adds it through the controller,
// so the store hook persists it. ok is false for lines that carry no row.
func (s *Session) AppendLine(text string) (row grid.Row, ok bool, err error) {
	if s.Decoder == nil {
		return grid.Row{}, false, nil
	}
	r, ok := s.Decoder.Decode(text)
	if !ok {
		return grid.Row{}, false, nil
	}
	row, err = s.Ctrl.AddRow(r)
	return row, row.ID != "", err
}

// Export writes the visible rows, filtered and sorted, to path.
func (s *Session) Export(f export.Format, path string) (int, error) {
	rows := s.Ctrl.VisibleRows()
	if err := export.ToFile(path, f, s.Ctrl.Columns(), rows); err != nil {
		return 0, err
	}
	logx.Infof("app: exported %d rows to %s", len(rows), path)
	return len(rows), nil
}

func (s *Session) Close() error {
	if s.Store == nil {
		return nil
	}
	return s.Store.Close()
}
