package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"datagrid/internal/grid"
	"datagrid/internal/util/logx"
)

var ErrNotFound = errors.New("row not found")

// Store keeps rows in SQLite. It is the source of truth the grid's
// callbacks write through to.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	rowTable := `
	CREATE TABLE IF NOT EXISTS grid_rows (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		fields TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);
	`
	if _, err := db.Exec(rowTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Load returns all rows in insertion order.
func (s *Store) Load() ([]grid.Row, error) {
	rows, err := s.db.Query(`SELECT id, fields FROM grid_rows ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []grid.Row
	for rows.Next() {
		var id, fieldsJSON string
		if err := rows.Scan(&id, &fieldsJSON); err != nil {
			return nil, err
		}
		r := grid.Row{ID: id, Fields: map[string]any{}}
		if err := json.Unmarshal([]byte(fieldsJSON), &r.Fields); err != nil {
			return nil, fmt.Errorf("store: row %s: %w", id, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM grid_rows`).Scan(&n)
	return n, err
}

// Insert appends r after the last stored row.
func (s *Store) Insert(r grid.Row) error {
	fieldsJSON, err := encodeFields(r.Fields)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = s.db.Exec(`INSERT INTO grid_rows (id, position, fields, created_at, updated_at)
		VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM grid_rows), ?, ?, ?)`,
		r.ID, fieldsJSON, now, now)
	if err != nil {
		return fmt.Errorf("store: insert %s: %w", r.ID, err)
	}
	return nil
}

// ReplaceAll drops every stored row and stores rows in their place, in one
// transaction.
func (s *Store) ReplaceAll(rows []grid.Row) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM grid_rows`); err != nil {
		tx.Rollback()
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO grid_rows (id, position, fields, created_at, updated_at)
		VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM grid_rows), ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	now := time.Now().UTC()
	for _, r := range rows {
		fieldsJSON, err := encodeFields(r.Fields)
		if err != nil {
			tx.Rollback()
			return err
		}
		if _, err := stmt.Exec(r.ID, fieldsJSON, now, now); err != nil {
			tx.Rollback()
			return fmt.Errorf("store: write %s: %w", r.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	logx.Infof("store: wrote %d rows (replace=%v)", len(rows), true)
	return nil
}

func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM grid_rows WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("store: delete %s: %w", id, ErrNotFound)
	}
	return nil
}

// UpdateCell overwrites one field of a stored row.
func (s *Store) UpdateCell(id, field string, value any) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	var fieldsJSON string
	err = tx.QueryRow(`SELECT fields FROM grid_rows WHERE id = ?`, id).Scan(&fieldsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		tx.Rollback()
		return fmt.Errorf("store: update %s: %w", id, ErrNotFound)
	}
	if err != nil {
		tx.Rollback()
		return err
	}
	fields := map[string]any{}
	if err := json.Unmarshal([]byte(fieldsJSON), &fields); err != nil {
		tx.Rollback()
		return err
	}
	fields[field] = value
	updated, err := encodeFields(fields)
	if err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec(`UPDATE grid_rows SET fields = ?, updated_at = ? WHERE id = ?`, updated, time.Now().UTC(), id); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Hooks wires the grid's mutation callbacks to the store.
func (s *Store) Hooks() grid.Hooks {
	return grid.Hooks{
		OnRowAdd:     s.Insert,
		OnRowDelete:  s.Delete,
		OnCellUpdate: s.UpdateCell,
	}
}

func encodeFields(fields map[string]any) (string, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
