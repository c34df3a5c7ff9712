// Package store persists training records in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/riverfjs/mdlite-go/internal/record"
)

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrExists is returned by Create when a record with the same id is stored.
	ErrExists = errors.New("record already exists")
)

const timeLayout = time.RFC3339Nano

// Store is a SQLite-backed record store.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open connects to the database at path, creating the file and schema if needed.
// path may carry a sqlite:// prefix; ":memory:" opens a private in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimPrefix(path, "sqlite://")
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, err
		}
	}
	dbh, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		// each pooled connection would get its own empty database
		dbh.SetMaxOpenConns(1)
	} else if _, err := dbh.ExecContext(ctx, `PRAGMA journal_mode=WAL;`); err != nil {
		_ = dbh.Close()
		return nil, err
	}
	if _, err := dbh.ExecContext(ctx, `PRAGMA foreign_keys=ON;`); err != nil {
		_ = dbh.Close()
		return nil, err
	}
	if err := migrate(ctx, dbh); err != nil {
		_ = dbh.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: dbh, now: time.Now}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS records (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  original_content TEXT NOT NULL,
  source_links TEXT NOT NULL,
  status TEXT NOT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_records_status_created ON records(status, created_at DESC, id);
CREATE TABLE IF NOT EXISTS qa_pairs (
  record_id TEXT NOT NULL,
  idx INTEGER NOT NULL,
  question TEXT NOT NULL,
  answer TEXT NOT NULL,
  approved INTEGER NOT NULL DEFAULT 0,
  PRIMARY KEY(record_id, idx),
  FOREIGN KEY(record_id) REFERENCES records(id) ON DELETE CASCADE
);
`)
	return err
}

// Save inserts or replaces a record together with all of its pairs.
func (s *Store) Save(ctx context.Context, r *record.Record) error {
	return s.write(ctx, r, true)
}

// Create inserts a new record and fails with ErrExists when the id is taken,
// leaving the stored record and its approvals untouched.
func (s *Store) Create(ctx context.Context, r *record.Record) error {
	return s.write(ctx, r, false)
}

func (s *Store) write(ctx context.Context, r *record.Record, replace bool) error {
	if r == nil || r.ID == "" {
		return errors.New("record id is required")
	}
	r.Refresh()
	links, err := json.Marshal(nonNil(r.SourceLinks))
	if err != nil {
		return err
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now().UTC()
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = r.CreatedAt
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if !replace {
		var one int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM records WHERE id = ?`, r.ID).Scan(&one)
		switch {
		case err == nil:
			return fmt.Errorf("%w: %s", ErrExists, r.ID)
		case !errors.Is(err, sql.ErrNoRows):
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `
INSERT INTO records(id, title, original_content, source_links, status, created_at, updated_at)
VALUES(?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  title = excluded.title,
  original_content = excluded.original_content,
  source_links = excluded.source_links,
  status = excluded.status,
  updated_at = excluded.updated_at`,
		r.ID, r.Title, r.OriginalContent, string(links), string(r.Status),
		r.CreatedAt.UTC().Format(timeLayout), r.UpdatedAt.UTC().Format(timeLayout),
	); err != nil {
		return fmt.Errorf("save record %s: %w", r.ID, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM qa_pairs WHERE record_id = ?`, r.ID); err != nil {
		return err
	}
	for i, p := range r.QAPairs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO qa_pairs(record_id, idx, question, answer, approved) VALUES(?, ?, ?, ?, ?)`,
			r.ID, i, p.Question, p.Answer, boolToInt(p.Approved),
		); err != nil {
			return fmt.Errorf("save pair %d of %s: %w", i, r.ID, err)
		}
	}
	return tx.Commit()
}

// Get loads one record with its pairs.
func (s *Store) Get(ctx context.Context, id string) (*record.Record, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, title, original_content, source_links, status, created_at, updated_at
FROM records WHERE id = ?`, id)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if err := s.loadPairs(ctx, []*record.Record{r}); err != nil {
		return nil, err
	}
	return r, nil
}

// List returns records newest first. An empty status lists every record.
func (s *Store) List(ctx context.Context, status record.Status) ([]*record.Record, error) {
	q := `SELECT id, title, original_content, source_links, status, created_at, updated_at FROM records`
	args := []any{}
	if status != "" {
		q += ` WHERE status = ?`
		args = append(args, string(status))
	}
	q += ` ORDER BY created_at DESC, id`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*record.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.loadPairs(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetApproval marks pair idx of record id (every pair when idx < 0).
// The record becomes approved once all of its pairs are.
func (s *Store) SetApproval(ctx context.Context, id string, idx int, approved bool) (*record.Record, error) {
	return s.modify(ctx, id, func(r *record.Record) error {
		return r.SetApproval(idx, approved)
	})
}

// UpdatePair edits the question and/or answer of one pair.
func (s *Store) UpdatePair(ctx context.Context, id string, idx int, question, answer string) (*record.Record, error) {
	return s.modify(ctx, id, func(r *record.Record) error {
		return r.UpdatePair(idx, question, answer)
	})
}

// Delete removes a record and its pairs.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (s *Store) modify(ctx context.Context, id string, fn func(*record.Record) error) (*record.Record, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(r); err != nil {
		return nil, err
	}
	r.UpdatedAt = s.now().UTC()
	if err := s.Save(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (*record.Record, error) {
	var (
		r                record.Record
		links, status    string
		created, updated string
	)
	if err := sc.Scan(&r.ID, &r.Title, &r.OriginalContent, &links, &status, &created, &updated); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(links), &r.SourceLinks); err != nil {
		return nil, fmt.Errorf("decode source_links of %s: %w", r.ID, err)
	}
	if len(r.SourceLinks) == 0 {
		r.SourceLinks = nil
	}
	r.Status = record.Status(status)
	var err error
	if r.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return nil, err
	}
	if r.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) loadPairs(ctx context.Context, recs []*record.Record) error {
	for _, r := range recs {
		rows, err := s.db.QueryContext(ctx,
			`SELECT question, answer, approved FROM qa_pairs WHERE record_id = ? ORDER BY idx`, r.ID)
		if err != nil {
			return err
		}
		for rows.Next() {
			var (
				p        record.QAPair
				approved int
			)
			if err := rows.Scan(&p.Question, &p.Answer, &approved); err != nil {
				rows.Close()
				return err
			}
			p.Approved = approved != 0
			r.QAPairs = append(r.QAPairs, p)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
