// Package audit keeps a sqlite trail of per-item delete outcomes.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// timeLayout is fixed width so stored times order as text
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Entry is the outcome of one item in one invocation
type Entry struct {
	ID        int64
	Time      time.Time
	RunID     string
	Path      string
	Kind      string
	Mode      string
	Code      string
	Escalated bool
}

// Failed reports whether the item was left in place
func (e Entry) Failed() bool {
	return e.Code != "OK"
}

// Store is a sqlite-backed audit trail
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path
func Open(path string) (s *Store, err error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create audit directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open audit database: %w", err)
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	// SELECT 1 forces the file into existence
	if _, err = db.Exec("SELECT 1"); err != nil {
		return nil, fmt.Errorf("initialize audit database (check permissions on %s): %w", path, err)
	}
	if _, err = db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err = db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		return nil, fmt.Errorf("set synchronous mode: %w", err)
	}

	s = &Store{db: db}
	if err = s.initSchema(); err != nil {
		return nil, fmt.Errorf("create audit schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS outcomes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		time TEXT NOT NULL,
		run_id TEXT NOT NULL,
		path TEXT NOT NULL,
		kind TEXT NOT NULL,
		mode TEXT NOT NULL,
		code TEXT NOT NULL,
		escalated INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_outcomes_time ON outcomes(time);
	CREATE INDEX IF NOT EXISTS idx_outcomes_run_id ON outcomes(run_id);

	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	INSERT OR IGNORE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record appends e. ID is assigned by the store.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO outcomes (time, run_id, path, kind, mode, code, escalated)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Time.UTC().Format(timeLayout),
		e.RunID,
		e.Path,
		e.Kind,
		e.Mode,
		e.Code,
		e.Escalated,
	)
	if err != nil {
		return fmt.Errorf("record %s: %w", e.Path, err)
	}
	return nil
}

// Query narrows List. Zero values match everything.
type Query struct {
	RunID      string
	FailedOnly bool
	Since      time.Time
	Limit      int
}

// List returns matching entries, newest first
func (s *Store) List(ctx context.Context, q Query) ([]Entry, error) {
	var (
		where []string
		args  []any
	)
	if q.RunID != "" {
		where = append(where, "run_id = ?")
		args = append(args, q.RunID)
	}
	if q.FailedOnly {
		where = append(where, "code <> 'OK'")
	}
	if !q.Since.IsZero() {
		where = append(where, "time >= ?")
		args = append(args, q.Since.UTC().Format(timeLayout))
	}

	query := "SELECT id, time, run_id, path, kind, mode, code, escalated FROM outcomes"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY time DESC, id DESC"
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list outcomes: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e  Entry
			ts string
		)
		if err := rows.Scan(&e.ID, &ts, &e.RunID, &e.Path, &e.Kind, &e.Mode, &e.Code, &e.Escalated); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		e.Time, err = time.Parse(timeLayout, ts)
		if err != nil {
			return nil, fmt.Errorf("parse outcome time %q: %w", ts, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Prune removes entries older than before and reports how many went
func (s *Store) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM outcomes WHERE time < ?", before.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("prune outcomes: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
