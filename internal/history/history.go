// Package history persists one record per top-level build in a SQLite
// database, so past builds can be inspected without re-running them.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	cberrors "git.home.luguber.info/inful/corebuilder/internal/errors"
)

// Entry is one recorded build.
type Entry struct {
	BuildID    string
	Core       string
	Version    string
	BuildDir   string
	Status     string // success|failed
	DurationMS int64
	CreatedAt  time.Time
}

// Store is a SQLite-backed build history.
// Use ":memory:" for an in-memory database, or a file path for persistence.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (and initializes) the history database at dbPath.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if dir := filepath.Dir(dbPath); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("create history directory: %w", err)
			}
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, cberrors.Wrap(err, cberrors.CategoryHistory, cberrors.SeverityError, "initialize history schema")
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		build_id TEXT NOT NULL,
		core TEXT NOT NULL,
		version TEXT NOT NULL,
		build_dir TEXT NOT NULL,
		status TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_builds_core ON builds(core);
	CREATE INDEX IF NOT EXISTS idx_builds_created_at ON builds(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record appends one build entry.
func (s *Store) Record(ctx context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO builds (build_id, core, version, build_dir, status, duration_ms, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		e.BuildID, e.Core, e.Version, e.BuildDir, e.Status, e.DurationMS, created.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert build record: %w", err)
	}
	return nil
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT build_id, core, version, build_dir, status, duration_ms, created_at FROM builds ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query build history: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var created int64
		if err := rows.Scan(&e.BuildID, &e.Core, &e.Version, &e.BuildDir, &e.Status, &e.DurationMS, &created); err != nil {
			return nil, fmt.Errorf("scan build record: %w", err)
		}
		e.CreatedAt = time.Unix(created, 0)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }
