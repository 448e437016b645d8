package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("not found")

const dbFileName = "todoflex.sqlite"

// Store is a directory holding the task database.
type Store struct {
	Dir string
}

func (s Store) Ensure() error {
	if s.Dir == "" {
		return errors.New("store: empty dir")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) Path() string { return filepath.Join(filepath.Clean(s.Dir), dbFileName) }

// ModTime returns the latest modification time of the database files. The
// TUI polls it to pick up writes from other processes.
func (s Store) ModTime() time.Time {
	var latest time.Time
	for _, p := range []string{s.Path(), s.Path() + "-wal"} {
		st, err := os.Stat(p)
		if err != nil {
			continue
		}
		if st.ModTime().After(latest) {
			latest = st.ModTime()
		}
	}
	return latest
}

func (s Store) open(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.Path())
	if err != nil {
		return nil, err
	}
	// The CLI may write while the TUI is open: WAL gives one writer + many
	// readers and busy_timeout avoids "database is locked" flakiness.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			date TEXT NOT NULL,
			priority INTEGER NOT NULL,
			done INTEGER NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_date ON tasks(date, priority);`,
		`INSERT OR IGNORE INTO meta(k, v) VALUES('schema_version', '1');`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
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
