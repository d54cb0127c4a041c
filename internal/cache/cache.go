// Package cache is a local SQLite snapshot of the last successful fetch
// per project: schedule items and kanban cards. It exists for instant
// first paint and offline rendering only — the tracker server remains the
// single source of truth, and every successful fetch overwrites the
// snapshot wholesale.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open opens the snapshot database at path, creating directories and
// schema as needed. ":memory:" opens an in-memory database for tests.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running cache migrations: %w", err)
	}

	return &Store{db: db}, nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS schedule_items (
		project_id      TEXT NOT NULL,
		position        INTEGER NOT NULL,
		id              TEXT NOT NULL,
		name            TEXT NOT NULL,
		start_date      TEXT NOT NULL,
		end_date        TEXT NOT NULL,
		progress_pct    INTEGER NOT NULL,
		critical        INTEGER NOT NULL,
		dependency_ids  TEXT NOT NULL,
		PRIMARY KEY (project_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS cards (
		project_id   TEXT NOT NULL,
		position     INTEGER NOT NULL,
		id           TEXT NOT NULL,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL,
		due_date     TEXT,
		priority     TEXT,
		assignee     TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (project_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS snapshot_meta (
		project_id  TEXT NOT NULL,
		kind        TEXT NOT NULL,
		fetched_at  TEXT NOT NULL,
		PRIMARY KEY (project_id, kind)
	)`,
}

func migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Store wraps the snapshot database.
type Store struct {
	db *sql.DB
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
