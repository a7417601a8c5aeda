package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"activityCalendar/internal/storage/sqlstore"

	_ "github.com/mattn/go-sqlite3"
)

// Schema mirrors the PostgreSQL one. Foreign keys are enabled per
// connection through the DSN.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS students (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		name          TEXT NOT NULL,
		guardian_name TEXT NOT NULL DEFAULT '',
		age           INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		starts_at   TIMESTAMP NOT NULL,
		age_group   TEXT NOT NULL,
		type        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		capacity    INTEGER NOT NULL CHECK (capacity > 0),
		is_active   BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE INDEX IF NOT EXISTS events_starts_at_idx ON events (starts_at)`,
	`CREATE TABLE IF NOT EXISTS event_participants (
		event_id   INTEGER NOT NULL REFERENCES events (id) ON DELETE CASCADE,
		student_id INTEGER NOT NULL REFERENCES students (id) ON DELETE CASCADE,
		PRIMARY KEY (event_id, student_id)
	)`,
	`CREATE TABLE IF NOT EXISTS ledger_entries (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		kind        TEXT NOT NULL CHECK (kind IN ('income', 'expense')),
		amount      INTEGER NOT NULL CHECK (amount > 0),
		category    TEXT NOT NULL,
		note        TEXT NOT NULL DEFAULT '',
		occurred_on DATE NOT NULL,
		created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

// InitDB opens (creating if needed) the database at path. ":memory:" gives
// a private in-memory database.
func InitDB(path string) (*sqlstore.Storage, error) {
	dsn := "file::memory:?_foreign_keys=on"

	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dsn = "file:" + path + "?_foreign_keys=on"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open the database: %w", err)
	}

	// sqlite serialises writers; one connection also keeps :memory: shared.
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to open the database: %w", err)
	}

	storage := sqlstore.New(db)

	if err = storage.Migrate(Schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return storage, nil
}
