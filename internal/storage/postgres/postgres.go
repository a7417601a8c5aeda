package postgres

import (
	"database/sql"
	"fmt"

	"activityCalendar/internal/config"
	"activityCalendar/internal/storage/sqlstore"

	_ "github.com/lib/pq"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS students (
		id            BIGSERIAL PRIMARY KEY,
		name          TEXT NOT NULL,
		guardian_name TEXT NOT NULL DEFAULT '',
		age           INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id          BIGSERIAL PRIMARY KEY,
		starts_at   TIMESTAMPTZ NOT NULL,
		age_group   TEXT NOT NULL,
		type        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		capacity    INTEGER NOT NULL CHECK (capacity > 0),
		is_active   BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE INDEX IF NOT EXISTS events_active_starts_at_idx ON events (starts_at) WHERE is_active`,
	`CREATE TABLE IF NOT EXISTS event_participants (
		event_id   BIGINT NOT NULL REFERENCES events (id) ON DELETE CASCADE,
		student_id BIGINT NOT NULL REFERENCES students (id) ON DELETE CASCADE,
		PRIMARY KEY (event_id, student_id)
	)`,
	`CREATE TABLE IF NOT EXISTS ledger_entries (
		id          BIGSERIAL PRIMARY KEY,
		kind        TEXT NOT NULL CHECK (kind IN ('income', 'expense')),
		amount      BIGINT NOT NULL CHECK (amount > 0),
		category    TEXT NOT NULL,
		note        TEXT NOT NULL DEFAULT '',
		occurred_on DATE NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

func InitDB(dbCfg *config.Database) (*sqlstore.Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	storage := sqlstore.New(db)

	if err = storage.Migrate(schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return storage, nil
}
