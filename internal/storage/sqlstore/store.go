// Package sqlstore implements calendar and ledger storage on database/sql.
//
// Queries use $n placeholders in order of appearance so the same SQL runs
// on PostgreSQL and SQLite. Timestamps are written in UTC.
package sqlstore

import (
	"database/sql"
	"fmt"
	"strings"
)

type Storage struct {
	DB *sql.DB
}

func New(db *sql.DB) *Storage {
	return &Storage{DB: db}
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

// Migrate runs schema statements one by one.
func (s *Storage) Migrate(statements []string) error {
	for _, stmt := range statements {
		if _, err := s.DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	return nil
}

// placeholders renders "$from, $from+1, ..." for n values.
func placeholders(from, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", from+i)
	}

	return strings.Join(parts, ", ")
}
