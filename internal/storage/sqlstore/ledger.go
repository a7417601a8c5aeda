package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"activityCalendar/internal/models"
	"activityCalendar/internal/storage"
)

func (s *Storage) CreateEntry(ctx context.Context, entry models.LedgerEntry) (int64, error) {
	query := `
		INSERT INTO ledger_entries (kind, amount, category, note, occurred_on, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id int64
	err := s.DB.QueryRowContext(ctx, query,
		string(entry.Kind),
		entry.Amount,
		entry.Category,
		entry.Note,
		dateOnly(entry.OccurredOn),
		time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create ledger entry: %w", err)
	}

	return id, nil
}

func (s *Storage) UpdateEntry(ctx context.Context, entry models.LedgerEntry) error {
	query := `
		UPDATE ledger_entries
		SET kind = $1, amount = $2, category = $3, note = $4, occurred_on = $5
		WHERE id = $6`

	result, err := s.DB.ExecContext(ctx, query,
		string(entry.Kind),
		entry.Amount,
		entry.Category,
		entry.Note,
		dateOnly(entry.OccurredOn),
		entry.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update ledger entry: %w", err)
	}

	return expectRow(result, storage.ErrEntryNotFound)
}

func (s *Storage) DeleteEntry(ctx context.Context, id int64) error {
	result, err := s.DB.ExecContext(ctx, `DELETE FROM ledger_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete ledger entry: %w", err)
	}

	return expectRow(result, storage.ErrEntryNotFound)
}

func (s *Storage) Entries(ctx context.Context, filter models.LedgerFilter) ([]models.LedgerEntry, error) {
	where, args := ledgerWhere(filter)

	query := `
		SELECT id, kind, amount, category, note, occurred_on, created_at
		FROM ledger_entries` + where + `
		ORDER BY occurred_on DESC, id DESC`

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entries: %w", err)
	}
	defer rows.Close()

	entries := []models.LedgerEntry{}
	for rows.Next() {
		var entry models.LedgerEntry
		var kind string
		err = rows.Scan(
			&entry.ID,
			&kind,
			&entry.Amount,
			&entry.Category,
			&entry.Note,
			&entry.OccurredOn,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entry.Kind = models.EntryKind(kind)
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entries: %w", err)
	}

	return entries, nil
}

func (s *Storage) Summary(ctx context.Context, filter models.LedgerFilter) (models.LedgerSummary, error) {
	where, args := ledgerWhere(filter)

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN kind = 'income' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN kind = 'expense' THEN amount ELSE 0 END), 0)
		FROM ledger_entries` + where

	var summary models.LedgerSummary
	err := s.DB.QueryRowContext(ctx, query, args...).Scan(&summary.Income, &summary.Expense)
	if err != nil {
		return models.LedgerSummary{}, fmt.Errorf("failed to summarize ledger: %w", err)
	}

	summary.Balance = summary.Income - summary.Expense

	return summary, nil
}

func ledgerWhere(filter models.LedgerFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.Kind != "" {
		args = append(args, string(filter.Kind))
		conds = append(conds, fmt.Sprintf("kind = $%d", len(args)))
	}

	if !filter.From.IsZero() {
		args = append(args, dateOnly(filter.From))
		conds = append(conds, fmt.Sprintf("occurred_on >= $%d", len(args)))
	}

	if !filter.To.IsZero() {
		args = append(args, dateOnly(filter.To))
		conds = append(conds, fmt.Sprintf("occurred_on <= $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}

	return "\n\t\tWHERE " + strings.Join(conds, " AND "), args
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
