package sqlstore

import (
	"context"
	"fmt"
	"strings"
)

func (s *Storage) ParticipantIDs(ctx context.Context, eventID int64) ([]int64, error) {
	query := `
		SELECT student_id
		FROM event_participants
		WHERE event_id = $1
		ORDER BY student_id`

	rows, err := s.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participants: %w", err)
	}

	return ids, nil
}

// InsertParticipants writes all links in a single statement.
func (s *Storage) InsertParticipants(ctx context.Context, eventID int64, studentIDs []int64) error {
	if len(studentIDs) == 0 {
		return nil
	}

	values := make([]string, len(studentIDs))
	args := make([]any, 0, 2*len(studentIDs))
	for i, id := range studentIDs {
		values[i] = "(" + placeholders(2*i+1, 2) + ")"
		args = append(args, eventID, id)
	}

	query := `INSERT INTO event_participants (event_id, student_id) VALUES ` + strings.Join(values, ", ")

	if _, err := s.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to add participants: %w", err)
	}

	return nil
}

func (s *Storage) DeleteParticipants(ctx context.Context, eventID int64, studentIDs []int64) error {
	if len(studentIDs) == 0 {
		return nil
	}

	args := make([]any, 0, len(studentIDs)+1)
	args = append(args, eventID)
	for _, id := range studentIDs {
		args = append(args, id)
	}

	query := `
		DELETE FROM event_participants
		WHERE event_id = $1 AND student_id IN (` + placeholders(2, len(studentIDs)) + `)`

	if _, err := s.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to remove participants: %w", err)
	}

	return nil
}
