package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"activityCalendar/internal/models"
	"activityCalendar/internal/storage"
)

const eventColumns = `
		e.id, e.starts_at, e.age_group, e.type, e.description, e.capacity, e.is_active,
		(SELECT COUNT(*) FROM event_participants p WHERE p.event_id = e.id)`

func (s *Storage) ActiveEventsBetween(ctx context.Context, from, to time.Time) ([]models.Event, error) {
	query := `
		SELECT` + eventColumns + `
		FROM events e
		WHERE e.is_active = TRUE AND e.starts_at >= $1 AND e.starts_at < $2
		ORDER BY e.starts_at ASC`

	return s.queryEvents(ctx, query, from.UTC(), to.UTC())
}

func (s *Storage) ActiveEvents(ctx context.Context) ([]models.Event, error) {
	query := `
		SELECT` + eventColumns + `
		FROM events e
		WHERE e.is_active = TRUE
		ORDER BY e.starts_at ASC`

	return s.queryEvents(ctx, query)
}

func (s *Storage) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	query := `
		SELECT` + eventColumns + `
		FROM events e
		WHERE e.id = $1 AND e.is_active = TRUE`

	event, err := scanEvent(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	if event.ParticipantIDs, err = s.ParticipantIDs(ctx, id); err != nil {
		return nil, err
	}

	return &event, nil
}

func (s *Storage) InsertEvent(ctx context.Context, event models.Event) (int64, error) {
	query := `
		INSERT INTO events (starts_at, age_group, type, description, capacity, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id int64
	err := s.DB.QueryRowContext(ctx, query,
		event.StartsAt.UTC(),
		string(event.AgeGroup),
		string(event.Type),
		event.Description,
		event.Capacity,
		event.IsActive,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create event: %w", err)
	}

	return id, nil
}

func (s *Storage) UpdateEvent(ctx context.Context, event models.Event) error {
	query := `
		UPDATE events
		SET starts_at = $1, age_group = $2, type = $3, description = $4, capacity = $5
		WHERE id = $6 AND is_active = TRUE`

	result, err := s.DB.ExecContext(ctx, query,
		event.StartsAt.UTC(),
		string(event.AgeGroup),
		string(event.Type),
		event.Description,
		event.Capacity,
		event.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	return expectRow(result, storage.ErrEventNotFound)
}

// DeactivateEvent soft-deletes an event; its participant links stay.
func (s *Storage) DeactivateEvent(ctx context.Context, id int64) error {
	query := `
		UPDATE events
		SET is_active = FALSE
		WHERE id = $1 AND is_active = TRUE`

	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate event: %w", err)
	}

	return expectRow(result, storage.ErrEventNotFound)
}

func (s *Storage) queryEvents(ctx context.Context, query string, args ...any) ([]models.Event, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	if err = s.attachParticipants(ctx, events); err != nil {
		return nil, err
	}

	return events, nil
}

// attachParticipants loads the rosters of all events in one query.
func (s *Storage) attachParticipants(ctx context.Context, events []models.Event) error {
	if len(events) == 0 {
		return nil
	}

	ids := make([]any, len(events))
	index := make(map[int64]int, len(events))
	for i, e := range events {
		ids[i] = e.ID
		index[e.ID] = i
		events[i].ParticipantIDs = []int64{}
	}

	query := `
		SELECT event_id, student_id
		FROM event_participants
		WHERE event_id IN (` + placeholders(1, len(ids)) + `)
		ORDER BY event_id, student_id`

	rows, err := s.DB.QueryContext(ctx, query, ids...)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var eventID, studentID int64
		if err = rows.Scan(&eventID, &studentID); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}

		i := index[eventID]
		events[i].ParticipantIDs = append(events[i].ParticipantIDs, studentID)
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating participants: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (models.Event, error) {
	var event models.Event
	var ageGroup, eventType string

	err := row.Scan(
		&event.ID,
		&event.StartsAt,
		&ageGroup,
		&eventType,
		&event.Description,
		&event.Capacity,
		&event.IsActive,
		&event.Occupancy,
	)
	if err != nil {
		return models.Event{}, err
	}

	event.AgeGroup = models.AgeGroup(ageGroup)
	event.Type = models.EventType(eventType)

	return event, nil
}

func expectRow(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected == 0 {
		return notFound
	}

	return nil
}
