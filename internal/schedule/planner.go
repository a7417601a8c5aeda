// Package schedule holds the calendar rules: the minute-exact slot conflict
// check, participant reconciliation and the week copy engine.
//
// Storage is reached only through the Store interface; multi-step writes
// (event then participants, removals then additions) are not atomic and
// partial failures are reported through CopyError and RosterError.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"activityCalendar/internal/lib/logger/sl"
	"activityCalendar/internal/lib/metrics"
	"activityCalendar/internal/models"
)

type Store interface {
	// ActiveEventsBetween returns active events with from <= start < to,
	// participant ids included.
	ActiveEventsBetween(ctx context.Context, from, to time.Time) ([]models.Event, error)
	ActiveEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
	InsertEvent(ctx context.Context, event models.Event) (int64, error)
	UpdateEvent(ctx context.Context, event models.Event) error
	DeactivateEvent(ctx context.Context, id int64) error
	ParticipantIDs(ctx context.Context, eventID int64) ([]int64, error)
	InsertParticipants(ctx context.Context, eventID int64, studentIDs []int64) error
	DeleteParticipants(ctx context.Context, eventID int64, studentIDs []int64) error
}

type Planner struct {
	log     *slog.Logger
	store   Store
	loc     *time.Location
	metrics *metrics.Metrics
}

type Option func(*Planner)

// WithLocation sets the zone used for calendar days and wall-clock times.
func WithLocation(loc *time.Location) Option {
	return func(p *Planner) {
		if loc != nil {
			p.loc = loc
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Planner) {
		p.metrics = m
	}
}

func New(log *slog.Logger, store Store, opts ...Option) *Planner {
	p := &Planner{
		log:   log,
		store: store,
		loc:   time.Local,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *Planner) Location() *time.Location {
	return p.loc
}

// WeekEvents returns the active events of the week starting at weekStart.
func (p *Planner) WeekEvents(ctx context.Context, weekStart time.Time) ([]models.Event, error) {
	const op = "schedule.WeekEvents"

	week := WeekFrom(weekStart.In(p.loc))

	events, err := p.store.ActiveEventsBetween(ctx, week.Start, week.End)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return p.localize(events), nil
}

func (p *Planner) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	const op = "schedule.GetEvent"

	event, err := p.store.GetEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	event.StartsAt = event.StartsAt.In(p.loc)

	return event, nil
}

func (p *Planner) CreateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	const op = "schedule.CreateEvent"

	log := p.log.With(slog.String("op", op))

	event.StartsAt = event.StartsAt.In(p.loc).Truncate(time.Minute)
	event.IsActive = true
	event.Occupancy = 0

	if err := event.Validate(); err != nil {
		return models.Event{}, err
	}

	taken, err := p.slotTaken(ctx, event.StartsAt, 0)
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	if taken {
		log.Info("slot already taken", slog.Time("starts_at", event.StartsAt))

		return models.Event{}, fmt.Errorf("%s: %w", op, ErrSlotTaken)
	}

	id, err := p.store.InsertEvent(ctx, event)
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	event.ID = id

	participants := uniqueSorted(event.ParticipantIDs)
	if len(participants) > 0 {
		if err = p.store.InsertParticipants(ctx, id, participants); err != nil {
			log.Error("event created without participants", slog.Int64("event_id", id), sl.Err(err))

			return event, fmt.Errorf("%s: %w", op, &RosterError{EventID: id, Stage: StageInsert, Err: err})
		}
	}

	event.ParticipantIDs = participants
	event.Occupancy = len(participants)

	log.Info("event created", slog.Int64("event_id", id))

	return event, nil
}

// UpdateEvent rewrites the fields of an existing event and reconciles its
// roster. The conflict check only runs when the start minute changes.
func (p *Planner) UpdateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	const op = "schedule.UpdateEvent"

	log := p.log.With(
		slog.String("op", op),
		slog.Int64("event_id", event.ID),
	)

	current, err := p.store.GetEvent(ctx, event.ID)
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	event.StartsAt = event.StartsAt.In(p.loc).Truncate(time.Minute)
	event.IsActive = current.IsActive

	if err = event.Validate(); err != nil {
		return models.Event{}, err
	}

	if !SameMinute(current.StartsAt.In(p.loc), event.StartsAt) {
		taken, err := p.slotTaken(ctx, event.StartsAt, event.ID)
		if err != nil {
			return models.Event{}, fmt.Errorf("%s: %w", op, err)
		}

		if taken {
			log.Info("slot already taken", slog.Time("starts_at", event.StartsAt))

			return models.Event{}, fmt.Errorf("%s: %w", op, ErrSlotTaken)
		}
	}

	if err = p.store.UpdateEvent(ctx, event); err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	if _, err = p.ApplyRoster(ctx, event.ID, event.ParticipantIDs); err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := p.GetEvent(ctx, event.ID)
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("event updated")

	return *updated, nil
}

func (p *Planner) DeleteEvent(ctx context.Context, id int64) error {
	const op = "schedule.DeleteEvent"

	if err := p.store.DeactivateEvent(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	p.log.Info("event deactivated", slog.String("op", op), slog.Int64("event_id", id))

	return nil
}

// slotTaken checks the calendar day of start for an active event at the same
// minute, ignoring the event with id exclude.
func (p *Planner) slotTaken(ctx context.Context, start time.Time, exclude int64) (bool, error) {
	day := StartOfDay(start)

	events, err := p.store.ActiveEventsBetween(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return false, err
	}

	existing := make([]time.Time, 0, len(events))
	for _, e := range events {
		if e.ID == exclude {
			continue
		}
		existing = append(existing, e.StartsAt)
	}

	return HasConflict(start, existing), nil
}

func (p *Planner) localize(events []models.Event) []models.Event {
	out := make([]models.Event, len(events))
	for i, e := range events {
		e.StartsAt = e.StartsAt.In(p.loc)
		out[i] = e
	}

	return out
}

func uniqueSorted(ids []int64) []int64 {
	return Reconcile(nil, ids).ToAdd
}
