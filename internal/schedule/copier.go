package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"activityCalendar/internal/lib/logger/sl"
	"activityCalendar/internal/models"

	"github.com/google/uuid"
)

type Outcome string

const (
	// OutcomeCopied means every source event was copied.
	OutcomeCopied Outcome = "copied"
	// OutcomePartial means some events were copied and some hit conflicts.
	OutcomePartial Outcome = "partial"
	// OutcomeNone means every source event hit a conflict.
	OutcomeNone Outcome = "none"
	// OutcomeEmpty means the source week had nothing to copy.
	OutcomeEmpty Outcome = "empty"
	// OutcomeFailed means a backend error aborted the run.
	OutcomeFailed Outcome = "failed"
)

type CopyRequest struct {
	// WeekEvents is the caller's view of the source week. It may be stale
	// and come in empty; AllEvents is then rescanned day by day.
	WeekEvents      []models.Event
	AllEvents       []models.Event
	SourceWeekStart time.Time
	TargetWeekStart time.Time
}

type CopyResult struct {
	RunID         string  `json:"run_id"`
	SourceCount   int     `json:"source_count"`
	SuccessCount  int     `json:"success_count"`
	ConflictCount int     `json:"conflict_count"`
	DayOffset     int     `json:"day_offset"`
	Outcome       Outcome `json:"outcome"`
}

func (r CopyResult) outcome() Outcome {
	switch {
	case r.SourceCount == 0:
		return OutcomeEmpty
	case r.ConflictCount == 0:
		return OutcomeCopied
	case r.SuccessCount == 0:
		return OutcomeNone
	default:
		return OutcomePartial
	}
}

// CopyStoredWeek copies the stored events of the source week into the
// target week. The full event list is only loaded when the range query
// comes back empty.
func (p *Planner) CopyStoredWeek(ctx context.Context, sourceWeekStart, targetWeekStart time.Time) (CopyResult, error) {
	const op = "schedule.CopyStoredWeek"

	source := WeekFrom(sourceWeekStart.In(p.loc))

	week, err := p.store.ActiveEventsBetween(ctx, source.Start, source.End)
	if err != nil {
		return CopyResult{}, fmt.Errorf("%s: %w", op, err)
	}

	req := CopyRequest{
		WeekEvents:      week,
		SourceWeekStart: sourceWeekStart,
		TargetWeekStart: targetWeekStart,
	}

	if len(week) == 0 {
		if req.AllEvents, err = p.store.ActiveEvents(ctx); err != nil {
			return CopyResult{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	return p.CopyWeek(ctx, req)
}

// CopyWeek copies source week events into the target week, shifted by the
// day offset between the two week starts with wall-clock time preserved.
// A source event whose shifted minute is already taken in the target week
// is counted as a conflict and skipped without any write.
//
// Events are copied one at a time in input order. The first backend error
// stops the run and is returned as *CopyError; earlier copies are kept.
// Target week events are read once up front, so concurrent writers are not
// seen.
func (p *Planner) CopyWeek(ctx context.Context, req CopyRequest) (CopyResult, error) {
	const op = "schedule.CopyWeek"

	res := CopyResult{RunID: uuid.NewString()}

	log := p.log.With(
		slog.String("op", op),
		slog.String("run_id", res.RunID),
	)

	sourceStart := StartOfDay(req.SourceWeekStart.In(p.loc))
	target := WeekFrom(req.TargetWeekStart.In(p.loc))

	res.DayOffset = DayOffset(sourceStart, target.Start)

	source := req.WeekEvents
	if len(source) == 0 {
		source = EventsInWeek(req.AllEvents, sourceStart)
		log.Warn("source week came in empty, rescanned full event list",
			slog.Int("scanned", len(req.AllEvents)),
			slog.Int("recovered", len(source)),
		)
	}

	res.SourceCount = len(source)

	if len(source) == 0 {
		res.Outcome = OutcomeEmpty
		p.metrics.CopyRun(string(res.Outcome), 0, 0)

		return res, ErrNothingToCopy
	}

	for _, e := range source {
		if err := copyable(e); err != nil {
			return CopyResult{RunID: res.RunID, SourceCount: res.SourceCount, DayOffset: res.DayOffset}, err
		}
	}

	existing, err := p.store.ActiveEventsBetween(ctx, target.Start, target.End)
	if err != nil {
		return p.abort(log, res, 0, fmt.Errorf("%s: load target week: %w", op, err))
	}

	taken := make([]time.Time, 0, len(existing)+len(source))
	for _, e := range existing {
		taken = append(taken, e.StartsAt.In(p.loc))
	}

	for _, src := range source {
		startsAt := ShiftDays(src.StartsAt.In(p.loc), res.DayOffset)

		if HasConflict(startsAt, taken) {
			res.ConflictCount++
			log.Debug("slot taken, skipping",
				slog.Int64("source_event_id", src.ID),
				slog.Time("starts_at", startsAt),
			)

			continue
		}

		copied := models.Event{
			StartsAt:    startsAt,
			AgeGroup:    src.AgeGroup,
			Type:        src.Type,
			Description: src.Description,
			Capacity:    src.Capacity,
			IsActive:    true,
		}

		id, err := p.store.InsertEvent(ctx, copied)
		if err != nil {
			return p.abort(log, res, 0, fmt.Errorf("%s: insert copy of event %d: %w", op, src.ID, err))
		}

		if participants := uniqueSorted(src.ParticipantIDs); len(participants) > 0 {
			if err = p.store.InsertParticipants(ctx, id, participants); err != nil {
				return p.abort(log, res, id, fmt.Errorf("%s: insert participants of event %d: %w", op, id, err))
			}
		}

		taken = append(taken, startsAt)
		res.SuccessCount++
	}

	res.Outcome = res.outcome()
	p.metrics.CopyRun(string(res.Outcome), res.SuccessCount, res.ConflictCount)

	log.Info("week copied",
		slog.String("outcome", string(res.Outcome)),
		slog.Int("day_offset", res.DayOffset),
		slog.Int("copied", res.SuccessCount),
		slog.Int("conflicts", res.ConflictCount),
	)

	return res, nil
}

func (p *Planner) abort(log *slog.Logger, res CopyResult, incomplete int64, err error) (CopyResult, error) {
	res.Outcome = OutcomeFailed
	p.metrics.CopyRun(string(res.Outcome), res.SuccessCount, res.ConflictCount)

	log.Error("week copy aborted",
		slog.Int("copied", res.SuccessCount),
		slog.Int("conflicts", res.ConflictCount),
		sl.Err(err),
	)

	return res, &CopyError{Result: res, IncompleteEventID: incomplete, Err: err}
}

// copyable rejects view projections that lost fields needed for a copy.
func copyable(e models.Event) error {
	if !e.AgeGroup.Valid() || !e.Type.Valid() || e.Capacity <= 0 || e.StartsAt.IsZero() {
		return fmt.Errorf("%w: event %d is missing fields required for copying", models.ErrInvalidEvent, e.ID)
	}

	return nil
}

// IsPartialCopy reports whether err is a copy failure after some events
// were already written.
func IsPartialCopy(err error) bool {
	var copyErr *CopyError
	if !errors.As(err, &copyErr) {
		return false
	}

	return copyErr.Result.SuccessCount > 0 || copyErr.IncompleteEventID != 0
}
