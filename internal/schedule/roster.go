package schedule

import (
	"context"
	"log/slog"
	"slices"

	"activityCalendar/internal/lib/logger/sl"
)

// RosterDelta is the minimal change turning one participant set into another.
type RosterDelta struct {
	ToDelete []int64
	ToAdd    []int64
}

func (d RosterDelta) Empty() bool {
	return len(d.ToDelete) == 0 && len(d.ToAdd) == 0
}

// Reconcile diffs two participant id sets. Ids present in both are left
// alone. Duplicates are ignored and both lists come back sorted.
func Reconcile(current, desired []int64) RosterDelta {
	currentSet := toSet(current)
	desiredSet := toSet(desired)

	var delta RosterDelta

	for id := range currentSet {
		if _, ok := desiredSet[id]; !ok {
			delta.ToDelete = append(delta.ToDelete, id)
		}
	}

	for id := range desiredSet {
		if _, ok := currentSet[id]; !ok {
			delta.ToAdd = append(delta.ToAdd, id)
		}
	}

	slices.Sort(delta.ToDelete)
	slices.Sort(delta.ToAdd)

	return delta
}

// ApplyRoster brings the stored participants of eventID in line with
// desired. Deletions go first in one batch, then additions in one batch.
// No backend write happens when the sets already match.
func (p *Planner) ApplyRoster(ctx context.Context, eventID int64, desired []int64) (RosterDelta, error) {
	const op = "schedule.ApplyRoster"

	log := p.log.With(
		slog.String("op", op),
		slog.Int64("event_id", eventID),
	)

	current, err := p.store.ParticipantIDs(ctx, eventID)
	if err != nil {
		return RosterDelta{}, &RosterError{EventID: eventID, Stage: StageLoad, Err: err}
	}

	delta := Reconcile(current, desired)
	if delta.Empty() {
		log.Debug("roster unchanged")

		return delta, nil
	}

	if len(delta.ToDelete) > 0 {
		if err = p.store.DeleteParticipants(ctx, eventID, delta.ToDelete); err != nil {
			log.Error("failed to remove participants", sl.Err(err))

			return delta, &RosterError{EventID: eventID, Stage: StageDelete, Err: err}
		}
	}

	if len(delta.ToAdd) > 0 {
		if err = p.store.InsertParticipants(ctx, eventID, delta.ToAdd); err != nil {
			log.Error("failed to add participants, removals already applied", sl.Err(err))
			p.metrics.RosterChanged(0, len(delta.ToDelete))

			return delta, &RosterError{EventID: eventID, Stage: StageInsert, Err: err}
		}
	}

	p.metrics.RosterChanged(len(delta.ToAdd), len(delta.ToDelete))

	log.Info("roster updated",
		slog.Int("added", len(delta.ToAdd)),
		slog.Int("removed", len(delta.ToDelete)),
	)

	return delta, nil
}

func toSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	return set
}
