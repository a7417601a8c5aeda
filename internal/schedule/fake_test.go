package schedule

import (
	"context"
	"errors"
	"slices"
	"sort"
	"time"

	"activityCalendar/internal/models"
	"activityCalendar/internal/storage"
)

var errBackend = errors.New("backend unavailable")

// memStore is an in-memory Store with per-call failure injection.
type memStore struct {
	nextID       int64
	events       map[int64]models.Event
	participants map[int64][]int64
	calls        []string

	failInsertEventAt   int // 1-based; 0 disables
	failParticipantsAt  int
	failDelete          bool
	failRange           bool
	insertEventCalls    int
	insertParticipCalls int
}

func newMemStore(events ...models.Event) *memStore {
	s := &memStore{
		events:       make(map[int64]models.Event),
		participants: make(map[int64][]int64),
	}

	for _, e := range events {
		s.nextID++
		if e.ID == 0 {
			e.ID = s.nextID
		} else if e.ID > s.nextID {
			s.nextID = e.ID
		}
		s.participants[e.ID] = slices.Clone(e.ParticipantIDs)
		s.events[e.ID] = e
	}

	return s
}

func (s *memStore) withParticipants(e models.Event) models.Event {
	e.ParticipantIDs = slices.Clone(s.participants[e.ID])
	e.Occupancy = len(e.ParticipantIDs)

	return e
}

func (s *memStore) sorted(keep func(models.Event) bool) []models.Event {
	var out []models.Event
	for _, e := range s.events {
		if keep(e) {
			out = append(out, s.withParticipants(e))
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })

	return out
}

func (s *memStore) ActiveEventsBetween(_ context.Context, from, to time.Time) ([]models.Event, error) {
	s.calls = append(s.calls, "ActiveEventsBetween")
	if s.failRange {
		return nil, errBackend
	}

	return s.sorted(func(e models.Event) bool {
		return e.IsActive && !e.StartsAt.Before(from) && e.StartsAt.Before(to)
	}), nil
}

func (s *memStore) ActiveEvents(_ context.Context) ([]models.Event, error) {
	s.calls = append(s.calls, "ActiveEvents")

	return s.sorted(func(e models.Event) bool { return e.IsActive }), nil
}

func (s *memStore) GetEvent(_ context.Context, id int64) (*models.Event, error) {
	s.calls = append(s.calls, "GetEvent")

	e, ok := s.events[id]
	if !ok || !e.IsActive {
		return nil, storage.ErrEventNotFound
	}

	e = s.withParticipants(e)

	return &e, nil
}

func (s *memStore) InsertEvent(_ context.Context, e models.Event) (int64, error) {
	s.calls = append(s.calls, "InsertEvent")
	s.insertEventCalls++
	if s.insertEventCalls == s.failInsertEventAt {
		return 0, errBackend
	}

	s.nextID++
	e.ID = s.nextID
	e.ParticipantIDs = nil
	e.Occupancy = 0
	s.events[e.ID] = e

	return e.ID, nil
}

func (s *memStore) UpdateEvent(_ context.Context, e models.Event) error {
	s.calls = append(s.calls, "UpdateEvent")

	current, ok := s.events[e.ID]
	if !ok {
		return storage.ErrEventNotFound
	}

	current.StartsAt = e.StartsAt
	current.AgeGroup = e.AgeGroup
	current.Type = e.Type
	current.Description = e.Description
	current.Capacity = e.Capacity
	s.events[e.ID] = current

	return nil
}

func (s *memStore) DeactivateEvent(_ context.Context, id int64) error {
	s.calls = append(s.calls, "DeactivateEvent")

	e, ok := s.events[id]
	if !ok {
		return storage.ErrEventNotFound
	}

	e.IsActive = false
	s.events[id] = e

	return nil
}

func (s *memStore) ParticipantIDs(_ context.Context, eventID int64) ([]int64, error) {
	s.calls = append(s.calls, "ParticipantIDs")

	return slices.Clone(s.participants[eventID]), nil
}

func (s *memStore) InsertParticipants(_ context.Context, eventID int64, ids []int64) error {
	s.calls = append(s.calls, "InsertParticipants")
	s.insertParticipCalls++
	if s.insertParticipCalls == s.failParticipantsAt {
		return errBackend
	}

	for _, id := range ids {
		if slices.Contains(s.participants[eventID], id) {
			return errors.New("duplicate participant link")
		}
		s.participants[eventID] = append(s.participants[eventID], id)
	}

	return nil
}

func (s *memStore) DeleteParticipants(_ context.Context, eventID int64, ids []int64) error {
	s.calls = append(s.calls, "DeleteParticipants")
	if s.failDelete {
		return errBackend
	}

	s.participants[eventID] = slices.DeleteFunc(s.participants[eventID], func(id int64) bool {
		return slices.Contains(ids, id)
	})

	return nil
}

func (s *memStore) count(call string) int {
	n := 0
	for _, c := range s.calls {
		if c == call {
			n++
		}
	}

	return n
}

func (s *memStore) activeAt(t time.Time) []models.Event {
	return s.sorted(func(e models.Event) bool { return e.IsActive && SameMinute(e.StartsAt, t) })
}
