package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidEvent = errors.New("invalid event")

type AgeGroup string

const (
	AgeGroupToddlers  AgeGroup = "toddlers"
	AgeGroupPreschool AgeGroup = "preschool"
	AgeGroupSchool    AgeGroup = "school"
	AgeGroupMixed     AgeGroup = "mixed"
)

func (g AgeGroup) Valid() bool {
	switch g {
	case AgeGroupToddlers, AgeGroupPreschool, AgeGroupSchool, AgeGroupMixed:
		return true
	}

	return false
}

func (g AgeGroup) String() string {
	return string(g)
}

func (g *AgeGroup) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	if !AgeGroup(s).Valid() {
		return fmt.Errorf("unknown age group %q", s)
	}

	*g = AgeGroup(s)

	return nil
}

type EventType string

const (
	EventTypeLanguageClass EventType = "language_class"
	EventTypeSensory       EventType = "sensory"
	EventTypeCustom        EventType = "custom"
)

func (t EventType) Valid() bool {
	switch t {
	case EventTypeLanguageClass, EventTypeSensory, EventTypeCustom:
		return true
	}

	return false
}

func (t EventType) String() string {
	return string(t)
}

func (t *EventType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	if !EventType(s).Valid() {
		return fmt.Errorf("unknown event type %q", s)
	}

	*t = EventType(s)

	return nil
}

// Event is one calendar slot. Occupancy is computed by the storage layer
// from the participant links and is never written back.
type Event struct {
	ID             int64     `json:"id"`
	StartsAt       time.Time `json:"starts_at"`
	AgeGroup       AgeGroup  `json:"age_group"`
	Type           EventType `json:"type"`
	Description    string    `json:"description,omitempty"`
	Capacity       int       `json:"capacity"`
	Occupancy      int       `json:"occupancy"`
	IsActive       bool      `json:"is_active"`
	ParticipantIDs []int64   `json:"participant_ids"`
}

func (e Event) Validate() error {
	switch {
	case e.StartsAt.IsZero():
		return fmt.Errorf("%w: start time is required", ErrInvalidEvent)
	case !e.AgeGroup.Valid():
		return fmt.Errorf("%w: unknown age group %q", ErrInvalidEvent, e.AgeGroup)
	case !e.Type.Valid():
		return fmt.Errorf("%w: unknown event type %q", ErrInvalidEvent, e.Type)
	case e.Type == EventTypeCustom && strings.TrimSpace(e.Description) == "":
		return fmt.Errorf("%w: custom events need a description", ErrInvalidEvent)
	case e.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be positive", ErrInvalidEvent)
	case len(uniqueIDs(e.ParticipantIDs)) > e.Capacity:
		return fmt.Errorf("%w: %d participants exceed capacity %d", ErrInvalidEvent, len(uniqueIDs(e.ParticipantIDs)), e.Capacity)
	}

	return nil
}

// Title is the short label used in calendar exports.
func (e Event) Title() string {
	var label string

	switch e.Type {
	case EventTypeLanguageClass:
		label = "Language class"
	case EventTypeSensory:
		label = "Sensory play"
	default:
		label = e.Description
	}

	return fmt.Sprintf("%s (%s)", label, e.AgeGroup)
}

func uniqueIDs(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	return set
}

type ParticipantLink struct {
	EventID   int64 `json:"event_id"`
	StudentID int64 `json:"student_id"`
}
