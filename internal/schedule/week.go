package schedule

import (
	"fmt"
	"math"
	"time"

	"activityCalendar/internal/models"
)

const (
	daysInWeek = 7

	DateLayout     = time.DateOnly
	DateTimeLayout = "2006-01-02T15:04"
)

// Window is the half-open range [Start, End) of one calendar week.
type Window struct {
	Start time.Time
	End   time.Time
}

func WeekFrom(weekStart time.Time) Window {
	start := StartOfDay(weekStart)

	return Window{
		Start: start,
		End:   start.AddDate(0, 0, daysInWeek),
	}
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the Monday on or before t.
func StartOfWeek(t time.Time) time.Time {
	sinceMonday := (int(t.Weekday()) + 6) % daysInWeek

	return StartOfDay(t).AddDate(0, 0, -sinceMonday)
}

// DayOffset is the whole number of days between two week starts, rounded
// so that a DST hour gained or lost in between does not shift the result.
func DayOffset(sourceWeekStart, targetWeekStart time.Time) int {
	days := targetWeekStart.Sub(sourceWeekStart).Hours() / 24

	return int(math.Round(days))
}

// ShiftDays moves t by n calendar days keeping its wall-clock time.
func ShiftDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}

// SameMinute is the slot conflict predicate: year, month, day, hour and
// minute must all match. Seconds are ignored.
func SameMinute(a, b time.Time) bool {
	return SameDay(a, b) && a.Hour() == b.Hour() && a.Minute() == b.Minute()
}

func HasConflict(candidate time.Time, existing []time.Time) bool {
	for _, t := range existing {
		if SameMinute(candidate, t.In(candidate.Location())) {
			return true
		}
	}

	return false
}

// EventsInWeek selects active events whose calendar day falls in the week
// starting at weekStart, walking the seven days one by one. Times are
// compared in weekStart's location.
func EventsInWeek(all []models.Event, weekStart time.Time) []models.Event {
	loc := weekStart.Location()
	day := StartOfDay(weekStart)

	var found []models.Event

	for i := 0; i < daysInWeek; i++ {
		for _, e := range all {
			if !e.IsActive {
				continue
			}

			if SameDay(e.StartsAt.In(loc), day) {
				found = append(found, e)
			}
		}

		day = day.AddDate(0, 0, 1)
	}

	return found
}

func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}

	return t, nil
}

// ParseDateTime accepts a local "YYYY-MM-DDTHH:MM" value or a full RFC 3339
// timestamp and returns it in loc truncated to the minute.
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(DateTimeLayout, s, loc); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date-time %q: %w", s, err)
	}

	return t.In(loc).Truncate(time.Minute), nil
}
