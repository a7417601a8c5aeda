package exportCalendar

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"activityCalendar/internal/http-server/handlers/event/getEvents"
	"activityCalendar/internal/lib/api/response"
	"activityCalendar/internal/lib/logger/sl"
	"activityCalendar/internal/models"
	"activityCalendar/internal/schedule"

	ical "github.com/arran4/golang-ical"
	"github.com/go-chi/render"
)

const (
	productID     = "-//activityCalendar//week export//EN"
	eventDuration = time.Hour
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventsGetter
type EventsGetter interface {
	WeekEvents(ctx context.Context, weekStart time.Time) ([]models.Event, error)
}

// New renders the events of a week as an iCalendar file.
func New(log *slog.Logger, eventsGetter EventsGetter, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.exportCalendar.New"

		log := log.With(slog.String("op", op))

		weekStart, err := getEvents.WeekParam(r, loc)
		if err != nil {
			log.Error("invalid week", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("week must be a date in YYYY-MM-DD format"))
			return
		}

		events, err := eventsGetter.WeekEvents(r.Context(), weekStart)
		if err != nil {
			log.Error("failed to get events", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get events"))
			return
		}

		var buf bytes.Buffer
		if err = Calendar(weekStart, events, time.Now()).SerializeTo(&buf); err != nil {
			log.Error("failed to render calendar", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to render calendar"))
			return
		}

		log.Info("calendar exported",
			slog.String("week_start", weekStart.Format(schedule.DateLayout)),
			slog.Int("count", len(events)),
		)

		filename := fmt.Sprintf("week-%s.ics", weekStart.Format(schedule.DateLayout))

		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		_, _ = w.Write(buf.Bytes())
	}
}

// Calendar builds a VCALENDAR with one VEVENT per event. Times are written
// in UTC; clients render them in their own zone.
func Calendar(weekStart time.Time, events []models.Event, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName("Activities, week of " + weekStart.Format(schedule.DateLayout))

	for _, e := range events {
		vevent := cal.AddEvent(fmt.Sprintf("event-%d@activity-calendar", e.ID))
		vevent.SetDtStampTime(stamp)
		vevent.SetStartAt(e.StartsAt)
		vevent.SetEndAt(e.StartsAt.Add(eventDuration))
		vevent.SetSummary(e.Title())
		vevent.SetDescription(description(e))
	}

	return cal
}

func description(e models.Event) string {
	lines := []string{
		fmt.Sprintf("Participants: %d/%d", e.Occupancy, e.Capacity),
	}

	if e.Type != models.EventTypeCustom && e.Description != "" {
		lines = append(lines, e.Description)
	}

	return strings.Join(lines, "\n")
}
