package getEvents

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"activityCalendar/internal/lib/api/response"
	"activityCalendar/internal/lib/logger/sl"
	"activityCalendar/internal/models"
	"activityCalendar/internal/schedule"

	"github.com/go-chi/render"
)

type EventsResponse struct {
	response.Response
	WeekStart string         `json:"week_start"`
	Events    []models.Event `json:"events"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventsGetter
type EventsGetter interface {
	WeekEvents(ctx context.Context, weekStart time.Time) ([]models.Event, error)
}

// New lists the active events of the week holding the "week" query date,
// or of the current week when it is omitted.
func New(log *slog.Logger, eventsGetter EventsGetter, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getEvents.New"

		log := log.With(slog.String("op", op))

		weekStart, err := WeekParam(r, loc)
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

		log.Info("events retrieved successfully",
			slog.String("week_start", weekStart.Format(schedule.DateLayout)),
			slog.Int("count", len(events)),
		)

		responseOK(w, r, weekStart, events)
	}
}

// WeekParam resolves the "week" query parameter to the Monday starting that
// week in loc.
func WeekParam(r *http.Request, loc *time.Location) (time.Time, error) {
	week := r.URL.Query().Get("week")
	if week == "" {
		return schedule.StartOfWeek(time.Now().In(loc)), nil
	}

	day, err := schedule.ParseDate(week, loc)
	if err != nil {
		return time.Time{}, err
	}

	return schedule.StartOfWeek(day), nil
}

func responseOK(w http.ResponseWriter, r *http.Request, weekStart time.Time, events []models.Event) {
	if events == nil {
		events = []models.Event{}
	}

	render.JSON(w, r, EventsResponse{
		Response:  response.OK(),
		WeekStart: weekStart.Format(schedule.DateLayout),
		Events:    events,
	})
}
