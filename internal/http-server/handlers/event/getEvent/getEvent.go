package getEvent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"activityCalendar/internal/lib/api/param"
	"activityCalendar/internal/lib/api/response"
	"activityCalendar/internal/lib/logger/sl"
	"activityCalendar/internal/models"
	"activityCalendar/internal/storage"

	"github.com/go-chi/render"
)

type EventResponse struct {
	response.Response
	Event *models.Event `json:"event"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventGetter
type EventGetter interface {
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
}

func New(log *slog.Logger, eventGetter EventGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getEvent.New"

		log := log.With(slog.String("op", op))

		eventID, err := param.ID(r, "id")
		if err != nil {
			log.Error("invalid event id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid event id"))
			return
		}

		log = log.With(slog.Int64("event_id", eventID))

		event, err := eventGetter.GetEvent(r.Context(), eventID)
		if err != nil {
			if errors.Is(err, storage.ErrEventNotFound) {
				log.Info("event not found")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
				return
			}

			log.Error("failed to get event", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get event"))
			return
		}

		log.Info("event retrieved", slog.Int("participants", len(event.ParticipantIDs)))

		render.JSON(w, r, EventResponse{
			Response: response.OK(),
			Event:    event,
		})
	}
}
