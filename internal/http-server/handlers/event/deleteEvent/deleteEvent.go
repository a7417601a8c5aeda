package deleteEvent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"activityCalendar/internal/lib/api/param"
	"activityCalendar/internal/lib/api/response"
	"activityCalendar/internal/lib/logger/sl"
	"activityCalendar/internal/storage"

	"github.com/go-chi/render"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventDeleter
type EventDeleter interface {
	DeleteEvent(ctx context.Context, id int64) error
}

// New deactivates an event. It disappears from week listings and frees its
// slot; the participant links are kept.
func New(log *slog.Logger, eventDeleter EventDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.deleteEvent.New"

		log := log.With(slog.String("op", op))

		eventID, err := param.ID(r, "id")
		if err != nil {
			log.Error("invalid event id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid event id"))
			return
		}

		log = log.With(slog.Int64("event_id", eventID))

		if err = eventDeleter.DeleteEvent(r.Context(), eventID); err != nil {
			if errors.Is(err, storage.ErrEventNotFound) {
				log.Info("event not found")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
				return
			}

			log.Error("failed to delete event", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to delete event"))
			return
		}

		log.Info("event deleted")

		render.JSON(w, r, response.OK())
	}
}
