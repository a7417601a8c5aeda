package updateEvent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"activityCalendar/internal/http-server/handlers/event/createEvent"
	"activityCalendar/internal/lib/api/param"
	"activityCalendar/internal/lib/api/response"
	"activityCalendar/internal/lib/logger/sl"
	"activityCalendar/internal/models"
	"activityCalendar/internal/schedule"
	"activityCalendar/internal/storage"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventUpdater
type EventUpdater interface {
	UpdateEvent(ctx context.Context, event models.Event) (models.Event, error)
}

// New replaces the fields of an event and reconciles its participant list
// with participant_ids.
func New(log *slog.Logger, eventUpdater EventUpdater, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.updateEvent.New"

		log := log.With(slog.String("op", op))

		eventID, err := param.ID(r, "id")
		if err != nil {
			log.Error("invalid event id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid event id"))
			return
		}

		log = log.With(slog.Int64("event_id", eventID))

		var req createEvent.Request

		if err = render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		event, err := req.Event(loc)
		if err != nil {
			log.Error("invalid start time", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(createEvent.StartsAtFormatError))
			return
		}

		event.ID = eventID

		updated, err := eventUpdater.UpdateEvent(r.Context(), event)
		if err != nil {
			var rosterErr *schedule.RosterError

			switch {
			case errors.Is(err, storage.ErrEventNotFound):
				log.Info("event not found")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
			case errors.Is(err, models.ErrInvalidEvent):
				log.Info("event rejected", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(err.Error()))
			case errors.Is(err, schedule.ErrSlotTaken):
				log.Info("slot already taken", slog.Time("starts_at", event.StartsAt))
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("time slot already taken"))
			case errors.As(err, &rosterErr):
				log.Error("participants not reconciled",
					slog.String("stage", rosterErr.Stage),
					slog.Bool("deletions_applied", rosterErr.DeletionsApplied()),
					sl.Err(err),
				)
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error(rosterMessage(rosterErr)))
			default:
				log.Error("failed to update event", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to update event"))
			}

			return
		}

		log.Info("event updated")

		render.JSON(w, r, createEvent.EventResponse{
			Response: response.OK(),
			Event:    &updated,
		})
	}
}

func rosterMessage(err *schedule.RosterError) string {
	if err.DeletionsApplied() {
		return "event updated but new participants were not added; removed participants stay removed"
	}

	return "event updated but participants were not changed"
}
