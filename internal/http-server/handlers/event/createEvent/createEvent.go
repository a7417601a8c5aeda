package createEvent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"activityCalendar/internal/lib/api/response"
	"activityCalendar/internal/lib/logger/sl"
	"activityCalendar/internal/models"
	"activityCalendar/internal/schedule"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

// Request is the event payload shared by create and update.
type Request struct {
	StartsAt       string           `json:"starts_at" validate:"required"`
	AgeGroup       models.AgeGroup  `json:"age_group" validate:"required"`
	Type           models.EventType `json:"type" validate:"required"`
	Description    string           `json:"description" validate:"required_if=Type custom"`
	Capacity       int              `json:"capacity" validate:"required,gt=0"`
	ParticipantIDs []int64          `json:"participant_ids" validate:"dive,gt=0"`
}

// Event converts the request into a model with StartsAt resolved in loc.
func (req Request) Event(loc *time.Location) (models.Event, error) {
	startsAt, err := schedule.ParseDateTime(req.StartsAt, loc)
	if err != nil {
		return models.Event{}, err
	}

	return models.Event{
		StartsAt:       startsAt,
		AgeGroup:       req.AgeGroup,
		Type:           req.Type,
		Description:    req.Description,
		Capacity:       req.Capacity,
		ParticipantIDs: req.ParticipantIDs,
	}, nil
}

type EventResponse struct {
	response.Response
	Event *models.Event `json:"event,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventCreator
type EventCreator interface {
	CreateEvent(ctx context.Context, event models.Event) (models.Event, error)
}

func New(log *slog.Logger, eventCreator EventCreator, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.createEvent.New"

		log := log.With(slog.String("op", op))

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}

		log.Info("request body decoded", slog.Any("request", req))

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
			render.JSON(w, r, response.Error(StartsAtFormatError))

			return
		}

		created, err := eventCreator.CreateEvent(r.Context(), event)
		if err != nil {
			var rosterErr *schedule.RosterError

			switch {
			case errors.Is(err, models.ErrInvalidEvent):
				log.Info("event rejected", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(err.Error()))
			case errors.Is(err, schedule.ErrSlotTaken):
				log.Info("slot already taken", slog.Time("starts_at", event.StartsAt))
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("time slot already taken"))
			case errors.As(err, &rosterErr):
				log.Error("event created without participants", slog.Int64("event_id", rosterErr.EventID), sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, EventResponse{
					Response: response.Error("event created but participants were not saved"),
					Event:    &created,
				})
			default:
				log.Error("failed to add event", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to add event"))
			}

			return
		}

		log.Info("event added", slog.Int64("id", created.ID))

		responseOK(w, r, created)
	}
}

const StartsAtFormatError = "starts_at must be YYYY-MM-DDTHH:MM or an RFC 3339 timestamp"

func responseOK(w http.ResponseWriter, r *http.Request, event models.Event) {
	render.JSON(w, r, EventResponse{
		Response: response.OK(),
		Event:    &event,
	})
}
