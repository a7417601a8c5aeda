package createEntry

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"activityCalendar/internal/lib/api/response"
	"activityCalendar/internal/lib/logger/sl"
	"activityCalendar/internal/models"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

// Request is the ledger entry payload shared by create and update.
type Request struct {
	Kind       models.EntryKind `json:"kind" validate:"required"`
	Amount     int64            `json:"amount" validate:"required,gt=0"`
	Category   string           `json:"category" validate:"required"`
	Note       string           `json:"note"`
	OccurredOn string           `json:"occurred_on" validate:"required,datetime=2006-01-02"`
}

func (req Request) Entry() (models.LedgerEntry, error) {
	occurredOn, err := time.Parse(time.DateOnly, req.OccurredOn)
	if err != nil {
		return models.LedgerEntry{}, err
	}

	entry := models.LedgerEntry{
		Kind:       req.Kind,
		Amount:     req.Amount,
		Category:   req.Category,
		Note:       req.Note,
		OccurredOn: occurredOn,
	}

	return entry, entry.Validate()
}

type EntryResponse struct {
	response.Response
	ID int64 `json:"id"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EntryCreator
type EntryCreator interface {
	CreateEntry(ctx context.Context, entry models.LedgerEntry) (int64, error)
}

func New(log *slog.Logger, entryCreator EntryCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ledger.createEntry.New"

		log := log.With(slog.String("op", op))

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
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

		entry, err := req.Entry()
		if err != nil {
			log.Error("invalid ledger entry", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		id, err := entryCreator.CreateEntry(r.Context(), entry)
		if err != nil {
			log.Error("failed to add ledger entry", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to add ledger entry"))
			return
		}

		log.Info("ledger entry added", slog.Int64("id", id), slog.String("kind", string(entry.Kind)))

		render.JSON(w, r, EntryResponse{
			Response: response.OK(),
			ID:       id,
		})
	}
}
