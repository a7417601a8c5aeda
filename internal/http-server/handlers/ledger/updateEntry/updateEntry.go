package updateEntry

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"activityCalendar/internal/http-server/handlers/ledger/createEntry"
	"activityCalendar/internal/lib/api/param"
	"activityCalendar/internal/lib/api/response"
	"activityCalendar/internal/lib/logger/sl"
	"activityCalendar/internal/models"
	"activityCalendar/internal/storage"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EntryUpdater
type EntryUpdater interface {
	UpdateEntry(ctx context.Context, entry models.LedgerEntry) error
}

func New(log *slog.Logger, entryUpdater EntryUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ledger.updateEntry.New"

		log := log.With(slog.String("op", op))

		id, err := param.ID(r, "id")
		if err != nil {
			log.Error("invalid entry id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid entry id"))
			return
		}

		log = log.With(slog.Int64("entry_id", id))

		var req createEntry.Request

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

		entry, err := req.Entry()
		if err != nil {
			log.Error("invalid ledger entry", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		entry.ID = id

		if err = entryUpdater.UpdateEntry(r.Context(), entry); err != nil {
			if errors.Is(err, storage.ErrEntryNotFound) {
				log.Info("ledger entry not found")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("ledger entry not found"))
				return
			}

			log.Error("failed to update ledger entry", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update ledger entry"))
			return
		}

		log.Info("ledger entry updated")

		render.JSON(w, r, response.OK())
	}
}
