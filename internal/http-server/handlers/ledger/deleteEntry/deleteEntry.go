package deleteEntry

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

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EntryDeleter
type EntryDeleter interface {
	DeleteEntry(ctx context.Context, id int64) error
}

func New(log *slog.Logger, entryDeleter EntryDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ledger.deleteEntry.New"

		log := log.With(slog.String("op", op))

		id, err := param.ID(r, "id")
		if err != nil {
			log.Error("invalid entry id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid entry id"))
			return
		}

		log = log.With(slog.Int64("entry_id", id))

		if err = entryDeleter.DeleteEntry(r.Context(), id); err != nil {
			if errors.Is(err, storage.ErrEntryNotFound) {
				log.Info("ledger entry not found")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("ledger entry not found"))
				return
			}

			log.Error("failed to delete ledger entry", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to delete ledger entry"))
			return
		}

		log.Info("ledger entry deleted")

		render.JSON(w, r, response.OK())
	}
}
