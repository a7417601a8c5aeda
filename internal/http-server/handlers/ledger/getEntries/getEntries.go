package getEntries

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"activityCalendar/internal/lib/api/response"
	"activityCalendar/internal/lib/logger/sl"
	"activityCalendar/internal/models"

	"github.com/go-chi/render"
)

type EntriesResponse struct {
	response.Response
	Entries []models.LedgerEntry `json:"entries"`
	Summary models.LedgerSummary `json:"summary"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EntriesGetter
type EntriesGetter interface {
	Entries(ctx context.Context, filter models.LedgerFilter) ([]models.LedgerEntry, error)
	Summary(ctx context.Context, filter models.LedgerFilter) (models.LedgerSummary, error)
}

// New lists ledger entries matching the kind, from and to query parameters
// together with the income, expense and balance totals of the same set.
func New(log *slog.Logger, entriesGetter EntriesGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ledger.getEntries.New"

		log := log.With(slog.String("op", op))

		filter, err := parseFilter(r.URL.Query())
		if err != nil {
			log.Error("invalid filter", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		entries, err := entriesGetter.Entries(r.Context(), filter)
		if err != nil {
			log.Error("failed to get ledger entries", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get ledger entries"))
			return
		}

		summary, err := entriesGetter.Summary(r.Context(), filter)
		if err != nil {
			log.Error("failed to summarize ledger", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get ledger entries"))
			return
		}

		log.Info("ledger entries retrieved",
			slog.Int("count", len(entries)),
			slog.Int64("balance", summary.Balance),
		)

		if entries == nil {
			entries = []models.LedgerEntry{}
		}

		render.JSON(w, r, EntriesResponse{
			Response: response.OK(),
			Entries:  entries,
			Summary:  summary,
		})
	}
}

func parseFilter(q url.Values) (models.LedgerFilter, error) {
	var filter models.LedgerFilter

	if kind := q.Get("kind"); kind != "" {
		filter.Kind = models.EntryKind(kind)
		if !filter.Kind.Valid() {
			return models.LedgerFilter{}, fmt.Errorf("unknown kind %q", kind)
		}
	}

	var err error

	if filter.From, err = parseDate(q.Get("from")); err != nil {
		return models.LedgerFilter{}, errors.New("from must be a date in YYYY-MM-DD format")
	}

	if filter.To, err = parseDate(q.Get("to")); err != nil {
		return models.LedgerFilter{}, errors.New("to must be a date in YYYY-MM-DD format")
	}

	if !filter.From.IsZero() && !filter.To.IsZero() && filter.From.After(filter.To) {
		return models.LedgerFilter{}, errors.New("from must not be after to")
	}

	return filter, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	return time.Parse(time.DateOnly, s)
}
