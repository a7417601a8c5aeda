package copyWeek

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

type Request struct {
	SourceWeekStart string `json:"source_week_start" validate:"required,datetime=2006-01-02"`
	TargetWeekStart string `json:"target_week_start" validate:"required,datetime=2006-01-02"`
}

type CopyResponse struct {
	response.Response
	Message string               `json:"message,omitempty"`
	Result  *schedule.CopyResult `json:"result,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=WeekCopier
type WeekCopier interface {
	CopyStoredWeek(ctx context.Context, sourceWeekStart, targetWeekStart time.Time) (schedule.CopyResult, error)
}

// New copies the events of the source week into the target week. Conflicts
// do not fail the request; the outcome and counts are reported in the body.
func New(log *slog.Logger, copier WeekCopier, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.copyWeek.New"

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

		source, err := schedule.ParseDate(req.SourceWeekStart, loc)
		if err != nil {
			log.Error("invalid source week", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid source_week_start"))
			return
		}

		target, err := schedule.ParseDate(req.TargetWeekStart, loc)
		if err != nil {
			log.Error("invalid target week", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid target_week_start"))
			return
		}

		log = log.With(
			slog.String("source_week_start", req.SourceWeekStart),
			slog.String("target_week_start", req.TargetWeekStart),
		)

		res, err := copier.CopyStoredWeek(r.Context(), source, target)
		if err != nil {
			var copyErr *schedule.CopyError

			switch {
			case errors.Is(err, schedule.ErrNothingToCopy):
				log.Info("nothing to copy")
				render.JSON(w, r, CopyResponse{
					Response: response.OK(),
					Message:  "source week has no events to copy",
					Result:   &res,
				})
			case errors.Is(err, models.ErrInvalidEvent):
				log.Error("source week holds incomplete events", sl.Err(err))
				render.Status(r, http.StatusUnprocessableEntity)
				render.JSON(w, r, response.Error(err.Error()))
			case errors.As(err, &copyErr):
				log.Error("week copy aborted",
					slog.Int("copied", copyErr.Result.SuccessCount),
					slog.Int("conflicts", copyErr.Result.ConflictCount),
					sl.Err(err),
				)
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, CopyResponse{
					Response: response.Error("week copy aborted; events copied before the failure were kept"),
					Result:   &copyErr.Result,
				})
			default:
				log.Error("failed to copy week", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to copy week"))
			}

			return
		}

		log.Info("week copied",
			slog.String("outcome", string(res.Outcome)),
			slog.Int("copied", res.SuccessCount),
			slog.Int("conflicts", res.ConflictCount),
		)

		render.JSON(w, r, CopyResponse{
			Response: response.OK(),
			Message:  message(res),
			Result:   &res,
		})
	}
}

func message(res schedule.CopyResult) string {
	switch res.Outcome {
	case schedule.OutcomeCopied:
		return "all events copied"
	case schedule.OutcomePartial:
		return "some events were skipped because their time slot is taken"
	case schedule.OutcomeNone:
		return "no events copied; every time slot in the target week is taken"
	}

	return ""
}
