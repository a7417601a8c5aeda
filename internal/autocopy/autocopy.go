// Package autocopy copies the current week's events into the next week on
// a cron schedule.
package autocopy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"activityCalendar/internal/lib/logger/sl"
	"activityCalendar/internal/schedule"

	"github.com/robfig/cron/v3"
)

const runTimeout = 2 * time.Minute

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=WeekCopier
type WeekCopier interface {
	CopyStoredWeek(ctx context.Context, sourceWeekStart, targetWeekStart time.Time) (schedule.CopyResult, error)
}

type Job struct {
	log    *slog.Logger
	copier WeekCopier
	loc    *time.Location
	cron   *cron.Cron
	now    func() time.Time
}

// New registers the copy run under spec, a standard five-field cron
// expression evaluated in loc. Overlapping runs are skipped.
func New(log *slog.Logger, copier WeekCopier, loc *time.Location, spec string) (*Job, error) {
	const op = "autocopy.New"

	log = log.With(slog.String("component", "autocopy"))
	logger := cronLogger{log: log}

	j := &Job{
		log:    log,
		copier: copier,
		loc:    loc,
		now:    time.Now,
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
	}

	if _, err := j.cron.AddFunc(spec, j.run); err != nil {
		return nil, fmt.Errorf("%s: invalid schedule %q: %w", op, spec, err)
	}

	return j, nil
}

func (j *Job) Start() {
	j.cron.Start()

	for _, e := range j.cron.Entries() {
		j.log.Info("auto copy scheduled", slog.Time("next_run", e.Next))
	}
}

// Stop prevents new runs and waits for a running one to finish or for ctx
// to expire.
func (j *Job) Stop(ctx context.Context) error {
	select {
	case <-j.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce copies the week holding the current time into the following week.
func (j *Job) RunOnce(ctx context.Context) (schedule.CopyResult, error) {
	const op = "autocopy.RunOnce"

	source := schedule.StartOfWeek(j.now().In(j.loc))
	target := source.AddDate(0, 0, 7)

	log := j.log.With(
		slog.String("op", op),
		slog.String("source_week_start", source.Format(schedule.DateLayout)),
		slog.String("target_week_start", target.Format(schedule.DateLayout)),
	)

	res, err := j.copier.CopyStoredWeek(ctx, source, target)
	if err != nil {
		if errors.Is(err, schedule.ErrNothingToCopy) {
			log.Info("current week is empty, nothing copied")

			return res, nil
		}

		log.Error("auto copy failed", sl.Err(err))

		return res, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("auto copy finished",
		slog.String("outcome", string(res.Outcome)),
		slog.Int("copied", res.SuccessCount),
		slog.Int("conflicts", res.ConflictCount),
	)

	return res, nil
}

func (j *Job) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	_, _ = j.RunOnce(ctx)
}

// cronLogger routes cron's own messages to slog.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append(keysAndValues, sl.Err(err))...)
}
