package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"activityCalendar/internal/autocopy"
	"activityCalendar/internal/config"
	"activityCalendar/internal/http-server/handlers/event/copyWeek"
	"activityCalendar/internal/http-server/handlers/event/createEvent"
	"activityCalendar/internal/http-server/handlers/event/deleteEvent"
	"activityCalendar/internal/http-server/handlers/event/exportCalendar"
	"activityCalendar/internal/http-server/handlers/event/getEvent"
	"activityCalendar/internal/http-server/handlers/event/getEvents"
	"activityCalendar/internal/http-server/handlers/event/updateEvent"
	"activityCalendar/internal/http-server/handlers/ledger/createEntry"
	"activityCalendar/internal/http-server/handlers/ledger/deleteEntry"
	"activityCalendar/internal/http-server/handlers/ledger/getEntries"
	"activityCalendar/internal/http-server/handlers/ledger/updateEntry"
	"activityCalendar/internal/http-server/handlers/student/getStudents"
	"activityCalendar/internal/http-server/middleware/mwlogger"
	"activityCalendar/internal/lib/logger/handlers/slogpretty"
	"activityCalendar/internal/lib/logger/sl"
	"activityCalendar/internal/lib/metrics"
	"activityCalendar/internal/schedule"
	"activityCalendar/internal/storage/postgres"
	"activityCalendar/internal/storage/sqlite"
	"activityCalendar/internal/storage/sqlstore"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("starting activity calendar",
		slog.String("env", cfg.Env),
		slog.String("timezone", cfg.Timezone),
		slog.String("storage", cfg.Storage.Driver),
	)
	log.Debug("debug messages are enabled")

	loc, err := cfg.Location()
	if err != nil {
		log.Error("failed to load timezone", sl.Err(err))
		os.Exit(1)
	}

	storage, err := setupStorage(cfg.Storage)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	m := metrics.New(metrics.WithNamespace(cfg.Metrics.Namespace))

	planner := schedule.New(log, storage,
		schedule.WithLocation(loc),
		schedule.WithMetrics(m),
	)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(m.Middleware)
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Route("/events", func(r chi.Router) {
		r.Get("/", getEvents.New(log, planner, loc))
		r.Post("/", createEvent.New(log, planner, loc))
		r.Post("/copy-week", copyWeek.New(log, planner, loc))
		// URLFormat strips the .ics suffix
		r.Get("/export", exportCalendar.New(log, planner, loc))
		r.Get("/{id}", getEvent.New(log, planner))
		r.Put("/{id}", updateEvent.New(log, planner, loc))
		r.Delete("/{id}", deleteEvent.New(log, planner))
	})

	router.Get("/students", getStudents.New(log, storage))

	router.Route("/ledger", func(r chi.Router) {
		r.Get("/", getEntries.New(log, storage))
		r.Post("/", createEntry.New(log, storage))
		r.Put("/{id}", updateEntry.New(log, storage))
		r.Delete("/{id}", deleteEntry.New(log, storage))
	})

	router.Handle("/metrics", m.Handler())

	var job *autocopy.Job
	if cfg.AutoCopy.Enabled {
		job, err = autocopy.New(log, planner, loc, cfg.AutoCopy.Spec)
		if err != nil {
			log.Error("failed to schedule auto copy", sl.Err(err))
			os.Exit(1)
		}

		job.Start()
	}

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if job != nil {
		if err = job.Stop(ctx); err != nil {
			log.Error("auto copy did not finish in time", sl.Err(err))
		}
	}

	if err = srv.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if err = storage.Close(); err != nil {
		log.Error("failed to close storage", sl.Err(err))
	}

	log.Info("storage closed")
}

func setupStorage(cfg config.Storage) (*sqlstore.Storage, error) {
	if cfg.Driver == config.DriverSQLite {
		return sqlite.InitDB(cfg.SQLitePath)
	}

	return postgres.InitDB(&cfg.Postgres)
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
