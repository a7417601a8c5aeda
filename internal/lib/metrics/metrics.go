// Package metrics exposes Prometheus counters for the calendar service.
//
// All recording methods are safe to call on a nil *Metrics, so components
// can take metrics as an optional dependency.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ActionAdd    = "add"
	ActionRemove = "remove"
)

type Metrics struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	copyRuns      *prometheus.CounterVec
	eventsCopied  prometheus.Counter
	copyConflicts prometheus.Counter
	rosterChanges *prometheus.CounterVec

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

func New(opts ...Option) *Metrics {
	m := &Metrics{
		namespace:        "activity_calendar",
		subsystem:        "",
		histogramBuckets: prometheus.DefBuckets,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	m.copyRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "week_copy_runs_total",
		Help:      "Week copy runs by outcome.",
	}, []string{"outcome"})

	m.eventsCopied = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "week_copy_events_total",
		Help:      "Events created by week copy runs.",
	})

	m.copyConflicts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "week_copy_conflicts_total",
		Help:      "Events skipped by week copy runs because the target slot was taken.",
	})

	m.rosterChanges = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roster_changes_total",
		Help:      "Participant links written by roster reconciliation.",
	}, []string{"action"})

	m.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	m.httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   m.histogramBuckets,
	}, []string{"method", "route"})

	m.registry.MustRegister(
		m.copyRuns,
		m.eventsCopied,
		m.copyConflicts,
		m.rosterChanges,
		m.httpRequests,
		m.httpRequestDuration,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) CopyRun(outcome string, copied, conflicts int) {
	if m == nil {
		return
	}

	m.copyRuns.WithLabelValues(outcome).Inc()
	m.eventsCopied.Add(float64(copied))
	m.copyConflicts.Add(float64(conflicts))
}

func (m *Metrics) RosterChanged(added, removed int) {
	if m == nil {
		return
	}

	m.rosterChanges.WithLabelValues(ActionAdd).Add(float64(added))
	m.rosterChanges.WithLabelValues(ActionRemove).Add(float64(removed))
}

func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}

	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Middleware records request counts and latency labelled by the chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.ObserveRequest(r.Method, route, status, time.Since(start))
	}

	return http.HandlerFunc(fn)
}
