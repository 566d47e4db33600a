// Package metrics holds the Prometheus collectors of the training backend.
// Collectors are registered on the Registerer passed to the constructors so
// tests can use a private registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "training"

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Store instruments the domain store. A nil *Store records nothing.
type Store struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	loading    *prometheus.GaugeVec
	stale      *prometheus.CounterVec
}

func NewStore(reg prometheus.Registerer) *Store {
	factory := promauto.With(reg)
	return &Store{
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "operations_total",
				Help:      "Store operations by name and outcome",
			},
			[]string{"op", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "operation_duration_seconds",
				Help:      "Time spent in the persistence backend per store operation",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"op"},
		),
		loading: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "loads_in_flight",
				Help:      "Fetches currently waiting on the backend, by category",
			},
			[]string{"category"},
		),
		stale: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "stale_responses_total",
				Help:      "Fetch responses discarded because a newer fetch of the same kind was issued",
			},
			[]string{"op"},
		),
	}
}

func (m *Store) ObserveOperation(op string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.operations.WithLabelValues(op, outcome).Inc()
	m.duration.WithLabelValues(op).Observe(elapsed.Seconds())
}

func (m *Store) LoadStarted(category string) {
	if m == nil {
		return
	}
	m.loading.WithLabelValues(category).Inc()
}

func (m *Store) LoadFinished(category string) {
	if m == nil {
		return
	}
	m.loading.WithLabelValues(category).Dec()
}

func (m *Store) StaleDiscarded(op string) {
	if m == nil {
		return
	}
	m.stale.WithLabelValues(op).Inc()
}

// HTTP instruments the API router.
type HTTP struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func NewHTTP(reg prometheus.Registerer) *HTTP {
	factory := promauto.With(reg)
	return &HTTP{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by route pattern, method and status",
			},
			[]string{"route", "method", "status"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency by route pattern",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
	}
}

// Middleware records every request once the route pattern is known.
func (m *HTTP) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.latency.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

// Handler exposes the collectors gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
