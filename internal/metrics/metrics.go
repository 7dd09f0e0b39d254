// Package metrics provides Prometheus metrics for Tally
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Translation outcomes recorded by RecordTranslation.
const (
	OutcomeParsed      = "parsed"
	OutcomeNoFilters   = "no_filters"
	OutcomeConflicting = "conflicting"
)

// Metrics holds all Prometheus collectors for Tally.
// Each instance owns its registry.
type Metrics struct {
	Registry *prometheus.Registry

	// HTTP request metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Store metrics
	StringsStored     prometheus.Gauge
	StringsCreated    prometheus.Counter
	StringsDeleted    prometheus.Counter
	TranslationsTotal *prometheus.CounterVec
}

// New creates and registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{Registry: reg}

	m.HTTPRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tally_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	m.HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tally_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	m.HTTPRequestsInFlight = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "tally_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	m.StringsStored = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "tally_strings_stored",
			Help: "Number of strings currently stored",
		},
	)

	m.StringsCreated = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "tally_strings_created_total",
			Help: "Total number of strings stored",
		},
	)

	m.StringsDeleted = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "tally_strings_deleted_total",
			Help: "Total number of strings deleted",
		},
	)

	m.TranslationsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tally_translations_total",
			Help: "Natural-language queries by translation outcome",
		},
		[]string{"outcome"},
	)

	return m
}

// RecordHTTPRequest records a completed HTTP request.
// route is the matched mux pattern, never the raw path, to bound cardinality.
func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordCreate records a stored string and the resulting store size.
func (m *Metrics) RecordCreate(stored int) {
	m.StringsCreated.Inc()
	m.StringsStored.Set(float64(stored))
}

// RecordDelete records a deleted string and the resulting store size.
func (m *Metrics) RecordDelete(stored int) {
	m.StringsDeleted.Inc()
	m.StringsStored.Set(float64(stored))
}

// RecordTranslation records the outcome of a natural-language translation.
func (m *Metrics) RecordTranslation(outcome string) {
	m.TranslationsTotal.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
