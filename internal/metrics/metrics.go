// Package metrics provides Prometheus metrics for the Arguminds API
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics holds all Prometheus metrics of the API.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// HTTP request metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	PanicsTotal         prometheus.Counter

	// Export metrics
	ExportsTotal   *prometheus.CounterVec
	ExportDuration *prometheus.HistogramVec
	ExportSize     *prometheus.HistogramVec

	// AI metrics
	AnalysesTotal *prometheus.CounterVec
}

// New creates the metrics and registers them with reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arguminds_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "arguminds_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		PanicsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "arguminds_http_panics_total",
				Help: "Total number of handler panics recovered",
			},
		),
		ExportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arguminds_exports_total",
				Help: "Total number of document exports",
			},
			[]string{"format", "outcome"},
		),
		ExportDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "arguminds_export_duration_seconds",
				Help:    "Time spent rendering an export",
				Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"format"},
		),
		ExportSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "arguminds_export_size_bytes",
				Help:    "Size of rendered exports in bytes",
				Buckets: prometheus.ExponentialBuckets(4096, 4, 8),
			},
			[]string{"format"},
		),
		AnalysesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arguminds_ai_analyses_total",
				Help: "Total number of AI analyses",
			},
			[]string{"action", "outcome"},
		),
	}
}

// RecordHTTPRequest records a served HTTP request
func (m *Metrics) RecordHTTPRequest(route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordPanic records a recovered handler panic
func (m *Metrics) RecordPanic() {
	if m == nil {
		return
	}
	m.PanicsTotal.Inc()
}

// RecordExport records one render attempt; size is ignored on failure
func (m *Metrics) RecordExport(format string, err error, duration time.Duration, size int) {
	if m == nil {
		return
	}
	if err != nil {
		m.ExportsTotal.WithLabelValues(format, OutcomeError).Inc()
		return
	}
	m.ExportsTotal.WithLabelValues(format, OutcomeSuccess).Inc()
	m.ExportDuration.WithLabelValues(format).Observe(duration.Seconds())
	m.ExportSize.WithLabelValues(format).Observe(float64(size))
}

// RecordAnalysis records one AI call
func (m *Metrics) RecordAnalysis(action string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.AnalysesTotal.WithLabelValues(action, outcome).Inc()
}
