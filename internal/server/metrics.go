package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors on a private registry so several
// servers (e.g. in tests) never collide on the default one.
type Metrics struct {
	registry     *prometheus.Registry
	calculations *prometheus.CounterVec
	errors       *prometheus.CounterVec
	duration     prometheus.Histogram
	limited      prometheus.Counter
}

// NewMetrics creates and registers the service collectors
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gobearing_calculations_total",
			Help: "Bearing calculations performed, by selected designations.",
		}, []string{"bearing1", "bearing2"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gobearing_calculation_errors_total",
			Help: "Rejected calculation requests, by reason.",
		}, []string{"reason"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gobearing_calculation_duration_seconds",
			Help:    "Time spent computing reactions and selection.",
			Buckets: []float64{1e-7, 1e-6, 1e-5, 1e-4, 1e-3},
		}),
		limited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gobearing_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter.",
		}),
	}

	m.registry.MustRegister(
		m.calculations,
		m.errors,
		m.duration,
		m.limited,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
