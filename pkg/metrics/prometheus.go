package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	seriesGenerated *prometheus.CounterVec
	pointsRouted    *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	checksTotal     *prometheus.CounterVec
	lastSeed        prometheus.Gauge
	latency         *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		seriesGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dormback_series_generated_total",
				Help: "Total number of synthetic series generated",
			},
			[]string{"source"},
		),
		pointsRouted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dormback_points_routed_total",
				Help: "Total number of fixture points routed to a backend",
			},
			[]string{"backend"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dormback_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		checksTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dormback_checks_total",
				Help: "Harness check executions by result",
			},
			[]string{"check", "result"},
		),
		lastSeed: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "dormback_last_seed",
				Help: "Seed of the most recently generated series",
			},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dormback_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordSeriesGenerated records a generated series and its seed.
func (r *Recorder) RecordSeriesGenerated(source string, seed int64) {
	r.seriesGenerated.WithLabelValues(source).Inc()
	r.lastSeed.Set(float64(seed))
}

// RecordPointsRouted records fixture points sent to a backend.
func (r *Recorder) RecordPointsRouted(backend string, n int) {
	r.pointsRouted.WithLabelValues(backend).Add(float64(n))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordCheck records a harness check result.
func (r *Recorder) RecordCheck(check, result string) {
	r.checksTotal.WithLabelValues(check, result).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
