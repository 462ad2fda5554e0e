package diagnosis

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the diagnoser's Prometheus collectors.
type Metrics struct {
	diagnoses *prometheus.CounterVec
	errors    *prometheus.CounterVec
	cache     *prometheus.CounterVec
	compute   prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		diagnoses: f.NewCounterVec(prometheus.CounterOpts{
			Name: "diagnoser_diagnoses_total",
			Help: "Completed diagnoses by device and verdict.",
		}, []string{"device", "verdict"}),
		errors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "diagnoser_errors_total",
			Help: "Failed diagnoses by error kind.",
		}, []string{"kind"}),
		cache: f.NewCounterVec(prometheus.CounterOpts{
			Name: "diagnoser_cache_requests_total",
			Help: "Result cache lookups by outcome.",
		}, []string{"result"}),
		compute: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "diagnoser_compute_seconds",
			Help:    "Time spent in one inference pass.",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		}),
	}
}
