package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains the Prometheus metrics for the processing pipelines
type Metrics struct {
	// Run lifecycle metrics
	RunsStarted   *prometheus.CounterVec
	RunsCompleted *prometheus.CounterVec
	RunsFailed    *prometheus.CounterVec
	RunsCancelled *prometheus.CounterVec
	RunDuration   *prometheus.HistogramVec

	// Unit metrics
	UnitsPlanned   *prometheus.CounterVec
	UnitsProcessed *prometheus.CounterVec
	UnitsFailed    *prometheus.CounterVec
}

// New creates and registers all pipeline metrics. Each metric carries a
// "pipeline" label: transcription, paraphrase or synthesis.
func New() *Metrics {
	labels := []string{"pipeline"}

	return &Metrics{
		RunsStarted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lectureflow_runs_started_total",
			Help: "Total number of pipeline runs started",
		}, labels),
		RunsCompleted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lectureflow_runs_completed_total",
			Help: "Total number of pipeline runs completed successfully",
		}, labels),
		RunsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lectureflow_runs_failed_total",
			Help: "Total number of pipeline runs that ended in failure",
		}, labels),
		RunsCancelled: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lectureflow_runs_cancelled_total",
			Help: "Total number of pipeline runs cancelled by the caller",
		}, labels),
		RunDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lectureflow_run_duration_seconds",
			Help:    "Wall-clock duration of pipeline runs",
			Buckets: []float64{1, 5, 15, 60, 300, 900, 1800, 3600},
		}, labels),
		UnitsPlanned: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lectureflow_units_planned_total",
			Help: "Total number of bounded units produced by the chunk planner",
		}, labels),
		UnitsProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lectureflow_units_processed_total",
			Help: "Total number of units successfully processed",
		}, labels),
		UnitsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lectureflow_units_failed_total",
			Help: "Total number of units whose external service call failed",
		}, labels),
	}
}
