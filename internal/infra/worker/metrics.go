package worker

import (
	"hippodrome/internal/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WorkerMetrics provides Prometheus metrics for the race driver.
//
// Embedded metrics (from ConfigMetrics):
//   - hippodrome_worker_config_load_timestamp
//   - hippodrome_worker_config_validation_errors_total
//   - hippodrome_worker_config_fallbacks_total
//   - hippodrome_worker_config_fallback_active
//
// Job metrics:
//   - hippodrome_worker_race_runs_total: Race runs by status (success/failure/skipped)
//   - hippodrome_worker_race_duration_seconds: Wall-clock duration of a scheduled race
//   - hippodrome_worker_race_last_success_timestamp: Unix timestamp of the last successful race
type WorkerMetrics struct {
	*config.ConfigMetrics

	RaceRunsTotal            *prometheus.CounterVec
	RaceDurationSeconds      prometheus.Histogram
	RaceLastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics creates worker metrics registered with the default registry.
func NewWorkerMetrics() *WorkerMetrics {
	return NewWorkerMetricsWith(prometheus.DefaultRegisterer)
}

// NewWorkerMetricsWith creates worker metrics registered with reg.
func NewWorkerMetricsWith(reg prometheus.Registerer) *WorkerMetrics {
	factory := promauto.With(reg)
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetricsWith(reg, "hippodrome_worker"),

		RaceRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hippodrome_worker_race_runs_total",
			Help: "Total number of race runs by status (success/failure/skipped)",
		}, []string{"status"}),

		RaceDurationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "hippodrome_worker_race_duration_seconds",
			Help:    "Duration of scheduled races in seconds",
			Buckets: []float64{0.1, 1, 5, 10, 20, 30, 60, 300},
		}),

		RaceLastSuccessTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "hippodrome_worker_race_last_success_timestamp",
			Help: "Unix timestamp of the last successful scheduled race",
		}),
	}
}

// RecordRaceRun counts a race run. Status is "success", "failure" or "skipped".
func (m *WorkerMetrics) RecordRaceRun(status string) {
	m.RaceRunsTotal.WithLabelValues(status).Inc()
}

// RecordRaceDuration observes the duration of a race in seconds.
func (m *WorkerMetrics) RecordRaceDuration(seconds float64) {
	m.RaceDurationSeconds.Observe(seconds)
}

// RecordLastSuccess sets the last success timestamp to now.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.RaceLastSuccessTimestamp.SetToCurrentTime()
}
