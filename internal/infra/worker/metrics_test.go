package worker

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewWorkerMetricsWith(t *testing.T) {
	metrics := newTestMetrics()

	if metrics.ConfigMetrics == nil {
		t.Error("ConfigMetrics is nil")
	}
	if metrics.RaceRunsTotal == nil {
		t.Error("RaceRunsTotal is nil")
	}
	if metrics.RaceDurationSeconds == nil {
		t.Error("RaceDurationSeconds is nil")
	}
	if metrics.RaceLastSuccessTimestamp == nil {
		t.Error("RaceLastSuccessTimestamp is nil")
	}
}

func TestWorkerMetrics_RecordRaceRun(t *testing.T) {
	metrics := newTestMetrics()

	metrics.RecordRaceRun("success")
	metrics.RecordRaceRun("success")
	metrics.RecordRaceRun("failure")

	if got := testutil.ToFloat64(metrics.RaceRunsTotal.WithLabelValues("success")); got != 2 {
		t.Errorf("Expected success count 2, got %f", got)
	}
	if got := testutil.ToFloat64(metrics.RaceRunsTotal.WithLabelValues("failure")); got != 1 {
		t.Errorf("Expected failure count 1, got %f", got)
	}
}

func TestWorkerMetrics_RecordRaceDuration(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewWorkerMetricsWith(reg)

	metrics.RecordRaceDuration(0.5)
	metrics.RecordRaceDuration(12)
	metrics.RecordRaceDuration(45)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	found := false
	for _, mf := range families {
		if mf.GetName() != "hippodrome_worker_race_duration_seconds" {
			continue
		}
		found = true
		if got := mf.GetMetric()[0].GetHistogram().GetSampleCount(); got != 3 {
			t.Errorf("Expected 3 observations, got %d", got)
		}
	}
	if !found {
		t.Error("Histogram metric not found in registry")
	}
}

func TestWorkerMetrics_RecordLastSuccess(t *testing.T) {
	metrics := newTestMetrics()

	metrics.RecordLastSuccess()

	if got := testutil.ToFloat64(metrics.RaceLastSuccessTimestamp); got <= 0 {
		t.Errorf("Expected positive timestamp, got %f", got)
	}
}
