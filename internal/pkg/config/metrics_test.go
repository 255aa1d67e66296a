package config

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics(t *testing.T, component string) (*ConfigMetrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return NewConfigMetricsWith(reg, component), reg
}

func TestNewConfigMetricsWith_Registration(t *testing.T) {
	metrics, reg := newTestMetrics(t, "test_component")

	assert.Equal(t, "test_component", metrics.componentName)

	metrics.RecordValidationError("finish_line")
	metrics.RecordFallback("finish_line")
	metrics.RecordLoadTimestamp()
	metrics.SetFallbackActive(true)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"test_component_config_load_timestamp",
		"test_component_config_validation_errors_total",
		"test_component_config_fallbacks_total",
		"test_component_config_fallback_active",
	}, names)
}

func TestNewConfigMetricsWith_DuplicatePanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewConfigMetricsWith(reg, "dup")

	assert.Panics(t, func() {
		NewConfigMetricsWith(reg, "dup")
	})
}

func TestRecordLoadTimestamp(t *testing.T) {
	metrics, _ := newTestMetrics(t, "test_load")

	metrics.RecordLoadTimestamp()

	assert.Greater(t, testutil.ToFloat64(metrics.LoadTimestamp), float64(0))
}

func TestRecordValidationErrorAndFallback(t *testing.T) {
	metrics, _ := newTestMetrics(t, "test_fields")

	metrics.RecordValidationError("max_rounds")
	metrics.RecordValidationError("max_rounds")
	metrics.RecordFallback("round_interval")

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.ValidationErrorsTotal.WithLabelValues("max_rounds")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.ValidationErrorsTotal.WithLabelValues("round_interval")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FallbacksTotal.WithLabelValues("round_interval")))
}

func TestSetFallbackActive_Toggle(t *testing.T) {
	metrics, _ := newTestMetrics(t, "test_toggle")

	metrics.SetFallbackActive(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FallbackActive))

	metrics.SetFallbackActive(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.FallbackActive))
}

func TestMetrics_ConcurrentAccess(t *testing.T) {
	metrics, _ := newTestMetrics(t, "test_concurrent")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				metrics.RecordValidationError("field")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1000.0, testutil.ToFloat64(metrics.ValidationErrorsTotal.WithLabelValues("field")))
}
