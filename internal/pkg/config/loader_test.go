package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// LoadEnvString
// ============================================================================

func TestLoadEnvString(t *testing.T) {
	tests := []struct {
		name string
		env  string
		set  bool
		want string
	}{
		{name: "with value", env: "roster.yaml", set: true, want: "roster.yaml"},
		{name: "unset", set: false, want: "default"},
		{name: "empty uses default", env: "", set: true, want: "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv("TEST_STRING", tt.env)
			}

			assert.Equal(t, tt.want, LoadEnvString("TEST_STRING", "default"))
		})
	}
}

// ============================================================================
// LoadEnvWithFallback
// ============================================================================

func TestLoadEnvWithFallback_ValidCron(t *testing.T) {
	t.Setenv("TEST_CRON", "*/10 * * * *")

	result := LoadEnvWithFallback("TEST_CRON", "0 * * * *", ValidateCronSchedule)

	assert.Equal(t, "*/10 * * * *", result.Value)
	assert.False(t, result.FallbackApplied)
	assert.Empty(t, result.Warnings)
}

func TestLoadEnvWithFallback_InvalidCron(t *testing.T) {
	t.Setenv("TEST_CRON", "every minute")

	result := LoadEnvWithFallback("TEST_CRON", "0 * * * *", ValidateCronSchedule)

	assert.Equal(t, "0 * * * *", result.Value)
	assert.True(t, result.FallbackApplied)
	assert.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Invalid TEST_CRON='every minute'")
	assert.Contains(t, result.Warnings[0], "falling back to default '0 * * * *'")
}

func TestLoadEnvWithFallback_NoValidator(t *testing.T) {
	t.Setenv("TEST_ANY", "anything")

	result := LoadEnvWithFallback("TEST_ANY", "default", nil)

	assert.Equal(t, "anything", result.Value)
	assert.False(t, result.FallbackApplied)
}

func TestLoadEnvWithFallback_InvalidTimezone(t *testing.T) {
	t.Setenv("TEST_TZ", "Mars/Olympus_Mons")

	result := LoadEnvWithFallback("TEST_TZ", "UTC", ValidateTimezone)

	assert.Equal(t, "UTC", result.Value)
	assert.True(t, result.FallbackApplied)
}

// ============================================================================
// LoadEnvDuration
// ============================================================================

func TestLoadEnvDuration(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		want     time.Duration
		fallback bool
	}{
		{name: "valid", env: "500ms", want: 500 * time.Millisecond},
		{name: "compound", env: "1m30s", want: 90 * time.Second},
		{name: "unset", env: "", want: 200 * time.Millisecond},
		{name: "invalid format", env: "soon", want: 200 * time.Millisecond, fallback: true},
		{name: "negative rejected", env: "-1s", want: 200 * time.Millisecond, fallback: true},
		{name: "zero rejected", env: "0s", want: 200 * time.Millisecond, fallback: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.env)

			result := LoadEnvDuration("TEST_DURATION", 200*time.Millisecond, validatePositive)

			assert.Equal(t, tt.want, result.Value)
			assert.Equal(t, tt.fallback, result.FallbackApplied)
			assert.Equal(t, tt.fallback, len(result.Warnings) == 1)
		})
	}
}

func TestLoadEnvDuration_RangeValidator(t *testing.T) {
	t.Setenv("TEST_DURATION", "3h")

	result := LoadEnvDuration("TEST_DURATION", time.Minute, func(d time.Duration) error {
		return ValidateDuration(d, time.Second, time.Hour)
	})

	assert.Equal(t, time.Minute, result.Value)
	assert.True(t, result.FallbackApplied)
	assert.Contains(t, result.Warnings[0], "exceeds maximum")
}

// ============================================================================
// LoadEnvInt
// ============================================================================

func TestLoadEnvInt(t *testing.T) {
	validator := func(v int) error { return ValidateIntRange(v, 0, 1000) }

	tests := []struct {
		name     string
		env      string
		want     int
		fallback bool
	}{
		{name: "valid", env: "250", want: 250},
		{name: "zero allowed", env: "0", want: 0},
		{name: "unset", env: "", want: 100},
		{name: "decimal", env: "2.5", want: 100, fallback: true},
		{name: "with spaces", env: " 25 ", want: 100, fallback: true},
		{name: "letters", env: "ten", want: 100, fallback: true},
		{name: "above maximum", env: "1001", want: 100, fallback: true},
		{name: "below minimum", env: "-1", want: 100, fallback: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT", tt.env)

			result := LoadEnvInt("TEST_INT", 100, validator)

			assert.Equal(t, tt.want, result.Value)
			assert.Equal(t, tt.fallback, result.FallbackApplied)
		})
	}
}

func TestLoadEnvInt_InvalidFormatWarning(t *testing.T) {
	t.Setenv("TEST_INT", "ten")

	result := LoadEnvInt("TEST_INT", 100, nil)

	assert.Equal(t, []string{"Invalid TEST_INT='ten': invalid integer format, falling back to default '100'"}, result.Warnings)
}

// ============================================================================
// LoadEnvFloat
// ============================================================================

func TestLoadEnvFloat(t *testing.T) {
	validator := func(v float64) error { return ValidateFloatRange(v, 0, 10000) }

	tests := []struct {
		name     string
		env      string
		want     float64
		fallback bool
	}{
		{name: "integer", env: "250", want: 250},
		{name: "decimal", env: "101.25", want: 101.25},
		{name: "unset", env: "", want: 100},
		{name: "not a number", env: "far", want: 100, fallback: true},
		{name: "NaN", env: "NaN", want: 100, fallback: true},
		{name: "infinity", env: "+Inf", want: 100, fallback: true},
		{name: "negative", env: "-5", want: 100, fallback: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_FLOAT", tt.env)

			result := LoadEnvFloat("TEST_FLOAT", 100, validator)

			assert.Equal(t, tt.want, result.Value)
			assert.Equal(t, tt.fallback, result.FallbackApplied)
		})
	}
}

// ============================================================================
// LoadEnvBool
// ============================================================================

func TestLoadEnvBool(t *testing.T) {
	tests := []struct {
		env      string
		want     bool
		fallback bool
	}{
		{env: "1", want: true},
		{env: "true", want: true},
		{env: "TRUE", want: true},
		{env: "T", want: true},
		{env: "0", want: false},
		{env: "false", want: false},
		{env: "F", want: false},
		{env: "", want: true},
		{env: "yes", want: true, fallback: true},
	}

	for _, tt := range tests {
		t.Run("value="+tt.env, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.env)

			result := LoadEnvBool("TEST_BOOL", true)

			assert.Equal(t, tt.want, result.Value)
			assert.Equal(t, tt.fallback, result.FallbackApplied)
		})
	}
}

func TestMultipleFallbacks_Simulation(t *testing.T) {
	t.Setenv("TEST_SCHEDULE", "bad")
	t.Setenv("TEST_ROUNDS", "many")
	t.Setenv("TEST_INTERVAL", "200ms")

	var warnings []string
	schedule := LoadEnvWithFallback("TEST_SCHEDULE", "0 * * * *", ValidateCronSchedule)
	warnings = append(warnings, schedule.Warnings...)
	rounds := LoadEnvInt("TEST_ROUNDS", 100, nil)
	warnings = append(warnings, rounds.Warnings...)
	interval := LoadEnvDuration("TEST_INTERVAL", time.Second, validatePositive)
	warnings = append(warnings, interval.Warnings...)

	assert.Len(t, warnings, 2)
	assert.Equal(t, "0 * * * *", schedule.Value)
	assert.Equal(t, 100, rounds.Value)
	assert.Equal(t, 200*time.Millisecond, interval.Value)
}

func validatePositive(d time.Duration) error {
	return ValidateDuration(d, time.Nanosecond, time.Hour)
}
