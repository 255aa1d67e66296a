package worker

import (
	"fmt"
	"log/slog"
	"time"

	"hippodrome/internal/pkg/config"
)

// RaceConfig holds the settings of the race driver.
//
// Configuration sources:
//   - Environment variables (loaded via LoadConfigFromEnv)
//   - Default values (provided by DefaultConfig)
//
// Environment variables:
//   - FINISH_LINE: Distance that ends a race, 0 disables it (default: 100)
//   - MAX_ROUNDS: Round limit, 0 disables it (default: 100)
//   - ROUND_INTERVAL: Pause between rounds, e.g. "200ms" (default: 200ms)
//   - RACE_TIMEOUT: Maximum duration of one race (default: 1m)
//   - ROSTER_FILE: YAML roster path, empty uses the built-in field (default: "")
//   - RACE_SCHEDULE: Cron expression for repeated races, empty runs one race (default: "")
//   - RACE_TIMEZONE: IANA timezone for RACE_SCHEDULE (default: "UTC")
//   - HEALTH_PORT: Port of the health server in scheduled mode (default: 9091)
//   - METRICS_PORT: Port of the Prometheus endpoint (default: 9090)
//   - METRICS_ENABLED: Serve /metrics while racing (default: false)
type RaceConfig struct {
	FinishLine     float64
	MaxRounds      int
	RoundInterval  time.Duration
	RaceTimeout    time.Duration
	RosterFile     string
	Schedule       string
	Timezone       string
	HealthPort     int
	MetricsPort    int
	MetricsEnabled bool
}

// DefaultConfig returns a RaceConfig with the classic pacing: at most 100
// rounds 200ms apart, stopping early once a horse covers 100.
func DefaultConfig() RaceConfig {
	return RaceConfig{
		FinishLine:    100,
		MaxRounds:     100,
		RoundInterval: 200 * time.Millisecond,
		RaceTimeout:   time.Minute,
		Timezone:      "UTC",
		HealthPort:    9091,
		MetricsPort:   9090,
	}
}

// Scheduled reports whether races repeat on a cron schedule.
func (c *RaceConfig) Scheduled() bool {
	return c.Schedule != ""
}

func validateFinishLine(v float64) error { return config.ValidateFloatRange(v, 0, 1e9) }
func validateMaxRounds(v int) error      { return config.ValidateIntRange(v, 0, 1_000_000) }
func validatePort(v int) error           { return config.ValidateIntRange(v, 1024, 65535) }
func validateRoundInterval(d time.Duration) error {
	return config.ValidateDuration(d, 0, 10*time.Second)
}
func validateRaceTimeout(d time.Duration) error {
	return config.ValidateDuration(d, time.Second, 24*time.Hour)
}
func validateSchedule(s string) error {
	if s == "" {
		return nil
	}
	return config.ValidateCronSchedule(s)
}

// Validate checks every field and returns all problems at once.
// At least one of FinishLine and MaxRounds must be positive so a race can end.
func (c *RaceConfig) Validate() error {
	var errs []error

	if err := validateFinishLine(c.FinishLine); err != nil {
		errs = append(errs, fmt.Errorf("finish line: %w", err))
	}
	if err := validateMaxRounds(c.MaxRounds); err != nil {
		errs = append(errs, fmt.Errorf("max rounds: %w", err))
	}
	if c.FinishLine <= 0 && c.MaxRounds <= 0 {
		errs = append(errs, fmt.Errorf("finish line and max rounds cannot both be disabled"))
	}
	if err := validateRoundInterval(c.RoundInterval); err != nil {
		errs = append(errs, fmt.Errorf("round interval: %w", err))
	}
	if err := validateRaceTimeout(c.RaceTimeout); err != nil {
		errs = append(errs, fmt.Errorf("race timeout: %w", err))
	}
	if err := validateSchedule(c.Schedule); err != nil {
		errs = append(errs, fmt.Errorf("schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := validatePort(c.HealthPort); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}
	if err := validatePort(c.MetricsPort); err != nil {
		errs = append(errs, fmt.Errorf("metrics port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv loads the race configuration with a fail-open strategy:
// every rejected value is replaced by its default, logged as a warning and
// counted in metrics.
//
// If both stop conditions end up disabled, MAX_ROUNDS falls back to its default.
// The result is validated as a whole before it is returned.
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*RaceConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	cfg.FinishLine = track(logger, metrics, &fallbackApplied, "finish_line",
		config.LoadEnvFloat("FINISH_LINE", cfg.FinishLine, validateFinishLine))
	cfg.MaxRounds = track(logger, metrics, &fallbackApplied, "max_rounds",
		config.LoadEnvInt("MAX_ROUNDS", cfg.MaxRounds, validateMaxRounds))
	cfg.RoundInterval = track(logger, metrics, &fallbackApplied, "round_interval",
		config.LoadEnvDuration("ROUND_INTERVAL", cfg.RoundInterval, validateRoundInterval))
	cfg.RaceTimeout = track(logger, metrics, &fallbackApplied, "race_timeout",
		config.LoadEnvDuration("RACE_TIMEOUT", cfg.RaceTimeout, validateRaceTimeout))
	cfg.RosterFile = config.LoadEnvString("ROSTER_FILE", cfg.RosterFile)
	cfg.Schedule = track(logger, metrics, &fallbackApplied, "schedule",
		config.LoadEnvWithFallback("RACE_SCHEDULE", cfg.Schedule, validateSchedule))
	cfg.Timezone = track(logger, metrics, &fallbackApplied, "timezone",
		config.LoadEnvWithFallback("RACE_TIMEZONE", cfg.Timezone, config.ValidateTimezone))
	cfg.HealthPort = track(logger, metrics, &fallbackApplied, "health_port",
		config.LoadEnvInt("HEALTH_PORT", cfg.HealthPort, validatePort))
	cfg.MetricsPort = track(logger, metrics, &fallbackApplied, "metrics_port",
		config.LoadEnvInt("METRICS_PORT", cfg.MetricsPort, validatePort))
	cfg.MetricsEnabled = track(logger, metrics, &fallbackApplied, "metrics_enabled",
		config.LoadEnvBool("METRICS_ENABLED", cfg.MetricsEnabled))

	if cfg.FinishLine <= 0 && cfg.MaxRounds <= 0 {
		cfg.MaxRounds = DefaultConfig().MaxRounds
		fallbackApplied = true
		metrics.RecordValidationError("max_rounds")
		metrics.RecordFallback("max_rounds")
		logger.Warn("Configuration fallback applied",
			slog.String("field", "max_rounds"),
			slog.String("warning", "FINISH_LINE and MAX_ROUNDS both disabled, restoring default round limit"))
	}

	metrics.SetFallbackActive(fallbackApplied)
	metrics.RecordLoadTimestamp()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("race configuration: %w", err)
	}
	return &cfg, nil
}

func track[T any](logger *slog.Logger, metrics *WorkerMetrics, fallbackApplied *bool, field string, result config.LoadResult[T]) T {
	if result.FallbackApplied {
		*fallbackApplied = true
		metrics.RecordValidationError(field)
		metrics.RecordFallback(field)
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", field),
				slog.String("warning", warning))
		}
	}
	return result.Value
}
