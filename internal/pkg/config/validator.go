package config

import (
	"fmt"
	"math"
	"time"

	"github.com/robfig/cron/v3"
)

// ValidateCronSchedule validates a five-field cron expression
// ("minute hour day month weekday") with the robfig/cron/v3 parser.
//
// Example:
//
//	err := ValidateCronSchedule("*/10 * * * *") // every ten minutes
func ValidateCronSchedule(schedule string) error {
	if schedule == "" {
		return fmt.Errorf("invalid cron schedule: cannot be empty")
	}

	if _, err := cron.ParseStandard(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}

	return nil
}

// ValidateTimezone checks that timezone is an IANA name that can be loaded.
// This depends on timezone data being available on the host.
func ValidateTimezone(timezone string) error {
	if timezone == "" {
		return fmt.Errorf("invalid timezone: cannot be empty")
	}

	if _, err := time.LoadLocation(timezone); err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", timezone, err)
	}

	return nil
}

// ValidateDuration checks that min <= duration <= max.
func ValidateDuration(duration, min, max time.Duration) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%v) cannot be greater than max (%v)", min, max)
	}
	if duration < min {
		return fmt.Errorf("duration %v is below minimum %v", duration, min)
	}
	if duration > max {
		return fmt.Errorf("duration %v exceeds maximum %v", duration, max)
	}
	return nil
}

// ValidateIntRange checks that min <= value <= max.
func ValidateIntRange(value, min, max int) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%d) cannot be greater than max (%d)", min, max)
	}
	if value < min {
		return fmt.Errorf("value %d is below minimum %d", value, min)
	}
	if value > max {
		return fmt.Errorf("value %d exceeds maximum %d", value, max)
	}
	return nil
}

// ValidateFloatRange checks that min <= value <= max. NaN is always rejected.
func ValidateFloatRange(value, min, max float64) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%g) cannot be greater than max (%g)", min, max)
	}
	if math.IsNaN(value) {
		return fmt.Errorf("value is not a number")
	}
	if value < min {
		return fmt.Errorf("value %g is below minimum %g", value, min)
	}
	if value > max {
		return fmt.Errorf("value %g exceeds maximum %g", value, max)
	}
	return nil
}
