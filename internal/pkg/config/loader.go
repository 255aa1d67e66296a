// Package config provides fail-open environment loaders, value validators and
// configuration metrics shared by every component that reads settings.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"
)

// LoadResult is the outcome of loading one configuration value.
//
// Fields:
//   - Value: The loaded value, or the default if the environment value was rejected
//   - Warnings: One message per rejected value
//   - FallbackApplied: True if the default was used because the environment value was rejected
//
// Example:
//
//	result := LoadEnvDuration("ROUND_INTERVAL", 200*time.Millisecond, func(d time.Duration) error {
//	    return ValidateDuration(d, 0, 10*time.Second)
//	})
//	for _, warning := range result.Warnings {
//	    logger.Warn("configuration fallback", slog.String("warning", warning))
//	}
//	interval := result.Value
type LoadResult[T any] struct {
	Value           T
	Warnings        []string
	FallbackApplied bool
}

// LoadEnvString returns the environment value, or defaultValue if it is unset or empty.
func LoadEnvString(envKey, defaultValue string) string {
	if value := os.Getenv(envKey); value != "" {
		return value
	}
	return defaultValue
}

// LoadEnvWithFallback loads a string and validates it.
// An unset or empty variable yields the default without a warning.
// A value rejected by validator yields the default with a warning:
//
//	"Invalid {envKey}='{value}': {error}, falling back to default '{default}'"
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) LoadResult[string] {
	return loadEnv(envKey, defaultValue, func(s string) (string, error) { return s, nil }, validator)
}

// LoadEnvDuration loads a Go duration string such as "200ms" or "1m30s".
// Parse failures and validation failures fall back to defaultValue with a warning.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) LoadResult[time.Duration] {
	return loadEnv(envKey, defaultValue, time.ParseDuration, validator)
}

// LoadEnvInt loads a base-10 integer.
// Values with spaces, decimals or other characters fall back to defaultValue with a warning.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) LoadResult[int] {
	return loadEnv(envKey, defaultValue, func(s string) (int, error) {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("invalid integer format")
		}
		return v, nil
	}, validator)
}

// LoadEnvFloat loads a decimal number such as "100" or "2.5".
// NaN and infinities are rejected.
func LoadEnvFloat(envKey string, defaultValue float64, validator func(float64) error) LoadResult[float64] {
	return loadEnv(envKey, defaultValue, func(s string) (float64, error) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("invalid number format")
		}
		return v, nil
	}, validator)
}

// LoadEnvBool loads a boolean.
//   - True: "1", "t", "T", "true", "TRUE", "True"
//   - False: "0", "f", "F", "false", "FALSE", "False"
func LoadEnvBool(envKey string, defaultValue bool) LoadResult[bool] {
	return loadEnv(envKey, defaultValue, func(s string) (bool, error) {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return false, fmt.Errorf("invalid boolean format, expected 'true' or 'false'")
		}
		return v, nil
	}, nil)
}

func loadEnv[T any](envKey string, defaultValue T, parse func(string) (T, error), validator func(T) error) LoadResult[T] {
	raw := os.Getenv(envKey)
	if raw == "" {
		return LoadResult[T]{Value: defaultValue}
	}

	fallback := func(err error) LoadResult[T] {
		return LoadResult[T]{
			Value: defaultValue,
			Warnings: []string{fmt.Sprintf(
				"Invalid %s='%s': %v, falling back to default '%v'",
				envKey, raw, err, defaultValue,
			)},
			FallbackApplied: true,
		}
	}

	value, err := parse(raw)
	if err != nil {
		return fallback(err)
	}
	if validator != nil {
		if err := validator(value); err != nil {
			return fallback(err)
		}
	}
	return LoadResult[T]{Value: value}
}
