// Package circuitbreaker stops repeating work that keeps failing.
// It uses the github.com/sony/gobreaker library.
package circuitbreaker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// ErrOpen is returned without running the work while the circuit is open.
var ErrOpen = gobreaker.ErrOpenState

// ErrTooManyRequests is returned without running the work while the
// half-open probe budget is used up.
var ErrTooManyRequests = gobreaker.ErrTooManyRequests

// Config holds the configuration for a circuit breaker.
type Config struct {
	// Name is the circuit breaker name for logging
	Name string

	// MaxRequests is the maximum number of requests allowed in half-open state
	MaxRequests uint32

	// Interval is the cyclic period of the closed state to clear success/failure counts
	Interval time.Duration

	// Timeout is how long to wait in open state before trying again
	Timeout time.Duration

	// FailureThreshold is the failure ratio threshold to trip the circuit
	// For example, 0.6 means 60% failure rate
	FailureThreshold float64

	// MinRequests is the minimum number of requests before calculating failure ratio
	MinRequests uint32

	// OnStateChange, if set, is called after every transition.
	// It runs under the breaker's lock and must not call back into the breaker.
	OnStateChange func(from, to gobreaker.State)

	// IsSuccessful, if set, decides which errors count as failures.
	// By default every non-nil error does.
	IsSuccessful func(err error) bool
}

// RaceJobConfig returns configuration for scheduled races.
// The circuit opens once at least 3 races have run in the current one-hour
// counting window and 60% or more of them failed. One probe race is let
// through five minutes later. A race cancelled by shutdown is not a failure.
func RaceJobConfig() Config {
	return Config{
		Name:             "race-job",
		MaxRequests:      1,
		Interval:         time.Hour,
		Timeout:          5 * time.Minute,
		FailureThreshold: 0.6,
		MinRequests:      3,
		IsSuccessful:     IgnoreCancellation,
	}
}

// IgnoreCancellation treats nil and context.Canceled as success.
func IgnoreCancellation(err error) bool {
	return err == nil || errors.Is(err, context.Canceled)
}

// CircuitBreaker wraps gobreaker.CircuitBreaker with additional functionality.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
	name    string
}

// New creates a new circuit breaker with the given configuration.
func New(cfg Config) *CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
			if cfg.OnStateChange != nil {
				cfg.OnStateChange(from, to)
			}
		},
		IsSuccessful: cfg.IsSuccessful,
	}

	return &CircuitBreaker{
		breaker: gobreaker.NewCircuitBreaker(settings),
		name:    cfg.Name,
	}
}

// Execute runs fn through the circuit breaker.
// If the circuit is open, it returns ErrOpen immediately.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	_, err := cb.breaker.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	return err
}

// State returns the current state of the circuit breaker.
func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}

// Name returns the name of the circuit breaker.
func (cb *CircuitBreaker) Name() string {
	return cb.name
}
