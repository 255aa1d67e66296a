// Package race provides the hippodrome, which owns the horses of one race and
// advances them concurrently, and the runner that drives a hippodrome round by
// round until a stop condition is met.
package race

import "errors"

// Sentinel errors for race operations.
var (
	// ErrAdvanceFailed indicates that a horse could not be advanced during a round.
	// The round is aborted and returned to the caller.
	ErrAdvanceFailed = errors.New("failed to advance horse")

	// ErrInvalidState indicates an operation on a hippodrome holding no horses.
	// Only the zero value can be in this state.
	ErrInvalidState = errors.New("hippodrome holds no horses")

	// ErrNoStopCondition indicates a runner configuration that would never stop.
	ErrNoStopCondition = errors.New("runner needs a finish line or a round limit")
)
