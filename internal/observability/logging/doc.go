// Package logging provides structured logging utilities with context propagation.
//
// This package wraps the standard library's log/slog package with helper functions
// for common logging patterns used throughout the application.
//
// Key features:
//   - JSON and text output formats
//   - Race ID tagging
//   - Context-aware logging
//   - Configurable log levels
//
// Example usage:
//
//	import "hippodrome/internal/observability/logging"
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("race started", slog.Int("horses", 7))
//	}
package logging
