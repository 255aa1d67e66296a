// Package observability groups the logging, metrics and tracing used by races.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics for rounds and races
//   - tracing: OpenTelemetry spans for races and rounds
//
// Example usage:
//
//	import (
//	    "hippodrome/internal/observability/logging"
//	    "hippodrome/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started")
//
//	    metrics.RecordRaceStarted(7)
//	}
package observability
