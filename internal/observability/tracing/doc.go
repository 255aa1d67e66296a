// Package tracing provides OpenTelemetry tracing integration.
//
// A race is traced as one "race" span with a "race.round" child span per round.
// Spans carry the race ID so they can be correlated with log entries.
//
// Example usage:
//
//	import "hippodrome/internal/observability/tracing"
//
//	func main() {
//	    shutdown := tracing.InitTracer()
//	    defer shutdown(context.Background())
//	}
package tracing
