// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes the race metrics:
//   - Round metrics (count by status, duration)
//   - Race metrics (outcomes, rounds per race, field size, leader distance)
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint of cmd/hippodrome.
//
// Example usage:
//
//	import "hippodrome/internal/observability/metrics"
//
//	start := time.Now()
//	err := h.Move(ctx)
//	metrics.RecordRound(err == nil, time.Since(start))
package metrics
