package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "hippodrome"

// GetTracer returns the tracer for creating spans.
// It is resolved from the global provider on every call so that a provider
// installed later (for example by a test) is picked up.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "operation-name")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// InitTracer installs an SDK tracer provider as the global provider.
// Spans are sampled and kept in process; exporters can be attached with
// additional options. The returned function flushes and shuts the provider down.
func InitTracer(opts ...sdktrace.TracerProviderOption) func(context.Context) error {
	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	return tp.Shutdown
}

// StartRaceSpan starts the span that covers a whole race.
func StartRaceSpan(ctx context.Context, raceID string, horses int) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, "race",
		trace.WithAttributes(
			attribute.String("race.id", raceID),
			attribute.Int("race.horses", horses),
		))
}

// StartRoundSpan starts the span for one round of a race.
func StartRoundSpan(ctx context.Context, raceID string, round int) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, "race.round",
		trace.WithAttributes(
			attribute.String("race.id", raceID),
			attribute.Int("race.round", round),
		))
}
