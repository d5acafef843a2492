// Package telemetry provides OpenTelemetry tracing exported over OTLP HTTP.
package telemetry

import (
	"context"
	"os"
	"runtime"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/lunge/internal/duel"
)

const (
	serviceName    = "lunge"
	serviceVersion = "0.1.0"
)

// EnvSampleRatio sets the fraction of matches traced, from 0 to 1. Unset traces all.
const EnvSampleRatio = "LUNGE_TRACE_SAMPLE"

// Setup initializes OpenTelemetry with OTLP HTTP exporter.
// It reads configuration from standard OTEL_* environment variables:
//   - OTEL_EXPORTER_OTLP_ENDPOINT: collector endpoint (https://api.honeycomb.io)
//   - OTEL_EXPORTER_OTLP_HEADERS: headers including x-honeycomb-team=<api-key>
//
// Returns a shutdown function that should be called on application exit.
func Setup(ctx context.Context) (shutdown func(context.Context) error, err error) {
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	// Own resource rather than merging with resource.Default(), whose schema URL may differ.
	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("telemetry.sdk.language", "go"),
			attribute.String("host.name", getHostname()),
			attribute.String("os.type", runtime.GOOS),
			attribute.String("process.runtime.version", runtime.Version()),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(Sampler(os.Getenv(EnvSampleRatio))),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Sampler samples whole traces at the given ratio; child spans follow their
// parent so a match is never traced in part. An empty or malformed ratio
// samples everything.
func Sampler(ratio string) sdktrace.Sampler {
	r, err := strconv.ParseFloat(ratio, 64)
	if err != nil || r >= 1 {
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(r))
}

// Tracer returns a named tracer for the given component.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer("lunge/" + name)
}

// StateAttributes describes a live duel state as span attributes.
func StateAttributes(s duel.ActiveState) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int("p1.pos", s.P1.Pos),
		attribute.Int("p1.energy", s.P1.Energy),
		attribute.Int("p2.pos", s.P2.Pos),
		attribute.Int("p2.energy", s.P2.Energy),
	}
}

// MoveAttributes describes both players' moves as span attributes.
func MoveAttributes(m duel.MovePair) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("p1.move", m.P1.Kind.String()),
		attribute.Int("p1.spent", m.P1.EnergySpent),
		attribute.String("p2.move", m.P2.Kind.String()),
		attribute.Int("p2.spent", m.P2.EnergySpent),
	}
}

// EndAttributes describes a finished game as span attributes.
func EndAttributes(e duel.EndState) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("end.cause", e.Cause.String()),
		attribute.String("end.winner", e.Winner()),
		attribute.String("end.explain", e.Explain()),
	}
}

// getHostname returns the system hostname, or "unknown" if it cannot be determined.
func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}
