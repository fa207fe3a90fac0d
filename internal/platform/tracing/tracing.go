// Package tracing builds the process-wide OpenTelemetry tracer provider.
package tracing

import (
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// New returns a TracerProvider that samples root spans with probability ratio.
// Child spans follow their parent's decision. Extra options (span processors,
// exporters) are appended after the sampler.
func New(ratio float64, opts ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	base := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	}
	return sdktrace.NewTracerProvider(append(base, opts...)...)
}
