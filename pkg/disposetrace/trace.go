package disposetrace

import (
	"context"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/dispose/pkg/dispose"
)

// Default tracer name for disposal spans.
const defaultTracerName = "dispose"

// TraceConfig configures the disposal tracing wrapper.
type TraceConfig struct {
	// TracerName is the name of the tracer (default: "dispose").
	TracerName string

	// Context is the parent context for disposal spans.
	// Default: context.Background(), producing root spans.
	Context context.Context

	// Attributes are added to every disposal span.
	Attributes []attribute.KeyValue

	// Filter determines which resources to trace.
	// Return true to trace the disposal, false to skip.
	// If nil, all disposals are traced.
	Filter func(resource string) bool

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// TraceOption configures the disposal tracing wrapper.
type TraceOption func(*TraceConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TraceOption {
	return func(c *TraceConfig) {
		c.TracerName = name
	}
}

// WithContext sets the parent context for disposal spans.
func WithContext(ctx context.Context) TraceOption {
	return func(c *TraceConfig) {
		c.Context = ctx
	}
}

// WithAttributes adds attributes to every disposal span.
func WithAttributes(attrs ...attribute.KeyValue) TraceOption {
	return func(c *TraceConfig) {
		c.Attributes = append(c.Attributes, attrs...)
	}
}

// WithFilter sets a filter function for resources.
func WithFilter(filter func(resource string) bool) TraceOption {
	return func(c *TraceConfig) {
		c.Filter = filter
	}
}

// defaultTraceConfig returns the default tracing configuration.
func defaultTraceConfig() TraceConfig {
	return TraceConfig{
		TracerName: defaultTracerName,
		Context:    context.Background(),
		Filter:     nil,
	}
}

// Instrument wraps a Disposable so each Dispose call is recorded as a
// span. The span carries the resource name and whether the call was
// redundant (made after the resource was already disposed).
//
// The tracer uses the global OpenTelemetry tracer provider. Configure it
// in your main() before disposing anything:
//
//	tp := sdktrace.NewTracerProvider(
//	    sdktrace.WithBatcher(exporter),
//	)
//	otel.SetTracerProvider(tp)
//
// Example:
//
//	session := disposetrace.Instrument("session", session,
//	    disposetrace.WithTracerName("my-app"),
//	    disposetrace.WithContext(ctx),
//	)
//	defer session.Dispose()
func Instrument(resource string, d dispose.Disposable, opts ...TraceOption) dispose.Disposable {
	config := defaultTraceConfig()
	for _, opt := range opts {
		opt(&config)
	}

	// Resolve tracer from global provider
	config.tracer = otel.Tracer(config.TracerName)

	return &traced{
		inner:    d,
		resource: resource,
		config:   config,
	}
}

// traced is the span-recording wrapper returned by Instrument.
type traced struct {
	inner    dispose.Disposable
	resource string
	config   TraceConfig
	disposed atomic.Bool
}

// Dispose records a span around the wrapped Dispose call. Idempotency of
// the wrapped value is preserved; redundant calls produce a span flagged
// dispose.redundant.
func (t *traced) Dispose() {
	// Apply filter if configured
	if t.config.Filter != nil && !t.config.Filter(t.resource) {
		t.inner.Dispose()
		return
	}

	redundant := t.disposed.Swap(true)

	attrs := []attribute.KeyValue{
		attribute.String("dispose.resource", t.resource),
		attribute.Bool("dispose.redundant", redundant),
	}
	attrs = append(attrs, t.config.Attributes...)

	_, span := t.config.tracer.Start(
		t.config.Context,
		"dispose."+t.resource,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
		trace.WithTimestamp(time.Now()),
	)
	defer span.End()

	t.inner.Dispose()
}
