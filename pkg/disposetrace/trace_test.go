package disposetrace

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vango-dev/dispose/pkg/dispose"
)

func TestInstrument_PreservesIdempotency(t *testing.T) {
	var b dispose.Base
	hookRuns := 0
	b.SetOnDispose(func() {
		hookRuns++
	})

	d := Instrument("session", &b,
		WithTracerName("test"),
		WithAttributes(attribute.String("test.attr", "ok")),
	)

	d.Dispose()
	d.Dispose()

	if hookRuns != 1 {
		t.Errorf("hook runs = %d, want 1", hookRuns)
	}
	if !b.IsDisposed() {
		t.Error("wrapped Base should be disposed")
	}
}

func TestInstrument_WithContext(t *testing.T) {
	cleanups := 0
	d := Instrument("conn", dispose.Disposer(func() {
		cleanups++
	}), WithContext(context.Background()))

	d.Dispose()

	if cleanups != 1 {
		t.Errorf("cleanups = %d, want 1", cleanups)
	}
}

func TestInstrument_FilterSkipsTracing(t *testing.T) {
	cleanups := 0
	d := Instrument("scratch", dispose.Disposer(func() {
		cleanups++
	}), WithFilter(func(resource string) bool {
		return resource != "scratch"
	}))

	// Filtered resources still dispose, just without a span.
	d.Dispose()
	d.Dispose()

	if cleanups != 2 {
		// A bare Disposer has no idempotency of its own; the filter path
		// must forward every call untouched.
		t.Errorf("cleanups = %d, want 2", cleanups)
	}
}
