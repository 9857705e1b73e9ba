// Package disposetrace provides OpenTelemetry tracing for Disposable
// values.
//
// Wrap a Disposable with Instrument to record a span for each Dispose
// call:
//
//	conn := disposetrace.Instrument("db_conn", conn)
//	defer conn.Dispose()
//
// Spans are named "dispose.<resource>" and carry the resource name and a
// dispose.redundant attribute marking calls made after the resource was
// already disposed.
//
// Configure with options:
//
//	disposetrace.Instrument("db_conn", conn,
//	    disposetrace.WithTracerName("my-app"),
//	    disposetrace.WithContext(requestCtx),
//	    disposetrace.WithFilter(func(resource string) bool {
//	        return resource != "scratch"
//	    }),
//	)
//
// The tracer resolves from the global OpenTelemetry tracer provider; set
// one with otel.SetTracerProvider before disposing instrumented values.
package disposetrace
