// Package disposemetrics provides Prometheus instrumentation for
// Disposable values.
//
// Wrap a Disposable with Instrument to count and time its disposal:
//
//	session := disposemetrics.Instrument("session", session)
//	defer session.Dispose()
//
// Metrics collected:
//   - dispose_disposals_total: Counter of completed disposals by resource
//   - dispose_redundant_disposals_total: Counter of Dispose calls on
//     already disposed resources
//   - dispose_dispose_duration_seconds: Histogram of cleanup duration
//
// Configure with options:
//
//	disposemetrics.Instrument("session", session,
//	    disposemetrics.WithNamespace("myapp"),
//	    disposemetrics.WithRegistry(registry),
//	)
//
// Then expose metrics the usual way:
//
//	http.Handle("/metrics", promhttp.Handler())
//	go http.ListenAndServe(":9090", nil)
package disposemetrics
