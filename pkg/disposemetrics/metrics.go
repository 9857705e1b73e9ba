package disposemetrics

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/dispose/pkg/dispose"
)

// MetricsConfig configures the Prometheus disposal metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "dispose").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for dispose duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus disposal metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace:   "dispose",
		Subsystem:   "",
		ConstLabels: nil,
		Buckets:     prometheus.DefBuckets,
		Registry:    prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus metrics for disposal tracking.
type metrics struct {
	disposalsTotal  *prometheus.CounterVec
	redundantTotal  *prometheus.CounterVec
	disposeDuration *prometheus.HistogramVec
}

// globalMetrics is the singleton metrics instance.
// Created on the first call to Instrument().
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

// initMetrics initializes the Prometheus metrics.
func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		disposalsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "disposals_total",
			Help:        "Total number of resources disposed",
			ConstLabels: config.ConstLabels,
		}, []string{"resource"}),

		redundantTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "redundant_disposals_total",
			Help:        "Total number of Dispose calls on already disposed resources",
			ConstLabels: config.ConstLabels,
		}, []string{"resource"}),

		disposeDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dispose_duration_seconds",
			Help:        "Cleanup duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"resource"}),
	}
}

// GetMetrics returns the metrics collector, or nil if Instrument has not
// been called yet.
func GetMetrics() *metrics {
	globalMetricsMu.Lock()
	defer globalMetricsMu.Unlock()
	return globalMetrics
}

// Instrument wraps a Disposable so its disposal is counted and timed.
// The resource name becomes the "resource" label on every metric; keep it
// low-cardinality (a resource kind, not an instance ID).
//
// Metrics collected:
//   - dispose_disposals_total: Counter of completed disposals by resource
//   - dispose_redundant_disposals_total: Counter of Dispose calls made
//     after the resource was already disposed
//   - dispose_dispose_duration_seconds: Histogram of cleanup duration
//
// The wrapper preserves idempotency and forwards every call to the
// underlying Disposable.
//
// Example:
//
//	conn := disposemetrics.Instrument("db_conn", conn,
//	    disposemetrics.WithNamespace("myapp"),
//	)
//	defer conn.Dispose()
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
func Instrument(resource string, d dispose.Disposable, opts ...MetricsOption) dispose.Disposable {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	// Initialize metrics once
	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return &instrumented{
		inner:    d,
		resource: resource,
		m:        m,
	}
}

// instrumented is the counting wrapper returned by Instrument.
type instrumented struct {
	inner    dispose.Disposable
	resource string
	m        *metrics
	disposed atomic.Bool
}

// Dispose forwards to the wrapped Disposable, recording the first call's
// duration and counting any later calls as redundant.
func (i *instrumented) Dispose() {
	if i.disposed.Swap(true) {
		i.m.redundantTotal.WithLabelValues(i.resource).Inc()
		// Forward anyway; the wrapped value's own idempotency holds.
		i.inner.Dispose()
		return
	}

	start := time.Now()
	i.inner.Dispose()
	i.m.disposeDuration.WithLabelValues(i.resource).Observe(time.Since(start).Seconds())
	i.m.disposalsTotal.WithLabelValues(i.resource).Inc()
}
