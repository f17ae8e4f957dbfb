package histbuf

import (
	"github.com/YuhanLiin/heapless/metric"
)

// Finalizer is called exactly once for each live value when it is
// evicted by an overwrite, cleared, or released by Close. It is the
// hook for values that own resources beyond their memory.
type Finalizer[T any] func(value T)

// Option configures buffer behavior using the functional options pattern.
type Option[T any] func(*options[T])

// options holds internal configuration for buffer instances.
// Stats are ALWAYS collected; metrics are optional via WithMetrics.
type options[T any] struct {
	finalizer Finalizer[T]

	// metricsReg is optional - if provided, buffer stats are also
	// exposed as Prometheus metrics under metricsName
	metricsReg  *metric.MetricsRegistry
	metricsName string
}

// WithFinalizer sets the finalizer invoked for every value the buffer
// releases. Without it, vacated cells are still zeroed so the GC can
// reclaim referenced memory.
func WithFinalizer[T any](finalizer Finalizer[T]) Option[T] {
	return func(o *options[T]) {
		o.finalizer = finalizer
	}
}

// WithMetrics enables Prometheus metrics export for buffer statistics.
// The name is used as the buffer label on every exported metric. If
// registry is nil or name is empty, the option is ignored.
func WithMetrics[T any](registry *metric.MetricsRegistry, name string) Option[T] {
	return func(o *options[T]) {
		if registry != nil && name != "" {
			o.metricsReg = registry
			o.metricsName = name
		}
	}
}

// applyOptions applies functional options to create final buffer configuration.
func applyOptions[T any](opts ...Option[T]) *options[T] {
	o := &options[T]{}

	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	return o
}
