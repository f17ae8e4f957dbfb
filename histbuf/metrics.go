package histbuf

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/YuhanLiin/heapless/metric"
)

// bufferMetrics holds Prometheus metrics for buffer operations.
type bufferMetrics struct {
	writes        prometheus.Counter
	evictions     prometheus.Counter
	finalizations prometheus.Counter
	snapshots     prometheus.Counter

	size        prometheus.Gauge
	utilization prometheus.Gauge
}

// newBufferMetrics creates and registers buffer metrics with the provided registry.
func newBufferMetrics(registry *metric.MetricsRegistry, name string) (*bufferMetrics, error) {
	m := &bufferMetrics{
		writes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "heapless",
			Subsystem:   "histbuf",
			Name:        "writes_total",
			ConstLabels: prometheus.Labels{"buffer": name},
			Help:        "Total number of buffer write operations",
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "heapless",
			Subsystem:   "histbuf",
			Name:        "evictions_total",
			ConstLabels: prometheus.Labels{"buffer": name},
			Help:        "Total number of writes that displaced the oldest value",
		}),
		finalizations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "heapless",
			Subsystem:   "histbuf",
			Name:        "finalizations_total",
			ConstLabels: prometheus.Labels{"buffer": name},
			Help:        "Total number of values finalized by overwrite, clear, or close",
		}),
		snapshots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "heapless",
			Subsystem:   "histbuf",
			Name:        "snapshots_total",
			ConstLabels: prometheus.Labels{"buffer": name},
			Help:        "Total number of full-contents snapshots taken",
		}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "heapless",
			Subsystem:   "histbuf",
			Name:        "size",
			ConstLabels: prometheus.Labels{"buffer": name},
			Help:        "Current number of live values in the buffer",
		}),
		utilization: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "heapless",
			Subsystem:   "histbuf",
			Name:        "utilization",
			ConstLabels: prometheus.Labels{"buffer": name},
			Help:        "Buffer fill level relative to capacity (0.0 to 1.0)",
		}),
	}

	if err := registry.RegisterCounter(name, "histbuf_writes", m.writes); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(name, "histbuf_evictions", m.evictions); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(name, "histbuf_finalizations", m.finalizations); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(name, "histbuf_snapshots", m.snapshots); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge(name, "histbuf_size", m.size); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge(name, "histbuf_utilization", m.utilization); err != nil {
		return nil, err
	}

	return m, nil
}

// recordWrite increments the write counter.
func (m *bufferMetrics) recordWrite() {
	m.writes.Inc()
}

// recordEviction increments the eviction counter.
func (m *bufferMetrics) recordEviction() {
	m.evictions.Inc()
}

// recordFinalization increments the finalization counter.
func (m *bufferMetrics) recordFinalization() {
	m.finalizations.Inc()
}

// recordSnapshot increments the snapshot counter.
func (m *bufferMetrics) recordSnapshot() {
	m.snapshots.Inc()
}

// updateSize sets the current buffer size and utilization.
func (m *bufferMetrics) updateSize(size, capacity int) {
	m.size.Set(float64(size))
	if capacity > 0 {
		m.utilization.Set(float64(size) / float64(capacity))
	}
}
