package histbuf

import (
	"iter"

	"github.com/YuhanLiin/heapless/errors"
)

// HistoryBuffer is a fixed-capacity, overwrite-on-full history of the
// most recently written values of type T. Once the buffer has wrapped,
// every write evicts the oldest remaining value.
//
// Cell liveness is tracked by the write cursor and the filled flag
// rather than per cell: before the first wrap, cells [0, writeAt) are
// live and the rest are dead; after the first wrap every cell is live.
// Dead cells are never exposed to callers and never finalized. All
// live/dead transitions happen inside Write, Clear, ClearWith and
// Close, so no other code path can desynchronize the bookkeeping from
// the storage.
//
// A HistoryBuffer is exclusively owned by one caller context at a
// time; it performs no internal locking. See the package documentation
// for the concurrency contract.
type HistoryBuffer[T any] struct {
	cells    []T
	capacity int
	writeAt  int  // next cell to write, always in [0, capacity)
	filled   bool // cursor has completed at least one full lap
	closed   bool

	stats   *Statistics    // always initialized for observability
	metrics *bufferMetrics // optional Prometheus metrics
	opts    *options[T]
}

// New constructs an empty history buffer. Length starts at zero and
// grows by one per write until the buffer wraps.
//
// A negative capacity is treated as zero. A zero-capacity buffer is
// legal: writes are no-ops, Len is always zero and Recent never
// reports a value.
//
// The only error path is metrics registration when WithMetrics is
// supplied.
func New[T any](capacity int, opts ...Option[T]) (*HistoryBuffer[T], error) {
	if capacity < 0 {
		capacity = 0
	}

	o := applyOptions(opts...)

	var metrics *bufferMetrics
	if o.metricsReg != nil && o.metricsName != "" {
		var err error
		metrics, err = newBufferMetrics(o.metricsReg, o.metricsName)
		if err != nil {
			return nil, errors.WrapTransient(err, "HistoryBuffer", "New", "metrics registration")
		}
	}

	return &HistoryBuffer[T]{
		cells:    make([]T, capacity),
		capacity: capacity,
		stats:    NewStatistics(),
		metrics:  metrics,
		opts:     o,
	}, nil
}

// NewWith constructs a history buffer with every cell live and holding
// value. Length equals capacity immediately and the first write evicts
// the value at physical index zero.
func NewWith[T any](capacity int, value T, opts ...Option[T]) (*HistoryBuffer[T], error) {
	h, err := New[T](capacity, opts...)
	if err != nil {
		return nil, err
	}

	for i := range h.cells {
		h.cells[i] = value
	}
	h.filled = h.capacity > 0
	h.recordSize()

	return h, nil
}

// Write stores v, overwriting the oldest value once the buffer has
// wrapped. The evicted value is finalized before it is overwritten.
//
// Write cannot fail while the buffer is open; it rejects writes after
// Close with a classified error.
func (h *HistoryBuffer[T]) Write(v T) error {
	if h.closed {
		return errors.WrapInvalid(errors.ErrAlreadyClosed, "HistoryBuffer", "Write", "write after close")
	}

	// No cell to land on and the cursor can never advance.
	if h.capacity == 0 {
		return nil
	}

	if h.filled {
		// The target cell is live exactly when the buffer has
		// wrapped. Finalize the old value before overwriting it.
		h.finalizeCell(h.writeAt)
		h.stats.Eviction()
		if h.metrics != nil {
			h.metrics.recordEviction()
		}
	}

	h.cells[h.writeAt] = v
	h.writeAt++
	if h.writeAt == h.capacity {
		h.writeAt = 0
		h.filled = true
	}

	h.stats.Write()
	h.recordSize()
	if h.metrics != nil {
		h.metrics.recordWrite()
	}

	return nil
}

// ExtendFromSlice writes every element of items in order. If items is
// longer than the capacity, only the last capacity elements end up
// retained; that falls out of the overwrite rule and is not special
// cased.
func (h *HistoryBuffer[T]) ExtendFromSlice(items []T) error {
	for _, v := range items {
		if err := h.Write(v); err != nil {
			return err
		}
	}
	return nil
}

// Extend writes every value produced by seq, in production order.
func (h *HistoryBuffer[T]) Extend(seq iter.Seq[T]) error {
	for v := range seq {
		if err := h.Write(v); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of live values: the capacity once the buffer
// has wrapped, the write cursor before that.
func (h *HistoryBuffer[T]) Len() int {
	if h.filled {
		return h.capacity
	}
	return h.writeAt
}

// Capacity returns the fixed capacity of the buffer.
func (h *HistoryBuffer[T]) Capacity() int {
	return h.capacity
}

// IsEmpty returns true if the buffer holds no live values.
func (h *HistoryBuffer[T]) IsEmpty() bool {
	return h.Len() == 0
}

// IsFull returns true once every cell is live.
func (h *HistoryBuffer[T]) IsFull() bool {
	return h.filled
}

// Recent returns the most recently written value. It returns the zero
// value and false if nothing has ever been written.
//
// The result is a copy; the buffer retains (and will eventually
// finalize) its own stored value.
func (h *HistoryBuffer[T]) Recent() (T, bool) {
	if h.writeAt == 0 {
		if !h.filled {
			var zero T
			return zero, false
		}
		// The last write wrapped the cursor back to zero.
		return h.cells[h.capacity-1], true
	}
	return h.cells[h.writeAt-1], true
}

// Slice returns a snapshot of every live value in physical storage
// order, which is NOT recency order. Callers needing chronology must
// use Recent; slice position carries no ordering guarantee.
func (h *HistoryBuffer[T]) Slice() []T {
	n := h.Len()
	out := make([]T, n)
	copy(out, h.cells[:n])

	h.stats.Snapshot()
	if h.metrics != nil {
		h.metrics.recordSnapshot()
	}

	return out
}

// Clear finalizes every live value and resets the buffer to the state
// produced by New. No-op on a closed buffer.
func (h *HistoryBuffer[T]) Clear() {
	if h.closed {
		return
	}
	h.reset()
}

// ClearWith finalizes every live value and resets the buffer to the
// state produced by NewWith. No-op on a closed buffer.
func (h *HistoryBuffer[T]) ClearWith(value T) {
	if h.closed {
		return
	}
	h.reset()

	for i := range h.cells {
		h.cells[i] = value
	}
	h.filled = h.capacity > 0
	h.recordSize()
}

// Close finalizes every live value exactly once and permanently
// retires the buffer. Subsequent writes are rejected; Close is
// idempotent.
func (h *HistoryBuffer[T]) Close() error {
	if h.closed {
		return nil
	}
	h.reset()
	h.closed = true
	return nil
}

// Stats returns buffer statistics (always available for observability).
func (h *HistoryBuffer[T]) Stats() *Statistics {
	return h.stats
}

// reset finalizes the live cells, which are contiguous from physical
// index zero, and rewinds the cursor and fill state.
func (h *HistoryBuffer[T]) reset() {
	n := h.Len()
	for i := 0; i < n; i++ {
		h.finalizeCell(i)
	}

	h.writeAt = 0
	h.filled = false
	h.recordSize()
}

// finalizeCell runs the finalizer for the live value at physical index
// i and releases the cell's reference so the GC can reclaim it. Must
// only be called on live cells.
func (h *HistoryBuffer[T]) finalizeCell(i int) {
	if h.opts.finalizer != nil {
		h.opts.finalizer(h.cells[i])
	}

	var zero T
	h.cells[i] = zero // release for GC

	h.stats.Finalization()
	if h.metrics != nil {
		h.metrics.recordFinalization()
	}
}

// recordSize pushes the current length into stats and metrics.
func (h *HistoryBuffer[T]) recordSize() {
	n := h.Len()
	h.stats.UpdateSize(int64(n))
	if h.metrics != nil {
		h.metrics.updateSize(n, h.capacity)
	}
}
