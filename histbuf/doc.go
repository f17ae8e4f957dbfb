// Package histbuf provides a generic, fixed-capacity history buffer
// that retains the N most recently written values, with always-on
// statistics and optional Prometheus metrics integration.
//
// # Overview
//
// A HistoryBuffer is a write-only ring of fixed length: on write, the
// oldest value is overwritten. It is useful for keeping a bounded
// history of samples with some desired depth, for example to compute a
// rolling average. The backing storage is allocated once at
// construction; steady-state operation performs no allocation.
//
// Unlike a queue, there is no per-element removal. The buffer exposes
// only the most recently written value (Recent) and an unordered
// full-contents snapshot (Slice).
//
// # Quick Start
//
//	buf, err := histbuf.New[int](8)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer buf.Close()
//
//	buf.Write(3)
//	buf.Write(5)
//	_ = buf.ExtendFromSlice([]int{4, 4})
//
//	recent, ok := buf.Recent() // 4, true
//
//	sum := 0
//	for _, v := range buf.Slice() {
//	    sum += v
//	}
//	avg := sum / buf.Len() // 4
//	_, _, _ = recent, ok, avg
//
// With a finalizer and metrics:
//
//	buf, err := histbuf.New[*Session](64,
//	    histbuf.WithFinalizer[*Session](func(s *Session) { s.Release() }),
//	    histbuf.WithMetrics[*Session](registry, "session_history"),
//	)
//
// # Liveness and Finalization
//
// Storage cells are either live (holding a value the buffer owns) or
// dead. Liveness is tracked by the write cursor and fill flag, not per
// cell: before the buffer first wraps, exactly the cells below the
// cursor are live; afterwards all of them are. Every transition runs
// through Write, Clear, ClearWith, or Close, each of which finalizes a
// value exactly once before its cell is reused or released:
//
//   - an optional Finalizer (WithFinalizer) observes the value, for
//     elements that own resources beyond their memory
//   - the vacated cell is zeroed so the garbage collector can reclaim
//     whatever the value referenced
//
// Close is the buffer's destructor: it finalizes the remaining live
// values and permanently retires the buffer. Values never leak and are
// never finalized twice, which the tests verify by counting
// constructions against finalizations of a tracked element type.
//
// # Ordering
//
// Slice returns values in physical storage order, which is NOT
// chronological order; after the buffer wraps, the oldest value is not
// at index zero. This is a deliberate non-guarantee that keeps reads
// copy-cheap and cursor-free. Only Recent is order-aware. Callers that
// need full chronology should store timestamps in their element type.
//
// # Concurrency Model
//
// A HistoryBuffer performs no internal locking and is exclusively
// owned by one caller context at a time. Writes are applied strictly
// in call order and every read observes the state left by the most
// recent write. Callers sharing a buffer across goroutines must wrap
// it with their own mutex. The one concession: Statistics counters are
// atomic, so Stats() summaries may be read concurrently with the
// owner's writes.
//
// # Observability
//
// Statistics are always collected (writes, evictions, finalizations,
// snapshots, size watermarks, computed throughput and eviction rate)
// and available via Stats() with zero configuration. Prometheus
// metrics mirror the same activity when enabled with WithMetrics();
// registration failures surface as the constructor's only error.
//
// # Performance Characteristics
//
//   - Write, Recent, Len, Capacity: O(1), allocation-free
//   - ExtendFromSlice, Extend: O(n) in the input, one Write per element
//   - Slice: O(len), allocates the snapshot copy
//   - Memory: capacity * sizeof(T), allocated once
package histbuf
