// Package heapless provides fixed-capacity containers that never grow
// after construction, for workloads where only bounded recent state
// matters and steady-state allocation is unwanted.
//
// # Philosophy
//
// Every container in this module pre-allocates its full backing storage
// once, at construction time, and never reallocates afterwards. Hot-path
// operations are O(1), allocation-free, and overwrite old data instead
// of growing. That makes the containers suitable for rolling windows of
// samples (rolling averages, telemetry history, debouncing) where the
// oldest entries are discarded automatically.
//
// # Packages
//
//	histbuf   HistoryBuffer[T]: fixed-capacity, overwrite-on-full
//	          history of the N most recently written values, with
//	          explicit element finalization, always-on statistics and
//	          optional Prometheus metrics
//	errors    three-class error classification (transient, invalid,
//	          fatal) used across the module
//	metric    Prometheus metrics registry and HTTP exposition server
//
// # Quick Start
//
//	buf, err := histbuf.New[float64](8)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer buf.Close()
//
//	buf.Write(3)
//	buf.Write(5)
//	_ = buf.ExtendFromSlice([]float64{4, 4})
//
//	recent, _ := buf.Recent() // 4, the most recent write
//
//	// Unordered view of everything currently retained.
//	var sum float64
//	for _, v := range buf.Slice() {
//	    sum += v
//	}
//	avg := sum / float64(buf.Len())
//	_ = recent
//	_ = avg
//
// # Concurrency Model
//
// Containers are exclusively owned by one caller context at a time and
// perform no internal locking. Callers that share a container across
// goroutines must supply their own mutual exclusion. Statistics
// counters are atomic, so a monitoring goroutine may read Stats()
// snapshots while the owning goroutine writes.
//
// The cmd/histwatch binary is a reference deployment: it feeds NATS
// telemetry into per-subject history buffers and exposes rolling
// aggregates over Prometheus.
package heapless
