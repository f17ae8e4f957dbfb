package histbuf

import (
	"sync"
	"sync/atomic"
	"time"
)

// Statistics tracks buffer activity. Counters are atomic so a
// monitoring goroutine can take snapshots while the owning goroutine
// mutates the buffer.
type Statistics struct {
	// Atomic counters
	writes        int64
	evictions     int64
	finalizations int64
	snapshots     int64

	// Protected by mutex
	mu          sync.RWMutex
	startTime   time.Time
	currentSize int64
	maxSize     int64
}

// NewStatistics creates a new statistics tracker.
func NewStatistics() *Statistics {
	return &Statistics{
		startTime: time.Now(),
	}
}

// Write records a buffer write operation.
func (s *Statistics) Write() {
	atomic.AddInt64(&s.writes, 1)
}

// Eviction records a write that displaced the oldest live value.
func (s *Statistics) Eviction() {
	atomic.AddInt64(&s.evictions, 1)
}

// Finalization records a live value being finalized.
func (s *Statistics) Finalization() {
	atomic.AddInt64(&s.finalizations, 1)
}

// Snapshot records a Slice call.
func (s *Statistics) Snapshot() {
	atomic.AddInt64(&s.snapshots, 1)
}

// UpdateSize updates the current buffer size.
func (s *Statistics) UpdateSize(size int64) {
	s.mu.Lock()
	s.currentSize = size
	if size > s.maxSize {
		s.maxSize = size
	}
	s.mu.Unlock()
}

// Writes returns the total number of write operations.
func (s *Statistics) Writes() int64 {
	return atomic.LoadInt64(&s.writes)
}

// Evictions returns the total number of overwrite evictions.
func (s *Statistics) Evictions() int64 {
	return atomic.LoadInt64(&s.evictions)
}

// Finalizations returns the total number of finalized values.
func (s *Statistics) Finalizations() int64 {
	return atomic.LoadInt64(&s.finalizations)
}

// Snapshots returns the total number of Slice calls.
func (s *Statistics) Snapshots() int64 {
	return atomic.LoadInt64(&s.snapshots)
}

// CurrentSize returns the current number of live values.
func (s *Statistics) CurrentSize() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentSize
}

// MaxSize returns the maximum number of live values the buffer has held.
func (s *Statistics) MaxSize() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxSize
}

// Throughput returns the average number of writes per second.
func (s *Statistics) Throughput() float64 {
	s.mu.RLock()
	elapsed := time.Since(s.startTime)
	s.mu.RUnlock()

	if elapsed == 0 {
		return 0.0
	}

	return float64(s.Writes()) / elapsed.Seconds()
}

// EvictionRate returns the fraction of writes that displaced a live
// value (0.0 to 1.0).
func (s *Statistics) EvictionRate() float64 {
	writes := s.Writes()
	if writes == 0 {
		return 0.0
	}

	return float64(s.Evictions()) / float64(writes)
}

// Utilization returns the current fill level relative to capacity
// (0.0 to 1.0).
func (s *Statistics) Utilization(capacity int64) float64 {
	if capacity == 0 {
		return 0.0
	}

	return float64(s.CurrentSize()) / float64(capacity)
}

// Uptime returns how long the buffer has been running.
func (s *Statistics) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Since(s.startTime)
}

// Reset resets all statistics to zero.
func (s *Statistics) Reset() {
	atomic.StoreInt64(&s.writes, 0)
	atomic.StoreInt64(&s.evictions, 0)
	atomic.StoreInt64(&s.finalizations, 0)
	atomic.StoreInt64(&s.snapshots, 0)

	s.mu.Lock()
	s.startTime = time.Now()
	s.currentSize = 0
	s.maxSize = 0
	s.mu.Unlock()
}

// StatsSummary is a point-in-time snapshot of all statistics.
type StatsSummary struct {
	Writes        int64         `json:"writes"`
	Evictions     int64         `json:"evictions"`
	Finalizations int64         `json:"finalizations"`
	Snapshots     int64         `json:"snapshots"`
	CurrentSize   int64         `json:"current_size"`
	MaxSize       int64         `json:"max_size"`
	Throughput    float64       `json:"throughput"`
	EvictionRate  float64       `json:"eviction_rate"`
	Uptime        time.Duration `json:"uptime"`
}

// Summary returns a snapshot of all statistics.
func (s *Statistics) Summary() StatsSummary {
	return StatsSummary{
		Writes:        s.Writes(),
		Evictions:     s.Evictions(),
		Finalizations: s.Finalizations(),
		Snapshots:     s.Snapshots(),
		CurrentSize:   s.CurrentSize(),
		MaxSize:       s.MaxSize(),
		Throughput:    s.Throughput(),
		EvictionRate:  s.EvictionRate(),
		Uptime:        s.Uptime(),
	}
}
