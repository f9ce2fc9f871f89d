package telemetry

import (
	"sync"
	"time"
)

// DefaultHistorySize is the default number of samples retained per metric.
const DefaultHistorySize = 120

// Metric identifies a time series tracked by the Store.
type Metric string

// Metrics tracked for the monitored device.
const (
	MetricCPULoad      Metric = "cpu.load"
	MetricMemoryUsage  Metric = "mem.used_percent"
	MetricBatteryLevel Metric = "battery.level"
	MetricBatteryTemp  Metric = "battery.temp"
)

// Sample is a single timestamped measurement.
type Sample struct {
	Timestamp time.Time
	Value     float64
}

// Store retains bounded per-metric sample history using ring buffers.
// It provides thread-safe access for sparkline rendering. Trimming always
// discards the oldest samples first.
type Store struct {
	mu       sync.RWMutex
	capacity int
	series   map[Metric]*ringBuffer
}

// ringBuffer is a fixed-size circular buffer of samples.
type ringBuffer struct {
	data  []Sample
	head  int
	count int
	size  int
}

// NewStore creates a store retaining up to capacity samples per metric.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &Store{
		capacity: capacity,
		series:   make(map[Metric]*ringBuffer),
	}
}

// Push appends a sample to the metric's series, evicting the oldest
// sample once the series is at capacity.
func (s *Store) Push(metric Metric, sample Sample) {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf, ok := s.series[metric]
	if !ok {
		buf = newRingBuffer(s.capacity)
		s.series[metric] = buf
	}
	buf.push(sample)
}

// Read returns up to count samples for the metric in chronological order
// (oldest first). It returns fewer samples when less history is stored,
// and nil for an unknown metric.
func (s *Store) Read(metric Metric, count int) []Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()

	buf, ok := s.series[metric]
	if !ok {
		return nil
	}
	return buf.getLast(count)
}

// Values returns up to count values for the metric in chronological order,
// dropping timestamps. Convenient for sparkline rendering.
func (s *Store) Values(metric Metric, count int) []float64 {
	samples := s.Read(metric, count)
	if samples == nil {
		return nil
	}
	values := make([]float64, len(samples))
	for i, sample := range samples {
		values[i] = sample.Value
	}
	return values
}

// Latest returns the most recent sample for the metric, if any.
func (s *Store) Latest(metric Metric) (Sample, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	buf, ok := s.series[metric]
	if !ok || buf.count == 0 {
		return Sample{}, false
	}
	last := buf.getLast(1)
	return last[0], true
}

// Len returns the number of samples stored for the metric.
func (s *Store) Len(metric Metric) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	buf, ok := s.series[metric]
	if !ok {
		return 0
	}
	return buf.count
}

// Capacity returns the store's current per-metric capacity.
func (s *Store) Capacity() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.capacity
}

// SetCapacity changes the retention limit for one metric's series.
// Shrinking discards the oldest samples; growing preserves existing
// samples. The series is created if it does not exist yet.
func (s *Store) SetCapacity(metric Metric, capacity int) {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	buf, ok := s.series[metric]
	if !ok {
		s.series[metric] = newRingBuffer(capacity)
		return
	}
	s.series[metric] = buf.resized(capacity)
}

// SetCapacityAll changes the retention limit for every series and for
// series created afterwards.
func (s *Store) SetCapacityAll(capacity int) {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.capacity = capacity
	for metric, buf := range s.series {
		s.series[metric] = buf.resized(capacity)
	}
}

// Clear removes all samples for the metric.
func (s *Store) Clear(metric Metric) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.series, metric)
}

// ClearAll removes all samples for every metric.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.series = make(map[Metric]*ringBuffer)
}

// newRingBuffer creates a ring buffer with the specified capacity.
func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		data: make([]Sample, size),
		size: size,
	}
}

// push adds a sample, overwriting the oldest entry when full.
func (r *ringBuffer) push(sample Sample) {
	r.data[r.head] = sample
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// getLast returns the last count samples in chronological order (oldest
// first).
func (r *ringBuffer) getLast(count int) []Sample {
	if count <= 0 || r.count == 0 {
		return nil
	}
	if count > r.count {
		count = r.count
	}

	result := make([]Sample, count)

	// head points to the next write position, so the most recent sample
	// is at head-1. Walk back count positions from there.
	start := (r.head - count + r.size) % r.size
	for i := 0; i < count; i++ {
		result[i] = r.data[(start+i)%r.size]
	}
	return result
}

// resized returns a buffer with the new capacity holding this buffer's
// newest samples.
func (r *ringBuffer) resized(size int) *ringBuffer {
	if size == r.size {
		return r
	}
	next := newRingBuffer(size)
	for _, sample := range r.getLast(size) {
		next.push(sample)
	}
	return next
}
