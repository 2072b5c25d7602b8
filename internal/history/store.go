// Package history keeps a bounded rolling window of samples per metric.
// Content is process-lifetime only; nothing is persisted across restarts.
package history

import (
	"sort"
	"sync"

	"github.com/hostpulse/hostpulse/internal/model"
)

// Store holds one fixed-capacity series per metric name. Insertion is
// always at the tail; when a series would exceed capacity the oldest entry
// is evicted first. Insertion order is the only order.
type Store struct {
	mu       sync.RWMutex
	capacity int
	series   map[string][]model.MetricSample
}

// NewStore creates a store evicting FIFO beyond capacity samples per metric.
func NewStore(capacity int) *Store {
	if capacity < 1 {
		capacity = 1
	}
	return &Store{
		capacity: capacity,
		series:   make(map[string][]model.MetricSample),
	}
}

// Append adds a sample at the tail of the metric's series, evicting the
// head when the series is full.
func (s *Store) Append(metric string, sample model.MetricSample) {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := append(s.series[metric], sample)
	if len(buf) > s.capacity {
		buf = buf[1:]
	}
	s.series[metric] = buf
}

// Window returns the last min(n, length) samples of a metric in insertion
// order. Unknown metrics yield an empty slice.
func (s *Store) Window(metric string, n int) []model.MetricSample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return window(s.series[metric], n)
}

// Windows returns the last n samples of every metric, keyed by name.
func (s *Store) Windows(n int) map[string][]model.MetricSample {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]model.MetricSample, len(s.series))
	for metric, buf := range s.series {
		out[metric] = window(buf, n)
	}
	return out
}

// Len returns the current length of a metric's series.
func (s *Store) Len(metric string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.series[metric])
}

// Metrics returns the known metric names, sorted for stable output.
func (s *Store) Metrics() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.series))
	for metric := range s.series {
		names = append(names, metric)
	}
	sort.Strings(names)
	return names
}

func window(buf []model.MetricSample, n int) []model.MetricSample {
	if n > len(buf) {
		n = len(buf)
	}
	out := make([]model.MetricSample, n)
	copy(out, buf[len(buf)-n:])
	return out
}
