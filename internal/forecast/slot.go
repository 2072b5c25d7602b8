package forecast

import (
	"sync"
	"time"

	"github.com/hostpulse/hostpulse/internal/model"
)

// Slot holds the last successfully computed forecast. Written only by the
// engine; readers get the previous values until the next successful fit,
// with no staleness flag beyond ComputedAt.
type Slot struct {
	mu sync.RWMutex
	f  model.Forecast
}

// Publish atomically replaces the served forecast.
func (s *Slot) Publish(values []float64, at time.Time) {
	s.mu.Lock()
	s.f = model.Forecast{Values: values, ComputedAt: at}
	s.mu.Unlock()
}

// Current returns the served forecast; Values is empty before the first
// successful fit.
func (s *Slot) Current() model.Forecast {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.f
}
