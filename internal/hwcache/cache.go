// Package hwcache decouples expensive or rarely-changing probes (GPU query
// via external process, sensor temperatures) from the fast sampling tick.
// Values are refreshed on their own slower cadence and the sampler reads
// whatever is currently cached.
package hwcache

import (
	"sync"

	"github.com/hostpulse/hostpulse/internal/model"
)

// Cache holds the most recently fetched GPU list and temperature map.
// Each value is independently absent until its first successful probe and
// keeps the last-known-good reading on later failures. Stored values are
// replaced wholesale and never mutated in place, so readers may hold the
// returned slices without copying.
type Cache struct {
	mu    sync.RWMutex
	gpus  []model.GPU
	temps map[string][]model.SensorReading
}

func New() *Cache {
	return &Cache{}
}

// GPUs returns the cached device list, nil before first population.
func (c *Cache) GPUs() []model.GPU {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gpus
}

// SetGPUs atomically replaces the cached device list.
func (c *Cache) SetGPUs(gpus []model.GPU) {
	c.mu.Lock()
	c.gpus = gpus
	c.mu.Unlock()
}

// Temperatures returns the cached sensor map, nil before first population.
func (c *Cache) Temperatures() map[string][]model.SensorReading {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.temps
}

// SetTemperatures atomically replaces the cached sensor map.
func (c *Cache) SetTemperatures(temps map[string][]model.SensorReading) {
	c.mu.Lock()
	c.temps = temps
	c.mu.Unlock()
}
