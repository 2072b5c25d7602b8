package probe

import (
	"fmt"
	"time"

	"github.com/hostpulse/hostpulse/internal/model"
)

// HardwareCache is the read side of the slow-cadence probe cache. Reads
// never block on a refresh; they return whatever was last cached.
type HardwareCache interface {
	GPUs() []model.GPU
	Temperatures() map[string][]model.SensorReading
}

// Sampler assembles a full Snapshot from the fast probes and the hardware
// cache. It is owned by the sampling scheduler and not safe for concurrent
// use; the CPU probe carries delta state between ticks.
type Sampler struct {
	cache    HardwareCache
	cpu      CPUProbe
	diskPath string
	topN     int
}

// NewSampler builds a sampler reading slow hardware values from cache and
// keeping topN processes per snapshot.
func NewSampler(cache HardwareCache, topN int) *Sampler {
	return &Sampler{cache: cache, diskPath: "/", topN: topN}
}

// Collect builds one immutable snapshot stamped with now. Failures of the
// always-available probes propagate so the scheduler can treat the whole
// tick as failed.
func (s *Sampler) Collect(now time.Time) (model.Snapshot, error) {
	cpuStat, err := s.cpu.Sample()
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("cpu probe: %w", err)
	}

	top, err := TopProcesses(s.topN, cpuStat.Count)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("process probe: %w", err)
	}
	cpuStat.Top = top

	memStat, swapStat, err := Memory()
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("memory probe: %w", err)
	}
	diskStat, err := Disk(s.diskPath)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("disk probe: %w", err)
	}
	netStat, err := Network()
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("network probe: %w", err)
	}
	sys, err := System()
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("system probe: %w", err)
	}

	// Optional hardware is best-effort; an absent battery is nil.
	batt, _ := Battery()

	return model.Snapshot{
		Timestamp:    now,
		CPU:          cpuStat,
		Memory:       memStat,
		Swap:         swapStat,
		Disk:         diskStat,
		Network:      netStat,
		Temperatures: s.cache.Temperatures(),
		Battery:      batt,
		GPUs:         s.cache.GPUs(),
		System:       sys,
	}, nil
}
