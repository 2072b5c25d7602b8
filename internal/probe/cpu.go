package probe

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/hostpulse/hostpulse/internal/model"
)

// CPUProbe computes usage percentages from /proc cpu-time deltas between
// consecutive samples. The first sample reports zero because no delta
// exists yet.
type CPUProbe struct {
	prevTotal float64
	prevIdle  float64
	prevCore  []cpu.TimesStat
	count     int
}

// Sample returns the overall and per-core busy percentages plus the logical
// core count and current frequency.
func (p *CPUProbe) Sample() (model.CPU, error) {
	times, err := cpu.Times(false)
	if err != nil {
		return model.CPU{}, fmt.Errorf("cpu times: %w", err)
	}
	if len(times) == 0 {
		return model.CPU{}, fmt.Errorf("cpu times: empty result")
	}

	var total float64
	cur := times[0]
	curTotal := cur.Total()
	curIdle := cur.Idle + cur.Iowait
	if p.prevTotal > 0 {
		dt := curTotal - p.prevTotal
		di := curIdle - p.prevIdle
		if dt > 0 {
			total = 100 * (1 - di/dt)
		}
	}
	p.prevTotal, p.prevIdle = curTotal, curIdle

	coreTimes, err := cpu.Times(true)
	if err != nil {
		return model.CPU{}, fmt.Errorf("cpu per-core times: %w", err)
	}
	perCore := make([]float64, len(coreTimes))
	for i, c := range coreTimes {
		if i >= len(p.prevCore) {
			continue
		}
		prev := p.prevCore[i]
		dt := c.Total() - prev.Total()
		di := (c.Idle + c.Iowait) - (prev.Idle + prev.Iowait)
		if dt > 0 {
			perCore[i] = 100 * (1 - di/dt)
		}
	}
	p.prevCore = coreTimes

	if p.count == 0 {
		if n, err := cpu.Counts(true); err == nil && n > 0 {
			p.count = n
		} else {
			p.count = len(coreTimes)
		}
	}

	var freq float64
	if info, err := cpu.Info(); err == nil && len(info) > 0 {
		freq = info[0].Mhz
	}

	return model.CPU{
		Percent: total,
		PerCore: perCore,
		Count:   p.count,
		FreqMHz: freq,
	}, nil
}

// Cores returns the cached logical core count, falling back to a direct
// query before the first Sample call.
func (p *CPUProbe) Cores() int {
	if p.count == 0 {
		if n, err := cpu.Counts(true); err == nil {
			p.count = n
		}
	}
	return p.count
}
