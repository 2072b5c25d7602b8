package probe

import (
	"fmt"
	"sort"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/hostpulse/hostpulse/internal/model"
)

// TopProcesses returns the n heaviest processes by normalized CPU percent.
// Ties keep the enumeration order of the underlying process listing.
func TopProcesses(n, cores int) ([]model.ProcessUsage, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("process list: %w", err)
	}

	usage := make([]model.ProcessUsage, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name()
		if err != nil || name == "" {
			continue
		}
		raw, err := p.CPUPercent()
		if err != nil {
			continue
		}
		usage = append(usage, model.ProcessUsage{
			PID:        p.Pid,
			Name:       name,
			CPUPercent: NormalizeCPU(raw, cores),
		})
	}
	return selectTop(usage, n), nil
}

// NormalizeCPU divides a raw per-process CPU percent by the logical core
// count so 100 represents full-machine saturation rather than one core.
func NormalizeCPU(raw float64, cores int) float64 {
	if cores <= 0 {
		return raw
	}
	return raw / float64(cores)
}

// selectTop sorts descending by CPU with a stable sort and truncates to n.
func selectTop(usage []model.ProcessUsage, n int) []model.ProcessUsage {
	sort.SliceStable(usage, func(i, j int) bool {
		return usage[i].CPUPercent > usage[j].CPUPercent
	})
	if len(usage) > n {
		usage = usage[:n]
	}
	return usage
}
