// Package alert evaluates snapshots against configured thresholds.
// Evaluation is stateless: every tick produces the complete current alert
// set, which replaces the previous one. No hysteresis, no debounce.
package alert

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hostpulse/hostpulse/internal/model"
)

// Thresholds is the immutable limit set loaded at startup.
// CPU, GPU and Battery are percents; Temperature is degrees Celsius.
type Thresholds struct {
	CPU         float64 `yaml:"cpu"`
	GPU         float64 `yaml:"gpu"`
	Battery     float64 `yaml:"battery"`
	Temperature float64 `yaml:"temperature"`
}

// Evaluate returns every threshold violation in snap. It is pure: the same
// snapshot and thresholds always produce the same set, timestamps included,
// because alerts are stamped with the snapshot time.
func Evaluate(snap model.Snapshot, th Thresholds) []model.Alert {
	var alerts []model.Alert
	at := snap.Timestamp

	if snap.CPU.Percent > th.CPU {
		alerts = append(alerts, model.Alert{
			Kind:      model.AlertCPU,
			Message:   fmt.Sprintf("High CPU Usage: %.1f%%", snap.CPU.Percent),
			Severity:  model.SeverityCritical,
			Timestamp: at,
		})
	}

	for _, gpu := range snap.GPUs {
		if gpu.Utilization > th.GPU {
			alerts = append(alerts, model.Alert{
				Kind:      model.AlertGPU,
				Message:   fmt.Sprintf("High GPU Usage: GPU %d at %.1f%%", gpu.ID, gpu.Utilization),
				Severity:  model.SeverityCritical,
				Timestamp: at,
			})
		}
	}

	if snap.Battery != nil && snap.Battery.Percent < th.Battery {
		alerts = append(alerts, model.Alert{
			Kind:      model.AlertBattery,
			Message:   fmt.Sprintf("Low Battery: %.1f%%", snap.Battery.Percent),
			Severity:  model.SeverityWarning,
			Timestamp: at,
		})
	}

	// Sensor groups are walked in sorted order so the set is deterministic.
	groups := make([]string, 0, len(snap.Temperatures))
	for name := range snap.Temperatures {
		groups = append(groups, name)
	}
	sort.Strings(groups)
	for _, name := range groups {
		for _, reading := range snap.Temperatures[name] {
			if reading.Current > th.Temperature {
				alerts = append(alerts, model.Alert{
					Kind:      model.AlertTemperature,
					Message:   fmt.Sprintf("High Temperature: %s at %.1f°C", reading.Label, reading.Current),
					Severity:  model.SeverityWarning,
					Timestamp: at,
				})
			}
		}
	}

	return alerts
}

// ActiveSet is the single mutable slot holding the current alert set.
// Replace swaps the whole set; nothing is ever merged or accumulated.
type ActiveSet struct {
	mu     sync.RWMutex
	alerts []model.Alert
}

// Replace installs the alert set produced by the latest evaluation.
func (s *ActiveSet) Replace(alerts []model.Alert) {
	s.mu.Lock()
	s.alerts = alerts
	s.mu.Unlock()
}

// Current returns a copy of the active set, never nil.
func (s *ActiveSet) Current() []model.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}
