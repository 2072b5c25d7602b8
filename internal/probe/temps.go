package probe

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/hostpulse/hostpulse/internal/model"
)

// Temperatures reads every sensor the OS exposes, grouped by sensor key.
// Hosts without sensor support report ErrUnavailable so the refresh loop
// can stop asking.
func Temperatures() (map[string][]model.SensorReading, error) {
	stats, err := host.SensorsTemperatures()
	if len(stats) == 0 {
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil, ErrUnavailable
	}

	groups := make(map[string][]model.SensorReading)
	for _, st := range stats {
		idx := len(groups[st.SensorKey])
		groups[st.SensorKey] = append(groups[st.SensorKey], model.SensorReading{
			Label:   fmt.Sprintf("%s_%d", st.SensorKey, idx),
			Current: st.Temperature,
		})
	}
	return groups, nil
}
