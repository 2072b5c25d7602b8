package probe

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hostpulse/hostpulse/internal/model"
)

// Battery reads the first battery under /sys/class/power_supply. A nil
// result with nil error means no battery hardware; desktops are the
// normal case, not an error.
func Battery() (*model.Battery, error) {
	paths, _ := filepath.Glob("/sys/class/power_supply/BAT*/capacity")
	for _, capPath := range paths {
		capBytes, err := os.ReadFile(capPath)
		if err != nil {
			continue
		}
		status, _ := os.ReadFile(filepath.Join(filepath.Dir(capPath), "status"))
		state := strings.TrimSpace(string(status))
		return &model.Battery{
			Percent:      parseFloat(string(capBytes)),
			PowerPlugged: state == "Charging" || state == "Full" || state == "Not charging",
			SecsLeft:     -1,
		}, nil
	}
	return nil, nil
}
