// Package probe reads single telemetry categories from the OS and hardware.
// Fast probes (CPU, memory, disk, network, processes) are assumed available
// on a supported OS; GPU and temperature probes are optional hardware and
// report ErrUnavailable when the capability is absent.
package probe

import "errors"

// ErrUnavailable marks hardware or a sensor API that is absent for the
// lifetime of the process. It is distinct from a transient probe failure,
// which callers retry on the next cycle.
var ErrUnavailable = errors.New("probe: unavailable")

// IsUnavailable reports whether err denotes permanently absent hardware.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
