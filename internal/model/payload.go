package model

import "time"

// PayloadVersion identifies the broadcast schema. Bump on breaking changes
// so subscribers can reject payloads they do not understand.
const PayloadVersion = 1

// Forecast carries the last successfully fitted prediction horizon.
// Values is empty until the first successful fit. ComputedAt lets consumers
// judge staleness; nothing in the engine acts on it.
type Forecast struct {
	Values     []float64 `json:"values"`
	ComputedAt time.Time `json:"computed_at"`
}

// Payload is the composite per-tick broadcast: the fresh snapshot, the
// current alert set, trimmed history windows per metric, and the latest
// forecast (possibly stale).
type Payload struct {
	Version  int                       `json:"version"`
	Snapshot Snapshot                  `json:"snapshot"`
	Alerts   []Alert                   `json:"alerts"`
	History  map[string][]MetricSample `json:"history"`
	Forecast Forecast                  `json:"forecast"`
}
