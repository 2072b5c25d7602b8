package model

import "time"

// AlertKind identifies which telemetry category raised an alert.
type AlertKind string

const (
	AlertCPU         AlertKind = "cpu"
	AlertGPU         AlertKind = "gpu"
	AlertBattery     AlertKind = "battery"
	AlertTemperature AlertKind = "temperature"
)

// Severity grades an alert.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Alert is one threshold violation observed on a single tick. The active
// alert set is fully replaced every evaluation, so an alert that is not
// re-triggered simply disappears.
type Alert struct {
	Kind      AlertKind `json:"type"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	Timestamp time.Time `json:"timestamp"`
}
