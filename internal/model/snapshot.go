package model

import (
	"strconv"
	"time"
)

// Metric series names used by the history store and broadcast payload.
const (
	MetricCPU     = "cpu"
	MetricMemory  = "memory"
	MetricDisk    = "disk"
	MetricNetSent = "net_sent"
	MetricNetRecv = "net_recv"
	MetricBattery = "battery"
)

// MetricSample is one point of a per-metric time series. Immutable once created.
type MetricSample struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// CPU aggregates one tick's processor reading.
type CPU struct {
	Percent float64        `json:"percent"`
	PerCore []float64      `json:"per_core"`
	Count   int            `json:"count"`
	FreqMHz float64        `json:"freq_mhz"`
	Top     []ProcessUsage `json:"top"`
}

// Memory captures RAM usage in bytes plus used percent.
type Memory struct {
	Total     uint64  `json:"total"`
	Available uint64  `json:"available"`
	Used      uint64  `json:"used"`
	Free      uint64  `json:"free"`
	Percent   float64 `json:"percent"`
}

// Swap captures swap usage.
type Swap struct {
	Total   uint64  `json:"total"`
	Used    uint64  `json:"used"`
	Free    uint64  `json:"free"`
	Percent float64 `json:"percent"`
}

// DiskIO holds cumulative disk I/O counters.
type DiskIO struct {
	ReadCount  uint64 `json:"read_count"`
	WriteCount uint64 `json:"write_count"`
	ReadBytes  uint64 `json:"read_bytes"`
	WriteBytes uint64 `json:"write_bytes"`
}

// Disk captures root filesystem usage and I/O counters.
type Disk struct {
	Total   uint64  `json:"total"`
	Used    uint64  `json:"used"`
	Free    uint64  `json:"free"`
	Percent float64 `json:"percent"`
	IO      *DiskIO `json:"io,omitempty"`
}

// Network holds cumulative interface counters summed across NICs.
type Network struct {
	BytesSent   uint64 `json:"bytes_sent"`
	BytesRecv   uint64 `json:"bytes_recv"`
	PacketsSent uint64 `json:"packets_sent"`
	PacketsRecv uint64 `json:"packets_recv"`
}

// GPU holds a single device reading from the external query tool.
type GPU struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Utilization   float64 `json:"utilization"`
	MemoryUsedMB  float64 `json:"memory_used"`
	MemoryTotalMB float64 `json:"memory_total"`
	TemperatureC  float64 `json:"temperature"`
}

// SensorReading is one labeled temperature within a sensor group.
type SensorReading struct {
	Label   string  `json:"label"`
	Current float64 `json:"current"`
}

// Battery is nil in the snapshot when no battery hardware exists.
// SecsLeft is -1 when the remaining time is unknown or unlimited.
type Battery struct {
	Percent      float64 `json:"percent"`
	PowerPlugged bool    `json:"power_plugged"`
	SecsLeft     int64   `json:"secsleft"`
}

// ProcessUsage is a top-list entry. CPUPercent is normalized by logical
// core count so 100 means full-machine saturation.
type ProcessUsage struct {
	PID        int32   `json:"pid"`
	Name       string  `json:"name"`
	CPUPercent float64 `json:"cpu_percent"`
}

// SystemInfo holds static host descriptors gathered once per tick.
type SystemInfo struct {
	Platform     string    `json:"platform"`
	Processor    string    `json:"processor"`
	Architecture string    `json:"architecture"`
	BootTime     time.Time `json:"boot_time"`
}

// Snapshot is the full telemetry reading for one scheduler tick.
// Constructed fresh every tick and never mutated afterwards; it is shared
// read-only with the history store, alert engine, and distribution hub.
type Snapshot struct {
	Timestamp    time.Time                  `json:"timestamp"`
	CPU          CPU                        `json:"cpu"`
	Memory       Memory                     `json:"memory"`
	Swap         Swap                       `json:"swap"`
	Disk         Disk                       `json:"disk"`
	Network      Network                    `json:"network"`
	Temperatures map[string][]SensorReading `json:"temperatures"`
	Battery      *Battery                   `json:"battery"`
	GPUs         []GPU                      `json:"gpu"`
	System       SystemInfo                 `json:"system"`
}

// GPUMetric returns the history series name for one GPU device.
func GPUMetric(id int) string {
	return "gpu" + strconv.Itoa(id)
}
