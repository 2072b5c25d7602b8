// Package sched drives the fixed-interval sampling loop: probe, assemble,
// record history, evaluate alerts, and hand the payload to the hub.
package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/hostpulse/hostpulse/internal/alert"
	"github.com/hostpulse/hostpulse/internal/forecast"
	"github.com/hostpulse/hostpulse/internal/history"
	"github.com/hostpulse/hostpulse/internal/hub"
	"github.com/hostpulse/hostpulse/internal/model"
)

// Collector assembles one snapshot per tick. The probe sampler is the
// production implementation; tests substitute fakes.
type Collector interface {
	Collect(now time.Time) (model.Snapshot, error)
}

// Scheduler owns the fast cadence. A failed tick is logged and followed by
// one backoff-length sleep; the loop itself never terminates on a tick
// fault, only on context cancellation.
type Scheduler struct {
	collector     Collector
	hist          *history.Store
	alerts        *alert.ActiveSet
	thresholds    alert.Thresholds
	slot          *forecast.Slot
	hub           *hub.Hub
	interval      time.Duration
	backoff       time.Duration
	historyWindow int
	log           zerolog.Logger
}

// Options carries scheduler wiring; all fields are required.
type Options struct {
	Collector     Collector
	History       *history.Store
	Alerts        *alert.ActiveSet
	Thresholds    alert.Thresholds
	Forecast      *forecast.Slot
	Hub           *hub.Hub
	Interval      time.Duration
	Backoff       time.Duration
	HistoryWindow int
	Logger        zerolog.Logger
}

func New(opts Options) *Scheduler {
	return &Scheduler{
		collector:     opts.Collector,
		hist:          opts.History,
		alerts:        opts.Alerts,
		thresholds:    opts.Thresholds,
		slot:          opts.Forecast,
		hub:           opts.Hub,
		interval:      opts.Interval,
		backoff:       opts.Backoff,
		historyWindow: opts.HistoryWindow,
		log:           opts.Logger,
	}
}

// Run ticks until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if err := s.Tick(now); err != nil {
				s.log.Error().Err(err).Msg("tick failed, backing off")
				if !sleep(ctx, s.backoff) {
					return
				}
			}
		}
	}
}

// Tick performs one full sampling cycle. Exported so callers driving their
// own clock (tests, one-shot mode) can reuse the exact production path.
func (s *Scheduler) Tick(now time.Time) error {
	snap, err := s.collector.Collect(now)
	if err != nil {
		return err
	}

	s.recordHistory(snap)

	alerts := alert.Evaluate(snap, s.thresholds)
	s.alerts.Replace(alerts)

	s.hub.Broadcast(model.Payload{
		Version:  model.PayloadVersion,
		Snapshot: snap,
		Alerts:   alerts,
		History:  s.hist.Windows(s.historyWindow),
		Forecast: s.slot.Current(),
	})
	return nil
}

// recordHistory appends the derived scalar series for this snapshot.
func (s *Scheduler) recordHistory(snap model.Snapshot) {
	at := snap.Timestamp
	s.hist.Append(model.MetricCPU, model.MetricSample{Timestamp: at, Value: snap.CPU.Percent})
	s.hist.Append(model.MetricMemory, model.MetricSample{Timestamp: at, Value: snap.Memory.Percent})
	s.hist.Append(model.MetricDisk, model.MetricSample{Timestamp: at, Value: snap.Disk.Percent})
	s.hist.Append(model.MetricNetSent, model.MetricSample{Timestamp: at, Value: float64(snap.Network.BytesSent)})
	s.hist.Append(model.MetricNetRecv, model.MetricSample{Timestamp: at, Value: float64(snap.Network.BytesRecv)})
	for _, gpu := range snap.GPUs {
		s.hist.Append(model.GPUMetric(gpu.ID), model.MetricSample{Timestamp: at, Value: gpu.Utilization})
	}
	if snap.Battery != nil {
		s.hist.Append(model.MetricBattery, model.MetricSample{Timestamp: at, Value: snap.Battery.Percent})
	}
}

// sleep waits for d or until ctx is canceled, reporting whether the full
// duration elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
