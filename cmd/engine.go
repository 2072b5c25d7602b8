package cmd

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hostpulse/hostpulse/internal/alert"
	"github.com/hostpulse/hostpulse/internal/config"
	"github.com/hostpulse/hostpulse/internal/forecast"
	"github.com/hostpulse/hostpulse/internal/history"
	"github.com/hostpulse/hostpulse/internal/hub"
	"github.com/hostpulse/hostpulse/internal/hwcache"
	"github.com/hostpulse/hostpulse/internal/probe"
	"github.com/hostpulse/hostpulse/internal/sched"
)

// engine bundles the long-lived coordinator state: the independently
// locked shared resources and the three periodic activities that use them.
type engine struct {
	hist      *history.Store
	cache     *hwcache.Cache
	slot      *forecast.Slot
	alerts    *alert.ActiveSet
	hub       *hub.Hub
	refresher *hwcache.Refresher
	forecast  *forecast.Engine
	scheduler *sched.Scheduler
}

func newEngine(cfg *config.Config, log zerolog.Logger) *engine {
	e := &engine{
		hist:   history.NewStore(cfg.HistorySize),
		cache:  hwcache.New(),
		slot:   &forecast.Slot{},
		alerts: &alert.ActiveSet{},
		hub:    hub.New(log),
	}
	e.refresher = hwcache.NewRefresher(e.cache, cfg.HardwareRefresh.Std(), probe.GPUs, probe.Temperatures, log)
	e.forecast = forecast.NewEngine(e.hist, e.slot, cfg.ForecastInterval.Std(), log)
	e.scheduler = sched.New(sched.Options{
		Collector:     probe.NewSampler(e.cache, cfg.TopProcesses),
		History:       e.hist,
		Alerts:        e.alerts,
		Thresholds:    cfg.Thresholds,
		Forecast:      e.slot,
		Hub:           e.hub,
		Interval:      cfg.SampleInterval.Std(),
		Backoff:       cfg.ErrorBackoff.Std(),
		HistoryWindow: cfg.HistoryWindow,
		Logger:        log,
	})
	return e
}

// start launches the three periodic activities. They stop when ctx does.
func (e *engine) start(ctx context.Context) {
	go e.refresher.Run(ctx)
	go e.forecast.Run(ctx)
	go e.scheduler.Run(ctx)
}
