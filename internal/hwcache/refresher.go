package hwcache

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hostpulse/hostpulse/internal/model"
	"github.com/hostpulse/hostpulse/internal/probe"
)

// GPUProbe fetches the current GPU device list.
type GPUProbe func(ctx context.Context) ([]model.GPU, error)

// TempProbe fetches the current temperature sensor map.
type TempProbe func() (map[string][]model.SensorReading, error)

// Refresher runs one refresh loop per hardware category on a shared slow
// cadence. A category whose very first probe reports unavailable hardware
// stops refreshing for the rest of the process lifetime; transient
// failures afterwards keep the previous cached value.
type Refresher struct {
	cache    *Cache
	interval time.Duration
	gpu      GPUProbe
	temp     TempProbe
	log      zerolog.Logger
}

func NewRefresher(cache *Cache, interval time.Duration, gpu GPUProbe, temp TempProbe, log zerolog.Logger) *Refresher {
	return &Refresher{cache: cache, interval: interval, gpu: gpu, temp: temp, log: log}
}

// Run blocks until both category loops have exited, either because ctx was
// canceled or because their hardware proved absent on first contact.
func (r *Refresher) Run(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		r.loop(ctx, "gpu", r.refreshGPU)
	}()
	go func() {
		defer wg.Done()
		r.loop(ctx, "temperature", r.refreshTemps)
	}()
	wg.Wait()
}

// loop makes an immediate first attempt, then refreshes on the ticker.
// refresh returning ErrUnavailable on the first attempt ends the loop.
func (r *Refresher) loop(ctx context.Context, category string, refresh func(context.Context) error) {
	if err := refresh(ctx); err != nil {
		if probe.IsUnavailable(err) {
			r.log.Info().Str("category", category).Msg("hardware absent, refresh disabled")
			return
		}
		r.log.Warn().Err(err).Str("category", category).Msg("initial probe failed, will retry")
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := refresh(ctx); err != nil {
				// Last-known-good value stays in the cache.
				r.log.Warn().Err(err).Str("category", category).Msg("probe failed, keeping cached value")
			}
		}
	}
}

func (r *Refresher) refreshGPU(ctx context.Context) error {
	gpus, err := r.gpu(ctx)
	if err != nil {
		return err
	}
	r.cache.SetGPUs(gpus)
	return nil
}

func (r *Refresher) refreshTemps(context.Context) error {
	temps, err := r.temp()
	if err != nil {
		return err
	}
	r.cache.SetTemperatures(temps)
	return nil
}
