package forecast

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/hostpulse/hostpulse/internal/history"
	"github.com/hostpulse/hostpulse/internal/model"
)

// Engine periodically fits a predictor over recent CPU history and
// publishes the result to its slot. No lock is held during a fit; the
// history window is copied out first.
type Engine struct {
	hist     *history.Store
	slot     *Slot
	interval time.Duration
	log      zerolog.Logger
}

func NewEngine(hist *history.Store, slot *Slot, interval time.Duration, log zerolog.Logger) *Engine {
	return &Engine{hist: hist, slot: slot, interval: interval, log: log}
}

// Run fits on its own cadence until ctx is canceled.
func (e *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.cycle(time.Now())
		}
	}
}

// cycle performs one Idle -> Fitting -> Published pass. Any failure leaves
// the previous forecast in the slot.
func (e *Engine) cycle(now time.Time) {
	window := e.hist.Window(model.MetricCPU, FitWindow)
	values := make([]float64, len(window))
	for i, sample := range window {
		values[i] = sample.Value
	}

	preds, err := Fit(values, Horizon)
	switch {
	case errors.Is(err, ErrInsufficientData):
		e.log.Debug().Int("samples", len(values)).Msg("forecast idle, not enough history")
	case err != nil:
		e.log.Error().Err(err).Msg("forecast fit failed, keeping previous forecast")
	default:
		e.slot.Publish(preds, now)
		e.log.Debug().Int("horizon", len(preds)).Msg("forecast published")
	}
}
