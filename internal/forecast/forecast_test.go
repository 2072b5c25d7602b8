package forecast

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hostpulse/hostpulse/internal/history"
	"github.com/hostpulse/hostpulse/internal/model"
)

func TestFitRejectsShortWindow(t *testing.T) {
	window := make([]float64, MinWindow-1)
	_, err := Fit(window, Horizon)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestFitSineWave(t *testing.T) {
	window := make([]float64, FitWindow)
	for i := range window {
		window[i] = 50 + 30*math.Sin(float64(i)/4)
	}

	preds, err := Fit(window, Horizon)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	if len(preds) != Horizon {
		t.Fatalf("expected %d predictions, got %d", Horizon, len(preds))
	}
	for i, v := range preds {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("prediction %d is not finite: %g", i, v)
		}
		if v < -50 || v > 150 {
			t.Errorf("prediction %d implausibly far outside signal range: %g", i, v)
		}
	}
}

func TestFitConstantSeries(t *testing.T) {
	window := make([]float64, FitWindow)
	for i := range window {
		window[i] = 42
	}

	preds, err := Fit(window, Horizon)
	if err != nil {
		t.Fatalf("fit failed on constant series: %v", err)
	}
	for _, v := range preds {
		if math.Abs(v-42) > 1 {
			t.Errorf("constant series should forecast near 42, got %g", v)
		}
	}
}

func TestSlotServesLastPublished(t *testing.T) {
	var slot Slot

	if got := slot.Current(); len(got.Values) != 0 {
		t.Fatalf("fresh slot should serve an empty forecast, got %v", got)
	}

	at := time.Now()
	slot.Publish([]float64{1, 2, 3}, at)

	got := slot.Current()
	if len(got.Values) != 3 || got.Values[2] != 3 {
		t.Errorf("unexpected slot contents: %v", got)
	}
	if !got.ComputedAt.Equal(at) {
		t.Errorf("ComputedAt = %v, want %v", got.ComputedAt, at)
	}
}

func seedHistory(n int) *history.Store {
	hist := history.NewStore(60)
	for i := 0; i < n; i++ {
		hist.Append(model.MetricCPU, model.MetricSample{
			Timestamp: time.Unix(int64(i), 0),
			Value:     50 + 30*math.Sin(float64(i)/4),
		})
	}
	return hist
}

func TestEngineCycleStaysIdleWithoutEnoughHistory(t *testing.T) {
	var slot Slot
	e := NewEngine(seedHistory(MinWindow-5), &slot, time.Second, zerolog.Nop())

	e.cycle(time.Now())

	if got := slot.Current(); len(got.Values) != 0 {
		t.Errorf("slot should stay empty before the first successful fit, got %v", got)
	}
}

func TestEngineCyclePublishesAndRetains(t *testing.T) {
	var slot Slot
	e := NewEngine(seedHistory(FitWindow), &slot, time.Second, zerolog.Nop())

	e.cycle(time.Now())
	first := slot.Current()
	if len(first.Values) != Horizon {
		t.Fatalf("expected published forecast of %d values, got %d", Horizon, len(first.Values))
	}

	// A later idle cycle (insufficient data) must not disturb the slot.
	idle := NewEngine(seedHistory(3), &slot, time.Second, zerolog.Nop())
	idle.cycle(time.Now())

	got := slot.Current()
	if len(got.Values) != Horizon || got.Values[0] != first.Values[0] {
		t.Errorf("stale forecast should be served unchanged, got %v", got)
	}
	if !got.ComputedAt.Equal(first.ComputedAt) {
		t.Errorf("ComputedAt changed on an idle cycle")
	}
}
