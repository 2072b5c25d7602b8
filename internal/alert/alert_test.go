package alert

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/hostpulse/hostpulse/internal/model"
)

var testThresholds = Thresholds{CPU: 95, GPU: 95, Battery: 10, Temperature: 40}

func snapshotAt(cpuPercent float64) model.Snapshot {
	return model.Snapshot{
		Timestamp: time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC),
		CPU:       model.CPU{Percent: cpuPercent},
	}
}

func TestEvaluateCPUAboveThreshold(t *testing.T) {
	alerts := Evaluate(snapshotAt(97.2), testThresholds)
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	a := alerts[0]
	if a.Kind != model.AlertCPU || a.Severity != model.SeverityCritical {
		t.Errorf("unexpected alert: %+v", a)
	}
	if a.Message != "High CPU Usage: 97.2%" {
		t.Errorf("unexpected message %q", a.Message)
	}
}

func TestEvaluateBelowThresholdsIsEmpty(t *testing.T) {
	if alerts := Evaluate(snapshotAt(50), testThresholds); len(alerts) != 0 {
		t.Errorf("expected no alerts, got %v", alerts)
	}
}

func TestEvaluateIsPureAndIdempotent(t *testing.T) {
	snap := snapshotAt(99)
	snap.GPUs = []model.GPU{{ID: 0, Utilization: 98}}

	first := Evaluate(snap, testThresholds)
	second := Evaluate(snap, testThresholds)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("evaluate is not deterministic:\n%v\n%v", first, second)
	}
	if len(second) != 2 {
		t.Errorf("repeat evaluation accumulated alerts: %v", second)
	}
}

func TestEvaluateOneAlertPerOffendingGPU(t *testing.T) {
	snap := snapshotAt(10)
	snap.GPUs = []model.GPU{
		{ID: 0, Utilization: 99},
		{ID: 1, Utilization: 97},
		{ID: 2, Utilization: 12},
	}

	alerts := Evaluate(snap, testThresholds)
	if len(alerts) != 2 {
		t.Fatalf("expected 2 GPU alerts, got %d: %v", len(alerts), alerts)
	}
	if !strings.Contains(alerts[0].Message, "GPU 0") {
		t.Errorf("first alert should reference GPU 0: %q", alerts[0].Message)
	}
	if !strings.Contains(alerts[1].Message, "GPU 1") {
		t.Errorf("second alert should reference GPU 1: %q", alerts[1].Message)
	}
}

func TestEvaluateBattery(t *testing.T) {
	snap := snapshotAt(10)
	snap.Battery = &model.Battery{Percent: 8}

	alerts := Evaluate(snap, testThresholds)
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].Kind != model.AlertBattery || alerts[0].Severity != model.SeverityWarning {
		t.Errorf("unexpected alert: %+v", alerts[0])
	}

	// No battery hardware, no alert.
	snap.Battery = nil
	if alerts := Evaluate(snap, testThresholds); len(alerts) != 0 {
		t.Errorf("nil battery should not alert: %v", alerts)
	}
}

func TestEvaluateEverySensorReadingAlerts(t *testing.T) {
	snap := snapshotAt(10)
	snap.Temperatures = map[string][]model.SensorReading{
		"coretemp": {
			{Label: "coretemp_0", Current: 91},
			{Label: "coretemp_1", Current: 35},
		},
		"acpitz": {
			{Label: "acpitz_0", Current: 55},
		},
	}

	alerts := Evaluate(snap, testThresholds)
	if len(alerts) != 2 {
		t.Fatalf("expected 2 temperature alerts, got %d: %v", len(alerts), alerts)
	}
	// Groups walk in sorted order: acpitz before coretemp.
	if !strings.Contains(alerts[0].Message, "acpitz_0") {
		t.Errorf("unexpected first alert %q", alerts[0].Message)
	}
	if !strings.Contains(alerts[1].Message, "coretemp_0 at 91.0") {
		t.Errorf("unexpected second alert %q", alerts[1].Message)
	}
}

func TestActiveSetReplaceDropsStaleAlerts(t *testing.T) {
	var set ActiveSet

	set.Replace(Evaluate(snapshotAt(97), testThresholds))
	if len(set.Current()) != 1 {
		t.Fatalf("expected CPU alert active after hot tick")
	}

	set.Replace(Evaluate(snapshotAt(50), testThresholds))
	if got := set.Current(); len(got) != 0 {
		t.Errorf("alert not cleared by replacement: %v", got)
	}
}

func TestActiveSetCurrentIsCopy(t *testing.T) {
	var set ActiveSet
	set.Replace([]model.Alert{{Kind: model.AlertCPU, Message: "x"}})

	got := set.Current()
	got[0].Message = "mutated"

	if set.Current()[0].Message != "x" {
		t.Error("Current returned a view into internal state")
	}
}
