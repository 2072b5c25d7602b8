package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.SampleInterval.Std() != 2*time.Second {
		t.Errorf("sample_interval = %s, want 2s", cfg.SampleInterval.Std())
	}
	if cfg.ErrorBackoff.Std() != 5*time.Second {
		t.Errorf("error_backoff = %s, want 5s", cfg.ErrorBackoff.Std())
	}
	if cfg.HistorySize != 60 || cfg.HistoryWindow != 20 {
		t.Errorf("history = %d/%d, want 60/20", cfg.HistorySize, cfg.HistoryWindow)
	}
	th := cfg.Thresholds
	if th.CPU != 95 || th.GPU != 95 || th.Battery != 10 || th.Temperature != 40 {
		t.Errorf("unexpected default thresholds: %+v", th)
	}
}

func TestLoadEmptyPathYieldsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HistorySize != 60 {
		t.Errorf("history_size = %d, want default 60", cfg.HistorySize)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/hostpulse.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Listen != "0.0.0.0:8800" {
		t.Errorf("listen = %s, want default", cfg.Listen)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
sample_interval: 1s
listen: "127.0.0.1:9900"
thresholds:
  cpu: 80
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.SampleInterval.Std() != time.Second {
		t.Errorf("sample_interval = %s, want 1s", cfg.SampleInterval.Std())
	}
	if cfg.Listen != "127.0.0.1:9900" {
		t.Errorf("listen = %s", cfg.Listen)
	}
	if cfg.Thresholds.CPU != 80 {
		t.Errorf("thresholds.cpu = %g, want 80", cfg.Thresholds.CPU)
	}
	// Untouched fields keep their defaults.
	if cfg.Thresholds.Temperature != 40 {
		t.Errorf("thresholds.temperature = %g, want default 40", cfg.Thresholds.Temperature)
	}
	if cfg.ForecastInterval.Std() != 30*time.Second {
		t.Errorf("forecast_interval = %s, want default 30s", cfg.ForecastInterval.Std())
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("sample_interval: soon\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "invalid duration") {
		t.Fatalf("expected duration parse error, got %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HOSTPULSE_INTERVAL", "500ms")
	t.Setenv("HOSTPULSE_LISTEN", "127.0.0.1:7000")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.SampleInterval.Std() != 500*time.Millisecond {
		t.Errorf("sample_interval = %s, want 500ms", cfg.SampleInterval.Std())
	}
	if cfg.Listen != "127.0.0.1:7000" {
		t.Errorf("listen = %s", cfg.Listen)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero interval", func(c *Config) { c.SampleInterval = 0 }},
		{"zero backoff", func(c *Config) { c.ErrorBackoff = 0 }},
		{"zero history", func(c *Config) { c.HistorySize = 0 }},
		{"window beyond history", func(c *Config) { c.HistoryWindow = c.HistorySize + 1 }},
		{"zero top processes", func(c *Config) { c.TopProcesses = 0 }},
		{"empty listen", func(c *Config) { c.Listen = "" }},
		{"cpu threshold too high", func(c *Config) { c.Thresholds.CPU = 120 }},
		{"negative temperature threshold", func(c *Config) { c.Thresholds.Temperature = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
