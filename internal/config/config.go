// Package config provides configuration loading for hostpulse.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hostpulse/hostpulse/internal/alert"
)

// Duration wraps time.Duration so YAML can carry values like "2s" or "1m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped standard duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config carries runtime options. Loaded once at startup and immutable for
// the process lifetime; there is no hot reload.
type Config struct {
	// SampleInterval is the fast sampling tick period.
	SampleInterval Duration `yaml:"sample_interval"`
	// ErrorBackoff is the extra sleep after a failed tick.
	ErrorBackoff Duration `yaml:"error_backoff"`
	// HardwareRefresh is the slow cadence for GPU and temperature probes.
	HardwareRefresh Duration `yaml:"hardware_refresh"`
	// ForecastInterval is the forecast engine cadence.
	ForecastInterval Duration `yaml:"forecast_interval"`
	// HistorySize is the per-metric rolling history capacity.
	HistorySize int `yaml:"history_size"`
	// HistoryWindow is how many trailing samples each broadcast carries.
	HistoryWindow int `yaml:"history_window"`
	// TopProcesses is the top-N process list length per snapshot.
	TopProcesses int `yaml:"top_processes"`
	// Listen is the HTTP pull API address.
	Listen string `yaml:"listen"`
	// Thresholds are the alert limits.
	Thresholds alert.Thresholds `yaml:"thresholds"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		SampleInterval:   Duration(2 * time.Second),
		ErrorBackoff:     Duration(5 * time.Second),
		HardwareRefresh:  Duration(10 * time.Second),
		ForecastInterval: Duration(30 * time.Second),
		HistorySize:      60,
		HistoryWindow:    20,
		TopProcesses:     5,
		Listen:           "0.0.0.0:8800",
		Thresholds: alert.Thresholds{
			CPU:         95,
			GPU:         95,
			Battery:     10,
			Temperature: 40,
		},
	}
}

// Load reads a YAML file merged over defaults, then applies environment
// overrides. A missing file yields defaults; a malformed or invalid one is
// an error and the process must not start.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv("HOSTPULSE_INTERVAL"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("HOSTPULSE_INTERVAL: %w", err)
		}
		cfg.SampleInterval = Duration(parsed)
	}
	if v := os.Getenv("HOSTPULSE_LISTEN"); v != "" {
		cfg.Listen = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for logical consistency.
func (c *Config) Validate() error {
	if c.SampleInterval.Std() <= 0 {
		return fmt.Errorf("sample_interval must be positive, got %s", c.SampleInterval.Std())
	}
	if c.ErrorBackoff.Std() <= 0 {
		return fmt.Errorf("error_backoff must be positive, got %s", c.ErrorBackoff.Std())
	}
	if c.HardwareRefresh.Std() <= 0 {
		return fmt.Errorf("hardware_refresh must be positive, got %s", c.HardwareRefresh.Std())
	}
	if c.ForecastInterval.Std() <= 0 {
		return fmt.Errorf("forecast_interval must be positive, got %s", c.ForecastInterval.Std())
	}
	if c.HistorySize < 1 {
		return fmt.Errorf("history_size must be at least 1, got %d", c.HistorySize)
	}
	if c.HistoryWindow < 1 || c.HistoryWindow > c.HistorySize {
		return fmt.Errorf("history_window must be in 1..history_size, got %d", c.HistoryWindow)
	}
	if c.TopProcesses < 1 {
		return fmt.Errorf("top_processes must be at least 1, got %d", c.TopProcesses)
	}
	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.Thresholds.CPU <= 0 || c.Thresholds.CPU > 100 {
		return fmt.Errorf("thresholds.cpu must be in (0,100], got %g", c.Thresholds.CPU)
	}
	if c.Thresholds.GPU <= 0 || c.Thresholds.GPU > 100 {
		return fmt.Errorf("thresholds.gpu must be in (0,100], got %g", c.Thresholds.GPU)
	}
	if c.Thresholds.Battery <= 0 || c.Thresholds.Battery > 100 {
		return fmt.Errorf("thresholds.battery must be in (0,100], got %g", c.Thresholds.Battery)
	}
	if c.Thresholds.Temperature <= 0 {
		return fmt.Errorf("thresholds.temperature must be positive, got %g", c.Thresholds.Temperature)
	}
	return nil
}
