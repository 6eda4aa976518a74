package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != "5000" {
		t.Errorf("port: want 5000, got %q", cfg.HTTP.Port)
	}
	if cfg.Sampling.Interval != time.Second || cfg.CSV.Interval != time.Second {
		t.Errorf("intervals: got %v / %v", cfg.Sampling.Interval, cfg.CSV.Interval)
	}
	if cfg.Series.Capacity != 86400 {
		t.Errorf("capacity: want 86400, got %d", cfg.Series.Capacity)
	}
	if cfg.CSV.Path != "data_log.csv" || cfg.CSV.Append {
		t.Errorf("csv: got %+v", cfg.CSV)
	}
	if cfg.Device.Driver != DriverSimulated {
		t.Errorf("driver: got %q", cfg.Device.Driver)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yml := `
http:
  port: "8081"
device:
  driver: modbus
  url: tcp://10.0.0.7:502
  timeout: 500ms
sampling:
  interval: 2s
csv:
  path: /tmp/run.csv
  append: true
`
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte(yml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("HVAC_HTTP_PORT", "9000")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != "9000" {
		t.Errorf("env override: want 9000, got %q", cfg.HTTP.Port)
	}
	if cfg.Device.Driver != DriverModbus || cfg.Device.URL != "tcp://10.0.0.7:502" {
		t.Errorf("device: got %+v", cfg.Device)
	}
	if cfg.Device.Timeout != 500*time.Millisecond {
		t.Errorf("timeout: got %v", cfg.Device.Timeout)
	}
	if cfg.Sampling.Interval != 2*time.Second {
		t.Errorf("sampling: got %v", cfg.Sampling.Interval)
	}
	if !cfg.CSV.Append || cfg.CSV.Path != "/tmp/run.csv" {
		t.Errorf("csv: got %+v", cfg.CSV)
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Device:   DeviceConfig{Driver: DriverSimulated},
			Sampling: SamplingConfig{Interval: time.Second},
			Series:   SeriesConfig{Capacity: 10},
			CSV:      CSVConfig{Path: "x.csv", Interval: time.Second},
		}
	}

	cases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"ok", func(c *Config) {}, ""},
		{"unknown driver", func(c *Config) { c.Device.Driver = "usb" }, "unknown device.driver"},
		{"modbus without url", func(c *Config) { c.Device.Driver = DriverModbus }, "device.url"},
		{"zero interval", func(c *Config) { c.Sampling.Interval = 0 }, "sampling.interval"},
		{"zero capacity", func(c *Config) { c.Series.Capacity = 0 }, "series.capacity"},
		{"no csv path", func(c *Config) { c.CSV.Path = "" }, "csv.path"},
		{"mqtt without topic", func(c *Config) { c.MQTT = MQTTConfig{Enabled: true, Broker: "tcp://b:1883"} }, "mqtt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := base()
			tc.mutate(&c)
			err := c.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("want error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}
