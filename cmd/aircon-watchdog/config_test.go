package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sweeney/aircon-watchdog/internal/gpio"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFileConfig(t *testing.T) {
	path := writeConfig(t, `
window_ms: 8000
debounce_ms: 250
broker: tcp://10.0.0.5:1883
lirc_remote: samsung-ac
pins:
  fault_button: 17
  advance_button: 27
`)

	fc, err := loadFileConfig(path)
	if err != nil {
		t.Fatalf("loadFileConfig: %v", err)
	}
	if fc.WindowMs != 8000 {
		t.Errorf("window_ms: got %d, want 8000", fc.WindowMs)
	}
	if fc.DebounceMs != 250 {
		t.Errorf("debounce_ms: got %d, want 250", fc.DebounceMs)
	}
	if fc.Broker != "tcp://10.0.0.5:1883" {
		t.Errorf("broker: got %q", fc.Broker)
	}
	if fc.LircRemote != "samsung-ac" {
		t.Errorf("lirc_remote: got %q", fc.LircRemote)
	}
	if fc.Pins.FaultButton != 17 || fc.Pins.AdvanceButton != 27 {
		t.Errorf("pins: got %+v", fc.Pins)
	}
}

func TestLoadFileConfigMissing(t *testing.T) {
	if _, err := loadFileConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadFileConfigMalformed(t *testing.T) {
	path := writeConfig(t, "window_ms: [not a number\n")
	if _, err := loadFileConfig(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestApplyFileConfigOverlay(t *testing.T) {
	opts := options{
		Window:   5 * time.Second,
		Debounce: defaultDebounce,
		Broker:   "tcp://192.168.1.200:1883",
		Pins:     gpio.DefaultPins(),
	}
	fc := fileConfig{
		WindowMs:   8000,
		DebounceMs: 250,
		Broker:     "tcp://10.0.0.5:1883",
	}
	fc.Pins.FaultButton = 17

	applyFileConfig(&opts, fc, map[string]bool{})

	if opts.Window != 8*time.Second {
		t.Errorf("window: got %v, want 8s", opts.Window)
	}
	if opts.Debounce != 250*time.Millisecond {
		t.Errorf("debounce: got %v, want 250ms", opts.Debounce)
	}
	if opts.Broker != "tcp://10.0.0.5:1883" {
		t.Errorf("broker: got %q", opts.Broker)
	}
	if opts.Pins.FaultBtn != 17 {
		t.Errorf("fault pin: got %d, want 17", opts.Pins.FaultBtn)
	}
	// Values absent from the file keep their defaults.
	if opts.Pins.AdvanceBtn != gpio.DefaultPinAdvanceBtn {
		t.Errorf("advance pin: got %d, want default", opts.Pins.AdvanceBtn)
	}
}

func TestApplyFileConfigFlagsWin(t *testing.T) {
	opts := options{
		Window: 6 * time.Second,
		Broker: "tcp://flag-broker:1883",
	}
	fc := fileConfig{
		WindowMs: 8000,
		Broker:   "tcp://file-broker:1883",
	}

	// window and broker were set on the command line.
	applyFileConfig(&opts, fc, map[string]bool{"window": true, "broker": true})

	if opts.Window != 6*time.Second {
		t.Errorf("window: got %v, want flag value 6s", opts.Window)
	}
	if opts.Broker != "tcp://flag-broker:1883" {
		t.Errorf("broker: got %q, want flag value", opts.Broker)
	}
}
