package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sweeney/aircon-watchdog/internal/gpio"
)

// options is the resolved daemon configuration: built-in defaults, then the
// optional YAML file, then command-line flags.
type options struct {
	Window   time.Duration
	Debounce time.Duration
	Settle   time.Duration
	Poll     time.Duration

	Broker   string
	HTTPAddr string

	LircSocket string
	LircRemote string

	FaultFile      string
	WatchdogDevice string

	Pins gpio.Pins
}

// fileConfig is the YAML config file shape. Durations are milliseconds.
// Zero values mean "not set" and leave the flag default in place.
type fileConfig struct {
	WindowMs   int64 `yaml:"window_ms"`
	DebounceMs int64 `yaml:"debounce_ms"`
	SettleMs   int64 `yaml:"settle_ms"`
	PollMs     int64 `yaml:"poll_ms"`

	Broker   string `yaml:"broker"`
	HTTPAddr string `yaml:"http_addr"`

	LircSocket string `yaml:"lirc_socket"`
	LircRemote string `yaml:"lirc_remote"`

	FaultFile      string `yaml:"fault_file"`
	WatchdogDevice string `yaml:"watchdog_device"`

	Pins struct {
		FaultButton   int `yaml:"fault_button"`
		AdvanceButton int `yaml:"advance_button"`
		LedBoot       int `yaml:"led_boot"`
		LedHeartbeat  int `yaml:"led_heartbeat"`
		LedFault      int `yaml:"led_fault"`
	} `yaml:"pins"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config: %w", err)
	}
	return fc, nil
}

// applyFileConfig overlays file values onto opts for every flag the user did
// not set on the command line. set holds the names of explicitly-set flags.
func applyFileConfig(opts *options, fc fileConfig, set map[string]bool) {
	ms := func(v int64) time.Duration { return time.Duration(v) * time.Millisecond }

	if !set["window"] && fc.WindowMs != 0 {
		opts.Window = ms(fc.WindowMs)
	}
	if !set["debounce"] && fc.DebounceMs != 0 {
		opts.Debounce = ms(fc.DebounceMs)
	}
	if !set["settle"] && fc.SettleMs != 0 {
		opts.Settle = ms(fc.SettleMs)
	}
	if !set["poll"] && fc.PollMs != 0 {
		opts.Poll = ms(fc.PollMs)
	}
	if !set["broker"] && fc.Broker != "" {
		opts.Broker = fc.Broker
	}
	if !set["http"] && fc.HTTPAddr != "" {
		opts.HTTPAddr = fc.HTTPAddr
	}
	if !set["lirc-socket"] && fc.LircSocket != "" {
		opts.LircSocket = fc.LircSocket
	}
	if !set["lirc-remote"] && fc.LircRemote != "" {
		opts.LircRemote = fc.LircRemote
	}
	if !set["fault-file"] && fc.FaultFile != "" {
		opts.FaultFile = fc.FaultFile
	}
	if !set["watchdog-device"] && fc.WatchdogDevice != "" {
		opts.WatchdogDevice = fc.WatchdogDevice
	}
	if !set["pin-fault"] && fc.Pins.FaultButton != 0 {
		opts.Pins.FaultBtn = fc.Pins.FaultButton
	}
	if !set["pin-advance"] && fc.Pins.AdvanceButton != 0 {
		opts.Pins.AdvanceBtn = fc.Pins.AdvanceButton
	}
	if !set["pin-led-boot"] && fc.Pins.LedBoot != 0 {
		opts.Pins.LedBoot = fc.Pins.LedBoot
	}
	if !set["pin-led-heart"] && fc.Pins.LedHeartbeat != 0 {
		opts.Pins.LedHeart = fc.Pins.LedHeartbeat
	}
	if !set["pin-led-fault"] && fc.Pins.LedFault != 0 {
		opts.Pins.LedFault = fc.Pins.LedFault
	}
}
