//go:build !linux

package watchdog

import (
	"errors"
	"time"
)

// Device is not available on non-Linux platforms.
type Device struct{}

// OpenDevice returns an error on non-Linux platforms.
func OpenDevice(path string) (*Device, error) {
	return nil, errors.New("watchdog: not supported on this platform (requires Linux)")
}

// Arm is not implemented on non-Linux platforms.
func (d *Device) Arm(window time.Duration) error {
	return errors.New("watchdog: not supported")
}

// Feed is not implemented on non-Linux platforms.
func (d *Device) Feed() error {
	return errors.New("watchdog: not supported")
}

// CausedLastReset is not implemented on non-Linux platforms.
func (d *Device) CausedLastReset() bool {
	return false
}
