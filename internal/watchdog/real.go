//go:build linux

package watchdog

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/sys/unix"
)

// DefaultDevice is the Linux watchdog device node.
const DefaultDevice = "/dev/watchdog"

// defaultBootStatusPath exposes the boot status without opening the device.
// Opening /dev/watchdog starts the countdown immediately, so the reset cause
// has to come from sysfs to keep Arm the single activation point.
const defaultBootStatusPath = "/sys/class/watchdog/watchdog0/bootstatus"

// Device drives a Linux hardware watchdog.
type Device struct {
	path      string
	fd        int
	armed     bool
	lastReset bool
}

// OpenDevice prepares a watchdog for the given device node. The device itself
// is not opened (and the countdown not started) until Arm. The reset cause is
// read from sysfs here so it is available for the boot report.
func OpenDevice(path string) (*Device, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("watchdog device: %w", err)
	}
	return &Device{
		path:      path,
		fd:        -1,
		lastReset: readBootStatus(defaultBootStatusPath),
	}, nil
}

// readBootStatus parses the sysfs bootstatus flags. WDIOF_CARDRESET set means
// the last reboot was caused by the watchdog. Unreadable or unparsable status
// reads as a clean boot.
func readBootStatus(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	status, err := strconv.Atoi(string(bytes.TrimSpace(data)))
	if err != nil {
		return false
	}
	return status&unix.WDIOF_CARDRESET != 0
}

// Arm opens the device and sets the timeout, starting the countdown.
// The window is rounded up to whole seconds (kernel granularity).
func (d *Device) Arm(window time.Duration) error {
	if d.armed {
		return fmt.Errorf("watchdog already armed")
	}

	fd, err := unix.Open(d.path, unix.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", d.path, err)
	}

	secs := int(window / time.Second)
	if window%time.Second != 0 {
		secs++
	}
	if err := unix.IoctlSetPointerInt(fd, unix.WDIOC_SETTIMEOUT, secs); err != nil {
		unix.Close(fd)
		return fmt.Errorf("set watchdog timeout: %w", err)
	}

	d.fd = fd
	d.armed = true
	return nil
}

// Feed resets the countdown. A no-op before Arm.
// The device is never magic-closed, so a missed Feed really resets the box.
func (d *Device) Feed() error {
	if !d.armed {
		return nil
	}
	if err := unix.IoctlWatchdogKeepalive(d.fd); err != nil {
		return fmt.Errorf("watchdog keepalive: %w", err)
	}
	return nil
}

// CausedLastReset reports whether the previous reboot was a watchdog reset.
func (d *Device) CausedLastReset() bool {
	return d.lastReset
}
