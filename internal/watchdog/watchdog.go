// Package watchdog provides the hardware liveness timer with hardware
// abstraction. The real implementation uses the Linux watchdog device.
// The fake implementation allows testing expiry against a simulated clock.
//
// The timer is never disabled once armed. Going dark (no Feed within the
// window) is the only sanctioned way to force a device reset, and the fault
// simulation paths use that deliberately.
package watchdog

import "time"

// DefaultWindow is the liveness window, sized for the slowest legitimate
// operation in the system: an IR transmission (~500ms) plus display and
// serial latency, with wide margin.
const DefaultWindow = 5000 * time.Millisecond

// Feeder is the minimal capability handed to code that only proves liveness.
type Feeder interface {
	// Feed resets the countdown to the full window. Idempotent, callable
	// at any time, including before Arm (a no-op then).
	Feed() error
}

// Timer is the full liveness timer contract.
type Timer interface {
	Feeder

	// Arm enables the timer with the given window. Called exactly once,
	// after all other subsystem bring-up and before the main loop. There
	// is no disarm.
	Arm(window time.Duration) error

	// CausedLastReset reports whether the immediately preceding reset was
	// produced by timer expiry rather than power-on or manual reset.
	// Queried once at boot.
	CausedLastReset() bool
}
