package logic

import "time"

// Button debounces a momentary push button sampled by polling.
// A trigger fires on a release→press edge, but edges closer together than
// the debounce window count as a single trigger (contact bounce).
type Button struct {
	window   time.Duration
	pressed  bool
	lastFire time.Time
	fired    bool
}

// NewButton creates a debouncer with the given window.
func NewButton(window time.Duration) *Button {
	return &Button{window: window}
}

// Sample feeds one polled level into the debouncer and reports whether a
// qualifying press occurred. The level is logical: true = pressed.
func (b *Button) Sample(pressed bool, now time.Time) bool {
	edge := pressed && !b.pressed
	b.pressed = pressed

	if !edge {
		return false
	}
	if b.fired && now.Sub(b.lastFire) < b.window {
		// Bounce: within the window of the previous trigger.
		return false
	}
	b.lastFire = now
	b.fired = true
	return true
}
