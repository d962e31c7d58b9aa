package watchdog

import "time"

// FakeTimer is a test double that records feeds against an injected clock so
// tests can assert the temporal liveness invariant without real hardware.
type FakeTimer struct {
	// Clock supplies timestamps for Arm and Feed. Must be set before use.
	Clock func() time.Time

	// WasReset controls what CausedLastReset returns.
	WasReset bool

	// FeedError, if set, will be returned by Feed.
	FeedError error

	// Armed and Window reflect the Arm call.
	Armed  bool
	Window time.Duration

	// Feeds contains the timestamp of every Feed call after Arm.
	// Feeds before Arm are counted in PreArmFeeds but not timed.
	Feeds       []time.Time
	PreArmFeeds int

	armedAt time.Time
}

// NewFakeTimer creates a FakeTimer driven by the given clock.
func NewFakeTimer(clock func() time.Time) *FakeTimer {
	return &FakeTimer{Clock: clock}
}

// Arm records the window and the arming time.
func (f *FakeTimer) Arm(window time.Duration) error {
	f.Armed = true
	f.Window = window
	f.armedAt = f.Clock()
	return nil
}

// Feed records a feed timestamp.
func (f *FakeTimer) Feed() error {
	if f.FeedError != nil {
		return f.FeedError
	}
	if !f.Armed {
		f.PreArmFeeds++
		return nil
	}
	f.Feeds = append(f.Feeds, f.Clock())
	return nil
}

// CausedLastReset returns the scripted reset cause.
func (f *FakeTimer) CausedLastReset() bool {
	return f.WasReset
}

// LastFed returns the time of the most recent feed, or the arming time if
// the timer has never been fed.
func (f *FakeTimer) LastFed() time.Time {
	if len(f.Feeds) == 0 {
		return f.armedAt
	}
	return f.Feeds[len(f.Feeds)-1]
}

// Expired reports whether the simulated countdown has run out at the given
// time: armed, and a full window elapsed since the last feed (or Arm).
func (f *FakeTimer) Expired(now time.Time) bool {
	if !f.Armed {
		return false
	}
	return now.Sub(f.LastFed()) >= f.Window
}

// ExpiryTime returns the instant the simulated reset would fire if no
// further feed arrives.
func (f *FakeTimer) ExpiryTime() time.Time {
	return f.LastFed().Add(f.Window)
}

// Reset clears recorded feeds, keeping the clock and scripted fields.
func (f *FakeTimer) Reset() {
	f.Armed = false
	f.Window = 0
	f.Feeds = nil
	f.PreArmFeeds = 0
	f.armedAt = time.Time{}
}
