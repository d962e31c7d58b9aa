// Package status provides a thread-safe status tracker for the controller
// daemon. It is read by the HTTP handlers and the Prometheus collector.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/aircon-watchdog/internal/diag"
	"github.com/sweeney/aircon-watchdog/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	WindowMs   int64
	DebounceMs int64
	PollMs     int64
	SettleMs   int64
	Broker     string
	HTTPAddr   string
	LircRemote string
}

// Counters tracks command outcomes and watchdog feeds since startup.
type Counters struct {
	Applied  int
	Rejected int
	Faults   int
	Feeds    int
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	State         logic.State
	Pending       bool
	Armed         bool
	Halted        bool
	FaultLabel    string
	WatchdogReset bool
	Fault         diag.FaultRecord
	Counters      Counters
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// SetBoot records the boot report: reset cause and the fault record read
// from the diagnostics store. Called once before the loop starts.
func (t *Tracker) SetBoot(watchdogReset bool, rec diag.FaultRecord) {
	t.mu.Lock()
	t.snap.WatchdogReset = watchdogReset
	t.snap.Fault = rec
	t.mu.Unlock()
}

// SetArmed records that the liveness timer has been armed.
func (t *Tracker) SetArmed(armed bool) {
	t.mu.Lock()
	t.snap.Armed = armed
	t.mu.Unlock()
}

// SetState sets the current appliance state.
func (t *Tracker) SetState(s logic.State) {
	t.mu.Lock()
	t.snap.State = s
	t.mu.Unlock()
}

// SetPending sets the in-flight transmission flag. Observability only.
func (t *Tracker) SetPending(p bool) {
	t.mu.Lock()
	t.snap.Pending = p
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// RecordApplied counts a successfully applied transition.
func (t *Tracker) RecordApplied() {
	t.mu.Lock()
	t.snap.Counters.Applied++
	t.mu.Unlock()
}

// RecordRejected counts a rejected transition.
func (t *Tracker) RecordRejected() {
	t.mu.Lock()
	t.snap.Counters.Rejected++
	t.mu.Unlock()
}

// RecordFeed counts one liveness timer feed.
func (t *Tracker) RecordFeed() {
	t.mu.Lock()
	t.snap.Counters.Feeds++
	t.mu.Unlock()
}

// RecordFault marks the terminal fault branch: the new fault record and its
// display label, with the fault counter bumped. After this the daemon is
// only waiting for the watchdog.
func (t *Tracker) RecordFault(rec diag.FaultRecord, label string) {
	t.mu.Lock()
	t.snap.Halted = true
	t.snap.Fault = rec
	t.snap.FaultLabel = label
	t.snap.Counters.Faults++
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
