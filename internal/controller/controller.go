// Package controller implements the watchdog-protected command state machine.
// Every transition is one IR command bracketed by liveness timer feeds; the
// two designed-in fault branches stop feeding so the hardware watchdog can
// prove the recovery path.
package controller

import (
	"errors"
	"log"
	"time"

	"github.com/sweeney/aircon-watchdog/internal/diag"
	"github.com/sweeney/aircon-watchdog/internal/display"
	"github.com/sweeney/aircon-watchdog/internal/ir"
	"github.com/sweeney/aircon-watchdog/internal/logic"
	"github.com/sweeney/aircon-watchdog/internal/status"
	"github.com/sweeney/aircon-watchdog/internal/watchdog"
)

// ErrTransitionRejected is returned for an unrecognized target state.
// No state mutation occurs and no diagnostics are written.
var ErrTransitionRejected = errors.New("transition rejected: unrecognized target state")

// Outcome reports how an Execute call ended.
type Outcome int

const (
	// OutcomeApplied: the IR command was dispatched and the state committed.
	OutcomeApplied Outcome = iota
	// OutcomeRejected: the target was invalid; nothing changed.
	OutcomeRejected
	// OutcomeFatalHalt: a terminal fault branch was entered. The fault
	// record is written and the liveness timer will never be fed again
	// this boot; the caller must stop driving the controller and wait for
	// the watchdog reset. Modeled as a value so tests can observe the
	// branch without an actual unbounded loop.
	OutcomeFatalHalt
)

// String returns the log label for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "APPLIED"
	case OutcomeRejected:
		return "REJECTED"
	case OutcomeFatalHalt:
		return "FATAL_HALT"
	default:
		return "UNKNOWN"
	}
}

// DefaultSettle is the post-transmission delay that guarantees the transport
// has physically finished before the next command is accepted.
const DefaultSettle = 100 * time.Millisecond

// Deps are the collaborators the controller drives. Tracker may be nil.
type Deps struct {
	Feeder  watchdog.Feeder
	Store   diag.Store
	Sender  ir.Sender
	Display display.Display
	Tracker *status.Tracker

	// Settle delay after transmission; DefaultSettle if zero.
	Settle time.Duration

	// Sleep and Now are injectable for tests; time.Sleep and time.Now
	// if nil.
	Sleep func(time.Duration)
	Now   func() time.Time
}

// Controller holds the appliance's logical state and executes transitions.
// Single-threaded by construction: only the scheduler loop calls it.
type Controller struct {
	deps Deps

	current   logic.State
	pending   bool
	lastStart time.Time
}

// New creates a Controller in the Off state, independent of any diagnostics
// history from previous boots.
func New(deps Deps) *Controller {
	if deps.Settle == 0 {
		deps.Settle = DefaultSettle
	}
	if deps.Sleep == nil {
		deps.Sleep = time.Sleep
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Controller{deps: deps}
}

// Current returns the committed appliance state.
func (c *Controller) Current() logic.State {
	return c.current
}

// Pending reports whether an IR transmission is in flight. Observability
// only; nothing may branch on it for correctness.
func (c *Controller) Pending() bool {
	return c.pending
}

// Execute runs one state transition under watchdog protection:
// feed, transmit, feed, settle, commit. The Temp22 target is a designed-in
// unrecoverable fault and ends in OutcomeFatalHalt instead.
func (c *Controller) Execute(target logic.State) (Outcome, error) {
	c.setPending(true)
	c.lastStart = c.deps.Now()

	// Feed before the transmission: the IR send is the longest-latency
	// operation in the system, so this maximizes margin against the window.
	c.feed()

	if target == logic.StateTemp22 {
		log.Printf("command 22C has no wire encoding: entering simulated fault")
		return c.EnterFault(diag.CodeTemp22Fault, "CMD 22C FAILED"), nil
	}

	cmd, ok := ir.CommandForState(target)
	if !ok {
		log.Printf("rejecting transition to invalid state %d", int(target))
		c.setPending(false)
		if c.deps.Tracker != nil {
			c.deps.Tracker.RecordRejected()
		}
		return OutcomeRejected, ErrTransitionRejected
	}

	log.Printf("ir command: %s", cmd)
	if err := c.deps.Sender.Send(cmd); err != nil {
		// Dispatch failures are not retried.
		log.Printf("ir send %s: %v", cmd, err)
	}

	// Post-transmission margin against residual I/O latency.
	c.feed()

	c.deps.Sleep(c.deps.Settle)

	c.setPending(false)
	c.current = target
	if c.deps.Tracker != nil {
		c.deps.Tracker.SetState(target)
		c.deps.Tracker.RecordApplied()
	}
	return OutcomeApplied, nil
}

// EnterFault writes the fault record and renders the fault screen, then
// returns OutcomeFatalHalt. From this point the liveness timer is never fed
// again; only its expiry ends the boot. Reachable from Execute (Temp22) and
// from the scheduler loop (fault button).
func (c *Controller) EnterFault(code diag.Code, label string) Outcome {
	rec, err := c.deps.Store.Read()
	if err != nil {
		log.Printf("read fault record: %v", err)
	}
	rec.ResetCount++
	rec.Code = code
	if err := c.deps.Store.Write(rec); err != nil {
		log.Printf("write fault record: %v", err)
	}

	log.Printf("fault %s recorded (reset count %d): no further feeds, watchdog will reset", code, rec.ResetCount)
	if err := c.deps.Display.ShowFault(label); err != nil {
		log.Printf("render fault screen: %v", err)
	}
	if c.deps.Tracker != nil {
		c.deps.Tracker.RecordFault(rec, label)
	}
	return OutcomeFatalHalt
}

func (c *Controller) setPending(p bool) {
	c.pending = p
	if c.deps.Tracker != nil {
		c.deps.Tracker.SetPending(p)
	}
}

func (c *Controller) feed() {
	if err := c.deps.Feeder.Feed(); err != nil {
		log.Printf("watchdog feed: %v", err)
	}
	if c.deps.Tracker != nil {
		c.deps.Tracker.RecordFeed()
	}
}
