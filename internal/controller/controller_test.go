package controller

import (
	"errors"
	"testing"
	"time"

	"github.com/sweeney/aircon-watchdog/internal/diag"
	"github.com/sweeney/aircon-watchdog/internal/display"
	"github.com/sweeney/aircon-watchdog/internal/ir"
	"github.com/sweeney/aircon-watchdog/internal/logic"
	"github.com/sweeney/aircon-watchdog/internal/watchdog"
)

// recorder captures the order of collaborator calls so tests can assert the
// protocol sequence, not just call counts.
type recorder struct {
	events []string
}

type recordingFeeder struct {
	r     *recorder
	feeds int
}

func (f *recordingFeeder) Feed() error {
	f.feeds++
	f.r.events = append(f.r.events, "feed")
	return nil
}

type recordingSender struct {
	r       *recorder
	inner   *ir.FakeSender
	onSend  func()
	sendErr error
}

func (s *recordingSender) Send(cmd ir.Command) error {
	s.r.events = append(s.r.events, "send:"+string(cmd))
	if s.onSend != nil {
		s.onSend()
	}
	s.inner.Send(cmd)
	return s.sendErr
}

func (s *recordingSender) Close() error { return s.inner.Close() }

type recordingStore struct {
	r     *recorder
	inner *diag.FakeStore
}

func (s *recordingStore) Read() (diag.FaultRecord, error) { return s.inner.Read() }

func (s *recordingStore) Write(rec diag.FaultRecord) error {
	s.r.events = append(s.r.events, "diag-write")
	return s.inner.Write(rec)
}

type harness struct {
	rec    *recorder
	feeder *recordingFeeder
	sender *recordingSender
	store  *recordingStore
	disp   *display.FakeDisplay
	ctrl   *Controller
	slept  []time.Duration
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{rec: &recorder{}, disp: display.NewFakeDisplay()}
	h.feeder = &recordingFeeder{r: h.rec}
	h.sender = &recordingSender{r: h.rec, inner: ir.NewFakeSender()}
	h.store = &recordingStore{r: h.rec, inner: diag.NewFakeStore()}
	h.ctrl = New(Deps{
		Feeder:  h.feeder,
		Store:   h.store,
		Sender:  h.sender,
		Display: h.disp,
		Settle:  100 * time.Millisecond,
		Sleep:   func(d time.Duration) { h.slept = append(h.slept, d) },
		Now:     func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) },
	})
	return h
}

func TestExecuteAppliedProtocolOrder(t *testing.T) {
	h := newHarness(t)

	out, err := h.ctrl.Execute(logic.StateOn)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != OutcomeApplied {
		t.Fatalf("outcome: got %v, want %v", out, OutcomeApplied)
	}

	// Feed, transmit, feed — in that order, exactly two feeds.
	want := []string{"feed", "send:on", "feed"}
	if len(h.rec.events) != len(want) {
		t.Fatalf("events: got %v, want %v", h.rec.events, want)
	}
	for i, w := range want {
		if h.rec.events[i] != w {
			t.Errorf("event %d: got %q, want %q", i, h.rec.events[i], w)
		}
	}

	if h.ctrl.Current() != logic.StateOn {
		t.Errorf("state: got %v, want %v", h.ctrl.Current(), logic.StateOn)
	}
	if h.ctrl.Pending() {
		t.Error("pending flag should be cleared after commit")
	}
	if len(h.slept) != 1 || h.slept[0] != 100*time.Millisecond {
		t.Errorf("settle delay: got %v, want one 100ms sleep", h.slept)
	}
}

func TestExecuteCommandsForEachValidState(t *testing.T) {
	tests := []struct {
		target logic.State
		want   ir.Command
	}{
		{logic.StateOff, ir.CmdOff},
		{logic.StateOn, ir.CmdOn},
		{logic.StateTemp20, ir.CmdCool20},
		{logic.StateFan1, ir.CmdFan1},
		{logic.StateFan2, ir.CmdFan2},
	}

	for _, tt := range tests {
		h := newHarness(t)
		out, err := h.ctrl.Execute(tt.target)
		if err != nil {
			t.Errorf("Execute(%v): %v", tt.target, err)
			continue
		}
		if out != OutcomeApplied {
			t.Errorf("Execute(%v): outcome %v", tt.target, out)
		}
		if len(h.sender.inner.Sent) != 1 || h.sender.inner.Sent[0] != tt.want {
			t.Errorf("Execute(%v): sent %v, want [%s]", tt.target, h.sender.inner.Sent, tt.want)
		}
		if h.ctrl.Current() != tt.target {
			t.Errorf("Execute(%v): state %v", tt.target, h.ctrl.Current())
		}
	}
}

func TestExecutePendingDuringTransmission(t *testing.T) {
	h := newHarness(t)

	var pendingAtSend bool
	h.sender.onSend = func() { pendingAtSend = h.ctrl.Pending() }

	if _, err := h.ctrl.Execute(logic.StateFan1); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !pendingAtSend {
		t.Error("pending flag should be set while the IR command is in flight")
	}
}

func TestExecuteRejectsInvalidTarget(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Execute(logic.StateOn)
	h.rec.events = nil

	out, err := h.ctrl.Execute(logic.State(42))
	if !errors.Is(err, ErrTransitionRejected) {
		t.Fatalf("err: got %v, want ErrTransitionRejected", err)
	}
	if out != OutcomeRejected {
		t.Errorf("outcome: got %v, want %v", out, OutcomeRejected)
	}
	if h.ctrl.Current() != logic.StateOn {
		t.Errorf("state must not change on rejection: got %v", h.ctrl.Current())
	}
	if h.ctrl.Pending() {
		t.Error("pending flag should be cleared on rejection")
	}

	// The pre-transmission feed happens before validation; nothing else.
	want := []string{"feed"}
	if len(h.rec.events) != 1 || h.rec.events[0] != want[0] {
		t.Errorf("events: got %v, want %v", h.rec.events, want)
	}
	if len(h.store.inner.Writes) != 0 {
		t.Error("rejection must not write diagnostics")
	}
}

func TestExecuteTemp22EntersFatalHalt(t *testing.T) {
	h := newHarness(t)
	h.store.inner.Record = diag.FaultRecord{ResetCount: 2, Code: diag.CodeTemp22Fault}

	out, err := h.ctrl.Execute(logic.StateTemp22)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != OutcomeFatalHalt {
		t.Fatalf("outcome: got %v, want %v", out, OutcomeFatalHalt)
	}

	// One feed before the fault branch, then the record write, then nothing.
	want := []string{"feed", "diag-write"}
	if len(h.rec.events) != len(want) {
		t.Fatalf("events: got %v, want %v", h.rec.events, want)
	}
	for i, w := range want {
		if h.rec.events[i] != w {
			t.Errorf("event %d: got %q, want %q", i, h.rec.events[i], w)
		}
	}

	got, _ := h.store.inner.Read()
	wantRec := diag.FaultRecord{ResetCount: 3, Code: diag.CodeTemp22Fault}
	if got != wantRec {
		t.Errorf("fault record: got %+v, want %+v", got, wantRec)
	}

	if len(h.sender.inner.Sent) != 0 {
		t.Errorf("no IR command may be sent for Temp22, sent %v", h.sender.inner.Sent)
	}
	if h.ctrl.Current() != logic.StateOff {
		t.Errorf("state must not commit in the fault branch: got %v", h.ctrl.Current())
	}
	if len(h.disp.Faults) != 1 || h.disp.Faults[0] != "CMD 22C FAILED" {
		t.Errorf("fault screen: got %v", h.disp.Faults)
	}
}

func TestEnterFaultManual(t *testing.T) {
	h := newHarness(t)

	out := h.ctrl.EnterFault(diag.CodeManualFault, "FAULT BUTTON")
	if out != OutcomeFatalHalt {
		t.Fatalf("outcome: got %v, want %v", out, OutcomeFatalHalt)
	}

	got, _ := h.store.inner.Read()
	want := diag.FaultRecord{ResetCount: 1, Code: diag.CodeManualFault}
	if got != want {
		t.Errorf("fault record: got %+v, want %+v", got, want)
	}
	if h.feeder.feeds != 0 {
		t.Errorf("EnterFault must not feed, got %d feeds", h.feeder.feeds)
	}
	if len(h.disp.Faults) != 1 || h.disp.Faults[0] != "FAULT BUTTON" {
		t.Errorf("fault screen: got %v", h.disp.Faults)
	}
}

func TestExecuteSendErrorIsNotRetried(t *testing.T) {
	h := newHarness(t)
	h.sender.sendErr = errors.New("lirc gone")

	out, err := h.ctrl.Execute(logic.StateFan2)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != OutcomeApplied {
		t.Errorf("outcome: got %v, want %v", out, OutcomeApplied)
	}
	// Exactly one send attempt, state still commits.
	if len(h.sender.inner.Sent) != 1 {
		t.Errorf("send attempts: got %d, want 1", len(h.sender.inner.Sent))
	}
	if h.ctrl.Current() != logic.StateFan2 {
		t.Errorf("state: got %v, want %v", h.ctrl.Current(), logic.StateFan2)
	}
}

func TestNoFeedAfterFaultWriteUnderSimulatedClock(t *testing.T) {
	// End-to-end liveness check with the fake timer: after the fault record
	// write there is no feed, so the simulated watchdog expires exactly one
	// window after the last pre-fault feed.
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := t0
	clock := func() time.Time { return now }

	timer := watchdog.NewFakeTimer(clock)
	timer.Arm(5 * time.Second)

	store := diag.NewFakeStore()
	store.Record = diag.FaultRecord{ResetCount: 2, Code: diag.CodeTemp22Fault}

	ctrl := New(Deps{
		Feeder:  timer,
		Store:   store,
		Sender:  ir.NewFakeSender(),
		Display: display.NewFakeDisplay(),
		Sleep:   func(time.Duration) {},
		Now:     clock,
	})

	// A normal command first: two feeds, applied.
	now = t0.Add(1 * time.Second)
	if out, err := ctrl.Execute(logic.StateOn); err != nil || out != OutcomeApplied {
		t.Fatalf("Execute(On): out=%v err=%v", out, err)
	}
	if len(timer.Feeds) != 2 {
		t.Fatalf("feeds after On: got %d, want 2", len(timer.Feeds))
	}

	// The fault command: one more feed before the branch, then silence.
	now = t0.Add(2 * time.Second)
	if out, _ := ctrl.Execute(logic.StateTemp22); out != OutcomeFatalHalt {
		t.Fatalf("Execute(Temp22): out=%v", out)
	}
	if len(timer.Feeds) != 3 {
		t.Fatalf("feeds after Temp22: got %d, want 3", len(timer.Feeds))
	}

	rec, _ := store.Read()
	if (rec != diag.FaultRecord{ResetCount: 3, Code: diag.CodeTemp22Fault}) {
		t.Fatalf("fault record: got %+v", rec)
	}

	// Forced reset exactly one window after the last feed.
	wantExpiry := t0.Add(2 * time.Second).Add(5 * time.Second)
	if got := timer.ExpiryTime(); !got.Equal(wantExpiry) {
		t.Errorf("expiry: got %v, want %v", got, wantExpiry)
	}
	if timer.Expired(wantExpiry.Add(-time.Millisecond)) {
		t.Error("expired too early")
	}
	if !timer.Expired(wantExpiry) {
		t.Error("not expired at the window boundary")
	}
}
