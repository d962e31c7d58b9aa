package logic

import (
	"testing"
	"time"
)

var t0 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestButtonFiresOnPressEdge(t *testing.T) {
	b := NewButton(300 * time.Millisecond)

	if b.Sample(false, t0) {
		t.Error("released level should not trigger")
	}
	if !b.Sample(true, t0.Add(10*time.Millisecond)) {
		t.Error("press edge should trigger")
	}
}

func TestButtonIgnoresHeldLevel(t *testing.T) {
	b := NewButton(300 * time.Millisecond)

	b.Sample(true, t0)
	// Holding the button produces no further edges, regardless of elapsed time.
	for i := 1; i <= 100; i++ {
		if b.Sample(true, t0.Add(time.Duration(i)*10*time.Millisecond)) {
			t.Fatalf("held level triggered at sample %d", i)
		}
	}
}

func TestButtonBounceWithinWindow(t *testing.T) {
	b := NewButton(300 * time.Millisecond)

	if !b.Sample(true, t0) {
		t.Fatal("first edge should trigger")
	}
	b.Sample(false, t0.Add(50*time.Millisecond))
	// Second edge 100ms after the first: inside the window, one trigger total.
	if b.Sample(true, t0.Add(100*time.Millisecond)) {
		t.Error("edge within debounce window should not trigger")
	}
}

func TestButtonSeparateEdgesTriggerIndependently(t *testing.T) {
	b := NewButton(300 * time.Millisecond)

	if !b.Sample(true, t0) {
		t.Fatal("first edge should trigger")
	}
	b.Sample(false, t0.Add(100*time.Millisecond))
	// Second edge exactly at the window boundary: counts.
	if !b.Sample(true, t0.Add(300*time.Millisecond)) {
		t.Error("edge at >= window should trigger")
	}
}

func TestButtonFirstEdgeAlwaysCounts(t *testing.T) {
	// A press in the first 300ms of process life must not be swallowed by an
	// uninitialized last-fire time.
	b := NewButton(300 * time.Millisecond)
	if !b.Sample(true, t0.Add(5*time.Millisecond)) {
		t.Error("first ever edge should trigger")
	}
}
