package logic

import "testing"

func TestNextWrapsAround(t *testing.T) {
	if got := StateFan2.Next(); got != StateOff {
		t.Errorf("Next(Fan2): got %v, want %v", got, StateOff)
	}
}

func TestNextIsCyclic(t *testing.T) {
	// Applying Next six times from any state returns to that state.
	for s := StateOff; s < NumStates; s++ {
		got := s
		for i := 0; i < NumStates; i++ {
			got = got.Next()
		}
		if got != s {
			t.Errorf("Next^6(%v): got %v, want %v", s, got, s)
		}
	}
}

func TestNextSequence(t *testing.T) {
	want := []State{StateOn, StateTemp20, StateTemp22, StateFan1, StateFan2, StateOff}
	s := StateOff
	for i, w := range want {
		s = s.Next()
		if s != w {
			t.Errorf("step %d: got %v, want %v", i, s, w)
		}
	}
}

func TestValid(t *testing.T) {
	for s := StateOff; s < NumStates; s++ {
		if !s.Valid() {
			t.Errorf("%v should be valid", s)
		}
	}
	if State(-1).Valid() {
		t.Error("State(-1) should be invalid")
	}
	if State(NumStates).Valid() {
		t.Error("State(NumStates) should be invalid")
	}
}

func TestTargetForKey(t *testing.T) {
	tests := []struct {
		key  byte
		want State
		ok   bool
	}{
		{'1', StateOn, true},
		{'2', StateOff, true},
		{'3', StateTemp22, true},
		{'4', StateTemp20, true},
		{'5', StateFan1, true},
		{'6', StateFan2, true},
		{'0', StateOff, false}, // help, not a target
		{'7', StateOff, false},
		{'x', StateOff, false},
		{'\n', StateOff, false},
	}

	for _, tt := range tests {
		got, ok := TargetForKey(tt.key)
		if ok != tt.ok {
			t.Errorf("TargetForKey(%q): ok=%v, want %v", tt.key, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("TargetForKey(%q): got %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestStateStrings(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{StateOff, "OFF"},
		{StateOn, "ON"},
		{StateTemp20, "TEMP 20C"},
		{StateTemp22, "TEMP 22C"},
		{StateFan1, "FAN LEVEL 1"},
		{StateFan2, "FAN LEVEL 2"},
		{State(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("String(%d): got %q, want %q", int(tt.s), got, tt.want)
		}
	}
}
