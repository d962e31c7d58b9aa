// Package logic contains pure domain logic for the air conditioner controller.
// This package has NO external dependencies (no GPIO, IR, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

// State represents the logical state of the air conditioner.
type State int

const (
	StateOff State = iota
	StateOn
	StateTemp20
	StateTemp22
	StateFan1
	StateFan2

	// NumStates is the cardinality of the enumeration, used for cyclic advance.
	NumStates = 6
)

// String returns the display label for the state.
func (s State) String() string {
	switch s {
	case StateOff:
		return "OFF"
	case StateOn:
		return "ON"
	case StateTemp20:
		return "TEMP 20C"
	case StateTemp22:
		return "TEMP 22C"
	case StateFan1:
		return "FAN LEVEL 1"
	case StateFan2:
		return "FAN LEVEL 2"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether s is one of the six defined states.
func (s State) Valid() bool {
	return s >= StateOff && s < NumStates
}

// Next returns the cyclic successor: Off → On → Temp20 → Temp22 → Fan1 →
// Fan2 → Off. Temp22 is deliberately included, so a manual advance can walk
// into the simulated fault just like a serial command can.
func (s State) Next() State {
	return (s + 1) % NumStates
}

// KeyHelp is the serial key that prints the command menu instead of
// selecting a state.
const KeyHelp = '0'

// TargetForKey maps a serial input character to a target state.
// Returns false for KeyHelp and for any unrecognized character.
func TargetForKey(key byte) (State, bool) {
	switch key {
	case '1':
		return StateOn, true
	case '2':
		return StateOff, true
	case '3':
		return StateTemp22, true
	case '4':
		return StateTemp20, true
	case '5':
		return StateFan1, true
	case '6':
		return StateFan2, true
	default:
		return StateOff, false
	}
}
