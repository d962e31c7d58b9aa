// Package ir provides the infrared command transport with abstraction for
// testing. The real implementation talks to a lircd daemon, which owns the
// actual waveform; this package only names the logical commands.
package ir

import "github.com/sweeney/aircon-watchdog/internal/logic"

// Command is one logical IR command understood by the air conditioner.
type Command string

const (
	CmdOff    Command = "off"
	CmdOn     Command = "on"
	CmdCool20 Command = "cool-20"
	CmdFan1   Command = "fan-1"
	CmdFan2   Command = "fan-2"
)

// Sender transmits IR commands.
type Sender interface {
	// Send transmits a single command. Failures are reported but the
	// caller does not retry.
	Send(cmd Command) error

	// Close releases transport resources.
	Close() error
}

// CommandForState maps a target state to its IR command. There is no
// command for Temp22 — the remote protocol has no 22C code, which is why
// that target is modeled as always faulting upstream.
func CommandForState(s logic.State) (Command, bool) {
	switch s {
	case logic.StateOff:
		return CmdOff, true
	case logic.StateOn:
		return CmdOn, true
	case logic.StateTemp20:
		return CmdCool20, true
	case logic.StateFan1:
		return CmdFan1, true
	case logic.StateFan2:
		return CmdFan2, true
	default:
		return "", false
	}
}
