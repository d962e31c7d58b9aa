// Package display renders the three controller screens. The real
// implementation draws framed text to a terminal; the fake records render
// calls. Render failures are the caller's problem only to log — the core
// never reacts to them.
package display

import (
	"time"

	"github.com/sweeney/aircon-watchdog/internal/diag"
	"github.com/sweeney/aircon-watchdog/internal/logic"
)

// BootDiag is the content of the boot diagnostics screen.
type BootDiag struct {
	WatchdogReset bool
	ResetCount    uint32
	FaultCode     diag.Code
	Window        time.Duration
}

// Display renders controller screens.
type Display interface {
	// ShowBootDiag renders the boot diagnostics screen.
	ShowBootDiag(d BootDiag) error

	// ShowStatus renders the running status screen for the current state.
	ShowStatus(state logic.State) error

	// ShowFault renders the fault screen with a free-text label.
	ShowFault(label string) error
}
