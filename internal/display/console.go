package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/sweeney/aircon-watchdog/internal/logic"
)

const frameWidth = 24

// Console renders screens as framed text blocks on a terminal, one block per
// render, mirroring the layout of the original OLED panel.
type Console struct {
	w io.Writer
}

// NewConsole creates a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func frame(lines []string) string {
	var b strings.Builder
	b.WriteString("+" + strings.Repeat("-", frameWidth) + "+\n")
	for _, line := range lines {
		if len(line) > frameWidth {
			line = line[:frameWidth]
		}
		fmt.Fprintf(&b, "|%-*s|\n", frameWidth, line)
	}
	b.WriteString("+" + strings.Repeat("-", frameWidth) + "+\n")
	return b.String()
}

// ShowBootDiag renders the boot diagnostics screen.
func (c *Console) ShowBootDiag(d BootDiag) error {
	cause := "RESET: CLEAN"
	if d.WatchdogReset {
		cause = "RESET: WATCHDOG"
	}
	_, err := io.WriteString(c.w, frame([]string{
		"IR + WDT SYSTEM",
		cause,
		fmt.Sprintf("COUNT: %d", d.ResetCount),
		fmt.Sprintf("FAULT: %s", d.FaultCode),
		fmt.Sprintf("WINDOW: %dms", d.Window.Milliseconds()),
	}))
	return err
}

// ShowStatus renders the running status screen.
func (c *Console) ShowStatus(state logic.State) error {
	_, err := io.WriteString(c.w, frame([]string{
		"AC CONTROL + WDT",
		"AC: " + state.String(),
		"BTN A = FAULT",
		"BTN B = NEXT CMD",
		"WDT: ARMED",
	}))
	return err
}

// ShowFault renders the fault screen.
func (c *Console) ShowFault(label string) error {
	_, err := io.WriteString(c.w, frame([]string{
		"FAULT INDUCED",
		label,
		"NO MORE WDT FEEDS",
		"RESET IN ~5s...",
	}))
	return err
}
