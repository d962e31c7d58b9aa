package display

import (
	"strings"
	"testing"
	"time"

	"github.com/sweeney/aircon-watchdog/internal/diag"
	"github.com/sweeney/aircon-watchdog/internal/logic"
)

func TestConsoleBootDiagWatchdogReset(t *testing.T) {
	var buf strings.Builder
	c := NewConsole(&buf)

	err := c.ShowBootDiag(BootDiag{
		WatchdogReset: true,
		ResetCount:    2,
		FaultCode:     diag.CodeTemp22Fault,
		Window:        5 * time.Second,
	})
	if err != nil {
		t.Fatalf("ShowBootDiag: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"RESET: WATCHDOG", "COUNT: 2", "FAULT: TEMP22", "WINDOW: 5000ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("boot diag missing %q:\n%s", want, out)
		}
	}
}

func TestConsoleBootDiagCleanReset(t *testing.T) {
	var buf strings.Builder
	c := NewConsole(&buf)

	if err := c.ShowBootDiag(BootDiag{Window: 5 * time.Second}); err != nil {
		t.Fatalf("ShowBootDiag: %v", err)
	}
	if !strings.Contains(buf.String(), "RESET: CLEAN") {
		t.Errorf("expected clean reset label:\n%s", buf.String())
	}
}

func TestConsoleStatusShowsState(t *testing.T) {
	var buf strings.Builder
	c := NewConsole(&buf)

	if err := c.ShowStatus(logic.StateFan1); err != nil {
		t.Fatalf("ShowStatus: %v", err)
	}
	if !strings.Contains(buf.String(), "AC: FAN LEVEL 1") {
		t.Errorf("status missing state label:\n%s", buf.String())
	}
}

func TestConsoleFaultShowsLabel(t *testing.T) {
	var buf strings.Builder
	c := NewConsole(&buf)

	if err := c.ShowFault("CMD 22C FAILED"); err != nil {
		t.Fatalf("ShowFault: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "CMD 22C FAILED") {
		t.Errorf("fault screen missing label:\n%s", out)
	}
	if !strings.Contains(out, "NO MORE WDT FEEDS") {
		t.Errorf("fault screen missing feed warning:\n%s", out)
	}
}

func TestConsoleTruncatesLongLines(t *testing.T) {
	var buf strings.Builder
	c := NewConsole(&buf)

	long := strings.Repeat("X", 60)
	if err := c.ShowFault(long); err != nil {
		t.Fatalf("ShowFault: %v", err)
	}
	for _, line := range strings.Split(buf.String(), "\n") {
		if len(line) > frameWidth+2 {
			t.Errorf("line exceeds frame: %q", line)
		}
	}
}
