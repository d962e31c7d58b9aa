package display

import "github.com/sweeney/aircon-watchdog/internal/logic"

// FakeDisplay records render calls for test assertions.
type FakeDisplay struct {
	// BootDiags contains every boot diagnostics render.
	BootDiags []BootDiag

	// Statuses contains every state passed to ShowStatus, in order.
	Statuses []logic.State

	// Faults contains every fault label rendered, in order.
	Faults []string

	// RenderError, if set, will be returned by all render methods.
	RenderError error
}

// NewFakeDisplay creates an empty FakeDisplay.
func NewFakeDisplay() *FakeDisplay {
	return &FakeDisplay{}
}

// ShowBootDiag records the boot diagnostics.
func (f *FakeDisplay) ShowBootDiag(d BootDiag) error {
	if f.RenderError != nil {
		return f.RenderError
	}
	f.BootDiags = append(f.BootDiags, d)
	return nil
}

// ShowStatus records the rendered state.
func (f *FakeDisplay) ShowStatus(state logic.State) error {
	if f.RenderError != nil {
		return f.RenderError
	}
	f.Statuses = append(f.Statuses, state)
	return nil
}

// ShowFault records the fault label.
func (f *FakeDisplay) ShowFault(label string) error {
	if f.RenderError != nil {
		return f.RenderError
	}
	f.Faults = append(f.Faults, label)
	return nil
}

// Reset clears recorded renders.
func (f *FakeDisplay) Reset() {
	f.BootDiags = nil
	f.Statuses = nil
	f.Faults = nil
	f.RenderError = nil
}
