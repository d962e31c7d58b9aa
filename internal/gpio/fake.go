package gpio

import "errors"

// Sample represents a single button reading (already in logical form).
type Sample struct {
	Fault   bool // true = fault button pressed
	Advance bool // true = advance button pressed
}

// FakeButtons is a test double that returns scripted button samples.
type FakeButtons struct {
	// Samples contains scripted values to return.
	// Each call to Read() consumes the next sample.
	Samples []Sample

	// index tracks current position in Samples
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// NewFakeButtons creates a FakeButtons with the given samples.
func NewFakeButtons(samples []Sample) *FakeButtons {
	return &FakeButtons{Samples: samples}
}

// Read returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakeButtons) Read() (bool, bool, error) {
	if f.ReadError != nil {
		return false, false, f.ReadError
	}

	if len(f.Samples) == 0 {
		return false, false, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	return sample.Fault, sample.Advance, nil
}

// Close marks the buttons as closed.
func (f *FakeButtons) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the buttons to the beginning of samples.
func (f *FakeButtons) Reset() {
	f.index = 0
	f.Closed = false
}

// LedWrite records one Set call.
type LedWrite struct {
	Led Led
	On  bool
}

// FakeLeds records indicator writes for test assertions.
type FakeLeds struct {
	// Writes contains every Set call, in order.
	Writes []LedWrite

	// State holds the latest value per led.
	State map[Led]bool

	// SetError, if set, will be returned by Set.
	SetError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeLeds creates an empty FakeLeds.
func NewFakeLeds() *FakeLeds {
	return &FakeLeds{State: make(map[Led]bool)}
}

// Set records the write.
func (f *FakeLeds) Set(led Led, on bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.Writes = append(f.Writes, LedWrite{Led: led, On: on})
	f.State[led] = on
	return nil
}

// Close marks the leds as closed.
func (f *FakeLeds) Close() error {
	f.Closed = true
	return nil
}
