// Package gpio provides button input and indicator LED output with hardware
// abstraction. The real implementation uses Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Buttons reads the two push buttons.
type Buttons interface {
	// Read returns the logical pressed states of the fault and advance
	// buttons. The raw GPIO values are inverted: the buttons are wired
	// active-low with pull-ups, so raw 0 = pressed.
	Read() (fault, advance bool, err error)

	// Close releases GPIO resources.
	Close() error
}

// Led identifies one indicator line.
type Led int

const (
	// LedBoot blinks during boot and on bring-up failure.
	LedBoot Led = iota
	// LedHeartbeat toggles at a fixed period during normal operation.
	LedHeartbeat
	// LedFault blinks in the terminal fault branches.
	LedFault
)

// Leds drives the indicator lines. No protocol beyond on/off.
type Leds interface {
	Set(led Led, on bool) error
	Close() error
}

// Pin definitions (BCM numbering)
const (
	DefaultPinFaultBtn   = 5  // fault-injection button
	DefaultPinAdvanceBtn = 6  // state-advance button
	DefaultPinLedBoot    = 13 // red
	DefaultPinLedHeart   = 11 // green
	DefaultPinLedFault   = 12 // blue
)

// Pins selects the BCM lines used by RealIO.
type Pins struct {
	FaultBtn   int
	AdvanceBtn int
	LedBoot    int
	LedHeart   int
	LedFault   int
}

// DefaultPins returns the wiring of the reference board.
func DefaultPins() Pins {
	return Pins{
		FaultBtn:   DefaultPinFaultBtn,
		AdvanceBtn: DefaultPinAdvanceBtn,
		LedBoot:    DefaultPinLedBoot,
		LedHeart:   DefaultPinLedHeart,
		LedFault:   DefaultPinLedFault,
	}
}
