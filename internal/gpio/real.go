//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealIO drives actual hardware using the Linux GPIO character device.
// It implements both Buttons and Leds.
type RealIO struct {
	chip    *gpiocdev.Chip
	faultIn *gpiocdev.Line
	advIn   *gpiocdev.Line
	leds    map[Led]*gpiocdev.Line
}

// NewRealIO requests the button lines as pulled-up inputs and the LED lines
// as outputs driven low.
func NewRealIO(pins Pins) (*RealIO, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	io := &RealIO{chip: chip, leds: make(map[Led]*gpiocdev.Line)}

	io.faultIn, err = chip.RequestLine(pins.FaultBtn, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		io.Close()
		return nil, fmt.Errorf("request fault button pin %d: %w", pins.FaultBtn, err)
	}
	io.advIn, err = chip.RequestLine(pins.AdvanceBtn, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		io.Close()
		return nil, fmt.Errorf("request advance button pin %d: %w", pins.AdvanceBtn, err)
	}

	ledPins := map[Led]int{
		LedBoot:      pins.LedBoot,
		LedHeartbeat: pins.LedHeart,
		LedFault:     pins.LedFault,
	}
	for led, pin := range ledPins {
		line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
		if err != nil {
			io.Close()
			return nil, fmt.Errorf("request led pin %d: %w", pin, err)
		}
		io.leds[led] = line
	}

	return io, nil
}

// Read returns the logical pressed states of the buttons.
// Inverts raw GPIO: the buttons pull the line low when pressed.
func (io *RealIO) Read() (bool, bool, error) {
	faultRaw, err := io.faultIn.Value()
	if err != nil {
		return false, false, fmt.Errorf("read fault button: %w", err)
	}
	advRaw, err := io.advIn.Value()
	if err != nil {
		return false, false, fmt.Errorf("read advance button: %w", err)
	}
	return faultRaw == 0, advRaw == 0, nil
}

// Set drives one indicator line.
func (io *RealIO) Set(led Led, on bool) error {
	line, ok := io.leds[led]
	if !ok {
		return fmt.Errorf("unknown led %d", led)
	}
	v := 0
	if on {
		v = 1
	}
	if err := line.SetValue(v); err != nil {
		return fmt.Errorf("set led %d: %w", led, err)
	}
	return nil
}

// Close releases all requested lines and the chip. LEDs are driven low first
// so indicators do not stay lit across a restart.
func (io *RealIO) Close() error {
	var errs []error
	for led, line := range io.leds {
		if err := line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear led %d: %w", led, err))
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close led %d: %w", led, err))
		}
	}
	if io.faultIn != nil {
		if err := io.faultIn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close fault button: %w", err))
		}
	}
	if io.advIn != nil {
		if err := io.advIn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close advance button: %w", err))
		}
	}
	if io.chip != nil {
		if err := io.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
