//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealLeads reads the leads-off lines from actual hardware using the
// Linux GPIO character device.
type RealLeads struct {
	chip      *gpiocdev.Chip
	loPlusPin *gpiocdev.Line
	loMinus   *gpiocdev.Line
}

// NewRealLeads requests the two leads-off detect lines as inputs.
func NewRealLeads(pinLOPlus, pinLOMinus int) (*RealLeads, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	// Request lines as input with pull-down so a disconnected front-end
	// reads low (contact) rather than floating.
	loPlusLine, err := chip.RequestLine(pinLOPlus, gpiocdev.AsInput, gpiocdev.WithPullDown)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request LO+ pin %d: %w", pinLOPlus, err)
	}

	loMinusLine, err := chip.RequestLine(pinLOMinus, gpiocdev.AsInput, gpiocdev.WithPullDown)
	if err != nil {
		loPlusLine.Close()
		chip.Close()
		return nil, fmt.Errorf("request LO- pin %d: %w", pinLOMinus, err)
	}

	return &RealLeads{
		chip:      chip,
		loPlusPin: loPlusLine,
		loMinus:   loMinusLine,
	}, nil
}

// Read returns the raw levels of the LO+ and LO- lines.
func (r *RealLeads) Read() (bool, bool, error) {
	loPlusRaw, err := r.loPlusPin.Value()
	if err != nil {
		return false, false, fmt.Errorf("read LO+ pin: %w", err)
	}

	loMinusRaw, err := r.loMinus.Value()
	if err != nil {
		return false, false, fmt.Errorf("read LO- pin: %w", err)
	}

	return loPlusRaw != 0, loMinusRaw != 0, nil
}

// Close releases GPIO resources.
// Reconfigures pins to input with pull-down (matching Pi boot defaults)
// before closing to ensure clean state for system shutdown/reboot.
func (r *RealLeads) Close() error {
	var errs []error

	if r.loPlusPin != nil {
		if err := r.loPlusPin.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure LO+ pin: %w", err))
		}
		if err := r.loPlusPin.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close LO+ pin: %w", err))
		}
	}
	if r.loMinus != nil {
		if err := r.loMinus.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure LO- pin: %w", err))
		}
		if err := r.loMinus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close LO- pin: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealIndicator drives the indicator LED on actual hardware.
type RealIndicator struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
	on   bool
}

// NewRealIndicator requests the LED line as an output, initially low.
func NewRealIndicator(pin int) (*RealIndicator, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request LED pin %d: %w", pin, err)
	}

	return &RealIndicator{chip: chip, line: line}, nil
}

// Toggle flips the LED. The tracked state only advances when the write
// succeeds, so it stays in step with the physical line.
func (r *RealIndicator) Toggle() (bool, error) {
	next := !r.on
	level := 0
	if next {
		level = 1
	}
	if err := r.line.SetValue(level); err != nil {
		return r.on, fmt.Errorf("set LED pin: %w", err)
	}
	r.on = next
	return r.on, nil
}

// Close drives the LED low and releases GPIO resources.
func (r *RealIndicator) Close() error {
	var errs []error

	if r.line != nil {
		if err := r.line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear LED pin: %w", err))
		}
		if err := r.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close LED pin: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
