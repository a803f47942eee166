// Package gpio provides GPIO line access with hardware abstraction.
// The real implementation uses Linux GPIO character device.
// The fake implementations allow testing without hardware.
package gpio

// LeadsReader reads the two leads-off detect lines of the ECG front-end.
type LeadsReader interface {
	// Read returns the raw logic levels of the LO+ and LO- lines.
	// The lines are pulled down: a line reads high only while the
	// front-end drives it to flag a detached electrode.
	// Returns (loPlus, loMinus, error).
	Read() (bool, bool, error)

	// Close releases GPIO resources.
	Close() error
}

// Indicator drives the sampling indicator LED.
type Indicator interface {
	// Toggle flips the LED and returns the new state (true = lit).
	Toggle() (bool, error)

	// Close releases GPIO resources.
	Close() error
}

// Pin definitions (BCM numbering). The roles mirror the wiring of the
// AD8232 breakout: one digital line per electrode fault, one LED.
const (
	PinLED     = 25 // sampling indicator
	PinLOPlus  = 12 // leads-off detect, positive electrode
	PinLOMinus = 13 // leads-off detect, negative electrode
)
