//go:build !linux

package gpio

import "errors"

// RealLeads is not available on non-Linux platforms.
type RealLeads struct{}

// NewRealLeads returns an error on non-Linux platforms.
func NewRealLeads(pinLOPlus, pinLOMinus int) (*RealLeads, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Read is not implemented on non-Linux platforms.
func (r *RealLeads) Read() (bool, bool, error) {
	return false, false, errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (r *RealLeads) Close() error {
	return nil
}

// RealIndicator is not available on non-Linux platforms.
type RealIndicator struct{}

// NewRealIndicator returns an error on non-Linux platforms.
func NewRealIndicator(pin int) (*RealIndicator, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Toggle is not implemented on non-Linux platforms.
func (r *RealIndicator) Toggle() (bool, error) {
	return false, errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (r *RealIndicator) Close() error {
	return nil
}
