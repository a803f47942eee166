// Package leads decides electrode contact from the AD8232 leads-off
// detect lines.
package leads

import (
	"fmt"

	"github.com/RouterInfoMan/ecg-pm/internal/gpio"
)

// Monitor reports whether both electrodes are seated.
type Monitor struct {
	lines gpio.LeadsReader
}

// NewMonitor creates a Monitor reading the given lines.
func NewMonitor(lines gpio.LeadsReader) *Monitor {
	return &Monitor{lines: lines}
}

// Contact reports whether both electrodes are making contact.
// A differential measurement needs both electrodes seated, so either
// line reading high invalidates the sample.
func (m *Monitor) Contact() (bool, error) {
	loPlus, loMinus, err := m.lines.Read()
	if err != nil {
		return false, fmt.Errorf("read leads-off lines: %w", err)
	}
	return !loPlus && !loMinus, nil
}
