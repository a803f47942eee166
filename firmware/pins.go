//go:build tinygo

package main

import "machine"

const (
	// Sampling configuration
	SAMPLE_INTERVAL_MS = 4 // one sample every 4 ms (250 Hz)

	// ADC configuration
	ADC_REFERENCE_MV = 3300 // Reference voltage in millivolts (3.3V)
	ADC_RESOLUTION   = 12   // Output resolution in bits (12-bit = 0-4095)

	// Emitted in place of a reading while either electrode is detached.
	NO_CONTACT = -1

	// Status LED (on-board LED of the Pico)
	PIN_LED = machine.GP25

	// Leads-off detect lines from the AD8232 front-end, pulled down:
	// a line reads high only while the front-end flags a detached
	// electrode.
	PIN_LO_PLUS  = machine.GP12
	PIN_LO_MINUS = machine.GP13

	// Analog output of the front-end (ADC input 2)
	PIN_ADC = machine.GP28

	// USB CDC needs time to enumerate before the banner is readable.
	STARTUP_SETTLE_MS = 2000
)
