//go:build tinygo

//go:generate tinygo flash -target=pico

package main

import (
	"machine"
	"time"
)

var (
	adcIn machine.ADC

	ledOn bool

	// Timing
	nextTick time.Time
)

func main() {
	// Configure the LED as output, leads-off lines as pulled-down inputs
	PIN_LED.Configure(machine.PinConfig{Mode: machine.PinOutput})
	PIN_LO_PLUS.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	PIN_LO_MINUS.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})

	// Configure the ADC pin
	machine.InitADC()
	adcIn = machine.ADC{Pin: PIN_ADC}
	adcIn.Configure(machine.ADCConfig{
		Reference:  ADC_REFERENCE_MV,
		Resolution: ADC_RESOLUTION,
	})

	time.Sleep(STARTUP_SETTLE_MS * time.Millisecond)
	println("ECG sampler: one sample every", SAMPLE_INTERVAL_MS, "ms")

	nextTick = time.Now()

	// Main loop
	for {
		nextTick = nextTick.Add(SAMPLE_INTERVAL_MS * time.Millisecond)

		tick()

		// Sleep out the rest of the period. Stepping the deadline
		// instead of sleeping a fixed interval keeps the cadence from
		// drifting by the tick's own execution time.
		if d := time.Until(nextTick); d > 0 {
			time.Sleep(d)
		}
	}
}

// tick runs one sampling cycle: toggle the LED, check the leads-off
// lines, read the ADC only while both electrodes are seated, print one
// value.
func tick() {
	ledOn = !ledOn
	PIN_LED.Set(ledOn)

	value := NO_CONTACT
	if !PIN_LO_PLUS.Get() && !PIN_LO_MINUS.Get() {
		// machine.ADC.Get returns a left-justified 16-bit value
		// regardless of the configured resolution; shift back to
		// 12 bits so the wire range is [0, 4095].
		value = int(adcIn.Get() >> 4)
	}
	println(value)
}
