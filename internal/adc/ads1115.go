package adc

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
	"periph.io/x/host/v3"
)

// vRef is the front-end supply voltage. The converter input never
// exceeds it, and readings are scaled against it.
const vRef = 3300 * physic.MilliVolt

// sampleRate is the conversion rate requested from the chip. 860 Hz is
// the fastest the ADS1115 offers and keeps a single conversion well
// inside the sampling period.
const sampleRate = 860 * physic.Hertz

// ADS1115 reads one channel of an ADS1115 converter over I2C.
type ADS1115 struct {
	bus i2c.BusCloser
	pin ads1x15.PinADC
}

// NewADS1115 opens the I2C bus and prepares the given input channel.
// An empty busName selects the first available bus.
func NewADS1115(busName string, addr uint16, channel int) (*ADS1115, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}

	ch, err := inputChannel(channel)
	if err != nil {
		return nil, err
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus: %w", err)
	}

	opts := ads1x15.DefaultOpts
	opts.I2cAddress = addr
	dev, err := ads1x15.NewADS1115(bus, &opts)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("init ads1115 at 0x%02x: %w", addr, err)
	}

	pin, err := dev.PinForChannel(ch, vRef, sampleRate, ads1x15.SaveEnergy)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("prepare adc channel %d: %w", channel, err)
	}

	return &ADS1115{bus: bus, pin: pin}, nil
}

// Read performs one conversion and scales it to [0, Max].
func (a *ADS1115) Read() (int16, error) {
	sample, err := a.pin.Read()
	if err != nil {
		return 0, fmt.Errorf("read adc: %w", err)
	}

	// Scale the measured potential against the supply. The front-end
	// output sits between the rails, but clamp anyway: gain headroom can
	// report slightly outside them.
	v := int64(sample.V) * Max / int64(vRef)
	if v < 0 {
		v = 0
	}
	if v > Max {
		v = Max
	}
	return int16(v), nil
}

// Close halts the conversion pin and releases the I2C bus.
func (a *ADS1115) Close() error {
	var errs []error

	if a.pin != nil {
		if err := a.pin.Halt(); err != nil {
			errs = append(errs, fmt.Errorf("halt adc pin: %w", err))
		}
	}
	if a.bus != nil {
		if err := a.bus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close i2c bus: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// inputChannel maps a wiring channel index to the single-ended input.
func inputChannel(n int) (ads1x15.Channel, error) {
	switch n {
	case 0:
		return ads1x15.Channel0, nil
	case 1:
		return ads1x15.Channel1, nil
	case 2:
		return ads1x15.Channel2, nil
	case 3:
		return ads1x15.Channel3, nil
	}
	return 0, fmt.Errorf("adc channel %d out of range 0-3", n)
}
