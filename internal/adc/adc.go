// Package adc provides single-channel analog sampling with hardware
// abstraction. The real implementation reads an ADS1115 converter over
// I2C. The fake implementation allows testing without hardware.
package adc

// Max is the highest value a reading can take. Samples are scaled to
// 12-bit resolution, matching the [0, 4095] range of the wire format.
const Max = 4095

// Reader reads the ECG analog channel.
type Reader interface {
	// Read samples the channel once and returns a value in [0, Max].
	Read() (int16, error)

	// Close releases the converter.
	Close() error
}

// Default ADS1115 wiring: ADDR pin grounded, signal on AIN2.
const (
	DefaultAddress uint16 = 0x48
	DefaultChannel        = 2
)
