package stream

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// DefaultBaudRate matches the sampler's USB CDC configuration.
const DefaultBaudRate = 115200

// samplerUSBIDs are the vendor/product IDs the sampler board presents
// over USB CDC (Raspberry Pi Pico application and bootrom modes).
var samplerUSBIDs = []struct {
	vid string
	pid string
}{
	{"2E8A", "000A"},
	{"2E8A", "0003"},
}

// OpenPort opens a serial sample source at the sampler's baud rate.
func OpenPort(name string) (io.ReadCloser, error) {
	port, err := serial.Open(name, &serial.Mode{BaudRate: DefaultBaudRate})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", name, err)
	}
	return port, nil
}

// FindSamplerPort returns the name of the serial port whose USB IDs
// match the sampler.
func FindSamplerPort() (string, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return "", fmt.Errorf("list serial ports: %w", err)
	}

	for _, port := range ports {
		if !port.IsUSB {
			continue
		}
		if matchesSamplerID(port.VID, port.PID) {
			return port.Name, nil
		}
	}
	return "", errors.New("no sampler serial port found")
}

// Ports lists all serial port names, for error messages.
func Ports() ([]string, error) {
	names, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("list serial ports: %w", err)
	}
	return names, nil
}

func matchesSamplerID(vid, pid string) bool {
	for _, id := range samplerUSBIDs {
		if strings.EqualFold(vid, id.vid) && strings.EqualFold(pid, id.pid) {
			return true
		}
	}
	return false
}
