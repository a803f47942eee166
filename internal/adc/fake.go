package adc

import "errors"

// FakeReader is a test double that returns scripted readings.
type FakeReader struct {
	// Values contains scripted readings to return.
	// Each call to Read() consumes the next value.
	Values []int16

	// index tracks current position in Values
	index int

	// Reads counts calls to Read, including failed ones.
	Reads int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// NewFakeReader creates a FakeReader with the given values.
func NewFakeReader(values []int16) *FakeReader {
	return &FakeReader{Values: values}
}

// Read returns the next scripted value.
// If values are exhausted, returns the last value repeatedly.
func (f *FakeReader) Read() (int16, error) {
	f.Reads++

	if f.ReadError != nil {
		return 0, f.ReadError
	}

	if len(f.Values) == 0 {
		return 0, errors.New("no values configured")
	}

	value := f.Values[f.index]
	if f.index < len(f.Values)-1 {
		f.index++
	}

	return value, nil
}

// Close marks the reader as closed.
func (f *FakeReader) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the reader to the beginning of values.
func (f *FakeReader) Reset() {
	f.index = 0
	f.Reads = 0
	f.Closed = false
}
