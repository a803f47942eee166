package gpio

import "errors"

// LineSample represents a single reading of the two leads-off lines.
type LineSample struct {
	LOPlus  bool // true = line high (electrode fault)
	LOMinus bool // true = line high (electrode fault)
}

// FakeLeads is a test double that returns scripted line levels.
type FakeLeads struct {
	// Samples contains scripted (loPlus, loMinus) levels to return.
	// Each call to Read() consumes the next sample.
	Samples []LineSample

	// index tracks current position in Samples
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// NewFakeLeads creates a FakeLeads with the given samples.
func NewFakeLeads(samples []LineSample) *FakeLeads {
	return &FakeLeads{Samples: samples}
}

// Read returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakeLeads) Read() (bool, bool, error) {
	if f.ReadError != nil {
		return false, false, f.ReadError
	}

	if len(f.Samples) == 0 {
		return false, false, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	return sample.LOPlus, sample.LOMinus, nil
}

// Close marks the reader as closed.
func (f *FakeLeads) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the reader to the beginning of samples.
func (f *FakeLeads) Reset() {
	f.index = 0
	f.Closed = false
}

// FakeIndicator is a test double that tracks LED toggles.
type FakeIndicator struct {
	// On is the current LED state.
	On bool

	// Toggles counts calls to Toggle.
	Toggles int

	// Closed tracks if Close was called
	Closed bool

	// ToggleError, if set, will be returned by Toggle()
	ToggleError error
}

// Toggle flips the LED state and returns it.
func (f *FakeIndicator) Toggle() (bool, error) {
	if f.ToggleError != nil {
		return f.On, f.ToggleError
	}
	f.On = !f.On
	f.Toggles++
	return f.On, nil
}

// Close marks the indicator as closed.
func (f *FakeIndicator) Close() error {
	f.Closed = true
	return nil
}
