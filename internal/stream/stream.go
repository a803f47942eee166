// Package stream parses the sampler's wire format and locates serial
// stream sources.
package stream

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/RouterInfoMan/ecg-pm/internal/adc"
	"github.com/RouterInfoMan/ecg-pm/internal/sampler"
)

// Sample is one record parsed from the wire.
type Sample struct {
	Value   int16
	LeadOff bool
}

// ParseLine parses one line of the wire format: a base-10 integer in
// [0, adc.Max], or the lead-off marker -1.
func ParseLine(line string) (Sample, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(line), 10, 16)
	if err != nil {
		return Sample{}, fmt.Errorf("invalid sample line %q: %w", line, err)
	}
	if v == int64(sampler.NoContact) {
		return Sample{Value: sampler.NoContact, LeadOff: true}, nil
	}
	if v < 0 || v > adc.Max {
		return Sample{}, fmt.Errorf("sample %d out of range [0, %d]", v, adc.Max)
	}
	return Sample{Value: int16(v)}, nil
}

// Scanner reads samples from a line-oriented stream. Blank lines and
// lines that fail to parse are skipped: serial transports deliver the
// occasional truncated line around open and unplug.
type Scanner struct {
	s       *bufio.Scanner
	sample  Sample
	skipped int
}

// NewScanner creates a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{s: bufio.NewScanner(r)}
}

// Scan advances to the next valid sample. It returns false when the
// stream ends or fails.
func (sc *Scanner) Scan() bool {
	for sc.s.Scan() {
		line := strings.TrimSpace(sc.s.Text())
		if line == "" {
			continue
		}
		sample, err := ParseLine(line)
		if err != nil {
			sc.skipped++
			continue
		}
		sc.sample = sample
		return true
	}
	return false
}

// Sample returns the sample read by the last successful Scan.
func (sc *Scanner) Sample() Sample {
	return sc.sample
}

// Skipped returns how many garbled lines were discarded so far.
func (sc *Scanner) Skipped() int {
	return sc.skipped
}

// Err returns the first non-EOF error encountered by the Scanner.
func (sc *Scanner) Err() error {
	return sc.s.Err()
}
