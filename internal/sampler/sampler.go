// Package sampler drives the fixed-rate sampling cycle: each tick reads
// the front-end and emits exactly one record.
package sampler

import (
	"log"

	"github.com/RouterInfoMan/ecg-pm/internal/adc"
	"github.com/RouterInfoMan/ecg-pm/internal/gpio"
	"github.com/RouterInfoMan/ecg-pm/internal/leads"
)

// NoContact is the value emitted in place of a reading while either
// electrode is detached. The contact decision is made from the
// leads-off lines, never inferred back from the value.
const NoContact int16 = -1

// Record is the outcome of one tick. Value is in [0, adc.Max] when
// Contact is true, and NoContact otherwise.
type Record struct {
	Value   int16
	Contact bool
}

// Emitter delivers one record per tick to an output.
type Emitter interface {
	Emit(Record) error
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(Record) error

// Emit calls f(rec).
func (f EmitterFunc) Emit(rec Record) error { return f(rec) }

// Sampler produces one Record per tick. Tick must be called from a
// single goroutine; the run loop draining the ticker is the only
// caller, which keeps the indicator toggle free of locking.
type Sampler struct {
	indicator gpio.Indicator
	monitor   *leads.Monitor
	channel   adc.Reader
	emitters  []Emitter

	indicatorOn bool

	// Failures are logged when they start, not on every tick; at 250 Hz
	// a persistent fault would otherwise flood the log.
	leadsFailing bool
	adcFailing   bool
	emitFailing  bool
}

// New creates a Sampler emitting to the given emitters in order.
func New(indicator gpio.Indicator, monitor *leads.Monitor, channel adc.Reader, emitters ...Emitter) *Sampler {
	return &Sampler{
		indicator: indicator,
		monitor:   monitor,
		channel:   channel,
		emitters:  emitters,
	}
}

// Tick runs one sampling cycle: toggle the indicator, check electrode
// contact, read the channel only when contact holds, then emit. Read
// failures collapse to a no-contact record; a tick never aborts.
func (s *Sampler) Tick() Record {
	if on, err := s.indicator.Toggle(); err != nil {
		log.Printf("indicator toggle error: %v", err)
	} else {
		s.indicatorOn = on
	}

	rec := Record{Value: NoContact}

	contact, err := s.monitor.Contact()
	if err != nil {
		if !s.leadsFailing {
			log.Printf("contact check error: %v", err)
			s.leadsFailing = true
		}
		contact = false
	} else {
		s.leadsFailing = false
	}

	if contact {
		value, err := s.channel.Read()
		if err != nil {
			if !s.adcFailing {
				log.Printf("adc read error: %v", err)
				s.adcFailing = true
			}
		} else {
			s.adcFailing = false
			rec = Record{Value: value, Contact: true}
		}
	}

	failed := false
	for _, e := range s.emitters {
		if err := e.Emit(rec); err != nil {
			failed = true
			if !s.emitFailing {
				log.Printf("emit error: %v", err)
			}
		}
	}
	s.emitFailing = failed

	return rec
}

// IndicatorOn reports the indicator state after the most recent toggle.
func (s *Sampler) IndicatorOn() bool {
	return s.indicatorOn
}
