package sampler

import (
	"errors"
	"testing"

	"github.com/RouterInfoMan/ecg-pm/internal/adc"
	"github.com/RouterInfoMan/ecg-pm/internal/gpio"
	"github.com/RouterInfoMan/ecg-pm/internal/leads"
)

// captureEmitter records everything emitted to it.
type captureEmitter struct {
	records []Record
	err     error
}

func (c *captureEmitter) Emit(rec Record) error {
	if c.err != nil {
		return c.err
	}
	c.records = append(c.records, rec)
	return nil
}

// contactSamples returns n line samples with both lines low.
func contactSamples(n int) []gpio.LineSample {
	return make([]gpio.LineSample, n)
}

func TestTickContactEmitsReading(t *testing.T) {
	indicator := &gpio.FakeIndicator{}
	lines := gpio.NewFakeLeads(contactSamples(1))
	channel := adc.NewFakeReader([]int16{512})
	capture := &captureEmitter{}

	s := New(indicator, leads.NewMonitor(lines), channel, capture)

	rec := s.Tick()
	if rec.Value != 512 || !rec.Contact {
		t.Errorf("expected {512 true}, got %+v", rec)
	}
	if channel.Reads != 1 {
		t.Errorf("expected 1 adc read, got %d", channel.Reads)
	}
	if len(capture.records) != 1 || capture.records[0] != rec {
		t.Errorf("expected emitted record %+v, got %v", rec, capture.records)
	}
}

func TestTickLeadOffEmitsSentinelAndSkipsADC(t *testing.T) {
	tests := []struct {
		name  string
		lines gpio.LineSample
	}{
		{"LO+ high", gpio.LineSample{LOPlus: true}},
		{"LO- high", gpio.LineSample{LOMinus: true}},
		{"both high", gpio.LineSample{LOPlus: true, LOMinus: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			indicator := &gpio.FakeIndicator{}
			lines := gpio.NewFakeLeads([]gpio.LineSample{tt.lines})
			channel := adc.NewFakeReader([]int16{512})
			capture := &captureEmitter{}

			s := New(indicator, leads.NewMonitor(lines), channel, capture)

			rec := s.Tick()
			if rec.Value != NoContact || rec.Contact {
				t.Errorf("expected {%d false}, got %+v", NoContact, rec)
			}
			if channel.Reads != 0 {
				t.Errorf("adc must not be read during lead-off, got %d reads", channel.Reads)
			}
			if len(capture.records) != 1 {
				t.Fatalf("expected exactly 1 record, got %d", len(capture.records))
			}
		})
	}
}

func TestTickEmitsOneRecordPerTickInOrder(t *testing.T) {
	indicator := &gpio.FakeIndicator{}
	lines := gpio.NewFakeLeads(contactSamples(1))
	channel := adc.NewFakeReader([]int16{100, 200, 300, 400})
	capture := &captureEmitter{}

	s := New(indicator, leads.NewMonitor(lines), channel, capture)

	for i := 0; i < 4; i++ {
		s.Tick()
	}

	if len(capture.records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(capture.records))
	}
	for i, want := range []int16{100, 200, 300, 400} {
		if capture.records[i].Value != want {
			t.Errorf("record %d: expected %d, got %d", i, want, capture.records[i].Value)
		}
	}
}

func TestTickTogglesIndicatorExactlyOnce(t *testing.T) {
	// Indicator cadence is independent of contact and read errors.
	indicator := &gpio.FakeIndicator{}
	lines := gpio.NewFakeLeads([]gpio.LineSample{
		{},
		{LOPlus: true},
		{},
	})
	channel := adc.NewFakeReader([]int16{100})
	channel.ReadError = errors.New("simulated error")

	s := New(indicator, leads.NewMonitor(lines), channel, &captureEmitter{})

	for i := 0; i < 3; i++ {
		s.Tick()
	}

	if indicator.Toggles != 3 {
		t.Errorf("expected 3 toggles, got %d", indicator.Toggles)
	}
}

func TestIndicatorParityAfterNTicks(t *testing.T) {
	tests := []struct {
		ticks  int
		wantOn bool
	}{
		{1, true},
		{2, false},
		{5, true},
		{8, false},
	}

	for _, tt := range tests {
		indicator := &gpio.FakeIndicator{}
		lines := gpio.NewFakeLeads(contactSamples(1))
		channel := adc.NewFakeReader([]int16{100})

		s := New(indicator, leads.NewMonitor(lines), channel, &captureEmitter{})

		for i := 0; i < tt.ticks; i++ {
			s.Tick()
		}

		if s.IndicatorOn() != tt.wantOn {
			t.Errorf("after %d ticks: IndicatorOn() = %v, want %v", tt.ticks, s.IndicatorOn(), tt.wantOn)
		}
		if indicator.On != tt.wantOn {
			t.Errorf("after %d ticks: LED state = %v, want %v", tt.ticks, indicator.On, tt.wantOn)
		}
	}
}

func TestTickCollapsesLeadsReadError(t *testing.T) {
	indicator := &gpio.FakeIndicator{}
	lines := gpio.NewFakeLeads(contactSamples(1))
	channel := adc.NewFakeReader([]int16{700})
	capture := &captureEmitter{}

	s := New(indicator, leads.NewMonitor(lines), channel, capture)

	lines.ReadError = errors.New("simulated error")
	rec := s.Tick()
	if rec.Value != NoContact || rec.Contact {
		t.Errorf("expected sentinel record on leads error, got %+v", rec)
	}
	if channel.Reads != 0 {
		t.Errorf("adc must not be read when the contact check fails, got %d reads", channel.Reads)
	}

	// The fault clears and sampling resumes without restart.
	lines.ReadError = nil
	rec = s.Tick()
	if rec.Value != 700 || !rec.Contact {
		t.Errorf("expected {700 true} after recovery, got %+v", rec)
	}
	if len(capture.records) != 2 {
		t.Errorf("each tick must emit exactly one record, got %d", len(capture.records))
	}
}

func TestTickCollapsesADCReadError(t *testing.T) {
	indicator := &gpio.FakeIndicator{}
	lines := gpio.NewFakeLeads(contactSamples(1))
	channel := adc.NewFakeReader([]int16{700})
	capture := &captureEmitter{}

	s := New(indicator, leads.NewMonitor(lines), channel, capture)

	channel.ReadError = errors.New("simulated error")
	rec := s.Tick()
	if rec.Value != NoContact || rec.Contact {
		t.Errorf("expected sentinel record on adc error, got %+v", rec)
	}

	channel.ReadError = nil
	rec = s.Tick()
	if rec.Value != 700 || !rec.Contact {
		t.Errorf("expected {700 true} after recovery, got %+v", rec)
	}
	if len(capture.records) != 2 {
		t.Errorf("each tick must emit exactly one record, got %d", len(capture.records))
	}
}

func TestTickEmitterErrorDoesNotStopTicks(t *testing.T) {
	indicator := &gpio.FakeIndicator{}
	lines := gpio.NewFakeLeads(contactSamples(1))
	channel := adc.NewFakeReader([]int16{100, 200})

	failing := &captureEmitter{err: errors.New("simulated error")}
	capture := &captureEmitter{}

	s := New(indicator, leads.NewMonitor(lines), channel, failing, capture)

	s.Tick()
	s.Tick()

	if len(capture.records) != 2 {
		t.Fatalf("later emitters must still receive records, got %d", len(capture.records))
	}
	if capture.records[1].Value != 200 {
		t.Errorf("expected second record 200, got %d", capture.records[1].Value)
	}
}

func TestTickIndicatorToggleErrorStillEmits(t *testing.T) {
	indicator := &gpio.FakeIndicator{ToggleError: errors.New("simulated error")}
	lines := gpio.NewFakeLeads(contactSamples(1))
	channel := adc.NewFakeReader([]int16{100})
	capture := &captureEmitter{}

	s := New(indicator, leads.NewMonitor(lines), channel, capture)

	rec := s.Tick()
	if rec.Value != 100 || !rec.Contact {
		t.Errorf("tick must survive an indicator fault, got %+v", rec)
	}
	if len(capture.records) != 1 {
		t.Errorf("expected 1 record, got %d", len(capture.records))
	}
}

func TestFreshSamplerRepeatsFirstTick(t *testing.T) {
	// Two samplers built from identically scripted hardware behave
	// identically on their first tick: same record, same LED state.
	build := func() (*Sampler, *gpio.FakeIndicator) {
		indicator := &gpio.FakeIndicator{}
		lines := gpio.NewFakeLeads(contactSamples(1))
		channel := adc.NewFakeReader([]int16{321})
		return New(indicator, leads.NewMonitor(lines), channel, &captureEmitter{}), indicator
	}

	first, firstLED := build()
	for i := 0; i < 3; i++ {
		first.Tick()
	}

	second, secondLED := build()
	rec := second.Tick()

	if rec.Value != 321 || !rec.Contact {
		t.Errorf("expected {321 true} on first tick, got %+v", rec)
	}
	if secondLED.Toggles != 1 || !secondLED.On {
		t.Errorf("first tick must leave the LED lit after one toggle, got toggles=%d on=%v",
			secondLED.Toggles, secondLED.On)
	}
	if firstLED.Toggles != 3 {
		t.Errorf("prior instance state leaked: expected 3 toggles, got %d", firstLED.Toggles)
	}
}
