// Package hrm estimates heart rate from a raw ECG sample stream.
//
// The estimator keeps a rolling window of samples, removes baseline
// wander with a moving mean, finds R-wave peaks above an adaptive
// threshold, and converts the mean peak interval to beats per minute.
package hrm

import (
	"math"

	"github.com/RouterInfoMan/ecg-pm/internal/stream"
)

// DefaultSampleRate is the stream rate in samples per second.
const DefaultSampleRate = 250

const (
	// windowSeconds is how much signal the peak search looks at.
	windowSeconds = 6

	// detrendWindow is the moving-mean width used for baseline removal.
	detrendWindow = 25

	// peakNeighborhood is the half-width within which a peak must be
	// the maximum.
	peakNeighborhood = 15

	// peakMargin keeps peaks away from the window edges, where the
	// neighborhood is truncated.
	peakMargin = 5

	// Plausible heart rate bounds; estimates outside are discarded.
	minRate = 40
	maxRate = 200

	// historySize smooths the reported rate over recent estimates.
	historySize = 5
)

// Quality labels one second of stream.
type Quality string

const (
	QualityGood    Quality = "GOOD"
	QualityLeadOff Quality = "LEAD_OFF"
)

// Estimate is the per-second output of the estimator. BPM is 0 until
// enough clean signal has accumulated for a first reading.
type Estimate struct {
	Quality Quality
	BPM     int
}

// Estimator consumes samples one at a time and produces one Estimate
// per second of stream time.
type Estimator struct {
	rate    int
	window  []float64
	batch   int
	leadOff bool
	history []float64
}

// New creates an Estimator for a stream at the given sample rate.
// A non-positive rate falls back to DefaultSampleRate.
func New(rate int) *Estimator {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	return &Estimator{
		rate:   rate,
		window: make([]float64, 0, rate*windowSeconds),
	}
}

// Add consumes one sample. Once per rate samples it returns an
// Estimate and true.
func (e *Estimator) Add(s stream.Sample) (Estimate, bool) {
	e.batch++
	if s.LeadOff {
		e.leadOff = true
	} else {
		e.window = append(e.window, float64(s.Value))
		if max := e.rate * windowSeconds; len(e.window) > max {
			e.window = e.window[len(e.window)-max:]
		}
	}

	if e.batch < e.rate {
		return Estimate{}, false
	}
	e.batch = 0

	quality := QualityGood
	if e.leadOff {
		quality = QualityLeadOff
	}
	e.leadOff = false

	// Lead-off seconds keep the previous rate; the window only holds
	// clean samples, so the next good second picks up where it left off.
	if quality == QualityGood && len(e.window) >= e.rate {
		if bpm, ok := e.estimate(); ok {
			e.history = append(e.history, bpm)
			if len(e.history) > historySize {
				e.history = e.history[1:]
			}
		}
	}

	return Estimate{Quality: quality, BPM: e.smoothed()}, true
}

// estimate runs one peak-detection pass over the current window.
func (e *Estimator) estimate() (float64, bool) {
	x := detrend(e.window)
	mean, std := meanStd(x)
	threshold := mean + 1.5*std

	peaks := findPeaks(x, threshold)
	if len(peaks) < 2 {
		return 0, false
	}

	totalInterval := 0
	for i := 1; i < len(peaks); i++ {
		totalInterval += peaks[i] - peaks[i-1]
	}
	meanInterval := float64(totalInterval) / float64(len(peaks)-1) / float64(e.rate)

	bpm := 60 / meanInterval
	if bpm < minRate || bpm > maxRate {
		return 0, false
	}
	return bpm, true
}

// smoothed returns the mean of recent accepted estimates, rounded.
func (e *Estimator) smoothed() int {
	if len(e.history) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range e.history {
		sum += v
	}
	return int(math.Round(sum / float64(len(e.history))))
}

// detrend subtracts a centered moving mean, zero-padded at the edges.
func detrend(x []float64) []float64 {
	half := detrendWindow / 2
	out := make([]float64, len(x))
	for i := range x {
		sum := 0.0
		for j := i - half; j <= i+half; j++ {
			if j >= 0 && j < len(x) {
				sum += x[j]
			}
		}
		out[i] = x[i] - sum/detrendWindow
	}
	return out
}

// meanStd returns the mean and population standard deviation.
func meanStd(x []float64) (float64, float64) {
	if len(x) == 0 {
		return 0, 0
	}

	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(len(x))

	variance := 0.0
	for _, v := range x {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(x))

	return mean, math.Sqrt(variance)
}

// findPeaks returns indices that exceed the threshold, rise strictly
// above both neighbors, and are the maximum of their neighborhood.
func findPeaks(x []float64, threshold float64) []int {
	var peaks []int
	for i := peakMargin; i < len(x)-peakMargin; i++ {
		if x[i] <= threshold || x[i] <= x[i-1] || x[i] <= x[i+1] {
			continue
		}
		lo := i - peakNeighborhood
		if lo < 0 {
			lo = 0
		}
		hi := i + peakNeighborhood
		if hi > len(x) {
			hi = len(x)
		}
		if x[i] >= maxOf(x[lo:hi]) {
			peaks = append(peaks, i)
		}
	}
	return peaks
}

func maxOf(x []float64) float64 {
	m := x[0]
	for _, v := range x[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
