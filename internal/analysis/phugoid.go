package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

var ErrTooShort = errors.New("analysis: trace too short")

const minSpectrumSamples = 8

// Spectrum is a one-sided power spectrum. Freqs are in Hz.
type Spectrum struct {
	Freqs []float64
	Power []float64
}

// PowerSpectrum windows a copy of samples with a Hann window and returns
// |X(f)|² for f in [0, rate/2].
func PowerSpectrum(samples []float64, rate float64) Spectrum {
	n := len(samples)
	x := make([]float64, n)
	copy(x, samples)
	window.Apply(x, window.Hann)

	spectrum := fft.FFTReal(x)
	half := n/2 + 1
	out := Spectrum{
		Freqs: make([]float64, half),
		Power: make([]float64, half),
	}
	for k := 0; k < half && k < len(spectrum); k++ {
		mag := cmplx.Abs(spectrum[k])
		out.Freqs[k] = float64(k) * rate / float64(n)
		out.Power[k] = mag * mag
	}
	return out
}

// Resample linearly interpolates an irregular trace onto a uniform grid
// at rate samples per second. times must be increasing.
func Resample(times, values []float64, rate float64) []float64 {
	if len(times) < 2 || len(times) != len(values) || rate <= 0 {
		return nil
	}
	t0, t1 := times[0], times[len(times)-1]
	n := int(math.Floor((t1-t0)*rate)) + 1
	out := make([]float64, n)

	j := 0
	for i := range out {
		t := t0 + float64(i)/rate
		for j < len(times)-2 && times[j+1] < t {
			j++
		}
		span := times[j+1] - times[j]
		if span <= 0 {
			out[i] = values[j]
			continue
		}
		frac := math.Max(0, math.Min(1, (t-times[j])/span))
		out[i] = values[j] + frac*(values[j+1]-values[j])
	}
	return out
}

// Detrend removes the least-squares line from x in place. A steady climb
// would otherwise swamp the low bins.
func Detrend(x []float64) {
	n := float64(len(x))
	if n < 2 {
		return
	}
	var sumI, sumX, sumII, sumIX float64
	for i, v := range x {
		fi := float64(i)
		sumI += fi
		sumX += v
		sumII += fi * fi
		sumIX += fi * v
	}
	slope := (n*sumIX - sumI*sumX) / (n*sumII - sumI*sumI)
	intercept := (sumX - slope*sumI) / n
	for i := range x {
		x[i] -= intercept + slope*float64(i)
	}
}

type Phugoid struct {
	Frequency float64
	Period    float64
	Amplitude float64
	Samples   int
}

// DetectPhugoid finds the dominant oscillation of an altitude trace
// recorded at the given times.
func DetectPhugoid(times, altitudes []float64, rate float64) (Phugoid, error) {
	x := Resample(times, altitudes, rate)
	if len(x) < minSpectrumSamples {
		return Phugoid{}, fmt.Errorf("%w: %d samples at %g Hz", ErrTooShort, len(x), rate)
	}
	Detrend(x)

	spectrum := PowerSpectrum(x, rate)
	peak := 1
	for k := 2; k < len(spectrum.Power); k++ {
		if spectrum.Power[k] > spectrum.Power[peak] {
			peak = k
		}
	}

	gain := 0.0
	for _, w := range window.Hann(len(x)) {
		gain += w
	}

	ph := Phugoid{
		Frequency: spectrum.Freqs[peak],
		Samples:   len(x),
	}
	if ph.Frequency > 0 {
		ph.Period = 1 / ph.Frequency
	}
	if gain > 0 {
		ph.Amplitude = 2 * math.Sqrt(spectrum.Power[peak]) / gain
	}
	return ph, nil
}
