package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/maxwell/internal/dynamo"
)

// PowerSpectrum returns the magnitude of the first n/2 FFT bins of data.
func PowerSpectrum(data []float64) []float64 {
	spectrum := fft.FFTReal(data)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod estimates the oscillation period of the height series. The
// peak bin is refined by parabolic interpolation over its neighbours.
func DominantPeriod(s dynamo.Snapshot) (float64, error) {
	n := s.Len()
	if n < 8 {
		return 0, dynamo.ErrTooFewSamples
	}
	dt := (s.Time[n-1] - s.Time[0]) / float64(n-1)
	if dt <= 0 {
		return 0, dynamo.ErrTooFewSamples
	}

	mean := 0.0
	for _, h := range s.Height {
		mean += h
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, h := range s.Height {
		centered[i] = h - mean
	}

	ps := PowerSpectrum(centered)
	peak := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}
	if ps[peak] == 0 {
		return 0, dynamo.ErrTooFewSamples
	}

	k := float64(peak)
	if peak+1 < len(ps) {
		a, b, c := ps[peak-1], ps[peak], ps[peak+1]
		if d := a - 2*b + c; d != 0 {
			k += 0.5 * (a - c) / d
		}
	}
	if k <= 0 || math.IsNaN(k) {
		return 0, dynamo.ErrTooFewSamples
	}
	return float64(n) * dt / k, nil
}
