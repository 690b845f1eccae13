package testutil

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
)

// Sine returns n samples of amp·sin(2π·freq·t) at rate.
func Sine(freq, rate float64, n int, amp float64) []float64 {
	out := make([]float64, n)
	w := 2 * math.Pi * freq / rate
	for i := range out {
		out[i] = amp * math.Sin(w*float64(i))
	}
	return out
}

// Constant returns n copies of v.
func Constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// Spectrum returns the single-sided amplitude spectrum of x under a Hann
// window. A sine of amplitude A centred on bin k reads A at index k.
func Spectrum(x []float64) []float64 {
	n := len(x)
	buf := window.Hann(append([]float64(nil), x...))
	gain := 0.0
	for _, w := range window.Hann(Constant(n, 1)) {
		gain += w
	}

	coeffs := fourier.NewFFT(n).Coefficients(nil, buf)
	mag := make([]float64, len(coeffs))
	for k, c := range coeffs {
		mag[k] = halfDivisor * cmplx.Abs(c) / gain
	}
	return mag
}

// PeakBin returns the index and amplitude of the largest spectrum bin,
// ignoring DC.
func PeakBin(mag []float64) (int, float64) {
	best, val := 0, 0.0
	for k := 1; k < len(mag); k++ {
		if mag[k] > val {
			best, val = k, mag[k]
		}
	}
	return best, val
}

// MaxAbs returns the largest magnitude in x.
func MaxAbs(x []float64) float64 {
	m := 0.0
	for _, v := range x {
		m = math.Max(m, math.Abs(v))
	}
	return m
}

// MaxAbsDiff returns max |a[i]-b[i]| over the shorter of the two.
func MaxAbsDiff(a, b []float64) float64 {
	m := 0.0
	for i := range min(len(a), len(b)) {
		m = math.Max(m, math.Abs(a[i]-b[i]))
	}
	return m
}

// DB converts an amplitude ratio to decibels, floored at -300 dB.
func DB(ratio float64) float64 {
	if ratio <= 0 {
		return -300
	}
	return 20 * math.Log10(ratio)
}
