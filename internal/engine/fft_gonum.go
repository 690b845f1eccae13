//go:build !nofft

package engine

import "gonum.org/v1/gonum/dsp/fourier"

// gonumFFT adapts fourier.FFT to RealFFT.
type gonumFFT struct {
	fft *fourier.FFT
	n   int
}

// NewGonumFFT returns a RealFFT of length n backed by gonum.
func NewGonumFFT(n int) RealFFT {
	return &gonumFFT{fft: fourier.NewFFT(n), n: n}
}

func (g *gonumFFT) Len() int { return g.n }

func (g *gonumFFT) Forward(dst []complex128, src []float64) []complex128 {
	return g.fft.Coefficients(dst, src)
}

func (g *gonumFFT) Inverse(dst []float64, src []complex128) []float64 {
	return g.fft.Sequence(dst, src)
}
