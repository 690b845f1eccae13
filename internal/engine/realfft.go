package engine

// RealFFT is a real-input discrete Fourier transform of a fixed length.
type RealFFT interface {
	// Len returns the transform length n.
	Len() int

	// Forward transforms n samples into n/2+1 bins. dst is reused when it
	// has the right length.
	Forward(dst []complex128, src []float64) []complex128

	// Inverse transforms n/2+1 bins into n samples without the 1/n
	// normalization.
	Inverse(dst []float64, src []complex128) []float64
}

// FFTFactory builds a RealFFT of length n.
type FFTFactory func(n int) RealFFT
