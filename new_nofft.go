//go:build nofft

package resampler

import "fmt"

// NewFFT reports that the FFT engine is not compiled in.
func NewFFT[F Float](config *Config) (Resampler[F], error) {
	return newFFT[F](config)
}

func newFFT[F Float](*Config) (Resampler[F], error) {
	return nil, fmt.Errorf("%w: FFT engine not available in nofft builds", ErrConfiguration)
}
