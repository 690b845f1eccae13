//go:build !nofft

package resampler

import (
	"fmt"
	"math"

	"github.com/tphakala/go-audio-resampler/v2/internal/engine"
)

// NewFFT creates an FFT engine resampler regardless of config.Engine.
// Integral sample rates give the exact fraction; otherwise the ratio is
// approximated by a fraction with terms up to 65536.
func NewFFT[F Float](config *Config) (Resampler[F], error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrConfiguration)
	}
	return newFFT[F](config)
}

func newFFT[F Float](config *Config) (Resampler[F], error) {
	cfg := *config
	cfg.Engine = EngineFFT
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fc := engine.FFTConfig{
		Ratio:     cfg.Ratio,
		Channels:  cfg.Channels,
		ChunkSize: cfg.chunkSize(),
		Mode:      cfg.Mode,
		SubChunks: cfg.SubChunks,
		Factory:   cfg.FFT,
	}
	if cfg.Ratio == 0 {
		in, out := cfg.InputRate, cfg.OutputRate
		if in == math.Trunc(in) && out == math.Trunc(out) && in <= math.MaxInt32 && out <= math.MaxInt32 {
			fc.InputRate, fc.OutputRate = int(in), int(out)
		} else {
			fc.Ratio = cfg.ratio()
		}
	}

	e, err := engine.NewFFT[F](fc)
	if err != nil {
		return nil, err
	}
	return e, nil
}
