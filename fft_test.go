//go:build !nofft

package resampler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-resampler/v2/internal/testutil"
)

func fftConfig(inRate, outRate float64) *Config {
	return &Config{
		Engine:     EngineFFT,
		InputRate:  inRate,
		OutputRate: outRate,
		Channels:   1,
	}
}

func TestNew_FFTEngine(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
		algo string
	}{
		{"cd to dat", fftConfig(RateCD, RateDAT), "fft-160/147"},
		{"dat to cd", fftConfig(RateDAT, RateCD), "fft-147/160"},
		{"explicit ratio", &Config{Engine: EngineFFT, Ratio: 3, Channels: 2}, "fft-3/1"},
		{"fractional rates", fftConfig(44100.5, 88201), "fft-2/1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New[float64](tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.algo, GetInfo(r).Algorithm)
			assert.Positive(t, r.OutputDelay())
		})
	}
}

func TestNewFFT_RejectsIrrationalRatio(t *testing.T) {
	_, err := NewFFT[float64](&Config{Ratio: math.Pi, Channels: 1})
	require.ErrorIs(t, err, ErrInvalidRatio)
	var re *RatioError
	assert.ErrorAs(t, err, &re)
}

func TestFFT_SetRatioIsFixed(t *testing.T) {
	r, err := New[float64](fftConfig(RateCD, RateDAT))
	require.NoError(t, err)
	assert.NoError(t, r.SetRatio(1, RatioRelative))
	assert.ErrorIs(t, r.SetRatio(1.001, RatioRelative), ErrInvalidRatio)
}

func TestResampleAll_FFT(t *testing.T) {
	tests := []struct {
		name    string
		in, out float64
		mode    Mode
	}{
		{"cd to dat", RateCD, RateDAT, FixedInput},
		{"dat to cd fixed output", RateDAT, RateCD, FixedOutput},
		{"double blocks", 22050, 44100, FixedInputOutput},
		{"half", 96000, 48000, FixedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const n = 30000
			cfg := fftConfig(tt.in, tt.out)
			cfg.Mode = tt.mode
			r, err := New[float64](cfg)
			require.NoError(t, err)

			out, err := ResampleAll(r, [][]float64{testutil.Constant(n, 0.5)})
			require.NoError(t, err)
			want := int(math.Round(n * tt.out / tt.in))
			require.Len(t, out[0], want)
			for k := 5000; k < want-5000; k++ {
				require.InDelta(t, 0.5, out[0][k], 1e-3, "frame %d", k)
			}
		})
	}
}

func TestResampleAll_EnginesAgree(t *testing.T) {
	const n = 20000
	in := testutil.Sine(1000, RateCD, n, 0.5)

	sinc, err := New[float64](sincConfig(RateCD, RateDAT))
	require.NoError(t, err)
	// 1176 frames make an even block, so the filter centre falls on a frame.
	cfg := fftConfig(RateCD, RateDAT)
	cfg.ChunkSize = 1176
	fft, err := New[float64](cfg)
	require.NoError(t, err)

	a, err := ResampleAll(sinc, [][]float64{in})
	require.NoError(t, err)
	b, err := ResampleAll(fft, [][]float64{in})
	require.NoError(t, err)
	require.Equal(t, len(a[0]), len(b[0]))

	assert.Less(t, testutil.MaxAbsDiff(a[0][3000:18000], b[0][3000:18000]), 5e-3)
}
