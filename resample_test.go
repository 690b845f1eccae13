package resampler

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-resampler/v2/internal/testutil"
)

func sincConfig(inRate, outRate float64) *Config {
	return &Config{
		InputRate:  inRate,
		OutputRate: outRate,
		Channels:   1,
		Quality:    QualitySpec{Preset: QualityHigh},
	}
}

func TestConfig_Validate(t *testing.T) {
	custom := QualityHigh.Params()
	custom.Length = 7

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"rates", func(*Config) {}, false},
		{"explicit ratio", func(c *Config) { c.InputRate, c.OutputRate, c.Ratio = 0, 0, 1.5 }, false},
		{"no ratio", func(c *Config) { c.InputRate, c.OutputRate = 0, 0 }, true},
		{"negative ratio", func(c *Config) { c.Ratio = -1 }, true},
		{"NaN ratio", func(c *Config) { c.Ratio = math.NaN() }, true},
		{"ratio too large", func(c *Config) { c.Ratio = 300 }, true},
		{"ratio too small", func(c *Config) { c.InputRate, c.OutputRate = 300000, 1000 }, true},
		{"no channels", func(c *Config) { c.Channels = 0 }, true},
		{"too many channels", func(c *Config) { c.Channels = 257 }, true},
		{"negative chunk", func(c *Config) { c.ChunkSize = -1 }, true},
		{"unknown engine", func(c *Config) { c.Engine = Engine(9) }, true},
		{"inverted bounds", func(c *Config) { c.RatioBounds = &RatioBounds{Min: 2, Max: 1} }, true},
		{"custom without params", func(c *Config) { c.Quality = QualitySpec{Preset: QualityCustom} }, true},
		{"custom params", func(c *Config) { c.Quality = QualitySpec{Preset: QualityCustom, Sinc: &SincParams{
			Length: 32, Oversampling: 32, Window: WindowHann, Interpolation: InterpLinear,
		}} }, false},
		{"bad custom params", func(c *Config) { c.Quality.Sinc = &custom }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := sincConfig(44100, 48000)
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrConfiguration)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New[float64](nil)
	require.ErrorIs(t, err, ErrConfiguration)
	_, err = NewSinc[float32](nil)
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestNew_SincRejectsFixedInputOutput(t *testing.T) {
	cfg := sincConfig(44100, 48000)
	cfg.Mode = FixedInputOutput
	_, err := New[float64](cfg)
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestNew_SincContract(t *testing.T) {
	for _, mode := range []Mode{FixedInput, FixedOutput} {
		t.Run(mode.String(), func(t *testing.T) {
			cfg := sincConfig(44100, 48000)
			cfg.Channels = 2
			cfg.Mode = mode
			r, err := New[float64](cfg)
			require.NoError(t, err)

			assert.Equal(t, 2, r.Channels())
			assert.InDelta(t, 48000.0/44100, r.Ratio(), 1e-15)
			assert.Zero(t, r.OutputDelay())
			if mode == FixedInput {
				assert.Equal(t, defaultChunkSize, r.InputFramesNext())
			} else {
				assert.Equal(t, defaultChunkSize, r.OutputFramesNext())
			}
			assert.LessOrEqual(t, r.InputFramesNext(), r.InputFramesMax())
			assert.LessOrEqual(t, r.OutputFramesNext(), r.OutputFramesMax())

			info := GetInfo(r)
			assert.Equal(t, "sinc-cubic", info.Algorithm)
			assert.Equal(t, 256, info.FilterLength)
			assert.Equal(t, 128, info.Latency)
		})
	}
}

func TestVariableResampler(t *testing.T) {
	r, err := NewSinc[float64](sincConfig(44100, 48000))
	require.NoError(t, err)
	assert.Equal(t, StateIdle, r.State())

	require.NoError(t, r.SetRatioRamp(1.02, RatioRelative))
	assert.Equal(t, StateReconfiguring, r.State())
	assert.InDelta(t, 1.02*48000/44100, r.Ratio(), 1e-12)

	require.NoError(t, r.Reconfigure(2, 512))
	assert.Equal(t, 2, r.Channels())
	assert.Equal(t, StateIdle, r.State())
	assert.Equal(t, 512, r.InputFramesNext())
}

func TestSetRatio_Bounds(t *testing.T) {
	tests := []struct {
		name   string
		bounds *RatioBounds
		ratio  float64
		mode   RatioMode
		ok     bool
	}{
		{"default margin allows 5%", nil, 1.05, RatioRelative, true},
		{"default margin rejects 20%", nil, 1.2, RatioRelative, false},
		{"absolute inside bounds", &RatioBounds{Min: 0.5, Max: 4}, 3.9, RatioAbsolute, true},
		{"absolute above bounds", &RatioBounds{Min: 0.5, Max: 4}, 4.1, RatioAbsolute, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := sincConfig(RateDAT, RateDAT)
			cfg.RatioBounds = tt.bounds
			r, err := New[float64](cfg)
			require.NoError(t, err)

			err = r.SetRatio(tt.ratio, tt.mode)
			if tt.ok {
				require.NoError(t, err)
				assert.InDelta(t, tt.ratio, r.Ratio(), 1e-15)
				return
			}
			require.ErrorIs(t, err, ErrInvalidRatio)
			var re *RatioError
			require.ErrorAs(t, err, &re)
			assert.InDelta(t, tt.ratio, re.Requested, 1e-15)
			assert.InDelta(t, 1.0, r.Ratio(), 1e-15)
		})
	}
}

func TestProcess_TypedErrors(t *testing.T) {
	cfg := sincConfig(44100, 48000)
	cfg.Channels = 2
	cfg.ChunkSize = 64
	r, err := New[float64](cfg)
	require.NoError(t, err)

	good := [][]float64{make([]float64, 64), make([]float64, 64)}
	out := [][]float64{make([]float64, r.OutputFramesMax()), make([]float64, r.OutputFramesMax())}

	tests := []struct {
		name    string
		call    func() error
		want    error
		channel int
	}{
		{"channel count", func() error {
			_, _, err := r.ProcessInto(good[:1], out)
			return err
		}, ErrWrongNumberOfChannels, -1},
		{"input length", func() error {
			_, _, err := r.ProcessInto([][]float64{good[0], good[1][:60]}, out)
			return err
		}, ErrWrongInputSize, 1},
		{"output length", func() error {
			_, _, err := r.ProcessInto(good, [][]float64{out[0], out[1][:1]})
			return err
		}, ErrWrongOutputSize, 1},
		{"partial too long", func() error {
			long := [][]float64{make([]float64, 65), make([]float64, 65)}
			_, _, err := r.ProcessPartial(long, out)
			return err
		}, ErrWrongInputSize, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.ErrorIs(t, err, tt.want)
			var se *SizeError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.channel, se.Channel)
			assert.False(t, errors.Is(err, ErrConfiguration))
		})
	}
}

func TestResampleAll_Length(t *testing.T) {
	ratios := []struct{ in, out float64 }{
		{44100, 48000},
		{48000, 44100},
		{22050, 44100},
		{96000, 16000},
	}
	for _, rr := range ratios {
		for _, n := range []int{0, 1, 999, 10000} {
			t.Run(fmt.Sprintf("%v-%v/%d", rr.in, rr.out, n), func(t *testing.T) {
				r, err := New[float64](sincConfig(rr.in, rr.out))
				require.NoError(t, err)
				out, err := ResampleAll(r, [][]float64{make([]float64, n)})
				require.NoError(t, err)
				assert.Len(t, out[0], int(math.Round(float64(n)*rr.out/rr.in)))
			})
		}
	}
}

func TestResampleAll_ChannelMismatch(t *testing.T) {
	r, err := New[float64](sincConfig(44100, 48000))
	require.NoError(t, err)

	_, err = ResampleAll(r, [][]float64{{1}, {2}})
	require.ErrorIs(t, err, ErrWrongNumberOfChannels)
}

func TestResampleAll_RoundTripImprovesWithQuality(t *testing.T) {
	const n = 8820
	in := testutil.Sine(3000, 44100, n, 0.5)

	roundTrip := func(q QualityPreset) float64 {
		up, err := ResampleMono(in, 44100, 88200, q)
		require.NoError(t, err)
		require.Len(t, up, 2*n)
		back, err := ResampleMono(up, 88200, 44100, q)
		require.NoError(t, err)
		require.Len(t, back, n)
		return testutil.MaxAbsDiff(in[1000:n-1000], back[1000:n-1000])
	}

	low := roundTrip(QualityLow)
	high := roundTrip(QualityHigh)
	assert.Less(t, low, 0.05)
	assert.Less(t, high, 1e-3)
	assert.Less(t, high, low)
}

func TestResampleStereo_Float32(t *testing.T) {
	left := make([]float32, 4410)
	right := make([]float32, 4410)
	for i := range left {
		left[i] = 0.25
		right[i] = -0.5
	}

	l, r, err := ResampleStereo(left, right, RateCD, RateDAT, QualityMedium)
	require.NoError(t, err)
	require.Len(t, l, 4800)
	require.Len(t, r, 4800)
	for k := 200; k < 4600; k++ {
		require.InDelta(t, 0.25, float64(l[k]), 1e-4)
		require.InDelta(t, -0.5, float64(r[k]), 1e-4)
	}
}

func TestEngine_Text(t *testing.T) {
	var e Engine
	require.NoError(t, e.UnmarshalText([]byte(" FFT ")))
	assert.Equal(t, EngineFFT, e)
	assert.Equal(t, "fft", e.String())
	assert.Equal(t, "sinc", EngineSinc.String())
	assert.Equal(t, "Engine(7)", Engine(7).String())
	assert.ErrorIs(t, e.UnmarshalText([]byte("linear")), ErrConfiguration)
}

func TestGetInfo_Float32(t *testing.T) {
	r, err := NewSimple[float32](RateCD, RateDAT)
	require.NoError(t, err)
	info := GetInfo[float32](r)
	assert.Equal(t, "sinc-cubic", info.Algorithm)
	assert.Equal(t, 256, info.Phases)
	assert.Positive(t, info.MemoryUsage)
}
