package chunk

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMode_Text(t *testing.T) {
	for _, m := range []Mode{FixedInput, FixedOutput, FixedInputOutput} {
		var got Mode
		require.NoError(t, got.UnmarshalText([]byte(m.String())))
		assert.Equal(t, m, got)
	}

	var m Mode
	assert.ErrorIs(t, m.UnmarshalText([]byte("fixed-both")), ErrConfiguration)
	assert.Equal(t, "Mode(9)", Mode(9).String())
}

func TestRatioMode_Resolve(t *testing.T) {
	assert.InDelta(t, 1.2, RatioAbsolute.Resolve(1.2, 2.0), 1e-15)
	assert.InDelta(t, 2.4, RatioRelative.Resolve(1.2, 2.0), 1e-15)
}

func TestBlockFactor(t *testing.T) {
	tests := []struct {
		name      string
		mode      Mode
		chunk     int
		up, down  int
		subChunks int
		want      int
	}{
		{"fixed input", FixedInput, 1024, 160, 147, 1, 7},
		{"fixed input sub-chunks", FixedInput, 1764, 160, 147, 3, 4},
		{"fixed output", FixedOutput, 640, 160, 147, 1, 4},
		{"fixed input-output", FixedInputOutput, 588, 160, 147, 1, 4},
		{"tiny chunk", FixedInput, 1, 160, 147, 1, 1},
		{"zero sub-chunks", FixedInput, 300, 2, 1, 0, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BlockFactor(tt.mode, tt.chunk, tt.up, tt.down, tt.subChunks))
		})
	}
}

func TestCheckInput(t *testing.T) {
	in := [][]float64{make([]float64, 4), make([]float64, 4)}
	require.NoError(t, CheckInput(in, 2, 4))

	err := CheckInput(in, 3, 4)
	require.ErrorIs(t, err, ErrWrongNumberOfChannels)

	err = CheckInput([][]float64{make([]float64, 4), make([]float64, 3)}, 2, 4)
	require.ErrorIs(t, err, ErrWrongInputSize)

	var se *SizeError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 1, se.Channel)
	assert.Equal(t, 4, se.Expected)
	assert.Equal(t, 3, se.Actual)
	assert.Contains(t, se.Error(), "channel 1")
}

func TestCheckOutput(t *testing.T) {
	out := [][]float32{make([]float32, 10)}
	require.NoError(t, CheckOutput(out, 1, 10))
	require.NoError(t, CheckOutput(out, 1, 3))
	assert.ErrorIs(t, CheckOutput(out, 1, 11), ErrWrongOutputSize)
	assert.ErrorIs(t, CheckOutput(out, 2, 1), ErrWrongNumberOfChannels)
}

func TestCheckPartial(t *testing.T) {
	n, err := CheckPartial[float64](nil, 2, 8)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = CheckPartial([][]float64{make([]float64, 5), make([]float64, 5)}, 2, 8)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	_, err = CheckPartial([][]float64{make([]float64, 9)}, 1, 8)
	assert.ErrorIs(t, err, ErrWrongInputSize)

	_, err = CheckPartial([][]float64{make([]float64, 5), make([]float64, 4)}, 2, 8)
	assert.ErrorIs(t, err, ErrWrongInputSize)

	_, err = CheckPartial([][]float64{make([]float64, 5)}, 2, 8)
	assert.ErrorIs(t, err, ErrWrongNumberOfChannels)
}

func TestRatioError(t *testing.T) {
	err := error(&RatioError{Requested: 3, Min: 0.5, Max: 2})
	assert.ErrorIs(t, err, ErrInvalidRatio)
	assert.Contains(t, err.Error(), "outside [0.5, 2]")

	err = &RatioError{Requested: 1.1, Reason: "engine ratio is fixed"}
	assert.Contains(t, err.Error(), "engine ratio is fixed")
}
