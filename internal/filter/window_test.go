package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-resampler/v2/internal/testutil"
)

const windowTolerance = 1e-12

var allWindows = []WindowFunction{
	BlackmanHarris2, BlackmanHarris, Blackman2, Blackman, Hann2, Hann, Kaiser,
}

func TestMakeWindow_PeakAndEdges(t *testing.T) {
	tests := []struct {
		window  WindowFunction
		maxEdge float64
	}{
		{BlackmanHarris, 1e-3},
		{BlackmanHarris2, 1e-6},
		{Blackman, 1e-12},
		{Blackman2, 1e-12},
		{Hann, 1e-12},
		{Hann2, 1e-12},
	}

	for _, tt := range tests {
		t.Run(tt.window.String(), func(t *testing.T) {
			w := MakeWindow(16, tt.window, 0)
			require.Len(t, w, 16)
			assert.InDelta(t, 1.0, w[8], 1e-6, "peak of a periodic window is at n/2")
			assert.Less(t, math.Abs(w[0]), tt.maxEdge)
			testutil.AssertAllInRange(t, w, -1e-12, 1.0+1e-12)
		})
	}
}

func TestMakeWindow_PeriodicSymmetry(t *testing.T) {
	const n = 64
	for _, wf := range allWindows {
		t.Run(wf.String(), func(t *testing.T) {
			w := MakeWindow(n, wf, 100)
			for i := 1; i < n; i++ {
				assert.InDelta(t, w[i], w[n-i], windowTolerance, "w[%d] != w[%d]", i, n-i)
			}
			testutil.AssertNoNaNOrInf(t, w)
		})
	}
}

func TestMakeWindow_SquaredVariants(t *testing.T) {
	pairs := map[WindowFunction]WindowFunction{
		BlackmanHarris2: BlackmanHarris,
		Blackman2:       Blackman,
		Hann2:           Hann,
	}
	for squared, base := range pairs {
		ws := MakeWindow(33, squared, 0)
		wb := MakeWindow(33, base, 0)
		for i := range ws {
			assert.InDelta(t, wb[i]*wb[i], ws[i], windowTolerance)
		}
	}
}

func TestMakeWindow_Empty(t *testing.T) {
	assert.Empty(t, MakeWindow(0, Hann, 0))
	assert.Empty(t, MakeWindow(-3, Hann, 0))
}

func TestKaiserWindow(t *testing.T) {
	w := KaiserWindow(21, 8.0)
	require.Len(t, w, 21)
	testutil.AssertSymmetric(t, w, windowTolerance)
	testutil.AssertCenterIsMax(t, w)
	assert.InDelta(t, 1.0, w[10], windowTolerance)

	assert.Equal(t, []float64{1.0}, KaiserWindow(1, 8.0))
	assert.Empty(t, KaiserWindow(0, 8.0))

	periodic := MakeWindow(20, Kaiser, 80)
	assert.InDelta(t, 1.0, periodic[10], windowTolerance)
}

func TestCalculateCutoff(t *testing.T) {
	assert.InDelta(t, 0.9471, CalculateCutoff(256, BlackmanHarris2), 1e-3)

	for _, wf := range allWindows {
		prev := 0.0
		for _, n := range []int{16, 32, 64, 128, 256, 512, 1024} {
			fc := CalculateCutoff(n, wf)
			assert.Greater(t, fc, prev, "%s cutoff must grow with length", wf)
			assert.Less(t, fc, 1.0)
			prev = fc
		}
	}
	assert.Zero(t, CalculateCutoff(0, Hann))
}

func TestWindowFunction_Text(t *testing.T) {
	for _, wf := range allWindows {
		text, err := wf.MarshalText()
		require.NoError(t, err)

		var got WindowFunction
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, wf, got)
	}

	var w WindowFunction
	require.NoError(t, w.UnmarshalText([]byte(" Blackman-Harris ")))
	assert.Equal(t, BlackmanHarris, w)

	assert.ErrorIs(t, w.UnmarshalText([]byte("triangle")), ErrInvalidDesign)
	_, err := WindowFunction(99).MarshalText()
	assert.ErrorIs(t, err, ErrInvalidDesign)
	assert.Equal(t, "WindowFunction(99)", WindowFunction(99).String())
}
