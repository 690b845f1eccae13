package filter

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBank(t *testing.T, taps, phases int, window WindowFunction) (*Bank, []float64) {
	t.Helper()
	proto, err := DesignSinc(SincDesign{
		Length: taps,
		Phases: phases,
		Cutoff: CalculateCutoff(taps, window),
		Window: window,
	})
	require.NoError(t, err)

	bank, err := NewBank(proto, taps, phases)
	require.NoError(t, err)
	return bank, proto
}

func TestNewBank_Errors(t *testing.T) {
	proto := make([]float64, 64)

	_, err := NewBank(proto, 8, 4)
	require.ErrorIs(t, err, ErrInvalidDesign, "length mismatch")

	_, err = NewBank(proto[:8], 1, 8)
	require.ErrorIs(t, err, ErrInvalidDesign, "too few taps")

	_, err = NewBank(proto, 8, 8)
	require.ErrorIs(t, err, ErrInvalidDesign, "all-zero prototype has no DC response")
}

func TestBank_UnityDCGainEveryPhase(t *testing.T) {
	tests := []struct {
		name   string
		taps   int
		phases int
		window WindowFunction
	}{
		{"low", 64, 64, Hann2},
		{"medium", 128, 128, Blackman2},
		{"high", 256, 256, BlackmanHarris2},
		{"odd", 33, 7, Kaiser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bank, _ := newTestBank(t, tt.taps, tt.phases, tt.window)
			assert.Equal(t, tt.taps, bank.Taps())
			assert.Equal(t, tt.phases, bank.Phases())

			for p := range bank.Phases() {
				assert.InDelta(t, 1.0, bank.DCGain(p), 1e-12, "phase %d", p)
			}
		})
	}
}

func TestBank_InterpolatedDCGain(t *testing.T) {
	bank, _ := newTestBank(t, 64, 32, BlackmanHarris2)
	rng := rand.New(rand.NewPCG(1, 2))
	row := make([]float64, bank.Taps())

	for _, order := range []InterpOrder{InterpNearest, InterpLinear, InterpCubic} {
		coeffs, err := bank.Coefficients(order)
		require.NoError(t, err)

		for range 200 {
			p := rng.IntN(bank.Phases())
			x := rng.Float64()
			coeffs.Eval(row, p, x)

			var sum float64
			for _, v := range row {
				sum += v
			}
			assert.InDelta(t, 1.0, sum, 1e-12, "%s phase %d x=%.3f", order, p, x)
		}
	}
}

func TestBank_InterpolationEndpoints(t *testing.T) {
	bank, _ := newTestBank(t, 32, 16, Blackman2)
	row := make([]float64, bank.Taps())

	for _, order := range []InterpOrder{InterpLinear, InterpCubic} {
		coeffs, err := bank.Coefficients(order)
		require.NoError(t, err)

		for p := range bank.Phases() {
			coeffs.Eval(row, p, 0)
			assert.InDeltaSlice(t, coeffs.A[p], row, 1e-15, "%s at x=0", order)

			coeffs.Eval(row, p, 1)
			assert.InDeltaSlice(t, coeffs.A[p+1], row, 1e-12, "%s at x=1", order)
		}
	}
}

func TestBank_RowLayout(t *testing.T) {
	const taps, phases = 16, 8
	bank, proto := newTestBank(t, taps, phases, BlackmanHarris)

	// The sinc peak belongs to phase 0, just before the window center.
	row0 := bank.Row(0)
	peak := 0
	for j, v := range row0 {
		if v > row0[peak] {
			peak = j
		}
	}
	assert.Equal(t, taps/2-1, peak)

	// Each row is a scaled slice of the prototype.
	for p := range phases {
		row := bank.Row(p)
		scale := row[taps/2] / proto[(taps/2-1)*phases+p]
		for j := range taps {
			assert.InDelta(t, proto[(taps-1-j)*phases+p]*scale, row[j], 1e-12)
		}
	}
}

func TestBank_RowIsModuloPhases(t *testing.T) {
	bank, _ := newTestBank(t, 16, 8, Hann2)

	assert.Equal(t, bank.Row(3), bank.Row(11))
	assert.Equal(t, bank.Row(7), bank.Row(-1))
	assert.Equal(t, bank.Row(0), bank.Row(-8))
}

func TestBank_PhaseResponseIsLowPass(t *testing.T) {
	bank, _ := newTestBank(t, 128, 16, BlackmanHarris2)

	for p := range bank.Phases() {
		resp := bank.PhaseResponse(p, 256)
		assert.InDelta(t, 1.0, resp.Magnitude[0], 1e-12)
		assert.InDelta(t, 1.0, resp.Magnitude[25], 1e-3, "passband of phase %d", p)
	}
}

func TestBank_CoefficientsUnknownOrder(t *testing.T) {
	bank, _ := newTestBank(t, 16, 4, Hann)
	_, err := bank.Coefficients(InterpOrder(7))
	assert.ErrorIs(t, err, ErrInvalidDesign)
}

func TestInterpOrder_Text(t *testing.T) {
	var o InterpOrder
	require.NoError(t, o.UnmarshalText([]byte("Cubic")))
	assert.Equal(t, InterpCubic, o)
	assert.Equal(t, "linear", InterpLinear.String())
	assert.ErrorIs(t, o.UnmarshalText([]byte("sinc")), ErrInvalidDesign)
}

func BenchmarkNewBank(b *testing.B) {
	proto, _ := DesignSinc(SincDesign{Length: 256, Phases: 256, Cutoff: 0.94, Window: BlackmanHarris2})
	for b.Loop() {
		_, _ = NewBank(proto, 256, 256)
	}
}
