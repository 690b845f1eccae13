package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tphakala/go-audio-resampler/v2/internal/testutil"
)

func TestBesselI0(t *testing.T) {
	tests := []struct {
		name      string
		x         float64
		expected  float64
		tolerance float64
	}{
		{"Zero", 0.0, 1.0, 1e-15},
		{"Half", 0.5, 1.063483344, 1e-7},
		{"One", 1.0, 1.266065848, 1e-7},
		{"Three", 3.0, 4.880792565, 1e-7},
		{"Split point", 3.75, 9.118945994, 1e-7},
		{"Five", 5.0, 27.23987183, 1e-7},
		{"Ten", 10.0, 2815.716628, 1e-6},
		{"Negative one", -1.0, 1.266065848, 1e-7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertRelativeError(t, tt.expected, BesselI0(tt.x), tt.tolerance)
		})
	}
}

func TestBesselI0_EvenAndIncreasing(t *testing.T) {
	prev := BesselI0(0)
	for x := 0.1; x < 12.0; x += 0.1 {
		curr := BesselI0(x)
		assert.InDelta(t, curr, BesselI0(-x), 1e-10*curr, "I0 must be even at x=%v", x)
		assert.Greater(t, curr, prev, "I0 must increase at x=%v", x)
		prev = curr
	}
}

func TestKaiserBeta(t *testing.T) {
	tests := []struct {
		name        string
		attenuation float64
		expectedMin float64
		expectedMax float64
	}{
		{"20dB", 20.0, 0.0, 0.1},
		{"50dB", 50.0, 4.5, 4.6},
		{"60dB", 60.0, 5.6, 5.7},
		{"80dB", 80.0, 7.8, 7.9},
		{"120dB", 120.0, 12.2, 12.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertInRange(t, KaiserBeta(tt.attenuation), tt.expectedMin, tt.expectedMax)
		})
	}
}

func TestKaiserAttenuation_Inverse(t *testing.T) {
	for _, att := range []float64{60.0, 80.0, 100.0, 120.0} {
		testutil.AssertRelativeError(t, att, KaiserAttenuation(KaiserBeta(att)), 0.05)
	}
	assert.Zero(t, KaiserAttenuation(0))
}

func BenchmarkBesselI0(b *testing.B) {
	for b.Loop() {
		_ = BesselI0(7.5)
	}
}
