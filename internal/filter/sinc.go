package filter

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/simd/f64"
)

// ErrInvalidDesign is returned for filter parameters that cannot produce a
// usable low-pass prototype.
var ErrInvalidDesign = errors.New("invalid filter design")

// SincDesign describes a windowed-sinc prototype for a polyphase bank.
type SincDesign struct {
	// Length is the number of taps per phase (L). The evaluated window of
	// input history is exactly this long.
	Length int

	// Phases is the number of polyphase branches (P). The prototype has
	// Length*Phases taps. Use 1 for a plain FIR filter.
	Phases int

	// Cutoff is the corner frequency as a fraction of the Nyquist frequency
	// of the signal being filtered, in (0, 1). Callers scale it by the
	// conversion ratio when the output Nyquist is the lower one.
	Cutoff float64

	// Window tapers the truncated sinc.
	Window WindowFunction

	// Attenuation is the design stopband attenuation in dB for the Kaiser
	// window. Zero selects defaultKaiserAttenuation. Other windows ignore it.
	Attenuation float64
}

// Validate checks the design parameters.
func (d *SincDesign) Validate() error {
	if d.Length < 1 {
		return fmt.Errorf("%w: taps per phase must be positive, got %d", ErrInvalidDesign, d.Length)
	}
	if d.Phases < 1 {
		return fmt.Errorf("%w: phase count must be positive, got %d", ErrInvalidDesign, d.Phases)
	}
	if d.Length*d.Phases > maxPrototypeTaps {
		return fmt.Errorf("%w: %d x %d taps exceeds %d", ErrInvalidDesign, d.Length, d.Phases, maxPrototypeTaps)
	}
	if !(d.Cutoff > 0 && d.Cutoff < 1) {
		return fmt.Errorf("%w: cutoff %v outside (0, 1)", ErrInvalidDesign, d.Cutoff)
	}
	if _, ok := windowNames[d.Window]; !ok {
		return fmt.Errorf("%w: unknown window %d", ErrInvalidDesign, int(d.Window))
	}
	if d.Attenuation < 0 {
		return fmt.Errorf("%w: attenuation %v dB must not be negative", ErrInvalidDesign, d.Attenuation)
	}
	return nil
}

// DesignSinc returns the Length*Phases taps of a windowed ideal low-pass
// filter sampled Phases times per input sample:
//
//	h[n] = fc·sinc(fc·(n - N/2)/P)·w[n],  N = L·P
//
// The taps are scaled so that they sum to Phases, giving every phase an
// average DC gain of one. The peak sits at n = N/2.
func DesignSinc(d SincDesign) ([]float64, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	att := d.Attenuation
	if att == 0 {
		att = defaultKaiserAttenuation
	}

	total := d.Length * d.Phases
	taps := MakeWindow(total, d.Window, att)
	center := float64(total) / 2
	phases := float64(d.Phases)

	for n := range taps {
		t := (float64(n) - center) / phases
		taps[n] *= d.Cutoff * sinc(d.Cutoff*t)
	}

	sum := f64.Sum(taps)
	if math.Abs(sum) < sincZeroThreshold {
		return nil, fmt.Errorf("%w: prototype has no DC response", ErrInvalidDesign)
	}
	f64.Scale(taps, taps, phases/sum)
	return taps, nil
}

// sinc is the normalized sinc sin(πx)/(πx).
func sinc(x float64) float64 {
	if math.Abs(x) < sincZeroThreshold {
		return 1.0
	}
	px := math.Pi * x
	return math.Sin(px) / px
}
