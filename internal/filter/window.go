// Package filter designs the windowed-sinc low-pass prototypes used by the
// resampling engines and splits them into polyphase banks.
package filter

import (
	"fmt"
	"math"
	"strings"

	"github.com/tphakala/go-audio-resampler/v2/internal/mathutil"
)

// WindowFunction selects the taper applied to the truncated sinc.
//
// All windows are periodic: for length N the peak sits at index N/2 and
// index 0 is the first zero of the next period. The "2" variants are the
// square of the base window, which trades a wider transition band for a
// much lower sidelobe floor.
type WindowFunction int

const (
	// BlackmanHarris2 is the squared four-term Blackman-Harris window.
	BlackmanHarris2 WindowFunction = iota
	// BlackmanHarris is the four-term Blackman-Harris window (-92 dB sidelobes).
	BlackmanHarris
	// Blackman2 is the squared Blackman window.
	Blackman2
	// Blackman is the classic three-term Blackman window.
	Blackman
	// Hann2 is the squared Hann window.
	Hann2
	// Hann is the raised cosine window.
	Hann
	// Kaiser is the Kaiser-Bessel window; β follows from the designed
	// attenuation.
	Kaiser
)

var windowNames = map[WindowFunction]string{
	BlackmanHarris2: "blackman-harris2",
	BlackmanHarris:  "blackman-harris",
	Blackman2:       "blackman2",
	Blackman:        "blackman",
	Hann2:           "hann2",
	Hann:            "hann",
	Kaiser:          "kaiser",
}

// String returns the lower-case name of the window.
func (w WindowFunction) String() string {
	if name, ok := windowNames[w]; ok {
		return name
	}
	return fmt.Sprintf("WindowFunction(%d)", int(w))
}

// MarshalText implements encoding.TextMarshaler.
func (w WindowFunction) MarshalText() ([]byte, error) {
	if _, ok := windowNames[w]; !ok {
		return nil, fmt.Errorf("%w: unknown window %d", ErrInvalidDesign, int(w))
	}
	return []byte(w.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Matching ignores case.
func (w *WindowFunction) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for fn, n := range windowNames {
		if n == name {
			*w = fn
			return nil
		}
	}
	return fmt.Errorf("%w: unknown window %q", ErrInvalidDesign, name)
}

// squared reports whether the window is the square of a base window.
func (w WindowFunction) squared() bool {
	return w == BlackmanHarris2 || w == Blackman2 || w == Hann2
}

// MakeWindow returns a periodic window of n points. attenuation is only
// consulted by the Kaiser window.
func MakeWindow(n int, w WindowFunction, attenuation float64) []float64 {
	if n < 1 {
		return []float64{}
	}

	window := make([]float64, n)
	np := float64(n)

	switch w {
	case BlackmanHarris, BlackmanHarris2:
		for i := range n {
			x := 2 * math.Pi * float64(i) / np
			window[i] = bhA0 - bhA1*math.Cos(x) + bhA2*math.Cos(2*x) - bhA3*math.Cos(3*x)
		}
	case Blackman, Blackman2:
		for i := range n {
			x := 2 * math.Pi * float64(i) / np
			window[i] = blackmanA0 - blackmanA1*math.Cos(x) + blackmanA2*math.Cos(2*x)
		}
	case Hann, Hann2:
		for i := range n {
			window[i] = hannA0 - hannA0*math.Cos(2*math.Pi*float64(i)/np)
		}
	case Kaiser:
		// A periodic window of n points is the symmetric window of n+1
		// points without its last sample.
		copy(window, KaiserWindow(n+1, mathutil.KaiserBeta(attenuation)))
	}

	if w.squared() {
		for i, v := range window {
			window[i] = v * v
		}
	}
	return window
}

// KaiserWindow generates a symmetric Kaiser window of the given length:
//
//	w[n] = I₀(β·sqrt(1 - ((n - α)/α)²)) / I₀(β),  α = (length-1)/2
//
// The center tap is 1 and w[i] == w[length-1-i].
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return []float64{}
	}

	window := make([]float64, length)
	if length == 1 {
		window[0] = 1.0
		return window
	}

	alpha := float64(length-1) / 2
	i0Beta := mathutil.BesselI0(beta)
	for n := range length {
		x := (float64(n) - alpha) / alpha
		window[n] = mathutil.BesselI0(beta*math.Sqrt(math.Max(0, 1-x*x))) / i0Beta
	}
	return window
}

// CalculateCutoff returns a relative cutoff, as a fraction of Nyquist, that
// keeps the transition band of a sinc of the given length and window just
// below Nyquist. The cubic fit 1/(1 + k1/n + k2/n² + k3/n³) was measured per
// window; Kaiser uses the Blackman-Harris fit, which it resembles at the
// attenuations used here.
func CalculateCutoff(length int, w WindowFunction) float64 {
	if length < 1 {
		return 0
	}

	k := cutoffFits[w]
	if w == Kaiser {
		k = cutoffFits[BlackmanHarris]
	}
	n := float64(length)
	return 1.0 / (k[0]/n + k[1]/(n*n) + k[2]/(n*n*n) + 1.0)
}

// cutoffFits holds {k1, k2, k3} for CalculateCutoff.
var cutoffFits = map[WindowFunction][3]float64{
	BlackmanHarris:  {8.041443677716476, 55.9506779343387, 898.0287985384213},
	BlackmanHarris2: {13.745202940783823, 121.73532586374934, 5964.163279612051},
	Blackman:        {6.159598046201173, 18.926415097606878, 653.4247430458968},
	Blackman2:       {9.506235102129398, 79.13120634953742, 1502.2316160588925},
	Hann:            {3.3481080887677166, 10.106519434875038, 78.96345249024414},
	Hann2:           {5.38751148378734, 29.69451915489501, 184.82117462266237},
}
