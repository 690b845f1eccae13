// Package mathutil holds the numeric helpers shared by filter design and
// ratio handling: the zeroth-order modified Bessel function used by the
// Kaiser window, and exact rational arithmetic for fixed-ratio engines.
package mathutil

import "math"

// BesselI0 returns I₀(x), the modified Bessel function of the first kind and
// order zero.
//
// Two polynomial fits from Abramowitz & Stegun (9.8.1 and 9.8.2) are used,
// split at |x| = 3.75. Relative error stays below 2e-7 over the range used by
// window design.
func BesselI0(x float64) float64 {
	ax := math.Abs(x)

	if ax < besselSplit {
		t := x / besselSplit
		t *= t
		return 1.0 + t*(i0Small1+t*(i0Small2+t*(i0Small3+
			t*(i0Small4+t*(i0Small5+t*i0Small6)))))
	}

	t := besselSplit / ax
	poly := i0Large0 + t*(i0Large1+t*(i0Large2+t*(i0Large3+
		t*(i0Large4+t*(i0Large5+t*(i0Large6+t*(i0Large7+t*i0Large8)))))))
	return math.Exp(ax) * poly / math.Sqrt(ax)
}

// KaiserBeta maps a stopband attenuation in dB to the Kaiser window β using
// the Kaiser & Schafer fit. Attenuations below 21 dB give β = 0, which
// degenerates to a rectangular window.
func KaiserBeta(attenuation float64) float64 {
	switch {
	case attenuation > kaiserAttHigh:
		return kaiserHighSlope * (attenuation - kaiserHighOffset)
	case attenuation >= kaiserAttMedium:
		delta := attenuation - kaiserAttMedium
		return kaiserMediumScale*math.Pow(delta, kaiserMediumPower) + kaiserMediumSlope*delta
	default:
		return 0.0
	}
}

// KaiserAttenuation is the approximate inverse of KaiserBeta for the high
// attenuation branch.
func KaiserAttenuation(beta float64) float64 {
	if beta < kaiserBetaFloor {
		return 0.0
	}
	return kaiserHighOffset + beta/kaiserHighSlope
}
