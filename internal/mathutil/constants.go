package mathutil

// Abramowitz & Stegun fits for I₀(x).
const (
	besselSplit = 3.75 // boundary between the small and large argument fits

	i0Small1 = 3.5156229
	i0Small2 = 3.0899424
	i0Small3 = 1.2067492
	i0Small4 = 0.2659732
	i0Small5 = 0.360768e-1
	i0Small6 = 0.45813e-2

	i0Large0 = 0.39894228
	i0Large1 = 0.1328592e-1
	i0Large2 = 0.225319e-2
	i0Large3 = -0.157565e-2
	i0Large4 = 0.916281e-2
	i0Large5 = -0.2057706e-1
	i0Large6 = 0.2635537e-1
	i0Large7 = -0.1647633e-1
	i0Large8 = 0.392377e-2
)

// Kaiser & Schafer β fit.
const (
	kaiserAttHigh   = 50.0 // dB
	kaiserAttMedium = 21.0 // dB

	kaiserHighSlope  = 0.1102
	kaiserHighOffset = 8.7

	kaiserMediumScale = 0.5842
	kaiserMediumPower = 0.4
	kaiserMediumSlope = 0.07886

	kaiserBetaFloor = 0.1
)

// Rational approximation limits.
const (
	// maxContinuedFractionTerms bounds the continued fraction expansion. Any
	// ratio of two integers below 2^16 converges well before this.
	maxContinuedFractionTerms = 64
)
