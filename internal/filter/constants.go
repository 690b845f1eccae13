package filter

// Window coefficients.
const (
	bhA0 = 0.35875
	bhA1 = 0.48829
	bhA2 = 0.14128
	bhA3 = 0.01168

	blackmanA0 = 0.42
	blackmanA1 = 0.5
	blackmanA2 = 0.08

	hannA0 = 0.5
)

// Design limits.
const (
	sincZeroThreshold        = 1e-10
	maxPrototypeTaps         = 1 << 22
	defaultKaiserAttenuation = 120.0
	defaultResponsePoints    = 512

	minPhaseGain = 1e-6 // rows below this DC gain cannot be normalized
)

// Cubic phase interpolation, coef(x) = a + x(b + x(c + x·d)).
const (
	cubicCenterCoeff = 0.5
	cubicDCoeff      = 1.0 / 6.0
	cubicCMultiplier = 4.0
)

// Polyphase bank layout.
const (
	minBankTaps = 2
	guardRows   = 3 // phases -1, P and P+1
)
