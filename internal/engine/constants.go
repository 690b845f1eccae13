package engine

// Sinc presets: taps per phase and phase count.
const (
	lowLength      = 64
	lowPhases      = 64
	mediumLength   = 128
	mediumPhases   = 128
	highLength     = 256
	highPhases     = 256
	veryHighLength = 512
	veryHighPhases = 256
)

// Sinc engine limits.
const (
	minSincLength   = 4
	maxSincLength   = 4096
	maxOversampling = 8192
	maxChunkSize    = 1 << 14 // keeps chunk·step within the 63-bit cursor
	maxChannels     = 256

	// defaultRatioMargin sets the default ratio bounds to nominal/1.1 and
	// nominal*1.1.
	defaultRatioMargin = 1.1

	// historyMargin is extra ring capacity, in filter lengths, beyond the
	// largest input chunk.
	historyMargin = 2
)

// FFT engine limits.
const (
	// MaxRationalFactor bounds both terms of the reduced up/down ratio.
	MaxRationalFactor = 1 << 16

	// rationalTolerance is the relative error allowed when turning a real
	// ratio into up/down.
	rationalTolerance = 1e-9

	// fftCutoffBase and fftCutoffScale give the FFT filter cutoff
	// fftCutoffBase^(fftCutoffScale/fftIn), which tightens toward Nyquist as
	// blocks grow.
	fftCutoffBase  = 0.4
	fftCutoffScale = 16.0

	// minFFTBlock and maxFFTBlock bound the block length of one FFT.
	minFFTBlock = 16
	maxFFTBlock = 1 << 22
)

const (
	bytesPerFloat32    = 4
	bytesPerFloat64    = 8
	bytesPerComplex128 = 16
)

// Ratio limits shared by both engines.
const (
	minRatio = 1.0 / 256.0
	maxRatio = 256.0
)
