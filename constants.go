package resampler

// Channel constants
const (
	stereoChannels = 2   // used by the interleave fast path
	maxChannels    = 256 // maximum supported channel count
)

// Resampling ratio limits
const (
	minRatioFactor = 1.0 / 256.0
	maxRatioFactor = 256.0
)

// Streaming defaults
const (
	defaultChunkSize = 1024

	// drainSlack is the number of silent partial calls ResampleAll makes
	// beyond the engine lookahead before giving up on the tail.
	drainSlack = 4
)
