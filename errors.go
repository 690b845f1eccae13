package resampler

import "github.com/tphakala/go-audio-resampler/v2/internal/chunk"

// Errors returned by resamplers. Every error wraps exactly one of these;
// test with errors.Is.
var (
	ErrConfiguration         = chunk.ErrConfiguration
	ErrWrongNumberOfChannels = chunk.ErrWrongNumberOfChannels
	ErrWrongInputSize        = chunk.ErrWrongInputSize
	ErrWrongOutputSize       = chunk.ErrWrongOutputSize
	ErrInvalidRatio          = chunk.ErrInvalidRatio
)

type (
	// SizeError details a buffer shape mismatch. Retrieve it with
	// errors.As.
	SizeError = chunk.SizeError

	// RatioError details a rejected ratio.
	RatioError = chunk.RatioError
)
