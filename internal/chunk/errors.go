package chunk

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-audio-resampler/v2/internal/simdops"
)

// Error sentinels. Every error returned by the engines wraps exactly one
// of these.
var (
	// ErrConfiguration reports construction parameters that cannot work.
	ErrConfiguration = errors.New("invalid resampler configuration")

	// ErrWrongNumberOfChannels reports a buffer set whose channel count
	// differs from the configured one.
	ErrWrongNumberOfChannels = errors.New("wrong number of channels")

	// ErrWrongInputSize reports input frames that differ from the
	// advertised input size.
	ErrWrongInputSize = errors.New("wrong input size")

	// ErrWrongOutputSize reports output buffers too short for the
	// advertised output size.
	ErrWrongOutputSize = errors.New("wrong output size")

	// ErrInvalidRatio reports a ratio outside the configured bounds or one
	// that the engine cannot represent.
	ErrInvalidRatio = errors.New("invalid resampling ratio")
)

// SizeError describes a buffer shape mismatch. Err is one of
// ErrWrongNumberOfChannels, ErrWrongInputSize or ErrWrongOutputSize.
type SizeError struct {
	Err      error
	Channel  int // -1 when the channel count itself is wrong
	Expected int
	Actual   int
}

func (e *SizeError) Error() string {
	if e.Channel < 0 {
		return fmt.Sprintf("%v: expected %d, got %d", e.Err, e.Expected, e.Actual)
	}
	return fmt.Sprintf("%v: channel %d: expected %d frames, got %d", e.Err, e.Channel, e.Expected, e.Actual)
}

func (e *SizeError) Unwrap() error { return e.Err }

// RatioError describes a rejected ratio.
type RatioError struct {
	Requested float64
	Min, Max  float64
	Reason    string
}

func (e *RatioError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%v: %v: %s", ErrInvalidRatio, e.Requested, e.Reason)
	}
	return fmt.Sprintf("%v: %v outside [%v, %v]", ErrInvalidRatio, e.Requested, e.Min, e.Max)
}

func (e *RatioError) Unwrap() error { return ErrInvalidRatio }

// CheckInput verifies that in has channels planes of exactly frames samples.
func CheckInput[F simdops.Float](in [][]F, channels, frames int) error {
	if len(in) != channels {
		return &SizeError{Err: ErrWrongNumberOfChannels, Channel: -1, Expected: channels, Actual: len(in)}
	}
	for ch, plane := range in {
		if len(plane) != frames {
			return &SizeError{Err: ErrWrongInputSize, Channel: ch, Expected: frames, Actual: len(plane)}
		}
	}
	return nil
}

// CheckPartial verifies a short input: channels planes of equal length not
// exceeding limit. A nil in stands for zero frames. It returns the frame
// count.
func CheckPartial[F simdops.Float](in [][]F, channels, limit int) (int, error) {
	if in == nil {
		return 0, nil
	}
	if len(in) != channels {
		return 0, &SizeError{Err: ErrWrongNumberOfChannels, Channel: -1, Expected: channels, Actual: len(in)}
	}
	frames := len(in[0])
	for ch, plane := range in {
		if len(plane) != frames || len(plane) > limit {
			return 0, &SizeError{Err: ErrWrongInputSize, Channel: ch, Expected: min(frames, limit), Actual: len(plane)}
		}
	}
	return frames, nil
}

// CheckOutput verifies that out has channels planes of at least frames
// samples.
func CheckOutput[F simdops.Float](out [][]F, channels, frames int) error {
	if len(out) != channels {
		return &SizeError{Err: ErrWrongNumberOfChannels, Channel: -1, Expected: channels, Actual: len(out)}
	}
	for ch, plane := range out {
		if len(plane) < frames {
			return &SizeError{Err: ErrWrongOutputSize, Channel: ch, Expected: frames, Actual: len(plane)}
		}
	}
	return nil
}
