// Package chunk is the buffer layer shared by the resampling engines. It owns
// per-channel history storage, the fixed-point read position into that
// history, the block arithmetic of the FFT engine, and the validation of
// caller buffers against the sizes an engine advertised.
package chunk

import (
	"fmt"
	"strings"
)

// Mode selects which side of a process call has a constant frame count.
type Mode int

const (
	// FixedInput takes the same number of input frames on every call; the
	// output count follows from the ratio and carried state.
	FixedInput Mode = iota
	// FixedOutput produces the same number of output frames on every call;
	// the required input count follows from the ratio and carried state.
	FixedOutput
	// FixedInputOutput keeps both sides constant. Only the FFT engine
	// supports it, one block per call.
	FixedInputOutput
)

var modeNames = [...]string{"fixed-input", "fixed-output", "fixed-input-output"}

// String returns the hyphenated name of the mode.
func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for i, n := range modeNames {
		if n == name {
			*m = Mode(i)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown mode %q", ErrConfiguration, name)
}

// RatioMode tells SetRatio how to interpret its argument.
type RatioMode int

const (
	// RatioAbsolute sets the ratio to the given output/input rate ratio.
	RatioAbsolute RatioMode = iota
	// RatioRelative multiplies the nominal ratio given at construction by
	// the argument, so 1.0 returns to nominal speed.
	RatioRelative
)

// Resolve returns the absolute ratio that value denotes under mode.
func (m RatioMode) Resolve(value, nominal float64) float64 {
	if m == RatioRelative {
		return value * nominal
	}
	return value
}

// Sizes is the frame count pair for the next process call.
type Sizes struct {
	Input  int
	Output int
}

// BlockFactor returns k for an FFT engine working at up/down, so that one
// block maps k·down input frames to k·up output frames. chunk is the nominal
// frame count of the fixed side, split into subChunks blocks.
func BlockFactor(mode Mode, chunk, up, down, subChunks int) int {
	subChunks = max(subChunks, 1)
	var k int
	switch mode {
	case FixedOutput:
		k = ceilDiv(chunk, up*subChunks)
	case FixedInputOutput:
		k = ceilDiv(chunk, down)
	default:
		k = ceilDiv(chunk, down*subChunks)
	}
	return max(k, 1)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
