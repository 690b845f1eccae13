package engine

import "github.com/tphakala/simd/cpu"

// Info describes a configured engine.
type Info struct {
	// Algorithm names the engine and its interpolation.
	Algorithm string

	// FilterLength is the number of taps applied per output sample.
	FilterLength int

	// Phases is the number of designed filter phases; 1 for the FFT engine.
	Phases int

	// Latency is the input lookahead in frames: how many frames past an
	// output's position must be buffered before it can be produced.
	Latency int

	// MemoryUsage is the approximate size of coefficients, history and
	// scratch buffers in bytes.
	MemoryUsage int64

	// SIMDEnabled reports whether the dot products run vectorized.
	SIMDEnabled bool

	// SIMDType describes the detected instruction set.
	SIMDType string
}

func simdInfo() (bool, string) {
	desc := cpu.Info()
	return desc != "" && desc != "none", desc
}

func sizeOf[F ~float32 | ~float64]() int64 {
	var zero F
	switch any(zero).(type) {
	case float32:
		return bytesPerFloat32
	default:
		return bytesPerFloat64
	}
}
