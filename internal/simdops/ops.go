// Package simdops binds the vector kernels of github.com/tphakala/simd to a
// single generic Float type, so engines are written once for float32 and
// float64.
package simdops

import (
	"github.com/tphakala/simd/f32"
	"github.com/tphakala/simd/f64"
)

// Float is the sample type constraint.
type Float interface {
	float32 | float64
}

// Ops holds the kernels for one sample type.
type Ops[F Float] struct {
	// DotProductUnsafe returns Σ a[i]·b[i]. Both slices must have the same
	// length.
	DotProductUnsafe func(a, b []F) F

	// CubicInterpDot returns Σ hist[i]·(a[i] + x(b[i] + x(c[i] + x·d[i]))),
	// the dot product of a history window with a cubic-interpolated
	// filter phase.
	CubicInterpDot func(hist, a, b, c, d []F, x F) F

	// Interleave2 writes dst[2i] = a[i], dst[2i+1] = b[i].
	Interleave2 func(dst, a, b []F)

	// Scale writes dst[i] = a[i]·s.
	Scale func(dst, a []F, s F)
}

var (
	ops32 = Ops[float32]{
		DotProductUnsafe: f32.DotProductUnsafe,
		CubicInterpDot:   f32.CubicInterpDot,
		Interleave2:      f32.Interleave2,
		Scale:            f32.Scale,
	}
	ops64 = Ops[float64]{
		DotProductUnsafe: f64.DotProductUnsafe,
		CubicInterpDot:   f64.CubicInterpDot,
		Interleave2:      f64.Interleave2,
		Scale:            f64.Scale,
	}
)

// For returns the kernels for F. Call it once at construction, not per
// sample.
func For[F Float]() *Ops[F] {
	switch any((*Ops[F])(nil)).(type) {
	case *Ops[float32]:
		return any(&ops32).(*Ops[F])
	default:
		return any(&ops64).(*Ops[F])
	}
}
