package filter

import (
	"fmt"
	"math"
	"strings"

	"github.com/tphakala/simd/f64"
)

// InterpOrder selects how coefficients are formed between two designed phases.
type InterpOrder int

const (
	// InterpNearest rounds the fractional phase to the closest designed phase.
	InterpNearest InterpOrder = iota
	// InterpLinear blends the two neighbouring phases by the fractional weight.
	InterpLinear
	// InterpCubic fits a cubic through four neighbouring phases.
	InterpCubic
)

var interpNames = [...]string{"nearest", "linear", "cubic"}

// String returns the lower-case name of the order.
func (o InterpOrder) String() string {
	if o >= 0 && int(o) < len(interpNames) {
		return interpNames[o]
	}
	return fmt.Sprintf("InterpOrder(%d)", int(o))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *InterpOrder) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for i, n := range interpNames {
		if n == name {
			*o = InterpOrder(i)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown interpolation %q", ErrInvalidDesign, name)
}

// Bank is a prototype filter split into phase sub-filters.
//
// Row p holds the taps for an output that lies p/P of an input sample after
// the window center, ordered to match the history window oldest sample
// first, so evaluating a phase is one dot product:
//
//	row_p[j] = h[(L-1-j)·P + p]
//
// Rows for p = -1, P and P+1 are kept as guards for interpolation; row P is
// row 0 advanced by one input sample. Every row is normalized to unity DC
// gain.
type Bank struct {
	taps   int
	phases int
	rows   [][]float64 // phase p at index p+1
}

// NewBank partitions prototype (as returned by DesignSinc) into phases rows
// of taps coefficients.
func NewBank(prototype []float64, taps, phases int) (*Bank, error) {
	if taps < minBankTaps || phases < 1 {
		return nil, fmt.Errorf("%w: bank needs at least %d taps and one phase, got %d x %d",
			ErrInvalidDesign, minBankTaps, taps, phases)
	}
	if len(prototype) != taps*phases {
		return nil, fmt.Errorf("%w: prototype has %d taps, want %d",
			ErrInvalidDesign, len(prototype), taps*phases)
	}

	b := &Bank{
		taps:   taps,
		phases: phases,
		rows:   make([][]float64, phases+guardRows),
	}

	for r := range b.rows {
		p := r - 1
		row := make([]float64, taps)
		for j := range taps {
			if n := (taps-1-j)*phases + p; n >= 0 && n < len(prototype) {
				row[j] = prototype[n]
			}
		}

		sum := f64.Sum(row)
		if math.Abs(sum) < minPhaseGain {
			if p >= 0 && p <= phases {
				return nil, fmt.Errorf("%w: phase %d has no DC response", ErrInvalidDesign, p)
			}
		} else {
			f64.Scale(row, row, 1/sum)
		}
		b.rows[r] = row
	}
	return b, nil
}

// Taps returns the number of taps per phase.
func (b *Bank) Taps() int { return b.taps }

// Phases returns the number of designed phases.
func (b *Bank) Phases() int { return b.phases }

// Row returns the sub-filter for phase p modulo Phases. The returned slice
// is shared and must not be modified.
func (b *Bank) Row(p int) []float64 {
	p %= b.phases
	if p < 0 {
		p += b.phases
	}
	return b.rows[p+1]
}

// DCGain returns the sum of the taps of phase p modulo Phases.
func (b *Bank) DCGain(p int) float64 {
	return f64.Sum(b.Row(p))
}

// PhaseResponse returns the frequency response of phase p, normalized to the
// input sample rate.
func (b *Bank) PhaseResponse(p, numPoints int) FilterResponse {
	return ComputeFrequencyResponse(b.Row(p), numPoints)
}

// MemoryUsage returns the approximate coefficient storage in bytes.
func (b *Bank) MemoryUsage() int64 {
	const bytesPerFloat64 = 8
	return int64(len(b.rows)*b.taps) * bytesPerFloat64
}

// Coefficients holds per-phase polynomial rows for one interpolation order:
//
//	coef_p(x) = A[p] + x(B[p] + x(C[p] + x·D[p])),  x in [0, 1)
//
// A has Phases+1 rows so that nearest rounding can select row Phases. B is
// set for linear and cubic orders, C and D only for cubic.
type Coefficients struct {
	Order      InterpOrder
	A, B, C, D [][]float64
}

// Coefficients derives the interpolation rows for order. Since every base
// row has unity DC gain, B, C and D rows sum to zero and interpolated
// coefficients keep unity DC gain.
func (b *Bank) Coefficients(order InterpOrder) (Coefficients, error) {
	c := Coefficients{Order: order, A: make([][]float64, b.phases+1)}
	for p := range b.phases + 1 {
		c.A[p] = b.rows[p+1]
	}

	switch order {
	case InterpNearest:
	case InterpLinear:
		c.B = make([][]float64, b.phases)
		for p := range b.phases {
			f0, f1 := b.rows[p+1], b.rows[p+2]
			row := make([]float64, b.taps)
			for j := range row {
				row[j] = f1[j] - f0[j]
			}
			c.B[p] = row
		}
	case InterpCubic:
		c.B = make([][]float64, b.phases)
		c.C = make([][]float64, b.phases)
		c.D = make([][]float64, b.phases)
		for p := range b.phases {
			fm1, f0, f1, f2 := b.rows[p], b.rows[p+1], b.rows[p+2], b.rows[p+3]
			rb := make([]float64, b.taps)
			rc := make([]float64, b.taps)
			rd := make([]float64, b.taps)
			for j := range b.taps {
				cc := cubicCenterCoeff*(f1[j]+fm1[j]) - f0[j]
				dd := cubicDCoeff * (f2[j] - f1[j] + fm1[j] - f0[j] - cubicCMultiplier*cc)
				rb[j] = f1[j] - f0[j] - dd - cc
				rc[j] = cc
				rd[j] = dd
			}
			c.B[p], c.C[p], c.D[p] = rb, rc, rd
		}
	default:
		return Coefficients{}, fmt.Errorf("%w: unknown interpolation order %d", ErrInvalidDesign, int(order))
	}
	return c, nil
}

// Eval returns the interpolated coefficient row for phase p and fraction x
// into dst, which must have Taps elements. It is the reference for what the
// engines compute fused with the dot product.
func (c *Coefficients) Eval(dst []float64, p int, x float64) {
	a := c.A[p]
	switch c.Order {
	case InterpLinear:
		bb := c.B[p]
		for j := range dst {
			dst[j] = a[j] + x*bb[j]
		}
	case InterpCubic:
		bb, cc, dd := c.B[p], c.C[p], c.D[p]
		for j := range dst {
			dst[j] = a[j] + x*(bb[j]+x*(cc[j]+x*dd[j]))
		}
	default:
		copy(dst, a)
	}
}
