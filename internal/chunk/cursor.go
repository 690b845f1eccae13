package chunk

import "math"

// Fixed-point layout of a Cursor position: the integer part counts input
// samples, the low FracBits hold the fraction.
const (
	FracBits = 40
	One      = int64(1) << FracBits
	FracMask = One - 1
)

// StepForRatio returns the fixed-point input advance per output sample for
// an output/input ratio.
func StepForRatio(ratio float64) int64 {
	return int64(math.Round(float64(One) / ratio))
}

// Cursor is the read position of an interpolating engine into its input
// history, in fixed point, together with the per-output advance.
//
// The position of output k is the sum of the first k steps. Steps depend
// only on the output index since the last SetStep or RampTo, never on how
// outputs are split between calls, so chunking cannot change the result.
// Rebase removes whole samples only, so no rounding ever accumulates.
type Cursor struct {
	pos  int64
	step int64 // step once any ramp has finished

	// Linear ramp from `from` to `step` over rampLen outputs.
	from    int64
	rampLen int
	rampPos int
}

// NewCursor returns a cursor at pos advancing by step.
func NewCursor(pos, step int64) Cursor {
	return Cursor{pos: pos, step: step, from: step}
}

// Pos returns the fixed-point position of the next output.
func (c *Cursor) Pos() int64 { return c.pos }

// Index returns the integer sample index of the next output.
func (c *Cursor) Index() int { return int(c.pos >> FracBits) }

// Frac returns the fractional part of the next output position.
func (c *Cursor) Frac() int64 { return c.pos & FracMask }

// Target returns the step in effect once any ramp completes.
func (c *Cursor) Target() int64 { return c.step }

// Step returns the step that the next Advance will apply.
func (c *Cursor) Step() int64 { return c.stepAt(0) }

// Ramping reports whether a ramp is still in progress.
func (c *Cursor) Ramping() bool { return c.rampPos < c.rampLen }

// stepAt returns the step applied after the k-th next output.
func (c *Cursor) stepAt(k int) int64 {
	r := c.rampPos + k
	if r >= c.rampLen {
		return c.step
	}
	frac := float64(r+1) / float64(c.rampLen)
	return c.from + int64(math.Round(float64(c.step-c.from)*frac))
}

// SetStep switches to step immediately, cancelling any ramp.
func (c *Cursor) SetStep(step int64) {
	*c = Cursor{pos: c.pos, step: step, from: step}
}

// RampTo moves the step linearly from its current value to step over the
// next n outputs. n <= 0 behaves like SetStep.
func (c *Cursor) RampTo(step int64, n int) {
	if n <= 0 {
		c.SetStep(step)
		return
	}
	*c = Cursor{pos: c.pos, step: step, from: c.Step(), rampLen: n}
}

// Advance moves past one output.
func (c *Cursor) Advance() {
	c.pos += c.stepAt(0)
	if c.rampPos < c.rampLen {
		c.rampPos++
	}
}

// PosAfter returns the position of the output n places ahead, without
// moving the cursor. PosAfter(0) == Pos().
func (c *Cursor) PosAfter(n int) int64 {
	pos := c.pos
	k := 0
	for ; k < n && c.rampPos+k < c.rampLen; k++ {
		pos += c.stepAt(k)
	}
	return pos + int64(n-k)*c.step
}

// CountBelow returns how many consecutive outputs, starting with the next
// one, lie strictly before the fixed-point position limit.
func (c *Cursor) CountBelow(limit int64) int {
	pos := c.pos
	k := 0
	for ; c.rampPos+k < c.rampLen; k++ {
		if pos >= limit {
			return k
		}
		pos += c.stepAt(k)
	}
	if pos >= limit {
		return k
	}
	return k + int((limit-pos+c.step-1)/c.step)
}

// Rebase shifts the origin forward by samples whole input samples.
func (c *Cursor) Rebase(samples int) {
	c.pos -= int64(samples) << FracBits
}

// MoveTo places the cursor at pos, keeping the step and cancelling any
// ramp.
func (c *Cursor) MoveTo(pos int64) {
	*c = NewCursor(pos, c.step)
}
