package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// countBySimulation advances a copy until the limit is reached.
func countBySimulation(c Cursor, limit int64) int {
	n := 0
	for c.Pos() < limit {
		c.Advance()
		n++
	}
	return n
}

func TestStepForRatio(t *testing.T) {
	assert.Equal(t, One, StepForRatio(1.0))
	assert.Equal(t, One/2, StepForRatio(2.0))
	assert.Equal(t, 2*One, StepForRatio(0.5))
}

func TestCursor_IndexAndFrac(t *testing.T) {
	c := NewCursor(3*One+One/4, One)
	assert.Equal(t, 3, c.Index())
	assert.Equal(t, One/4, c.Frac())
}

func TestCursor_CountBelow(t *testing.T) {
	tests := []struct {
		name  string
		pos   int64
		step  int64
		limit int64
	}{
		{"unity", 0, One, 10 * One},
		{"upsample", One / 3, StepForRatio(48000.0 / 44100.0), 1000 * One},
		{"downsample", 5 * One, StepForRatio(0.3), 100 * One},
		{"already past", 20 * One, One, 10 * One},
		{"exact boundary", 0, One / 2, 4 * One},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(tt.pos, tt.step)
			assert.Equal(t, countBySimulation(c, tt.limit), c.CountBelow(tt.limit))
		})
	}
}

func TestCursor_RampCountAndPos(t *testing.T) {
	c := NewCursor(0, StepForRatio(1.0))
	c.RampTo(StepForRatio(1.5), 37)
	assert.True(t, c.Ramping())

	for _, limit := range []int64{5 * One, 23 * One, 200 * One} {
		assert.Equal(t, countBySimulation(c, limit), c.CountBelow(limit))
	}

	sim := c
	for k := range 60 {
		assert.Equal(t, sim.Pos(), c.PosAfter(k), "k=%d", k)
		sim.Advance()
	}
}

func TestCursor_RampReachesTarget(t *testing.T) {
	from, to := StepForRatio(1.0), StepForRatio(0.8)
	c := NewCursor(0, from)
	c.RampTo(to, 10)

	prev := from
	for range 10 {
		s := c.Step()
		assert.GreaterOrEqual(t, s, prev, "ramp must be monotonic")
		prev = s
		c.Advance()
	}
	assert.False(t, c.Ramping())
	assert.Equal(t, to, c.Step())
	assert.Equal(t, to, c.Target())
}

func TestCursor_SplitAdvanceMatchesSingleRun(t *testing.T) {
	a := NewCursor(One/7, StepForRatio(1.1))
	a.RampTo(StepForRatio(0.9), 50)
	b := a

	for range 120 {
		a.Advance()
	}

	// b advances in uneven groups with rebases in between.
	rebased := 0
	for _, n := range []int{3, 17, 1, 40, 59} {
		for range n {
			b.Advance()
		}
		whole := b.Index() - 2
		b.Rebase(whole)
		rebased += whole
	}
	assert.Equal(t, a.Pos(), b.Pos()+int64(rebased)<<FracBits)
}

func TestCursor_SetStepAndMoveTo(t *testing.T) {
	c := NewCursor(0, One)
	c.RampTo(2*One, 10)
	c.Advance()

	c.SetStep(3 * One)
	assert.False(t, c.Ramping())
	assert.Equal(t, 3*One, c.Step())

	c.RampTo(One, 0)
	assert.Equal(t, One, c.Step())

	c.MoveTo(5 * One)
	assert.Equal(t, 5, c.Index())
	assert.Equal(t, One, c.Step())
}
