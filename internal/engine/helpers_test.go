package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

type streamer interface {
	Channels() int
	InputFramesNext() int
	OutputFramesMax() int
	ProcessInto(input, output [][]float64) (int, int, error)
	ProcessPartial(input, output [][]float64) (int, int, error)
}

// stream pushes input through e in the chunks e asks for, then hands over
// the remainder and flush silent partial chunks.
func stream(t *testing.T, e streamer, input [][]float64, flush int) [][]float64 {
	t.Helper()
	n := len(input[0])
	out := make([][]float64, e.Channels())
	buf := makePlanes[float64](e.Channels(), e.OutputFramesMax())
	collect := func(m int) {
		for ch := range out {
			out[ch] = append(out[ch], buf[ch][:m]...)
		}
	}

	pos := 0
	for {
		need := e.InputFramesNext()
		if pos+need > n {
			break
		}
		_, m, err := e.ProcessInto(slicePlanes(input, pos, pos+need), buf)
		require.NoError(t, err)
		collect(m)
		pos += need
	}

	used, m, err := e.ProcessPartial(slicePlanes(input, pos, n), buf)
	require.NoError(t, err)
	require.Equal(t, n-pos, used)
	collect(m)

	for range flush {
		_, m, err := e.ProcessPartial(nil, buf)
		require.NoError(t, err)
		collect(m)
	}
	return out
}

func slicePlanes(planes [][]float64, from, to int) [][]float64 {
	out := make([][]float64, len(planes))
	for ch, p := range planes {
		out[ch] = p[from:to]
	}
	return out
}

func mono(x []float64) [][]float64 { return [][]float64{x} }

// settled returns out[k] for the outputs whose filter window lies inside
// n input frames at ratio, given taps per output.
func settled(out []float64, n, taps int, ratio float64) []float64 {
	lo := int(math.Ceil(ratio * float64(taps)))
	hi := min(len(out), int(ratio*float64(n-taps)))
	if hi <= lo {
		return nil
	}
	return out[lo:hi]
}
