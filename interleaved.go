package resampler

import (
	"fmt"

	"github.com/tphakala/go-audio-resampler/v2/internal/simdops"
)

// Interleaved adapts a planar Resampler to interleaved buffers
// [c0 c1 .. cN c0 c1 ..]. It owns planar scratch sized for the largest
// call, so steady-state calls do not allocate.
type Interleaved[F Float] struct {
	r   Resampler[F]
	ops *simdops.Ops[F]
	in  [][]F
	out [][]F
}

// NewInterleaved wraps r.
func NewInterleaved[F Float](r Resampler[F]) *Interleaved[F] {
	ch := r.Channels()
	return &Interleaved[F]{
		r:   r,
		ops: simdops.For[F](),
		in:  makePlanes[F](ch, r.InputFramesMax()),
		out: makePlanes[F](ch, r.OutputFramesMax()),
	}
}

// Resampler returns the wrapped resampler.
func (a *Interleaved[F]) Resampler() Resampler[F] { return a.r }

// ProcessInto resamples exactly InputFramesNext interleaved frames and
// writes the output frames to the front of output.
func (a *Interleaved[F]) ProcessInto(input, output []F) (inFrames, outFrames int, err error) {
	ch := a.r.Channels()
	need := a.r.InputFramesNext()
	if len(input) != need*ch {
		return 0, 0, &SizeError{Err: ErrWrongInputSize, Channel: -1, Expected: need * ch, Actual: len(input)}
	}
	if err := a.checkOutput(output); err != nil {
		return 0, 0, err
	}
	in := Deinterleave(input, ch, a.in)
	inFrames, outFrames, err = a.r.ProcessInto(in, a.out)
	if err != nil {
		return 0, 0, err
	}
	a.interleave(output, outFrames)
	return inFrames, outFrames, nil
}

// ProcessPartial is ProcessInto for a final chunk of at most
// InputFramesNext frames. A nil input flushes with silence.
func (a *Interleaved[F]) ProcessPartial(input, output []F) (inFrames, outFrames int, err error) {
	ch := a.r.Channels()
	if len(input)%ch != 0 {
		return 0, 0, fmt.Errorf("%w: %d samples is not a whole number of %d-channel frames",
			ErrWrongInputSize, len(input), ch)
	}
	if err := a.checkOutput(output); err != nil {
		return 0, 0, err
	}
	frames := len(input) / ch
	if frames > a.r.InputFramesNext() {
		return 0, 0, &SizeError{Err: ErrWrongInputSize, Channel: -1, Expected: a.r.InputFramesNext(), Actual: frames}
	}

	var in [][]F
	if input != nil {
		in = Deinterleave(input, ch, a.in)
	}
	inFrames, outFrames, err = a.r.ProcessPartial(in, a.out)
	if err != nil {
		return 0, 0, err
	}
	a.interleave(output, outFrames)
	return inFrames, outFrames, nil
}

func (a *Interleaved[F]) checkOutput(output []F) error {
	want := a.r.OutputFramesNext() * a.r.Channels()
	if len(output) < want {
		return &SizeError{Err: ErrWrongOutputSize, Channel: -1, Expected: want, Actual: len(output)}
	}
	return nil
}

func (a *Interleaved[F]) interleave(dst []F, frames int) {
	if len(a.out) == stereoChannels {
		a.ops.Interleave2(dst[:frames*stereoChannels], a.out[0][:frames], a.out[1][:frames])
		return
	}
	interleaveN(dst, a.out, frames)
}

// Interleave writes planes into dst frame by frame and returns the written
// prefix. dst may be nil.
func Interleave[F Float](dst []F, planes [][]F) []F {
	if len(planes) == 0 {
		return dst[:0]
	}
	ch, frames := len(planes), len(planes[0])
	if cap(dst) < ch*frames {
		dst = make([]F, ch*frames)
	}
	dst = dst[:ch*frames]
	if ch == stereoChannels {
		simdops.For[F]().Interleave2(dst, planes[0], planes[1][:frames])
		return dst
	}
	interleaveN(dst, planes, frames)
	return dst
}

func interleaveN[F Float](dst []F, planes [][]F, frames int) {
	ch := len(planes)
	for c, plane := range planes {
		for i, v := range plane[:frames] {
			dst[i*ch+c] = v
		}
	}
}

// Deinterleave splits src into channels planes. Planes of dst are reused
// when long enough; a nil dst allocates.
func Deinterleave[F Float](src []F, channels int, dst [][]F) [][]F {
	frames := len(src) / channels
	if len(dst) != channels {
		dst = make([][]F, channels)
	}
	for c := range dst {
		if cap(dst[c]) < frames {
			dst[c] = make([]F, frames)
		}
		dst[c] = dst[c][:frames]
	}
	for i := range frames {
		frame := src[i*channels : (i+1)*channels]
		for c, v := range frame {
			dst[c][i] = v
		}
	}
	return dst
}

func makePlanes[F Float](channels, frames int) [][]F {
	planes := make([][]F, channels)
	for c := range planes {
		planes[c] = make([]F, frames)
	}
	return planes
}
