package resampler

import (
	"fmt"
	"math"

	"github.com/go-audio/audio"
)

// Common sample rates for convenience functions.
const (
	// RateCD is the CD quality sample rate (Red Book standard).
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate.
	RateDAT = 48000

	// RateHiRes88 is the high-resolution 2x CD sample rate.
	RateHiRes88 = 88200

	// RateHiRes96 is the high-resolution 2x DAT sample rate.
	RateHiRes96 = 96000

	// RateHiRes192 is the very high resolution 4x DAT sample rate.
	RateHiRes192 = 192000

	// RateTelephony is the telephony (PSTN narrowband) sample rate.
	RateTelephony = 8000

	// RateVoIP is the VoIP wideband sample rate.
	RateVoIP = 16000

	// RateSpeech is a common speech recognition sample rate.
	RateSpeech = 22050
)

// NewSimple creates a mono sinc resampler at QualityHigh.
func NewSimple[F Float](inputRate, outputRate float64) (VariableResampler[F], error) {
	return NewSinc[F](&Config{
		InputRate:  inputRate,
		OutputRate: outputRate,
		Channels:   1,
		Quality:    QualitySpec{Preset: QualityHigh},
	})
}

// NewStereo creates a stereo sinc resampler with the specified quality.
func NewStereo[F Float](inputRate, outputRate float64, quality QualityPreset) (VariableResampler[F], error) {
	return NewSinc[F](&Config{
		InputRate:  inputRate,
		OutputRate: outputRate,
		Channels:   stereoChannels,
		Quality:    QualitySpec{Preset: quality},
	})
}

// ResampleAll streams a whole planar signal through r and returns
// round(n·ratio) frames per channel aligned so that output frame 0
// corresponds to input frame 0. r is left drained; Reset it before reuse.
func ResampleAll[F Float](r Resampler[F], input [][]F) ([][]F, error) {
	if len(input) != r.Channels() {
		return nil, &SizeError{Err: ErrWrongNumberOfChannels, Channel: -1, Expected: r.Channels(), Actual: len(input)}
	}
	n := len(input[0])
	for ch, plane := range input {
		if len(plane) != n {
			return nil, &SizeError{Err: ErrWrongInputSize, Channel: ch, Expected: n, Actual: len(plane)}
		}
	}

	delay := r.OutputDelay()
	want := int(math.Round(float64(n) * r.Ratio()))
	total := delay + want

	buf := makePlanes[F](r.Channels(), r.OutputFramesMax())
	result := make([][]F, r.Channels())
	for ch := range result {
		result[ch] = make([]F, 0, total+r.OutputFramesMax())
	}
	collect := func(frames int) {
		for ch := range result {
			result[ch] = append(result[ch], buf[ch][:frames]...)
		}
	}

	in := make([][]F, r.Channels())
	pos := 0
	for pos < n {
		need := r.InputFramesNext()
		end := pos + need
		process := r.ProcessInto
		if end > n {
			end = n
			process = r.ProcessPartial
		}
		for ch := range in {
			in[ch] = input[ch][pos:end]
		}
		_, m, err := process(in, buf)
		if err != nil {
			return nil, fmt.Errorf("resample frame %d: %w", pos, err)
		}
		collect(m)
		pos = end
		// A fixed-output engine holding enough history asks for nothing.
		if need == 0 && m == 0 {
			break
		}
	}

	calls := drainCalls(r, delay)
	for i := 0; len(result[0]) < total && i < calls; i++ {
		_, m, err := r.ProcessPartial(nil, buf)
		if err != nil {
			return nil, fmt.Errorf("drain: %w", err)
		}
		collect(m)
	}

	for ch := range result {
		plane := result[ch]
		lo := min(delay, len(plane))
		hi := min(total, len(plane))
		result[ch] = plane[lo:hi]
	}
	return result, nil
}

// drainCalls bounds the number of silent calls needed to flush the
// engine lookahead plus delay output frames.
func drainCalls[F Float](r Resampler[F], delay int) int {
	latency := GetInfo(r).Latency
	perCall := max(1, r.InputFramesMax())
	outPerCall := max(1, r.OutputFramesMax())
	return (latency+perCall-1)/perCall + (delay+outPerCall-1)/outPerCall + drainSlack
}

// ResampleMono resamples a whole mono signal with the sinc engine.
func ResampleMono[F Float](input []F, inputRate, outputRate float64, quality QualityPreset) ([]F, error) {
	r, err := NewSinc[F](&Config{
		InputRate:  inputRate,
		OutputRate: outputRate,
		Channels:   1,
		Quality:    QualitySpec{Preset: quality},
	})
	if err != nil {
		return nil, err
	}
	out, err := ResampleAll[F](r, [][]F{input})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// ResampleStereo resamples a whole stereo signal with the sinc engine.
func ResampleStereo[F Float](left, right []F, inputRate, outputRate float64, quality QualityPreset) (leftOut, rightOut []F, err error) {
	r, err := NewStereo[F](inputRate, outputRate, quality)
	if err != nil {
		return nil, nil, err
	}
	out, err := ResampleAll[F](r, [][]F{left, right})
	if err != nil {
		return nil, nil, err
	}
	return out[0], out[1], nil
}

// ProcessFloatBuffer resamples an interleaved go-audio buffer whose channel
// count matches r and returns a new buffer at the output rate.
func ProcessFloatBuffer(r Resampler[float64], buf *audio.FloatBuffer) (*audio.FloatBuffer, error) {
	if buf == nil || buf.Format == nil {
		return nil, fmt.Errorf("%w: buffer has no format", ErrConfiguration)
	}
	if buf.Format.NumChannels != r.Channels() {
		return nil, &SizeError{Err: ErrWrongNumberOfChannels, Channel: -1,
			Expected: r.Channels(), Actual: buf.Format.NumChannels}
	}

	planes := Deinterleave(buf.Data, r.Channels(), nil)
	out, err := ResampleAll(r, planes)
	if err != nil {
		return nil, err
	}
	return &audio.FloatBuffer{
		Format: &audio.Format{
			NumChannels: r.Channels(),
			SampleRate:  int(math.Round(float64(buf.Format.SampleRate) * r.Ratio())),
		},
		Data: Interleave(nil, out),
	}, nil
}
