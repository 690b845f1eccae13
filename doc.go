// Package resampler provides streaming audio sample rate conversion in
// pure Go.
//
// Two engines share one chunked, planar [Resampler] contract:
//
//   - The sinc engine interpolates a windowed-sinc polyphase filter bank at
//     any ratio in [1/256, 256]. The ratio can be changed while streaming,
//     either at once with SetRatio or as a linear glide with SetRatioRamp,
//     which makes it suitable for clock drift correction.
//   - The FFT engine converts at a fixed rational ratio up/down by
//     transforming blocks of input, cutting or zero-padding the spectrum
//     and transforming back. It is the faster choice for fixed conversions
//     like 44.1 kHz to 48 kHz. Build with the nofft tag to leave it out.
//
// # Quick Start
//
// For one-shot resampling:
//
//	output, err := resampler.ResampleMono(input, 44100, 48000, resampler.QualityHigh)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For streaming, negotiate the frame counts of every call:
//
//	r, err := resampler.New[float32](&resampler.Config{
//	    InputRate:  44100,
//	    OutputRate: 48000,
//	    Channels:   2,
//	    Mode:       resampler.FixedInput,
//	    ChunkSize:  1024,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out := [][]float32{
//	    make([]float32, r.OutputFramesMax()),
//	    make([]float32, r.OutputFramesMax()),
//	}
//	for chunk := range planarChunks { // r.InputFramesNext() frames each
//	    _, n, err := r.ProcessInto(chunk, out)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    write(out[0][:n], out[1][:n])
//	}
//	// Flush the filter lookahead with silence.
//	_, n, _ := r.ProcessPartial(nil, out)
//
// # Chunk Modes
//
// [FixedInput] consumes ChunkSize frames per call and produces a varying
// number. [FixedOutput] produces ChunkSize frames and asks for a varying
// number; the sinc engine supports both. [FixedInputOutput] is available
// on the FFT engine only and moves whole blocks each call.
//
// ProcessInto never allocates. Output planes may be longer than needed;
// OutputFramesMax frames is always enough.
//
// # Quality Presets
//
// The sinc filter is chosen by [QualitySpec]:
//
//   - [QualityLow]: 64 taps, 64 phases, nearest phase.
//   - [QualityMedium]: 128 taps, 128 phases, linear phase interpolation.
//   - [QualityHigh]: 256 taps, 256 phases, cubic phase interpolation.
//   - [QualityVeryHigh]: 512 taps, 256 phases, cubic phase interpolation.
//
// [QualityCustom] with [SincParams] sets the length, oversampling, cutoff,
// window and interpolation order directly.
//
// # Errors
//
// Every error wraps one of [ErrConfiguration], [ErrWrongNumberOfChannels],
// [ErrWrongInputSize], [ErrWrongOutputSize] or [ErrInvalidRatio]. Buffer
// mismatches carry a [*SizeError], rejected ratios a [*RatioError].
//
// # Interleaved Audio
//
// [Interleaved] adapts any resampler to interleaved buffers, and
// [ProcessFloatBuffer] resamples a go-audio [audio.FloatBuffer] in one go.
//
// # Thread Safety
//
// A Resampler is not safe for concurrent use. Use one instance per stream.
package resampler
