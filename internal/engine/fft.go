//go:build !nofft

package engine

import (
	"fmt"
	"math"

	"github.com/tphakala/simd/c128"

	"github.com/tphakala/go-audio-resampler/v2/internal/chunk"
	"github.com/tphakala/go-audio-resampler/v2/internal/filter"
	"github.com/tphakala/go-audio-resampler/v2/internal/mathutil"
	"github.com/tphakala/go-audio-resampler/v2/internal/simdops"
)

// FFTConfig configures an FFT engine.
type FFTConfig struct {
	// InputRate and OutputRate give the ratio exactly when both are set.
	InputRate  int
	OutputRate int

	// Ratio is used when the rates are not set. It must be within 1e-9 of
	// a fraction whose terms do not exceed MaxRationalFactor.
	Ratio float64

	Channels  int
	ChunkSize int
	Mode      chunk.Mode

	// SubChunks splits the fixed side of a chunk into that many FFT blocks.
	// Zero means one.
	SubChunks int

	// Factory builds the transforms. Nil selects NewGonumFFT.
	Factory FFTFactory
}

// Validate checks the configuration.
func (c *FFTConfig) Validate() error {
	if c.Channels < 1 || c.Channels > maxChannels {
		return fmt.Errorf("%w: channels must be in [1, %d], got %d", chunk.ErrConfiguration, maxChannels, c.Channels)
	}
	if c.ChunkSize < 1 || c.ChunkSize > maxChunkSize {
		return fmt.Errorf("%w: chunk size must be in [1, %d], got %d", chunk.ErrConfiguration, maxChunkSize, c.ChunkSize)
	}
	if c.Mode < chunk.FixedInput || c.Mode > chunk.FixedInputOutput {
		return fmt.Errorf("%w: unknown mode %d", chunk.ErrConfiguration, int(c.Mode))
	}
	if c.SubChunks < 0 || c.SubChunks > c.ChunkSize {
		return fmt.Errorf("%w: sub-chunks must be in [0, %d], got %d", chunk.ErrConfiguration, c.ChunkSize, c.SubChunks)
	}
	if c.InputRate < 0 || c.OutputRate < 0 {
		return fmt.Errorf("%w: sample rates must not be negative", chunk.ErrConfiguration)
	}
	return nil
}

// upDown returns the reduced ratio terms.
func (c *FFTConfig) upDown() (int, int, error) {
	var up, down int
	if c.InputRate > 0 && c.OutputRate > 0 {
		up, down = mathutil.Reduce(c.OutputRate, c.InputRate)
	} else {
		if !validRatio(c.Ratio) {
			return 0, 0, &chunk.RatioError{Requested: c.Ratio, Min: minRatio, Max: maxRatio}
		}
		var err error
		up, down, err = mathutil.Rational(c.Ratio, MaxRationalFactor, rationalTolerance)
		if err != nil {
			return 0, 0, &chunk.RatioError{Requested: c.Ratio, Reason: "no exact fraction with small terms"}
		}
	}
	if r := float64(up) / float64(down); !validRatio(r) {
		return 0, 0, &chunk.RatioError{Requested: r, Min: minRatio, Max: maxRatio}
	}
	if up > MaxRationalFactor || down > MaxRationalFactor {
		return 0, 0, &chunk.RatioError{
			Requested: float64(up) / float64(down),
			Reason:    fmt.Sprintf("%d/%d has a term above %d", up, down, MaxRationalFactor),
		}
	}
	return up, down, nil
}

// FFT resamples at a fixed rational ratio up/down. Each block of fftIn =
// k·down input frames is filtered and resampled in the frequency domain
// into fftOut = k·up output frames; consecutive blocks are joined by
// overlap-add.
type FFT[F simdops.Float] struct {
	cfg    FFTConfig
	up     int
	down   int
	fftIn  int
	fftOut int

	fwd    RealFFT // length 2·fftIn
	inv    RealFFT // length 2·fftOut
	filter []complex128

	block   []float64
	spec    []complex128
	outSpec []complex128
	wave    []float64
	overlap [][]float64

	inFIFO  []*chunk.Ring[F] // FixedInput
	outFIFO []*chunk.Ring[F] // FixedOutput
	tmp     [][]F            // one output block per channel, FixedOutput

	scratch [][]F
	padded  [][]F

	maxIn  int
	maxOut int
}

// NewFFT designs the filter and allocates the block buffers for cfg.
func NewFFT[F simdops.Float](cfg FFTConfig) (*FFT[F], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	up, down, err := cfg.upDown()
	if err != nil {
		return nil, err
	}
	if cfg.Factory == nil {
		cfg.Factory = NewGonumFFT
	}

	k := chunk.BlockFactor(cfg.Mode, cfg.ChunkSize, up, down, cfg.SubChunks)
	k = max(k, (minFFTBlock+down-1)/down)
	if k*max(up, down) > maxFFTBlock {
		return nil, fmt.Errorf("%w: FFT block of %d x %d frames exceeds %d",
			chunk.ErrConfiguration, k, max(up, down), maxFFTBlock)
	}

	e := &FFT[F]{
		cfg:    cfg,
		up:     up,
		down:   down,
		fftIn:  k * down,
		fftOut: k * up,
	}
	e.fwd = cfg.Factory(2 * e.fftIn)
	e.inv = cfg.Factory(2 * e.fftOut)
	if e.fwd.Len() != 2*e.fftIn || e.inv.Len() != 2*e.fftOut {
		return nil, fmt.Errorf("%w: FFT factory returned wrong transform lengths", chunk.ErrConfiguration)
	}
	if err := e.designFilter(); err != nil {
		return nil, err
	}

	e.block = make([]float64, 2*e.fftIn)
	e.spec = make([]complex128, e.fftIn+1)
	e.outSpec = make([]complex128, e.fftOut+1)
	e.wave = make([]float64, 2*e.fftOut)
	e.allocate()
	return e, nil
}

// designFilter builds the anti-aliasing filter spectrum, scaled for the
// unnormalized inverse transform.
func (e *FFT[F]) designFilter() error {
	cutoff := math.Pow(fftCutoffBase, fftCutoffScale/float64(e.fftIn))
	if e.up < e.down {
		cutoff *= float64(e.up) / float64(e.down)
	}
	taps, err := filter.DesignSinc(filter.SincDesign{
		Length: e.fftIn,
		Phases: 1,
		Cutoff: cutoff,
		Window: filter.BlackmanHarris2,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", chunk.ErrConfiguration, err)
	}

	padded := make([]float64, 2*e.fftIn)
	copy(padded, taps)
	e.filter = e.fwd.Forward(make([]complex128, e.fftIn+1), padded)
	scale := complex(1/float64(2*e.fftIn), 0)
	for i := range e.filter {
		e.filter[i] *= scale
	}
	return nil
}

func (e *FFT[F]) allocate() {
	c := e.cfg.ChunkSize
	ch := e.cfg.Channels
	e.overlap = make([][]float64, ch)
	for i := range e.overlap {
		e.overlap[i] = make([]float64, e.fftOut)
	}

	switch e.cfg.Mode {
	case chunk.FixedInput:
		e.maxIn = c
		e.maxOut = (e.fftIn - 1 + c) / e.fftIn * e.fftOut
		e.inFIFO = make([]*chunk.Ring[F], ch)
		for i := range e.inFIFO {
			e.inFIFO[i] = chunk.NewRing[F](e.fftIn - 1 + c)
		}
	case chunk.FixedOutput:
		e.maxIn = (c + e.fftOut - 1) / e.fftOut * e.fftIn
		e.maxOut = c
		e.outFIFO = make([]*chunk.Ring[F], ch)
		e.tmp = make([][]F, ch)
		for i := range e.outFIFO {
			e.outFIFO[i] = chunk.NewRing[F](c + e.fftOut)
			e.tmp[i] = make([]F, e.fftOut)
		}
	default:
		e.maxIn = e.fftIn
		e.maxOut = e.fftOut
	}

	e.scratch = make([][]F, ch)
	e.padded = make([][]F, ch)
	for i := range e.scratch {
		e.scratch[i] = make([]F, e.maxIn)
	}
}

// BlockSizes returns the input and output frames of one FFT block.
func (e *FFT[F]) BlockSizes() (fftIn, fftOut int) { return e.fftIn, e.fftOut }

// Fraction returns the reduced ratio terms.
func (e *FFT[F]) Fraction() (up, down int) { return e.up, e.down }

// Ratio returns up/down.
func (e *FFT[F]) Ratio() float64 { return float64(e.up) / float64(e.down) }

// Channels returns the configured channel count.
func (e *FFT[F]) Channels() int { return e.cfg.Channels }

// OutputDelay is the group delay of the filter in output frames.
func (e *FFT[F]) OutputDelay() int { return e.fftOut / 2 }

// InputFramesNext returns the exact input frame count of the next
// ProcessInto call.
func (e *FFT[F]) InputFramesNext() int {
	switch e.cfg.Mode {
	case chunk.FixedInput:
		return e.cfg.ChunkSize
	case chunk.FixedOutput:
		missing := max(0, e.cfg.ChunkSize-e.outFIFO[0].Len())
		return (missing + e.fftOut - 1) / e.fftOut * e.fftIn
	default:
		return e.fftIn
	}
}

// OutputFramesNext returns the output frame count of the next ProcessInto
// call.
func (e *FFT[F]) OutputFramesNext() int {
	switch e.cfg.Mode {
	case chunk.FixedInput:
		return (e.inFIFO[0].Len() + e.cfg.ChunkSize) / e.fftIn * e.fftOut
	case chunk.FixedOutput:
		return e.cfg.ChunkSize
	default:
		return e.fftOut
	}
}

// InputFramesMax bounds InputFramesNext.
func (e *FFT[F]) InputFramesMax() int { return e.maxIn }

// OutputFramesMax bounds OutputFramesNext.
func (e *FFT[F]) OutputFramesMax() int { return e.maxOut }

// ProcessInto consumes exactly InputFramesNext frames per channel and writes
// OutputFramesNext frames into the front of output.
func (e *FFT[F]) ProcessInto(input, output [][]F) (int, int, error) {
	in, out := e.InputFramesNext(), e.OutputFramesNext()
	if err := chunk.CheckInput(input, e.cfg.Channels, in); err != nil {
		return 0, 0, err
	}
	if err := chunk.CheckOutput(output, e.cfg.Channels, out); err != nil {
		return 0, 0, err
	}
	e.run(input, in, output)
	return in, out, nil
}

// ProcessPartial accepts up to InputFramesNext frames, or nil, padding the
// rest with silence.
func (e *FFT[F]) ProcessPartial(input, output [][]F) (int, int, error) {
	in, out := e.InputFramesNext(), e.OutputFramesNext()
	n, err := chunk.CheckPartial(input, e.cfg.Channels, in)
	if err != nil {
		return 0, 0, err
	}
	if err := chunk.CheckOutput(output, e.cfg.Channels, out); err != nil {
		return 0, 0, err
	}
	for ch, buf := range e.scratch {
		buf = buf[:in]
		if n > 0 {
			copy(buf, input[ch][:n])
		}
		clear(buf[n:])
		e.padded[ch] = buf
	}
	e.run(e.padded, in, output)
	return n, out, nil
}

// Process allocates the output and runs one chunk.
func (e *FFT[F]) Process(input [][]F) ([][]F, error) {
	out := makePlanes[F](e.cfg.Channels, e.OutputFramesNext())
	_, n, err := e.ProcessInto(input, out)
	if err != nil {
		return nil, err
	}
	return truncatePlanes(out, n), nil
}

func (e *FFT[F]) run(input [][]F, frames int, output [][]F) {
	switch e.cfg.Mode {
	case chunk.FixedInput:
		for ch, r := range e.inFIFO {
			r.Write(input[ch][:frames])
		}
		blocks := e.inFIFO[0].Len() / e.fftIn
		for b := range blocks {
			for ch, r := range e.inFIFO {
				e.processBlock(ch, r.Window(0, e.fftIn), output[ch][b*e.fftOut:(b+1)*e.fftOut])
				r.Discard(e.fftIn)
			}
		}
	case chunk.FixedOutput:
		for b := range frames / e.fftIn {
			for ch, r := range e.outFIFO {
				e.processBlock(ch, input[ch][b*e.fftIn:(b+1)*e.fftIn], e.tmp[ch])
				r.Write(e.tmp[ch])
			}
		}
		for ch, r := range e.outFIFO {
			r.Read(output[ch][:e.cfg.ChunkSize])
		}
	default:
		for ch := range input {
			e.processBlock(ch, input[ch][:e.fftIn], output[ch][:e.fftOut])
		}
	}
}

// processBlock resamples fftIn frames of channel ch into fftOut frames.
func (e *FFT[F]) processBlock(ch int, in, out []F) {
	for i, v := range in {
		e.block[i] = float64(v)
	}
	clear(e.block[e.fftIn:])
	e.spec = e.fwd.Forward(e.spec, e.block)

	n := min(e.fftIn, e.fftOut)
	c128.Mul(e.outSpec[:n], e.spec[:n], e.filter[:n])
	clear(e.outSpec[n:])
	e.wave = e.inv.Inverse(e.wave, e.outSpec)

	ov := e.overlap[ch]
	for i := range out {
		out[i] = F(e.wave[i] + ov[i])
	}
	copy(ov, e.wave[e.fftOut:])
}

// SetRatio accepts only the current ratio: block sizes and filter are tied
// to up/down.
func (e *FFT[F]) SetRatio(value float64, mode chunk.RatioMode) error {
	current := e.Ratio()
	r := mode.Resolve(value, current)
	if math.Abs(r-current) <= rationalTolerance*current {
		return nil
	}
	return &chunk.RatioError{Requested: r, Min: current, Max: current, Reason: "ratio is fixed by the FFT block sizes"}
}

// Reset clears the overlap and the FIFOs.
func (e *FFT[F]) Reset() {
	for _, ov := range e.overlap {
		clear(ov)
	}
	for _, r := range e.inFIFO {
		r.Reset()
	}
	for _, r := range e.outFIFO {
		r.Reset()
	}
}

// Info describes the engine.
func (e *FFT[F]) Info() Info {
	enabled, desc := simdInfo()
	ch := int64(e.cfg.Channels)
	mem := int64(len(e.filter)+len(e.spec)+len(e.outSpec)) * bytesPerComplex128
	mem += int64(len(e.block)+len(e.wave)) * bytesPerFloat64
	mem += ch * int64(e.fftOut) * bytesPerFloat64
	fifo := int64(0)
	for _, r := range e.inFIFO {
		fifo += int64(2 * r.Cap())
	}
	for _, r := range e.outFIFO {
		fifo += int64(2*r.Cap() + e.fftOut)
	}
	mem += (fifo + ch*int64(e.maxIn)) * sizeOf[F]()
	return Info{
		Algorithm:    fmt.Sprintf("fft-%d/%d", e.up, e.down),
		FilterLength: e.fftIn,
		Phases:       1,
		Latency:      e.fftIn,
		MemoryUsage:  mem,
		SIMDEnabled:  enabled,
		SIMDType:     desc,
	}
}
