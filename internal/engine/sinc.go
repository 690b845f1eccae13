package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/tphakala/go-audio-resampler/v2/internal/chunk"
	"github.com/tphakala/go-audio-resampler/v2/internal/filter"
	"github.com/tphakala/go-audio-resampler/v2/internal/simdops"
)

// State is the lifecycle state of a Sinc engine.
type State int

const (
	// StateIdle is the state after construction, Reset or Reconfigure,
	// before the first process call.
	StateIdle State = iota
	// StateSteady is normal streaming at a constant ratio.
	StateSteady
	// StateReconfiguring is streaming while a ratio ramp is in flight.
	StateReconfiguring
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSteady:
		return "steady"
	case StateReconfiguring:
		return "reconfiguring"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// BoundaryPolicy selects what the filter sees before the first input frame.
type BoundaryPolicy int

const (
	// BoundaryZero pads the history with silence. The first outputs of a
	// stream are computed partly against zeros.
	BoundaryZero BoundaryPolicy = iota

	// BoundaryReflect pads the history with the first input frames mirrored
	// around frame 0.
	BoundaryReflect

	// BoundaryPreRoll does not pad. The first Length/2-1 input frames only
	// fill the history and output 0 corresponds to input frame Length/2-1.
	BoundaryPreRoll
)

var boundaryNames = [...]string{"zero", "reflect", "preroll"}

func (b BoundaryPolicy) String() string {
	if b >= 0 && int(b) < len(boundaryNames) {
		return boundaryNames[b]
	}
	return fmt.Sprintf("BoundaryPolicy(%d)", int(b))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *BoundaryPolicy) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	name = strings.ReplaceAll(name, "-", "")
	for i, n := range boundaryNames {
		if n == name {
			*b = BoundaryPolicy(i)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown boundary policy %q", chunk.ErrConfiguration, name)
}

// SincConfig configures a Sinc engine.
type SincConfig struct {
	// Ratio is the initial output/input sample rate ratio.
	Ratio float64

	// MinRatio and MaxRatio bound later ratio changes. Zero selects
	// Ratio/1.1 and Ratio*1.1. The anti-alias cutoff is designed for
	// MinRatio, so a wide range costs passband at the nominal ratio.
	MinRatio float64
	MaxRatio float64

	Channels  int
	ChunkSize int

	// Mode is chunk.FixedInput or chunk.FixedOutput.
	Mode chunk.Mode

	Params   SincParams
	Boundary BoundaryPolicy
}

func (c SincConfig) withDefaults() SincConfig {
	if c.MinRatio == 0 {
		c.MinRatio = c.Ratio / defaultRatioMargin
	}
	if c.MaxRatio == 0 {
		c.MaxRatio = c.Ratio * defaultRatioMargin
	}
	return c
}

// Validate checks the configuration after defaults are applied.
func (c *SincConfig) Validate() error {
	if !validRatio(c.Ratio) {
		return fmt.Errorf("%w: ratio %v out of range [%v, %v]", chunk.ErrConfiguration, c.Ratio, minRatio, maxRatio)
	}
	if !validRatio(c.MinRatio) || !validRatio(c.MaxRatio) || c.MinRatio > c.Ratio || c.MaxRatio < c.Ratio {
		return fmt.Errorf("%w: ratio bounds [%v, %v] must contain %v and lie in [%v, %v]",
			chunk.ErrConfiguration, c.MinRatio, c.MaxRatio, c.Ratio, minRatio, maxRatio)
	}
	if c.Channels < 1 || c.Channels > maxChannels {
		return fmt.Errorf("%w: channels must be in [1, %d], got %d", chunk.ErrConfiguration, maxChannels, c.Channels)
	}
	if c.ChunkSize < 1 || c.ChunkSize > maxChunkSize {
		return fmt.Errorf("%w: chunk size must be in [1, %d], got %d", chunk.ErrConfiguration, maxChunkSize, c.ChunkSize)
	}
	if c.Mode != chunk.FixedInput && c.Mode != chunk.FixedOutput {
		return fmt.Errorf("%w: sinc engine supports fixed-input and fixed-output, not %v", chunk.ErrConfiguration, c.Mode)
	}
	if c.Boundary < BoundaryZero || c.Boundary > BoundaryPreRoll {
		return fmt.Errorf("%w: unknown boundary policy %d", chunk.ErrConfiguration, int(c.Boundary))
	}
	return c.Params.Validate()
}

func validRatio(r float64) bool {
	return r >= minRatio && r <= maxRatio
}

// Sinc is a variable-ratio resampler evaluating a windowed-sinc polyphase
// bank at the fractional input position of every output frame.
//
// The cursor position is relative to the oldest frame held in the history
// rings. Output k is taken at input position pos_k and reads the Length
// frames [i+1-Length/2, i+Length/2] where i is the integer part of pos_k.
type Sinc[F simdops.Float] struct {
	cfg SincConfig
	ops *simdops.Ops[F]

	taps   int
	half   int
	phases int
	order  filter.InterpOrder
	a      [][]F // Phases+1 rows
	b      [][]F
	c      [][]F
	d      [][]F

	rings   []*chunk.Ring[F]
	scratch [][]F // zero-padded input for ProcessPartial
	padded  [][]F
	cur     chunk.Cursor
	ratio   float64
	state   State

	// pending counts reflected pad frames still to be written on the first
	// process call.
	pending int

	maxIn  int
	maxOut int
}

// NewSinc designs the filter bank and allocates history for cfg.
func NewSinc[F simdops.Float](cfg SincConfig) (*Sinc[F], error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := cfg.Params
	cutoff := p.Cutoff
	if cutoff == 0 {
		cutoff = filter.CalculateCutoff(p.Length, p.Window)
	}
	cutoff *= math.Min(1, cfg.MinRatio)

	proto, err := filter.DesignSinc(filter.SincDesign{
		Length:      p.Length,
		Phases:      p.Oversampling,
		Cutoff:      cutoff,
		Window:      p.Window,
		Attenuation: p.Attenuation,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", chunk.ErrConfiguration, err)
	}
	bank, err := filter.NewBank(proto, p.Length, p.Oversampling)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", chunk.ErrConfiguration, err)
	}
	coeffs, err := bank.Coefficients(p.Interpolation)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", chunk.ErrConfiguration, err)
	}

	s := &Sinc[F]{
		cfg:    cfg,
		ops:    simdops.For[F](),
		taps:   p.Length,
		half:   p.Length / 2,
		phases: p.Oversampling,
		order:  p.Interpolation,
		a:      toRows[F](coeffs.A),
		b:      toRows[F](coeffs.B),
		c:      toRows[F](coeffs.C),
		d:      toRows[F](coeffs.D),
		ratio:  cfg.Ratio,
	}
	s.allocate()
	s.Reset()
	return s, nil
}

func toRows[F simdops.Float](rows [][]float64) [][]F {
	if rows == nil {
		return nil
	}
	out := make([][]F, len(rows))
	for i, row := range rows {
		r := make([]F, len(row))
		for j, v := range row {
			r[j] = F(v)
		}
		out[i] = r
	}
	return out
}

// allocate sizes rings and scratch for the current channels and chunk size.
func (s *Sinc[F]) allocate() {
	c := s.cfg.ChunkSize
	switch s.cfg.Mode {
	case chunk.FixedOutput:
		stepMax := float64(chunk.StepForRatio(s.cfg.MinRatio))
		s.maxIn = int(math.Ceil(float64(c)*stepMax/float64(chunk.One))) + s.taps + 2
		s.maxOut = c
	default:
		stepMin := float64(chunk.StepForRatio(s.cfg.MaxRatio))
		s.maxIn = c
		s.maxOut = int(math.Ceil(float64(c)*float64(chunk.One)/stepMin)) + 1
	}

	capacity := historyMargin*s.taps + s.maxIn
	s.rings = make([]*chunk.Ring[F], s.cfg.Channels)
	s.scratch = make([][]F, s.cfg.Channels)
	s.padded = make([][]F, s.cfg.Channels)
	for ch := range s.rings {
		s.rings[ch] = chunk.NewRing[F](capacity)
		s.scratch[ch] = make([]F, s.maxIn)
	}
}

// Reset clears the history and returns to StateIdle. The current target
// ratio is kept; any ramp is finished immediately.
func (s *Sinc[F]) Reset() {
	for _, r := range s.rings {
		r.Reset()
	}
	s.pending = 0
	switch s.cfg.Boundary {
	case BoundaryZero:
		for _, r := range s.rings {
			r.WriteZeros(s.half - 1)
		}
	case BoundaryReflect:
		s.pending = s.half - 1
	}
	s.cur = chunk.NewCursor(int64(s.half-1)<<chunk.FracBits, chunk.StepForRatio(s.ratio))
	s.state = StateIdle
}

// Reconfigure changes the channel count and chunk size. History is
// discarded and the engine returns to StateIdle; the filter is kept.
func (s *Sinc[F]) Reconfigure(channels, chunkSize int) error {
	cfg := s.cfg
	cfg.Channels = channels
	cfg.ChunkSize = chunkSize
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg
	s.allocate()
	s.Reset()
	return nil
}

// held returns the frames in history, counting pad frames not yet written.
func (s *Sinc[F]) held() int {
	return s.rings[0].Len() + s.pending
}

// limit is the first cursor position that cannot be rendered with frames
// history frames.
func (s *Sinc[F]) limit(frames int) int64 {
	return int64(frames-s.half) << chunk.FracBits
}

// InputFramesNext returns the exact input frame count of the next
// ProcessInto call.
func (s *Sinc[F]) InputFramesNext() int {
	if s.cfg.Mode != chunk.FixedOutput {
		return s.cfg.ChunkSize
	}
	last := s.cur.PosAfter(s.cfg.ChunkSize - 1)
	need := int(last>>chunk.FracBits) + s.half + 1
	return max(0, need-s.held())
}

// OutputFramesNext returns the output frame count of the next ProcessInto
// call.
func (s *Sinc[F]) OutputFramesNext() int {
	if s.cfg.Mode == chunk.FixedOutput {
		return s.cfg.ChunkSize
	}
	return s.cur.CountBelow(s.limit(s.held() + s.cfg.ChunkSize))
}

// InputFramesMax bounds InputFramesNext for every reachable state.
func (s *Sinc[F]) InputFramesMax() int { return s.maxIn }

// OutputFramesMax bounds OutputFramesNext for every reachable state.
func (s *Sinc[F]) OutputFramesMax() int { return s.maxOut }

// Sizes returns the next input and output frame counts.
func (s *Sinc[F]) Sizes() chunk.Sizes {
	return chunk.Sizes{Input: s.InputFramesNext(), Output: s.OutputFramesNext()}
}

// ProcessInto consumes exactly InputFramesNext frames per channel and writes
// OutputFramesNext frames into the front of output.
func (s *Sinc[F]) ProcessInto(input, output [][]F) (int, int, error) {
	sz := s.Sizes()
	if err := chunk.CheckInput(input, s.cfg.Channels, sz.Input); err != nil {
		return 0, 0, err
	}
	if err := chunk.CheckOutput(output, s.cfg.Channels, sz.Output); err != nil {
		return 0, 0, err
	}
	s.run(input, sz, output)
	return sz.Input, sz.Output, nil
}

// ProcessPartial accepts up to InputFramesNext frames, or nil, and pads the
// rest with silence. It is used to drain the end of a stream.
func (s *Sinc[F]) ProcessPartial(input, output [][]F) (int, int, error) {
	sz := s.Sizes()
	n, err := chunk.CheckPartial(input, s.cfg.Channels, sz.Input)
	if err != nil {
		return 0, 0, err
	}
	if err := chunk.CheckOutput(output, s.cfg.Channels, sz.Output); err != nil {
		return 0, 0, err
	}
	padded := s.padInput(input, n, sz.Input)
	s.run(padded, sz, output)
	return n, sz.Output, nil
}

// padInput copies the first n frames of input into scratch and zeroes the
// rest up to frames.
func (s *Sinc[F]) padInput(input [][]F, n, frames int) [][]F {
	for ch, buf := range s.scratch {
		buf = buf[:frames]
		if n > 0 {
			copy(buf, input[ch][:n])
		}
		clear(buf[n:])
		s.padded[ch] = buf
	}
	return s.padded
}

// Process allocates the output and runs one chunk.
func (s *Sinc[F]) Process(input [][]F) ([][]F, error) {
	out := makePlanes[F](s.cfg.Channels, s.OutputFramesNext())
	_, n, err := s.ProcessInto(input, out)
	if err != nil {
		return nil, err
	}
	return truncatePlanes(out, n), nil
}

func (s *Sinc[F]) run(input [][]F, sz chunk.Sizes, output [][]F) {
	if s.pending > 0 {
		s.writeReflection(input)
	}
	for ch, r := range s.rings {
		r.Write(input[ch][:sz.Input])
	}

	s.render(output, sz.Output)

	held := s.rings[0].Len()
	drop := min(max(s.cur.Index()-(s.half-1), 0), held)
	for _, r := range s.rings {
		r.Discard(drop)
	}
	s.cur.Rebase(drop)

	switch {
	case s.cur.Ramping():
		s.state = StateReconfiguring
	default:
		s.state = StateSteady
	}
}

// writeReflection writes the pad so that history frame -k equals input
// frame k. Frames beyond the first chunk are taken as zero.
func (s *Sinc[F]) writeReflection(input [][]F) {
	pad := make([]F, s.pending)
	for ch, r := range s.rings {
		src := input[ch]
		for k := range pad {
			pad[k] = 0
			if j := s.pending - k; j < len(src) {
				pad[k] = src[j]
			}
		}
		r.Write(pad)
	}
	s.pending = 0
}

// render produces n outputs from the current history.
func (s *Sinc[F]) render(output [][]F, n int) {
	phases := int64(s.phases)
	dot := s.ops.DotProductUnsafe

	for k := range n {
		start := s.cur.Index() + 1 - s.half
		frac := s.cur.Frac()

		switch s.order {
		case filter.InterpNearest:
			row := s.a[(frac*phases+chunk.One/2)>>chunk.FracBits]
			for ch, r := range s.rings {
				output[ch][k] = dot(r.Window(start, s.taps), row)
			}
		case filter.InterpLinear:
			u := frac * phases
			p := u >> chunk.FracBits
			x := F(float64(u&chunk.FracMask) / float64(chunk.One))
			a, b := s.a[p], s.b[p]
			for ch, r := range s.rings {
				w := r.Window(start, s.taps)
				output[ch][k] = dot(w, a) + x*dot(w, b)
			}
		default:
			u := frac * phases
			p := u >> chunk.FracBits
			x := F(float64(u&chunk.FracMask) / float64(chunk.One))
			a, b, c, d := s.a[p], s.b[p], s.c[p], s.d[p]
			for ch, r := range s.rings {
				output[ch][k] = s.ops.CubicInterpDot(r.Window(start, s.taps), a, b, c, d, x)
			}
		}
		s.cur.Advance()
	}
}

// SetRatio switches to a new ratio at the next output without touching the
// history or the phase. With chunk.RatioRelative, value multiplies the
// configured ratio. A rejected ratio leaves the engine unchanged.
func (s *Sinc[F]) SetRatio(value float64, mode chunk.RatioMode) error {
	r, err := s.resolve(value, mode)
	if err != nil {
		return err
	}
	s.ratio = r
	s.cur.SetStep(chunk.StepForRatio(r))
	if s.state == StateReconfiguring {
		s.state = StateSteady
	}
	return nil
}

// SetRatioRamp moves to a new ratio linearly over the outputs of one
// nominal chunk. The ramp is counted in output frames, so how the stream is
// chunked does not change the result.
func (s *Sinc[F]) SetRatioRamp(value float64, mode chunk.RatioMode) error {
	r, err := s.resolve(value, mode)
	if err != nil {
		return err
	}
	n := s.cfg.ChunkSize
	if s.cfg.Mode == chunk.FixedInput {
		n = max(1, int(math.Round(float64(n)*s.ratio)))
	}
	s.ratio = r
	s.cur.RampTo(chunk.StepForRatio(r), n)
	s.state = StateReconfiguring
	return nil
}

func (s *Sinc[F]) resolve(value float64, mode chunk.RatioMode) (float64, error) {
	r := mode.Resolve(value, s.cfg.Ratio)
	if !(r >= s.cfg.MinRatio && r <= s.cfg.MaxRatio) {
		return 0, &chunk.RatioError{Requested: r, Min: s.cfg.MinRatio, Max: s.cfg.MaxRatio}
	}
	return r, nil
}

// Ratio returns the target ratio.
func (s *Sinc[F]) Ratio() float64 { return s.ratio }

// Channels returns the configured channel count.
func (s *Sinc[F]) Channels() int { return s.cfg.Channels }

// State returns the lifecycle state.
func (s *Sinc[F]) State() State { return s.state }

// OutputDelay is zero: output k is taken at input position k/ratio under
// the padding policies, and at Length/2-1 + k/ratio with BoundaryPreRoll.
func (s *Sinc[F]) OutputDelay() int { return 0 }

// Info describes the engine.
func (s *Sinc[F]) Info() Info {
	enabled, desc := simdInfo()
	rows := len(s.a) + len(s.b) + len(s.c) + len(s.d)
	mem := int64(rows*s.taps) * sizeOf[F]()
	mem += int64(len(s.rings)*(2*s.rings[0].Cap()+s.maxIn)) * sizeOf[F]()
	return Info{
		Algorithm:    "sinc-" + s.order.String(),
		FilterLength: s.taps,
		Phases:       s.phases,
		Latency:      s.half,
		MemoryUsage:  mem,
		SIMDEnabled:  enabled,
		SIMDType:     desc,
	}
}

func makePlanes[F simdops.Float](channels, frames int) [][]F {
	out := make([][]F, channels)
	for ch := range out {
		out[ch] = make([]F, frames)
	}
	return out
}

func truncatePlanes[F simdops.Float](planes [][]F, frames int) [][]F {
	for ch := range planes {
		planes[ch] = planes[ch][:frames]
	}
	return planes
}
