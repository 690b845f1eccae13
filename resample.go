package resampler

import (
	"fmt"
	"math"
	"strings"

	"github.com/tphakala/go-audio-resampler/v2/internal/chunk"
	"github.com/tphakala/go-audio-resampler/v2/internal/engine"
	"github.com/tphakala/go-audio-resampler/v2/internal/filter"
	"github.com/tphakala/go-audio-resampler/v2/internal/simdops"
)

// Float is the sample type constraint: float32 or float64.
type Float = simdops.Float

// Resampler converts planar multi-channel audio between sample rates in
// chunks negotiated through InputFramesNext and OutputFramesNext.
//
// Input and output are planar: one slice per channel, all of one length.
// A Resampler is not safe for concurrent use.
type Resampler[F Float] interface {
	// Process resamples one chunk of InputFramesNext frames into newly
	// allocated output.
	Process(input [][]F) ([][]F, error)

	// ProcessInto resamples exactly InputFramesNext frames and writes
	// OutputFramesNext frames to the front of output, whose planes may be
	// longer. It does not allocate.
	ProcessInto(input, output [][]F) (inFrames, outFrames int, err error)

	// ProcessPartial is ProcessInto for a short final chunk: input may
	// hold fewer frames, or be nil, and is padded with silence.
	ProcessPartial(input, output [][]F) (inFrames, outFrames int, err error)

	// InputFramesNext returns the input frames the next call consumes.
	InputFramesNext() int

	// OutputFramesNext returns the output frames the next call produces.
	OutputFramesNext() int

	// InputFramesMax bounds InputFramesNext over the lifetime of the
	// resampler.
	InputFramesMax() int

	// OutputFramesMax bounds OutputFramesNext over the lifetime of the
	// resampler. Output planes of this length are always large enough.
	OutputFramesMax() int

	// SetRatio changes the output/input ratio from the next output frame.
	// RatioRelative scales the configured ratio. An invalid ratio returns
	// a *RatioError and changes nothing.
	SetRatio(ratio float64, mode RatioMode) error

	// Ratio returns the current target ratio.
	Ratio() float64

	// Channels returns the number of channels.
	Channels() int

	// OutputDelay returns how many leading output frames precede the
	// output for input frame 0.
	OutputDelay() int

	// Reset clears all history so the next call starts a new stream.
	Reset()
}

// VariableResampler is a Resampler whose ratio can glide and whose buffers
// can be resized. The sinc engine implements it.
type VariableResampler[F Float] interface {
	Resampler[F]

	// SetRatioRamp moves to a new ratio linearly over one nominal chunk of
	// output frames.
	SetRatioRamp(ratio float64, mode RatioMode) error

	// Reconfigure changes the channel count and chunk size. History is
	// discarded.
	Reconfigure(channels, chunkSize int) error

	// State reports the lifecycle state.
	State() State
}

// Engine selects the resampling algorithm.
type Engine int

const (
	// EngineSinc interpolates a windowed-sinc polyphase bank at arbitrary,
	// adjustable ratios.
	EngineSinc Engine = iota

	// EngineFFT resamples at a fixed rational ratio by zero-padding or
	// truncating block spectra. It is absent in builds tagged nofft.
	EngineFFT
)

var engineNames = [...]string{"sinc", "fft"}

func (e Engine) String() string {
	if e >= 0 && int(e) < len(engineNames) {
		return engineNames[e]
	}
	return fmt.Sprintf("Engine(%d)", int(e))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Engine) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for i, n := range engineNames {
		if n == name {
			*e = Engine(i)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown engine %q", ErrConfiguration, name)
}

// Config holds resampler construction parameters.
type Config struct {
	// Engine selects the algorithm. The zero value is EngineSinc.
	Engine Engine

	// Ratio is the output/input sample rate ratio. When zero it is derived
	// from OutputRate/InputRate.
	Ratio float64

	// InputRate and OutputRate are sample rates in Hz. Integral rates give
	// the FFT engine an exact fraction.
	InputRate  float64
	OutputRate float64

	// Channels is the number of planar channels.
	Channels int

	// Mode selects which side of each call has a fixed frame count. The
	// sinc engine supports FixedInput and FixedOutput.
	Mode Mode

	// ChunkSize is the fixed frame count per call. Zero selects 1024.
	ChunkSize int

	// Quality selects the sinc filter. The FFT engine ignores it.
	Quality QualitySpec

	// RatioBounds limits SetRatio on the sinc engine. Nil allows 10%
	// either way of the configured ratio.
	RatioBounds *RatioBounds

	// Boundary selects how the sinc engine treats the start of a stream.
	Boundary BoundaryPolicy

	// SubChunks splits each chunk into that many FFT blocks.
	SubChunks int

	// FFT builds the transforms of the FFT engine. Nil uses gonum.
	FFT FFTFactory
}

// RatioBounds is the closed range of ratios SetRatio accepts.
type RatioBounds struct {
	Min float64
	Max float64
}

// QualitySpec selects sinc filter parameters. Sinc, when set, replaces the
// parameters of Preset.
type QualitySpec struct {
	Preset QualityPreset
	Sinc   *SincParams
}

// Params returns the effective sinc parameters.
func (q *QualitySpec) Params() SincParams {
	if q.Sinc != nil {
		return *q.Sinc
	}
	return q.Preset.Params()
}

// Validate checks the quality specification.
func (q *QualitySpec) Validate() error {
	if q.Preset == QualityCustom && q.Sinc == nil {
		return fmt.Errorf("%w: custom quality needs sinc parameters", ErrConfiguration)
	}
	if q.Preset < QualityLow || q.Preset > QualityCustom {
		return fmt.Errorf("%w: unknown quality preset %d", ErrConfiguration, int(q.Preset))
	}
	p := q.Params()
	return p.Validate()
}

// ratio returns the effective output/input ratio.
func (c *Config) ratio() float64 {
	if c.Ratio != 0 {
		return c.Ratio
	}
	if c.InputRate > 0 {
		return c.OutputRate / c.InputRate
	}
	return 0
}

func (c *Config) chunkSize() int {
	if c.ChunkSize == 0 {
		return defaultChunkSize
	}
	return c.ChunkSize
}

// Validate checks the parameters common to both engines. Engine specific
// limits are checked on construction.
func (c *Config) Validate() error {
	if c.Ratio < 0 || math.IsNaN(c.Ratio) || math.IsInf(c.Ratio, 0) {
		return fmt.Errorf("%w: ratio must be positive and finite, got %v", ErrConfiguration, c.Ratio)
	}
	if c.Ratio == 0 && !(c.InputRate > 0 && c.OutputRate > 0) {
		return fmt.Errorf("%w: set Ratio or both sample rates", ErrConfiguration)
	}
	if r := c.ratio(); r < minRatioFactor || r > maxRatioFactor {
		return fmt.Errorf("%w: resampling ratio %v out of range (%v to %v)",
			ErrConfiguration, r, minRatioFactor, maxRatioFactor)
	}
	if c.Channels < 1 || c.Channels > maxChannels {
		return fmt.Errorf("%w: channels must be in [1, %d], got %d", ErrConfiguration, maxChannels, c.Channels)
	}
	if c.ChunkSize < 0 {
		return fmt.Errorf("%w: chunk size must not be negative", ErrConfiguration)
	}
	if c.Engine != EngineSinc && c.Engine != EngineFFT {
		return fmt.Errorf("%w: unknown engine %d", ErrConfiguration, int(c.Engine))
	}
	if b := c.RatioBounds; b != nil && !(b.Min > 0 && b.Min <= b.Max) {
		return fmt.Errorf("%w: invalid ratio bounds [%v, %v]", ErrConfiguration, b.Min, b.Max)
	}
	if c.Engine == EngineSinc {
		return c.Quality.Validate()
	}
	return nil
}

// New creates a resampler for config using the selected engine.
func New[F Float](config *Config) (Resampler[F], error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrConfiguration)
	}
	if config.Engine == EngineFFT {
		return newFFT[F](config)
	}
	return NewSinc[F](config)
}

// NewSinc creates a sinc engine resampler regardless of config.Engine.
func NewSinc[F Float](config *Config) (VariableResampler[F], error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrConfiguration)
	}
	cfg := *config
	cfg.Engine = EngineSinc
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sc := engine.SincConfig{
		Ratio:     cfg.ratio(),
		Channels:  cfg.Channels,
		ChunkSize: cfg.chunkSize(),
		Mode:      cfg.Mode,
		Params:    cfg.Quality.Params(),
		Boundary:  cfg.Boundary,
	}
	if b := cfg.RatioBounds; b != nil {
		sc.MinRatio, sc.MaxRatio = b.Min, b.Max
	}
	s, err := engine.NewSinc[F](sc)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Info describes a configured resampler.
type Info = engine.Info

type infoProvider interface {
	Info() Info
}

// GetInfo returns details of r's engine, or the bare contract values when r
// is not one of this package's engines.
func GetInfo[F Float](r Resampler[F]) Info {
	if p, ok := r.(infoProvider); ok {
		return p.Info()
	}
	return Info{Algorithm: "unknown", SIMDType: "none"}
}

// Re-exported building blocks of the configuration.
type (
	Mode           = chunk.Mode
	RatioMode      = chunk.RatioMode
	BoundaryPolicy = engine.BoundaryPolicy
	QualityPreset  = engine.Quality
	SincParams     = engine.SincParams
	State          = engine.State
	WindowFunction = filter.WindowFunction
	InterpOrder    = filter.InterpOrder
	RealFFT        = engine.RealFFT
	FFTFactory     = engine.FFTFactory
)

const (
	FixedInput       = chunk.FixedInput
	FixedOutput      = chunk.FixedOutput
	FixedInputOutput = chunk.FixedInputOutput

	RatioAbsolute = chunk.RatioAbsolute
	RatioRelative = chunk.RatioRelative

	BoundaryZero    = engine.BoundaryZero
	BoundaryReflect = engine.BoundaryReflect
	BoundaryPreRoll = engine.BoundaryPreRoll

	QualityLow      = engine.QualityLow
	QualityMedium   = engine.QualityMedium
	QualityHigh     = engine.QualityHigh
	QualityVeryHigh = engine.QualityVeryHigh
	QualityCustom   = engine.QualityCustom

	StateIdle          = engine.StateIdle
	StateSteady        = engine.StateSteady
	StateReconfiguring = engine.StateReconfiguring

	WindowBlackmanHarris2 = filter.BlackmanHarris2
	WindowBlackmanHarris  = filter.BlackmanHarris
	WindowBlackman2       = filter.Blackman2
	WindowBlackman        = filter.Blackman
	WindowHann2           = filter.Hann2
	WindowHann            = filter.Hann
	WindowKaiser          = filter.Kaiser

	InterpNearest = filter.InterpNearest
	InterpLinear  = filter.InterpLinear
	InterpCubic   = filter.InterpCubic
)
