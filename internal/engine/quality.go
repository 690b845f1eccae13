package engine

import (
	"fmt"
	"strings"

	"github.com/tphakala/go-audio-resampler/v2/internal/chunk"
	"github.com/tphakala/go-audio-resampler/v2/internal/filter"
)

// Quality enumerates the sinc filter presets.
type Quality int

const (
	// QualityLow is a short Hann² filter with nearest-phase lookup, for
	// speech and previews.
	QualityLow Quality = iota
	// QualityMedium is a Blackman² filter with linear phase interpolation.
	QualityMedium
	// QualityHigh is a Blackman-Harris² filter with cubic phase
	// interpolation; the default.
	QualityHigh
	// QualityVeryHigh doubles the High filter length for mastering.
	QualityVeryHigh
	// QualityCustom marks explicitly supplied SincParams.
	QualityCustom
)

var qualityNames = [...]string{"low", "medium", "high", "veryhigh", "custom"}

// String returns the lower-case preset name.
func (q Quality) String() string {
	if q >= 0 && int(q) < len(qualityNames) {
		return qualityNames[q]
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}

// UnmarshalText implements encoding.TextUnmarshaler. "very-high" and
// "very_high" are accepted for QualityVeryHigh.
func (q *Quality) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	name = strings.NewReplacer("-", "", "_", "").Replace(name)
	for i, n := range qualityNames {
		if n == name {
			*q = Quality(i)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown quality %q", chunk.ErrConfiguration, name)
}

// SincParams are the filter parameters of the sinc engine.
type SincParams struct {
	// Length is the number of taps per phase, which is also the number of
	// input samples each output looks at. Must be even.
	Length int

	// Oversampling is the number of designed phases per input sample.
	Oversampling int

	// Cutoff is the relative cutoff as a fraction of the input Nyquist
	// frequency before ratio scaling. Zero derives it from Length and
	// Window with filter.CalculateCutoff.
	Cutoff float64

	// Window tapers the sinc.
	Window filter.WindowFunction

	// Interpolation selects how fractional phases are evaluated.
	Interpolation filter.InterpOrder

	// Attenuation is the Kaiser design attenuation in dB; other windows
	// ignore it.
	Attenuation float64
}

// Params returns the parameters of a preset. QualityCustom and unknown
// values return the QualityHigh parameters.
func (q Quality) Params() SincParams {
	switch q {
	case QualityLow:
		return SincParams{Length: lowLength, Oversampling: lowPhases, Window: filter.Hann2, Interpolation: filter.InterpNearest}
	case QualityMedium:
		return SincParams{Length: mediumLength, Oversampling: mediumPhases, Window: filter.Blackman2, Interpolation: filter.InterpLinear}
	case QualityVeryHigh:
		return SincParams{Length: veryHighLength, Oversampling: veryHighPhases, Window: filter.BlackmanHarris2, Interpolation: filter.InterpCubic}
	default:
		return SincParams{Length: highLength, Oversampling: highPhases, Window: filter.BlackmanHarris2, Interpolation: filter.InterpCubic}
	}
}

// Validate checks the parameters.
func (p *SincParams) Validate() error {
	if p.Length < minSincLength || p.Length > maxSincLength || p.Length%2 != 0 {
		return fmt.Errorf("%w: sinc length %d must be even and in [%d, %d]",
			chunk.ErrConfiguration, p.Length, minSincLength, maxSincLength)
	}
	if p.Oversampling < 1 || p.Oversampling > maxOversampling {
		return fmt.Errorf("%w: oversampling %d out of range [1, %d]",
			chunk.ErrConfiguration, p.Oversampling, maxOversampling)
	}
	if p.Cutoff < 0 || p.Cutoff >= 1 {
		return fmt.Errorf("%w: cutoff %v outside [0, 1)", chunk.ErrConfiguration, p.Cutoff)
	}
	if p.Interpolation < filter.InterpNearest || p.Interpolation > filter.InterpCubic {
		return fmt.Errorf("%w: unknown interpolation %d", chunk.ErrConfiguration, int(p.Interpolation))
	}
	return nil
}
