package main

import (
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"

	"github.com/tphakala/go-audio-resampler/v2/internal/engine"
	"github.com/tphakala/go-audio-resampler/v2/internal/filter"
)

const (
	defaultPoints   = 32
	ratioMargin     = 1.1 // matches the sinc engine's default ratio bounds
	phasesToShow    = 8
	nyquistFraction = 0.5
)

func newRootCmd(w io.Writer) *cobra.Command {
	var (
		quality engine.Quality
		ratio   float64
		points  int
		name    string
	)
	cmd := &cobra.Command{
		Use:           "analyze-filter",
		Short:         "Show the sinc filter bank for a quality preset",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := quality.UnmarshalText([]byte(name)); err != nil {
				return err
			}
			rep, err := analyze(quality.Params(), ratio, points)
			if err != nil {
				return err
			}
			rep.print(w)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "quality", "high", "quality preset: low, medium, high, veryhigh")
	cmd.Flags().Float64Var(&ratio, "ratio", 48000.0/44100.0, "output/input sample rate ratio")
	cmd.Flags().IntVar(&points, "points", defaultPoints, "frequency response points")
	return cmd
}

// report summarizes a designed polyphase bank.
type report struct {
	params   engine.SincParams
	ratio    float64
	cutoff   float64
	dcGain   []float64
	response filter.FilterResponse
	// stopband is the worst gain in dB at or above the lower Nyquist.
	stopband float64
}

// analyze designs the bank the sinc engine would use at ratio.
func analyze(p engine.SincParams, ratio float64, points int) (*report, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !(ratio > 0) {
		return nil, fmt.Errorf("ratio must be positive, got %v", ratio)
	}

	cutoff := p.Cutoff
	if cutoff == 0 {
		cutoff = filter.CalculateCutoff(p.Length, p.Window)
	}
	cutoff *= math.Min(1, ratio/ratioMargin)

	proto, err := filter.DesignSinc(filter.SincDesign{
		Length:      p.Length,
		Phases:      p.Oversampling,
		Cutoff:      cutoff,
		Window:      p.Window,
		Attenuation: p.Attenuation,
	})
	if err != nil {
		return nil, err
	}
	bank, err := filter.NewBank(proto, p.Length, p.Oversampling)
	if err != nil {
		return nil, err
	}

	rep := &report{
		params:   p,
		ratio:    ratio,
		cutoff:   cutoff,
		dcGain:   make([]float64, bank.Phases()),
		response: filter.ComputeFrequencyResponse(proto, points),
		stopband: math.Inf(-1),
	}
	for ph := range bank.Phases() {
		rep.dcGain[ph] = bank.DCGain(ph)
	}

	// The prototype runs at Oversampling times the input rate.
	edge := nyquistFraction * math.Min(1, ratio) / float64(p.Oversampling)
	gain := float64(p.Oversampling)
	for k, f := range rep.response.Frequencies {
		if f >= edge {
			rep.stopband = math.Max(rep.stopband, filter.MagnitudeDB(rep.response.Magnitude[k]/gain))
		}
	}
	return rep, nil
}

func (r *report) print(w io.Writer) {
	p := r.params
	fmt.Fprintf(w, "=== Sinc filter bank (ratio %.6f) ===\n", r.ratio)
	fmt.Fprintf(w, "  Taps per phase: %d\n", p.Length)
	fmt.Fprintf(w, "  Phases: %d\n", p.Oversampling)
	fmt.Fprintf(w, "  Window: %s\n", p.Window)
	fmt.Fprintf(w, "  Interpolation: %s\n", p.Interpolation)
	fmt.Fprintf(w, "  Cutoff: %.6f of input Nyquist\n\n", r.cutoff)

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, g := range r.dcGain {
		lo, hi = math.Min(lo, g), math.Max(hi, g)
	}
	fmt.Fprintln(w, "DC gain per phase:")
	for ph := range min(phasesToShow, len(r.dcGain)) {
		fmt.Fprintf(w, "  Phase %3d: %.12f\n", ph, r.dcGain[ph])
	}
	if len(r.dcGain) > phasesToShow {
		fmt.Fprintf(w, "  ... (%d more phases)\n", len(r.dcGain)-phasesToShow)
	}
	fmt.Fprintf(w, "  Range: [%.12f, %.12f]\n\n", lo, hi)

	gain := float64(p.Oversampling)
	fmt.Fprintln(w, "Prototype response (frequency in input rate units):")
	for k, f := range r.response.Frequencies {
		fmt.Fprintf(w, "  %8.5f  %9.2f dB\n", f*gain, filter.MagnitudeDB(r.response.Magnitude[k]/gain))
	}
	fmt.Fprintf(w, "\nWorst gain above the lower Nyquist: %.2f dB\n", r.stopband)
}
