// Command resample describes a resampler configuration and pushes a test
// tone through it. With --demo it compares engines, presets and channel
// counts.
package main

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/spf13/cobra"

	resampler "github.com/tphakala/go-audio-resampler/v2"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(w io.Writer) *cobra.Command {
	var (
		cfg            resampler.Config
		engine, preset string
		demo           bool
	)
	cmd := &cobra.Command{
		Use:           "resample",
		Short:         "Inspect a resampler configuration",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			if demo {
				return runDemo(w)
			}
			if err := cfg.Engine.UnmarshalText([]byte(engine)); err != nil {
				return err
			}
			if err := cfg.Quality.Preset.UnmarshalText([]byte(preset)); err != nil {
				return err
			}
			return describe(w, &cfg)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&cfg.InputRate, "input-rate", defaultInputRate, "input sample rate in Hz")
	f.Float64Var(&cfg.OutputRate, "output-rate", defaultOutputRate, "output sample rate in Hz")
	f.IntVar(&cfg.Channels, "channels", defaultChannels, "number of audio channels")
	f.IntVar(&cfg.ChunkSize, "chunk", 0, "frames per call (0 for the default)")
	f.StringVar(&engine, "engine", "sinc", "engine: sinc, fft")
	f.StringVar(&preset, "quality", "high", "quality preset: low, medium, high, veryhigh")
	f.BoolVar(&demo, "demo", false, "run a demonstration")
	return cmd
}

func describe(w io.Writer, cfg *resampler.Config) error {
	r, err := resampler.New[float64](cfg)
	if err != nil {
		return fmt.Errorf("create resampler: %w", err)
	}

	info := resampler.GetInfo(r)
	fmt.Fprintln(w, "Resampler created:")
	fmt.Fprintf(w, "  Algorithm: %s\n", info.Algorithm)
	fmt.Fprintf(w, "  Ratio: %.6f (%g Hz -> %g Hz)\n", r.Ratio(), cfg.InputRate, cfg.OutputRate)
	fmt.Fprintf(w, "  Filter length: %d taps\n", info.FilterLength)
	fmt.Fprintf(w, "  Phases: %d\n", info.Phases)
	fmt.Fprintf(w, "  Latency: %d frames\n", info.Latency)
	fmt.Fprintf(w, "  Output delay: %d frames\n", r.OutputDelay())
	fmt.Fprintf(w, "  Frames per call: in <= %d, out <= %d\n", r.InputFramesMax(), r.OutputFramesMax())
	fmt.Fprintf(w, "  Memory usage: %.2f KB\n", float64(info.MemoryUsage)/bytesPerKilobyte)
	fmt.Fprintf(w, "  SIMD: %v (%s)\n", info.SIMDEnabled, info.SIMDType)

	input := make([][]float64, cfg.Channels)
	for ch := range input {
		input[ch] = testTone(testSignalFrames, cfg.InputRate)
	}
	out, err := resampler.ResampleAll(r, input)
	if err != nil {
		return fmt.Errorf("process test signal: %w", err)
	}
	fmt.Fprintf(w, "\nTest signal: %d frames -> %d frames\n", testSignalFrames, len(out[0]))
	return nil
}

func testTone(frames int, rate float64) []float64 {
	signal := make([]float64, frames)
	omega := 2 * math.Pi * testSignalFrequency / rate
	for i := range signal {
		signal[i] = math.Sin(omega * float64(i))
	}
	return signal
}

func runDemo(w io.Writer) error {
	fmt.Fprintln(w, "=== Go Audio Resampler Demo ===")

	fmt.Fprintln(w, "\n1. Sinc quality presets")
	ratios := []struct {
		from, to float64
		name     string
	}{
		{sampleRateCD, sampleRateDAT, "CD to DAT"},
		{sampleRateDAT, sampleRateCD, "DAT to CD"},
		{sampleRateCD, sampleRate2xCD, "CD to 2x"},
		{sampleRateHiRes, sampleRateCD, "Hi-res to CD"},
	}
	presets := []resampler.QualityPreset{
		resampler.QualityLow, resampler.QualityMedium, resampler.QualityHigh, resampler.QualityVeryHigh,
	}
	for _, rr := range ratios {
		fmt.Fprintf(w, "\n%s (%.0f Hz -> %.0f Hz, ratio %.4f):\n", rr.name, rr.from, rr.to, rr.to/rr.from)
		for _, q := range presets {
			r, err := resampler.New[float64](&resampler.Config{
				InputRate: rr.from, OutputRate: rr.to, Channels: stereoChannels,
				Quality: resampler.QualitySpec{Preset: q},
			})
			if err != nil {
				return err
			}
			info := resampler.GetInfo(r)
			fmt.Fprintf(w, "  %-9s %4d taps, %4d frames latency, %8.1f KB\n",
				q, info.FilterLength, info.Latency, float64(info.MemoryUsage)/bytesPerKilobyte)
		}
	}

	fmt.Fprintln(w, "\n2. Engines at 44.1 kHz -> 48 kHz")
	for _, e := range []resampler.Engine{resampler.EngineSinc, resampler.EngineFFT} {
		cfg := &resampler.Config{Engine: e, InputRate: sampleRateCD, OutputRate: sampleRateDAT, Channels: stereoChannels}
		r, err := resampler.New[float64](cfg)
		if err != nil {
			fmt.Fprintf(w, "  %s: %v\n", e, err)
			continue
		}
		info := resampler.GetInfo(r)
		fmt.Fprintf(w, "  %-4s %-12s delay %4d frames, %8.1f KB\n",
			e, info.Algorithm, r.OutputDelay(), float64(info.MemoryUsage)/bytesPerKilobyte)
	}

	fmt.Fprintln(w, "\n3. Channel counts")
	for _, ch := range []int{monoChannels, stereoChannels, surround5_1, surround7_1} {
		r, err := resampler.New[float32](&resampler.Config{
			InputRate: sampleRateDAT, OutputRate: sampleRateCD, Channels: ch,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %d channels: %.1f KB\n", ch, float64(resampler.GetInfo(r).MemoryUsage)/bytesPerKilobyte)
	}

	fmt.Fprintln(w, "\n=== Demo Complete ===")
	return nil
}
