package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	resampler "github.com/tphakala/go-audio-resampler/v2"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "resample-wav [flags] input output.wav",
		Short: "Resample an audio file to a new sample rate",
		Long: `Resample a PCM WAV, MP3 or Ogg Vorbis file to a PCM WAV file with the
sinc or FFT engine. MP3 input is written as 16-bit and Vorbis as 24-bit PCM.

The sinc engine handles any ratio; the FFT engine handles exact rational
ratios such as 44.1 kHz to 48 kHz and is usually faster.`,
		Args:          cobra.ExactArgs(minRequiredArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(v)
			if err != nil {
				return err
			}
			log, err := newLogger(opts.LogFormat, opts.Verbose)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			return run(log, opts, args[0], args[1])
		},
	}

	addFlags(cmd.Flags())
	bindFlags(v, cmd.Flags())

	return cmd
}

func addFlags(f *pflag.FlagSet) {
	f.Float64("rate", defaultRateKHz, "target sample rate in kHz (e.g. 16, 44.1, 48, 96)")
	f.String("engine", "sinc", "resampling engine: sinc, fft")
	f.String("quality", "high", "sinc quality: low, medium, high, veryhigh")
	f.String("boundary", "zero", "sinc stream start: zero, reflect, preroll")
	f.Int("chunk", defaultChunkFrames, "frames per resampler call")
	f.Float64("gain", 0, "output gain in dB")
	f.Bool("fast", false, "use float32 processing")
	f.String("log-format", "console", "log encoding: console, json")
	f.BoolP("verbose", "v", false, "debug logging")
	f.String("config", "", "YAML config file")
}

type resampleStats struct {
	inputRate    int
	outputRate   int
	channels     int
	bitDepth     int
	inputFrames  int64
	outputFrames int64
	algorithm    string
}

func run(log *zap.Logger, opts options, inputPath, outputPath string) error {
	log.Debug("starting",
		zap.String("input", inputPath),
		zap.String("output", outputPath),
		zap.Int("rate", opts.targetRate()),
		zap.Stringer("engine", opts.engine),
		zap.Stringer("quality", opts.quality),
		zap.Bool("float32", opts.Fast))

	start := time.Now()
	var (
		stats *resampleStats
		err   error
	)
	if opts.Fast {
		stats, err = resampleWAV[float32](log, opts, inputPath, outputPath)
	} else {
		stats, err = resampleWAV[float64](log, opts, inputPath, outputPath)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	log.Info("resampled",
		zap.String("input", filepath.Base(inputPath)),
		zap.String("output", filepath.Base(outputPath)),
		zap.String("algorithm", stats.algorithm),
		zap.Int("input_rate", stats.inputRate),
		zap.Int("output_rate", stats.outputRate),
		zap.Int("channels", stats.channels),
		zap.Int("bit_depth", stats.bitDepth),
		zap.Int64("input_frames", stats.inputFrames),
		zap.Int64("output_frames", stats.outputFrames),
		zap.Duration("elapsed", elapsed),
		zap.String("speed", fmt.Sprintf("%.1fx", realtime(stats, elapsed))))
	return nil
}

func realtime(s *resampleStats, elapsed time.Duration) float64 {
	if elapsed <= 0 || s.inputRate == 0 {
		return 0
	}
	return float64(s.inputFrames) / float64(s.inputRate) / elapsed.Seconds()
}

func resampleWAV[F resampler.Float](log *zap.Logger, opts options, inputPath, outputPath string) (stats *resampleStats, err error) {
	input, err := openInput(inputPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()
	format := input.Format()

	target := opts.targetRate()
	if format.rate == target {
		return nil, fmt.Errorf("input already at target rate %d Hz", target)
	}
	log.Debug("input format",
		zap.Int("rate", format.rate),
		zap.Int("channels", format.channels),
		zap.Int("bit_depth", format.bitDepth),
		zap.Int64("frames", format.totalFrames))

	r, err := resampler.New[F](opts.resamplerConfig(format.rate, format.channels))
	if err != nil {
		return nil, fmt.Errorf("create resampler: %w", err)
	}
	info := resampler.GetInfo(r)
	log.Debug("resampler",
		zap.String("algorithm", info.Algorithm),
		zap.Int("filter_length", info.FilterLength),
		zap.Int("latency", info.Latency),
		zap.Int64("memory_bytes", info.MemoryUsage),
		zap.String("simd", info.SIMDType))

	output, err := createWAVOutput(outputPath, target, format.bitDepth, format.channels)
	if err != nil {
		return nil, err
	}
	// The header sizes are only final after Close.
	defer func() {
		if closeErr := output.Close(); err == nil {
			err = closeErr
		}
	}()

	s := newStream(r, format.bitDepth, opts.gainFactor(), output.Write)
	progress := newProgressTracker(log, format.totalFrames)
	for {
		samples, err := input.Next()
		if err != nil {
			return nil, err
		}
		if len(samples) == 0 {
			break
		}
		if err := s.push(samples); err != nil {
			return nil, err
		}
		progress.report(s.inFrames)
	}
	if err := s.finish(); err != nil {
		return nil, err
	}

	return &resampleStats{
		inputRate:    format.rate,
		outputRate:   target,
		channels:     format.channels,
		bitDepth:     format.bitDepth,
		inputFrames:  s.inFrames,
		outputFrames: s.outFrames,
		algorithm:    info.Algorithm,
	}, nil
}
