package main

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	resampler "github.com/tphakala/go-audio-resampler/v2"
)

// options is the merged view of flags, config file and environment.
type options struct {
	Rate      float64 `mapstructure:"rate"`
	Engine    string  `mapstructure:"engine"`
	Quality   string  `mapstructure:"quality"`
	Boundary  string  `mapstructure:"boundary"`
	Chunk     int     `mapstructure:"chunk"`
	Gain      float64 `mapstructure:"gain"`
	Fast      bool    `mapstructure:"fast"`
	LogFormat string  `mapstructure:"log-format"`
	Verbose   bool    `mapstructure:"verbose"`
	Config    string  `mapstructure:"config"`

	engine   resampler.Engine
	quality  resampler.QualityPreset
	boundary resampler.BoundaryPolicy
}

var errOptions = errors.New("invalid options")

// bindFlags makes every flag readable through v, with RESAMPLE_* variables
// overriding the defaults.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
	})
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// loadOptions reads the optional config file and decodes the result.
func loadOptions(v *viper.Viper) (options, error) {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return options{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var opts options
	if err := v.Unmarshal(&opts); err != nil {
		return options{}, fmt.Errorf("decode options: %w", err)
	}
	if err := opts.validate(); err != nil {
		return options{}, err
	}
	return opts, nil
}

func (o *options) validate() error {
	if o.Rate <= 0 || math.IsNaN(o.Rate) || math.IsInf(o.Rate, 0) {
		return fmt.Errorf("%w: rate must be positive, got %v", errOptions, o.Rate)
	}
	if o.Chunk < 1 {
		return fmt.Errorf("%w: chunk must be positive, got %d", errOptions, o.Chunk)
	}
	if err := o.engine.UnmarshalText([]byte(o.Engine)); err != nil {
		return fmt.Errorf("%w: %w", errOptions, err)
	}
	if err := o.quality.UnmarshalText([]byte(o.Quality)); err != nil {
		return fmt.Errorf("%w: %w", errOptions, err)
	}
	if o.quality == resampler.QualityCustom {
		return fmt.Errorf("%w: custom quality is not available from the command line", errOptions)
	}
	if err := o.boundary.UnmarshalText([]byte(o.Boundary)); err != nil {
		return fmt.Errorf("%w: %w", errOptions, err)
	}
	switch o.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", errOptions, o.LogFormat)
	}
	return nil
}

func (o *options) targetRate() int {
	return int(math.Round(o.Rate * kHzToHz))
}

func (o *options) gainFactor() float64 {
	return math.Pow(10, o.Gain/dBPerDecade)
}

func (o *options) resamplerConfig(inputRate, channels int) *resampler.Config {
	return &resampler.Config{
		Engine:     o.engine,
		InputRate:  float64(inputRate),
		OutputRate: float64(o.targetRate()),
		Channels:   channels,
		Mode:       resampler.FixedInput,
		ChunkSize:  o.Chunk,
		Quality:    resampler.QualitySpec{Preset: o.quality},
		Boundary:   o.boundary,
	}
}
