// Command resample-wav resamples WAV audio files to a target sample rate.
//
// Usage:
//
//	resample-wav --rate 48 input.wav output.wav
//	resample-wav --rate 16 --quality veryhigh input.wav output.wav
//	resample-wav --rate 48 --engine fft --fast input.wav output.wav
//	resample-wav --config resample.yaml input.wav output.wav
//
// Every flag can also be set in a YAML config file or through RESAMPLE_*
// environment variables, e.g. RESAMPLE_QUALITY=low.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
