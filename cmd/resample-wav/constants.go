package main

const (
	// CLI defaults
	defaultRateKHz     = 48.0
	defaultChunkFrames = 4096
	minRequiredArgs    = 2
	envPrefix          = "resample"

	// Frames decoded per read
	readFrames = 65536

	// Conversion constants
	kHzToHz     = 1000
	dBPerDecade = 20
	maxInt16    = 32767.0
	maxInt24    = 8388607.0
	maxInt32    = 2147483647.0

	// Sample formats
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32
	wavFormatPCM    = 1

	// Decoded formats of compressed inputs
	mp3Channels    = 2
	mp3FrameBytes  = 4 // 16-bit stereo
	vorbisBitDepth = bitsPerSample24

	// Progress reporting
	progressInterval = 10 // log every N percent
	percentScale     = 100

	// Silent calls allowed past the filter lookahead when draining
	drainCalls = 4
)
