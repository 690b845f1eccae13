package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"go.uber.org/zap"

	resampler "github.com/tphakala/go-audio-resampler/v2"
	"github.com/tphakala/go-audio-resampler/v2/internal/simdops"
)

// wavInput is an open, validated WAV file with a reusable read buffer.
type wavInput struct {
	file        *os.File
	decoder     *wav.Decoder
	buf         *audio.IntBuffer
	rate        int
	channels    int
	bitDepth    int
	totalFrames int64
}

// openWAVInput opens path and reads its format.
func openWAVInput(path string) (*wavInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		_ = f.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	switch d.BitDepth {
	case bitsPerSample16, bitsPerSample24, bitsPerSample32:
	default:
		_ = f.Close()
		return nil, fmt.Errorf("unsupported bit depth %d: %s", d.BitDepth, path)
	}

	format := d.Format()
	in := &wavInput{
		file:     f,
		decoder:  d,
		rate:     format.SampleRate,
		channels: format.NumChannels,
		bitDepth: int(d.BitDepth),
		buf: &audio.IntBuffer{
			Format: format,
			Data:   make([]int, readFrames*format.NumChannels),
		},
	}
	if dur, err := d.Duration(); err == nil {
		in.totalFrames = int64(dur.Seconds() * float64(in.rate))
	}
	return in, nil
}

// Read decodes the next block and returns its frame count; 0 at the end.
func (w *wavInput) Read() (int, error) {
	w.buf.Data = w.buf.Data[:cap(w.buf.Data)]
	n, err := w.decoder.PCMBuffer(w.buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("failed to read audio data: %w", err)
	}
	return n / w.channels, nil
}

// Next returns the next decoded block of interleaved samples.
func (w *wavInput) Next() ([]int, error) {
	n, err := w.Read()
	if err != nil {
		return nil, err
	}
	return w.buf.Data[:n*w.channels], nil
}

func (w *wavInput) Format() pcmFormat {
	return pcmFormat{rate: w.rate, channels: w.channels, bitDepth: w.bitDepth, totalFrames: w.totalFrames}
}

// Close closes the input file.
func (w *wavInput) Close() error {
	return w.file.Close()
}

// wavOutput writes PCM through a go-audio encoder.
type wavOutput struct {
	file    *os.File
	encoder *wav.Encoder
	buf     *audio.IntBuffer
}

// createWAVOutput creates path for PCM at the given format.
func createWAVOutput(path string, sampleRate, bitDepth, channels int) (*wavOutput, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return &wavOutput{
		file:    f,
		encoder: wav.NewEncoder(f, sampleRate, bitDepth, channels, wavFormatPCM),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// Write appends interleaved samples.
func (w *wavOutput) Write(samples []int) error {
	w.buf.Data = samples
	if err := w.encoder.Write(w.buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	return nil
}

// Close finalizes the header and closes the file.
func (w *wavOutput) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("failed to finalize WAV: %w", err)
	}
	return w.file.Close()
}

// stream feeds interleaved PCM of any block size through a resampler in
// the chunks it negotiates and emits delay-compensated interleaved PCM.
type stream[F resampler.Float] struct {
	r      resampler.Resampler[F]
	ops    *simdops.Ops[F]
	emit   func([]int) error
	maxVal float64
	gain   F

	pending [][]F // planar input not yet consumed
	out     [][]F
	pcm     []int

	skip      int   // leading output frames still to drop
	inFrames  int64 // input frames pushed
	outFrames int64 // output frames emitted
}

func newStream[F resampler.Float](r resampler.Resampler[F], bitDepth int, gain float64, emit func([]int) error) *stream[F] {
	ch := r.Channels()
	s := &stream[F]{
		r:       r,
		ops:     simdops.For[F](),
		emit:    emit,
		maxVal:  maxValue(bitDepth),
		gain:    F(gain),
		pending: make([][]F, ch),
		out:     make([][]F, ch),
		skip:    r.OutputDelay(),
	}
	for c := range ch {
		s.pending[c] = make([]F, 0, r.InputFramesMax()+readFrames)
		s.out[c] = make([]F, r.OutputFramesMax())
	}
	return s
}

// push buffers interleaved samples and runs every full chunk.
func (s *stream[F]) push(samples []int) error {
	ch := len(s.pending)
	frames := len(samples) / ch
	inv := 1 / s.maxVal
	for c := range ch {
		p := s.pending[c]
		for i := range frames {
			p = append(p, F(float64(samples[i*ch+c])*inv))
		}
		s.pending[c] = p
	}
	s.inFrames += int64(frames)

	for {
		need := s.r.InputFramesNext()
		if len(s.pending[0]) < need {
			return nil
		}
		in := make([][]F, ch)
		for c := range ch {
			in[c] = s.pending[c][:need]
		}
		_, m, err := s.r.ProcessInto(in, s.out)
		if err != nil {
			return fmt.Errorf("resample: %w", err)
		}
		for c := range ch {
			s.pending[c] = append(s.pending[c][:0], s.pending[c][need:]...)
		}
		if err := s.write(m, math.MaxInt64); err != nil {
			return err
		}
	}
}

// finish resamples the buffered remainder and drains the filter tail so the
// file holds round(frames·ratio) output frames.
func (s *stream[F]) finish() error {
	want := int64(math.Round(float64(s.inFrames) * s.r.Ratio()))

	_, m, err := s.r.ProcessPartial(s.pending, s.out)
	if err != nil {
		return fmt.Errorf("resample tail: %w", err)
	}
	if err := s.write(m, want); err != nil {
		return err
	}

	limit := resampler.GetInfo(s.r).Latency/max(1, s.r.InputFramesMax()) + s.skip/max(1, s.r.OutputFramesMax()) + drainCalls
	for i := 0; s.outFrames < want && i < limit; i++ {
		_, m, err := s.r.ProcessPartial(nil, s.out)
		if err != nil {
			return fmt.Errorf("drain: %w", err)
		}
		if err := s.write(m, want); err != nil {
			return err
		}
	}
	return nil
}

// write converts the first m output frames, minus pending skip and
// anything beyond limit total frames, and emits them.
func (s *stream[F]) write(m int, limit int64) error {
	from := min(s.skip, m)
	s.skip -= from
	to := m
	if rest := limit - s.outFrames; int64(to-from) > rest {
		to = from + int(max(rest, 0))
	}
	n := to - from
	if n <= 0 {
		return nil
	}

	ch := len(s.out)
	if cap(s.pcm) < n*ch {
		s.pcm = make([]int, n*ch)
	}
	pcm := s.pcm[:n*ch]
	scale := s.maxVal
	for c, plane := range s.out {
		seg := plane[from:to]
		if s.gain != 1 {
			s.ops.Scale(seg, seg, s.gain)
		}
		for i, v := range seg {
			pcm[i*ch+c] = quantize(float64(v), scale)
		}
	}
	s.outFrames += int64(n)
	return s.emit(pcm)
}

// quantize scales v to an integer sample, clipping at full scale.
func quantize(v, scale float64) int {
	x := math.Round(v * scale)
	return int(math.Max(-scale-1, math.Min(scale, x)))
}

// maxValue returns the positive full-scale value for bitDepth.
func maxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// progressTracker logs every progressInterval percent of input.
type progressTracker struct {
	log   *zap.Logger
	total int64
	last  int
}

func newProgressTracker(log *zap.Logger, totalFrames int64) *progressTracker {
	return &progressTracker{log: log, total: totalFrames}
}

func (p *progressTracker) report(frames int64) {
	if p.total <= 0 {
		return
	}
	pct := int(float64(frames) / float64(p.total) * percentScale)
	if pct >= p.last+progressInterval {
		p.log.Debug("progress", zap.Int("percent", pct))
		p.last = pct
	}
}
