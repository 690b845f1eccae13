package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
)

// pcmFormat describes a decoded input stream.
type pcmFormat struct {
	rate        int
	channels    int
	bitDepth    int
	totalFrames int64 // 0 when unknown
}

// pcmSource yields interleaved integer PCM at its format's bit depth.
type pcmSource interface {
	// Next returns the next block of samples; an empty block ends the stream.
	Next() ([]int, error)
	Format() pcmFormat
	Close() error
}

// openInput picks a decoder from the file extension. Anything that is not
// MP3 or Ogg Vorbis is read as WAV.
func openInput(path string) (pcmSource, error) {
	var (
		src pcmSource
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		src, err = openMP3Input(path)
	case ".ogg", ".oga":
		src, err = openVorbisInput(path)
	default:
		src, err = openWAVInput(path)
	}
	if err != nil {
		return nil, err
	}
	return src, nil
}

// mp3Input decodes MP3 to 16-bit stereo.
type mp3Input struct {
	file *os.File
	dec  *gomp3.Decoder
	raw  []byte
	buf  []int
}

func openMP3Input(path string) (*mp3Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	dec, err := gomp3.NewDecoder(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("invalid MP3 file %s: %w", path, err)
	}
	return &mp3Input{
		file: f,
		dec:  dec,
		raw:  make([]byte, readFrames*mp3FrameBytes),
		buf:  make([]int, readFrames*mp3Channels),
	}, nil
}

func (m *mp3Input) Format() pcmFormat {
	return pcmFormat{
		rate:        m.dec.SampleRate(),
		channels:    mp3Channels,
		bitDepth:    bitsPerSample16,
		totalFrames: m.dec.Length() / mp3FrameBytes,
	}
}

func (m *mp3Input) Next() ([]int, error) {
	n, err := io.ReadFull(m.dec, m.raw)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("failed to decode MP3: %w", err)
	}
	samples := n / mp3FrameBytes * mp3Channels
	for i := range samples {
		m.buf[i] = int(int16(uint16(m.raw[2*i]) | uint16(m.raw[2*i+1])<<8))
	}
	return m.buf[:samples], nil
}

func (m *mp3Input) Close() error {
	return m.file.Close()
}

// vorbisInput decodes Ogg Vorbis and quantizes it to 24-bit PCM.
type vorbisInput struct {
	file *os.File
	dec  *oggvorbis.Reader
	raw  []float32
	buf  []int
}

func openVorbisInput(path string) (*vorbisInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	dec, err := oggvorbis.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("invalid Ogg Vorbis file %s: %w", path, err)
	}
	n := readFrames * dec.Channels()
	return &vorbisInput{file: f, dec: dec, raw: make([]float32, n), buf: make([]int, n)}, nil
}

func (v *vorbisInput) Format() pcmFormat {
	return pcmFormat{
		rate:        v.dec.SampleRate(),
		channels:    v.dec.Channels(),
		bitDepth:    vorbisBitDepth,
		totalFrames: v.dec.Length(),
	}
}

func (v *vorbisInput) Next() ([]int, error) {
	for {
		n, err := v.dec.Read(v.raw)
		if n > 0 {
			n -= n % v.dec.Channels()
			for i, x := range v.raw[:n] {
				v.buf[i] = quantize(float64(x), maxInt24)
			}
			return v.buf[:n], nil
		}
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode Ogg Vorbis: %w", err)
		}
	}
}

func (v *vorbisInput) Close() error {
	return v.file.Close()
}
