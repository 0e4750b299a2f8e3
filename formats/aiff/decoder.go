// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/vgmcodec/audio"
	"github.com/ik5/vgmcodec/internal/input"
	"github.com/ik5/vgmcodec/internal/pcmio"
)

// pcmReader is the part of aiff.Decoder the source uses.
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source wraps go-audio aiff.Decoder to implement audio.Source
type source struct {
	dec        pcmReader
	format     *goaudio.Format
	sampleRate int
	channels   int
	bitDepth   int
	intBuf     *goaudio.IntBuffer
	eof        bool
}

func newSource(dec pcmReader, sampleRate, channels, bitDepth int) *source {
	return &source{
		dec:        dec,
		format:     &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		sampleRate: sampleRate,
		channels:   channels,
		bitDepth:   bitDepth,
	}
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data) / s.channels
	}
	return 4096
}

func (s *source) ReadPCM16(dst []int16) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}
	if s.eof {
		return 0, io.EOF
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: s.format,
		}
	}
	s.intBuf.Data = s.intBuf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.intBuf)
	n -= n % s.channels
	n = pcmio.ToInt16(dst, s.intBuf.Data[:n], s.bitDepth)

	switch {
	case errors.Is(err, io.EOF), err == nil && n < len(dst):
		// a short read is the end of the SSND chunk
		s.eof = true
		if n == 0 {
			return 0, io.EOF
		}
		return n, io.EOF
	case err != nil:
		return n, fmt.Errorf("%w", err)
	}

	return n, nil
}

// Decoder reads uncompressed AIFF files through github.com/go-audio/aiff.
// Samples of any supported depth are scaled to 16 bits.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := input.ReaderAt(r)
	if err != nil {
		return nil, err
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.SampleRate < 1 {
		return nil, ErrUnsupportedAiffLayout
	}

	return newSource(dec, format.SampleRate, format.NumChannels, int(dec.BitDepth)), nil
}
