// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/vgmcodec/audio"
	"github.com/ik5/vgmcodec/utils"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
	buf        []float32

	// values of a frame split across two reads
	pending []float32
	eof     bool
}

func newSource(dec oggReader) *source {
	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
		buf:        make([]float32, 4096),
	}
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / s.channels }

// ReadPCM16 converts decoded float samples to int16. oggvorbis reports the
// number of values read, which need not be a whole number of frames.
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

	if cap(s.buf) < len(dst) {
		s.buf = make([]float32, len(dst))
	}
	have := copy(s.buf[:len(dst)], s.pending)
	s.pending = s.pending[:0]

	var err error
	for have < s.channels || have%s.channels != 0 {
		var n int
		n, err = s.dec.Read(s.buf[have:len(dst)])
		have += n
		if err != nil || n == 0 {
			break
		}
	}

	whole := have - have%s.channels
	s.pending = append(s.pending, s.buf[whole:have]...)

	for i, v := range s.buf[:whole] {
		dst[i] = utils.Float32ToInt16(v)
	}

	switch {
	case errors.Is(err, io.EOF):
		s.eof = true
		if whole == 0 {
			return 0, io.EOF
		}
		return whole, io.EOF
	case err != nil:
		return whole, fmt.Errorf("%w", err)
	case whole == 0:
		return 0, io.ErrNoProgress
	}

	return whole, nil
}

// Decoder decodes Ogg Vorbis through github.com/jfreymuth/oggvorbis.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotVorbisFile, err)
	}
	if dec.Channels() < 1 {
		return nil, ErrNotVorbisFile
	}

	return newSource(dec), nil
}
