// SPDX-License-Identifier: EPL-2.0

package raw

import (
	"fmt"
	"io"

	"github.com/ik5/vgmcodec/audio"
	"github.com/ik5/vgmcodec/codec"
	"github.com/ik5/vgmcodec/internal/input"
)

// Config describes headerless coded audio.
type Config struct {
	Kind       codec.Kind
	Channels   int
	SampleRate int

	// Start is the offset of the first byte of audio.
	Start int64

	Interleave     int
	InterleaveLast int
	BlockSize      int

	// TotalSamples per channel; 0 derives it from the data size.
	TotalSamples int

	// A loop is played when LoopEnd is greater than LoopStart.
	LoopStart, LoopEnd int
}

// samples works out the per-channel length of size bytes of input.
func (c *Config) samples(size int64) (int, error) {
	if c.TotalSamples > 0 {
		return c.TotalSamples, nil
	}

	data := max(size-c.Start, 0)
	ch := max(c.Channels, 1)
	k := c.Kind

	if c.Interleave > 0 && c.InterleaveLast > 0 {
		spf := int64(k.SamplesPerFrame(1, c.BlockSize))
		fs := int64(k.FrameSize(1, c.BlockSize))
		if spf <= 0 || fs <= 0 {
			return 0, fmt.Errorf("%w: %v", ErrUnknownLength, k)
		}
		full := (data - int64(ch*c.InterleaveLast)) / int64(ch*c.Interleave)
		if full < 0 {
			full = 0
		}
		n := full*int64(c.Interleave)/fs*spf + int64(c.InterleaveLast)/fs*spf
		return int(n), nil
	}

	n := k.BytesToSamples(data, ch, c.BlockSize)
	if n < 0 {
		return 0, fmt.Errorf("%w: %v", ErrUnknownLength, k)
	}

	return int(n), nil
}

// StreamConfig resolves c against an input of size bytes.
func (c *Config) StreamConfig(size int64) (audio.StreamConfig, error) {
	total, err := c.samples(size)
	if err != nil {
		return audio.StreamConfig{}, err
	}

	return audio.StreamConfig{
		Kind:           c.Kind,
		Channels:       c.Channels,
		SampleRate:     c.SampleRate,
		TotalSamples:   total,
		Start:          c.Start,
		Interleave:     c.Interleave,
		InterleaveLast: c.InterleaveLast,
		BlockSize:      c.BlockSize,
		Loop:           c.LoopEnd > c.LoopStart,
		LoopStart:      c.LoopStart,
		LoopEnd:        c.LoopEnd,
	}, nil
}

// Decoder plays headerless data laid out as Config says.
type Decoder struct {
	Config  Config
	Options []audio.StreamOption
}

func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	sr, err := input.ReaderAt(r)
	if err != nil {
		return nil, err
	}

	cfg, err := d.Config.StreamConfig(sr.Size())
	if err != nil {
		return nil, err
	}

	s, err := audio.NewStream(cfg, sr, d.Options...)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return s, nil
}
