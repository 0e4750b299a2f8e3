// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/riff"

	"github.com/ik5/vgmcodec/audio"
	"github.com/ik5/vgmcodec/codec"
	"github.com/ik5/vgmcodec/internal/input"
)

// WAVE format tags handled by the decoder.
const (
	FormatPCM        = 0x0001
	FormatMSADPCM    = 0x0002
	FormatIMAADPCM   = 0x0011
	FormatExtensible = 0xfffe
)

var factID = [4]byte{'f', 'a', 'c', 't'}

// Info is what the decoder needs from the RIFF chunks.
type Info struct {
	Format        uint16
	Channels      int
	SampleRate    int
	BlockAlign    int
	BitsPerSample int

	DataOffset int64
	DataSize   int64

	// Samples per channel from the fact chunk, 0 when absent.
	FactSamples int64
}

// ReadInfo walks the chunks of a RIFF WAVE file up to the data chunk.
// size is the length of the input, used to bound the data chunk.
func ReadInfo(r io.Reader, size int64) (*Info, error) {
	p := riff.New(r)
	if err := p.ParseHeaders(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if p.Format != riff.WavFormatID {
		return nil, ErrNotWavFile
	}

	info := &Info{}
	haveFmt := false
	pos := int64(12)

	for {
		ch, err := p.NextChunk()
		if err != nil {
			return nil, fmt.Errorf("%w: no data chunk: %w", ErrUnsupportedWavChunks, err)
		}
		pos += 8

		switch ch.ID {
		case riff.FmtID:
			if err := ch.DecodeWavHeader(p); err != nil {
				return nil, fmt.Errorf("%w: fmt chunk: %w", ErrUnsupportedWavLayout, err)
			}
			info.Format = p.WavAudioFormat
			info.Channels = int(p.NumChannels)
			info.SampleRate = int(p.SampleRate)
			info.BlockAlign = int(p.BlockAlign)
			info.BitsPerSample = int(p.BitsPerSample)
			haveFmt = true

		case factID:
			var n uint32
			if err := ch.ReadLE(&n); err == nil {
				info.FactSamples = int64(n)
			}

		case riff.DataFormatID:
			if !haveFmt {
				return nil, fmt.Errorf("%w: data before fmt", ErrUnsupportedWavLayout)
			}
			info.DataOffset = pos
			info.DataSize = min(int64(ch.Size), max(size-pos, 0))
			return info, nil
		}

		ch.Done()
		pos += int64(ch.Size)
	}
}

// Kind maps the format tag and sample size to a codec.
func (i *Info) Kind() (codec.Kind, error) {
	switch {
	case (i.Format == FormatPCM || i.Format == FormatExtensible) && i.BitsPerSample == 16:
		return codec.KindPCM16LEInt, nil
	case (i.Format == FormatPCM || i.Format == FormatExtensible) && i.BitsPerSample == 8:
		return codec.KindPCM8UnsignedInt, nil
	case i.Format == FormatMSADPCM && i.BitsPerSample == 4:
		return codec.KindMSADPCM, nil
	case i.Format == FormatIMAADPCM && i.BitsPerSample == 4:
		return codec.KindMSIMA, nil
	}

	return codec.KindUnknown, fmt.Errorf("%w: format %#04x, %d bits", ErrUnsupportedCodec, i.Format, i.BitsPerSample)
}

// StreamConfig describes the data chunk as a stream.
func (i *Info) StreamConfig() (audio.StreamConfig, error) {
	k, err := i.Kind()
	if err != nil {
		return audio.StreamConfig{}, err
	}
	if i.Channels < 1 || i.SampleRate < 1 {
		return audio.StreamConfig{}, fmt.Errorf("%w: %d channels at %d Hz", ErrUnsupportedWavLayout, i.Channels, i.SampleRate)
	}

	samples := k.BytesToSamples(i.DataSize, i.Channels, i.BlockAlign)
	if i.FactSamples > 0 && k.BlockCodec() {
		samples = min(samples, i.FactSamples)
	}
	if samples < 0 {
		return audio.StreamConfig{}, fmt.Errorf("%w: block align %d", ErrUnsupportedWavLayout, i.BlockAlign)
	}

	return audio.StreamConfig{
		Kind:         k,
		Channels:     i.Channels,
		SampleRate:   i.SampleRate,
		TotalSamples: int(samples),
		Start:        i.DataOffset,
		BlockSize:    i.BlockAlign,
	}, nil
}

// Decoder opens RIFF WAVE files holding PCM, MS ADPCM or IMA ADPCM.
type Decoder struct {
	Options []audio.StreamOption
}

func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	sr, err := input.ReaderAt(r)
	if err != nil {
		return nil, err
	}

	info, err := ReadInfo(io.NewSectionReader(sr, 0, sr.Size()), sr.Size())
	if err != nil {
		return nil, err
	}

	cfg, err := info.StreamConfig()
	if err != nil {
		return nil, err
	}

	s, err := audio.NewStream(cfg, sr, d.Options...)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return s, nil
}
