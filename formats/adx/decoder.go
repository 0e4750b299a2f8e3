// SPDX-License-Identifier: EPL-2.0

package adx

import (
	"fmt"
	"io"

	"github.com/ik5/vgmcodec/audio"
	"github.com/ik5/vgmcodec/codec"
	"github.com/ik5/vgmcodec/internal/input"
)

// keyScanFrames bounds how many frames are tried against the known keys.
const keyScanFrames = 256

// Decoder opens CRI ADX files. Encrypted files use Key when set, otherwise
// the key is searched for among codec.KnownADXKeys.
type Decoder struct {
	Key     *codec.ADXKey
	Options []audio.StreamOption
}

// StreamConfig builds the stream layout for h. Channels are interleaved
// one frame at a time.
func (d Decoder) StreamConfig(h *Header, r io.ReaderAt) (audio.StreamConfig, error) {
	coef1, coef2 := codec.ADXCoefficients(h.Cutoff, h.SampleRate)

	cfg := audio.StreamConfig{
		Kind:         codec.KindADX,
		Channels:     h.Channels,
		SampleRate:   h.SampleRate,
		TotalSamples: h.TotalSamples,
		Start:        h.DataOffset,
		Loop:         h.Loop,
		LoopStart:    h.LoopStart,
		LoopEnd:      h.LoopEnd,
	}
	if h.Channels > 1 {
		cfg.Interleave = frameSize
	}

	var key codec.ADXKey
	if h.Encrypted() {
		cfg.Kind = codec.KindADXEnc
		if d.Key != nil {
			key = *d.Key
		} else {
			frames := min(keyScanFrames, (h.TotalSamples+samplesPerFrame-1)/samplesPerFrame*h.Channels)
			var err error
			if key, err = codec.FindADXKey(r, h.DataOffset, frames); err != nil {
				return audio.StreamConfig{}, fmt.Errorf("encrypted ADX: %w", err)
			}
		}
	}

	cfg.Init = func(c int, st *codec.ChannelState) {
		st.Coef[0], st.Coef[1] = coef1, coef2
		// frames alternate channels, so channel c starts c steps in
		st.ADXKey = key.Advance(c)
	}

	return cfg, nil
}

func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	sr, err := input.ReaderAt(r)
	if err != nil {
		return nil, err
	}

	h, err := ReadHeader(sr)
	if err != nil {
		return nil, err
	}

	cfg, err := d.StreamConfig(h, sr)
	if err != nil {
		return nil, err
	}

	s, err := audio.NewStream(cfg, sr, d.Options...)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return s, nil
}
