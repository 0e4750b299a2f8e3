// SPDX-License-Identifier: EPL-2.0

package vag

import (
	"fmt"
	"io"

	"github.com/ik5/vgmcodec/audio"
	"github.com/ik5/vgmcodec/internal/input"
)

// Decoder opens Sony VAG files: mono "VAGp" and two-channel interleaved
// "VAGi", both PS-ADPCM.
type Decoder struct {
	Options []audio.StreamOption
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

	cfg, err := h.StreamConfig(sr, sr.Size())
	if err != nil {
		return nil, err
	}

	s, err := audio.NewStream(cfg, sr, d.Options...)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return s, nil
}
