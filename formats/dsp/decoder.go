// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"fmt"
	"io"

	"github.com/ik5/vgmcodec/audio"
	"github.com/ik5/vgmcodec/internal/input"
)

// Decoder opens mono Nintendo DSP files.
type Decoder struct {
	Options []audio.StreamOption
}

func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	sr, err := input.ReaderAt(r)
	if err != nil {
		return nil, err
	}

	h, err := ReadHeader(sr, 0)
	if err != nil {
		return nil, err
	}

	s, err := audio.NewStream(h.StreamConfig(0, sr.Size()), sr, d.Options...)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return s, nil
}
