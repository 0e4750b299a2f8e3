// SPDX-License-Identifier: EPL-2.0

package vgmcodec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ik5/vgmcodec/audio"
	"github.com/ik5/vgmcodec/formats/adx"
	"github.com/ik5/vgmcodec/formats/aiff"
	"github.com/ik5/vgmcodec/formats/dsp"
	"github.com/ik5/vgmcodec/formats/mp3"
	"github.com/ik5/vgmcodec/formats/vag"
	"github.com/ik5/vgmcodec/formats/vorbis"
	"github.com/ik5/vgmcodec/formats/wav"
	"github.com/ik5/vgmcodec/internal/input"
)

// Format keys used by NewRegistry and Detect.
const (
	FormatWAV    = "wav"
	FormatAIFF   = "aiff"
	FormatMP3    = "mp3"
	FormatVorbis = "vorbis"
	FormatVAG    = "vag"
	FormatADX    = "adx"
	FormatDSP    = "dsp"
)

// sniffSize is how much of a file Detect needs to see.
const sniffSize = 64

var extensions = map[string]string{
	".wav":  FormatWAV,
	".aif":  FormatAIFF,
	".aiff": FormatAIFF,
	".aifc": FormatAIFF,
	".mp3":  FormatMP3,
	".ogg":  FormatVorbis,
	".vag":  FormatVAG,
	".adx":  FormatADX,
	".dsp":  FormatDSP,
}

// NewRegistry returns a registry holding every container decoder of this
// module. opts are applied to the streams of the ADPCM containers.
func NewRegistry(opts ...audio.StreamOption) *audio.Registry {
	reg := audio.NewRegistry()

	reg.Register(FormatWAV, wav.Decoder{Options: opts})
	reg.Register(FormatAIFF, aiff.Decoder{})
	reg.Register(FormatMP3, mp3.Decoder{})
	reg.Register(FormatVorbis, vorbis.Decoder{})
	reg.Register(FormatVAG, vag.Decoder{Options: opts})
	reg.Register(FormatADX, adx.Decoder{Options: opts})
	reg.Register(FormatDSP, dsp.Decoder{Options: opts})

	return reg
}

// Detect names the format of a file from its first bytes, falling back to
// the extension of name. DSP has no magic and is only found by extension.
func Detect(head []byte, name string) (string, error) {
	switch {
	case len(head) >= 12 && string(head[:4]) == "RIFF" && string(head[8:12]) == "WAVE":
		return FormatWAV, nil
	case len(head) >= 12 && string(head[:4]) == "FORM" &&
		(string(head[8:12]) == "AIFF" || string(head[8:12]) == "AIFC"):
		return FormatAIFF, nil
	case len(head) >= 4 && (string(head[:4]) == "VAGp" || string(head[:4]) == "VAGi"):
		return FormatVAG, nil
	case len(head) >= 4 && string(head[:4]) == "OggS":
		return FormatVorbis, nil
	case isADX(head):
		return FormatADX, nil
	case len(head) >= 3 && string(head[:3]) == "ID3",
		len(head) >= 2 && head[0] == 0xff && head[1]&0xe0 == 0xe0:
		return FormatMP3, nil
	}

	if f, ok := extensions[strings.ToLower(filepath.Ext(name))]; ok {
		return f, nil
	}

	return "", ErrUnknownFormat
}

// isADX checks the 0x8000 marker and, when it lies within head, the CRI
// copyright string just before the data.
func isADX(head []byte) bool {
	if len(head) < 4 || head[0] != 0x80 || head[1] != 0x00 {
		return false
	}
	off := int(binary.BigEndian.Uint16(head[2:]))
	if off < 6 {
		return false
	}
	if off+4 > len(head) {
		return true
	}
	return bytes.Equal(head[off-2:off+4], []byte("(c)CRI"))
}

// Open detects the format of r and decodes it with the matching decoder
// from reg. r is not closed by the returned source.
func Open(reg *audio.Registry, r io.Reader, name string) (audio.Source, string, error) {
	sr, err := input.ReaderAt(r)
	if err != nil {
		return nil, "", err
	}

	head := make([]byte, sniffSize)
	n, err := sr.ReadAt(head, 0)
	if err != nil && err != io.EOF {
		return nil, "", fmt.Errorf("read header: %w", err)
	}

	format, err := Detect(head[:n], name)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", name, err)
	}

	d, ok := reg.Get(format)
	if !ok {
		return nil, format, fmt.Errorf("%w: %s", ErrNoDecoder, format)
	}

	src, err := d.Decode(sr)
	if err != nil {
		return nil, format, fmt.Errorf("%s: %w", format, err)
	}

	return src, format, nil
}
