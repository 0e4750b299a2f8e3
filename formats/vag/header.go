// SPDX-License-Identifier: EPL-2.0

package vag

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/vgmcodec/audio"
	"github.com/ik5/vgmcodec/codec"
)

const (
	headerSize     = 0x30
	interleavedPad = 0x800

	frameSize       = 16
	samplesPerFrame = 28

	flagLoopStart = 0x06
	flagLoopEnd   = 0x03
)

var (
	magicMono        = [4]byte{'V', 'A', 'G', 'p'}
	magicInterleaved = [4]byte{'V', 'A', 'G', 'i'}
)

// Header is the part of a VAG header the decoder uses. All fields are
// big-endian except the VAGi interleave.
type Header struct {
	Magic      [4]byte
	Version    uint32
	Interleave uint32 // VAGi only
	DataSize   uint32 // per channel
	SampleRate uint32
	Name       string
}

// Channels is 2 for VAGi and 1 otherwise.
func (h *Header) Channels() int {
	if h.Magic == magicInterleaved {
		return 2
	}
	return 1
}

// DataOffset is where the first frame starts.
func (h *Header) DataOffset() int64 {
	if h.Magic == magicInterleaved {
		return interleavedPad
	}
	return headerSize
}

// ReadHeader parses the fixed 0x30-byte header.
func ReadHeader(r io.ReaderAt) (*Header, error) {
	var b [headerSize]byte
	if _, err := r.ReadAt(b[:], 0); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotVagFile, err)
	}

	h := &Header{
		Magic:      [4]byte(b[0:4]),
		Version:    binary.BigEndian.Uint32(b[0x04:]),
		DataSize:   binary.BigEndian.Uint32(b[0x0c:]),
		SampleRate: binary.BigEndian.Uint32(b[0x10:]),
		Name:       cString(b[0x20:0x30]),
	}

	switch h.Magic {
	case magicMono:
	case magicInterleaved:
		h.Interleave = binary.LittleEndian.Uint32(b[0x08:])
	default:
		return nil, ErrNotVagFile
	}

	return h, nil
}

func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// StreamConfig describes the stream. size is the length of the input; the
// declared data size is trusted only as far as the file reaches.
func (h *Header) StreamConfig(r io.ReaderAt, size int64) (audio.StreamConfig, error) {
	ch := h.Channels()
	start := h.DataOffset()

	if h.SampleRate == 0 {
		return audio.StreamConfig{}, fmt.Errorf("%w: sample rate 0", ErrUnsupportedVagLayout)
	}
	if ch > 1 && (h.Interleave == 0 || h.Interleave%frameSize != 0) {
		return audio.StreamConfig{}, fmt.Errorf("%w: interleave %#x", ErrUnsupportedVagLayout, h.Interleave)
	}

	avail := max(size-start, 0) / int64(ch)
	data := min(int64(h.DataSize), avail)

	cfg := audio.StreamConfig{
		Kind:         codec.KindPSX,
		Channels:     ch,
		SampleRate:   int(h.SampleRate),
		TotalSamples: int(data / frameSize * samplesPerFrame),
		Start:        start,
	}
	if ch > 1 {
		cfg.Interleave = int(h.Interleave)
	}

	cfg.Loop, cfg.LoopStart, cfg.LoopEnd = findLoop(r, &cfg)

	return cfg, nil
}

// findLoop scans the frame flags of the first channel for the loop start
// and loop end markers. Both must be present, in order.
func findLoop(r io.ReaderAt, cfg *audio.StreamConfig) (bool, int, int) {
	frames := cfg.TotalSamples / samplesPerFrame
	perBlock := frames
	if cfg.Interleave > 0 {
		perBlock = cfg.Interleave / frameSize
	}

	start := -1
	var flag [1]byte
	for f := range frames {
		block, idx := f/perBlock, f%perBlock
		off := cfg.Start + int64(block*cfg.Channels*cfg.Interleave) + int64(idx*frameSize) + 1
		if _, err := r.ReadAt(flag[:], off); err != nil {
			break
		}

		switch {
		case flag[0] == flagLoopStart && start < 0:
			start = f * samplesPerFrame
		case flag[0] == flagLoopEnd && start >= 0:
			return true, start, (f + 1) * samplesPerFrame
		}
	}

	return false, 0, 0
}
