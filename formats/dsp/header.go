// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/vgmcodec/audio"
	"github.com/ik5/vgmcodec/codec"
)

const (
	HeaderSize = 0x60

	frameSize       = 8
	samplesPerFrame = 14
	nibblesPerFrame = 16

	formatADPCM = 0
)

// Header is the standard 0x60-byte big-endian DSP header written by the
// Nintendo SDK tools.
type Header struct {
	NumSamples   uint32
	NumNibbles   uint32
	SampleRate   uint32
	LoopFlag     uint16
	Format       uint16
	LoopStart    uint32 // nibble address
	LoopEnd      uint32 // nibble address, inclusive
	CurrentAddr  uint32
	Coefs        [16]int16
	Gain         uint16
	PredScale    uint16
	Hist1, Hist2 int16
	LoopPS       uint16
	LoopHist1    int16
	LoopHist2    int16
}

// ReadHeader decodes the header at off.
func ReadHeader(r io.ReaderAt, off int64) (*Header, error) {
	var b [HeaderSize]byte
	if _, err := r.ReadAt(b[:], off); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotDspFile, err)
	}

	h := &Header{
		NumSamples:  binary.BigEndian.Uint32(b[0x00:]),
		NumNibbles:  binary.BigEndian.Uint32(b[0x04:]),
		SampleRate:  binary.BigEndian.Uint32(b[0x08:]),
		LoopFlag:    binary.BigEndian.Uint16(b[0x0c:]),
		Format:      binary.BigEndian.Uint16(b[0x0e:]),
		LoopStart:   binary.BigEndian.Uint32(b[0x10:]),
		LoopEnd:     binary.BigEndian.Uint32(b[0x14:]),
		CurrentAddr: binary.BigEndian.Uint32(b[0x18:]),
		Gain:        binary.BigEndian.Uint16(b[0x3c:]),
		PredScale:   binary.BigEndian.Uint16(b[0x3e:]),
		Hist1:       int16(binary.BigEndian.Uint16(b[0x40:])),
		Hist2:       int16(binary.BigEndian.Uint16(b[0x42:])),
		LoopPS:      binary.BigEndian.Uint16(b[0x44:]),
		LoopHist1:   int16(binary.BigEndian.Uint16(b[0x46:])),
		LoopHist2:   int16(binary.BigEndian.Uint16(b[0x48:])),
	}
	for i := range h.Coefs {
		h.Coefs[i] = int16(binary.BigEndian.Uint16(b[0x1c+2*i:]))
	}

	if h.Format != formatADPCM {
		return nil, fmt.Errorf("%w: %#x", ErrUnsupportedFormat, h.Format)
	}
	if h.SampleRate == 0 || h.NumSamples == 0 {
		return nil, fmt.Errorf("%w: %d samples at %d Hz", ErrNotDspFile, h.NumSamples, h.SampleRate)
	}

	return h, nil
}

// NibbleToSample converts a nibble address to a sample index. Every
// 16-nibble frame holds 14 samples after its two header nibbles.
func NibbleToSample(addr uint32) int {
	return int(addr/nibblesPerFrame)*samplesPerFrame + int(addr%nibblesPerFrame) - 2
}

// StreamConfig describes the mono stream following the header at off. size
// bounds the sample count by the frames actually present.
func (h *Header) StreamConfig(off, size int64) audio.StreamConfig {
	start := off + HeaderSize
	avail := max(size-start, 0) / frameSize * samplesPerFrame
	total := min(int(h.NumSamples), int(avail))

	cfg := audio.StreamConfig{
		Kind:         codec.KindNGCDSP,
		Channels:     1,
		SampleRate:   int(h.SampleRate),
		TotalSamples: total,
		Start:        start,
		Init: func(_ int, st *codec.ChannelState) {
			st.Coef = h.Coefs
			st.Hist1, st.Hist2 = int32(h.Hist1), int32(h.Hist2)
		},
	}

	if h.LoopFlag != 0 {
		ls, le := NibbleToSample(h.LoopStart), NibbleToSample(h.LoopEnd)+1
		if ls >= 0 && ls < le && le <= total {
			cfg.Loop, cfg.LoopStart, cfg.LoopEnd = true, ls, le
		}
	}

	return cfg
}
