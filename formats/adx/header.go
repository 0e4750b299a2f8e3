// SPDX-License-Identifier: EPL-2.0

package adx

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	magic     = 0x8000
	copyright = "(c)CRI"

	typeStandard = 3

	frameSize       = 18
	samplesPerFrame = 32
	bitsPerSample   = 4

	flagEncrypted = 0x08

	// largest header worth reading; loop info of v4 ends at 0x34
	maxHeader = 0x40
)

// Header holds the fields of an ADX header.
type Header struct {
	DataOffset   int64
	Type         uint8
	Channels     int
	SampleRate   int
	TotalSamples int
	Cutoff       int
	Version      uint8
	Flags        uint8

	Loop      bool
	LoopStart int
	LoopEnd   int
}

// Encrypted reports whether the frame scales are XOR-keyed.
func (h *Header) Encrypted() bool { return h.Flags&flagEncrypted != 0 }

// ReadHeader parses and checks the header at the start of r.
func ReadHeader(r io.ReaderAt) (*Header, error) {
	var b [maxHeader]byte
	n, err := r.ReadAt(b[:], 0)
	if n < 0x14 {
		return nil, fmt.Errorf("%w: header is %d bytes: %w", ErrNotAdxFile, n, err)
	}
	if binary.BigEndian.Uint16(b[0:]) != magic {
		return nil, ErrNotAdxFile
	}

	off := int64(binary.BigEndian.Uint16(b[2:]))
	if off < 0x12 {
		return nil, fmt.Errorf("%w: copyright offset %#x", ErrNotAdxFile, off)
	}
	var sig [len(copyright)]byte
	if _, err := r.ReadAt(sig[:], off-2); err != nil || string(sig[:]) != copyright {
		return nil, fmt.Errorf("%w: no %s signature", ErrNotAdxFile, copyright)
	}

	h := &Header{
		DataOffset:   off + 4,
		Type:         b[0x04],
		Channels:     int(b[0x07]),
		SampleRate:   int(binary.BigEndian.Uint32(b[0x08:])),
		TotalSamples: int(binary.BigEndian.Uint32(b[0x0c:])),
		Cutoff:       int(binary.BigEndian.Uint16(b[0x10:])),
		Version:      b[0x12],
		Flags:        b[0x13],
	}

	if h.Type != typeStandard {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedType, h.Type)
	}
	if b[0x05] != frameSize || b[0x06] != bitsPerSample {
		return nil, fmt.Errorf("%w: %d-byte frames of %d-bit samples", ErrUnsupportedLayout, b[0x05], b[0x06])
	}
	if h.Channels < 1 || h.SampleRate < 1 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrUnsupportedLayout, h.Channels, h.SampleRate)
	}

	h.readLoop(b[:n])

	return h, nil
}

// readLoop picks the loop block of version 3 and 4 headers, when the
// header is long enough to hold one.
func (h *Header) readLoop(b []byte) {
	var flagAt, startAt, endAt int
	switch h.Version {
	case 3:
		flagAt, startAt, endAt = 0x18, 0x1c, 0x24
	case 4:
		flagAt, startAt, endAt = 0x24, 0x28, 0x30
	default:
		return
	}
	if h.DataOffset < int64(endAt+4) || len(b) < endAt+4 {
		return
	}

	if binary.BigEndian.Uint32(b[flagAt:]) == 0 {
		return
	}
	start := int(binary.BigEndian.Uint32(b[startAt:]))
	end := int(binary.BigEndian.Uint32(b[endAt:]))
	if start < end && end <= h.TotalSamples {
		h.Loop, h.LoopStart, h.LoopEnd = true, start, end
	}
}
