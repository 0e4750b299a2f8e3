// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ReadFull fills buf from src at off. A partial read is reported as
// ErrShortRead even when src returns a nil error.
func ReadFull(src io.ReaderAt, off int64, buf []byte) error {
	n, err := src.ReadAt(buf, off)
	if n == len(buf) {
		return nil
	}
	if err == nil || err == io.EOF {
		return fmt.Errorf("%w: got %d of %d bytes at %#x", ErrShortRead, n, len(buf), off)
	}

	return fmt.Errorf("%w: %w", ErrShortRead, err)
}

func ReadU8(src io.ReaderAt, off int64) (uint8, error) {
	var b [1]byte
	if err := ReadFull(src, off, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func ReadU16LE(src io.ReaderAt, off int64) (uint16, error) {
	var b [2]byte
	if err := ReadFull(src, off, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

func ReadU16BE(src io.ReaderAt, off int64) (uint16, error) {
	var b [2]byte
	if err := ReadFull(src, off, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

func ReadU32LE(src io.ReaderAt, off int64) (uint32, error) {
	var b [4]byte
	if err := ReadFull(src, off, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func ReadU32BE(src io.ReaderAt, off int64) (uint32, error) {
	var b [4]byte
	if err := ReadFull(src, off, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

// frameReader loads one frame at a time so per-sample nibble lookups do
// not go back to the source.
type frameReader struct {
	src io.ReaderAt
	off int64
	buf []byte
	ok  bool
}

func newFrameReader(src io.ReaderAt, buf []byte) frameReader {
	return frameReader{src: src, buf: buf}
}

// load returns the frame starting at off, reusing the buffered copy when
// it is already there.
func (r *frameReader) load(off int64, sample int) ([]byte, error) {
	if r.ok && r.off == off {
		return r.buf, nil
	}
	n, _ := r.src.ReadAt(r.buf, off)
	if n != len(r.buf) {
		r.ok = false
		return nil, shortRead(off+int64(n), sample)
	}
	r.off, r.ok = off, true

	return r.buf, nil
}

// byteAt reads a single byte for codecs without fixed frames.
func byteAt(src io.ReaderAt, off int64, sample int) (byte, error) {
	var b [1]byte
	if n, _ := src.ReadAt(b[:], off); n != 1 {
		return 0, shortRead(off, sample)
	}
	return b[0], nil
}
