// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"encoding/binary"
	"io"
)

// PCM variants read one sample at a time; the _int variants step through
// data interleaved per sample using spacing as the channel count.

func decodePCM16(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n, stride int, order binary.ByteOrder) error {
	var b [2]byte
	for k := range n {
		off := st.Offset + int64(first+k)*int64(stride)
		if c, _ := src.ReadAt(b[:], off); c != 2 {
			return shortRead(off, k)
		}
		out[k*spacing] = int16(order.Uint16(b[:]))
	}
	return nil
}

func decodePCM16LE(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	return decodePCM16(st, src, out, spacing, first, n, 2, binary.LittleEndian)
}

func decodePCM16BE(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	return decodePCM16(st, src, out, spacing, first, n, 2, binary.BigEndian)
}

func decodePCM16LEInt(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	return decodePCM16(st, src, out, spacing, first, n, 2*spacing, binary.LittleEndian)
}

func decodePCM8Bytes(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n, stride int, conv func(byte) int16) error {
	for k := range n {
		off := st.Offset + int64(first+k)*int64(stride)
		b, err := byteAt(src, off, k)
		if err != nil {
			return err
		}
		out[k*spacing] = conv(b)
	}
	return nil
}

func pcm8Signed(b byte) int16   { return int16(int8(b)) * 0x100 }
func pcm8Unsigned(b byte) int16 { return (int16(b) - 0x80) * 0x100 }

// pcm8SignBit is sign-magnitude: bit 7 is the sign.
func pcm8SignBit(b byte) int16 {
	v := int16(b & 0x7f)
	if b&0x80 != 0 {
		v = -v
	}
	return v * 0x100
}

func decodePCM8(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	return decodePCM8Bytes(st, src, out, spacing, first, n, 1, pcm8Signed)
}

func decodePCM8Int(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	return decodePCM8Bytes(st, src, out, spacing, first, n, spacing, pcm8Signed)
}

func decodePCM8Unsigned(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	return decodePCM8Bytes(st, src, out, spacing, first, n, 1, pcm8Unsigned)
}

func decodePCM8UnsignedInt(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	return decodePCM8Bytes(st, src, out, spacing, first, n, spacing, pcm8Unsigned)
}

func decodePCM8SignBitInt(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	return decodePCM8Bytes(st, src, out, spacing, first, n, spacing, pcm8SignBit)
}
