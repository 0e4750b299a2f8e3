// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"io"
)

const wsHistInit = 0x80

var (
	ws2Bit = [4]int32{-2, -1, 0, 1}
	ws4Bit = [16]int32{-9, -8, -6, -5, -4, -3, -2, -1, 0, 1, 2, 3, 4, 5, 6, 8}
)

// Westwood frame codes, taken from the top two bits of the header byte.
const (
	wsCode2Bit = iota
	wsCode4Bit
	wsCodeRaw
	wsCodeRun
)

// wsFrameSamples is the number of samples a Westwood frame header
// describes.
func wsFrameSamples(hdr byte) int {
	count := int(hdr & 0x3f)
	switch hdr >> 6 {
	case wsCode2Bit:
		return (count + 1) * 4
	case wsCode4Bit:
		return (count + 1) * 2
	case wsCodeRaw:
		if count&0x20 != 0 {
			return 1
		}
		return count + 1
	default:
		return count + 1
	}
}

// wsFrameDataBytes is the payload size following a Westwood frame header.
func wsFrameDataBytes(hdr byte) int64 {
	count := int64(hdr & 0x3f)
	switch hdr >> 6 {
	case wsCode2Bit, wsCode4Bit:
		return count + 1
	case wsCodeRaw:
		if count&0x20 != 0 {
			return 0
		}
		return count + 1
	default:
		return 0
	}
}

// decodeWestwood decodes Westwood Studios ADPCM. The 8-bit history, the
// header offset of the current frame (st.FrameOffset) and the samples left
// in it (st.SamplesLeft) carry a frame across calls. Decoding sample 0
// restarts the stream.
func decodeWestwood(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	if st.Uncompressed {
		for k := range n {
			b, err := byteAt(src, st.Offset+int64(first+k), k)
			if err != nil {
				return err
			}
			out[k*spacing] = (int16(b) - 0x80) * 0x100
		}
		return nil
	}

	hist, left, hdrOff := st.Hist1, st.SamplesLeft, st.FrameOffset
	if first == 0 {
		hist, left, hdrOff = wsHistInit, 0, 0
	}
	if left < 0 {
		return badState(st.Offset+hdrOff, 0, "%d samples left in frame", left)
	}

	var hdr byte
	total := 0
	loaded := false

	for k := range n {
		base := st.Offset + hdrOff

		if !loaded {
			b, err := byteAt(src, base, k)
			if err != nil {
				return err
			}
			hdr, total, loaded = b, wsFrameSamples(b), true
			if left == 0 {
				left = total
			} else if left > total {
				return badState(base, k, "%d samples left in a %d-sample frame", left, total)
			}
		}

		j := total - left
		count := hdr & 0x3f

		switch hdr >> 6 {
		case wsCode2Bit:
			b, err := byteAt(src, base+1+int64(j/4), k)
			if err != nil {
				return err
			}
			hist += ws2Bit[(b>>((j%4)*2))&0x03]
		case wsCode4Bit:
			b, err := byteAt(src, base+1+int64(j/2), k)
			if err != nil {
				return err
			}
			nib := b & 0x0f
			if j&1 != 0 {
				nib = b >> 4
			}
			hist += ws4Bit[nib]
		case wsCodeRaw:
			if count&0x20 != 0 {
				hist += int32(int8(count<<3) >> 3)
			} else {
				b, err := byteAt(src, base+1+int64(j), k)
				if err != nil {
					return err
				}
				hist = int32(b)
			}
		case wsCodeRun:
			// repeat hist
		}

		hist = min(max(hist, 0), 0xff)
		out[k*spacing] = int16((hist - 0x80) * 0x100)

		left--
		if left == 0 {
			hdrOff += 1 + wsFrameDataBytes(hdr)
			loaded = false
		}
	}

	st.Hist1, st.SamplesLeft, st.FrameOffset = hist, left, hdrOff

	return nil
}
