// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"encoding/binary"
	"io"

	"github.com/ik5/vgmcodec/utils"
)

const (
	eaxaFrameSize       = 15
	eaxaRawFrameSize    = 61
	eaxaSamplesPerFrame = 28

	// eaxaRawMarker in the header byte selects a frame of 28 big-endian
	// PCM samples after four skipped bytes.
	eaxaRawMarker = 0xee
)

// eaxaCoefs are the (coef1, coef2) pairs addressed by the high nibble of a
// compressed frame header.
var eaxaCoefs = [...]int32{
	0, 0,
	240, 0,
	460, -208,
	0x0188, -220,
	0x0000, 0x0000,
	0x00f0, 0x0000,
	0x01cc, 0x0000,
	0x0188, 0x0000,
	0x0000, 0x0000,
	0x0000, 0x0000,
	-208, -1,
	-220, -1,
	0x0000, 0x0000,
	0x0000, 0x3f70,
}

// decodeEAXA walks variable-size frames with st.FrameOffset, which moves
// past a frame only once its last sample has been produced.
func decodeEAXA(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	var buf [eaxaRawFrameSize]byte
	var f []byte
	loaded := int64(-1)
	h1, h2 := st.Hist1, st.Hist2
	frameOff := st.FrameOffset

	for k := range n {
		pos := (first + k) % eaxaSamplesPerFrame
		off := st.Offset + frameOff

		if loaded != frameOff {
			hdr, err := byteAt(src, off, k)
			if err != nil {
				return err
			}
			size := eaxaFrameSize
			if hdr == eaxaRawMarker {
				size = eaxaRawFrameSize
			}
			if c, _ := src.ReadAt(buf[:size], off); c != size {
				return shortRead(off+int64(c), k)
			}
			f, loaded = buf[:size], frameOff
		}

		if f[0] == eaxaRawMarker {
			s := int16(binary.BigEndian.Uint16(f[5+2*pos:]))
			out[k*spacing] = s
			h2, h1 = h1, int32(s)
		} else {
			ci := int(f[0] >> 4)
			if 2*ci+1 >= len(eaxaCoefs) {
				return badIndex(off, k, "coefficient", ci)
			}
			c1, c2 := eaxaCoefs[2*ci], eaxaCoefs[2*ci+1]
			shift := (f[0] & 0x0f) + 8

			b := f[1+pos/2]
			nib := utils.HighNibble(b)
			if pos&1 != 0 {
				nib = utils.LowNibble(b)
			}

			s := (int32(uint32(nib)<<28)>>shift + c1*h1 + c2*h2) >> 8
			out[k*spacing] = utils.Clamp16(s)
			h2, h1 = h1, s
		}

		if pos == eaxaSamplesPerFrame-1 {
			frameOff += int64(len(f))
		}
	}

	st.Hist1, st.Hist2, st.FrameOffset = h1, h2, frameOff

	return nil
}
