// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"encoding/binary"
	"io"

	"github.com/ik5/vgmcodec/utils"
)

const (
	l5FrameSize       = 0x12
	l5SamplesPerFrame = 32
)

var l5Scales = [32]int32{
	0x00001000, 0x0000144e, 0x000019c5, 0x000020b4, 0x00002981, 0x000034ac, 0x000042d9, 0x000054d6,
	0x00006bab, 0x000088a4, 0x0000ad69, 0x0000dc13, 0x00011738, 0x00016219, 0x0001c1d6, 0x00023be5,
	0x0002d6c5, 0x00039a1d, 0x00048ee3, 0x0005c0ec, 0x00074fe3, 0x00094bea, 0x000bd300, 0x000f0df5,
	0x00132a40, 0x00185ec1, 0x001f0b80, 0x00277ba8, 0x0032225c, 0x003f9a61, 0x0051a4c5, 0x00674e7e,
}

// decodeL5555 is the 3-tap predictor of L5 "555" streams. The little-endian
// frame header packs a negative scale index (bits 0-4), a positive scale
// index (bits 5-9) and a coefficient triple index (bits 10-14) into
// st.Coef3.
func decodeL5555(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	var buf [l5FrameSize]byte
	fr := newFrameReader(src, buf[:])
	h1, h2, h3 := st.Hist1, st.Hist2, st.Hist3

	for k := range n {
		i := first + k
		pos := i % l5SamplesPerFrame
		off := st.Offset + int64(i/l5SamplesPerFrame)*l5FrameSize

		f, err := fr.load(off, k)
		if err != nil {
			return err
		}

		hdr := binary.LittleEndian.Uint16(f[:2])
		posScale := l5Scales[(hdr>>5)&0x1f]
		negScale := l5Scales[hdr&0x1f]
		ci := int(hdr>>10) & 0x1f
		c1, c2, c3 := st.Coef3[3*ci], st.Coef3[3*ci+1], st.Coef3[3*ci+2]

		b := f[2+pos/2]
		nib := utils.HighNibbleSigned(b)
		if pos&1 != 0 {
			nib = utils.LowNibbleSigned(b)
		}

		pred := -(h1*c1 + h2*c2 + h3*c3)
		scale := negScale
		if nib >= 0 {
			scale = posScale
		}

		s := utils.Clamp16((pred + nib*scale) >> 12)
		out[k*spacing] = s
		h3, h2, h1 = h2, h1, int32(s)
	}

	st.Hist1, st.Hist2, st.Hist3 = h1, h2, h3

	return nil
}
