// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"io"

	"github.com/ik5/vgmcodec/utils"
)

const (
	procyonFrameSize       = 16
	procyonSamplesPerFrame = 30
)

var procyonCoefs = [5][2]int32{
	{0x00, 0x00},
	{0x3c, 0x00},
	{0x73, -0x34},
	{0x62, -0x37},
	{0x7a, -0x3c},
}

// decodeProcyon handles the Procyon Studio NDS codec. Every byte is stored
// XOR 0x80 and the header is the last byte of the frame. History is kept at
// 6 extra fractional bits and the output drops them again.
func decodeProcyon(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	var buf [procyonFrameSize]byte
	fr := newFrameReader(src, buf[:])
	h1, h2 := st.Hist1, st.Hist2

	for k := range n {
		i := first + k
		pos := i % procyonSamplesPerFrame
		off := st.Offset + int64(i/procyonSamplesPerFrame)*procyonFrameSize

		f, err := fr.load(off, k)
		if err != nil {
			return err
		}

		hdr := f[15] ^ 0x80
		scale := 12 - int32(hdr&0x0f)
		ci := int(hdr >> 4)
		if ci >= len(procyonCoefs) {
			ci = 0
		}
		c := procyonCoefs[ci]

		b := f[pos/2] ^ 0x80
		nib := utils.LowNibbleSigned(b)
		if pos&1 != 0 {
			nib = utils.HighNibbleSigned(b)
		}

		s := nib * 64 * 64
		if scale < 0 {
			s <<= -scale
		} else {
			s >>= scale
		}

		s = (h1*c[0]+h2*c[1]+32)/64 + s*64
		h2, h1 = h1, s
		out[k*spacing] = utils.Clamp16((s+32)/64) / 64 * 64
	}

	st.Hist1, st.Hist2 = h1, h2

	return nil
}
