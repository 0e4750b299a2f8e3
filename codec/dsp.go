// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"io"

	"github.com/ik5/vgmcodec/utils"
)

const (
	dspFrameSize       = 8
	dspSamplesPerFrame = 14

	afcFrameSize       = 9
	afcSamplesPerFrame = 16
)

var afcCoefs = [16][2]int64{
	{0, 0},
	{2048, 0},
	{0, 2048},
	{1024, 1024},
	{4096, -2048},
	{3584, -1536},
	{3072, -1024},
	{4608, -2560},
	{4200, -2248},
	{4800, -2300},
	{5120, -3072},
	{2048, -2048},
	{1024, -1024},
	{-1024, 1024},
	{-1024, 0},
	{-2048, 0},
}

// decodeNGCDSP uses the eight coefficient pairs in st.Coef. The frame
// header holds the pair index in the high nibble and log2 scale in the low.
func decodeNGCDSP(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	var buf [dspFrameSize]byte
	fr := newFrameReader(src, buf[:])
	h1, h2 := int64(st.Hist1), int64(st.Hist2)

	for k := range n {
		i := first + k
		pos := i % dspSamplesPerFrame
		off := st.Offset + int64(i/dspSamplesPerFrame)*dspFrameSize

		f, err := fr.load(off, k)
		if err != nil {
			return err
		}

		scale := int64(1) << (f[0] & 0x0f)
		ci := int(f[0]>>4) & 0x0f
		if 2*ci+1 >= len(st.Coef) {
			return badIndex(off, k, "coefficient", ci)
		}
		c1, c2 := int64(st.Coef[2*ci]), int64(st.Coef[2*ci+1])

		b := f[1+pos/2]
		nib := utils.HighNibbleSigned(b)
		if pos&1 != 0 {
			nib = utils.LowNibbleSigned(b)
		}

		s := utils.Clamp16(((int64(nib)*scale)<<11 + 1024 + c1*h1 + c2*h2) >> 11)
		out[k*spacing] = s
		h2, h1 = h1, int64(s)
	}

	st.Hist1, st.Hist2 = int32(h1), int32(h2)

	return nil
}

// decodeNGCAFC is the DSP filter with a fixed table, nine-byte frames and
// no rounding bias. The header nibbles are swapped relative to DSP.
func decodeNGCAFC(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	var buf [afcFrameSize]byte
	fr := newFrameReader(src, buf[:])
	h1, h2 := int64(st.Hist1), int64(st.Hist2)

	for k := range n {
		i := first + k
		pos := i % afcSamplesPerFrame
		off := st.Offset + int64(i/afcSamplesPerFrame)*afcFrameSize

		f, err := fr.load(off, k)
		if err != nil {
			return err
		}

		scale := int64(1) << (f[0] >> 4)
		c := afcCoefs[f[0]&0x0f]

		b := f[1+pos/2]
		nib := utils.HighNibbleSigned(b)
		if pos&1 != 0 {
			nib = utils.LowNibbleSigned(b)
		}

		s := utils.Clamp16(((int64(nib)*scale)<<11 + c[0]*h1 + c[1]*h2) >> 11)
		out[k*spacing] = s
		h2, h1 = h1, int64(s)
	}

	st.Hist1, st.Hist2 = int32(h1), int32(h2)

	return nil
}
