// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"io"

	"github.com/ik5/vgmcodec/utils"
)

const (
	xaGroupSize       = 128
	xaSamplesPerGroup = 224
	xaUnitSamples     = 28
)

// xaK0 and xaK1 are the CD-XA filter coefficients negated and scaled by
// 1024.
var (
	xaK0 = [4]int32{0, -960, -1840, -1568}
	xaK1 = [4]int32{0, 0, 832, 880}
)

// decodeXA decodes CD-ROM XA ADPCM. A 128-byte sound group holds eight
// 28-sample units; units alternate between channels. The parameter byte of
// unit u is at 4+u and its nibbles sit in the low (even u) or high (odd u)
// half of byte 16+4*j+u/2. History is kept with 4 extra fractional bits.
func decodeXA(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	ch, c := max(st.Channels, 1), st.Channel
	if xaSamplesPerGroup%(ch*xaUnitSamples) != 0 {
		return badState(st.Offset, 0, "%d channels do not divide an XA sound group", ch)
	}
	spg := xaSamplesPerGroup / ch

	var buf [xaGroupSize]byte
	fr := newFrameReader(src, buf[:])
	h1, h2 := st.Hist1, st.Hist2

	for k := range n {
		i := first + k
		s := i % spg
		off := st.Offset + int64(i/spg)*xaGroupSize

		f, err := fr.load(off, k)
		if err != nil {
			return err
		}

		unit := (s/xaUnitSamples)*ch + c
		j := s % xaUnitSamples

		param := f[4+unit]
		pred := int(param >> 4)
		if pred >= len(xaK0) {
			return badIndex(off+4+int64(unit), k, "filter", pred)
		}
		shift := param & 0x0f

		b := f[16+j*4+unit/2]
		nib := utils.LowNibbleSigned(b)
		if unit&1 != 0 {
			nib = utils.HighNibbleSigned(b)
		}

		sample := ((nib << 12) >> shift) << 4
		sample -= (xaK0[pred]*h1 + xaK1[pred]*h2) >> 10

		out[k*spacing] = utils.Clamp16(sample >> 4)
		h2, h1 = h1, sample
	}

	st.Hist1, st.Hist2 = h1, h2

	return nil
}
