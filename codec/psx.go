// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"io"

	"github.com/ik5/vgmcodec/utils"
)

const (
	psxFrameSize       = 16
	psxSamplesPerFrame = 28

	// psxSilentFlag and above mark a frame that decodes to silence.
	psxSilentFlag = 0x07
)

// psxCoefs are the SPU filter pairs in 1/64 units. Summing in these units
// and truncating once reproduces the exact result of the fractional
// filter.
var psxCoefs = [5][2]int64{
	{0, 0},
	{60, 0},
	{115, -52},
	{98, -55},
	{122, -60},
}

type psxVariant int

const (
	psxStandard psxVariant = iota
	psxBadFlags            // flag byte ignored
	psxInvert              // header XOR key and first data byte offset
)

func decodePSX(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	return decodePSXFrames(st, src, out, spacing, first, n, psxStandard)
}

func decodePSXBadFlags(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	return decodePSXFrames(st, src, out, spacing, first, n, psxBadFlags)
}

func decodePSXInvert(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	return decodePSXFrames(st, src, out, spacing, first, n, psxInvert)
}

// decodePSXFrames keeps the unclamped prediction in history; only the
// output is saturated.
func decodePSXFrames(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int, v psxVariant) error {
	var buf [psxFrameSize]byte
	fr := newFrameReader(src, buf[:])
	h1, h2 := st.Hist1, st.Hist2

	for k := range n {
		i := first + k
		pos := i % psxSamplesPerFrame
		off := st.Offset + int64(i/psxSamplesPerFrame)*psxFrameSize

		f, err := fr.load(off, k)
		if err != nil {
			return err
		}

		hdr := f[0]
		if v == psxInvert {
			hdr ^= st.PSXXor
		}

		var sample int32
		if v == psxBadFlags || f[1] < psxSilentFlag {
			pred := int(hdr >> 4)
			if pred >= len(psxCoefs) {
				return badIndex(off, k, "predictor", pred)
			}
			shift := hdr & 0x0f

			b := f[2+pos/2]
			if v == psxInvert && pos/2 == 0 {
				b += st.PSXAdd
			}

			nib := utils.LowNibbleSigned(b)
			if pos&1 != 0 {
				nib = utils.HighNibbleSigned(b)
			}

			scaled := int64((nib << 12) >> shift)
			c := psxCoefs[pred]
			sample = int32((scaled*64 + int64(h1)*c[0] + int64(h2)*c[1]) / 64)
		}

		out[k*spacing] = utils.Clamp16(sample)
		h2, h1 = h1, sample
	}

	st.Hist1, st.Hist2 = h1, h2

	return nil
}
