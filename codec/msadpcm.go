// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"encoding/binary"
	"io"

	"github.com/ik5/vgmcodec/utils"
)

var msADPCMCoefs = [7][2]int32{
	{256, 0},
	{512, -256},
	{0, 0},
	{192, 64},
	{240, 0},
	{460, -208},
	{392, -232},
}

var msADPCMAdaptation = [16]int32{
	230, 230, 230, 230, 307, 409, 512, 614,
	768, 614, 512, 409, 307, 230, 230, 230,
}

const msADPCMMinScale = 16

func msADPCMSamplesPerBlock(channels, blockSize int) int {
	if channels < 1 || blockSize <= 7*channels {
		return 0
	}
	return (blockSize-7*channels)*2/channels + 2
}

// decodeMSADPCM handles WAVE_FORMAT_ADPCM blocks. The header stores, per
// channel and in this order, the coefficient index byte, then 16-bit
// scale, hist1 and hist2. hist2 and hist1 are the first two output samples
// of the block; nibbles of all channels follow, high nibble first.
func decodeMSADPCM(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	ch, c := max(st.Channels, 1), st.Channel
	spb := msADPCMSamplesPerBlock(ch, st.BlockSize)
	if spb == 0 {
		return badState(st.Offset, 0, "block size %d too small for %d channels", st.BlockSize, ch)
	}

	fr := newFrameReader(src, make([]byte, st.BlockSize))
	h1, h2, scale, ci := st.Hist1, st.Hist2, st.Step, st.CoefIndex

	for k := range n {
		i := first + k
		pos := i % spb
		off := st.Offset + int64(i/spb)*int64(st.BlockSize)

		f, err := fr.load(off, k)
		if err != nil {
			return err
		}

		switch pos {
		case 0:
			ci = int(f[c])
			if ci >= len(msADPCMCoefs) {
				return badIndex(off+int64(c), k, "coefficient", ci)
			}
			scale = int32(int16(binary.LittleEndian.Uint16(f[ch+2*c:])))
			h1 = int32(int16(binary.LittleEndian.Uint16(f[3*ch+2*c:])))
			h2 = int32(int16(binary.LittleEndian.Uint16(f[5*ch+2*c:])))
			out[k*spacing] = int16(h2)
			continue
		case 1:
			out[k*spacing] = int16(h1)
			continue
		}

		if ci < 0 || ci >= len(msADPCMCoefs) {
			return badIndex(off, k, "coefficient", ci)
		}

		j := (pos-2)*ch + c
		bi := 7*ch + j/2
		if bi >= len(f) {
			return badState(off, k, "nibble %d outside %d-byte block", j, len(f))
		}
		nib := utils.HighNibble(f[bi])
		if j&1 != 0 {
			nib = utils.LowNibble(f[bi])
		}
		signed := nib
		if signed >= 8 {
			signed -= 16
		}

		coef := msADPCMCoefs[ci]
		pred := (h1*coef[0]+h2*coef[1])/256 + signed*scale
		s := utils.Clamp16(pred)
		out[k*spacing] = s
		h2, h1 = h1, int32(s)

		scale = msADPCMAdaptation[nib] * scale / 256
		if scale < msADPCMMinScale {
			scale = msADPCMMinScale
		}
	}

	st.Hist1, st.Hist2, st.Step, st.CoefIndex = h1, h2, scale, ci

	return nil
}
