// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"io"

	"github.com/ik5/vgmcodec/utils"
)

const (
	aicaMinStep = 0x7f
	aicaMaxStep = 0x6000
)

var aicaDeltas = [16]int32{
	1, 3, 5, 7, 9, 11, 13, 15,
	-1, -3, -5, -7, -9, -11, -13, -15,
}

var aicaStepScale = [16]int32{
	230, 230, 230, 230, 307, 409, 512, 614,
	230, 230, 230, 230, 307, 409, 512, 614,
}

// decodeAICA is the Dreamcast AICA (Yamaha) ADPCM: low nibble first, step
// size scaled multiplicatively and kept within [0x7f, 0x6000].
func decodeAICA(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	if st.Step < aicaMinStep || st.Step > aicaMaxStep {
		return badIndex(st.Offset, 0, "step", int(st.Step))
	}
	h, step := st.Hist1, st.Step

	for k := range n {
		i := first + k
		b, err := byteAt(src, st.Offset+int64(i/2), k)
		if err != nil {
			return err
		}
		nib := utils.LowNibble(b)
		if i&1 != 0 {
			nib = utils.HighNibble(b)
		}

		s := utils.Clamp16(h + step*aicaDeltas[nib]/8)
		out[k*spacing] = s
		h = int32(s)

		step = min(max(step*aicaStepScale[nib]/256, aicaMinStep), aicaMaxStep)
	}

	st.Hist1, st.Step = h, step

	return nil
}
