// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"encoding/binary"
	"io"

	"github.com/ik5/vgmcodec/utils"
)

const (
	// xboxBlockSize is the per-channel share of an XBOX IMA block: a 4-byte
	// header and 32 bytes of nibbles.
	xboxBlockSize       = 36
	xboxSamplesPerBlock = 64
)

// decodeXBOXIMA decodes one channel of N-channel XBOX IMA. A block holds N
// headers, then 4-byte nibble groups cycling through the channels.
// st.FrameOffset points at the current block and advances by 36*N exactly
// once, when the block's last sample has been produced.
func decodeXBOXIMA(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	ch, c := max(st.Channels, 1), st.Channel
	block := int64(xboxBlockSize * ch)

	blockOff := st.FrameOffset
	if want := int64(first/xboxSamplesPerBlock) * block; blockOff != want {
		return badState(st.Offset+blockOff, 0, "block cursor %#x, sample %d expects %#x", blockOff, first, want)
	}

	fr := newFrameReader(src, make([]byte, block))
	h, idx := st.Hist1, st.Step

	for k := range n {
		pos := (first + k) % xboxSamplesPerBlock
		off := st.Offset + blockOff

		f, err := fr.load(off, k)
		if err != nil {
			return err
		}

		if pos == 0 {
			h = int32(int16(binary.LittleEndian.Uint16(f[4*c:])))
			idx = clampStep(int32(int16(binary.LittleEndian.Uint16(f[4*c+2:]))))
		} else if idx < 0 || idx > imaMaxStep {
			return badIndex(off, k, "step index", int(idx))
		}

		b := f[4*ch+(pos/8)*4*ch+4*c+(pos%8)/2]
		nib := utils.LowNibble(b)
		if pos&1 != 0 {
			nib = utils.HighNibble(b)
		}

		h, idx = imaExpand(nib, h, idx)
		out[k*spacing] = int16(h)

		if pos == xboxSamplesPerBlock-1 {
			blockOff += block
		}
	}

	st.Hist1, st.Step, st.FrameOffset = h, idx, blockOff

	return nil
}
