// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"encoding/binary"
	"io"

	"github.com/ik5/vgmcodec/utils"
)

const imaMaxStep = 88

var imaStepTable = [imaMaxStep + 1]int32{
	7, 8, 9, 10, 11, 12, 13, 14, 16, 17,
	19, 21, 23, 25, 28, 31, 34, 37, 41, 45,
	50, 55, 60, 66, 73, 80, 88, 97, 107, 118,
	130, 143, 157, 173, 190, 209, 230, 253, 279, 307,
	337, 371, 408, 449, 494, 544, 598, 658, 724, 796,
	876, 963, 1060, 1166, 1282, 1411, 1552, 1707, 1878, 2066,
	2272, 2499, 2749, 3024, 3327, 3660, 4026, 4428, 4871, 5358,
	5894, 6484, 7132, 7845, 8630, 9493, 10442, 11487, 12635, 13899,
	15289, 16818, 18500, 20350, 22385, 24623, 27086, 29794, 32767,
}

var imaIndexTable = [16]int32{
	-1, -1, -1, -1, 2, 4, 6, 8,
	-1, -1, -1, -1, 2, 4, 6, 8,
}

// imaExpand applies one 4-bit code to hist and the step index. The delta
// is built from partial sums of the step, not a multiply, so rounding
// matches the reference encoder.
func imaExpand(nib, hist, index int32) (int32, int32) {
	step := imaStepTable[index]

	delta := step >> 3
	if nib&1 != 0 {
		delta += step >> 2
	}
	if nib&2 != 0 {
		delta += step >> 1
	}
	if nib&4 != 0 {
		delta += step
	}
	if nib&8 != 0 {
		hist -= delta
	} else {
		hist += delta
	}

	return int32(utils.Clamp16(hist)), clampStep(index + imaIndexTable[nib])
}

func clampStep(index int32) int32 {
	return min(max(index, 0), imaMaxStep)
}

func checkStep(st *ChannelState) error {
	if st.Step < 0 || st.Step > imaMaxStep {
		return badIndex(st.Offset, 0, "step index", int(st.Step))
	}
	return nil
}

// decodeIMANibbles covers the headerless variants: one continuous nibble
// stream starting at st.Offset.
func decodeIMANibbles(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int, highFirst bool) error {
	if err := checkStep(st); err != nil {
		return err
	}
	h, idx := st.Hist1, st.Step

	for k := range n {
		i := first + k
		b, err := byteAt(src, st.Offset+int64(i/2), k)
		if err != nil {
			return err
		}

		high := (i&1 == 0) == highFirst
		nib := utils.LowNibble(b)
		if high {
			nib = utils.HighNibble(b)
		}

		h, idx = imaExpand(nib, h, idx)
		out[k*spacing] = int16(h)
	}

	st.Hist1, st.Step = h, idx

	return nil
}

func decodeIMA(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	return decodeIMANibbles(st, src, out, spacing, first, n, false)
}

// decodeDVIIMA is IMA with the high nibble first.
func decodeDVIIMA(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	return decodeIMANibbles(st, src, out, spacing, first, n, true)
}

// decodeNDSIMA reloads history and step index from a 4-byte header at the
// start of the data (block start under an interleave layout).
func decodeNDSIMA(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	h, idx := st.Hist1, st.Step

	for k := range n {
		i := first + k
		if i == 0 {
			var hdr [4]byte
			if c, _ := src.ReadAt(hdr[:], st.Offset); c != len(hdr) {
				return shortRead(st.Offset+int64(c), k)
			}
			h = int32(int16(binary.LittleEndian.Uint16(hdr[0:])))
			idx = clampStep(int32(int16(binary.LittleEndian.Uint16(hdr[2:]))))
		} else if idx < 0 || idx > imaMaxStep {
			return badIndex(st.Offset, k, "step index", int(idx))
		}

		b, err := byteAt(src, st.Offset+4+int64(i/2), k)
		if err != nil {
			return err
		}
		nib := utils.LowNibble(b)
		if i&1 != 0 {
			nib = utils.HighNibble(b)
		}

		h, idx = imaExpand(nib, h, idx)
		out[k*spacing] = int16(h)
	}

	st.Hist1, st.Step = h, idx

	return nil
}

// decodeEACSIMA reads a mono stream as high-then-low nibbles. In stereo
// both channels share one byte per sample; st.HighNibble picks the half.
func decodeEACSIMA(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	if st.Channels <= 1 {
		return decodeIMANibbles(st, src, out, spacing, first, n, true)
	}
	if err := checkStep(st); err != nil {
		return err
	}
	h, idx := st.Hist1, st.Step

	for k := range n {
		b, err := byteAt(src, st.Offset+int64(first+k), k)
		if err != nil {
			return err
		}
		nib := utils.LowNibble(b)
		if st.HighNibble {
			nib = utils.HighNibble(b)
		}

		h, idx = imaExpand(nib, h, idx)
		out[k*spacing] = int16(h)
	}

	st.Hist1, st.Step = h, idx

	return nil
}

func msIMASamplesPerBlock(channels, blockSize int) int {
	if channels < 1 || blockSize <= 4*channels {
		return 0
	}
	return (blockSize-4*channels)*2/channels + 1
}

// decodeMSIMA handles WAVE_FORMAT_IMA_ADPCM blocks. Each block starts with
// a 4-byte header per channel whose sample is output first; nibbles follow
// in 4-byte groups per channel, low nibble first.
func decodeMSIMA(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	ch, c := max(st.Channels, 1), st.Channel
	spb := msIMASamplesPerBlock(ch, st.BlockSize)
	if spb == 0 {
		return badState(st.Offset, 0, "block size %d too small for %d channels", st.BlockSize, ch)
	}

	fr := newFrameReader(src, make([]byte, st.BlockSize))
	h, idx := st.Hist1, st.Step

	for k := range n {
		i := first + k
		pos := i % spb
		off := st.Offset + int64(i/spb)*int64(st.BlockSize)

		f, err := fr.load(off, k)
		if err != nil {
			return err
		}

		if pos == 0 {
			h = int32(int16(binary.LittleEndian.Uint16(f[4*c:])))
			idx = clampStep(int32(f[4*c+2]))
			out[k*spacing] = int16(h)
			continue
		}
		if idx < 0 || idx > imaMaxStep {
			return badIndex(off, k, "step index", int(idx))
		}

		j := pos - 1
		bi := 4*ch + (j/8)*4*ch + 4*c + (j%8)/2
		if bi >= len(f) {
			return badState(off, k, "nibble %d outside %d-byte block", j, len(f))
		}
		b := f[bi]
		nib := utils.LowNibble(b)
		if j&1 != 0 {
			nib = utils.HighNibble(b)
		}

		h, idx = imaExpand(nib, h, idx)
		out[k*spacing] = int16(h)
	}

	st.Hist1, st.Step = h, idx

	return nil
}
