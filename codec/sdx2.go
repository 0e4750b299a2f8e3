// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"io"

	"github.com/ik5/vgmcodec/utils"
)

// sdx2Squares maps a signed byte b (index b+128) to its doubled square,
// keeping the sign.
var sdx2Squares = func() (t [256]int32) {
	for i := -128; i < 128; i++ {
		v := int32(i * i * 2)
		if i < 0 {
			v = -v
		}
		t[i+128] = v
	}
	return t
}()

func decodeSDX2Bytes(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n, stride int) error {
	h := st.Hist1

	for k := range n {
		off := st.Offset + int64(first+k)*int64(stride)
		b, err := byteAt(src, off, k)
		if err != nil {
			return err
		}

		if b&1 == 0 {
			h = 0
		}
		s := utils.Clamp16(h + sdx2Squares[int(int8(b))+128])
		out[k*spacing] = s
		h = int32(s)
	}

	st.Hist1 = h

	return nil
}

// decodeSDX2 is 3DO "squareroot-delta-exact" with one byte per sample. An
// even byte restarts the delta chain from zero.
func decodeSDX2(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	return decodeSDX2Bytes(st, src, out, spacing, first, n, 1)
}

// decodeSDX2Int reads samples interleaved byte by byte, spacing channels
// apart.
func decodeSDX2Int(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	return decodeSDX2Bytes(st, src, out, spacing, first, n, spacing)
}
