// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/ik5/vgmcodec/utils"
)

const (
	adxFrameSize       = 18
	adxSamplesPerFrame = 32
)

// ADXCoefficients derives the 2-tap prediction filter of an ADX stream
// from the highpass cutoff and sample rate stored in its header.
func ADXCoefficients(cutoff, sampleRate int) (coef1, coef2 int16) {
	z := math.Cos(2 * math.Pi * float64(cutoff) / float64(sampleRate))
	a := math.Sqrt2 - z
	b := math.Sqrt2 - 1
	c := (a - math.Sqrt((a+b)*(a-b))) / b

	return int16(math.Floor(c * 8192)), int16(math.Floor(c * c * -4096))
}

func decodeADX(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	return decodeADXFrames(st, src, out, spacing, first, n, false)
}

// decodeADXEnc decrypts each frame scale with the channel key. The key
// steps once per frame of every channel, so a channel skips Channels steps
// after finishing one of its own frames.
func decodeADXEnc(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	return decodeADXFrames(st, src, out, spacing, first, n, true)
}

func decodeADXFrames(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int, encrypted bool) error {
	var buf [adxFrameSize]byte
	fr := newFrameReader(src, buf[:])

	c1, c2 := int32(st.Coef[0]), int32(st.Coef[1])
	h1, h2 := st.Hist1, st.Hist2
	key := st.ADXKey

	for k := range n {
		i := first + k
		pos := i % adxSamplesPerFrame
		off := st.Offset + int64(i/adxSamplesPerFrame)*adxFrameSize

		f, err := fr.load(off, k)
		if err != nil {
			return err
		}

		raw := binary.BigEndian.Uint16(f[:2])
		var scale int32
		if encrypted {
			scale = int32((raw^key.Xor)&0x1fff) + 1
		} else {
			scale = int32(int16(raw)) + 1
		}

		b := f[2+pos/2]
		nib := utils.HighNibbleSigned(b)
		if pos&1 != 0 {
			nib = utils.LowNibbleSigned(b)
		}

		s := utils.Clamp16(nib*scale + (c1*h1+c2*h2)>>12)
		out[k*spacing] = s
		h2, h1 = h1, int32(s)

		if encrypted && pos == adxSamplesPerFrame-1 {
			key = key.Advance(max(st.Channels, 1))
		}
	}

	st.Hist1, st.Hist2, st.ADXKey = h1, h2, key

	return nil
}
