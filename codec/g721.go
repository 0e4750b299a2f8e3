// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"io"

	"github.com/ik5/vgmcodec/utils"
)

// G721State is the adaptive predictor of a CCITT G.721 32 kbit/s decoder.
// Field widths follow the reference implementation; arithmetic truncates
// to 16 bits where it stores into them.
type G721State struct {
	yl  int32    // locked quantizer scale factor
	yu  int16    // unlocked quantizer scale factor
	dms int16    // short term average of F(I)
	dml int16    // long term average of F(I)
	ap  int16    // linear weighting coefficient of yl and yu
	a   [2]int16 // pole predictor coefficients
	b   [6]int16 // zero predictor coefficients
	pk  [2]int16 // signs of previous partial reconstructed signals
	dq  [6]int16 // previous quantized differences, float format
	sr  [2]int16 // previous reconstructed signals, float format
	td  int8     // tone detect
}

// Reset puts the predictor into its initial state.
func (s *G721State) Reset() {
	*s = G721State{yl: 34816, yu: 544}
	s.sr = [2]int16{32, 32}
	s.dq = [6]int16{32, 32, 32, 32, 32, 32}
}

var g721Power2 = [15]int32{
	1, 2, 4, 8, 0x10, 0x20, 0x40, 0x80,
	0x100, 0x200, 0x400, 0x800, 0x1000, 0x2000, 0x4000,
}

var (
	g721Dqlntab = [16]int16{-2048, 4, 135, 213, 273, 323, 373, 425, 425, 373, 323, 273, 213, 135, 4, -2048}
	g721Witab   = [16]int16{-12, 18, 41, 64, 112, 198, 355, 1122, 1122, 355, 198, 112, 64, 41, 18, -12}
	g721Fitab   = [16]int16{0, 0, 0, 0x200, 0x200, 0x200, 0x600, 0xe00, 0xe00, 0x600, 0x200, 0x200, 0x200, 0, 0, 0}
)

// g721Quan returns the number of powers of two not above val.
func g721Quan(val int32) int32 {
	i := int32(0)
	for ; i < int32(len(g721Power2)); i++ {
		if val < g721Power2[i] {
			break
		}
	}
	return i
}

// g721Fmult multiplies an by srn, the latter in 4-bit exponent / 6-bit
// mantissa float format.
func g721Fmult(an, srn int32) int32 {
	var anmag int16
	if an > 0 {
		anmag = int16(an)
	} else {
		anmag = int16((-an) & 0x1fff)
	}

	anexp := int16(g721Quan(int32(anmag)) - 6)

	var anmant int16
	switch {
	case anmag == 0:
		anmant = 32
	case anexp >= 0:
		anmant = anmag >> anexp
	default:
		anmant = anmag << -anexp
	}

	wanexp := int16(int32(anexp) + ((srn >> 6) & 0x0f) - 13)
	wanmant := int16((int32(anmant)*(srn&0x3f) + 0x30) >> 4)

	var ret int16
	if wanexp >= 0 {
		ret = int16((int32(wanmant) << wanexp) & 0x7fff)
	} else {
		ret = wanmant >> -wanexp
	}

	if an^srn < 0 {
		return -int32(ret)
	}
	return int32(ret)
}

func (s *G721State) predictorZero() int32 {
	sezi := int32(0)
	for i := range s.b {
		sezi += g721Fmult(int32(s.b[i]>>2), int32(s.dq[i]))
	}
	return sezi
}

func (s *G721State) predictorPole() int32 {
	return g721Fmult(int32(s.a[1]>>2), int32(s.sr[1])) + g721Fmult(int32(s.a[0]>>2), int32(s.sr[0]))
}

func (s *G721State) stepSize() int32 {
	if s.ap >= 256 {
		return int32(s.yu)
	}

	y := s.yl >> 6
	dif := int32(s.yu) - y
	al := int32(s.ap >> 2)
	switch {
	case dif > 0:
		y += (dif * al) >> 6
	case dif < 0:
		y += (dif*al + 0x3f) >> 6
	}
	return y
}

// g721Reconstruct turns the log-domain magnitude dqln and step y into a
// sign-magnitude quantized difference.
func g721Reconstruct(sign bool, dqln, y int16) int32 {
	dql := int16(int32(dqln) + int32(y>>2))
	if dql < 0 {
		if sign {
			return -0x8000
		}
		return 0
	}

	dex := (dql >> 7) & 15
	dqt := 128 + (dql & 127)
	dq := int16((int32(dqt) << 7) >> max(14-dex, 0))
	if sign {
		return int32(dq) - 0x8000
	}
	return int32(dq)
}

// g721Float converts a magnitude to the 4-bit exponent / 6-bit mantissa
// format, subtracting 0x400 for negative values.
func g721Float(mag int32, negative bool) int16 {
	exp := g721Quan(mag)
	v := exp<<6 + (mag<<6)>>exp
	if negative {
		v -= 0x400
	}
	return int16(v)
}

func (s *G721State) update(y, wi, fi int32, dq, sr, dqsez int16) {
	var pk0 int16
	if dqsez < 0 {
		pk0 = 1
	}
	mag := dq & 0x7fff

	ylint := int16(s.yl >> 15)
	ylfrac := int16((s.yl >> 10) & 0x1f)
	thr1 := int16(int32(32+ylfrac) << ylint)
	thr2 := thr1
	if ylint > 9 {
		thr2 = 31 << 10
	}
	dqthr := int16((int32(thr2) + int32(thr2>>1)) >> 1)
	tr := s.td != 0 && mag > dqthr

	yu := y + ((wi - y) >> 5)
	s.yu = int16(min(max(yu, 544), 5120))
	s.yl += int32(s.yu) + ((-s.yl) >> 6)

	var a2p int16
	if tr {
		s.a = [2]int16{}
		s.b = [6]int16{}
	} else {
		pks1 := pk0 ^ s.pk[0]

		a2p = s.a[1] - (s.a[1] >> 7)
		if dqsez != 0 {
			fa1 := -s.a[0]
			if pks1 != 0 {
				fa1 = s.a[0]
			}
			switch {
			case fa1 < -8191:
				a2p -= 0x100
			case fa1 > 8191:
				a2p += 0xff
			default:
				a2p += fa1 >> 5
			}

			if pk0^s.pk[1] != 0 {
				switch {
				case a2p <= -12160:
					a2p = -12288
				case a2p >= 12416:
					a2p = 12288
				default:
					a2p -= 0x80
				}
			} else {
				switch {
				case a2p <= -12416:
					a2p = -12288
				case a2p >= 12160:
					a2p = 12288
				default:
					a2p += 0x80
				}
			}
		}
		s.a[1] = a2p

		s.a[0] -= s.a[0] >> 8
		if dqsez != 0 {
			if pks1 == 0 {
				s.a[0] += 192
			} else {
				s.a[0] -= 192
			}
		}

		a1ul := 15360 - a2p
		if s.a[0] < -a1ul {
			s.a[0] = -a1ul
		} else if s.a[0] > a1ul {
			s.a[0] = a1ul
		}

		for i := range s.b {
			s.b[i] -= s.b[i] >> 8
			if mag != 0 {
				if int32(dq)^int32(s.dq[i]) >= 0 {
					s.b[i] += 128
				} else {
					s.b[i] -= 128
				}
			}
		}
	}

	copy(s.dq[1:], s.dq[:5])
	if mag == 0 {
		s.dq[0] = 0x20
		if dq < 0 {
			s.dq[0] = -0x3e0
		}
	} else {
		s.dq[0] = g721Float(int32(mag), dq < 0)
	}

	s.sr[1] = s.sr[0]
	switch {
	case sr == 0:
		s.sr[0] = 0x20
	case sr > 0:
		s.sr[0] = g721Float(int32(sr), false)
	case sr > -32768:
		s.sr[0] = g721Float(-int32(sr), true)
	default:
		s.sr[0] = -0x3e0
	}

	s.pk[1], s.pk[0] = s.pk[0], pk0

	switch {
	case tr:
		s.td = 0
	case a2p < -11776:
		s.td = 1
	default:
		s.td = 0
	}

	s.dms += int16((fi - int32(s.dms)) >> 5)
	s.dml += int16(((fi << 2) - int32(s.dml)) >> 7)

	d := (int32(s.dms) << 2) - int32(s.dml)
	if d < 0 {
		d = -d
	}
	switch {
	case tr:
		s.ap = 256
	case y < 1536, s.td == 1, d >= int32(s.dml>>3):
		s.ap += (0x200 - s.ap) >> 4
	default:
		s.ap += (-s.ap) >> 4
	}
}

// decode expands one 4-bit code into a 16-bit sample.
func (s *G721State) decode(code int32) int16 {
	code &= 0x0f

	sezi := int16(s.predictorZero())
	sez := sezi >> 1
	sei := int16(int32(sezi) + s.predictorPole())
	se := sei >> 1

	y := int16(s.stepSize())
	dq := int16(g721Reconstruct(code&0x08 != 0, g721Dqlntab[code], y))

	var sr int16
	if dq < 0 {
		sr = int16(int32(se) - int32(dq&0x3fff))
	} else {
		sr = int16(int32(se) + int32(dq))
	}
	dqsez := int16(int32(sr) - int32(se) + int32(sez))

	s.update(int32(y), int32(g721Witab[code])<<5, int32(g721Fitab[code]), dq, sr, dqsez)

	return utils.Clamp16(int32(sr) << 2)
}

// decodeG721 decodes 4-bit G.721 codes, low nibble first.
func decodeG721(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	for k := range n {
		i := first + k
		b, err := byteAt(src, st.Offset+int64(i/2), k)
		if err != nil {
			return err
		}
		nib := int32(b & 0x0f)
		if i&1 != 0 {
			nib = int32(b >> 4)
		}
		out[k*spacing] = st.G721.decode(nib)
	}

	return nil
}
