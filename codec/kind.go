// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Kind identifies one codec variant. The set is closed.
type Kind int

const (
	KindUnknown Kind = iota
	KindPCM16LE
	KindPCM16BE
	KindPCM16LEInt
	KindPCM8
	KindPCM8Int
	KindPCM8Unsigned
	KindPCM8UnsignedInt
	KindPCM8SignBitInt
	KindADX
	KindADXEnc
	KindPSX
	KindPSXBadFlags
	KindPSXInvert
	KindNGCDSP
	KindNGCAFC
	KindEAXA
	KindProcyon
	KindL5555
	KindG721
	KindIMA
	KindDVIIMA
	KindNDSIMA
	KindXBOXIMA
	KindEACSIMA
	KindMSIMA
	KindMSADPCM
	KindAICA
	KindSDX2
	KindSDX2Int
	KindWestwood
	KindXA

	kindCount
)

// decodeFunc works on a private copy of the channel state; Kind.Decode
// commits it only when the call succeeds.
type decodeFunc func(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error

var kindNames = [kindCount]string{
	KindUnknown:         "unknown",
	KindPCM16LE:         "pcm16le",
	KindPCM16BE:         "pcm16be",
	KindPCM16LEInt:      "pcm16le-int",
	KindPCM8:            "pcm8",
	KindPCM8Int:         "pcm8-int",
	KindPCM8Unsigned:    "pcm8u",
	KindPCM8UnsignedInt: "pcm8u-int",
	KindPCM8SignBitInt:  "pcm8sb-int",
	KindADX:             "adx",
	KindADXEnc:          "adx-enc",
	KindPSX:             "psx",
	KindPSXBadFlags:     "psx-badflags",
	KindPSXInvert:       "psx-invert",
	KindNGCDSP:          "ngc-dsp",
	KindNGCAFC:          "ngc-afc",
	KindEAXA:            "ea-xa",
	KindProcyon:         "procyon",
	KindL5555:           "l5-555",
	KindG721:            "g721",
	KindIMA:             "ima",
	KindDVIIMA:          "dvi-ima",
	KindNDSIMA:          "nds-ima",
	KindXBOXIMA:         "xbox-ima",
	KindEACSIMA:         "eacs-ima",
	KindMSIMA:           "ms-ima",
	KindMSADPCM:         "msadpcm",
	KindAICA:            "aica",
	KindSDX2:            "sdx2",
	KindSDX2Int:         "sdx2-int",
	KindWestwood:        "ws",
	KindXA:              "xa",
}

var decoders = [kindCount]decodeFunc{
	KindPCM16LE:         decodePCM16LE,
	KindPCM16BE:         decodePCM16BE,
	KindPCM16LEInt:      decodePCM16LEInt,
	KindPCM8:            decodePCM8,
	KindPCM8Int:         decodePCM8Int,
	KindPCM8Unsigned:    decodePCM8Unsigned,
	KindPCM8UnsignedInt: decodePCM8UnsignedInt,
	KindPCM8SignBitInt:  decodePCM8SignBitInt,
	KindADX:             decodeADX,
	KindADXEnc:          decodeADXEnc,
	KindPSX:             decodePSX,
	KindPSXBadFlags:     decodePSXBadFlags,
	KindPSXInvert:       decodePSXInvert,
	KindNGCDSP:          decodeNGCDSP,
	KindNGCAFC:          decodeNGCAFC,
	KindEAXA:            decodeEAXA,
	KindProcyon:         decodeProcyon,
	KindL5555:           decodeL5555,
	KindG721:            decodeG721,
	KindIMA:             decodeIMA,
	KindDVIIMA:          decodeDVIIMA,
	KindNDSIMA:          decodeNDSIMA,
	KindXBOXIMA:         decodeXBOXIMA,
	KindEACSIMA:         decodeEACSIMA,
	KindMSIMA:           decodeMSIMA,
	KindMSADPCM:         decodeMSADPCM,
	KindAICA:            decodeAICA,
	KindSDX2:            decodeSDX2,
	KindSDX2Int:         decodeSDX2Int,
	KindWestwood:        decodeWestwood,
	KindXA:              decodeXA,
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k names a decodable kind.
func (k Kind) Valid() bool { return k > KindUnknown && k < kindCount }

// Kinds lists every decodable kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindUnknown + 1; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind looks a kind up by its String name, ignoring case and
// accepting '_' for '-'.
func ParseKind(name string) (Kind, error) {
	name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for k := KindUnknown + 1; k < kindCount; k++ {
		if kindNames[k] == name {
			return k, nil
		}
	}

	return KindUnknown, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Decode decodes n samples of one channel starting at first, writing them
// to out[0], out[spacing], ... out[(n-1)*spacing].
//
// Calls for a channel must come in non-decreasing first order with no gaps.
// On error st is left as it was before the call; decode faults are
// *CodecFault values.
func (k Kind) Decode(st *ChannelState, src io.ReaderAt, out []int16, spacing, first, n int) error {
	if !k.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	if spacing < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidSpacing, spacing)
	}
	if first < 0 || n < 0 {
		return fmt.Errorf("%w: first %d, n %d", ErrInvalidRange, first, n)
	}
	if n == 0 {
		return nil
	}
	if need := (n-1)*spacing + 1; len(out) < need {
		return fmt.Errorf("%w: have %d, need %d", ErrShortBuffer, len(out), need)
	}

	local := *st
	if err := decoders[k](&local, src, out, spacing, first, n); err != nil {
		return k.stamp(err)
	}
	*st = local

	return nil
}

// stamp records k on the first *CodecFault in err's chain.
func (k Kind) stamp(err error) error {
	var f *CodecFault
	if errors.As(err, &f) {
		f.Kind = k
	}
	return err
}

// BlockCodec reports whether one frame of k carries every channel, so all
// channels read from the same base offset.
func (k Kind) BlockCodec() bool {
	switch k {
	case KindXBOXIMA, KindMSIMA, KindMSADPCM, KindXA:
		return true
	}
	return false
}

// Interleaved reports whether k reads its channel's samples at a stride of
// spacing units, each channel starting SampleBytes further in.
func (k Kind) Interleaved() bool {
	switch k {
	case KindPCM16LEInt, KindPCM8Int, KindPCM8UnsignedInt, KindPCM8SignBitInt, KindSDX2Int:
		return true
	}
	return false
}

// VariableFrames reports whether frame boundaries of k cannot be computed
// from the sample index alone.
func (k Kind) VariableFrames() bool {
	return k == KindEAXA || k == KindWestwood
}

// SampleBytes is the size of one sample for byte-per-sample kinds and 0 for
// everything else.
func (k Kind) SampleBytes() int {
	switch k {
	case KindPCM16LE, KindPCM16BE, KindPCM16LEInt:
		return 2
	case KindPCM8, KindPCM8Int, KindPCM8Unsigned, KindPCM8UnsignedInt,
		KindPCM8SignBitInt, KindSDX2, KindSDX2Int:
		return 1
	}
	return 0
}

// SamplesPerFrame is the number of samples of one channel in a frame of k.
// blockSize is only consulted by block-sized codecs.
func (k Kind) SamplesPerFrame(channels, blockSize int) int {
	if channels < 1 {
		channels = 1
	}

	switch k {
	case KindPCM16LE, KindPCM16BE, KindPCM16LEInt, KindPCM8, KindPCM8Int,
		KindPCM8Unsigned, KindPCM8UnsignedInt, KindPCM8SignBitInt,
		KindSDX2, KindSDX2Int, KindWestwood:
		return 1
	case KindADX, KindADXEnc, KindL5555:
		return 32
	case KindPSX, KindPSXBadFlags, KindPSXInvert, KindEAXA:
		return 28
	case KindNGCDSP:
		return 14
	case KindNGCAFC:
		return 16
	case KindProcyon:
		return 30
	case KindG721, KindIMA, KindDVIIMA, KindAICA:
		return 2
	case KindEACSIMA:
		if channels == 1 {
			return 2
		}
		return 1
	case KindNDSIMA:
		return max(blockSize-4, 0) * 2
	case KindXBOXIMA:
		return xboxSamplesPerBlock
	case KindMSIMA:
		return msIMASamplesPerBlock(channels, blockSize)
	case KindMSADPCM:
		return msADPCMSamplesPerBlock(channels, blockSize)
	case KindXA:
		return xaSamplesPerGroup / channels
	}

	return 0
}

// FrameSize is the byte size of one frame of k: per channel for ordinary
// codecs, the whole block for block codecs.
func (k Kind) FrameSize(channels, blockSize int) int {
	if channels < 1 {
		channels = 1
	}

	switch k {
	case KindPCM16LE, KindPCM16BE:
		return 2
	case KindPCM16LEInt:
		return 2 * channels
	case KindPCM8, KindPCM8Unsigned, KindSDX2, KindWestwood, KindG721,
		KindIMA, KindDVIIMA, KindAICA:
		return 1
	case KindPCM8Int, KindPCM8UnsignedInt, KindPCM8SignBitInt, KindSDX2Int:
		return channels
	case KindADX, KindADXEnc:
		return adxFrameSize
	case KindL5555:
		return l5FrameSize
	case KindPSX, KindPSXBadFlags, KindPSXInvert, KindProcyon:
		return 16
	case KindEAXA:
		return eaxaFrameSize
	case KindNGCDSP:
		return 8
	case KindNGCAFC:
		return 9
	case KindEACSIMA:
		return 1
	case KindNDSIMA, KindMSIMA, KindMSADPCM:
		return blockSize
	case KindXBOXIMA:
		return xboxBlockSize * channels
	case KindXA:
		return xaGroupSize
	}

	return 0
}

// BytesToSamples converts a data size covering all channels to samples per
// channel. It returns -1 when the count cannot be derived from the size.
// EA-XA is estimated assuming no uncompressed frames.
func (k Kind) BytesToSamples(bytes int64, channels, blockSize int) int64 {
	if channels < 1 || bytes <= 0 {
		return 0
	}
	if k == KindWestwood {
		return -1
	}

	spf := int64(k.SamplesPerFrame(channels, blockSize))
	fs := int64(k.FrameSize(channels, blockSize))
	if spf == 0 || fs == 0 {
		return -1
	}

	switch {
	case k.SharesOffset(channels), k.Interleaved():
		return bytes / fs * spf
	default:
		return bytes / int64(channels) / fs * spf
	}
}

// SharesOffset reports whether every channel of a stream coded as k starts
// at the same byte offset.
func (k Kind) SharesOffset(channels int) bool {
	return k.BlockCodec() || (k == KindEACSIMA && channels > 1)
}
