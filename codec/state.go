// SPDX-License-Identifier: EPL-2.0

package codec

// ADXKey is the rolling scale key of encrypted ADX streams.
type ADXKey struct {
	Xor, Mult, Add uint16
}

// Next advances the key by one step of its 15-bit LCG.
func (k ADXKey) Next() ADXKey {
	k.Xor = uint16((uint32(k.Xor)*uint32(k.Mult) + uint32(k.Add)) & 0x7fff)
	return k
}

// Advance applies Next n times.
func (k ADXKey) Advance(n int) ADXKey {
	for range n {
		k = k.Next()
	}
	return k
}

// ChannelState is the persistent decode state of one channel. Fields are
// a union over all codecs; each codec documents what it reads and writes.
//
// A ChannelState belongs to exactly one channel and must not be used by
// two decode calls at the same time. Values may be copied to snapshot a
// decode position (loop start).
type ChannelState struct {
	// Offset is where this channel's data begins. Under an interleave
	// layout the caller moves it to the current block.
	Offset int64

	Channel   int // index of this channel in the stream
	Channels  int // channel count of the stream
	BlockSize int // bytes per block for block codecs (MS ADPCM, MS IMA, NDS IMA)

	Hist1, Hist2, Hist3 int32

	// Step is the IMA step index, AICA step size or MS ADPCM scale.
	Step int32

	// CoefIndex is the MS ADPCM coefficient pair of the current block.
	CoefIndex int

	// Coef holds DSP coefficient pairs (8 pairs) or the ADX filter in
	// Coef[0] and Coef[1].
	Coef [16]int16

	// Coef3 is the L5/555 table of 32 coefficient triples.
	Coef3 [96]int32

	ADXKey ADXKey

	// PSXXor is applied to the PSX invert frame header and PSXAdd to the
	// first data byte of each frame.
	PSXXor, PSXAdd uint8

	// HighNibble selects the nibble of a shared EACS stereo byte.
	HighNibble bool

	// FrameOffset is the position of the current frame header relative to
	// Offset for codecs whose frames are not a fixed number of samples.
	FrameOffset int64

	// SamplesLeft counts samples still to decode in the current Westwood
	// frame.
	SamplesLeft int

	// Uncompressed marks Westwood data stored as unsigned 8-bit PCM.
	Uncompressed bool

	G721 G721State
}

// NewChannelState returns the initial state for one channel of a stream
// coded as k.
func NewChannelState(k Kind, channel, channels int, offset int64) ChannelState {
	st := ChannelState{
		Offset:   offset,
		Channel:  channel,
		Channels: channels,
	}

	switch k {
	case KindAICA:
		st.Step = aicaMinStep
	case KindG721:
		st.G721.Reset()
	case KindWestwood:
		st.Hist1 = wsHistInit
	case KindEACSIMA:
		st.HighNibble = channel%2 == 0
	}

	return st
}
