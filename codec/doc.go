// SPDX-License-Identifier: EPL-2.0

// Package codec decodes the ADPCM and PCM sample formats found in game
// and console audio streams into signed 16-bit PCM.
//
// Every codec is a Kind and shares one call shape:
//
//	st := codec.NewChannelState(codec.KindPSX, 0, 1, dataOffset)
//	out := make([]int16, 28)
//	err := codec.KindPSX.Decode(&st, src, out, 1, 0, len(out))
//
// Decode produces n samples of a single channel, beginning at sample
// index first, and writes them spacing slots apart so several channels
// can share one interleaved buffer. The ChannelState carries everything
// a codec needs between calls (history, step index, frame cursor), so a
// stream may be decoded in chunks of any size:
//
//	for first := 0; first < total; first += chunk {
//	    n := min(chunk, total-first)
//	    if err := kind.Decode(&st, src, buf, channels, first, n); err != nil {
//	        return err
//	    }
//	}
//
// Decoding [0, 200) in one call yields the same samples and the same
// final state as [0, 100) followed by [100, 200).
//
// # Sources
//
// Compressed data is read through io.ReaderAt at absolute offsets. Any
// *os.File or *bytes.Reader works; CachedSource wraps a slow source with
// a single read-ahead window, and audio.Stream puts one in front of every
// source it decodes.
//
// # Errors
//
// Malformed data is reported as a *CodecFault wrapping
// ErrOutOfRangeTableIndex, ErrShortRead or ErrInvalidStateTransition. A
// failed call leaves the ChannelState as it was. Caller mistakes (short
// output buffer, bad spacing) return plain wrapped errors.
//
// # Codec Families
//
// Fixed-coefficient predictors: PSX (and its bad-flags and invert
// variants), Nintendo DSP and AFC, EA-XA, Procyon, L5/555, CD-XA, G.721.
//
// Adaptive step codecs: ADX (plain and encrypted), IMA, DVI IMA, NDS IMA,
// XBOX IMA, EACS IMA, Microsoft IMA and ADPCM, Yamaha AICA.
//
// Delta and raw codecs: 3DO SDX2, Westwood, and 8- and 16-bit PCM.
package codec
