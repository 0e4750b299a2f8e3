// SPDX-License-Identifier: EPL-2.0

// Package vag reads Sony VAG files, the PlayStation container for
// PS-ADPCM.
//
// A "VAGp" file is mono with its data right after the 0x30-byte header. The
// "VAGi" variant holds two channels interleaved in blocks whose size is
// stored little-endian at 0x08, with the data padded out to 0x800. Loop
// points come from the frame flags: the first frame flagged 0x06 starts
// the loop and the next frame flagged 0x03 ends it.
//
//	src, err := vag.Decoder{Options: []audio.StreamOption{
//	    audio.WithLoopCount(2),
//	    audio.WithLogger(logger),
//	}}.Decode(file)
package vag
