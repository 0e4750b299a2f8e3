// SPDX-License-Identifier: EPL-2.0

// Package raw decodes headerless audio whose codec and layout are known
// from elsewhere: a game's own index, a command line, or a test.
//
//	src, err := raw.Decoder{Config: raw.Config{
//	    Kind:       codec.KindPSX,
//	    Channels:   2,
//	    SampleRate: 44100,
//	    Interleave: 0x800,
//	}}.Decode(file)
//
// Leaving TotalSamples at zero derives the length from the input size.
package raw
