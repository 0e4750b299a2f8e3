// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files with github.com/jfreymuth/oggvorbis.
//
// The float output of the Vorbis decoder is saturated to signed 16 bits,
// so the source behaves like every other audio.Source:
//
//	src, err := vorbis.Decoder{}.Decode(file)
//	if errors.Is(err, vorbis.ErrNotVorbisFile) {
//	    // Opus, FLAC in Ogg, or garbage
//	}
//
// Encoding is not supported.
package vorbis
