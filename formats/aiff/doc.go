// SPDX-License-Identifier: EPL-2.0

// Package aiff reads and writes uncompressed AIFF files through
// github.com/go-audio/aiff.
//
// The decoder accepts 8, 16, 24 and 32-bit big-endian PCM and scales every
// sample to signed 16 bits, so an AIFF plugs into the same pipeline as the
// game formats:
//
//	src, err := aiff.Decoder{}.Decode(file)
//	if errors.Is(err, aiff.ErrUnsupportedBitDepth) {
//	    // 12-bit and other odd sizes
//	}
//	pcm, rate, err := audio.ResampleToMono16(src, 8000, 4096)
//
// WritePCM16 goes the other way and needs an io.WriteSeeker, since the
// encoder patches the FORM and SSND sizes on Close:
//
//	out, _ := os.Create("out.aiff")
//	frames, err := aiff.WritePCM16(out, src)
//
// Compressed AIFF-C files are not supported.
package aiff
