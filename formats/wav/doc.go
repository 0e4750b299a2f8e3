// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF WAVE files.
//
// The decoder walks the chunk list with github.com/go-audio/riff and hands
// the data chunk to an audio.Stream, so anything the stream supports can be
// played from a WAV:
//
//   - PCM, 8-bit unsigned and 16-bit signed (also WAVE_FORMAT_EXTENSIBLE)
//   - Microsoft ADPCM
//   - IMA ADPCM (the Microsoft block layout)
//
// Any number of channels and any sample rate are accepted. For the ADPCM
// formats the fact chunk, when present, trims the padding of the last
// block.
//
//	src, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrUnsupportedCodec) {
//	    // MP3 in WAV, 24-bit PCM, ...
//	}
//
// # Writing
//
// WritePCM16 drains any audio.Source through the go-audio/wav encoder and
// needs an io.WriteSeeker to patch the sizes afterwards. WriteWAV16 writes
// a mono file straight to an io.Writer:
//
//	err := wav.WriteWAV16(out, 16000, pcm)
//
// Both produce the canonical 44-byte header followed by the samples.
package wav
