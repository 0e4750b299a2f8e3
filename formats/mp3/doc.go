// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files with github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit stereo, so the source reports two channels
// even for mono files. Mix down with audio.NewMonoMixer when needed:
//
//	src, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	mono := audio.NewMonoMixer(audio.NewResampler(src, 8000))
//
// Encoding is not supported.
package mp3
