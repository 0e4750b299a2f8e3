// SPDX-License-Identifier: EPL-2.0

// Package vgmcodec decodes video game audio and the common formats found
// next to it into signed 16-bit PCM.
//
// The codec package holds the per-sample decoders, audio drives them over
// channel layouts and loops, and formats/* parse the containers:
//   - VAG (PS-ADPCM) via formats/vag
//   - ADX, plain and encrypted, via formats/adx
//   - Nintendo DSP via formats/dsp
//   - WAV (PCM, MS ADPCM, IMA ADPCM) via formats/wav
//   - AIFF via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - headerless data via formats/raw
//
// # Quick Start
//
//	reg := vgmcodec.NewRegistry(audio.WithLoopCount(2))
//	f, _ := os.Open("bgm.adx")
//	src, format, err := vgmcodec.Open(reg, f, f.Name())
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	pcm, err := audio.ReadAll(src, 4096)
//
// ResampleToMono16 additionally converts the result to one channel at a
// fixed rate.
package vgmcodec
