// SPDX-License-Identifier: EPL-2.0

package aiff_test

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ik5/vgmcodec/audio"
	"github.com/ik5/vgmcodec/formats/aiff"
	"github.com/ik5/vgmcodec/formats/wav"
	"github.com/ik5/vgmcodec/internal/audiotest"
)

func ExampleWritePCM16() {
	tone := audiotest.NewSineSource(44100, 2, 300, 440)

	out := &audiotest.WriteSeeker{}
	frames, err := aiff.WritePCM16(out, tone)

	fmt.Println(frames, err, string(out.Bytes()[:4]))
	// Output: 300 <nil> FORM
}

func ExampleDecoder_Decode_errorHandling() {
	_, err := aiff.Decoder{}.Decode(bytes.NewReader([]byte("invalid")))

	fmt.Println(errors.Is(err, aiff.ErrNotAiffFile))
	// Output: true
}

// ExampleDecoder_Decode_convertToWav converts an AIFF to an 8 kHz mono WAV.
func ExampleDecoder_Decode_convertToWav() {
	in, err := os.Open("input.aiff")
	if err != nil {
		log.Fatal(err)
	}
	defer in.Close()

	src, err := aiff.Decoder{}.Decode(in)
	if err != nil {
		log.Fatal(err)
	}

	pcm, rate, err := audio.ResampleToMono16(src, 8000, 4096)
	if err != nil {
		log.Fatal(err)
	}

	out, err := os.Create("output.wav")
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()

	if err := wav.WriteWAV16(out, rate, pcm); err != nil {
		log.Fatal(err)
	}
}
