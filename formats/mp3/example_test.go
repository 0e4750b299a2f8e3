// SPDX-License-Identifier: EPL-2.0

package mp3_test

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ik5/vgmcodec/audio"
	"github.com/ik5/vgmcodec/formats/mp3"
	"github.com/ik5/vgmcodec/formats/wav"
)

// ExampleDecoder_Decode_convertToWav converts an MP3 to an 8 kHz mono WAV.
func ExampleDecoder_Decode_convertToWav() {
	in, err := os.Open("input.mp3")
	if err != nil {
		log.Fatal(err)
	}
	defer in.Close()

	src, err := mp3.Decoder{}.Decode(in)
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

func ExampleDecoder_Decode_errorHandling() {
	_, err := mp3.Decoder{}.Decode(bytes.NewReader([]byte("invalid")))

	fmt.Println(errors.Is(err, mp3.ErrNotMP3File))
	// Output: true
}
