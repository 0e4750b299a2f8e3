// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ik5/vgmcodec/audio"
	"github.com/ik5/vgmcodec/formats/wav"
	"github.com/ik5/vgmcodec/internal/audiotest"
)

func Example_roundTrip() {
	original := []int16{-1000, -500, 0, 500, 1000}

	var file bytes.Buffer
	if err := wav.WriteWAV16(&file, 8000, original); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("bytes:", file.Len())

	src, err := wav.Decoder{}.Decode(&file)
	if err != nil {
		fmt.Println(err)
		return
	}
	pcm, err := audio.ReadAll(src, 0)

	fmt.Println(src.SampleRate(), src.Channels())
	fmt.Println(pcm, err)
	// Output:
	// bytes: 54
	// 8000 1
	// [-1000 -500 0 500 1000] <nil>
}

func Example_writeSource() {
	stereo := audiotest.NewConstantSource(44100, 2, 100, 7)

	out := &audiotest.WriteSeeker{}
	frames, err := wav.WritePCM16(out, stereo)

	fmt.Println(frames, len(out.Bytes()), err)
	// Output: 100 444 <nil>
}

func Example_notWAV() {
	_, err := wav.Decoder{}.Decode(bytes.NewReader([]byte("This is not a WAV file")))

	fmt.Println(errors.Is(err, wav.ErrNotWavFile))
	// Output: true
}
