// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// ReadAll drains src into one interleaved slice, reading bufferSize frames
// at a time. The end of the stream is not an error.
func ReadAll(src Source, bufferSize int) ([]int16, error) {
	if bufferSize < 1 {
		bufferSize = src.BufSize()
	}
	ch := max(src.Channels(), 1)

	var pcm []int16
	buf := make([]int16, bufferSize*ch)

	for {
		n, err := src.ReadPCM16(buf)
		pcm = append(pcm, buf[:n]...)

		if errors.Is(err, io.EOF) {
			return pcm, nil
		}
		if err != nil {
			return pcm, fmt.Errorf("%w", err)
		}
	}
}

// ResampleToMono16 resamples src to targetRate, mixes it down to mono and
// collects the result.
//
// For more control over the pipeline use NewResampler and NewMonoMixer
// directly:
//
//	src, _ := decoder.Decode(file)
//	pcm16, rate, err := audio.ResampleToMono16(src, 8000, 4096)
//	if err != nil {
//	    panic(err)
//	}
//	// pcm16 now holds mono 16-bit PCM at 8kHz
func ResampleToMono16(src Source, targetRate int, bufferSize int) ([]int16, int, error) {
	var s Source = NewMonoMixer(src)
	if src.SampleRate() != targetRate {
		s = NewMonoMixer(NewResampler(src, targetRate))
	}

	pcm, err := ReadAll(s, bufferSize)
	if err != nil {
		return nil, targetRate, err
	}

	return pcm, targetRate, nil
}
