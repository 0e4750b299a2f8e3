// SPDX-License-Identifier: EPL-2.0

package vgmcodec

import (
	"github.com/ik5/vgmcodec/audio"
)

// ResampleToMono16 resamples src to targetRate, mixes it to mono and
// collects every sample, reading bufferSize frames at a time.
//
//	src, _ := vag.Decoder{}.Decode(file)
//	pcm16, rate, err := vgmcodec.ResampleToMono16(src, 8000, 4096)
//
// The end of the source is not an error. On failure the samples read so
// far are discarded.
func ResampleToMono16(src audio.Source, targetRate int, bufferSize int) ([]int16, int, error) {
	return audio.ResampleToMono16(src, targetRate, bufferSize)
}
