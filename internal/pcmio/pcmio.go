// SPDX-License-Identifier: EPL-2.0

// Package pcmio moves PCM16 between audio.Source and go-audio buffers.
package pcmio

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/vgmcodec/audio"
)

// Drain reads src to the end and hands every block to write as an
// IntBuffer. write is called at least once, with an empty buffer for an
// empty source, so encoders always emit a header. It returns the number of
// frames passed on.
func Drain(src audio.Source, write func(*goaudio.IntBuffer) error) (int, error) {
	ch := src.Channels()
	if ch < 1 {
		return 0, fmt.Errorf("%w: %d channels", audio.ErrInvalidConfig, ch)
	}

	pcm := make([]int16, max(src.BufSize(), 1)*ch)
	ib := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: ch, SampleRate: src.SampleRate()},
		Data:           make([]int, len(pcm)),
		SourceBitDepth: 16,
	}

	frames := 0
	calls := 0
	for {
		n, err := src.ReadPCM16(pcm)
		if n > 0 || (calls == 0 && err != nil) {
			ib.Data = ib.Data[:n]
			for i, v := range pcm[:n] {
				ib.Data[i] = int(v)
			}
			if werr := write(ib); werr != nil {
				return frames, fmt.Errorf("%w", werr)
			}
			calls++
			frames += n / ch
		}

		if errors.Is(err, io.EOF) {
			return frames, nil
		}
		if err != nil {
			return frames, fmt.Errorf("%w", err)
		}
	}
}

// ToInt16 copies go-audio samples into dst, saturating to 16 bits after
// scaling from bitDepth. It returns the number of samples copied.
func ToInt16(dst []int16, src []int, bitDepth int) int {
	n := min(len(dst), len(src))
	shift := bitDepth - 16

	for i, v := range src[:n] {
		switch {
		case shift > 0:
			v >>= shift
		case shift < 0:
			v <<= -shift
		}
		dst[i] = int16(min(max(v, -32768), 32767))
	}

	return n
}
