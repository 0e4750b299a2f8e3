// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/vgmcodec/audio"
	"github.com/ik5/vgmcodec/internal/pcmio"
)

const headerSize = 44

// WritePCM16 drains src into w as a 16-bit PCM WAV with src's rate and
// channel count. It returns the number of frames written.
func WritePCM16(w io.WriteSeeker, src audio.Source) (int, error) {
	enc := gowav.NewEncoder(w, src.SampleRate(), 16, src.Channels(), FormatPCM)

	frames, err := pcmio.Drain(src, func(buf *goaudio.IntBuffer) error {
		return enc.Write(buf)
	})
	if err != nil {
		return frames, err
	}

	if err := enc.Close(); err != nil {
		return frames, fmt.Errorf("%w", err)
	}

	return frames, nil
}

// pcmHeader builds the canonical 44-byte header of a 16-bit PCM file.
func pcmHeader(sampleRate, channels, frames int) []byte {
	blockAlign := uint16(channels * 2)
	dataSize := uint32(frames) * uint32(blockAlign)

	h := make([]byte, headerSize)
	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], headerSize-8+dataSize)
	copy(h[8:12], "WAVE")

	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], 16)
	binary.LittleEndian.PutUint16(h[20:22], FormatPCM)
	binary.LittleEndian.PutUint16(h[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(h[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(h[28:32], uint32(sampleRate)*uint32(blockAlign))
	binary.LittleEndian.PutUint16(h[32:34], blockAlign)
	binary.LittleEndian.PutUint16(h[34:36], 16)

	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], dataSize)

	return h
}

// WriteWAV16 writes mono 16-bit PCM samples to a plain io.Writer. Use
// WritePCM16 for multichannel sources.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	if _, err := w.Write(pcmHeader(sampleRate, 1, len(samples))); err != nil {
		return fmt.Errorf("%w", err)
	}

	const chunk = 8192
	buf := make([]byte, 2*min(len(samples), chunk))

	for i := 0; i < len(samples); i += chunk {
		part := samples[i:min(i+chunk, len(samples))]
		b := buf[:2*len(part)]
		for j, s := range part {
			binary.LittleEndian.PutUint16(b[2*j:], uint16(s))
		}

		if _, err := w.Write(b); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}
