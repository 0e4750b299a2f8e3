// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/vgmcodec/audio"
	"github.com/ik5/vgmcodec/internal/pcmio"
)

// WritePCM16 drains src into w as a 16-bit AIFF. The encoder patches the
// chunk sizes when it is closed, hence the io.WriteSeeker. It returns the
// number of frames written.
func WritePCM16(w io.WriteSeeker, src audio.Source) (int, error) {
	enc := aiff.NewEncoder(w, src.SampleRate(), 16, src.Channels())

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
