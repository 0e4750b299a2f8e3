// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/vgmcodec/utils"
)

// Resampler streams from src to a target sample rate using cubic
// interpolation. Works on interleaved samples; preserves channel count.
// Downsampling passes the input through a one-pole low-pass first.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames per output frame
	channels int

	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2
	frames   [4][]int16
	hasFrame [4]bool
	primed   bool

	// position between frames[1] and frames[2]
	pos float64

	srcBuf []int16
	eof    bool

	useFilter   bool
	filterReady bool
	filterState []int32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:         src,
		dstRate:     dstRate,
		ratio:       ratio,
		channels:    channels,
		srcBuf:      make([]int16, channels),
		useFilter:   ratio > 1.0,
		filterState: make([]int32, channels),
	}
	for i := range r.frames {
		r.frames[i] = make([]int16, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame pulls one frame from src into f, filtered when downsampling.
func (r *Resampler) readFrame(f []int16) (bool, error) {
	if r.eof {
		return false, io.EOF
	}

	n, err := r.src.ReadPCM16(r.srcBuf)
	if errors.Is(err, io.EOF) {
		r.eof = true
	} else if err != nil {
		return false, fmt.Errorf("%w", err)
	}
	if n < r.channels {
		return false, nil
	}

	copy(f, r.srcBuf)
	if r.useFilter {
		if !r.filterReady {
			// start at the first sample so the filter has no warm-up ramp
			for c := range r.channels {
				r.filterState[c] = int32(f[c])
			}
			r.filterReady = true
		}
		// y[n] = (x[n] + y[n-1]) / 2
		for c := range r.channels {
			r.filterState[c] = (int32(f[c]) + r.filterState[c]) >> 1
			f[c] = int16(r.filterState[c])
		}
	}

	return true, nil
}

// prime loads the first source frames into frames[1:]; frames[0] stays
// empty until the window moves.
func (r *Resampler) prime() error {
	r.primed = true

	for i := 1; i < len(r.frames); i++ {
		ok, err := r.readFrame(r.frames[i])
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		r.hasFrame[i] = ok
		if !ok {
			break
		}
	}
	if !r.hasFrame[1] {
		return io.EOF
	}

	return nil
}

// advance shifts the window by one source frame.
func (r *Resampler) advance() error {
	first := r.frames[0]
	copy(r.frames[:], r.frames[1:])
	copy(r.hasFrame[:], r.hasFrame[1:])
	r.frames[3] = first

	ok, err := r.readFrame(r.frames[3])
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	r.hasFrame[3] = ok

	return nil
}

// ReadPCM16 produces interleaved samples at the target rate. len(dst) must
// be a multiple of the channel count.
func (r *Resampler) ReadPCM16(dst []int16) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	want := len(dst) / r.channels

	for written < want {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		// the last source frame is only output once, at pos 0
		if !r.hasFrame[1] || (!r.hasFrame[2] && r.pos > 0) {
			break
		}

		x := float32(r.pos)
		for c := range r.channels {
			y1 := r.frames[1][c]
			y0, y2, y3 := y1, y1, y1
			if r.hasFrame[0] {
				y0 = r.frames[0][c]
			}
			if r.hasFrame[2] {
				y2 = r.frames[2][c]
				y3 = y2
			}
			if r.hasFrame[3] {
				y3 = r.frames[3][c]
			}

			dst[written*r.channels+c] = utils.CubicInterpolate(y0, y1, y2, y3, x)
		}

		written++
		r.pos += r.ratio
	}

	if written == 0 {
		return 0, io.EOF
	}

	return written * r.channels, nil
}
