// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	"github.com/ik5/vgmcodec/utils"
)

// MonoMixer averages the channels of src into one.
type MonoMixer struct {
	src Source
	tmp []int16
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{
		src: src,
		tmp: make([]int16, 4096),
	}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }
func (m *MonoMixer) BufSize() int    { return m.src.BufSize() }
func (m *MonoMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *MonoMixer) ReadPCM16(dst []int16) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	channels := m.src.Channels()
	if channels == 1 {
		return m.src.ReadPCM16(dst)
	}

	need := len(dst) * channels
	if cap(m.tmp) < need {
		m.tmp = make([]int16, max(need, 8192))
	}
	m.tmp = m.tmp[:need]

	n, err := m.src.ReadPCM16(m.tmp)
	if n == 0 {
		return 0, err
	}
	frames := n / channels

	switch channels {
	case 2:
		for f := range frames {
			i := f << 1
			dst[f] = int16((int32(m.tmp[i]) + int32(m.tmp[i+1])) >> 1)
		}
	default:
		for f := range frames {
			var sum int32
			for _, v := range m.tmp[f*channels : (f+1)*channels] {
				sum += int32(v)
			}
			dst[f] = utils.Clamp16(sum / int32(channels))
		}
	}

	return frames, err
}
