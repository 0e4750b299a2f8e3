// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"
)

// MockSource is a test helper that generates PCM16 audio.
// It implements the audio.Source interface (without importing it to avoid cycles).
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // per channel
	generated    int // per channel
	waveform     func(sample int, channel int) int16
	closed       bool
	err          error
}

// NewMockSource creates a new mock audio source.
// totalSamples is the total number of samples per channel to generate.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) int16) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) int16 { return 0 })
}

// NewSineSource generates a half-scale sine wave on every channel.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, _ int) int16 {
		t := float64(sample) / float64(sampleRate)
		return int16(16384 * math.Sin(2*math.Pi*frequency*t))
	})
}

func NewConstantSource(sampleRate, channels, totalSamples int, value int16) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) int16 { return value })
}

// NewSliceSource plays back interleaved samples.
func NewSliceSource(sampleRate, channels int, samples []int16) *MockSource {
	return NewMockSource(sampleRate, channels, len(samples)/channels, func(sample int, channel int) int16 {
		return samples[sample*channels+channel]
	})
}

// FailAfter makes the source return err once it has produced n frames.
func (m *MockSource) FailAfter(n int, err error) *MockSource {
	m.totalSamples = n
	m.err = err
	return m
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Reset allows the samples to be read again.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadPCM16(dst []int16) (int, error) {
	if m.generated >= m.totalSamples {
		if m.err != nil {
			return 0, m.err
		}
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalSamples-m.generated)
	for frame := range frames {
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(m.generated+frame, ch)
		}
	}
	m.generated += frames

	if m.generated >= m.totalSamples {
		if m.err != nil {
			return frames * m.channels, m.err
		}
		return frames * m.channels, io.EOF
	}

	return frames * m.channels, nil
}
