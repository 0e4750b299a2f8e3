// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/ik5/vgmcodec/internal/audiotest"
)

func TestMonoMixer_MonoPassthrough(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSliceSource(8000, 1, []int16{1, -2, 3, -4})
	mixer := NewMonoMixer(src)

	if mixer.Channels() != 1 || mixer.SampleRate() != 8000 {
		t.Fatalf("mixer format = %d Hz, %d ch", mixer.SampleRate(), mixer.Channels())
	}

	buf := make([]int16, 8)
	n, err := mixer.ReadPCM16(buf)
	if !errors.Is(err, io.EOF) {
		t.Fatalf("ReadPCM16() error = %v, want io.EOF", err)
	}
	if !slices.Equal(buf[:n], []int16{1, -2, 3, -4}) {
		t.Errorf("ReadPCM16() = %v", buf[:n])
	}
}

func TestMonoMixer_Average(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		in       []int16
		want     []int16
	}{
		{"stereo", 2, []int16{100, 300, -100, -300, 1, 2}, []int16{200, -200, 1}},
		{"stereo floor", 2, []int16{-1, 0, 32767, 32767, -32768, -32768}, []int16{-1, 32767, -32768}},
		{"quad", 4, []int16{0, 10, 20, 30, -4, -4, -4, -4}, []int16{15, -4}},
		{"three", 3, []int16{32767, 32767, 32767, 1, 2, 4}, []int16{32767, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mixer := NewMonoMixer(audiotest.NewSliceSource(8000, tt.channels, tt.in))
			got, err := ReadAll(mixer, 16)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("mixed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMonoMixer_SmallReads(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(8000, 2, 100, func(sample, channel int) int16 {
		return int16(sample*2 + channel*2)
	})
	mixer := NewMonoMixer(src)

	var got []int16
	buf := make([]int16, 7)
	for {
		n, err := mixer.ReadPCM16(buf)
		got = append(got, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadPCM16() error = %v", err)
		}
	}

	if len(got) != 100 {
		t.Fatalf("read %d frames, want 100", len(got))
	}
	for i, v := range got {
		if want := int16(2*i + 1); v != want {
			t.Fatalf("frame %d = %d, want %d", i, v, want)
		}
	}
}

func TestMonoMixer_LargeBufferGrows(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(audiotest.NewConstantSource(8000, 2, 10000, 7))
	buf := make([]int16, 9000)

	n, err := mixer.ReadPCM16(buf)
	if err != nil {
		t.Fatalf("ReadPCM16() error = %v", err)
	}
	if n != 9000 {
		t.Fatalf("n = %d, want 9000", n)
	}
	if buf[8999] != 7 {
		t.Errorf("last sample = %d, want 7", buf[8999])
	}
}

func TestMonoMixer_Errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	src := audiotest.NewConstantSource(8000, 2, 100, 1).FailAfter(3, boom)
	mixer := NewMonoMixer(src)

	n, err := mixer.ReadPCM16(make([]int16, 10))
	if n != 3 || !errors.Is(err, boom) {
		t.Errorf("ReadPCM16() = %d, %v; want 3, boom", n, err)
	}

	if n, err := mixer.ReadPCM16(nil); n != 0 || err != nil {
		t.Errorf("empty read = %d, %v", n, err)
	}
}

func TestMonoMixer_Close(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 2, 1)
	if err := NewMonoMixer(src).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !src.Closed() {
		t.Error("Close did not reach the source")
	}
}

func BenchmarkMonoMixer_Stereo(b *testing.B) {
	src := audiotest.NewSineSource(44100, 2, 1<<30, 440)
	mixer := NewMonoMixer(src)
	buf := make([]int16, 4096)

	b.ReportAllocs()

	for b.Loop() {
		_, _ = mixer.ReadPCM16(buf)
	}
}
