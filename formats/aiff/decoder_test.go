// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"testing"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/vgmcodec/audio"
	"github.com/ik5/vgmcodec/internal/audiotest"
)

// mockPCMReader simulates the aiff.Decoder for testing
type mockPCMReader struct {
	samples      []int
	offset       int
	eofWithData  bool
	returnErrors bool
}

func (m *mockPCMReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.returnErrors {
		return 0, io.ErrUnexpectedEOF
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := copy(buf.Data, m.samples[m.offset:])
	m.offset += n

	if m.eofWithData && m.offset >= len(m.samples) {
		return n, io.EOF
	}
	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"text", []byte("This is not AIFF data")},
		{"riff", []byte("RIFF\x04\x00\x00\x00WAVE")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrNotAiffFile) {
				t.Errorf("Decode() error = %v, want %v", err, ErrNotAiffFile)
			}
			if src != nil {
				t.Error("Decode() returned a source with an error")
			}
		})
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := newSource(&mockPCMReader{}, 44100, 2, 16)

	if src.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
	if src.BufSize() != 4096 {
		t.Errorf("BufSize() = %d, want 4096", src.BufSize())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestSource_ReadPCM16_BitDepths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		in       []int
		want     []int16
	}{
		{"8-bit", 8, []int{-128, 0, 127, 1}, []int16{-32768, 0, 32512, 256}},
		{"16-bit", 16, []int{-32768, 0, 32767, -1}, []int16{-32768, 0, 32767, -1}},
		{"24-bit", 24, []int{-8388608, 256, 8388607, 255}, []int16{-32768, 1, 32767, 0}},
		{"32-bit", 32, []int{-2147483648, 65536, 2147483647, 0}, []int16{-32768, 1, 32767, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := newSource(&mockPCMReader{samples: tt.in}, 8000, 2, tt.bitDepth)
			got, err := audio.ReadAll(src, 1)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("samples = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSource_ReadPCM16_EOF(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		eofWithData bool
	}{
		{"short read", false},
		{"eof with data", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := newSource(&mockPCMReader{samples: []int{1, 2, 3, 4, 5, 6}, eofWithData: tt.eofWithData}, 8000, 1, 16)
			buf := make([]int16, 4)

			n, err := src.ReadPCM16(buf)
			if n != 4 || err != nil {
				t.Fatalf("first read = %d, %v", n, err)
			}

			n, err = src.ReadPCM16(buf)
			if n != 2 || !errors.Is(err, io.EOF) {
				t.Fatalf("second read = %d, %v; want 2, EOF", n, err)
			}
			if !slices.Equal(buf[:n], []int16{5, 6}) {
				t.Errorf("tail = %v", buf[:n])
			}

			n, err = src.ReadPCM16(buf)
			if n != 0 || !errors.Is(err, io.EOF) {
				t.Errorf("read after end = %d, %v", n, err)
			}
		})
	}
}

func TestSource_ReadPCM16_Errors(t *testing.T) {
	t.Parallel()

	src := newSource(&mockPCMReader{returnErrors: true}, 8000, 2, 16)

	if _, err := src.ReadPCM16(make([]int16, 3)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("odd buffer error = %v", err)
	}
	if n, err := src.ReadPCM16(nil); n != 0 || err != nil {
		t.Errorf("empty buffer = %d, %v", n, err)
	}
	if _, err := src.ReadPCM16(make([]int16, 4)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("read error = %v", err)
	}
}

func TestSource_PartialFrame(t *testing.T) {
	t.Parallel()

	// a dangling sample at the end never splits a frame
	src := newSource(&mockPCMReader{samples: []int{1, 2, 3}}, 8000, 2, 16)

	got, err := audio.ReadAll(src, 4)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !slices.Equal(got, []int16{1, 2}) {
		t.Errorf("samples = %v", got)
	}
}

func TestWritePCM16(t *testing.T) {
	t.Parallel()

	w := &audiotest.WriteSeeker{}
	frames, err := WritePCM16(w, audiotest.NewConstantSource(22050, 2, 300, 1000))
	if err != nil {
		t.Fatalf("WritePCM16() error = %v", err)
	}
	if frames != 300 {
		t.Errorf("frames = %d, want 300", frames)
	}

	data := w.Bytes()
	if len(data) < 12+2*2*300 {
		t.Fatalf("file is only %d bytes", len(data))
	}
	if string(data[0:4]) != "FORM" || string(data[8:12]) != "AIFF" {
		t.Errorf("header = %q", data[:12])
	}
}

func TestWritePCM16_SourceError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	src := audiotest.NewConstantSource(8000, 1, 10, 1).FailAfter(0, boom)

	if _, err := WritePCM16(&audiotest.WriteSeeker{}, src); !errors.Is(err, boom) {
		t.Errorf("WritePCM16() error = %v, want %v", err, boom)
	}
}

func BenchmarkSource_ReadPCM16(b *testing.B) {
	samples := make([]int, 44100*2)
	for i := range samples {
		samples[i] = i % 65536
	}
	m := &mockPCMReader{samples: samples}
	src := newSource(m, 44100, 2, 16)
	buf := make([]int16, 4096)

	b.ReportAllocs()

	for b.Loop() {
		if _, err := src.ReadPCM16(buf); err != nil {
			m.offset = 0
			src.eof = false
		}
	}
}
