// SPDX-License-Identifier: EPL-2.0

package vgmcodec

import (
	"errors"
	"testing"

	"github.com/ik5/vgmcodec/internal/audiotest"
)

func TestResampleToMono16_SameRate(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(8000, 2, 100, func(_ int, channel int) int16 {
		if channel == 0 {
			return 1000
		}
		return 3000
	})

	pcm16, rate, err := ResampleToMono16(src, 8000, 4096)
	if err != nil {
		t.Fatalf("ResampleToMono16() error = %v", err)
	}
	if rate != 8000 || len(pcm16) != 100 {
		t.Fatalf("got %d samples at %d Hz, want 100 at 8000", len(pcm16), rate)
	}
	for i, s := range pcm16 {
		if s != 2000 {
			t.Fatalf("pcm16[%d] = %d, want 2000", i, s)
		}
	}
}

func TestResampleToMono16_Silence(t *testing.T) {
	t.Parallel()

	pcm16, _, err := ResampleToMono16(audiotest.NewSilentSource(44100, 2, 44100), 8000, 4096)
	if err != nil {
		t.Fatalf("ResampleToMono16() error = %v", err)
	}
	for i, s := range pcm16 {
		if s != 0 {
			t.Fatalf("pcm16[%d] = %d, want 0", i, s)
		}
	}
}

func TestResampleToMono16_EmptySource(t *testing.T) {
	t.Parallel()

	pcm16, rate, err := ResampleToMono16(audiotest.NewSilentSource(44100, 2, 0), 8000, 4096)
	if err != nil {
		t.Fatalf("ResampleToMono16() error = %v", err)
	}
	if rate != 8000 || len(pcm16) != 0 {
		t.Errorf("got %d samples at %d Hz, want 0 at 8000", len(pcm16), rate)
	}
}

func TestResampleToMono16_VariousRates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		srcRate int
		dstRate int
	}{
		{"44.1kHz to 8kHz", 44100, 8000},
		{"48kHz to 16kHz", 48000, 16000},
		{"8kHz to 16kHz", 8000, 16000},
		{"22.05kHz to 8kHz", 22050, 8000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// one second of stereo sine
			src := audiotest.NewSineSource(tt.srcRate, 2, tt.srcRate, 440.0)

			pcm16, rate, err := ResampleToMono16(src, tt.dstRate, 4096)
			if err != nil {
				t.Fatalf("ResampleToMono16() error = %v", err)
			}
			if rate != tt.dstRate {
				t.Errorf("rate = %d, want %d", rate, tt.dstRate)
			}

			tolerance := tt.dstRate / 20
			if len(pcm16) < tt.dstRate-tolerance || len(pcm16) > tt.dstRate+tolerance {
				t.Errorf("got %d samples, want ≈%d (±%d)", len(pcm16), tt.dstRate, tolerance)
			}
		})
	}
}

func TestResampleToMono16_SourceError(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	src := audiotest.NewConstantSource(8000, 1, 1000, 5).FailAfter(100, errBoom)

	pcm16, _, err := ResampleToMono16(src, 8000, 64)
	if !errors.Is(err, errBoom) {
		t.Fatalf("error = %v, want %v", err, errBoom)
	}
	if pcm16 != nil {
		t.Errorf("got %d samples on error, want none", len(pcm16))
	}
}

func BenchmarkResampleToMono16_44kTo8k(b *testing.B) {
	b.ReportAllocs()
	src := audiotest.NewSineSource(44100, 2, 44100, 440.0)

	for b.Loop() {
		src.Reset()
		_, _, _ = ResampleToMono16(src, 8000, 4096)
	}
}

func BenchmarkResampleToMono16_SameRate(b *testing.B) {
	b.ReportAllocs()
	src := audiotest.NewSineSource(16000, 2, 16000, 440.0)

	for b.Loop() {
		src.Reset()
		_, _, _ = ResampleToMono16(src, 16000, 4096)
	}
}
