// SPDX-License-Identifier: EPL-2.0

package raw

import (
	"bytes"
	"encoding/binary"
	"errors"
	"slices"
	"testing"

	"github.com/ik5/vgmcodec/audio"
	"github.com/ik5/vgmcodec/codec"
)

func le16(samples ...int16) []byte {
	var b []byte
	for _, s := range samples {
		b = binary.LittleEndian.AppendUint16(b, uint16(s))
	}
	return b
}

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		data []byte
		want []int16
	}{
		{
			name: "mono after a header",
			cfg:  Config{Kind: codec.KindPCM16LE, Channels: 1, SampleRate: 8000, Start: 4},
			data: append([]byte("junk"), le16(1, 2, 3)...),
			want: []int16{1, 2, 3},
		},
		{
			name: "block interleave",
			cfg:  Config{Kind: codec.KindPCM16LE, Channels: 2, SampleRate: 8000, Interleave: 4},
			data: le16(10, 11, 20, 21, 12, 13, 22, 23),
			want: []int16{10, 20, 11, 21, 12, 22, 13, 23},
		},
		{
			name: "short last block",
			cfg:  Config{Kind: codec.KindPCM16LE, Channels: 2, SampleRate: 8000, Interleave: 4, InterleaveLast: 2},
			data: le16(10, 11, 20, 21, 12, 22),
			want: []int16{10, 20, 11, 21, 12, 22},
		},
		{
			name: "sample interleave",
			cfg:  Config{Kind: codec.KindPCM16LEInt, Channels: 2, SampleRate: 8000},
			data: le16(1, -1, 2, -2),
			want: []int16{1, -1, 2, -2},
		},
		{
			name: "explicit length",
			cfg:  Config{Kind: codec.KindPCM16LE, Channels: 1, SampleRate: 8000, TotalSamples: 2},
			data: le16(5, 6, 7, 8),
			want: []int16{5, 6},
		},
		{
			name: "loop",
			cfg:  Config{Kind: codec.KindPCM16LE, Channels: 1, SampleRate: 8000, LoopStart: 1, LoopEnd: 3},
			data: le16(0, 1, 2, 3),
			want: []int16{0, 1, 2, 1, 2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := Decoder{Config: tt.cfg, Options: []audio.StreamOption{audio.WithLoopCount(1)}}
			src, err := d.Decode(bytes.NewReader(tt.data))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}

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

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"westwood needs a length", Config{Kind: codec.KindWestwood, Channels: 1, SampleRate: 22050}, ErrUnknownLength},
		{"no channels", Config{Kind: codec.KindPCM16LE, SampleRate: 8000}, audio.ErrInvalidConfig},
		{"no rate", Config{Kind: codec.KindPCM16LE, Channels: 1}, audio.ErrInvalidConfig},
		{"interleave not a frame multiple", Config{Kind: codec.KindPSX, Channels: 2, SampleRate: 8000, Interleave: 0x18}, audio.ErrUnsupportedLayout},
		{"psx stereo without interleave", Config{Kind: codec.KindPSX, Channels: 2, SampleRate: 8000}, audio.ErrUnsupportedLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := Decoder{Config: tt.cfg}.Decode(bytes.NewReader(make([]byte, 0x40)))
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
			if src != nil {
				t.Error("Decode() returned a source with an error")
			}
		})
	}
}

func TestConfig_Westwood(t *testing.T) {
	t.Parallel()

	cfg := Config{Kind: codec.KindWestwood, Channels: 1, SampleRate: 22050, TotalSamples: 300}
	sc, err := cfg.StreamConfig(12)
	if err != nil {
		t.Fatalf("StreamConfig() error = %v", err)
	}
	if sc.TotalSamples != 300 || sc.Loop {
		t.Errorf("stream config = %+v", sc)
	}
}
