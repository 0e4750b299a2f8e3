// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"slices"
	"testing"

	"github.com/ik5/vgmcodec/audio"
	"github.com/ik5/vgmcodec/codec"
	"github.com/ik5/vgmcodec/internal/audiotest"
)

func chunk(id string, payload []byte) []byte {
	out := make([]byte, 8, 8+len(payload)+1)
	copy(out, id)
	binary.LittleEndian.PutUint32(out[4:], uint32(len(payload)))
	out = append(out, payload...)
	if len(payload)%2 == 1 {
		out = append(out, 0)
	}
	return out
}

func fmtChunk(format, channels, rate, blockAlign, bits int, extra ...byte) []byte {
	p := make([]byte, 16, 16+len(extra))
	binary.LittleEndian.PutUint16(p[0:], uint16(format))
	binary.LittleEndian.PutUint16(p[2:], uint16(channels))
	binary.LittleEndian.PutUint32(p[4:], uint32(rate))
	binary.LittleEndian.PutUint32(p[8:], uint32(rate*blockAlign))
	binary.LittleEndian.PutUint16(p[12:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(p[14:], uint16(bits))
	return chunk("fmt ", append(p, extra...))
}

func riffFile(form string, chunks ...[]byte) []byte {
	body := []byte(form)
	for _, c := range chunks {
		body = append(body, c...)
	}
	out := make([]byte, 8, 8+len(body))
	copy(out, "RIFF")
	binary.LittleEndian.PutUint32(out[4:], uint32(len(body)))
	return append(out, body...)
}

func u32(v uint32) []byte { return binary.LittleEndian.AppendUint32(nil, v) }

func decodeAll(t *testing.T, data []byte) (audio.Source, []int16) {
	t.Helper()

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	pcm, err := audio.ReadAll(src, 64)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	return src, pcm
}

func TestWriteWAV16_RoundTrip(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 100, -100, 32767, -32768}
	var buf bytes.Buffer
	if err := WriteWAV16(&buf, 16000, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	data := buf.Bytes()
	if len(data) != headerSize+2*len(samples) {
		t.Fatalf("file is %d bytes", len(data))
	}
	if got := binary.LittleEndian.Uint32(data[4:]); got != uint32(len(data)-8) {
		t.Errorf("RIFF size = %d, want %d", got, len(data)-8)
	}

	// a plain io.Reader goes through the in-memory path
	src, err := Decoder{}.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.SampleRate() != 16000 || src.Channels() != 1 {
		t.Errorf("format = %d Hz, %d ch", src.SampleRate(), src.Channels())
	}
	got, err := audio.ReadAll(src, 2)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !slices.Equal(got, samples) {
		t.Errorf("samples = %v, want %v", got, samples)
	}
}

func TestWriteWAV16_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteWAV16(&buf, 8000, nil); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}
	if buf.Len() != headerSize {
		t.Errorf("file is %d bytes, want %d", buf.Len(), headerSize)
	}
}

func TestWritePCM16_RoundTrip(t *testing.T) {
	t.Parallel()

	in := []int16{1, -1, 2, -2, 3, -3, 32767, -32768, 0, 5}
	w := &audiotest.WriteSeeker{}

	frames, err := WritePCM16(w, audiotest.NewSliceSource(22050, 2, in))
	if err != nil {
		t.Fatalf("WritePCM16() error = %v", err)
	}
	if frames != 5 {
		t.Errorf("frames = %d, want 5", frames)
	}

	data := w.Bytes()
	if !bytes.Equal(data[:headerSize], pcmHeader(22050, 2, 5)) {
		t.Errorf("header = % x", data[:headerSize])
	}

	src, got := decodeAll(t, data)
	if src.Channels() != 2 || src.SampleRate() != 22050 {
		t.Errorf("format = %d Hz, %d ch", src.SampleRate(), src.Channels())
	}
	if !slices.Equal(got, in) {
		t.Errorf("samples = %v, want %v", got, in)
	}
}

func TestWritePCM16_Empty(t *testing.T) {
	t.Parallel()

	w := &audiotest.WriteSeeker{}
	frames, err := WritePCM16(w, audiotest.NewSilentSource(8000, 1, 0))
	if err != nil || frames != 0 {
		t.Fatalf("WritePCM16() = %d, %v", frames, err)
	}
	if !bytes.Equal(w.Bytes(), pcmHeader(8000, 1, 0)) {
		t.Errorf("empty file = % x", w.Bytes())
	}

	if _, got := decodeAll(t, w.Bytes()); len(got) != 0 {
		t.Errorf("decoded %d samples from an empty file", len(got))
	}
}

func TestReadInfo_Chunks(t *testing.T) {
	t.Parallel()

	data := riffFile("WAVE",
		chunk("LIST", []byte("INFO")),
		fmtChunk(FormatPCM, 1, 8000, 2, 16),
		chunk("junk", []byte{1, 2, 3}),
		chunk("fact", u32(3)),
		chunk("data", []byte{1, 0, 2, 0, 3, 0}),
		chunk("LIST", []byte("tail")),
	)

	info, err := ReadInfo(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("ReadInfo() error = %v", err)
	}

	// RIFF(12) + LIST(12) + fmt(24) + junk(12) + fact(12) + data header(8)
	want := Info{
		Format:        FormatPCM,
		Channels:      1,
		SampleRate:    8000,
		BlockAlign:    2,
		BitsPerSample: 16,
		DataOffset:    80,
		DataSize:      6,
		FactSamples:   3,
	}
	if *info != want {
		t.Errorf("info = %+v, want %+v", *info, want)
	}

	if _, got := decodeAll(t, data); !slices.Equal(got, []int16{1, 2, 3}) {
		t.Errorf("samples = %v", got)
	}
}

func TestDecode_PCM8(t *testing.T) {
	t.Parallel()

	data := riffFile("WAVE",
		fmtChunk(FormatPCM, 2, 11025, 2, 8),
		chunk("data", []byte{0x80, 0x00, 0xff, 0x81}),
	)

	want := []int16{0, -32768, 32512, 256}
	if _, got := decodeAll(t, data); !slices.Equal(got, want) {
		t.Errorf("samples = %v, want %v", got, want)
	}
}

func TestDecode_IMAADPCM(t *testing.T) {
	t.Parallel()

	// two 36-byte mono blocks of 65 samples; zero nibbles at step index 0
	// hold the header sample
	block := func(sample int16) []byte {
		b := make([]byte, 36)
		binary.LittleEndian.PutUint16(b, uint16(sample))
		return b
	}
	payload := append(block(100), block(-50)...)

	data := riffFile("WAVE",
		fmtChunk(FormatIMAADPCM, 1, 22050, 36, 4, 2, 0, 65, 0),
		chunk("fact", u32(130)),
		chunk("data", payload),
	)

	_, got := decodeAll(t, data)
	if len(got) != 130 {
		t.Fatalf("got %d samples, want 130", len(got))
	}
	for i, v := range got {
		want := int16(100)
		if i >= 65 {
			want = -50
		}
		if v != want {
			t.Fatalf("sample %d = %d, want %d", i, v, want)
		}
	}
}

func TestInfo_Kind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format uint16
		bits   int
		want   codec.Kind
	}{
		{FormatPCM, 16, codec.KindPCM16LEInt},
		{FormatExtensible, 16, codec.KindPCM16LEInt},
		{FormatPCM, 8, codec.KindPCM8UnsignedInt},
		{FormatMSADPCM, 4, codec.KindMSADPCM},
		{FormatIMAADPCM, 4, codec.KindMSIMA},
		{FormatPCM, 24, codec.KindUnknown},
		{0x0055, 0, codec.KindUnknown},
	}

	for _, tt := range tests {
		info := Info{Format: tt.format, BitsPerSample: tt.bits}
		got, err := info.Kind()
		if got != tt.want {
			t.Errorf("Kind(%#x, %d) = %v, want %v", tt.format, tt.bits, got, tt.want)
		}
		if (tt.want == codec.KindUnknown) != errors.Is(err, ErrUnsupportedCodec) {
			t.Errorf("Kind(%#x, %d) error = %v", tt.format, tt.bits, err)
		}
	}
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrNotWavFile},
		{"truncated", []byte("RIF"), ErrNotWavFile},
		{"not riff", []byte("hello, world"), ErrNotWavFile},
		{"riff avi", riffFile("AVI "), ErrNotWavFile},
		{"no data", riffFile("WAVE", fmtChunk(FormatPCM, 1, 8000, 2, 16)), ErrUnsupportedWavChunks},
		{"data first", riffFile("WAVE", chunk("data", []byte{0, 0}), fmtChunk(FormatPCM, 1, 8000, 2, 16)), ErrUnsupportedWavLayout},
		{"mp3 in wav", riffFile("WAVE", fmtChunk(0x0055, 2, 44100, 1, 0), chunk("data", []byte{0, 0})), ErrUnsupportedCodec},
		{"no channels", riffFile("WAVE", fmtChunk(FormatPCM, 0, 8000, 2, 16), chunk("data", []byte{0, 0})), ErrUnsupportedWavLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
			if src != nil {
				t.Error("Decode() returned a source with an error")
			}
		})
	}
}

func BenchmarkWriteWAV16(b *testing.B) {
	samples := make([]int16, 16000)
	var buf bytes.Buffer

	b.ReportAllocs()

	for b.Loop() {
		buf.Reset()
		_ = WriteWAV16(&buf, 16000, samples)
	}
}
