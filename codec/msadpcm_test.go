// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func msADPCMBlock(channels, block int, ci []byte, scale, h1, h2 []int16) []byte {
	b := make([]byte, block)
	for c := range channels {
		b[c] = ci[c]
		binary.LittleEndian.PutUint16(b[channels+2*c:], uint16(scale[c]))
		binary.LittleEndian.PutUint16(b[3*channels+2*c:], uint16(h1[c]))
		binary.LittleEndian.PutUint16(b[5*channels+2*c:], uint16(h2[c]))
	}
	for i := 7 * channels; i < block; i++ {
		b[i] = byte(i*37 + 5)
	}
	return b
}

func TestDecodeMSADPCM_Priming(t *testing.T) {
	t.Parallel()

	const channels, block = 2, 64
	h1 := []int16{-1234, 30000}
	h2 := []int16{4321, -32768}
	data := bytes.Repeat(msADPCMBlock(channels, block, []byte{1, 6}, []int16{300, 16}, h1, h2), 3)
	spb := msADPCMSamplesPerBlock(channels, block)

	for c := range channels {
		st := NewChannelState(KindMSADPCM, c, channels, 0)
		st.BlockSize = block
		out := make([]int16, 3*spb)
		if err := KindMSADPCM.Decode(&st, bytes.NewReader(data), out, 1, 0, len(out)); err != nil {
			t.Fatalf("Decode() error = %v", err)
		}

		for b := range 3 {
			if got := out[b*spb]; got != h2[c] {
				t.Errorf("channel %d block %d: sample 0 = %d, want hist2 %d", c, b, got, h2[c])
			}
			if got := out[b*spb+1]; got != h1[c] {
				t.Errorf("channel %d block %d: sample 1 = %d, want hist1 %d", c, b, got, h1[c])
			}
		}
	}
}

func TestDecodeMSADPCM_FirstNibble(t *testing.T) {
	t.Parallel()

	data := msADPCMBlock(1, 16, []byte{1}, []int16{100}, []int16{50}, []int16{20})
	data[7] = 0x3e // +3, then -2

	st := NewChannelState(KindMSADPCM, 0, 1, 0)
	st.BlockSize = len(data)
	out := make([]int16, 4)
	if err := KindMSADPCM.Decode(&st, bytes.NewReader(data), out, 1, 0, 4); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	// coefficient pair 1 is (512, -256): 2*h1 - h2
	s2 := int16((50*512-20*256)/256 + 3*100)
	scale := int32(230 * 100 / 256)
	s3 := int16((int32(s2)*512-50*256)/256 + -2*max(scale, msADPCMMinScale))
	want := []int16{20, 50, s2, s3}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %d, want %d", i, out[i], want[i])
		}
	}
}

func TestDecodeMSADPCM_BadCoefficient(t *testing.T) {
	t.Parallel()

	data := msADPCMBlock(1, 16, []byte{7}, []int16{16}, []int16{0}, []int16{0})
	st := NewChannelState(KindMSADPCM, 0, 1, 0)
	st.BlockSize = len(data)

	err := KindMSADPCM.Decode(&st, bytes.NewReader(data), make([]int16, 4), 1, 0, 4)
	if !errors.Is(err, ErrOutOfRangeTableIndex) {
		t.Errorf("Decode() error = %v, want ErrOutOfRangeTableIndex", err)
	}
}

func TestDecodeMSADPCM_BlockTooSmall(t *testing.T) {
	t.Parallel()

	st := NewChannelState(KindMSADPCM, 0, 2, 0)
	st.BlockSize = 14
	err := KindMSADPCM.Decode(&st, bytes.NewReader(make([]byte, 64)), make([]int16, 1), 1, 0, 1)
	if !errors.Is(err, ErrInvalidStateTransition) {
		t.Errorf("Decode() error = %v, want ErrInvalidStateTransition", err)
	}
}
