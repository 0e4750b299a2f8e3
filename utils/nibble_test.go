// SPDX-License-Identifier: EPL-2.0

package utils

import "testing"

func TestNibbles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		b                  byte
		hi, lo             int32
		hiSigned, loSigned int32
	}{
		{b: 0x00, hi: 0, lo: 0, hiSigned: 0, loSigned: 0},
		{b: 0x12, hi: 1, lo: 2, hiSigned: 1, loSigned: 2},
		{b: 0x7f, hi: 7, lo: 15, hiSigned: 7, loSigned: -1},
		{b: 0x80, hi: 8, lo: 0, hiSigned: -8, loSigned: 0},
		{b: 0x98, hi: 9, lo: 8, hiSigned: -7, loSigned: -8},
		{b: 0xff, hi: 15, lo: 15, hiSigned: -1, loSigned: -1},
	}

	for _, tt := range tests {
		if got := HighNibble(tt.b); got != tt.hi {
			t.Errorf("HighNibble(%#02x) = %d, want %d", tt.b, got, tt.hi)
		}
		if got := LowNibble(tt.b); got != tt.lo {
			t.Errorf("LowNibble(%#02x) = %d, want %d", tt.b, got, tt.lo)
		}
		if got := HighNibbleSigned(tt.b); got != tt.hiSigned {
			t.Errorf("HighNibbleSigned(%#02x) = %d, want %d", tt.b, got, tt.hiSigned)
		}
		if got := LowNibbleSigned(tt.b); got != tt.loSigned {
			t.Errorf("LowNibbleSigned(%#02x) = %d, want %d", tt.b, got, tt.loSigned)
		}
	}
}

func TestNibbleSignedRange(t *testing.T) {
	t.Parallel()

	for b := range 256 {
		hi := HighNibbleSigned(byte(b))
		lo := LowNibbleSigned(byte(b))
		if hi < -8 || hi > 7 || lo < -8 || lo > 7 {
			t.Fatalf("byte %#02x: signed nibbles %d/%d out of -8..7", b, hi, lo)
		}
		if (hi & 0xf) != HighNibble(byte(b)) {
			t.Errorf("byte %#02x: high nibble %d does not match raw %d", b, hi, HighNibble(byte(b)))
		}
		if (lo & 0xf) != LowNibble(byte(b)) {
			t.Errorf("byte %#02x: low nibble %d does not match raw %d", b, lo, LowNibble(byte(b)))
		}
	}
}
