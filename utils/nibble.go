// SPDX-License-Identifier: EPL-2.0

package utils

// HighNibble returns the upper four bits of b as 0..15.
func HighNibble(b byte) int32 { return int32(b >> 4) }

// LowNibble returns the lower four bits of b as 0..15.
func LowNibble(b byte) int32 { return int32(b & 0x0f) }

// HighNibbleSigned returns the upper four bits of b sign-extended to -8..7.
func HighNibbleSigned(b byte) int32 { return int32(int8(b)) >> 4 }

// LowNibbleSigned returns the lower four bits of b sign-extended to -8..7.
func LowNibbleSigned(b byte) int32 { return int32(int8(b<<4)) >> 4 }
