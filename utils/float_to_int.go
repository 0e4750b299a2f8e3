// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 converts a normalized float sample in [-1,1] to int16.
// -1 maps to -32768 and values at or above 32767/32768 saturate.
func Float32ToInt16(x float32) int16 {
	if x >= 1 {
		return 32767
	}
	if x <= -1 {
		return -32768
	}

	return Clamp16(int32(x * 32768.0))
}
