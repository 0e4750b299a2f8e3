// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Clamp16 saturates v to the signed 16-bit range.
func Clamp16[T ~int | ~int32 | ~int64](v T) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}
