// SPDX-License-Identifier: EPL-2.0

package utils

// CubicInterpolate evaluates a Catmull-Rom spline through four consecutive
// PCM samples at x, the fractional position between y1 (x=0) and y2 (x=1).
// The result saturates to int16.
func CubicInterpolate(y0, y1, y2, y3 int16, x float32) int16 {
	f0, f1, f2, f3 := float32(y0), float32(y1), float32(y2), float32(y3)

	a0 := -0.5*f0 + 1.5*f1 - 1.5*f2 + 0.5*f3
	a1 := f0 - 2.5*f1 + 2*f2 - 0.5*f3
	a2 := -0.5*f0 + 0.5*f2

	v := ((a0*x+a1)*x+a2)*x + f1
	if v >= 0 {
		v += 0.5
	} else {
		v -= 0.5
	}

	return Clamp16(int32(max(min(v, 1<<30), -(1 << 30))))
}
