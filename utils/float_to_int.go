// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 scales x from [-1, 1] to a 16-bit sample, saturating
// values outside that range.
func Float32ToInt16(x float32) int16 {
	v := x * 32768.0
	if v >= math.MaxInt16 {
		return math.MaxInt16
	}
	if v <= math.MinInt16 {
		return math.MinInt16
	}

	return int16(v)
}

// Int16ToFloat32 maps a 16-bit sample to [-1, 1).
func Int16ToFloat32(s int16) float32 {
	return float32(s) / 32768.0
}
