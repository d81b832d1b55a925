package mathutils

import "math"

// FloatEquals reports whether a and b differ by less than variance (default
// 0.001), used by timer-based tests that tolerate scheduling jitter.
func FloatEquals(a, b float64, variance ...float64) bool {
	v := 0.001
	if len(variance) >= 1 {
		v = variance[0]
	}
	return math.Abs(a-b) < v
}
