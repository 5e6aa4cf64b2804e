package mathutil

import "math"

// IntAbs returns the absolute value of an int (search: int-math).
func IntAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Clamp limits v to [lo, hi]. NaN is returned as lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt limits v to [lo, hi] (search: int-math).
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NearlyEqual compares floats with an absolute tolerance
func NearlyEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// FloorInt floors a float to an int
func FloorInt(v float64) int {
	return int(math.Floor(v))
}

// CeilInt ceils a float to an int
func CeilInt(v float64) int {
	return int(math.Ceil(v))
}
