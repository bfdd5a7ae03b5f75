package common

import "math"

// Epsilon is the tolerance used by the NearlyX helpers.
const Epsilon = 1e-4

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func NearlyZero(v float64) bool {
	return math.Abs(v) <= Epsilon
}

func NearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// NormalizeAxis wraps an angle in degrees into (-180, 180].
func NormalizeAxis(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg <= -180 {
		deg += 360
	} else if deg > 180 {
		deg -= 360
	}
	return deg
}
