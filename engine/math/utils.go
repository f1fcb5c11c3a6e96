package math

import "golang.org/x/exp/constraints"

// Pi at the precision the rest of the package works at.
const Pi = float32(3.14159265358979323846)

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// Lerp interpolates linearly between a and b; t outside [0, 1]
// extrapolates.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// DegToRad converts degrees to radians.
func DegToRad(degrees float32) float32 {
	return degrees * (Pi / 180)
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float32) float32 {
	return radians * (180 / Pi)
}
