package narrowphase

import "github.com/chewxy/math32"

// ToRadians is a helper function to easily convert degrees to radians (which is what the rotation-oriented functions here use).
func ToRadians(degrees float32) float32 {
	return math32.Pi * degrees / 180
}

// ToDegrees is a helper function to easily convert radians to degrees for human readability.
func ToDegrees(radians float32) float32 {
	return radians / math32.Pi * 180
}

func clamp[V float64 | float32 | int](value, min, max V) V {
	if value < min {
		return min
	} else if value > max {
		return max
	}
	return value
}

func isFinite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}
