package narrowphase

import "github.com/chewxy/math32"

// AABBAABB returns true if the two Boxes, treated as axis-aligned (so their Rotations are ignored), overlap.
// Boxes that exactly touch are considered to be overlapping.
func AABBAABB(a, b Box) bool {

	delta := a.Center().Sub(b.Center())

	if !delta.IsFinite() || !a.HalfSize.IsFinite() || !b.HalfSize.IsFinite() {
		return false
	}

	if math32.Abs(delta.X) > a.HalfSize.X+b.HalfSize.X {
		return false
	}

	if math32.Abs(delta.Y) > a.HalfSize.Y+b.HalfSize.Y {
		return false
	}

	if math32.Abs(delta.Z) > a.HalfSize.Z+b.HalfSize.Z {
		return false
	}

	return true

}
