package narrowphase

import "github.com/chewxy/math32"

// OBBOBB returns true if the two oriented Boxes overlap, using the separating axis test over the 15 candidate axes:
// the three face normals of a, the three face normals of b, and the nine cross products between them.
// Cross product axes generated by (nearly) parallel face normals are skipped, as the face normals already cover them.
func OBBOBB(a, b Box) bool {

	rotA := a.Orientation()
	rotB := b.Orientation()

	delta := b.Center().Sub(a.Center())

	if !delta.IsFinite() || !a.HalfSize.IsFinite() || !b.HalfSize.IsFinite() || !rotA.IsFinite() || !rotB.IsFinite() {
		return false
	}

	ha := [3]float32{a.HalfSize.X, a.HalfSize.Y, a.HalfSize.Z}
	hb := [3]float32{b.HalfSize.X, b.HalfSize.Y, b.HalfSize.Z}

	// R expresses b's axes in a's frame; t is the distance between the centers in a's frame.
	var r, absR [3][3]float32
	var t [3]float32

	for i := 0; i < 3; i++ {
		axisA := rotA.Row(i)
		for j := 0; j < 3; j++ {
			r[i][j] = axisA.Dot(rotB.Row(j))
			absR[i][j] = math32.Abs(r[i][j])
		}
		t[i] = axisA.Dot(delta)
	}

	// a's face normals
	for i := 0; i < 3; i++ {
		rb := hb[0]*absR[i][0] + hb[1]*absR[i][1] + hb[2]*absR[i][2]
		if math32.Abs(t[i]) > ha[i]+rb {
			return false
		}
	}

	// b's face normals
	for j := 0; j < 3; j++ {
		ra := ha[0]*absR[0][j] + ha[1]*absR[1][j] + ha[2]*absR[2][j]
		dist := t[0]*r[0][j] + t[1]*r[1][j] + t[2]*r[2][j]
		if math32.Abs(dist) > ra+hb[j] {
			return false
		}
	}

	// a[i] x b[j]
	for i := 0; i < 3; i++ {

		i1 := (i + 1) % 3
		i2 := (i + 2) % 3

		for j := 0; j < 3; j++ {

			if absR[i][j] >= 1-ParallelEpsilon {
				continue
			}

			j1 := (j + 1) % 3
			j2 := (j + 2) % 3

			ra := ha[i1]*absR[i2][j] + ha[i2]*absR[i1][j]
			rb := hb[j1]*absR[i][j2] + hb[j2]*absR[i][j1]
			dist := t[i2]*r[i1][j] - t[i1]*r[i2][j]

			if math32.Abs(dist) > ra+rb {
				return false
			}

		}

	}

	return true

}
