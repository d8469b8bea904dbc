package narrowphase

import "github.com/chewxy/math32"

// SphereSphere returns true if the mover Sphere overlaps the target Sphere at its current location, or if the mover's
// motion over the last step passed through the target's radius.
// For the swept test, only the target's location and radius are considered; the mover is treated as a point.
func SphereSphere(target, mover Sphere) bool {

	if !target.finite() || !mover.finite() {
		return false
	}

	delta := target.Current.Sub(mover.Current)
	radii := target.Radius + mover.Radius

	// The cube around the target rules out most far-away pairs before computing the distance.
	if math32.Abs(delta.X) <= radii && math32.Abs(delta.Y) <= radii && math32.Abs(delta.Z) <= radii {
		if delta.MagnitudeSquared() <= radii*radii {
			return true
		}
	}

	closest, ok := mover.ClosestPoint(target.Current)
	if !ok {
		return false
	}

	return closest.DistanceSquaredTo(target.Current) <= target.Radius*target.Radius

}

// SphereAABB returns true if the Sphere overlaps the Box (ignoring the Box's Rotation) at its current location,
// or if the Sphere passed through the Box over its last Motion.
func SphereAABB(box Box, sphere Sphere) bool {
	center := box.Center()
	return sphereBox(box.HalfSize, sphere.Radius, Motion{
		Previous: sphere.Previous.Sub(center),
		Current:  sphere.Current.Sub(center),
	})
}

// SphereOBB returns true if the Sphere overlaps the oriented Box at its current location, or if the Sphere passed
// through the Box over its last Motion. The test is performed in the Box's local frame.
func SphereOBB(box Box, sphere Sphere) bool {
	return sphereBox(box.HalfSize, sphere.Radius, Motion{
		Previous: box.ToLocal(sphere.Previous),
		Current:  box.ToLocal(sphere.Current),
	})
}

// sphereBox tests a sphere of the given radius, moving along the motion given, against a box centered at the origin.
func sphereBox(halfSize Vector3, radius float32, motion Motion) bool {

	if !halfSize.IsFinite() || !isFinite(radius) || !motion.Previous.IsFinite() || !motion.Current.IsFinite() {
		return false
	}

	expanded := halfSize.Add(Vector3{radius, radius, radius})

	c := motion.Current
	if math32.Abs(c.X) <= expanded.X && math32.Abs(c.Y) <= expanded.Y && math32.Abs(c.Z) <= expanded.Z {
		return true
	}

	return segmentBox(expanded, motion)

}

// segmentBox returns true if the motion's segment intersects a box of the given half-size centered at the origin.
// It's a separating axis test over the box's three axes and the three cross products of the segment's direction with those axes.
func segmentBox(halfSize Vector3, motion Motion) bool {

	dir, ok := motion.Direction()
	if !ok {
		return false
	}

	mid := motion.Midpoint()
	halfLength := motion.HalfLength()
	if !mid.IsFinite() || !isFinite(halfLength) {
		return false
	}

	absDir := dir.Abs()

	if math32.Abs(mid.X) > halfSize.X+halfLength*absDir.X {
		return false
	}

	if math32.Abs(mid.Y) > halfSize.Y+halfLength*absDir.Y {
		return false
	}

	if math32.Abs(mid.Z) > halfSize.Z+halfLength*absDir.Z {
		return false
	}

	cross := mid.Cross(dir)

	if math32.Abs(cross.X) > halfSize.Y*absDir.Z+halfSize.Z*absDir.Y {
		return false
	}

	if math32.Abs(cross.Y) > halfSize.X*absDir.Z+halfSize.Z*absDir.X {
		return false
	}

	if math32.Abs(cross.Z) > halfSize.X*absDir.Y+halfSize.Y*absDir.X {
		return false
	}

	return true

}
