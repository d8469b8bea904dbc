package narrowphase

import "github.com/chewxy/math32"

// PointInTriangle returns true if the point, assumed to be coplanar with the triangle formed by p0, p1, and p2, lies inside of it.
// This works by summing the angles between the vectors pointing from the point to each vertex; for a point inside the
// triangle (or on its edges), the sum comes to 2π (within AngleSumTolerance).
// A point that coincides with one of the vertices is considered inside.
func PointInTriangle(point, p0, p1, p2 Vector3) bool {

	v0 := p0.Sub(point)
	v1 := p1.Sub(point)
	v2 := p2.Sub(point)

	if v0.IsZero() || v1.IsZero() || v2.IsZero() {
		return true
	}

	v0 = v0.Unit()
	v1 = v1.Unit()
	v2 = v2.Unit()

	sum := math32.Acos(clamp(v0.Dot(v1), -1, 1)) +
		math32.Acos(clamp(v1.Dot(v2), -1, 1)) +
		math32.Acos(clamp(v2.Dot(v0), -1, 1))

	return math32.Abs(sum-2*math32.Pi) <= AngleSumTolerance

}

// Triangle represents a single triangle in 3D space.
type Triangle struct {
	P0, P1, P2 Vector3
}

// NewTriangle returns a new Triangle out of the three vertices given.
func NewTriangle(p0, p1, p2 Vector3) Triangle {
	return Triangle{P0: p0, P1: p1, P2: p2}
}

// Normal returns the normalized face normal of the Triangle, following the winding order of P0, P1, and P2.
// If the Triangle has no area, ok is false.
func (tri Triangle) Normal() (normal Vector3, ok bool) {
	normal = tri.P1.Sub(tri.P0).Cross(tri.P2.Sub(tri.P0))
	if normal.IsZero() || !normal.IsFinite() {
		return Vector3{}, false
	}
	return normal.Unit(), true
}

// Centroid returns the center of the Triangle.
func (tri Triangle) Centroid() Vector3 {
	return tri.P0.Add(tri.P1).Add(tri.P2).Scale(1.0 / 3.0)
}

// Vertex returns the vertex indicated (0, 1, or 2).
func (tri Triangle) Vertex(index int) Vector3 {
	switch index {
	case 0:
		return tri.P0
	case 1:
		return tri.P1
	}
	return tri.P2
}

// Transform returns a copy of the Triangle with each vertex transformed by the Matrix4 given.
func (tri Triangle) Transform(transform Matrix4) Triangle {
	return Triangle{
		P0: transform.MultVec(tri.P0),
		P1: transform.MultVec(tri.P1),
		P2: transform.MultVec(tri.P2),
	}
}

// Contains returns true if the point, assumed to be coplanar with the Triangle, lies inside of it.
func (tri Triangle) Contains(point Vector3) bool {
	return PointInTriangle(point, tri.P0, tri.P1, tri.P2)
}

// ClosestPoint returns the point on the surface of the Triangle closest to the point given.
func (tri Triangle) ClosestPoint(point Vector3) Vector3 {

	if plane, ok := newCollisionPlane(tri); ok {
		if planePoint := plane.ClosestPoint(point); tri.Contains(planePoint) {
			return planePoint
		}
	}

	ab := closestPointOnLine(point, tri.P0, tri.P1)
	bc := closestPointOnLine(point, tri.P1, tri.P2)
	ca := closestPointOnLine(point, tri.P2, tri.P0)

	closest := ab
	closestDist := point.DistanceSquaredTo(ab)

	if bcDist := point.DistanceSquaredTo(bc); bcDist < closestDist {
		closest = bc
		closestDist = bcDist
	}

	if caDist := point.DistanceSquaredTo(ca); caDist < closestDist {
		closest = ca
	}

	return closest

}

type collisionPlane struct {
	Normal   Vector3
	Distance float32
}

func newCollisionPlane(tri Triangle) (collisionPlane, bool) {
	normal, ok := tri.Normal()
	if !ok {
		return collisionPlane{}, false
	}
	return collisionPlane{Normal: normal, Distance: normal.Dot(tri.P0)}, true
}

// SignedDistance returns the distance from the plane to the point, positive on the side the plane's normal faces.
func (plane collisionPlane) SignedDistance(point Vector3) float32 {
	return plane.Normal.Dot(point) - plane.Distance
}

func (plane collisionPlane) ClosestPoint(point Vector3) Vector3 {
	return point.Sub(plane.Normal.Scale(plane.SignedDistance(point)))
}

// Intersect returns the point at which the motion given crosses the plane. ok is false if the motion runs parallel to the plane,
// or if the crossing point doesn't lie strictly between the motion's ends.
func (plane collisionPlane) Intersect(motion Motion) (point Vector3, ok bool) {

	delta := motion.Delta()

	denom := plane.Normal.Dot(delta)
	if math32.Abs(denom) < PlaneEpsilon {
		return Vector3{}, false
	}

	t := -plane.SignedDistance(motion.Previous) / denom
	point = motion.Previous.Add(delta.Scale(t))

	if !point.IsFinite() {
		return Vector3{}, false
	}

	return point, onSegment(motion, point)

}

func closestPointOnLine(point, start, end Vector3) Vector3 {

	diff := end.Sub(start)
	dotB := diff.Dot(diff)
	if dotB == 0 {
		return start
	}
	dotA := point.Sub(start).Dot(diff)
	d := clamp(dotA/dotB, 0, 1)
	return start.Add(diff.Scale(d))

}
