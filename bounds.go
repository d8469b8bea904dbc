package narrowphase

const (
	// AngleSumTolerance is how far (in radians) the angle sum computed by PointInTriangle may stray from 2π for the point to count as inside.
	AngleSumTolerance = 0.005

	// ParallelEpsilon is the tolerance below which two box axes are considered parallel by OBBOBB; the cross product axis they would generate is skipped.
	ParallelEpsilon = 1e-6

	// FrontFaceTolerance is how far behind a triangle's plane a sphere may start its movement and still be swept against that triangle.
	FrontFaceTolerance = 0.001

	// PlaneEpsilon is the smallest magnitude of the dot product between a motion and a plane's normal for the motion to be considered to cross the plane.
	PlaneEpsilon = 1e-6
)

// Box represents a 3D box with a center, half-size on each axis, and orientation.
// A Box can be tested as an AABB (ignoring the Rotation) or as an OBB.
type Box struct {
	// HalfSize is the distance from the center of the Box to each of its faces, in the Box's own unrotated frame.
	// All components must be non-negative.
	HalfSize Vector3
	// Offset is the position of the Box's center relative to Location.
	Offset Vector3
	// Location is the world position of the object owning the Box.
	Location Vector3
	// Rotation is the orientation of the Box. A zero Matrix3 is treated as the identity.
	Rotation Matrix3
}

// NewBox returns a new axis-aligned Box centered at the location given.
func NewBox(location, halfSize Vector3) Box {
	return Box{
		HalfSize: halfSize.Abs(),
		Location: location,
		Rotation: NewMatrix3(),
	}
}

// NewBoxFromCorners returns a new axis-aligned Box spanning the world-space minimum and maximum corners provided.
func NewBoxFromCorners(min, max Vector3) Box {
	return NewBox(min.Add(max).Scale(0.5), max.Sub(min).Scale(0.5))
}

// NewBoxFromOrientedCorners creates a Box out of the eight corners of an oriented box, expressed relative to its center
// in world orientation (as returned by Box.OrientedCorners()). Only the maximum corner (corners[0]) and the opposite corner
// (corners[6]) are read; the half difference between them is rotated back into the Box's own frame.
func NewBoxFromOrientedCorners(location, offset Vector3, corners [8]Vector3, rotation Matrix3) Box {
	half := corners[0].Sub(corners[6]).Scale(0.5)
	return Box{
		HalfSize: orientation(rotation).Transposed().MultVec(half).Abs(),
		Offset:   offset,
		Location: location,
		Rotation: rotation,
	}
}

// Center returns the world position of the Box's center.
func (box Box) Center() Vector3 {
	return box.Location.Add(box.Offset)
}

// Orientation returns the Box's rotation, substituting the identity for an unset (zero) Matrix3.
func (box Box) Orientation() Matrix3 {
	return orientation(box.Rotation)
}

// Valid returns true if the Box's half-size is finite and non-negative on every axis.
func (box Box) Valid() bool {
	return box.HalfSize.IsFinite() && box.HalfSize.X >= 0 && box.HalfSize.Y >= 0 && box.HalfSize.Z >= 0
}

// ToLocal converts a world position into the Box's local, unrotated frame, with the Box's center at the origin.
func (box Box) ToLocal(point Vector3) Vector3 {
	return box.Orientation().Transposed().MultVec(point.Sub(box.Center()))
}

// ToWorld converts a position in the Box's local frame into world space.
func (box Box) ToWorld(point Vector3) Vector3 {
	return box.Orientation().MultVec(point).Add(box.Center())
}

var cornerSigns = [8]Vector3{
	{1, 1, 1},
	{-1, 1, 1},
	{-1, -1, 1},
	{1, -1, 1},
	{1, 1, -1},
	{-1, 1, -1},
	{-1, -1, -1},
	{1, -1, -1},
}

// OrientedCorners returns the eight corners of the Box relative to its center, in world orientation. The corner at index 0 is
// the local maximum corner, and the corner at index 6 is the one diagonally opposite to it.
func (box Box) OrientedCorners() [8]Vector3 {
	rot := box.Orientation()
	corners := [8]Vector3{}
	for i, sign := range cornerSigns {
		corners[i] = rot.MultVec(Vector3{box.HalfSize.X * sign.X, box.HalfSize.Y * sign.Y, box.HalfSize.Z * sign.Z})
	}
	return corners
}

// Corners returns the eight corners of the Box in world space.
func (box Box) Corners() [8]Vector3 {
	corners := box.OrientedCorners()
	center := box.Center()
	for i := range corners {
		corners[i] = corners[i].Add(center)
	}
	return corners
}

func orientation(m Matrix3) Matrix3 {
	if m == (Matrix3{}) {
		return NewMatrix3()
	}
	return m
}

// Motion represents the displacement of a point over one simulation step, from its Previous location to its Current one.
type Motion struct {
	Previous Vector3
	Current  Vector3
}

// Delta returns the displacement vector from Previous to Current.
func (motion Motion) Delta() Vector3 {
	return motion.Current.Sub(motion.Previous)
}

// IsStationary returns true if the Motion does not move at all.
func (motion Motion) IsStationary() bool {
	return motion.Delta().IsZero()
}

// Direction returns the normalized direction of the Motion. If the Motion is stationary, or either end isn't finite,
// ok is false.
func (motion Motion) Direction() (dir Vector3, ok bool) {
	delta := motion.Delta()
	if delta.IsZero() || !delta.IsFinite() {
		return Vector3{}, false
	}
	dir = delta.Unit()
	if dir.IsZero() || !dir.IsFinite() {
		return Vector3{}, false
	}
	return dir, true
}

// Midpoint returns the point halfway between Previous and Current.
func (motion Motion) Midpoint() Vector3 {
	return motion.Previous.Add(motion.Current).Scale(0.5)
}

// HalfLength returns half of the distance travelled by the Motion.
func (motion Motion) HalfLength() float32 {
	return motion.Delta().Magnitude() / 2
}

// ClosestPoint returns the point on the Motion's line closest to the point given. ok is true only if
// that closest point lies strictly between Previous and Current.
func (motion Motion) ClosestPoint(point Vector3) (closest Vector3, ok bool) {

	dir, moving := motion.Direction()
	if !moving {
		return motion.Current, false
	}

	closest = motion.Previous.Add(dir.Scale(point.Sub(motion.Previous).Dot(dir)))

	return closest, onSegment(motion, closest)

}

// onSegment returns true if the point, assumed to lie on the Motion's line, is strictly between its ends.
func onSegment(motion Motion, point Vector3) bool {
	return motion.Previous.Sub(point).Dot(motion.Current.Sub(point)) < 0
}

// Sphere represents a moving sphere. A Sphere that hasn't moved has Previous equal to Current.
type Sphere struct {
	Radius float32
	Motion
}

// NewSphere returns a new stationary Sphere at the location given.
func NewSphere(radius float32, location Vector3) Sphere {
	return Sphere{
		Radius: radius,
		Motion: Motion{Previous: location, Current: location},
	}
}

func (sphere Sphere) finite() bool {
	return isFinite(sphere.Radius) && sphere.Previous.IsFinite() && sphere.Current.IsFinite()
}

// MovedFrom returns a copy of the Sphere that moved from the previous location given to its current location.
func (sphere Sphere) MovedFrom(previous Vector3) Sphere {
	sphere.Previous = previous
	return sphere
}

// MovedTo returns a copy of the Sphere that moved from its current location to the location given.
func (sphere Sphere) MovedTo(current Vector3) Sphere {
	sphere.Previous = sphere.Current
	sphere.Current = current
	return sphere
}
