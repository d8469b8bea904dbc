package narrowphase

import (
	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"
)

// UnitEpsilon is the length under which Unit() considers a Vector3 to be zero and leaves it untouched.
const UnitEpsilon = 1e-8

// WorldRight represents a unit vector in the global direction of +X (right).
var WorldRight = Vector3{X: 1}

// WorldUp represents a unit vector in the global direction of +Y (upwards).
var WorldUp = Vector3{Y: 1}

// WorldBackward represents a unit vector in the global direction of +Z (backwards, towards the viewer).
var WorldBackward = Vector3{Z: 1}

// Vector3 represents a 3D Vector, which can be used for positions, directions, velocities and so on.
// Any Vector3 function that modifies the calling Vector3 returns a modified copy, meaning you can do method-chaining easily.
// Vectors are most efficient when copied, so try not to store pointers to them.
type Vector3 struct {
	X float32 // The X (1st) component of the Vector3
	Y float32 // The Y (2nd) component of the Vector3
	Z float32 // The Z (3rd) component of the Vector3
}

// NewVector3 creates a new Vector3 with the specified x, y, and z components.
func NewVector3(x, y, z float32) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Vector3FromF32 converts an x/image f32.Vec3 to a Vector3.
func Vector3FromF32(v f32.Vec3) Vector3 {
	return Vector3{X: v[0], Y: v[1], Z: v[2]}
}

// F32 returns the Vector3 as an x/image f32.Vec3.
func (vec Vector3) F32() f32.Vec3 {
	return f32.Vec3{vec.X, vec.Y, vec.Z}
}

// Add returns a copy of the calling vector, added together with the other Vector3 provided.
func (vec Vector3) Add(other Vector3) Vector3 {
	vec.X += other.X
	vec.Y += other.Y
	vec.Z += other.Z
	return vec
}

// Sub returns a copy of the calling Vector3, with the other Vector3 subtracted from it.
func (vec Vector3) Sub(other Vector3) Vector3 {
	vec.X -= other.X
	vec.Y -= other.Y
	vec.Z -= other.Z
	return vec
}

// Cross returns a new Vector3, indicating the cross product of the calling Vector3 and the provided Other Vector3.
func (vec Vector3) Cross(other Vector3) Vector3 {

	ogVecY := vec.Y
	ogVecZ := vec.Z

	vec.Z = vec.X*other.Y - other.X*vec.Y
	vec.Y = ogVecZ*other.X - other.Z*vec.X
	vec.X = ogVecY*other.Z - other.Y*ogVecZ

	return vec

}

func (vec Vector3) Invert() Vector3 {
	vec.X = -vec.X
	vec.Y = -vec.Y
	vec.Z = -vec.Z
	return vec
}

// Abs returns a copy of the Vector3 with every component made non-negative.
func (vec Vector3) Abs() Vector3 {
	vec.X = math32.Abs(vec.X)
	vec.Y = math32.Abs(vec.Y)
	vec.Z = math32.Abs(vec.Z)
	return vec
}

// Magnitude returns the length of the Vector3.
func (vec Vector3) Magnitude() float32 {
	return math32.Sqrt(vec.X*vec.X + vec.Y*vec.Y + vec.Z*vec.Z)
}

// MagnitudeSquared returns the squared length of the Vector3; this is faster than Magnitude() as it avoids using math32.Sqrt().
func (vec Vector3) MagnitudeSquared() float32 {
	return vec.X*vec.X + vec.Y*vec.Y + vec.Z*vec.Z
}

func (vec Vector3) DistanceTo(other Vector3) float32 {
	return vec.Sub(other).Magnitude()
}

func (vec Vector3) DistanceSquaredTo(other Vector3) float32 {
	return vec.Sub(other).MagnitudeSquared()
}

// Unit returns a copy of the Vector3, normalized (set to be of unit length).
// A Vector3 shorter than UnitEpsilon is returned unmodified, so Unit never produces NaN.
func (vec Vector3) Unit() Vector3 {
	l := vec.Magnitude()
	if l < UnitEpsilon {
		// If it's 0, then don't modify the vector
		return vec
	}
	vec.X, vec.Y, vec.Z = vec.X/l, vec.Y/l, vec.Z/l
	return vec
}

// FastUnit normalizes the Vector3 without guarding against a zero length; the result of normalizing a zero Vector3 is NaN.
func (vec Vector3) FastUnit() Vector3 {
	l := 1 / vec.Magnitude()
	vec.X, vec.Y, vec.Z = vec.X*l, vec.Y*l, vec.Z*l
	return vec
}

// Scale scales a Vector3 by the given scalar.
func (vec Vector3) Scale(scalar float32) Vector3 {
	vec.X *= scalar
	vec.Y *= scalar
	vec.Z *= scalar
	return vec
}

// Dot returns the dot product of a Vector3 and another Vector3.
func (vec Vector3) Dot(other Vector3) float32 {
	return vec.X*other.X + vec.Y*other.Y + vec.Z*other.Z
}

// Lerp returns a copy of the Vector3 moved towards the other Vector3 by the percentage given (0 to 1).
func (vec Vector3) Lerp(other Vector3, percentage float32) Vector3 {
	return vec.Add(other.Sub(vec).Scale(percentage))
}

// Angle returns the angle in radians between the calling Vector3 and the provided other Vector3.
func (vec Vector3) Angle(other Vector3) float32 {
	return math32.Acos(clamp(vec.Unit().Dot(other.Unit()), -1, 1))
}

// Get returns the component of the Vector3 indicated by the axis index (0 = X, 1 = Y, 2 = Z).
func (vec Vector3) Get(axis int) float32 {
	switch axis {
	case 0:
		return vec.X
	case 1:
		return vec.Y
	}
	return vec.Z
}

// Equals returns true if the two Vectors are close enough in all values.
func (vec Vector3) Equals(other Vector3) bool {

	eps := float32(1e-4)

	if math32.Abs(vec.X-other.X) > eps || math32.Abs(vec.Y-other.Y) > eps || math32.Abs(vec.Z-other.Z) > eps {
		return false
	}

	return true

}

// IsZero returns true if the values in the Vector3 are extremely close to 0.
func (vec Vector3) IsZero() bool {
	return vec.MagnitudeSquared() < UnitEpsilon*UnitEpsilon
}

// IsFinite returns true if no component of the Vector3 is NaN or infinite.
func (vec Vector3) IsFinite() bool {
	return isFinite(vec.X) && isFinite(vec.Y) && isFinite(vec.Z)
}
