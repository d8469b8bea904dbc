package narrowphase

import "github.com/chewxy/math32"

// Quaternion represents a rotation, stored as the X, Y and Z imaginary components and the W real component.
type Quaternion struct {
	X, Y, Z, W float32
}

func NewQuaternion(x, y, z, w float32) Quaternion {
	return Quaternion{x, y, z, w}
}

// Dot returns the dot product of the Quaternion and another one.
func (quat Quaternion) Dot(other Quaternion) float32 {
	return quat.X*other.X + quat.Y*other.Y + quat.Z*other.Z + quat.W*other.W
}

// Unit returns a normalized copy of the Quaternion. A zero Quaternion becomes the identity rotation.
func (quat Quaternion) Unit() Quaternion {
	l := math32.Sqrt(quat.Dot(quat))
	if l < UnitEpsilon {
		return Quaternion{W: 1}
	}
	return Quaternion{quat.X / l, quat.Y / l, quat.Z / l, quat.W / l}
}

// ToMatrix3 returns the rotation of the Quaternion as a Matrix3.
func (quat Quaternion) ToMatrix3() Matrix3 {

	q := quat.Unit()
	x, y, z, w := q.X, q.Y, q.Z, q.W

	return Matrix3{
		{1 - 2*(y*y+z*z), 2 * (x*y + z*w), 2 * (x*z - y*w)},
		{2 * (x*y - z*w), 1 - 2*(x*x+z*z), 2 * (y*z + x*w)},
		{2 * (x*z + y*w), 2 * (y*z - x*w), 1 - 2*(x*x+y*y)},
	}

}
