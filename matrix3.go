package narrowphase

import (
	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"
)

// Matrix3 represents a 3x3 rotation matrix. A Matrix3 is row-major, and each row is one of the local axes
// expressed in world space (i.e. the local X axis is matrix[0]).
// Rotation matrices are orthonormal, so the transpose of a Matrix3 is its inverse.
type Matrix3 [3][3]float32

// NewMatrix3 returns a new identity Matrix3.
func NewMatrix3() Matrix3 {
	return Matrix3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// NewMatrix3Rotate returns a new Matrix3 designed to rotate by the angle given (in radians) along the axis given.
// This rotation works as though you pierced the object through by the axis, and then rotated it
// counter-clockwise by the angle in radians.
func NewMatrix3Rotate(axis Vector3, angle float32) Matrix3 {

	// Default to spinning on +Y axis if there is no valid axis
	if axis.IsZero() {
		axis = WorldUp
	}

	mat := NewMatrix3()
	vector := axis.Unit()
	s := math32.Sin(angle)
	c := math32.Cos(angle)
	m := 1 - c

	mat[0][0] = m*vector.X*vector.X + c
	mat[0][1] = m*vector.X*vector.Y + vector.Z*s
	mat[0][2] = m*vector.Z*vector.X - vector.Y*s

	mat[1][0] = m*vector.X*vector.Y - vector.Z*s
	mat[1][1] = m*vector.Y*vector.Y + c
	mat[1][2] = m*vector.Y*vector.Z + vector.X*s

	mat[2][0] = m*vector.Z*vector.X + vector.Y*s
	mat[2][1] = m*vector.Y*vector.Z - vector.X*s
	mat[2][2] = m*vector.Z*vector.Z + c

	return mat

}

// NewMatrix3RotateFromEuler creates a rotation Matrix3 from the euler values (in radians) contained within the Vector3.
// The rotation is applied around X first, then Y, then Z.
func NewMatrix3RotateFromEuler(euler Vector3) Matrix3 {
	return NewMatrix3Rotate(WorldRight, euler.X).
		Mult(NewMatrix3Rotate(WorldUp, euler.Y)).
		Mult(NewMatrix3Rotate(WorldBackward, euler.Z))
}

// Matrix3FromF32 converts a row-major x/image f32.Mat3 to a Matrix3.
func Matrix3FromF32(m f32.Mat3) Matrix3 {
	return Matrix3{
		{m[0], m[1], m[2]},
		{m[3], m[4], m[5]},
		{m[6], m[7], m[8]},
	}
}

// F32 returns the Matrix3 as a row-major x/image f32.Mat3.
func (matrix Matrix3) F32() f32.Mat3 {
	return f32.Mat3{
		matrix[0][0], matrix[0][1], matrix[0][2],
		matrix[1][0], matrix[1][1], matrix[1][2],
		matrix[2][0], matrix[2][1], matrix[2][2],
	}
}

// Row returns the indiced row (local axis) of the Matrix3.
func (matrix Matrix3) Row(rowIndex int) Vector3 {
	return Vector3{X: matrix[rowIndex][0], Y: matrix[rowIndex][1], Z: matrix[rowIndex][2]}
}

// Transposed returns a transposed copy of the Matrix3. For orthonormal matrices, like rotation matrices, this is equivalent to inverting it.
func (matrix Matrix3) Transposed() Matrix3 {

	new := Matrix3{}

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			new[i][j] = matrix[j][i]
		}
	}

	return new

}

// Mult multiplies a Matrix3 by another provided Matrix3 - this effectively combines them, with the calling Matrix3's rotation applied first.
func (matrix Matrix3) Mult(other Matrix3) Matrix3 {

	newMat := Matrix3{}

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			newMat[i][j] = matrix[i][0]*other[0][j] + matrix[i][1]*other[1][j] + matrix[i][2]*other[2][j]
		}
	}

	return newMat

}

// MultVec rotates the vector provided from the Matrix3's local space into world space.
func (matrix Matrix3) MultVec(vect Vector3) Vector3 {
	return Vector3{
		X: matrix[0][0]*vect.X + matrix[1][0]*vect.Y + matrix[2][0]*vect.Z,
		Y: matrix[0][1]*vect.X + matrix[1][1]*vect.Y + matrix[2][1]*vect.Z,
		Z: matrix[0][2]*vect.X + matrix[1][2]*vect.Y + matrix[2][2]*vect.Z,
	}
}

// Equals returns true if the matrix equals the same values in the provided Other Matrix3.
func (matrix Matrix3) Equals(other Matrix3) bool {
	eps := float32(0.0001)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math32.Abs(matrix[i][j]-other[i][j]) > eps {
				return false
			}
		}
	}
	return true
}

// IsIdentity returns true if the matrix is an unmodified identity matrix.
func (matrix Matrix3) IsIdentity() bool {
	return matrix.Equals(NewMatrix3())
}

// IsOrthonormal returns true if the Matrix3's rows are unit length and perpendicular to one another.
func (matrix Matrix3) IsOrthonormal() bool {
	return matrix.Mult(matrix.Transposed()).IsIdentity()
}

// IsFinite returns true if no element of the Matrix3 is NaN or infinite.
func (matrix Matrix3) IsFinite() bool {
	for i := range matrix {
		if !matrix.Row(i).IsFinite() {
			return false
		}
	}
	return true
}

// Matrix4 returns the rotation as the upper 3x3 portion of an otherwise identity Matrix4.
func (matrix Matrix3) Matrix4() Matrix4 {
	mat := NewMatrix4()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			mat[i][j] = matrix[i][j]
		}
	}
	return mat
}
