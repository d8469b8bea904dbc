package narrowphase

import "github.com/chewxy/math32"

// Matrix4 is an affine transform: the upper 3x3 rotates (and possibly scales), and the fourth row translates.
// Like Matrix3, a Matrix4 is row-major and applied to row vectors, so it places a Mesh's vertices in the world.
type Matrix4 [4][4]float32

// NewMatrix4 returns a new identity Matrix4.
func NewMatrix4() Matrix4 {
	return Matrix4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// NewMatrix4Translate returns a Matrix4 that only moves points by x, y, and z.
func NewMatrix4Translate(x, y, z float32) Matrix4 {
	mat := NewMatrix4()
	mat.SetTranslation(Vector3{x, y, z})
	return mat
}

// NewMatrix4Scale returns a Matrix4 that only scales points on each axis; 1, 1, 1 leaves them unchanged.
func NewMatrix4Scale(x, y, z float32) Matrix4 {
	mat := NewMatrix4()
	mat[0][0], mat[1][1], mat[2][2] = x, y, z
	return mat
}

// NewMatrix4Transform returns a Matrix4 that rotates by the rotation given and then translates by the location given.
func NewMatrix4Transform(rotation Matrix3, location Vector3) Matrix4 {
	mat := rotation.Matrix4()
	mat.SetTranslation(location)
	return mat
}

// Translation returns the translation portion of the Matrix4.
func (matrix Matrix4) Translation() Vector3 {
	return Vector3{X: matrix[3][0], Y: matrix[3][1], Z: matrix[3][2]}
}

// SetTranslation sets the translation portion of the Matrix4.
func (matrix *Matrix4) SetTranslation(vec Vector3) {
	matrix[3][0], matrix[3][1], matrix[3][2] = vec.X, vec.Y, vec.Z
}

// Rotation returns the upper 3x3 (rotation and scale) portion of the Matrix4.
func (matrix Matrix4) Rotation() Matrix3 {
	var rot Matrix3
	for i := range rot {
		copy(rot[i][:], matrix[i][:3])
	}
	return rot
}

// MultVec transforms the point given: it's rotated and scaled by the upper 3x3, then translated.
func (matrix Matrix4) MultVec(point Vector3) Vector3 {
	return matrix.Rotation().MultVec(point).Add(matrix.Translation())
}

// Mult combines two transforms into one; the calling Matrix4 is applied first, then the other.
func (matrix Matrix4) Mult(other Matrix4) Matrix4 {

	var out Matrix4

	for row := range out {
		for col := range out[row] {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += matrix[row][k] * other[k][col]
			}
			out[row][col] = sum
		}
	}

	return out

}

// Equals returns true if every element of the two matrices is within 0.0001 of the other.
func (matrix Matrix4) Equals(other Matrix4) bool {
	for row := range matrix {
		for col := range matrix[row] {
			if math32.Abs(matrix[row][col]-other[row][col]) > 0.0001 {
				return false
			}
		}
	}
	return true
}

// IsIdentity returns true if the Matrix4 leaves points where they are.
func (matrix Matrix4) IsIdentity() bool {
	return matrix.Equals(NewMatrix4())
}
