package narrowphase

import (
	"testing"

	"github.com/chewxy/math32"
)

func BenchmarkMatrix4MultVec(b *testing.B) {

	b.ReportAllocs()

	mat := NewMatrix4Transform(NewMatrix3Rotate(Vector3{0, 1, 0.2}, 0.24), Vector3{1, 4, -12})
	point := Vector3{3, -1, 2}

	for i := 0; i < b.N; i++ {
		mat.MultVec(point)
	}

}

func TestMatrix4Mult(t *testing.T) {

	// Scale, then turn a quarter around +Z, then move along +X.
	mat := NewMatrix4Scale(2, 2, 2).Mult(NewMatrix3Rotate(WorldBackward, math32.Pi/2).Matrix4()).Mult(NewMatrix4Translate(1, 0, 0))

	if got := mat.MultVec(WorldRight); !got.Equals(Vector3{1, 2, 0}) {
		t.Fatal("expected scale, rotation, and translation to be applied in order; got", got)
	}

	if !NewMatrix4().Mult(mat).Equals(mat) || !mat.Mult(NewMatrix4()).Equals(mat) {
		t.Fatal("multiplying by the identity changed the matrix")
	}

	if got := mat.Translation(); !got.Equals(Vector3{1, 0, 0}) {
		t.Fatal("unexpected translation", got)
	}

}

func TestMatrix3IsFinite(t *testing.T) {

	if !NewMatrix3Rotate(Vector3{1, 2, 3}, 0.5).IsFinite() {
		t.Fatal("expected a rotation matrix to be finite")
	}

	rot := NewMatrix3()
	rot[2][1] = math32.NaN()

	if rot.IsFinite() {
		t.Fatal("expected a matrix holding NaN not to be finite")
	}

}

func TestMatrix3TransposeInverts(t *testing.T) {

	rotations := []Matrix3{
		NewMatrix3(),
		NewMatrix3Rotate(WorldRight, 1.2),
		NewMatrix3Rotate(Vector3{1, 2, 3}, -0.7),
		NewMatrix3RotateFromEuler(Vector3{0.3, 2.1, -1.4}),
	}

	for i, rot := range rotations {

		if !rot.IsOrthonormal() {
			t.Fatal("matrix #", i, "is not orthonormal")
		}

		point := Vector3{3, -2, 7}
		if back := rot.Transposed().MultVec(rot.MultVec(point)); !back.Equals(point) {
			t.Fatal("matrix #", i, ": rotating and rotating back gave", back)
		}

	}

}

func TestMatrix3Rotate(t *testing.T) {

	rot := NewMatrix3Rotate(WorldBackward, math32.Pi/2)

	// Counter-clockwise around +Z, so +X turns into +Y.
	if got := rot.MultVec(WorldRight); !got.Equals(WorldUp) {
		t.Fatal("expected +X rotated around +Z to be +Y; got", got)
	}

	if got := NewMatrix3Rotate(Vector3{}, math32.Pi).MultVec(WorldRight); !got.Equals(Vector3{-1, 0, 0}) {
		t.Fatal("expected a zero axis to rotate around +Y; got", got)
	}

}

func TestMatrix3MatchesMatrix4(t *testing.T) {

	rot := NewMatrix3RotateFromEuler(Vector3{0.5, -0.25, 1})
	transform := NewMatrix4Transform(rot, Vector3{1, 2, 3})

	point := Vector3{-4, 0.5, 2}

	if got, expected := transform.MultVec(point), rot.MultVec(point).Add(Vector3{1, 2, 3}); !got.Equals(expected) {
		t.Fatal("Matrix4 transform", got, "doesn't match Matrix3 rotation plus translation", expected)
	}

	if !transform.Rotation().Equals(rot) {
		t.Fatal("Matrix4 rotation doesn't match the Matrix3 it was built from")
	}

	if !transform.Translation().Equals(Vector3{1, 2, 3}) {
		t.Fatal("unexpected translation", transform.Translation())
	}

}

func TestMatrix3F32(t *testing.T) {

	rot := NewMatrix3RotateFromEuler(Vector3{0.1, 0.2, 0.3})

	if !Matrix3FromF32(rot.F32()).Equals(rot) {
		t.Fatal("f32.Mat3 conversion changed the matrix")
	}

	// f32.Mat3 is row-major: the element at [3*r + c] is row r, column c.
	if rot.F32()[5] != rot[1][2] {
		t.Fatal("f32.Mat3 conversion is not row-major")
	}

}

func TestQuaternionToMatrix3(t *testing.T) {

	axis := Vector3{1, -2, 0.5}.Unit()
	angle := float32(0.8)

	s := math32.Sin(angle / 2)
	quat := NewQuaternion(axis.X*s, axis.Y*s, axis.Z*s, math32.Cos(angle/2))

	if !quat.ToMatrix3().Equals(NewMatrix3Rotate(axis, angle)) {
		t.Fatal("quaternion rotation doesn't match the axis-angle rotation:", quat.ToMatrix3(), NewMatrix3Rotate(axis, angle))
	}

	if !(Quaternion{}).ToMatrix3().IsIdentity() {
		t.Fatal("a zero quaternion should be treated as no rotation")
	}

}
