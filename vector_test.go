package narrowphase

import (
	"math/rand"
	"testing"
)

func TestVectorUnitGuardsZero(t *testing.T) {

	if got := (Vector3{}).Unit(); got != (Vector3{}) {
		t.Fatal("expected a zero vector to stay zero when normalized; got", got)
	}

	if got := (Vector3{}).FastUnit(); got.IsFinite() {
		t.Fatal("expected FastUnit to produce non-finite values for a zero vector; got", got)
	}

	if got := (Vector3{0, 3, 4}).Unit(); !got.Equals(Vector3{0, 0.6, 0.8}) {
		t.Fatal("unexpected unit vector", got)
	}

}

func TestVectorCross(t *testing.T) {

	if got := WorldRight.Cross(WorldUp); !got.Equals(WorldBackward) {
		t.Fatal("expected X cross Y to be Z; got", got)
	}

	if got := WorldUp.Cross(WorldRight); !got.Equals(WorldBackward.Invert()) {
		t.Fatal("expected Y cross X to be -Z; got", got)
	}

}

func TestVectorAngle(t *testing.T) {

	if got := WorldRight.Angle(WorldRight.Scale(3)); got > 1e-3 {
		t.Fatal("expected parallel vectors to have no angle between them; got", got)
	}

	if got := WorldRight.Angle(WorldUp); ToDegrees(got) < 89.99 || ToDegrees(got) > 90.01 {
		t.Fatal("expected perpendicular vectors to be 90 degrees apart; got", ToDegrees(got))
	}

}

func TestVectorF32(t *testing.T) {
	vec := Vector3{1, 2, 3}
	if Vector3FromF32(vec.F32()) != vec {
		t.Fatal("f32.Vec3 conversion changed the vector")
	}
}

func BenchmarkVectorMath(b *testing.B) {

	b.StopTimer()

	maxSize := 1200

	vecs := make([]Vector3, 0, maxSize)

	for i := 0; i < maxSize; i++ {
		vecs = append(vecs, Vector3{X: rand.Float32(), Y: rand.Float32(), Z: rand.Float32()})
	}

	b.ReportAllocs()
	b.StartTimer()

	for z := 0; z < b.N; z++ {
		for i := 0; i < maxSize-1; i++ {
			vecs[i].Add(vecs[i+1]).Cross(vecs[i]).Unit()
		}
	}

}
