package narrowphase

import (
	"github.com/pkg/errors"
)

var (
	ErrStride = errors.New("vertex stride must be at least 3")
	ErrCount  = errors.New("triangle range must be non-negative and a multiple of 3")
	ErrRange  = errors.New("triangle range exceeds buffer")
	ErrIndex  = errors.New("index out of vertex buffer bounds")
)

// TriangleBatch is a read-only view over a flat vertex buffer, describing a contiguous run of triangles.
// Each vertex is read as three floats (X, Y, Z) at the start of a Stride-sized block. If Indices is nil,
// the vertex buffer is read sequentially; otherwise, Indices selects which vertex to use for each corner.
type TriangleBatch struct {
	Vertices []float32
	// Stride is the number of floats between the start of one vertex and the next. 0 defaults to 3.
	Stride  int
	Indices []uint32
	// Start is the first index (or vertex, if there are no Indices) used by the batch, and Count is how many
	// are used; Count must be a multiple of 3.
	Start int
	Count int
	// Location and Rotation (Euler angles, in radians) place the batch relative to its owning object.
	Location Vector3
	Rotation Vector3
}

// NewTriangleBatch returns a TriangleBatch covering all of the vertices (or indices, if indices is non-nil) provided, with a stride of 3.
func NewTriangleBatch(vertices []float32, indices []uint32) *TriangleBatch {
	batch := &TriangleBatch{
		Vertices: vertices,
		Stride:   3,
		Indices:  indices,
	}
	if indices != nil {
		batch.Count = len(indices)
	} else {
		batch.Count = len(vertices) / 3
	}
	return batch
}

// NewTriangleBatchFromTriangles returns a TriangleBatch holding copies of the Triangles given, without indices.
func NewTriangleBatchFromTriangles(triangles ...Triangle) *TriangleBatch {
	vertices := make([]float32, 0, len(triangles)*9)
	for _, tri := range triangles {
		for i := 0; i < 3; i++ {
			v := tri.Vertex(i)
			vertices = append(vertices, v.X, v.Y, v.Z)
		}
	}
	return NewTriangleBatch(vertices, nil)
}

func (batch *TriangleBatch) stride() int {
	if batch.Stride == 0 {
		return 3
	}
	return batch.Stride
}

// TriangleCount returns the number of triangles described by the batch.
func (batch *TriangleBatch) TriangleCount() int {
	if batch == nil || batch.Count < 0 {
		return 0
	}
	return batch.Count / 3
}

// Validate returns an error if any triangle of the batch cannot be resolved within the buffers.
func (batch *TriangleBatch) Validate() error {

	stride := batch.stride()
	if stride < 3 {
		return errors.Wrapf(ErrStride, "stride %d", stride)
	}

	if batch.Start < 0 || batch.Count < 0 || batch.Count%3 != 0 {
		return errors.Wrapf(ErrCount, "start %d, count %d", batch.Start, batch.Count)
	}

	if batch.Count == 0 {
		return nil
	}

	end := batch.Start + batch.Count

	if batch.Indices == nil {
		if (end-1)*stride+3 > len(batch.Vertices) {
			return errors.Wrapf(ErrRange, "vertices [%d, %d) with stride %d over %d floats", batch.Start, end, stride, len(batch.Vertices))
		}
		return nil
	}

	if end > len(batch.Indices) {
		return errors.Wrapf(ErrRange, "indices [%d, %d) over %d indices", batch.Start, end, len(batch.Indices))
	}

	for i := batch.Start; i < end; i++ {
		if int(batch.Indices[i])*stride+3 > len(batch.Vertices) {
			return errors.Wrapf(ErrIndex, "index %d (at %d)", batch.Indices[i], i)
		}
	}

	return nil

}

// Triangle returns the triangle at the index given, in the batch's local space (i.e. before Location and Rotation are applied).
// If the triangle cannot be resolved within the buffers, ok is false.
func (batch *TriangleBatch) Triangle(index int) (tri Triangle, ok bool) {

	if batch == nil || index < 0 || index >= batch.TriangleCount() {
		return Triangle{}, false
	}

	stride := batch.stride()
	if stride < 3 {
		return Triangle{}, false
	}

	var verts [3]Vector3

	for corner := 0; corner < 3; corner++ {

		pos := batch.Start + index*3 + corner

		vertex := pos
		if batch.Indices != nil {
			if pos < 0 || pos >= len(batch.Indices) {
				return Triangle{}, false
			}
			vertex = int(batch.Indices[pos])
		}

		offset := vertex * stride
		if offset < 0 || offset+3 > len(batch.Vertices) {
			return Triangle{}, false
		}

		verts[corner] = Vector3{batch.Vertices[offset], batch.Vertices[offset+1], batch.Vertices[offset+2]}

	}

	return Triangle{verts[0], verts[1], verts[2]}, true

}

// LocalTransform returns the transform placing the batch relative to its owning object. The rotation is only
// composed in if the batch has a non-zero Rotation.
func (batch *TriangleBatch) LocalTransform() Matrix4 {
	if batch.Rotation.IsZero() {
		return NewMatrix4Translate(batch.Location.X, batch.Location.Y, batch.Location.Z)
	}
	return NewMatrix4Transform(NewMatrix3RotateFromEuler(batch.Rotation), batch.Location)
}

// Mesh places a TriangleBatch in the world using the transform of the object owning it.
type Mesh struct {
	Batch    *TriangleBatch
	Location Vector3
	// Rotation is the orientation of the owning object. A zero Matrix3 is treated as the identity.
	Rotation Matrix3
}

// NewMesh returns a new Mesh for the batch given, placed at the location given with no rotation.
func NewMesh(batch *TriangleBatch, location Vector3) Mesh {
	return Mesh{Batch: batch, Location: location, Rotation: NewMatrix3()}
}

// Transform returns the transform taking vertices from the batch's local space into world space: the batch's own
// transform, followed by the owning object's rotation and location.
func (mesh Mesh) Transform() Matrix4 {
	world := NewMatrix4Transform(orientation(mesh.Rotation), mesh.Location)
	if mesh.Batch == nil {
		return world
	}
	return mesh.Batch.LocalTransform().Mult(world)
}

// WorldTriangle returns the triangle at the index given, in world space.
func (mesh Mesh) WorldTriangle(index int) (Triangle, bool) {
	tri, ok := mesh.Batch.Triangle(index)
	if !ok {
		return Triangle{}, false
	}
	return tri.Transform(mesh.Transform()), true
}

// ContactKind indicates which test reported a Contact.
type ContactKind int

const (
	ContactNone   ContactKind = iota
	ContactPlanar             // The sphere's current position overlaps the triangle's face
	ContactVertex             // The sphere's current position overlaps one of the triangle's vertices
	ContactSwept              // The sphere's motion crossed the triangle's face
)

func (kind ContactKind) String() string {
	switch kind {
	case ContactPlanar:
		return "planar"
	case ContactVertex:
		return "vertex"
	case ContactSwept:
		return "swept"
	}
	return "none"
}

// Contact describes where a Sphere touched a Mesh.
type Contact struct {
	Point    Vector3     // The contact point, in world space
	Normal   Vector3     // The face normal of the touched triangle; zero for a degenerate triangle
	Triangle int         // The index of the touched triangle within the batch
	Kind     ContactKind // Which test produced the contact
}

// SphereMesh tests the Sphere against every triangle of the Mesh, returning the contact closest to the Sphere's
// previous location. A Mesh without a batch, or with an invalid one, is never collided with, and neither is a Sphere
// with a non-finite radius or location.
func SphereMesh(mesh Mesh, sphere Sphere) (Contact, bool) {

	transform, ok := meshTransform(mesh, sphere)
	if !ok {
		return Contact{}, false
	}

	var closest Contact
	closestDist := float32(-1)

	for i := 0; i < mesh.Batch.TriangleCount(); i++ {

		tri, ok := mesh.Batch.Triangle(i)
		if !ok {
			continue
		}

		if contact, hit := sphereTriangle(tri.Transform(transform), sphere); hit {
			dist := contact.Point.DistanceSquaredTo(sphere.Previous)
			if closestDist < 0 || dist < closestDist {
				contact.Triangle = i
				closest = contact
				closestDist = dist
			}
		}

	}

	return closest, closestDist >= 0

}

// SphereMeshFirst tests the Sphere against the triangles of the Mesh in order, returning the contact with the first
// triangle that reports one.
func SphereMeshFirst(mesh Mesh, sphere Sphere) (Contact, bool) {

	transform, ok := meshTransform(mesh, sphere)
	if !ok {
		return Contact{}, false
	}

	for i := 0; i < mesh.Batch.TriangleCount(); i++ {

		tri, ok := mesh.Batch.Triangle(i)
		if !ok {
			continue
		}

		if contact, hit := sphereTriangle(tri.Transform(transform), sphere); hit {
			contact.Triangle = i
			return contact, true
		}

	}

	return Contact{}, false

}

func meshTransform(mesh Mesh, sphere Sphere) (Matrix4, bool) {
	if !sphere.finite() || mesh.Batch == nil || mesh.Batch.TriangleCount() == 0 || mesh.Batch.Validate() != nil {
		return Matrix4{}, false
	}
	return mesh.Transform(), true
}

// sphereTriangle tests a sphere against a single world-space triangle: first for the sphere's current position
// overlapping the face, then for it overlapping a vertex, and finally for its motion crossing the face from the front.
func sphereTriangle(tri Triangle, sphere Sphere) (Contact, bool) {

	plane, hasPlane := newCollisionPlane(tri)

	if hasPlane {
		dist := plane.SignedDistance(sphere.Current)
		if dist <= sphere.Radius && dist >= -sphere.Radius {
			if point := plane.ClosestPoint(sphere.Current); tri.Contains(point) {
				return Contact{Point: point, Normal: plane.Normal, Kind: ContactPlanar}, true
			}
		}
	}

	radiusSquared := sphere.Radius * sphere.Radius

	for i := 0; i < 3; i++ {
		if v := tri.Vertex(i); sphere.Current.DistanceSquaredTo(v) <= radiusSquared {
			return Contact{Point: v, Normal: plane.Normal, Kind: ContactVertex}, true
		}
	}

	if !hasPlane || sphere.IsStationary() {
		return Contact{}, false
	}

	// Only triangles facing the sphere's starting position are swept against.
	if tri.P0.Sub(sphere.Previous).Dot(plane.Normal) > FrontFaceTolerance {
		return Contact{}, false
	}

	if point, ok := plane.Intersect(sphere.Motion); ok && tri.Contains(point) {
		return Contact{Point: point, Normal: plane.Normal, Kind: ContactSwept}, true
	}

	return Contact{}, false

}
