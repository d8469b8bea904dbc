// Package meshload reads triangle batches for collision testing out of glTF (.gltf and .glb) files.
package meshload

import (
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/solarlune/narrowphase"
)

// Batch is a named TriangleBatch read from a glTF file. Its vertices have the rotation and scale of
// the node they belong to baked in, and its Location is the node's world position.
type Batch struct {
	Name string
	narrowphase.TriangleBatch
}

// Mesh returns a Mesh placing the Batch in the world at the location and with the rotation given.
func (batch *Batch) Mesh(location narrowphase.Vector3, rotation narrowphase.Matrix3) narrowphase.Mesh {
	return narrowphase.Mesh{Batch: &batch.TriangleBatch, Location: location, Rotation: rotation}
}

type options struct {
	logger *zap.Logger
}

// Option alters how a file is loaded.
type Option func(*options)

// WithLogger sets the logger that skipped primitives and loaded batches are reported to.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// LoadFile loads a .gltf or .glb file from the filepath given, returning a Batch for every triangle primitive in its default scene.
func LoadFile(path string, opts ...Option) ([]*Batch, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	return FromDocument(doc, opts...)
}

// LoadReader loads glTF data from the reader given. Buffers must be embedded, as there is no directory to resolve external ones against.
func LoadReader(r io.Reader, opts ...Option) ([]*Batch, error) {
	doc := gltf.NewDocument()
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, errors.Wrap(err, "decoding gltf")
	}
	return FromDocument(doc, opts...)
}

// FromDocument returns a Batch for every triangle primitive of every node in the document's default scene.
func FromDocument(doc *gltf.Document, opts ...Option) ([]*Batch, error) {

	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	l := loader{doc: doc, logger: o.logger, visited: map[int]bool{}}

	for _, root := range rootNodes(doc) {
		if err := l.walk(root, narrowphase.NewMatrix4()); err != nil {
			return nil, err
		}
	}

	return l.batches, nil

}

func rootNodes(doc *gltf.Document) []int {

	if len(doc.Scenes) > 0 {
		scene := doc.Scenes[0]
		if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
			scene = doc.Scenes[*doc.Scene]
		}
		roots := make([]int, 0, len(scene.Nodes))
		for _, n := range scene.Nodes {
			roots = append(roots, int(n))
		}
		return roots
	}

	// Without scenes, every node that isn't somebody's child is a root.
	children := map[int]bool{}
	for _, node := range doc.Nodes {
		for _, child := range node.Children {
			children[int(child)] = true
		}
	}

	roots := []int{}
	for i := range doc.Nodes {
		if !children[i] {
			roots = append(roots, i)
		}
	}
	return roots

}

type loader struct {
	doc     *gltf.Document
	logger  *zap.Logger
	visited map[int]bool
	batches []*Batch
}

func (l *loader) walk(index int, parent narrowphase.Matrix4) error {

	if index < 0 || index >= len(l.doc.Nodes) {
		return errors.Errorf("node index %d out of range", index)
	}

	if l.visited[index] {
		return errors.Errorf("node %d is reachable more than once", index)
	}
	l.visited[index] = true

	node := l.doc.Nodes[index]
	world := nodeTransform(node).Mult(parent)

	if node.Mesh != nil {
		if err := l.addMesh(node, int(*node.Mesh), world); err != nil {
			return err
		}
	}

	for _, child := range node.Children {
		if err := l.walk(int(child), world); err != nil {
			return err
		}
	}

	return nil

}

func (l *loader) addMesh(node *gltf.Node, meshIndex int, world narrowphase.Matrix4) error {

	if meshIndex < 0 || meshIndex >= len(l.doc.Meshes) {
		return errors.Errorf("node %q refers to missing mesh %d", node.Name, meshIndex)
	}

	mesh := l.doc.Meshes[meshIndex]
	basis := world.Rotation()

	name := node.Name
	if name == "" {
		name = mesh.Name
	}

	for i, prim := range mesh.Primitives {

		primName := name
		if len(mesh.Primitives) > 1 {
			primName += "." + strconv.Itoa(i)
		}

		if prim.Mode != gltf.PrimitiveTriangles {
			l.logger.Warn("skipping primitive that isn't a triangle list", zap.String("batch", primName), zap.Int("mode", int(prim.Mode)))
			continue
		}

		posAccessor, ok := prim.Attributes[gltf.POSITION]
		if !ok || int(posAccessor) >= len(l.doc.Accessors) {
			l.logger.Warn("skipping primitive without positions", zap.String("batch", primName))
			continue
		}

		positions, err := modeler.ReadPosition(l.doc, l.doc.Accessors[posAccessor], nil)
		if err != nil {
			return errors.Wrapf(err, "reading positions of %q", primName)
		}

		vertices := make([]float32, 0, len(positions)*3)
		for _, p := range positions {
			v := basis.MultVec(narrowphase.NewVector3(p[0], p[1], p[2]))
			vertices = append(vertices, v.X, v.Y, v.Z)
		}

		var indices []uint32

		if prim.Indices != nil {
			if int(*prim.Indices) >= len(l.doc.Accessors) {
				return errors.Errorf("%q refers to missing index accessor %d", primName, *prim.Indices)
			}
			indices, err = modeler.ReadIndices(l.doc, l.doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return errors.Wrapf(err, "reading indices of %q", primName)
			}
		}

		batch := &Batch{Name: primName, TriangleBatch: *narrowphase.NewTriangleBatch(vertices, indices)}
		batch.Location = world.Translation()

		if extra := batch.Count % 3; extra != 0 {
			l.logger.Warn("dropping incomplete triangle", zap.String("batch", primName), zap.Int("extra", extra))
			batch.Count -= extra
		}

		if err := batch.Validate(); err != nil {
			return errors.Wrapf(err, "batch %q", primName)
		}

		l.logger.Debug("loaded batch", zap.String("batch", primName), zap.Int("triangles", batch.TriangleCount()))

		l.batches = append(l.batches, batch)

	}

	return nil

}

// nodeTransform returns the local transform of a node, either from its matrix or from its translation, rotation and scale.
func nodeTransform(node *gltf.Node) narrowphase.Matrix4 {

	// glTF matrices are column-major, which lines up with the row-major, row-vector layout of a Matrix4.
	matrix := narrowphase.Matrix4{}
	for i, v := range node.Matrix {
		matrix[i/4][i%4] = float32(v)
	}

	if matrix != (narrowphase.Matrix4{}) && !matrix.IsIdentity() {
		return matrix
	}

	scale := narrowphase.NewVector3(float32(node.Scale[0]), float32(node.Scale[1]), float32(node.Scale[2]))
	if scale.IsZero() {
		scale = narrowphase.NewVector3(1, 1, 1)
	}

	rotation := narrowphase.NewQuaternion(float32(node.Rotation[0]), float32(node.Rotation[1]), float32(node.Rotation[2]), float32(node.Rotation[3]))

	return narrowphase.NewMatrix4Scale(scale.X, scale.Y, scale.Z).
		Mult(rotation.ToMatrix3().Matrix4()).
		Mult(narrowphase.NewMatrix4Translate(float32(node.Translation[0]), float32(node.Translation[1]), float32(node.Translation[2])))

}
