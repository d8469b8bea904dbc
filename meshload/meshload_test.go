package meshload

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/solarlune/narrowphase"
)

// A single indexed triangle, (0, 0, 0) - (1, 0, 0) - (0, 1, 0), used by a "Floor" node that is scaled by 2 and
// turned a quarter turn around +X, under a "Parent" node that is moved 10 units along +Z.
// A second mesh holds the same positions as a point cloud.
const floorGLTF = `{
	"asset": {"version": "2.0"},
	"scene": 0,
	"scenes": [{"nodes": [0]}],
	"nodes": [
		{"name": "Parent", "translation": [0, 0, 10], "children": [1, 2]},
		{"name": "Floor", "mesh": 0, "rotation": [0.70710677, 0, 0, 0.70710677], "scale": [2, 2, 2]},
		{"name": "Dust", "mesh": 1}
	],
	"meshes": [
		{"name": "FloorMesh", "primitives": [{"attributes": {"POSITION": 0}, "indices": 1}]},
		{"name": "DustMesh", "primitives": [{"attributes": {"POSITION": 0}, "mode": 0}]}
	],
	"accessors": [
		{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [1, 1, 0]},
		{"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"}
	],
	"bufferViews": [
		{"buffer": 0, "byteOffset": 0, "byteLength": 36},
		{"buffer": 0, "byteOffset": 36, "byteLength": 6}
	],
	"buffers": [
		{"byteLength": 42, "uri": "data:application/octet-stream;base64,AAAAAAAAAAAAAAAAAACAPwAAAAAAAAAAAAAAAAAAgD8AAAAAAAABAAIA"}
	]
}`

func TestLoadReader(t *testing.T) {

	core, logs := observer.New(zapcore.DebugLevel)

	batches, err := LoadReader(strings.NewReader(floorGLTF), WithLogger(zap.New(core)))
	require.NoError(t, err)
	require.Len(t, batches, 1)

	floor := batches[0]
	assert.Equal(t, "Floor", floor.Name)
	assert.Equal(t, 1, floor.TriangleCount())
	assert.True(t, floor.Location.Equals(narrowphase.NewVector3(0, 0, 10)), "location %v", floor.Location)

	tri, ok := floor.Triangle(0)
	require.True(t, ok)
	assert.True(t, tri.P1.Equals(narrowphase.NewVector3(2, 0, 0)), "scaled vertex %v", tri.P1)
	assert.True(t, tri.P2.Equals(narrowphase.NewVector3(0, 0, 2)), "turned vertex %v", tri.P2)

	assert.Equal(t, 1, logs.FilterMessage("skipping primitive that isn't a triangle list").Len())
	assert.Equal(t, 1, logs.FilterMessage("loaded batch").Len())

}

func TestLoadedBatchCollides(t *testing.T) {

	batches, err := LoadReader(strings.NewReader(floorGLTF))
	require.NoError(t, err)
	require.NotEmpty(t, batches)

	mesh := batches[0].Mesh(narrowphase.Vector3{}, narrowphase.NewMatrix3())

	contact, ok := narrowphase.SphereMesh(mesh, narrowphase.NewSphere(0.1, narrowphase.NewVector3(0.4, 0.05, 10.4)))
	require.True(t, ok)
	assert.True(t, contact.Point.Equals(narrowphase.NewVector3(0.4, 0, 10.4)), "contact %v", contact.Point)

	_, ok = narrowphase.SphereMesh(mesh, narrowphase.NewSphere(0.1, narrowphase.NewVector3(0.4, 0.05, 0.4)))
	assert.False(t, ok)

}

func TestLoadReaderErrors(t *testing.T) {

	_, err := LoadReader(strings.NewReader("not gltf"))
	assert.Error(t, err)

	broken := strings.Replace(floorGLTF, `"mesh": 0,`, `"mesh": 7,`, 1)
	_, err = LoadReader(strings.NewReader(broken))
	assert.Error(t, err)

	_, err = LoadFile("does/not/exist.gltf")
	assert.Error(t, err)

}
