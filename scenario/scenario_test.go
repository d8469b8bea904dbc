package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/solarlune/narrowphase"
)

func loadDemo(t *testing.T) *Config {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", "demo.yaml"))
	require.NoError(t, err)
	defer f.Close()
	c, err := Load(f)
	require.NoError(t, err)
	return c
}

func TestLoad(t *testing.T) {

	c := loadDemo(t)

	assert.Len(t, c.Bodies, 11)
	assert.Len(t, c.Checks, 9)

	crate := c.Bodies["crate"]
	require.NotNil(t, crate.Box)
	assert.Equal(t, Vec{1, 1, 1}, crate.Box.HalfSize)

	bullet := c.Bodies["bullet"]
	require.NotNil(t, bullet.Sphere)
	assert.Equal(t, float32(0.25), bullet.Sphere.Radius)
	assert.Equal(t, Vec{-5, 0.5, 0}, bullet.Sphere.Previous)

	assert.NoError(t, c.Validate())

}

func TestLoadUnknownField(t *testing.T) {
	_, err := Load(strings.NewReader("bodies:\n  crate:\n    box:\n      size: [1, 1, 1]\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {

	c, err := Load(strings.NewReader(`
bodies:
  both:
    box: {half_size: [1, 1, 1]}
    sphere: {radius: 1}
  empty: {}
  hollow:
    mesh: {}
  crate:
    box: {half_size: [1, 1, 1]}
  ball:
    sphere: {radius: 1}
checks:
  - {name: unknown test, test: capsule, a: crate, b: ball}
  - {name: missing body, test: aabb, a: crate, b: nothing}
  - {name: wrong kind, test: sphere-aabb, a: ball, b: crate}
  - {name: fine, test: sphere-aabb, a: crate, b: ball}
`))
	require.NoError(t, err)

	err = c.Validate()
	require.Error(t, err)

	errs := multierr.Errors(err)
	// both, empty, hollow, the unknown test, the missing body, and both halves of the wrong kind.
	assert.Len(t, errs, 7)

	assert.Contains(t, err.Error(), `body "both"`)
	assert.Contains(t, err.Error(), `mesh "hollow"`)
	assert.Contains(t, err.Error(), `unknown test "capsule"`)
	assert.Contains(t, err.Error(), `unknown body "nothing"`)

}

func TestBuildAndRun(t *testing.T) {

	s, err := loadDemo(t).Build(WithBaseDir("testdata"))
	require.NoError(t, err)

	results := s.Run()
	require.Len(t, results, 9)

	for _, result := range results {
		assert.True(t, result.Matched(), "check %q: hit %t", result.Check.Name, result.Hit)
	}

	pebble := results[6]
	require.NotNil(t, pebble.Contact)
	assert.Equal(t, narrowphase.ContactPlanar, pebble.Contact.Kind)
	assert.True(t, pebble.Contact.Point.Equals(narrowphase.Vector3{}), "contact %v", pebble.Contact.Point)

	riser := results[7]
	require.NotNil(t, riser.Contact)
	assert.Equal(t, narrowphase.ContactSwept, riser.Contact.Kind)
	assert.True(t, riser.Contact.Point.Equals(narrowphase.NewVector3(0.4, 0, 10.4)), "contact %v", riser.Contact.Point)

	assert.Nil(t, results[8].Contact)

}

func TestBuildMissingBatch(t *testing.T) {

	c := &Config{
		Bodies: map[string]BodyConfig{
			"floor": {Mesh: &MeshConfig{File: "floor.gltf", Batch: "Ceiling"}},
		},
	}

	_, err := c.Build(WithBaseDir("testdata"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no batch named "Ceiling"`)

}

func TestBuildBadVector(t *testing.T) {

	c := &Config{
		Bodies: map[string]BodyConfig{
			"crate": {Box: &BoxConfig{HalfSize: Vec{1, 1}}},
		},
	}

	_, err := c.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "half_size")

}

func TestResultMatched(t *testing.T) {

	yes := true

	assert.True(t, Result{Check: Check{}}.Matched())
	assert.True(t, Result{Check: Check{Expect: &yes}, Hit: true}.Matched())
	assert.False(t, Result{Check: Check{Expect: &yes}}.Matched())

}
