// Package scenario describes collision checks between named bodies in YAML files, and runs them.
package scenario

import (
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/solarlune/narrowphase"
)

// The test names a Check can use.
const (
	TestAABB            = "aabb"
	TestOBB             = "obb"
	TestSphereSphere    = "sphere-sphere"
	TestSphereAABB      = "sphere-aabb"
	TestSphereOBB       = "sphere-obb"
	TestSphereMesh      = "sphere-mesh"
	TestSphereMeshFirst = "sphere-mesh-first"
)

// Config is the contents of a scenario file: a set of named bodies, and the checks to run between them.
type Config struct {
	Bodies map[string]BodyConfig `yaml:"bodies"`
	Checks []Check               `yaml:"checks"`
}

// BodyConfig describes a single body; exactly one of Box, Sphere, or Mesh must be set.
type BodyConfig struct {
	Box    *BoxConfig    `yaml:"box,omitempty"`
	Sphere *SphereConfig `yaml:"sphere,omitempty"`
	Mesh   *MeshConfig   `yaml:"mesh,omitempty"`
}

type BoxConfig struct {
	Location Vec `yaml:"location"`
	Offset   Vec `yaml:"offset,omitempty"`
	HalfSize Vec `yaml:"half_size"`
	// Rotation is in Euler angles, in degrees.
	Rotation Vec `yaml:"rotation,omitempty"`
}

type SphereConfig struct {
	Radius   float32 `yaml:"radius"`
	Current  Vec     `yaml:"current"`
	Previous Vec     `yaml:"previous,omitempty"` // Defaults to Current
}

// MeshConfig describes a triangle mesh, either inline through Triangles, or as a batch loaded from a glTF File.
type MeshConfig struct {
	Location Vec `yaml:"location,omitempty"`
	// Rotation is in Euler angles, in degrees.
	Rotation  Vec      `yaml:"rotation,omitempty"`
	Triangles [][3]Vec `yaml:"triangles,omitempty"`
	File      string   `yaml:"file,omitempty"`
	// Batch is the name of the batch to use out of File; if empty, the first batch is used.
	Batch string `yaml:"batch,omitempty"`
}

// Check runs a test between bodies A and B. For sphere tests against boxes or meshes, A is the box or mesh
// and B is the sphere; for sphere-sphere, A is the target and B is the mover.
type Check struct {
	Name   string `yaml:"name"`
	Test   string `yaml:"test"`
	A      string `yaml:"a"`
	B      string `yaml:"b"`
	Expect *bool  `yaml:"expect,omitempty"`
}

// Vec is a vector written as a three element sequence. An empty Vec is zero.
type Vec []float32

func (v Vec) vector() (narrowphase.Vector3, error) {
	switch len(v) {
	case 0:
		return narrowphase.Vector3{}, nil
	case 3:
		return narrowphase.NewVector3(v[0], v[1], v[2]), nil
	}
	return narrowphase.Vector3{}, errors.Errorf("expected 3 components, got %d", len(v))
}

func (v Vec) rotation() (narrowphase.Matrix3, error) {
	euler, err := v.vector()
	if err != nil {
		return narrowphase.Matrix3{}, err
	}
	return narrowphase.NewMatrix3RotateFromEuler(narrowphase.NewVector3(
		narrowphase.ToRadians(euler.X),
		narrowphase.ToRadians(euler.Y),
		narrowphase.ToRadians(euler.Z),
	)), nil
}

// Load decodes a scenario Config from YAML.
func Load(r io.Reader) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, errors.Wrap(err, "decoding scenario")
	}
	return &c, nil
}

// kinds lists the body kinds a test expects for A and B.
var kinds = map[string][2]string{
	TestAABB:            {"box", "box"},
	TestOBB:             {"box", "box"},
	TestSphereSphere:    {"sphere", "sphere"},
	TestSphereAABB:      {"box", "sphere"},
	TestSphereOBB:       {"box", "sphere"},
	TestSphereMesh:      {"mesh", "sphere"},
	TestSphereMeshFirst: {"mesh", "sphere"},
}

func (b BodyConfig) kind() string {
	switch {
	case b.Box != nil && b.Sphere == nil && b.Mesh == nil:
		return "box"
	case b.Sphere != nil && b.Box == nil && b.Mesh == nil:
		return "sphere"
	case b.Mesh != nil && b.Box == nil && b.Sphere == nil:
		return "mesh"
	}
	return ""
}

// Validate returns every problem found in the Config, combined into one error.
func (c *Config) Validate() error {

	var err error

	names := make([]string, 0, len(c.Bodies))
	for name := range c.Bodies {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		body := c.Bodies[name]
		if body.kind() == "" {
			err = multierr.Append(err, fmt.Errorf("body %q must be exactly one of box, sphere, or mesh", name))
			continue
		}
		if m := body.Mesh; m != nil && (len(m.Triangles) == 0) == (m.File == "") {
			err = multierr.Append(err, fmt.Errorf("mesh %q must have either triangles or a file", name))
		}
	}

	for i, check := range c.Checks {

		label := check.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i)
		}

		expected, ok := kinds[check.Test]
		if !ok {
			err = multierr.Append(err, fmt.Errorf("check %s: unknown test %q", label, check.Test))
			continue
		}

		for j, name := range []string{check.A, check.B} {
			body, ok := c.Bodies[name]
			if !ok {
				err = multierr.Append(err, fmt.Errorf("check %s: unknown body %q", label, name))
				continue
			}
			if kind := body.kind(); kind != "" && kind != expected[j] {
				err = multierr.Append(err, fmt.Errorf("check %s: %s test needs a %s, but %q is a %s", label, check.Test, expected[j], name, kind))
			}
		}

	}

	return err

}
