package scenario

import (
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/solarlune/narrowphase"
	"github.com/solarlune/narrowphase/meshload"
)

// Scenario is a Config with its bodies resolved, ready to run.
type Scenario struct {
	Checks  []Check
	boxes   map[string]narrowphase.Box
	spheres map[string]narrowphase.Sphere
	meshes  map[string]narrowphase.Mesh
	logger  *zap.Logger
}

// Result is the outcome of a single Check.
type Result struct {
	Check Check
	Hit   bool
	// Contact is set for a hit from a mesh test.
	Contact *narrowphase.Contact
}

// Matched returns true if the Check had no expectation, or if the result met it.
func (result Result) Matched() bool {
	return result.Check.Expect == nil || *result.Check.Expect == result.Hit
}

type buildOptions struct {
	baseDir string
	logger  *zap.Logger
}

// BuildOption alters how a Config is built into a Scenario.
type BuildOption func(*buildOptions)

// WithBaseDir sets the directory that mesh files are loaded relative to.
func WithBaseDir(dir string) BuildOption {
	return func(o *buildOptions) {
		o.baseDir = dir
	}
}

// WithLogger sets the logger used while loading meshes and running checks.
func WithLogger(logger *zap.Logger) BuildOption {
	return func(o *buildOptions) {
		o.logger = logger
	}
}

// Build validates the Config and resolves its bodies into a Scenario.
func (c *Config) Build(opts ...BuildOption) (*Scenario, error) {

	o := buildOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid scenario")
	}

	s := &Scenario{
		Checks:  c.Checks,
		boxes:   map[string]narrowphase.Box{},
		spheres: map[string]narrowphase.Sphere{},
		meshes:  map[string]narrowphase.Mesh{},
		logger:  o.logger,
	}

	files := map[string][]*meshload.Batch{}

	for name, body := range c.Bodies {

		var err error

		switch {
		case body.Box != nil:
			s.boxes[name], err = body.Box.build()
		case body.Sphere != nil:
			s.spheres[name], err = body.Sphere.build()
		case body.Mesh != nil:
			s.meshes[name], err = body.Mesh.build(o, files)
		}

		if err != nil {
			return nil, errors.Wrapf(err, "body %q", name)
		}

	}

	return s, nil

}

func (b *BoxConfig) build() (narrowphase.Box, error) {

	location, err := b.Location.vector()
	if err != nil {
		return narrowphase.Box{}, errors.Wrap(err, "location")
	}

	offset, err := b.Offset.vector()
	if err != nil {
		return narrowphase.Box{}, errors.Wrap(err, "offset")
	}

	halfSize, err := b.HalfSize.vector()
	if err != nil {
		return narrowphase.Box{}, errors.Wrap(err, "half_size")
	}

	rotation, err := b.Rotation.rotation()
	if err != nil {
		return narrowphase.Box{}, errors.Wrap(err, "rotation")
	}

	box := narrowphase.Box{HalfSize: halfSize, Offset: offset, Location: location, Rotation: rotation}
	if !box.Valid() {
		return narrowphase.Box{}, errors.Errorf("half_size %v must not be negative", b.HalfSize)
	}

	return box, nil

}

func (sc *SphereConfig) build() (narrowphase.Sphere, error) {

	if sc.Radius < 0 {
		return narrowphase.Sphere{}, errors.Errorf("radius %f must not be negative", sc.Radius)
	}

	current, err := sc.Current.vector()
	if err != nil {
		return narrowphase.Sphere{}, errors.Wrap(err, "current")
	}

	sphere := narrowphase.NewSphere(sc.Radius, current)

	if len(sc.Previous) > 0 {
		previous, err := sc.Previous.vector()
		if err != nil {
			return narrowphase.Sphere{}, errors.Wrap(err, "previous")
		}
		sphere = sphere.MovedFrom(previous)
	}

	return sphere, nil

}

func (m *MeshConfig) build(o buildOptions, files map[string][]*meshload.Batch) (narrowphase.Mesh, error) {

	location, err := m.Location.vector()
	if err != nil {
		return narrowphase.Mesh{}, errors.Wrap(err, "location")
	}

	rotation, err := m.Rotation.rotation()
	if err != nil {
		return narrowphase.Mesh{}, errors.Wrap(err, "rotation")
	}

	if m.File == "" {

		triangles := make([]narrowphase.Triangle, 0, len(m.Triangles))

		for i, tri := range m.Triangles {
			var verts [3]narrowphase.Vector3
			for j, v := range tri {
				if verts[j], err = v.vector(); err != nil {
					return narrowphase.Mesh{}, errors.Wrapf(err, "triangle %d", i)
				}
			}
			triangles = append(triangles, narrowphase.NewTriangle(verts[0], verts[1], verts[2]))
		}

		return narrowphase.Mesh{
			Batch:    narrowphase.NewTriangleBatchFromTriangles(triangles...),
			Location: location,
			Rotation: rotation,
		}, nil

	}

	path := m.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(o.baseDir, path)
	}

	batches, ok := files[path]
	if !ok {
		batches, err = meshload.LoadFile(path, meshload.WithLogger(o.logger))
		if err != nil {
			return narrowphase.Mesh{}, err
		}
		files[path] = batches
	}

	for _, batch := range batches {
		if m.Batch == "" || batch.Name == m.Batch {
			return batch.Mesh(location, rotation), nil
		}
	}

	return narrowphase.Mesh{}, errors.Errorf("no batch named %q in %s", m.Batch, path)

}

// Run runs every Check of the Scenario, in order.
func (s *Scenario) Run() []Result {

	results := make([]Result, 0, len(s.Checks))

	for _, check := range s.Checks {

		result := Result{Check: check}

		switch check.Test {
		case TestAABB:
			result.Hit = narrowphase.AABBAABB(s.boxes[check.A], s.boxes[check.B])
		case TestOBB:
			result.Hit = narrowphase.OBBOBB(s.boxes[check.A], s.boxes[check.B])
		case TestSphereSphere:
			result.Hit = narrowphase.SphereSphere(s.spheres[check.A], s.spheres[check.B])
		case TestSphereAABB:
			result.Hit = narrowphase.SphereAABB(s.boxes[check.A], s.spheres[check.B])
		case TestSphereOBB:
			result.Hit = narrowphase.SphereOBB(s.boxes[check.A], s.spheres[check.B])
		case TestSphereMesh, TestSphereMeshFirst:
			test := narrowphase.SphereMesh
			if check.Test == TestSphereMeshFirst {
				test = narrowphase.SphereMeshFirst
			}
			if contact, ok := test(s.meshes[check.A], s.spheres[check.B]); ok {
				result.Hit = true
				result.Contact = &contact
			}
		}

		s.logger.Debug("ran check", zap.String("check", check.Name), zap.String("test", check.Test), zap.Bool("hit", result.Hit))

		results = append(results, result)

	}

	return results

}
