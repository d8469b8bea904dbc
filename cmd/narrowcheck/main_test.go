package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	// Keep exit codes from ending the test binary.
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"narrowcheck", "--log-level", "error"}, args...))
	return out.String(), err
}

func TestRun(t *testing.T) {

	out, err := runApp(t, "run", "--fail-on-mismatch", filepath.Join("..", "..", "scenario", "testdata", "demo.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 9, strings.Count(out, "ok "), out)
	assert.NotContains(t, out, "MISMATCH")
	assert.Contains(t, out, "turned crate as an OBB")

}

func TestRunMismatch(t *testing.T) {

	path := filepath.Join(t.TempDir(), "wrong.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
bodies:
  a: {box: {half_size: [1, 1, 1]}}
  b: {box: {location: [5, 0, 0], half_size: [1, 1, 1]}}
checks:
  - {name: apart, test: aabb, a: a, b: b, expect: true}
`), 0o600))

	out, err := runApp(t, "run", path)
	require.NoError(t, err)
	assert.Contains(t, out, "MISMATCH")

	_, err = runApp(t, "run", "--fail-on-mismatch", path)
	require.Error(t, err)

	var exit cli.ExitCoder
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 2, exit.ExitCode())

}

func TestValidate(t *testing.T) {

	out, err := runApp(t, "validate", filepath.Join("..", "..", "scenario", "testdata", "demo.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "11 bodies, 9 checks")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("checks:\n  - {test: aabb, a: x, b: y}\n"), 0o600))

	_, err = runApp(t, "validate", path)
	assert.Error(t, err)

	_, err = runApp(t, "validate")
	assert.Error(t, err)

}

func TestBadLogLevel(t *testing.T) {
	_, err := runApp(t, "--log-level", "loud", "validate", "x.yaml")
	assert.Error(t, err)
}
