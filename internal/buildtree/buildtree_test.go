package buildtree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLib(t *testing.T) string {
	t.Helper()
	lib := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(lib, MakefileTemplate), []byte("all:\n\techo build\n"), 0o644))
	return lib
}

func TestPathDerivation(t *testing.T) {
	assert.Equal(t, filepath.Join("..", "Foo_1.0"), RootDir("Foo", "1.0"))
	assert.Equal(t, filepath.Join("..", "Foo_1.0", "build"), BuildDir("Foo", "1.0"))
	assert.Equal(t, RootDir("Foo", "1.0"), ReportPath("Foo", "1.0"))
}

func TestCreateLayout(t *testing.T) {
	buildDir := filepath.Join(t.TempDir(), "build")
	m := NewManager(newLib(t))

	require.NoError(t, m.Create(buildDir))

	for _, sub := range []string{"hardware/src", "hardware/simulation/src", "hardware/fpga/src", "doc", "doc/tsrc"} {
		assert.DirExists(t, filepath.Join(buildDir, sub))
	}
	assert.FileExists(t, filepath.Join(buildDir, "Makefile"))
}

func TestCreateIsIdempotentAndOverwritesMakefile(t *testing.T) {
	buildDir := filepath.Join(t.TempDir(), "build")
	lib := newLib(t)
	m := NewManager(lib)

	require.NoError(t, m.Create(buildDir))
	require.NoError(t, os.WriteFile(filepath.Join(buildDir, "Makefile"), []byte("stale"), 0o644))

	require.NoError(t, m.Create(buildDir))

	data, err := os.ReadFile(filepath.Join(buildDir, "Makefile"))
	require.NoError(t, err)
	assert.NotEqual(t, "stale", string(data))
}

func TestCreateMissingTemplateFails(t *testing.T) {
	m := NewManager(t.TempDir()) // no build.mk
	err := m.Create(filepath.Join(t.TempDir(), "build"))
	assert.Error(t, err)
}

func TestCleanMissingDirIsNoop(t *testing.T) {
	t.Chdir(filepath.Join(t.TempDir()))

	require.NoError(t, Clean("Ghost", "9.9", MakeClean))
	assert.NoDirExists(t, RootDir("Ghost", "9.9"))
}

func TestCleanRemovesTreeAndRunsHook(t *testing.T) {
	parent := t.TempDir()
	cwd := filepath.Join(parent, "work")
	require.NoError(t, os.MkdirAll(cwd, 0o750))
	t.Chdir(cwd)

	root := RootDir("Foo", "1.0")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "build"), 0o750))

	hookCalled := false
	hook := func(dir string) error {
		hookCalled = true
		assert.Equal(t, root, dir)
		return nil
	}

	require.NoError(t, Clean("Foo", "1.0", hook))
	assert.True(t, hookCalled)
	assert.NoDirExists(t, root)
}

// A failing hook must not prevent tree removal.
func TestCleanHookFailureStillRemoves(t *testing.T) {
	parent := t.TempDir()
	cwd := filepath.Join(parent, "work")
	require.NoError(t, os.MkdirAll(cwd, 0o750))
	t.Chdir(cwd)

	root := RootDir("Bar", "2.0")
	require.NoError(t, os.MkdirAll(root, 0o750))

	require.NoError(t, Clean("Bar", "2.0", func(string) error { return assert.AnError }))
	assert.NoDirExists(t, root)
}
