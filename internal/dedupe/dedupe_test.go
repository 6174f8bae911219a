package dedupe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestRemovesSharedSourcesFromNonCanonicalSubtrees(t *testing.T) {
	build := t.TempDir()
	write(t, filepath.Join(build, "hardware/src/iob_reg.v"))
	write(t, filepath.Join(build, "hardware/src/sub/iob_fifo.v"))
	write(t, filepath.Join(build, "hardware/simulation/src/iob_reg.v"))
	write(t, filepath.Join(build, "hardware/simulation/src/sub/iob_fifo.v"))
	write(t, filepath.Join(build, "hardware/simulation/src/tb_only.v"))
	write(t, filepath.Join(build, "hardware/fpga/src/iob_reg.v"))

	removed, err := Run(build)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join("hardware/fpga/src", "iob_reg.v"),
		filepath.Join("hardware/simulation/src", "iob_reg.v"),
		filepath.Join("hardware/simulation/src", "sub", "iob_fifo.v"),
	}, removed)

	// Canonical copies untouched, unique files survive.
	assert.FileExists(t, filepath.Join(build, "hardware/src/iob_reg.v"))
	assert.FileExists(t, filepath.Join(build, "hardware/src/sub/iob_fifo.v"))
	assert.FileExists(t, filepath.Join(build, "hardware/simulation/src/tb_only.v"))
	assert.NoFileExists(t, filepath.Join(build, "hardware/simulation/src/iob_reg.v"))
	assert.NoFileExists(t, filepath.Join(build, "hardware/fpga/src/iob_reg.v"))
}

// Full relative-path match required: same base name in a different
// subdirectory is not a duplicate.
func TestRelativePathMatchRequired(t *testing.T) {
	build := t.TempDir()
	write(t, filepath.Join(build, "hardware/src/a/iob_reg.v"))
	write(t, filepath.Join(build, "hardware/simulation/src/b/iob_reg.v"))

	removed, err := Run(build)
	require.NoError(t, err)

	assert.Empty(t, removed)
	assert.FileExists(t, filepath.Join(build, "hardware/simulation/src/b/iob_reg.v"))
}

func TestIdempotent(t *testing.T) {
	build := t.TempDir()
	write(t, filepath.Join(build, "hardware/src/iob_reg.v"))
	write(t, filepath.Join(build, "hardware/simulation/src/iob_reg.v"))

	first, err := Run(build)
	require.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := Run(build)
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestEmptyBuildTree(t *testing.T) {
	removed, err := Run(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, removed)
}
