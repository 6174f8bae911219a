package copysrcs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/corebuilder/internal/coredef"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestCopyFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.v")
	dst := filepath.Join(dir, "deep/nested/dst.v")
	write(t, src, "new content")
	write(t, dst, "old content")

	require.NoError(t, CopyFile(src, dst))
	assert.Equal(t, "new content", read(t, dst))
}

func TestCopyTreePreservesLayoutAndSkips(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	write(t, filepath.Join(src, "a.v"), "a")
	write(t, filepath.Join(src, "sub/b.v"), "b")
	write(t, filepath.Join(src, "sub/skip.me"), "s")

	err := CopyTree(src, dst, func(rel string) bool { return rel == filepath.Join("sub", "skip.me") })
	require.NoError(t, err)

	assert.Equal(t, "a", read(t, filepath.Join(dst, "a.v")))
	assert.Equal(t, "b", read(t, filepath.Join(dst, "sub/b.v")))
	assert.NoFileExists(t, filepath.Join(dst, "sub/skip.me"))
}

func TestCopyTreeMissingSourceIsNoop(t *testing.T) {
	dst := t.TempDir()
	err := CopyTree(filepath.Join(t.TempDir(), "absent"), dst, nil)
	require.NoError(t, err)

	entries, err := os.ReadDir(dst)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFlowsSetupCopiesScaffold(t *testing.T) {
	lib := t.TempDir()
	build := t.TempDir()
	write(t, filepath.Join(lib, "hardware/src/iob_lib.vh"), "lib")
	write(t, filepath.Join(lib, "hardware/simulation/src/tb_utils.v"), "tb")
	write(t, filepath.Join(lib, "doc/tsrc/intro.md"), "intro")

	require.NoError(t, FlowsSetup(lib, build))

	assert.FileExists(t, filepath.Join(build, "hardware/src/iob_lib.vh"))
	assert.FileExists(t, filepath.Join(build, "hardware/simulation/src/tb_utils.v"))
	assert.FileExists(t, filepath.Join(build, "doc/tsrc/intro.md"))
}

func TestCopySetupDirExcludesDefinitionFile(t *testing.T) {
	setup := t.TempDir()
	build := t.TempDir()
	defFile := filepath.Join(setup, "iob_gpio.yaml")
	write(t, defFile, "name: iob_gpio")
	write(t, filepath.Join(setup, "iob_gpio.v"), "module")
	write(t, filepath.Join(setup, ".hidden"), "x")

	require.NoError(t, CopySetupDir(setup, build, coredef.PurposeHardware, defFile))

	assert.FileExists(t, filepath.Join(build, "hardware/src/iob_gpio.v"))
	assert.NoFileExists(t, filepath.Join(build, "hardware/src/iob_gpio.yaml"))
	assert.NoFileExists(t, filepath.Join(build, "hardware/src/.hidden"))
}

// Scaffold files copied first must lose to core files with the same name.
func TestCoreSourcesOverrideScaffold(t *testing.T) {
	lib := t.TempDir()
	setup := t.TempDir()
	build := t.TempDir()
	write(t, filepath.Join(lib, "hardware/src/common.vh"), "scaffold")
	write(t, filepath.Join(setup, "common.vh"), "core specific")
	defFile := filepath.Join(setup, "iob_x.yaml")
	write(t, defFile, "")

	require.NoError(t, FlowsSetup(lib, build))
	require.NoError(t, CopySetupDir(setup, build, coredef.PurposeHardware, defFile))

	assert.Equal(t, "core specific", read(t, filepath.Join(build, "hardware/src/common.vh")))
}
