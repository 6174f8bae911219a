package build

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/corebuilder/internal/buildtree"
	"git.home.luguber.info/inful/corebuilder/internal/config"
	"git.home.luguber.info/inful/corebuilder/internal/core"
	"git.home.luguber.info/inful/corebuilder/internal/discovery"
	cberrors "git.home.luguber.info/inful/corebuilder/internal/errors"
	"git.home.luguber.info/inful/corebuilder/internal/snippets"
)

// fixture prepares a working directory with a lib dir and a search root,
// chdirs into it, and returns the search root and lib dir.
type fixture struct {
	workDir    string
	searchRoot string
	libDir     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	base := t.TempDir()
	f := &fixture{
		workDir:    filepath.Join(base, "work"),
		searchRoot: filepath.Join(base, "work", "cores"),
		libDir:     filepath.Join(base, "work", "lib"),
	}
	require.NoError(t, os.MkdirAll(f.searchRoot, 0o750))
	require.NoError(t, os.MkdirAll(f.libDir, 0o750))
	f.write(t, filepath.Join(f.libDir, "build.mk"), "all:\n\techo build\n")
	t.Chdir(f.workDir)
	return f
}

func (f *fixture) write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func (f *fixture) writeCore(t *testing.T, rel, yaml string) {
	t.Helper()
	f.write(t, filepath.Join(f.searchRoot, rel), yaml)
}

func (f *fixture) orchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	reg, err := discovery.Scan(f.searchRoot)
	require.NoError(t, err)
	cfg := &config.Config{SearchRoot: f.searchRoot, LibDir: f.libDir}
	return New(cfg, reg, nil)
}

func TestBuildTopCoreNoInstances(t *testing.T) {
	f := newFixture(t)
	f.writeCore(t, "foo/Foo.yaml", "version: \"1.0\"\n")

	res, err := f.orchestrator(t).Build(context.Background(), "Foo")
	require.NoError(t, err)

	assert.Equal(t, buildtree.BuildDir("Foo", "1.0"), res.Desc.BuildDir)
	assert.DirExists(t, filepath.Join("..", "Foo_1.0"))
	for _, sub := range []string{"hardware/src", "hardware/simulation/src", "hardware/fpga/src", "doc", "doc/tsrc"} {
		assert.DirExists(t, filepath.Join(res.Desc.BuildDir, sub))
	}
	assert.FileExists(t, filepath.Join(res.Desc.BuildDir, "Makefile"))
	assert.FileExists(t, filepath.Join(res.Desc.BuildDir, "config_build.mk"))
	assert.NotEmpty(t, res.BuildID)
	assert.True(t, res.Desc.IsTopModule)
}

func TestBuildMissingCoreFailsWithSetupNotFound(t *testing.T) {
	f := newFixture(t)
	f.writeCore(t, "foo/Foo.yaml", "")

	_, err := f.orchestrator(t).Build(context.Background(), "Missing")
	require.Error(t, err)

	var nf *discovery.SetupNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "Missing", nf.Core)

	var se *StageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StageResolve, se.Stage)

	var cbe *cberrors.CoreBuildError
	require.True(t, errors.As(err, &cbe))
	assert.Equal(t, cberrors.CategorySetup, cbe.Category)
}

func TestSubCoreSharesBuildDirAndIsNotTop(t *testing.T) {
	f := newFixture(t)
	f.writeCore(t, "top/iob_soc.yaml", `
version: "0.8"
instances:
  - {core: iob_reg, name: reg0}
`)
	f.writeCore(t, "reg/iob_reg.yaml", "version: \"1.1\"\n")
	f.writeCore(t, "reg/iob_reg.v", "module iob_reg; endmodule\n")

	res, err := f.orchestrator(t).Build(context.Background(), "iob_soc")
	require.NoError(t, err)

	require.Len(t, res.Desc.Instances, 1)
	sub := res.Desc.Instances[0]
	assert.False(t, sub.IsTopModule)
	assert.Equal(t, res.Desc.BuildDir, sub.BuildDir)
	// Sub-core sources land in the shared tree.
	assert.FileExists(t, filepath.Join(res.Desc.BuildDir, "hardware/src/iob_reg.v"))
	// Only one build tree exists: the sub-core created none of its own.
	assert.NoDirExists(t, filepath.Join("..", "iob_reg_1.1"))
}

func TestInstancePurposeOverride(t *testing.T) {
	f := newFixture(t)
	f.writeCore(t, "top/iob_soc.yaml", `
instances:
  - {core: iob_tb, name: tb0, purpose: simulation}
`)
	f.writeCore(t, "tb/iob_tb.yaml", "")
	f.writeCore(t, "tb/iob_tb.v", "// tb\n")

	res, err := f.orchestrator(t).Build(context.Background(), "iob_soc")
	require.NoError(t, err)

	sub := res.Desc.Instances[0]
	assert.Equal(t, "simulation", string(sub.Purpose))
	assert.FileExists(t, filepath.Join(res.Desc.BuildDir, "hardware/simulation/src/iob_tb.v"))
}

// A sub-core's own explicit purpose survives when the instance reference
// declares none.
func TestSubCoreKeepsOwnPurposeWithoutOverride(t *testing.T) {
	f := newFixture(t)
	f.writeCore(t, "top/iob_soc.yaml", `
instances:
  - {core: iob_tb}
`)
	f.writeCore(t, "tb/iob_tb.yaml", "purpose: simulation\n")
	f.writeCore(t, "tb/iob_tb.v", "// tb\n")

	res, err := f.orchestrator(t).Build(context.Background(), "iob_soc")
	require.NoError(t, err)

	sub := res.Desc.Instances[0]
	assert.Equal(t, "simulation", string(sub.Purpose))
	assert.FileExists(t, filepath.Join(res.Desc.BuildDir, "hardware/simulation/src/iob_tb.v"))
}

func TestDedupRemovesSharedSubCoreSources(t *testing.T) {
	f := newFixture(t)
	f.writeCore(t, "top/iob_soc.yaml", `
instances:
  - {core: iob_reg, name: hw_reg}
  - {core: iob_reg, name: sim_reg, purpose: simulation}
`)
	f.writeCore(t, "reg/iob_reg.yaml", "")
	f.writeCore(t, "reg/iob_reg.v", "module iob_reg; endmodule\n")

	res, err := f.orchestrator(t).Build(context.Background(), "iob_soc")
	require.NoError(t, err)

	// Both instances copied iob_reg.v; deduplication keeps only the
	// canonical hardware/src copy.
	assert.FileExists(t, filepath.Join(res.Desc.BuildDir, "hardware/src/iob_reg.v"))
	assert.NoFileExists(t, filepath.Join(res.Desc.BuildDir, "hardware/simulation/src/iob_reg.v"))
}

func TestSnippetResolutionInBuild(t *testing.T) {
	f := newFixture(t)
	f.writeCore(t, "top/iob_soc.yaml", "ignore_snippets: [keep_raw]\n")
	f.writeCore(t, "top/top.v", "`include \"clk_ports.vs\"\n`include \"keep_raw.vs\"\n")
	f.writeCore(t, "top/clk_ports.vs", "input clk_i,")

	res, err := f.orchestrator(t).Build(context.Background(), "iob_soc")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(res.Desc.BuildDir, "hardware/src/top.v"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "input clk_i,")
	assert.Contains(t, string(data), "`include \"keep_raw.vs\"")
}

func TestMissingSnippetAbortsBuild(t *testing.T) {
	f := newFixture(t)
	f.writeCore(t, "top/iob_soc.yaml", "")
	f.writeCore(t, "top/top.v", "`include \"nope.vs\"\n")

	_, err := f.orchestrator(t).Build(context.Background(), "iob_soc")
	require.Error(t, err)

	var nf *snippets.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "nope", nf.Snippet)
}

func TestRegisterTableFlowsToDocs(t *testing.T) {
	f := newFixture(t)
	f.writeCore(t, "gpio/iob_gpio.yaml", `
csrs:
  - {name: GPIO_OUT, mode: w, n_bits: 32, descr: Output value}
`)

	res, err := f.orchestrator(t).Build(context.Background(), "iob_gpio")
	require.NoError(t, err)

	require.Len(t, res.RegTable, 1)
	assert.FileExists(t, filepath.Join(res.Desc.BuildDir, "doc/tsrc/iob_gpio_csrs.md"))
	assert.FileExists(t, filepath.Join(res.Desc.BuildDir, "doc/iob_gpio_csrs.html"))
}

func TestInstanceCycleDetected(t *testing.T) {
	f := newFixture(t)
	f.writeCore(t, "a/core_a.yaml", "instances:\n  - {core: core_b}\n")
	f.writeCore(t, "b/core_b.yaml", "instances:\n  - {core: core_a}\n")

	_, err := f.orchestrator(t).Build(context.Background(), "core_a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestCanceledContextAborts(t *testing.T) {
	f := newFixture(t)
	f.writeCore(t, "foo/Foo.yaml", "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.orchestrator(t).Build(ctx, "Foo")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNotTopModuleGuard(t *testing.T) {
	f := newFixture(t)
	f.writeCore(t, "foo/Foo.yaml", "")
	o := f.orchestrator(t)

	bs := newBuildState("id", "Foo")
	require.NoError(t, o.stageResolve(context.Background(), bs))
	bs.Desc.IsTopModule = false

	err := o.stageTreeInit(context.Background(), bs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNotTopModule))
}
