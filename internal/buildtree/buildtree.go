// Package buildtree creates and removes the canonical build-directory layout
// for a top-level core build.
package buildtree

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"git.home.luguber.info/inful/corebuilder/internal/copysrcs"
	"git.home.luguber.info/inful/corebuilder/internal/logfields"
)

// Subdirs lists every directory created beneath the build directory.
var Subdirs = []string{
	"hardware/src",
	"hardware/simulation/src",
	"hardware/fpga/src",
	"doc",
	"doc/tsrc",
}

// MakefileTemplate is the build-control file copied from the library into the
// build directory root.
const MakefileTemplate = "build.mk"

// RootDir derives the per-build root as a sibling of the current working
// directory. All derived paths are relative to the process cwd at call time.
func RootDir(name, version string) string {
	return filepath.Join("..", fmt.Sprintf("%s_%s", name, version))
}

// BuildDir derives the build directory beneath RootDir.
func BuildDir(name, version string) string {
	return filepath.Join(RootDir(name, version), "build")
}

// Manager creates the build tree layout. The Makefile template is taken from
// the configured library directory.
type Manager struct {
	libDir string
}

// NewManager returns a Manager sourcing scaffolding from libDir.
func NewManager(libDir string) *Manager { return &Manager{libDir: libDir} }

// Create builds the canonical directory layout under buildDir and installs
// the library Makefile at its root, overwriting any existing copy. Creation
// is idempotent: pre-existing directories are not an error.
func (m *Manager) Create(buildDir string) error {
	if err := os.MkdirAll(buildDir, 0o750); err != nil {
		return fmt.Errorf("create build dir: %w", err)
	}
	for _, sub := range Subdirs {
		if err := os.MkdirAll(filepath.Join(buildDir, sub), 0o750); err != nil {
			return fmt.Errorf("create %s: %w", sub, err)
		}
	}

	src := filepath.Join(m.libDir, MakefileTemplate)
	if err := copysrcs.CopyFile(src, filepath.Join(buildDir, "Makefile")); err != nil {
		return fmt.Errorf("install Makefile: %w", err)
	}

	slog.Info("Created build directory", logfields.BuildDir(buildDir))
	return nil
}

// CleanHook runs an external clean procedure in a build root before removal.
type CleanHook func(dir string) error

// MakeClean is the default CleanHook: it runs `make clean` in dir when a
// Makefile is present. Hook failures are reported to the caller; the tree is
// removed regardless.
func MakeClean(dir string) error {
	if _, err := os.Stat(filepath.Join(dir, "build", "Makefile")); err != nil {
		return nil
	}
	cmd := exec.Command("make", "-C", filepath.Join(dir, "build"), "clean")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Clean recomputes the build root from name/version, invokes the clean hook
// when the directory exists, then deletes the whole tree. A missing directory
// is not an error.
func Clean(name, version string, hook CleanHook) error {
	dir := RootDir(name, version)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		slog.Debug("Build directory already absent", logfields.Path(dir))
		return nil
	}

	slog.Info("Cleaning build directory", logfields.Path(dir))
	if hook != nil {
		if err := hook(dir); err != nil {
			slog.Warn("Clean hook failed, removing tree anyway", logfields.Path(dir), logfields.Error(err))
		}
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove build dir %s: %w", dir, err)
	}
	return nil
}

// ReportPath returns the derived build root without side effects.
func ReportPath(name, version string) string {
	return RootDir(name, version)
}
