// Package copysrcs copies core sources and library scaffolding into the
// build tree.
package copysrcs

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/corebuilder/internal/coredef"
	"git.home.luguber.info/inful/corebuilder/internal/logfields"
)

// CopyFile copies src to dst, creating parent directories and overwriting any
// existing file. Permissions of the source file are preserved.
func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(dst), err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return out.Close()
}

// CopyTree recursively copies every regular file under src into dst,
// preserving relative layout. Files for which skip returns true are left out.
// A missing src is not an error; the scaffold for a purpose may simply not
// exist.
func CopyTree(src, dst string, skip func(rel string) bool) error {
	if _, err := os.Stat(src); os.IsNotExist(err) {
		slog.Debug("Copy source missing, skipping", logfields.Path(src))
		return nil
	}
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if skip != nil && skip(rel) {
			return nil
		}
		return CopyFile(path, filepath.Join(dst, rel))
	})
}

// FlowsSetup copies library-level per-purpose scaffolding into the build
// tree. It runs before the core's own sources so that core-specific files may
// override scaffold files.
func FlowsSetup(libDir, buildDir string) error {
	for _, sub := range []string{
		coredef.PurposeHardware.Dir(),
		coredef.PurposeSimulation.Dir(),
		coredef.PurposeFPGA.Dir(),
		"doc/tsrc",
	} {
		if err := CopyTree(filepath.Join(libDir, sub), filepath.Join(buildDir, sub), nil); err != nil {
			return fmt.Errorf("flows setup %s: %w", sub, err)
		}
	}
	return nil
}

// CopySetupDir copies the core's own source files from its setup directory
// into the build tree's purpose subtree, preserving relative layout. The
// definition file itself and dotfiles are excluded.
func CopySetupDir(setupDir, buildDir string, purpose coredef.Purpose, defFile string) error {
	defRel, _ := filepath.Rel(setupDir, defFile)
	dst := filepath.Join(buildDir, purpose.Dir())

	err := CopyTree(setupDir, dst, func(rel string) bool {
		if rel == defRel {
			return true
		}
		return filepath.Base(rel)[0] == '.'
	})
	if err != nil {
		return fmt.Errorf("copy setup dir %s: %w", setupDir, err)
	}
	slog.Debug("Copied core sources", logfields.SetupDir(setupDir), logfields.Purpose(string(purpose)))
	return nil
}
