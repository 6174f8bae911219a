// Package dedupe removes redundant copies of shared sources from the
// non-canonical purpose subtrees of a build tree. Generation phases may copy
// the same shared source into every purpose subtree; keeping one physical
// copy under hardware/src prevents stale duplicates from diverging.
package dedupe

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"git.home.luguber.info/inful/corebuilder/internal/coredef"
	"git.home.luguber.info/inful/corebuilder/internal/logfields"
	"git.home.luguber.info/inful/corebuilder/internal/util/sets"
)

// Run deletes, from every purpose subtree other than the canonical one, each
// file whose relative path also exists under the canonical subtree. Matching
// is on the full relative path (directory + filename); content is not
// compared. Returns the removed paths, relative to their subtree roots, in
// lexical order.
func Run(buildDir string) ([]string, error) {
	canonical := filepath.Join(buildDir, coredef.CanonicalPurpose.Dir())
	canonicalSet, err := relFiles(canonical)
	if err != nil {
		return nil, err
	}

	var removed []string
	for purpose, sub := range coredef.PurposeDirs {
		if purpose == coredef.CanonicalPurpose {
			continue
		}
		subRoot := filepath.Join(buildDir, sub)
		subSet, err := relFiles(subRoot)
		if err != nil {
			return nil, err
		}
		for rel := range canonicalSet.Intersect(subSet) {
			if err := os.Remove(filepath.Join(subRoot, rel)); err != nil {
				return nil, fmt.Errorf("remove duplicate %s: %w", filepath.Join(sub, rel), err)
			}
			removed = append(removed, filepath.Join(sub, rel))
		}
	}

	sort.Strings(removed)
	if len(removed) > 0 {
		slog.Info("Removed duplicate sources", logfields.BuildDir(buildDir), logfields.Count(len(removed)))
	}
	return removed, nil
}

// relFiles enumerates all regular files under root as a set of paths relative
// to root. A missing root yields an empty set.
func relFiles(root string) (sets.Set[string], error) {
	out := sets.New[string]()
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return out, nil
	}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out.Add(rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("enumerate %s: %w", root, err)
	}
	return out, nil
}
