// Package discovery locates core definition directories. A single upfront
// scan of the search root builds a registry mapping every extension-stripped
// file base name to the directory (and file) where it first appeared, so
// later lookups are explicit map hits instead of repeated tree walks.
package discovery

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/corebuilder/internal/logfields"
)

// SetupNotFoundError reports that no definition file for a core type exists
// anywhere under the search root.
type SetupNotFoundError struct {
	Core       string
	SearchRoot string
}

func (e *SetupNotFoundError) Error() string {
	return fmt.Sprintf("setup dir of %s not found in %s", e.Core, e.SearchRoot)
}

// entry records where a core type's definition file was found. file is the
// first match of any extension (it fixes the setup dir per the resolver
// contract); defFile is the first YAML match, which is what the definition
// loader wants when a directory holds e.g. both iob_reg.v and iob_reg.yaml.
type entry struct {
	dir     string
	file    string
	defFile string
}

// Registry maps core type names to the directory containing their definition
// file. Built once by Scan; read-only afterwards.
type Registry struct {
	root    string
	entries map[string]entry
}

// Scan walks the tree rooted at root and records, for every regular file, the
// first directory containing a file with that extension-stripped base name.
// filepath.WalkDir visits entries in lexical order, so with duplicate base
// names in different directories the lexically first path wins. That order is
// pinned by tests; it is the only disambiguation offered.
func Scan(root string) (*Registry, error) {
	r := &Registry{root: root, entries: make(map[string]entry)}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		base := d.Name()
		if i := strings.Index(base, "."); i >= 0 {
			base = base[:i]
		}
		if base == "" {
			return nil
		}
		e, seen := r.entries[base]
		if !seen {
			e = entry{dir: filepath.Dir(path), file: path}
		}
		if e.defFile == "" {
			if ext := filepath.Ext(path); ext == ".yaml" || ext == ".yml" {
				e.defFile = path
			}
		}
		r.entries[base] = e
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan search root %s: %w", root, err)
	}

	slog.Debug("Scanned search root", logfields.Path(root), logfields.Count(len(r.entries)))
	return r, nil
}

// Root returns the search root the registry was built from.
func (r *Registry) Root() string { return r.root }

// Len returns the number of registered type names.
func (r *Registry) Len() int { return len(r.entries) }

// Lookup returns the setup directory for a core type, or SetupNotFoundError.
func (r *Registry) Lookup(typeName string) (string, error) {
	e, ok := r.entries[typeName]
	if !ok {
		return "", &SetupNotFoundError{Core: typeName, SearchRoot: r.root}
	}
	return e.dir, nil
}

// DefinitionFile returns the definition file path for a core type: the first
// YAML match when one exists, otherwise the first match of any extension.
func (r *Registry) DefinitionFile(typeName string) (string, error) {
	e, ok := r.entries[typeName]
	if !ok {
		return "", &SetupNotFoundError{Core: typeName, SearchRoot: r.root}
	}
	if e.defFile != "" {
		return e.defFile, nil
	}
	return e.file, nil
}

// Types returns all registered type names whose definition file has the given
// extension (e.g. ".yaml"), in unspecified order. Used by the list command.
func (r *Registry) Types(ext string) []string {
	out := make([]string, 0, len(r.entries))
	for name, e := range r.entries {
		if ext == "" || filepath.Ext(e.file) == ext || filepath.Ext(e.defFile) == ext {
			out = append(out, name)
		}
	}
	return out
}
