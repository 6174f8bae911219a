// Package snippets rewrites Verilog snippet include directives in generated
// sources. A snippet is a `.vs` file; a directive of the form
//
//	`include "name.vs"
//
// is replaced by the snippet's content, except for identifiers the core
// explicitly ignores. Snippets may include other snippets; cycles are fatal.
package snippets

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/corebuilder/internal/logfields"
	"git.home.luguber.info/inful/corebuilder/internal/util/sets"
)

// NotFoundError reports an include directive whose snippet cannot be located.
type NotFoundError struct {
	Snippet string
	File    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("snippet %s not found (referenced by %s)", e.Snippet, e.File)
}

// includeRe matches a snippet include directive on its own line.
var includeRe = regexp.MustCompile("^(\\s*)`include\\s+\"([A-Za-z0-9_]+)\\.vs\"\\s*$")

// sourceExts lists the file extensions scanned for include directives.
var sourceExts = sets.New(".v", ".sv", ".vh", ".vs")

// Resolver locates snippet files from an index built over the build and
// setup directories. Build-tree snippets shadow setup-dir snippets.
type Resolver struct {
	index  map[string]string // snippet name -> file path
	ignore sets.Set[string]
}

// NewResolver indexes every `.vs` file under buildDir and setupDir.
func NewResolver(setupDir, buildDir string, ignore sets.Set[string]) (*Resolver, error) {
	r := &Resolver{index: make(map[string]string), ignore: ignore}
	for _, root := range []string{buildDir, setupDir} {
		if err := r.indexDir(root); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Resolver) indexDir(root string) error {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".vs") {
			return nil
		}
		name := strings.TrimSuffix(d.Name(), ".vs")
		if _, seen := r.index[name]; !seen {
			r.index[name] = path
		}
		return nil
	})
}

// Resolve rewrites include directives in every source file under buildDir.
// Files are rewritten in place only when at least one directive was inlined.
func (r *Resolver) Resolve(buildDir string) error {
	return filepath.WalkDir(buildDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !sourceExts.Has(filepath.Ext(d.Name())) {
			return nil
		}
		return r.resolveFile(path)
	})
}

func (r *Resolver) resolveFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	out, changed, err := r.expand(string(data), path, nil)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	slog.Debug("Resolved snippet includes", logfields.File(path))
	return nil
}

// expand replaces include directives in content, recursing into inlined
// snippet bodies. stack carries the chain of snippet names being expanded so
// a cycle is detected instead of recursing forever.
func (r *Resolver) expand(content, file string, stack []string) (string, bool, error) {
	lines := strings.Split(content, "\n")
	changed := false
	var out []string

	for _, line := range lines {
		m := includeRe.FindStringSubmatch(line)
		if m == nil {
			out = append(out, line)
			continue
		}
		indent := m[1]
		name := m[2]
		if r.ignore.Has(name) {
			out = append(out, line)
			continue
		}
		for _, s := range stack {
			if s == name {
				return "", false, fmt.Errorf("snippet include cycle: %s -> %s (in %s)",
					strings.Join(stack, " -> "), name, file)
			}
		}

		snippetPath, ok := r.index[name]
		if !ok {
			return "", false, &NotFoundError{Snippet: name, File: file}
		}
		body, err := os.ReadFile(snippetPath)
		if err != nil {
			return "", false, fmt.Errorf("read snippet %s: %w", snippetPath, err)
		}
		expanded, _, err := r.expand(strings.TrimRight(string(body), "\n"), snippetPath, append(stack, name))
		if err != nil {
			return "", false, err
		}
		// An indented directive carries its indentation onto every inlined line.
		if indent == "" {
			out = append(out, expanded)
		} else {
			for _, inlined := range strings.Split(expanded, "\n") {
				if inlined != "" {
					inlined = indent + inlined
				}
				out = append(out, inlined)
			}
		}
		changed = true
	}

	return strings.Join(out, "\n"), changed, nil
}
