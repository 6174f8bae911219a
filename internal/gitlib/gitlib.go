// Package gitlib fetches core library repositories into the search root, so
// their definition files become visible to the registry scan.
package gitlib

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	cberrors "git.home.luguber.info/inful/corebuilder/internal/errors"
	"git.home.luguber.info/inful/corebuilder/internal/logfields"
	"git.home.luguber.info/inful/corebuilder/internal/retry"
)

// CloneOptions configure a library fetch.
type CloneOptions struct {
	URL    string
	Name   string // target directory name; defaults to the repo base name
	Branch string // optional branch
	Depth  int    // optional shallow depth
}

// Clone clones a library repository into searchRoot/<name>. An existing
// target directory is replaced.
func Clone(searchRoot string, opts CloneOptions) (string, error) {
	name := opts.Name
	if name == "" {
		name = repoBaseName(opts.URL)
	}
	if name == "" {
		return "", fmt.Errorf("cannot derive library name from %q", opts.URL)
	}

	target := filepath.Join(searchRoot, name)
	slog.Debug("Cloning core library", logfields.URL(opts.URL), logfields.Path(target))

	cloneOpts := &git.CloneOptions{URL: opts.URL}
	if opts.Branch != "" {
		cloneOpts.ReferenceName = plumbing.ReferenceName("refs/heads/" + opts.Branch)
		cloneOpts.SingleBranch = true
	}
	if opts.Depth > 0 {
		cloneOpts.Depth = opts.Depth
	}

	// Clones go over the network; transient failures get a few retries.
	var repo *git.Repository
	err := retry.DefaultPolicy().Do(func() error {
		if rerr := os.RemoveAll(target); rerr != nil {
			return fmt.Errorf("remove existing library dir: %w", rerr)
		}
		var cerr error
		repo, cerr = git.PlainClone(target, false, cloneOpts)
		return cerr
	})
	if err != nil {
		return "", cberrors.Wrap(err, cberrors.CategoryGit, cberrors.SeverityFatal, fmt.Sprintf("clone %s", opts.URL))
	}

	if ref, herr := repo.Head(); herr == nil {
		slog.Info("Core library cloned", logfields.URL(opts.URL), logfields.Path(target),
			slog.String("commit", ref.Hash().String()[:8]))
	} else {
		slog.Info("Core library cloned", logfields.URL(opts.URL), logfields.Path(target))
	}
	return target, nil
}

// repoBaseName derives a directory name from a git URL.
func repoBaseName(url string) string {
	base := strings.TrimSuffix(filepath.Base(strings.TrimSuffix(url, "/")), ".git")
	if base == "." || base == "/" {
		return ""
	}
	return base
}
