package build

import (
	"errors"
	"io/fs"

	"git.home.luguber.info/inful/corebuilder/internal/core"
	"git.home.luguber.info/inful/corebuilder/internal/discovery"
	cberrors "git.home.luguber.info/inful/corebuilder/internal/errors"
	"git.home.luguber.info/inful/corebuilder/internal/snippets"
)

// classify maps a stage failure onto an error category for the CLI boundary.
// An error already carrying a category keeps it.
func classify(err error) cberrors.ErrorCategory {
	var cbe *cberrors.CoreBuildError
	if errors.As(err, &cbe) {
		return cbe.Category
	}

	var setupErr *discovery.SetupNotFoundError
	if errors.As(err, &setupErr) {
		return cberrors.CategorySetup
	}
	var snippetErr *snippets.NotFoundError
	if errors.As(err, &snippetErr) {
		return cberrors.CategorySnippet
	}
	if errors.Is(err, core.ErrNotTopModule) {
		return cberrors.CategoryUsage
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return cberrors.CategoryFileSystem
	}
	return cberrors.CategoryBuild
}
