package errors

import (
	stderrors "errors"
)

// ExitCodeFor determines the appropriate process exit code for an error.
func ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	var cbe *CoreBuildError
	if stderrors.As(err, &cbe) {
		switch cbe.Category {
		case CategoryUsage:
			return 2
		case CategoryConfig, CategoryDefinition:
			return 7
		case CategoryGit:
			return 8
		case CategoryInternal:
			return 10
		case CategorySetup, CategorySnippet, CategoryBuild, CategoryFileSystem:
			return 11
		case CategoryHistory:
			return 12
		}
	}

	return 1
}
