package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	e := New(CategorySetup, SeverityFatal, "setup dir not found")
	assert.Equal(t, "setup (fatal): setup dir not found", e.Error())

	wrapped := Wrap(stderrors.New("boom"), CategoryBuild, SeverityFatal, "build failed")
	assert.Equal(t, "build (fatal): build failed: boom", wrapped.Error())
}

func TestUnwrapChain(t *testing.T) {
	cause := stderrors.New("root cause")
	e := Wrap(fmt.Errorf("mid: %w", cause), CategoryFileSystem, SeverityError, "copy failed")

	assert.True(t, stderrors.Is(e, cause))

	var cbe *CoreBuildError
	require.True(t, stderrors.As(fmt.Errorf("outer: %w", e), &cbe))
	assert.Equal(t, CategoryFileSystem, cbe.Category)
}

func TestWithContext(t *testing.T) {
	e := New(CategorySnippet, SeverityFatal, "snippet not found").
		WithContext("snippet", "iob_reset_sync").
		WithContext("file", "top.v")

	assert.Equal(t, "iob_reset_sync", e.Context["snippet"])
	assert.Equal(t, "top.v", e.Context["file"])
}

func TestExitCodeFor(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{nil, 0},
		{stderrors.New("plain"), 1},
		{New(CategoryUsage, SeverityFatal, "x"), 2},
		{New(CategoryConfig, SeverityFatal, "x"), 7},
		{New(CategoryDefinition, SeverityFatal, "x"), 7},
		{New(CategoryGit, SeverityFatal, "x"), 8},
		{New(CategoryInternal, SeverityFatal, "x"), 10},
		{New(CategorySetup, SeverityFatal, "x"), 11},
		{New(CategorySnippet, SeverityFatal, "x"), 11},
		{New(CategoryHistory, SeverityError, "x"), 12},
		{fmt.Errorf("wrapped: %w", New(CategoryBuild, SeverityFatal, "x")), 11},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, ExitCodeFor(tc.err))
	}
}
