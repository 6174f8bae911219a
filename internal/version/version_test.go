package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultsUntilLinked(t *testing.T) {
	// Unless ldflags override them, all build metadata stays "unknown".
	assert.NotEmpty(t, Version)
	assert.NotEmpty(t, BuildTime)
	assert.NotEmpty(t, GitCommit)
}
