package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewHasAddDelete(t *testing.T) {
	s := New("a", "b")
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("c"))

	s.Add("c")
	assert.True(t, s.Has("c"))

	s.Delete("a")
	assert.False(t, s.Has("a"))
}

func TestIntersect(t *testing.T) {
	a := New("x", "y", "z")
	b := New("y", "z", "w")

	got := a.Intersect(b)
	assert.Equal(t, New("y", "z"), got)

	// Intersection with an empty set is empty.
	assert.Empty(t, a.Intersect(New[string]()))
}

func TestSortedStrings(t *testing.T) {
	s := New("b", "c", "a")
	assert.Equal(t, []string{"a", "b", "c"}, SortedStrings(s))
}
