package sets

import "sort"

// Set is a simple generic hash set for comparable keys.
// Intentionally minimal: no reflection, no iteration helpers beyond range.
// Usage: s := sets.New[string]("a","b"); s.Add("c"); if s.Has("b") {...}
// Kept internal to avoid committing to external API stability pre-1.0.
type Set[T comparable] map[T]struct{}

// New creates a set pre-populated with the provided values.
func New[T comparable](vals ...T) Set[T] {
	s := make(Set[T], len(vals))
	for _, v := range vals {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts value into the set.
func (s Set[T]) Add(v T) { s[v] = struct{}{} }

// Has returns true if v is present.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Delete removes v if present.
func (s Set[T]) Delete(v T) { delete(s, v) }

// Intersect returns the set of values present in both s and other.
func (s Set[T]) Intersect(other Set[T]) Set[T] {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(Set[T])
	for v := range small {
		if large.Has(v) {
			out.Add(v)
		}
	}
	return out
}

// SortedStrings returns the members of a string set in lexical order.
// Deterministic ordering matters wherever set contents reach logs or disk.
func SortedStrings(s Set[string]) []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
