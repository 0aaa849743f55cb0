// Package fileset provides the set abstraction over compiled-artifact file
// paths that PLT synchronization is built on.
//
// A PLT is logically a store keyed by compiled-object file path. Deciding what
// work a sync needs is pure set arithmetic: the files a PLT currently contains
// versus the files it should contain. Partition computes the three disjoint
// groups (remove, check, add) that drive the corresponding backend phases.
package fileset

import "sort"

// Set is a set of file paths. Order is irrelevant; paths are deduplicated.
type Set map[string]struct{}

// New creates a Set containing the given paths.
func New(paths ...string) Set {
	s := make(Set, len(paths))
	for _, p := range paths {
		s[p] = struct{}{}
	}
	return s
}

// Add inserts a path into the set.
func (s Set) Add(path string) {
	s[path] = struct{}{}
}

// AddAll inserts every path from other into the set.
func (s Set) AddAll(other Set) {
	for p := range other {
		s[p] = struct{}{}
	}
}

// Contains reports whether path is in the set.
func (s Set) Contains(path string) bool {
	_, ok := s[path]
	return ok
}

// Len returns the number of paths in the set.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the paths in lexicographic order.
// Backend invocations and tests rely on this for determinism.
func (s Set) Sorted() []string {
	paths := make([]string, 0, len(s))
	for p := range s {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Diff returns the paths in s that are not in other.
func (s Set) Diff(other Set) Set {
	out := make(Set)
	for p := range s {
		if !other.Contains(p) {
			out[p] = struct{}{}
		}
	}
	return out
}

// Intersect returns the paths present in both s and other.
func (s Set) Intersect(other Set) Set {
	out := make(Set)
	for p := range s {
		if other.Contains(p) {
			out[p] = struct{}{}
		}
	}
	return out
}

// Union returns the paths present in either s or other.
func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))
	for p := range s {
		out[p] = struct{}{}
	}
	for p := range other {
		out[p] = struct{}{}
	}
	return out
}

// Equal reports whether s and other contain exactly the same paths.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for p := range s {
		if !other.Contains(p) {
			return false
		}
	}
	return true
}

// Partition splits an old/new file-set pair into the three groups a PLT sync
// acts on:
//
//   - remove: in old but no longer required
//   - check:  in both, re-validated in place
//   - add:    newly required
//
// The groups are pairwise disjoint and their union equals old ∪ new.
func Partition(old, new Set) (remove, check, add Set) {
	remove = old.Diff(new)
	check = old.Intersect(new)
	add = new.Diff(old)
	return remove, check, add
}
