package object

import (
	"github.com/emirpasic/gods/maps/treemap"

	"github.com/nullstate/gitlet/oid"
)

// Tree is a commit's path -> blob OID mapping. Iteration order is always
// lexicographic by path, which is also the order the binary encoding
// commits to disk (spec.md §3: "Ordering is lexicographic by path and
// must be stable in the serialization").
//
// It is backed by an emirpasic/gods red-black treemap keyed by path
// string, so lexicographic iteration falls out of the container instead
// of a separate sort step every time the tree is walked.
type Tree struct {
	m *treemap.Map
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{m: treemap.NewWithStringComparator()}
}

// Set records that path maps to blob id o, overwriting any prior entry.
func (t *Tree) Set(path string, o oid.OID) {
	t.m.Put(path, o)
}

// Delete removes path from the tree, if present.
func (t *Tree) Delete(path string) {
	t.m.Remove(path)
}

// Get returns the blob id mapped to path, if any.
func (t *Tree) Get(path string) (oid.OID, bool) {
	v, found := t.m.Get(path)
	if !found {
		return oid.Zero, false
	}
	return v.(oid.OID), true
}

// Len returns the number of entries in the tree.
func (t *Tree) Len() int {
	return t.m.Size()
}

// Each calls fn for every (path, oid) pair in lexicographic path order.
func (t *Tree) Each(fn func(path string, o oid.OID)) {
	t.m.Each(func(key any, value any) {
		fn(key.(string), value.(oid.OID))
	})
}

// Paths returns the tree's paths in lexicographic order.
func (t *Tree) Paths() []string {
	keys := t.m.Keys()
	paths := make([]string, len(keys))
	for i, k := range keys {
		paths[i] = k.(string)
	}
	return paths
}

// Clone returns a deep-enough copy of t (an independent treemap with the
// same entries); the commit DAG never mutates a tree once written, but
// each new commit (a merge commit included) builds its tree from the
// head commit's.
func (t *Tree) Clone() *Tree {
	nt := NewTree()
	t.Each(func(path string, o oid.OID) {
		nt.Set(path, o)
	})
	return nt
}

// Equal reports whether t and other contain exactly the same entries.
func (t *Tree) Equal(other *Tree) bool {
	if t.Len() != other.Len() {
		return false
	}
	eq := true
	t.Each(func(path string, o oid.OID) {
		ov, found := other.Get(path)
		if !found || ov != o {
			eq = false
		}
	})
	return eq
}
