package object_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nullstate/gitlet/object"
	"github.com/nullstate/gitlet/oid"
)

func TestTreeIteratesLexicographically(t *testing.T) {
	tree := object.NewTree()
	tree.Set("z.txt", oid.Of([]byte("z")))
	tree.Set("a.txt", oid.Of([]byte("a")))
	tree.Set("m.txt", oid.Of([]byte("m")))

	var order []string
	tree.Each(func(path string, _ oid.OID) {
		order = append(order, path)
	})
	assert.Equal(t, []string{"a.txt", "m.txt", "z.txt"}, order)
	assert.Equal(t, order, tree.Paths())
}

func TestTreeSetOverwrites(t *testing.T) {
	tree := object.NewTree()
	tree.Set("a.txt", oid.Of([]byte("v1")))
	tree.Set("a.txt", oid.Of([]byte("v2")))
	assert.Equal(t, 1, tree.Len())
	got, ok := tree.Get("a.txt")
	assert.True(t, ok)
	assert.Equal(t, oid.Of([]byte("v2")), got)
}

func TestTreeDeleteAndMissingGet(t *testing.T) {
	tree := object.NewTree()
	tree.Set("a.txt", oid.Of([]byte("v1")))
	tree.Delete("a.txt")
	_, ok := tree.Get("a.txt")
	assert.False(t, ok)
}

func TestTreeCloneIsIndependent(t *testing.T) {
	tree := object.NewTree()
	tree.Set("a.txt", oid.Of([]byte("v1")))
	clone := tree.Clone()
	clone.Set("b.txt", oid.Of([]byte("v2")))

	assert.Equal(t, 1, tree.Len())
	assert.Equal(t, 2, clone.Len())
}

func TestTreeEqual(t *testing.T) {
	a := object.NewTree()
	a.Set("x", oid.Of([]byte("1")))
	b := object.NewTree()
	b.Set("x", oid.Of([]byte("1")))
	assert.True(t, a.Equal(b))

	b.Set("y", oid.Of([]byte("2")))
	assert.False(t, a.Equal(b))
}
