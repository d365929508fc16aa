package index_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullstate/gitlet/index"
	"github.com/nullstate/gitlet/oid"
)

func TestStageAddThenQuery(t *testing.T) {
	idx := index.New()
	o := oid.Of([]byte("content"))
	idx.StageAdd("a.txt", o)

	assert.True(t, idx.ContainsAdd("a.txt"))
	got, ok := idx.GetAdd("a.txt")
	assert.True(t, ok)
	assert.Equal(t, o, got)
	assert.False(t, idx.IsEmpty())
}

func TestStageAddUndoesPendingRemoval(t *testing.T) {
	idx := index.New()
	idx.StageRemove("a.txt")
	idx.StageAdd("a.txt", oid.Of([]byte("x")))

	assert.False(t, idx.ContainsRemove("a.txt"))
	assert.False(t, idx.ContainsAdd("a.txt"))
	assert.True(t, idx.IsEmpty())
}

func TestStageRemoveDropsAddition(t *testing.T) {
	idx := index.New()
	idx.StageAdd("a.txt", oid.Of([]byte("x")))
	idx.StageRemove("a.txt")

	assert.False(t, idx.ContainsAdd("a.txt"))
	assert.True(t, idx.ContainsRemove("a.txt"))
}

func TestClear(t *testing.T) {
	idx := index.New()
	idx.StageAdd("a.txt", oid.Of([]byte("x")))
	idx.StageRemove("b.txt")
	idx.Clear()
	assert.True(t, idx.IsEmpty())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	idx := index.New()
	idx.StageAdd("a.txt", oid.Of([]byte("a")))
	idx.StageAdd("b.txt", oid.Of([]byte("b")))
	idx.StageRemove("c.txt")
	require.NoError(t, idx.Save(dir))

	loaded, err := index.Load(dir)
	require.NoError(t, err)
	assert.True(t, loaded.ContainsAdd("a.txt"))
	assert.True(t, loaded.ContainsAdd("b.txt"))
	assert.True(t, loaded.ContainsRemove("c.txt"))
}

func TestLoadMissingFileReturnsEmptyIndex(t *testing.T) {
	idx, err := index.Load(t.TempDir())
	require.NoError(t, err)
	assert.True(t, idx.IsEmpty())
}

func TestRemovalsAreSorted(t *testing.T) {
	idx := index.New()
	idx.StageRemove("z.txt")
	idx.StageRemove("a.txt")
	idx.StageRemove("m.txt")
	assert.Equal(t, []string{"a.txt", "m.txt", "z.txt"}, idx.Removals())
}
