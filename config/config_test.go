package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullstate/gitlet/config"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	c, err := config.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultBranch, c.Core.DefaultBranch)
	assert.Equal(t, config.DefaultCacheEntries, c.Core.CacheEntries)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	c := config.Default()
	c.Core.DefaultBranch = "trunk"
	c.Core.CacheEntries = 42
	require.NoError(t, c.Save(dir))

	loaded, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "trunk", loaded.Core.DefaultBranch)
	assert.Equal(t, 42, loaded.Core.CacheEntries)
}

func TestLoadFillsInZeroValues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config"), []byte("[core]\n"), 0o644))

	c, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultBranch, c.Core.DefaultBranch)
	assert.Equal(t, config.DefaultCacheEntries, c.Core.CacheEntries)
}
