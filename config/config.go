// Package config holds repository-level settings persisted as TOML,
// matching the teacher's config component (modules/zeta/config). The
// spec itself never requires configurability — `init` always creates
// branch "master" — but a repository needs some durable place to record
// the handful of settings that could vary across invocations, and the
// teacher always reaches for TOML to do it.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const fileName = "config"

// DefaultBranch is the branch `init` creates and points HEAD at when no
// override is configured, matching spec.md §4.5 exactly.
const DefaultBranch = "master"

// DefaultCacheEntries bounds the object store's in-memory decode cache.
const DefaultCacheEntries = 10_000

// Config is a repository's persisted settings.
type Config struct {
	Core CoreSection `toml:"core"`
}

// CoreSection holds the settings that affect repository bootstrapping.
type CoreSection struct {
	DefaultBranch string `toml:"default_branch"`
	CacheEntries  int    `toml:"cache_entries"`
}

// Default returns the configuration a freshly-initialized repository
// starts with.
func Default() *Config {
	return &Config{Core: CoreSection{
		DefaultBranch: DefaultBranch,
		CacheEntries:  DefaultCacheEntries,
	}}
}

// Load reads the config file under root (a repository's `.gitlet`
// directory), returning Default() if it is absent.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(root, fileName))
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if c.Core.DefaultBranch == "" {
		c.Core.DefaultBranch = DefaultBranch
	}
	if c.Core.CacheEntries == 0 {
		c.Core.CacheEntries = DefaultCacheEntries
	}
	return &c, nil
}

// Save persists c under root.
func (c *Config) Save(root string) error {
	f, err := os.Create(filepath.Join(root, fileName))
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(c)
}
