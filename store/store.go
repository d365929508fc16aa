// Package store implements the content-addressed object store: a
// write-once, read-many filesystem directory holding blobs and commits,
// keyed by their OID (spec.md §4.2).
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/sirupsen/logrus"

	"github.com/nullstate/gitlet/object"
	"github.com/nullstate/gitlet/oid"
)

// ErrObjectNotFound is returned by Get* when the requested OID is absent
// from the store.
var ErrObjectNotFound = errors.New("store: object not found")

const (
	blobsDirName   = "blobs"
	commitsDirName = "commits"
)

// Store is a filesystem-backed object store rooted at a repository's
// `.gitlet` directory. It keeps a bounded decode cache for commits
// (dgraph-io/ristretto) so repeated ancestry walks — log, merge's
// split-point search, push/fetch — don't re-parse the same commit object
// on every visit; the cache is purely additive and the filesystem is
// always the source of truth (Has/Put always touch disk).
type Store struct {
	root  string
	cache *ristretto.Cache[string, *object.Commit]
}

// defaultCacheEntries is used when the caller has no configured opinion
// (e.g. a bare Open call, or config.CacheEntries defaulting to zero).
const defaultCacheEntries = 10_000

// Open returns a Store rooted at root (a repository's `.gitlet`
// directory), with the default decode-cache size. The blobs/ and
// commits/ subdirectories are created if absent.
func Open(root string) (*Store, error) {
	return OpenSized(root, defaultCacheEntries)
}

// OpenSized is like Open, but bounds the commit decode cache to roughly
// cacheEntries entries — the repository's configured
// config.CoreSection.CacheEntries value, threaded through by repo.open.
func OpenSized(root string, cacheEntries int) (*Store, error) {
	for _, d := range []string{blobsDirName, commitsDirName} {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			return nil, fmt.Errorf("store: open: %w", err)
		}
	}
	if cacheEntries <= 0 {
		cacheEntries = defaultCacheEntries
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, *object.Commit]{
		NumCounters: int64(cacheEntries) * 10,
		MaxCost:     int64(cacheEntries),
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("store: new decode cache: %w", err)
	}
	return &Store{root: root, cache: cache}, nil
}

func (s *Store) blobPath(o oid.OID) string   { return filepath.Join(s.root, blobsDirName, o.String()) }
func (s *Store) commitPath(o oid.OID) string { return filepath.Join(s.root, commitsDirName, o.String()) }

// PutBlob writes b's bytes under its own OID. Idempotent: if the object
// already exists the write is a no-op (spec.md §4.2).
func (s *Store) PutBlob(b *object.Blob) error {
	return writeOnce(s.blobPath(b.Hash), b.Data)
}

// PutCommit writes c's encoding under its OID. Idempotent, and caches the
// decoded commit for subsequent GetCommit calls.
func (s *Store) PutCommit(c *object.Commit) error {
	if err := writeOnce(s.commitPath(c.Hash), c.Encode()); err != nil {
		return err
	}
	s.cache.Set(c.Hash.String(), c, 1)
	return nil
}

func writeOnce(path string, data []byte) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o444); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	logrus.WithField("oid", filepath.Base(path)).Debug("store: wrote object")
	return nil
}

// GetBlob reads the blob named by o.
func (s *Store) GetBlob(o oid.OID) (*object.Blob, error) {
	data, err := os.ReadFile(s.blobPath(o))
	if os.IsNotExist(err) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &object.Blob{Hash: o, Data: data}, nil
}

// GetCommit reads and decodes the commit named by o, serving from the
// decode cache when possible.
func (s *Store) GetCommit(o oid.OID) (*object.Commit, error) {
	if c, ok := s.cache.Get(o.String()); ok {
		return c, nil
	}
	data, err := os.ReadFile(s.commitPath(o))
	if os.IsNotExist(err) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, err
	}
	c, err := object.DecodeCommit(data)
	if err != nil {
		return nil, err
	}
	s.cache.Set(o.String(), c, 1)
	return c, nil
}

// Has reports whether an object (blob or commit) named by o exists.
func (s *Store) Has(o oid.OID) bool {
	if _, err := os.Stat(s.blobPath(o)); err == nil {
		return true
	}
	if _, err := os.Stat(s.commitPath(o)); err == nil {
		return true
	}
	return false
}

// IterCommits calls fn for every commit in the store, in unspecified
// order, stopping early if fn returns an error.
func (s *Store) IterCommits(fn func(*object.Commit) error) error {
	entries, err := os.ReadDir(filepath.Join(s.root, commitsDirName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if e.IsDir() || strings.HasSuffix(e.Name(), ".tmp") {
			continue
		}
		o, ok := oid.FromHex(e.Name())
		if !ok {
			continue
		}
		c, err := s.GetCommit(o)
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
	}
	return nil
}

// ResolvePrefix resolves a (possibly abbreviated) commit id to the
// unique commit OID whose hex string begins with prefix. It returns
// ErrObjectNotFound both when nothing matches and, per the source
// behavior preserved in spec.md §4.2/§9, when more than one commit
// matches — the prefix search doesn't distinguish "not found" from
// "ambiguous" for the caller.
func (s *Store) ResolvePrefix(prefix string) (oid.OID, error) {
	prefix = strings.ToLower(prefix)
	entries, err := os.ReadDir(filepath.Join(s.root, commitsDirName))
	if err != nil {
		if os.IsNotExist(err) {
			return oid.Zero, ErrObjectNotFound
		}
		return oid.Zero, err
	}
	var match oid.OID
	found := false
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		o, ok := oid.FromHex(e.Name())
		if !ok {
			continue
		}
		if found {
			return oid.Zero, ErrObjectNotFound
		}
		match = o
		found = true
	}
	if !found {
		return oid.Zero, ErrObjectNotFound
	}
	return match, nil
}
