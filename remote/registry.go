// Package remote implements the remote record: a name -> filesystem path
// mapping to sibling repositories (spec.md §3 "Remote record", §4.7
// add-remote/rm-remote). The actual push/fetch/pull synchronization
// logic lives in package repo, which reuses Repository Operations on
// both the local and remote repository handles (spec.md §2: "Remote
// Synchronization ... sits above Repository Operations").
package remote

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	ErrRemoteExists  = errors.New("remote: already exists")
	ErrRemoteMissing = errors.New("remote: does not exist")
)

const remotesDirName = "remotes"

// Registry manages remote records persisted under a repository's
// `.gitlet/remotes/` directory, one file per remote holding its target
// path.
type Registry struct {
	root string
}

// Open returns a Registry rooted at dot (a repository's `.gitlet`
// directory), creating the remotes/ directory if absent.
func Open(dot string) (*Registry, error) {
	dir := filepath.Join(dot, remotesDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Registry{root: dir}, nil
}

func (r *Registry) path(name string) string {
	return filepath.Join(r.root, name)
}

// Add registers name -> path, failing with ErrRemoteExists if name is
// already registered. path is normalized to the host's separator
// (spec.md §4.7).
func (r *Registry) Add(name, path string) error {
	if r.Has(name) {
		return ErrRemoteExists
	}
	normalized := filepath.FromSlash(strings.ReplaceAll(path, "\\", "/"))
	return os.WriteFile(r.path(name), []byte(normalized), 0o644)
}

// Remove deletes remote name, failing with ErrRemoteMissing if it isn't
// registered.
func (r *Registry) Remove(name string) error {
	if !r.Has(name) {
		return ErrRemoteMissing
	}
	return os.Remove(r.path(name))
}

// Has reports whether remote name is registered.
func (r *Registry) Has(name string) bool {
	_, err := os.Stat(r.path(name))
	return err == nil
}

// Get returns the target path of remote name.
func (r *Registry) Get(name string) (string, error) {
	data, err := os.ReadFile(r.path(name))
	if os.IsNotExist(err) {
		return "", ErrRemoteMissing
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// List returns every registered remote name, in lexicographic order.
func (r *Registry) List() ([]string, error) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
