// Package refs implements the reference store: a mapping from branch
// name to commit OID, plus the HEAD pointer naming the current branch
// (spec.md §4.3).
package refs

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nullstate/gitlet/oid"
)

var (
	ErrBranchExists          = errors.New("refs: branch already exists")
	ErrBranchMissing         = errors.New("refs: branch does not exist")
	ErrCannotRemoveCurrent   = errors.New("refs: cannot remove the current branch")
	ErrHeadUnset             = errors.New("refs: HEAD is not set")
)

const refsDirName = "refs"
const headFileName = "HEAD"

// Store manages branch references and HEAD under a repository's
// `.gitlet` root.
type Store struct {
	root string
}

// Open returns a Store rooted at root, creating the refs/ directory if
// absent.
func Open(root string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(root, refsDirName), 0o755); err != nil {
		return nil, err
	}
	return &Store{root: root}, nil
}

func (s *Store) branchPath(name string) string {
	return filepath.Join(s.root, refsDirName, filepath.FromSlash(name))
}

// CreateBranch creates a new branch named name pointing at o. Fails with
// ErrBranchExists if the branch already exists.
func (s *Store) CreateBranch(name string, o oid.OID) error {
	p := s.branchPath(name)
	if _, err := os.Stat(p); err == nil {
		return ErrBranchExists
	}
	return s.SetBranch(name, o)
}

// SetBranch moves (or creates) branch name to point at o.
func (s *Store) SetBranch(name string, o oid.OID) error {
	p := s.branchPath(name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p, []byte(o.String()), 0o644)
}

// GetBranch returns the commit OID that branch name points at.
func (s *Store) GetBranch(name string) (oid.OID, error) {
	data, err := os.ReadFile(s.branchPath(name))
	if os.IsNotExist(err) {
		return oid.Zero, ErrBranchMissing
	}
	if err != nil {
		return oid.Zero, err
	}
	o, ok := oid.FromHex(strings.TrimSpace(string(data)))
	if !ok {
		return oid.Zero, ErrBranchMissing
	}
	return o, nil
}

// HasBranch reports whether branch name exists.
func (s *Store) HasBranch(name string) bool {
	_, err := os.Stat(s.branchPath(name))
	return err == nil
}

// DeleteBranch removes branch name. Fails with ErrBranchMissing if it
// doesn't exist, or ErrCannotRemoveCurrent if name is the active branch.
func (s *Store) DeleteBranch(name string) error {
	if !s.HasBranch(name) {
		return ErrBranchMissing
	}
	current, err := s.GetHead()
	if err == nil && current == name {
		return ErrCannotRemoveCurrent
	}
	return os.Remove(s.branchPath(name))
}

// ListBranches returns the names of every local branch (not including
// remote-tracking branches), in lexicographic order.
func (s *Store) ListBranches() ([]string, error) {
	root := filepath.Join(s.root, refsDirName)
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// ListRemoteBranches returns the "<remote>/<branch>" names of every
// remote-tracking branch under refs/<remote>/, in lexicographic order.
func (s *Store) ListRemoteBranches(remote string) ([]string, error) {
	root := filepath.Join(s.root, refsDirName, remote)
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, remote+"/"+e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// GetHead returns the name of the currently active branch. HEAD is
// stored as the absolute filesystem path of the active branch's ref
// file (spec.md §6); the branch name is that path relative to refs/, so
// a remote-tracking branch comes back as "<remote>/<branch>".
func (s *Store) GetHead() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.root, headFileName))
	if os.IsNotExist(err) {
		return "", ErrHeadUnset
	}
	if err != nil {
		return "", err
	}
	p := strings.TrimSpace(string(data))
	rel, err := filepath.Rel(filepath.Join(s.root, refsDirName), p)
	if err != nil {
		return "", ErrHeadUnset
	}
	return filepath.ToSlash(rel), nil
}

// SetHead points HEAD at branch name.
func (s *Store) SetHead(name string) error {
	return os.WriteFile(filepath.Join(s.root, headFileName), []byte(s.branchPath(name)), 0o644)
}

// GetHeadCommit is a convenience combining GetHead and GetBranch.
func (s *Store) GetHeadCommit() (oid.OID, error) {
	name, err := s.GetHead()
	if err != nil {
		return oid.Zero, err
	}
	return s.GetBranch(name)
}
