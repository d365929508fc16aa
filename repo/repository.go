// Package repo implements the Repository Operations: the public verbs
// of spec.md §4.5 (init, add, rm, commit, log, global-log, find, status,
// checkout, branch, rm-branch, reset, merge) plus the remote
// synchronization verbs of spec.md §4.7, which reuse these operations
// (spec.md §2: "Merge and Remote sit above Repository Operations and
// reuse them").
package repo

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/nullstate/gitlet/config"
	"github.com/nullstate/gitlet/errs"
	"github.com/nullstate/gitlet/index"
	"github.com/nullstate/gitlet/object"
	"github.com/nullstate/gitlet/oid"
	"github.com/nullstate/gitlet/refs"
	"github.com/nullstate/gitlet/remote"
	"github.com/nullstate/gitlet/store"
	"github.com/nullstate/gitlet/worktree"
)

// DotDirName is the repository metadata directory's name, rooted in the
// working directory (spec.md §6).
const DotDirName = ".gitlet"

// Repository is an explicit handle bundling every sub-component a
// Repository Operation needs: the object store, the reference store,
// the staging area, the working-directory adapter, remotes, and config.
// Per spec.md §9 ("Global mutable filesystem state"), the CLI front-end
// constructs exactly one Repository per invocation rather than relying
// on a process-wide current-directory variable.
type Repository struct {
	Root   string // the working directory
	Dot    string // Root/.gitlet
	Store  *store.Store
	Refs   *refs.Store
	Index  *index.Index
	WT     *worktree.Worktree
	Config *config.Config
	Remote *remote.Registry

	// UseColor gates ANSI highlighting of log/status output. It is
	// presentation-only — set by the CLI front-end from an IsTerminal
	// check, never by anything in this package — and never changes
	// program behavior or return values.
	UseColor bool
}

// Init creates a brand-new repository rooted at root. It fails with
// errs.ErrAlreadyInitialized if root/.gitlet already exists.
//
// root is absolutized exactly as discover does for Open, so a relative
// root (as the CLI front-end passes, e.g. "." from the working
// directory) still yields an absolute Dot/HEAD path — spec.md §6 stores
// HEAD as "the absolute filesystem path of the active branch file", and
// refs.GetHead's filepath.Rel call requires both the stored path and
// refs/ to share absoluteness to resolve correctly on every later Open.
func Init(root string) (*Repository, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	dot := filepath.Join(root, DotDirName)
	if _, err := os.Stat(dot); err == nil {
		return nil, errs.ErrAlreadyInitialized
	}
	if err := os.MkdirAll(dot, 0o755); err != nil {
		return nil, err
	}

	cfg := config.Default()
	if err := cfg.Save(dot); err != nil {
		return nil, err
	}

	r, err := open(root, dot, cfg)
	if err != nil {
		return nil, err
	}

	initial := object.New("initial commit", object.EpochTimestamp, object.NewTree(), nil, nil)
	if err := r.Store.PutCommit(initial); err != nil {
		return nil, err
	}
	if err := r.Refs.CreateBranch(cfg.Core.DefaultBranch, initial.Hash); err != nil {
		return nil, err
	}
	if err := r.Refs.SetHead(cfg.Core.DefaultBranch); err != nil {
		return nil, err
	}
	logrus.WithField("branch", cfg.Core.DefaultBranch).Debug("repo: initialized")
	return r, nil
}

// Open loads an existing repository whose root is dir or an ancestor of
// dir (mirroring the teacher's `.zeta` discovery, walking upward from
// the current directory to find `.gitlet`).
func Open(dir string) (*Repository, error) {
	root, dot, err := discover(dir)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(dot)
	if err != nil {
		return nil, err
	}
	return open(root, dot, cfg)
}

func discover(dir string) (root, dot string, err error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", "", err
	}
	for {
		candidate := filepath.Join(abs, DotDirName)
		if st, statErr := os.Stat(candidate); statErr == nil && st.IsDir() {
			return abs, candidate, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", "", os.ErrNotExist
		}
		abs = parent
	}
}

func open(root, dot string, cfg *config.Config) (*Repository, error) {
	st, err := store.OpenSized(dot, cfg.Core.CacheEntries)
	if err != nil {
		return nil, err
	}
	rf, err := refs.Open(dot)
	if err != nil {
		return nil, err
	}
	idx, err := index.Load(dot)
	if err != nil {
		return nil, err
	}
	rm, err := remote.Open(dot)
	if err != nil {
		return nil, err
	}
	return &Repository{
		Root:   root,
		Dot:    dot,
		Store:  st,
		Refs:   rf,
		Index:  idx,
		WT:     worktree.New(root, DotDirName),
		Config: cfg,
		Remote: rm,
	}, nil
}

// saveIndex persists the in-memory staging area, called at the end of
// every operation that mutated it.
func (r *Repository) saveIndex() error {
	return r.Index.Save(r.Dot)
}

// headCommit returns the commit the active branch currently points at.
func (r *Repository) headCommit() (*object.Commit, error) {
	h, err := r.Refs.GetHeadCommit()
	if err != nil {
		return nil, err
	}
	return r.Store.GetCommit(h)
}

// currentBranch returns the active branch's name.
func (r *Repository) currentBranch() (string, error) {
	return r.Refs.GetHead()
}

// resolveCommit resolves a commit id or abbreviation to a decoded commit.
func (r *Repository) resolveCommit(ref string) (*object.Commit, error) {
	o, ok := oid.FromHex(ref)
	if !ok {
		var err error
		o, err = r.Store.ResolvePrefix(ref)
		if err != nil {
			return nil, errs.NewCommitNotFound(ref)
		}
	} else if !r.Store.Has(o) {
		var err error
		o, err = r.Store.ResolvePrefix(ref)
		if err != nil {
			return nil, errs.NewCommitNotFound(ref)
		}
	}
	c, err := r.Store.GetCommit(o)
	if err != nil {
		return nil, errs.NewCommitNotFound(ref)
	}
	return c, nil
}
