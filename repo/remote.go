package repo

import (
	"os"

	"github.com/nullstate/gitlet/errs"
	"github.com/nullstate/gitlet/oid"
	"github.com/nullstate/gitlet/remote"
)

// AddRemote registers name -> path (spec.md §4.7 `add-remote`).
func (r *Repository) AddRemote(name, path string) error {
	if err := r.Remote.Add(name, path); err != nil {
		if err == remote.ErrRemoteExists {
			return errs.ErrRemoteExists
		}
		return err
	}
	return nil
}

// RmRemote deregisters name (spec.md §4.7 `rm-remote`).
func (r *Repository) RmRemote(name string) error {
	if err := r.Remote.Remove(name); err != nil {
		if err == remote.ErrRemoteMissing {
			return errs.ErrRemoteMissing
		}
		return err
	}
	return nil
}

// openRemote resolves a registered remote name to an open Repository
// handle on its target path.
func (r *Repository) openRemote(name string) (*Repository, error) {
	path, err := r.Remote.Get(name)
	if err != nil {
		if err == remote.ErrRemoteMissing {
			return nil, errs.ErrRemoteMissing
		}
		return nil, err
	}
	remoteRepo, err := Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.ErrRemoteNotFound
		}
		return nil, err
	}
	return remoteRepo, nil
}

// copyAncestry copies head and every ancestor reachable from it via
// Parent and SecondParent edges, plus every blob they reference, from r
// into dst — skipping anything dst already has (spec.md §4.7 push/
// fetch). A commit is written to dst only after its parents and blobs
// are, preserving the object-store invariant of spec.md §3.
func (r *Repository) copyAncestry(dst *Repository, head oid.OID) error {
	visited := make(map[oid.OID]bool)
	var visit func(oid.OID) error
	visit = func(o oid.OID) error {
		if visited[o] {
			return nil
		}
		visited[o] = true
		if dst.Store.Has(o) {
			return nil
		}
		c, err := r.Store.GetCommit(o)
		if err != nil {
			return err
		}

		var blobErr error
		c.Tree.Each(func(path string, b oid.OID) {
			if blobErr != nil || dst.Store.Has(b) {
				return
			}
			blob, err := r.Store.GetBlob(b)
			if err != nil {
				blobErr = err
				return
			}
			blobErr = dst.Store.PutBlob(blob)
		})
		if blobErr != nil {
			return blobErr
		}

		if c.Parent != nil {
			if err := visit(*c.Parent); err != nil {
				return err
			}
		}
		if c.SecondParent != nil {
			if err := visit(*c.SecondParent); err != nil {
				return err
			}
		}
		return dst.Store.PutCommit(c)
	}
	return visit(head)
}

// Push sends the local head's ancestry to remoteName's branch (spec.md
// §4.7 `push`).
func (r *Repository) Push(remoteName, branch string) error {
	remoteRepo, err := r.openRemote(remoteName)
	if err != nil {
		return err
	}

	hOID, err := r.Refs.GetHeadCommit()
	if err != nil {
		return err
	}

	if !remoteRepo.Refs.HasBranch(branch) {
		if err := r.copyAncestry(remoteRepo, hOID); err != nil {
			return err
		}
		return remoteRepo.Refs.SetBranch(branch, hOID)
	}

	rOID, err := remoteRepo.Refs.GetBranch(branch)
	if err != nil {
		return err
	}
	found := false
	for cur := hOID; ; {
		if cur == rOID {
			found = true
			break
		}
		c, err := r.Store.GetCommit(cur)
		if err != nil {
			return err
		}
		if c.Parent == nil {
			break
		}
		cur = *c.Parent
	}
	if !found {
		return errs.ErrRemoteAhead
	}
	if err := r.copyAncestry(remoteRepo, hOID); err != nil {
		return err
	}
	return remoteRepo.Refs.SetBranch(branch, hOID)
}

// Fetch copies remoteName's branch head and ancestry into the local
// object store and moves the local tracking branch
// "<remoteName>/<branch>" to it (spec.md §4.7 `fetch`).
func (r *Repository) Fetch(remoteName, branch string) error {
	remoteRepo, err := r.openRemote(remoteName)
	if err != nil {
		return err
	}
	if !remoteRepo.Refs.HasBranch(branch) {
		return errs.ErrBranchMissing
	}
	gOID, err := remoteRepo.Refs.GetBranch(branch)
	if err != nil {
		return err
	}
	if err := remoteRepo.copyAncestry(r, gOID); err != nil {
		return err
	}
	trackingBranch := remoteName + "/" + branch
	if r.Refs.HasBranch(trackingBranch) {
		return r.Refs.SetBranch(trackingBranch, gOID)
	}
	return r.Refs.CreateBranch(trackingBranch, gOID)
}

// Pull fetches remoteName's branch and merges its tracking branch into
// the current branch (spec.md §4.7 `pull`).
func (r *Repository) Pull(remoteName, branch string) error {
	if err := r.Fetch(remoteName, branch); err != nil {
		return err
	}
	return r.Merge(remoteName + "/" + branch)
}
