package repo

import (
	"github.com/nullstate/gitlet/errs"
	"github.com/nullstate/gitlet/object"
	"github.com/nullstate/gitlet/oid"
)

// CheckoutFile overwrites path in the working directory with the head
// commit's blob for it (spec.md §4.5 `checkout-file`).
func (r *Repository) CheckoutFile(path string) error {
	head, err := r.headCommit()
	if err != nil {
		return err
	}
	return r.writeBlobToPath(head, path)
}

// CheckoutFileAt overwrites path with commitRef's blob for it (spec.md
// §4.5 `checkout-file-at`).
func (r *Repository) CheckoutFileAt(commitRef, path string) error {
	c, err := r.resolveCommit(commitRef)
	if err != nil {
		return err
	}
	return r.writeBlobToPath(c, path)
}

func (r *Repository) writeBlobToPath(c *object.Commit, path string) error {
	o, ok := c.Tree.Get(path)
	if !ok {
		return errs.ErrFileNotInCommit
	}
	blob, err := r.Store.GetBlob(o)
	if err != nil {
		return err
	}
	return r.WT.Write(path, blob.Data)
}

// checkUntrackedOverwrite implements the safety check shared by
// checkout-branch and reset (spec.md §4.5): every file actually present
// in the working directory must be either tracked by the current head
// or already staged for addition, or the operation is refused outright
// — deliberately conservative, checking every working file rather than
// only the ones the target tree would clobber (preserved source
// behavior, spec.md §9).
func (r *Repository) checkUntrackedOverwrite() error {
	head, err := r.headCommit()
	if err != nil {
		return err
	}
	files, err := r.WT.ListFiles()
	if err != nil {
		return err
	}
	for _, f := range files {
		if _, tracked := head.Tree.Get(f); tracked {
			continue
		}
		if r.Index.ContainsAdd(f) {
			continue
		}
		return errs.ErrUntrackedOverwrite
	}
	return nil
}

// replaceWorkingDirectory writes every file from target's tree and
// deletes every working-directory file the target tree doesn't contain,
// the shared write-out step for checkout-branch, reset, and a
// fast-forward merge.
func (r *Repository) replaceWorkingDirectory(target *object.Commit) error {
	files, err := r.WT.ListFiles()
	if err != nil {
		return err
	}
	for _, f := range files {
		if _, ok := target.Tree.Get(f); !ok {
			if err := r.WT.Remove(f); err != nil {
				return err
			}
		}
	}
	var writeErr error
	target.Tree.Each(func(path string, o oid.OID) {
		if writeErr != nil {
			return
		}
		blob, err := r.Store.GetBlob(o)
		if err != nil {
			writeErr = err
			return
		}
		writeErr = r.WT.Write(path, blob.Data)
	})
	return writeErr
}

// CheckoutBranch switches HEAD to branch name (spec.md §4.5
// `checkout-branch`).
func (r *Repository) CheckoutBranch(name string) error {
	if !r.Refs.HasBranch(name) {
		return errs.ErrBranchMissing
	}
	current, err := r.currentBranch()
	if err != nil {
		return err
	}
	if current == name {
		return errs.ErrAlreadyOnBranch
	}
	if err := r.checkUntrackedOverwrite(); err != nil {
		return err
	}

	targetOID, err := r.Refs.GetBranch(name)
	if err != nil {
		return err
	}
	target, err := r.Store.GetCommit(targetOID)
	if err != nil {
		return err
	}
	if err := r.replaceWorkingDirectory(target); err != nil {
		return err
	}
	r.Index.Clear()
	if err := r.saveIndex(); err != nil {
		return err
	}
	return r.Refs.SetHead(name)
}

// Reset moves the current branch to commitRef and replaces the working
// directory with its tree (spec.md §4.5 `reset`).
func (r *Repository) Reset(commitRef string) error {
	target, err := r.resolveCommit(commitRef)
	if err != nil {
		return err
	}
	if err := r.checkUntrackedOverwrite(); err != nil {
		return err
	}
	if err := r.replaceWorkingDirectory(target); err != nil {
		return err
	}
	branch, err := r.currentBranch()
	if err != nil {
		return err
	}
	if err := r.Refs.SetBranch(branch, target.Hash); err != nil {
		return err
	}
	r.Index.Clear()
	return r.saveIndex()
}
