package repo

import (
	"github.com/nullstate/gitlet/errs"
	"github.com/nullstate/gitlet/refs"
)

// Branch creates a new branch named name at the current head commit
// (spec.md §4.5 `branch`).
func (r *Repository) Branch(name string) error {
	head, err := r.Refs.GetHeadCommit()
	if err != nil {
		return err
	}
	if err := r.Refs.CreateBranch(name, head); err != nil {
		if err == refs.ErrBranchExists {
			return errs.ErrBranchExists
		}
		return err
	}
	return nil
}

// RmBranch deletes branch name (spec.md §4.5 `rm-branch`).
func (r *Repository) RmBranch(name string) error {
	if err := r.Refs.DeleteBranch(name); err != nil {
		switch err {
		case refs.ErrBranchMissing:
			return errs.ErrBranchMissing
		case refs.ErrCannotRemoveCurrent:
			return errs.ErrCannotRemoveCurrent
		default:
			return err
		}
	}
	return nil
}
