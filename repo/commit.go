package repo

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nullstate/gitlet/errs"
	"github.com/nullstate/gitlet/object"
	"github.com/nullstate/gitlet/oid"
)

// Commit records the staged changes per spec.md §4.5 `commit`.
func (r *Repository) Commit(message string) (*object.Commit, error) {
	return r.commit(message, nil)
}

// commit is the shared implementation behind the plain `commit` verb and
// a merge's final merge-commit write (spec.md §4.6: "write a merge
// commit with message ..., parents (H, G)").
func (r *Repository) commit(message string, secondParent *oid.OID) (*object.Commit, error) {
	if message == "" {
		return nil, errs.ErrEmptyMessage
	}
	if r.Index.IsEmpty() {
		return nil, errs.ErrNoChanges
	}

	head, err := r.headCommit()
	if err != nil {
		return nil, err
	}

	tree := head.Tree.Clone()
	r.Index.Additions(func(path string, o oid.OID) {
		tree.Set(path, o)
	})
	for _, path := range r.Index.Removals() {
		tree.Delete(path)
	}

	parent := head.Hash
	c := object.New(message, object.FormatTimestamp(time.Now()), tree, &parent, secondParent)
	if err := r.Store.PutCommit(c); err != nil {
		return nil, err
	}

	branch, err := r.currentBranch()
	if err != nil {
		return nil, err
	}
	if err := r.Refs.SetBranch(branch, c.Hash); err != nil {
		return nil, err
	}

	r.Index.Clear()
	if err := r.saveIndex(); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"commit": c.Hash.String(), "branch": branch}).Debug("repo: committed")
	return c, nil
}
