package repo

import (
	"github.com/sirupsen/logrus"

	"github.com/nullstate/gitlet/errs"
	"github.com/nullstate/gitlet/object"
)

// Add stages path per spec.md §4.5 `add`.
func (r *Repository) Add(path string) error {
	if r.Index.ContainsRemove(path) {
		r.Index.UnstageRemove(path)
		return r.saveIndex()
	}

	if !r.WT.Exists(path) {
		return errs.ErrFileMissing
	}

	data, err := r.WT.Read(path)
	if err != nil {
		return err
	}
	blob := object.NewBlob(data)

	head, err := r.headCommit()
	if err != nil {
		return err
	}
	if tracked, ok := head.Tree.Get(path); ok && tracked == blob.Hash {
		r.Index.UnstageAdd(path)
		return r.saveIndex()
	}

	if err := r.Store.PutBlob(blob); err != nil {
		return err
	}
	r.Index.StageAdd(path, blob.Hash)
	logrus.WithField("path", path).Debug("repo: staged addition")
	return r.saveIndex()
}

// Rm stages path for removal per spec.md §4.5 `rm`.
func (r *Repository) Rm(path string) error {
	head, err := r.headCommit()
	if err != nil {
		return err
	}
	_, trackedInHead := head.Tree.Get(path)
	stagedForAdd := r.Index.ContainsAdd(path)

	if !stagedForAdd && !trackedInHead {
		return errs.ErrNothingToRemove
	}

	if stagedForAdd {
		r.Index.UnstageAdd(path)
	}
	if trackedInHead {
		r.Index.StageRemove(path)
		if err := r.WT.Remove(path); err != nil {
			return err
		}
	}
	logrus.WithField("path", path).Debug("repo: staged removal")
	return r.saveIndex()
}
