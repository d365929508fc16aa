package repo

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nullstate/gitlet/errs"
	"github.com/nullstate/gitlet/merge"
	"github.com/nullstate/gitlet/object"
	"github.com/nullstate/gitlet/oid"
	"github.com/nullstate/gitlet/store"
)

// Merge incorporates branchName into the current branch, per spec.md
// §4.6: pre-checks, split-point discovery, fast-forward / already-up-to-
// date short-circuits, per-path three-way classification, and a final
// merge commit. A non-nil error other than errs.ErrMergeConflict means
// the merge did not happen at all; errs.ErrMergeConflict is returned
// alongside a completed (but conflict-marked) merge commit.
func (r *Repository) Merge(branchName string) error {
	if !r.Index.IsEmpty() {
		return errs.ErrUncommittedChanges
	}
	if !r.Refs.HasBranch(branchName) {
		return errs.ErrBranchMissing
	}

	current, err := r.currentBranch()
	if err != nil {
		return err
	}
	if branchName == current {
		return errs.ErrSelfMerge
	}

	hOID, err := r.Refs.GetHeadCommit()
	if err != nil {
		return err
	}
	gOID, err := r.Refs.GetBranch(branchName)
	if err != nil {
		return err
	}
	if hOID == gOID {
		return errs.ErrSelfMerge
	}

	if err := r.checkUntrackedOverwrite(); err != nil {
		return err
	}

	sOID, err := merge.SplitPoint(r.Store.GetCommit, hOID, gOID)
	if err != nil {
		return err
	}

	if sOID == gOID {
		return errs.ErrAlreadyUpToDate
	}
	if sOID == hOID {
		return r.fastForward(branchName, gOID)
	}

	h, err := r.Store.GetCommit(hOID)
	if err != nil {
		return err
	}
	g, err := r.Store.GetCommit(gOID)
	if err != nil {
		return err
	}
	s, err := r.Store.GetCommit(sOID)
	if err != nil {
		return err
	}

	conflicted, err := r.applyMergeClassification(s, h, g)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("Merged %s into %s.", branchName, current)
	if _, err := r.commit(message, &gOID); err != nil {
		return err
	}
	if conflicted {
		return errs.ErrMergeConflict
	}
	return nil
}

// fastForward implements the S = H case: the current branch is simply
// moved to G's head via checkout-branch semantics (spec.md §4.6).
func (r *Repository) fastForward(branchName string, gOID oid.OID) error {
	target, err := r.Store.GetCommit(gOID)
	if err != nil {
		return err
	}
	if err := r.replaceWorkingDirectory(target); err != nil {
		return err
	}
	branch, err := r.currentBranch()
	if err != nil {
		return err
	}
	if err := r.Refs.SetBranch(branch, gOID); err != nil {
		return err
	}
	r.Index.Clear()
	if err := r.saveIndex(); err != nil {
		return err
	}
	logrus.WithField("branch", branchName).Debug("repo: fast-forwarded")
	return errs.ErrFastForwarded
}

// applyMergeClassification walks every path appearing in s, h, or g,
// applying spec.md §4.6's three-way table: writing/removing working-
// directory files, staging the result, and writing conflict markers
// where both sides diverged. It reports whether any conflict occurred.
func (r *Repository) applyMergeClassification(s, h, g *object.Commit) (bool, error) {
	conflicted := false
	for _, path := range merge.Paths(s.Tree, h.Tree, g.Tree) {
		sp := optionalOID(s.Tree, path)
		hp := optionalOID(h.Tree, path)
		gp := optionalOID(g.Tree, path)

		switch merge.Classify(sp, hp, gp) {
		case merge.NoOp:
			// keep H's current state untouched

		case merge.WriteTheirs:
			blob, err := r.Store.GetBlob(*gp)
			if err != nil {
				return conflicted, err
			}
			if err := r.WT.Write(path, blob.Data); err != nil {
				return conflicted, err
			}
			r.Index.StageAdd(path, *gp)

		case merge.Remove:
			if err := r.WT.Remove(path); err != nil {
				return conflicted, err
			}
			r.Index.StageRemove(path)

		case merge.Conflict:
			hContent, err := blobBytesOrEmpty(r.Store, hp)
			if err != nil {
				return conflicted, err
			}
			gContent, err := blobBytesOrEmpty(r.Store, gp)
			if err != nil {
				return conflicted, err
			}
			data := merge.ConflictMarker(hContent, gContent)
			if err := r.WT.Write(path, data); err != nil {
				return conflicted, err
			}
			blob := object.NewBlob(data)
			if err := r.Store.PutBlob(blob); err != nil {
				return conflicted, err
			}
			r.Index.StageAdd(path, blob.Hash)
			conflicted = true
		}
	}
	return conflicted, nil
}

func optionalOID(t *object.Tree, path string) *oid.OID {
	o, ok := t.Get(path)
	if !ok {
		return nil
	}
	return &o
}

func blobBytesOrEmpty(st *store.Store, o *oid.OID) ([]byte, error) {
	if o == nil {
		return nil, nil
	}
	b, err := st.GetBlob(*o)
	if err != nil {
		return nil, err
	}
	return b.Data, nil
}
