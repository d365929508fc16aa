// Package errs defines the closed error taxonomy of spec.md §7: each
// kind pairs a sentinel (or, where the message needs data, a small typed
// error) with its canonical user-visible text. None of these carry a
// process exit code — that mapping is the CLI front-end's job (spec.md
// §1, §6), not the core's.
package errs

import "errors"

var (
	ErrAlreadyInitialized  = errors.New("A Gitlet version-control system already exists in the current directory.")
	ErrFileMissing         = errors.New("File does not exist.")
	ErrNothingToRemove     = errors.New("No reason to remove the file.")
	ErrEmptyMessage        = errors.New("Please enter a commit message.")
	ErrNoChanges           = errors.New("No changes added to the commit.")
	ErrFileNotInCommit     = errors.New("File does not exist in that commit.")
	ErrBranchMissing       = errors.New("A branch with that name does not exist.")
	ErrBranchExists        = errors.New("A branch with that name already exists.")
	ErrAlreadyOnBranch     = errors.New("No need to checkout the current branch.")
	ErrCannotRemoveCurrent = errors.New("Cannot remove the current branch.")
	ErrUntrackedOverwrite  = errors.New("There is an untracked file in the way; delete it, or add and commit it first.")
	ErrNoMatch             = errors.New("Found no commit with that message.")
	ErrUncommittedChanges  = errors.New("You have uncommitted changes.")
	ErrSelfMerge           = errors.New("Cannot merge a branch with itself.")
	ErrAlreadyUpToDate     = errors.New("Given branch is an ancestor of the current branch.")
	ErrRemoteExists        = errors.New("A remote with that name already exists.")
	ErrRemoteMissing       = errors.New("A remote with that name does not exist.")
	ErrRemoteNotFound      = errors.New("Remote directory not found.")
	ErrRemoteAhead         = errors.New("Please pull down remote changes before pushing.")
)

// MergeConflict is a non-fatal signal: the merge completed but one or
// more files were written with conflict markers. Callers of Merge check
// for this with errors.Is; it never aborts the merge commit.
var ErrMergeConflict = errors.New("Encountered a merge conflict.")

// FastForwarded is a non-fatal signal: Merge completed as a fast-forward
// rather than producing a merge commit. Like ErrMergeConflict, it
// reports a successful outcome through the error channel so the caller
// can print the right message without a separate result type.
var ErrFastForwarded = errors.New("Current branch fast-forwarded.")

// CommitNotFoundError reports a commit id or prefix that does not
// resolve to any object in the store, or resolves ambiguously.
type CommitNotFoundError struct {
	Ref string
}

func (e *CommitNotFoundError) Error() string {
	return "No commit with that id exists."
}

// NewCommitNotFound builds a CommitNotFoundError for ref (an id, prefix,
// or ambiguous prefix).
func NewCommitNotFound(ref string) error {
	return &CommitNotFoundError{Ref: ref}
}

// IsCommitNotFound reports whether err is a CommitNotFoundError.
func IsCommitNotFound(err error) bool {
	var e *CommitNotFoundError
	return errors.As(err, &e)
}
