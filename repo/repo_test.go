package repo_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullstate/gitlet/errs"
	"github.com/nullstate/gitlet/repo"
)

func writeFile(t *testing.T, root, path, contents string) {
	t.Helper()
	full := filepath.Join(root, path)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(contents), 0o644))
}

func TestInitCreatesMasterAtInitialCommit(t *testing.T) {
	root := t.TempDir()
	r, err := repo.Init(root)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Log(&buf))
	assert.Contains(t, buf.String(), "initial commit")
}

func TestInitFailsIfAlreadyInitialized(t *testing.T) {
	root := t.TempDir()
	_, err := repo.Init(root)
	require.NoError(t, err)

	_, err = repo.Init(root)
	assert.ErrorIs(t, err, errs.ErrAlreadyInitialized)
}

func TestAddCommitLog(t *testing.T) {
	root := t.TempDir()
	r, err := repo.Init(root)
	require.NoError(t, err)

	writeFile(t, root, "a.txt", "hello")
	require.NoError(t, r.Add("a.txt"))

	_, err = r.Commit("add a")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Log(&buf))
	assert.Contains(t, buf.String(), "add a")
	assert.Contains(t, buf.String(), "initial commit")
}

func TestCommitFailsWithNoChanges(t *testing.T) {
	root := t.TempDir()
	r, err := repo.Init(root)
	require.NoError(t, err)

	_, err = r.Commit("nothing staged")
	assert.ErrorIs(t, err, errs.ErrNoChanges)
}

func TestCommitFailsWithEmptyMessage(t *testing.T) {
	root := t.TempDir()
	r, err := repo.Init(root)
	require.NoError(t, err)
	writeFile(t, root, "a.txt", "hello")
	require.NoError(t, r.Add("a.txt"))

	_, err = r.Commit("")
	assert.ErrorIs(t, err, errs.ErrEmptyMessage)
}

func TestAddUnmodifiedFileDoesNotStage(t *testing.T) {
	root := t.TempDir()
	r, err := repo.Init(root)
	require.NoError(t, err)

	writeFile(t, root, "a.txt", "hello")
	require.NoError(t, r.Add("a.txt"))
	_, err = r.Commit("add a")
	require.NoError(t, err)

	require.NoError(t, r.Add("a.txt"))
	assert.True(t, r.Index.IsEmpty())
}

func TestRmFailsWithNothingToRemove(t *testing.T) {
	root := t.TempDir()
	r, err := repo.Init(root)
	require.NoError(t, err)
	err = r.Rm("never-tracked.txt")
	assert.ErrorIs(t, err, errs.ErrNothingToRemove)
}

func TestRmStagedAdditionJustUnstages(t *testing.T) {
	root := t.TempDir()
	r, err := repo.Init(root)
	require.NoError(t, err)

	writeFile(t, root, "a.txt", "hello")
	require.NoError(t, r.Add("a.txt"))
	require.NoError(t, r.Rm("a.txt"))
	assert.True(t, r.Index.IsEmpty())
	assert.True(t, r.WT.Exists("a.txt"))
}

func TestBranchAndCheckoutBranch(t *testing.T) {
	root := t.TempDir()
	r, err := repo.Init(root)
	require.NoError(t, err)

	require.NoError(t, r.Branch("feature"))
	require.NoError(t, r.CheckoutBranch("feature"))

	err = r.CheckoutBranch("feature")
	assert.ErrorIs(t, err, errs.ErrAlreadyOnBranch)

	err = r.CheckoutBranch("missing")
	assert.ErrorIs(t, err, errs.ErrBranchMissing)
}

func TestRmBranchFailsOnCurrent(t *testing.T) {
	root := t.TempDir()
	r, err := repo.Init(root)
	require.NoError(t, err)

	err = r.RmBranch("master")
	assert.ErrorIs(t, err, errs.ErrCannotRemoveCurrent)
}

func TestStatusSections(t *testing.T) {
	root := t.TempDir()
	r, err := repo.Init(root)
	require.NoError(t, err)

	writeFile(t, root, "tracked.txt", "v1")
	require.NoError(t, r.Add("tracked.txt"))
	_, err = r.Commit("track it")
	require.NoError(t, err)

	writeFile(t, root, "tracked.txt", "v2")
	writeFile(t, root, "staged.txt", "new")
	require.NoError(t, r.Add("staged.txt"))
	writeFile(t, root, "loose.txt", "untracked")

	var buf bytes.Buffer
	require.NoError(t, r.Status(&buf))
	out := buf.String()
	assert.Contains(t, out, "=== Branches ===")
	assert.Contains(t, out, "*master")
	assert.Contains(t, out, "=== Staged Files ===\nstaged.txt")
	assert.Contains(t, out, "tracked.txt (modified)")
	assert.Contains(t, out, "=== Untracked Files ===\nloose.txt")
}

func TestCheckoutBranchFailsOnUntrackedOverwrite(t *testing.T) {
	root := t.TempDir()
	r, err := repo.Init(root)
	require.NoError(t, err)
	require.NoError(t, r.Branch("feature"))

	writeFile(t, root, "surprise.txt", "not tracked anywhere")
	err = r.CheckoutBranch("feature")
	assert.ErrorIs(t, err, errs.ErrUntrackedOverwrite)
}

func TestResetMovesBranchAndWorkingDir(t *testing.T) {
	root := t.TempDir()
	r, err := repo.Init(root)
	require.NoError(t, err)

	writeFile(t, root, "a.txt", "v1")
	require.NoError(t, r.Add("a.txt"))
	first, err := r.Commit("first")
	require.NoError(t, err)

	writeFile(t, root, "a.txt", "v2")
	require.NoError(t, r.Add("a.txt"))
	_, err = r.Commit("second")
	require.NoError(t, err)

	require.NoError(t, r.Reset(first.Hash.String()))
	data, err := r.WT.Read("a.txt")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(data))
}

func TestMergeFastForward(t *testing.T) {
	root := t.TempDir()
	r, err := repo.Init(root)
	require.NoError(t, err)

	require.NoError(t, r.Branch("feature"))
	require.NoError(t, r.CheckoutBranch("feature"))
	writeFile(t, root, "a.txt", "v1")
	require.NoError(t, r.Add("a.txt"))
	_, err = r.Commit("on feature")
	require.NoError(t, err)

	require.NoError(t, r.CheckoutBranch("master"))
	err = r.Merge("feature")
	assert.ErrorIs(t, err, errs.ErrFastForwarded)
	assert.True(t, r.WT.Exists("a.txt"))
}

func TestMergeAlreadyUpToDate(t *testing.T) {
	root := t.TempDir()
	r, err := repo.Init(root)
	require.NoError(t, err)

	require.NoError(t, r.Branch("feature"))
	writeFile(t, root, "a.txt", "ahead")
	require.NoError(t, r.Add("a.txt"))
	_, err = r.Commit("master moves ahead")
	require.NoError(t, err)

	err = r.Merge("feature")
	assert.ErrorIs(t, err, errs.ErrAlreadyUpToDate)
}

func TestMergeSelfFails(t *testing.T) {
	root := t.TempDir()
	r, err := repo.Init(root)
	require.NoError(t, err)
	err = r.Merge("master")
	assert.ErrorIs(t, err, errs.ErrSelfMerge)
}

func TestMergeProducesConflictMarkers(t *testing.T) {
	root := t.TempDir()
	r, err := repo.Init(root)
	require.NoError(t, err)

	writeFile(t, root, "shared.txt", "base")
	require.NoError(t, r.Add("shared.txt"))
	_, err = r.Commit("base commit")
	require.NoError(t, err)

	require.NoError(t, r.Branch("feature"))
	require.NoError(t, r.CheckoutBranch("feature"))
	writeFile(t, root, "shared.txt", "feature change")
	require.NoError(t, r.Add("shared.txt"))
	_, err = r.Commit("feature edits shared")
	require.NoError(t, err)

	require.NoError(t, r.CheckoutBranch("master"))
	writeFile(t, root, "shared.txt", "master change")
	require.NoError(t, r.Add("shared.txt"))
	_, err = r.Commit("master edits shared")
	require.NoError(t, err)

	err = r.Merge("feature")
	assert.ErrorIs(t, err, errs.ErrMergeConflict)

	data, readErr := r.WT.Read("shared.txt")
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "<<<<<<< HEAD")
	assert.Contains(t, string(data), "master change")
	assert.Contains(t, string(data), "feature change")
	assert.Contains(t, string(data), ">>>>>>>")
}

func TestPushCreatesRemoteBranch(t *testing.T) {
	localRoot := t.TempDir()
	remoteRoot := t.TempDir()

	local, err := repo.Init(localRoot)
	require.NoError(t, err)
	_, err = repo.Init(remoteRoot)
	require.NoError(t, err)

	writeFile(t, localRoot, "a.txt", "v1")
	require.NoError(t, local.Add("a.txt"))
	_, err = local.Commit("first")
	require.NoError(t, err)
	require.NoError(t, local.Branch("feature"))

	require.NoError(t, local.AddRemote("origin", remoteRoot))
	// The remote's own init already created its own "master"; push a
	// branch name that does not exist there yet so the no-such-branch
	// path is exercised instead of requiring shared ancestry.
	require.NoError(t, local.Push("origin", "feature"))

	reopenedRemote, err := repo.Open(remoteRoot)
	require.NoError(t, err)
	assert.True(t, reopenedRemote.Refs.HasBranch("feature"))
}

// TestFetchAndPull establishes shared lineage between two independently
// initialized repositories the same way the CLI surface allows: a push
// to a not-yet-existing remote branch copies the full local ancestry,
// after which further commits made directly against the remote share a
// real common ancestor with the local side.
func TestFetchAndPull(t *testing.T) {
	localRoot := t.TempDir()
	remoteRoot := t.TempDir()

	local, err := repo.Init(localRoot)
	require.NoError(t, err)
	_, err = repo.Init(remoteRoot)
	require.NoError(t, err)

	writeFile(t, localRoot, "a.txt", "v1")
	require.NoError(t, local.Add("a.txt"))
	_, err = local.Commit("first")
	require.NoError(t, err)

	require.NoError(t, local.AddRemote("origin", remoteRoot))
	require.NoError(t, local.Push("origin", "shared"))

	remote, err := repo.Open(remoteRoot)
	require.NoError(t, err)
	require.NoError(t, remote.CheckoutBranch("shared"))
	writeFile(t, remoteRoot, "b.txt", "v2")
	require.NoError(t, remote.Add("b.txt"))
	_, err = remote.Commit("remote addition")
	require.NoError(t, err)

	require.NoError(t, local.Fetch("origin", "shared"))
	assert.True(t, local.Refs.HasBranch("origin/shared"))

	err = local.Pull("origin", "shared")
	assert.ErrorIs(t, err, errs.ErrFastForwarded)
	assert.True(t, local.WT.Exists("b.txt"))
}
