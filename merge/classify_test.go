package merge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nullstate/gitlet/merge"
	"github.com/nullstate/gitlet/oid"
)

func oidp(s string) *oid.OID {
	o := oid.Of([]byte(s))
	return &o
}

func TestClassifyAddedOnlyInG(t *testing.T) {
	assert.Equal(t, merge.WriteTheirs, merge.Classify(nil, nil, oidp("g")))
}

func TestClassifyAddedOnlyInH(t *testing.T) {
	assert.Equal(t, merge.NoOp, merge.Classify(nil, oidp("h"), nil))
}

func TestClassifyAddedIdenticallyOnBothSides(t *testing.T) {
	assert.Equal(t, merge.NoOp, merge.Classify(nil, oidp("same"), oidp("same")))
}

func TestClassifyAddedDifferentlyOnBothSidesConflicts(t *testing.T) {
	assert.Equal(t, merge.Conflict, merge.Classify(nil, oidp("h"), oidp("g")))
}

func TestClassifyUnmodifiedByEither(t *testing.T) {
	assert.Equal(t, merge.NoOp, merge.Classify(oidp("s"), oidp("s"), oidp("s")))
}

func TestClassifyOnlyGModified(t *testing.T) {
	assert.Equal(t, merge.WriteTheirs, merge.Classify(oidp("s"), oidp("s"), oidp("g")))
}

func TestClassifyOnlyHModifiedKeepsH(t *testing.T) {
	assert.Equal(t, merge.NoOp, merge.Classify(oidp("s"), oidp("h"), oidp("s")))
}

func TestClassifyDeletedOnlyInGRemoves(t *testing.T) {
	assert.Equal(t, merge.Remove, merge.Classify(oidp("s"), oidp("s"), nil))
}

func TestClassifyDeletedInHButGModifiedConflicts(t *testing.T) {
	assert.Equal(t, merge.Conflict, merge.Classify(oidp("s"), nil, oidp("g")))
}

func TestClassifyHModifiedButGDeletedConflicts(t *testing.T) {
	assert.Equal(t, merge.Conflict, merge.Classify(oidp("s"), oidp("h"), nil))
}

func TestClassifyDeletedOnBothSidesIsNoOp(t *testing.T) {
	assert.Equal(t, merge.NoOp, merge.Classify(oidp("s"), nil, nil))
}

func TestClassifyBothModifiedIdenticallyIsNoOp(t *testing.T) {
	assert.Equal(t, merge.NoOp, merge.Classify(oidp("s"), oidp("same"), oidp("same")))
}

func TestClassifyBothModifiedDifferentlyConflicts(t *testing.T) {
	assert.Equal(t, merge.Conflict, merge.Classify(oidp("s"), oidp("h"), oidp("g")))
}

func TestConflictMarkerFormat(t *testing.T) {
	got := merge.ConflictMarker([]byte("head side\n"), []byte("their side\n"))
	want := "<<<<<<< HEAD\nhead side\n=======\ntheir side\n>>>>>>>\n"
	assert.Equal(t, want, string(got))
}

func TestConflictMarkerTreatsAbsentAsEmpty(t *testing.T) {
	got := merge.ConflictMarker(nil, []byte("their side\n"))
	want := "<<<<<<< HEAD\n=======\ntheir side\n>>>>>>>\n"
	assert.Equal(t, want, string(got))
}
