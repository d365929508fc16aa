package merge

import (
	"sort"

	"github.com/nullstate/gitlet/object"
	"github.com/nullstate/gitlet/oid"
)

// Action describes what a merge must do to one path, per the three-way
// classification table in spec.md §4.6.
type Action int

const (
	// NoOp means the current (H) tree's entry for the path is already
	// the merge result; nothing is written or staged.
	NoOp Action = iota
	// WriteTheirs means write G's blob for the path and stage it.
	WriteTheirs
	// Remove means the path must be removed (H unchanged, G deleted).
	Remove
	// Conflict means the path diverged on both sides and needs a
	// conflict-marker file.
	Conflict
)

// Classify implements spec.md §4.6's three-way table for a single path,
// given its (possibly absent) blob id at the split point S, the current
// branch H, and the incoming branch G.
func Classify(sp, hp, gp *oid.OID) Action {
	eq := func(a, b *oid.OID) bool { return a != nil && b != nil && *a == *b }

	if sp == nil {
		switch {
		case hp != nil && gp == nil:
			return NoOp // added only in H
		case hp == nil && gp != nil:
			return WriteTheirs // added only in G
		case eq(hp, gp):
			return NoOp // added identically on both sides
		default:
			return Conflict // added differently on both sides
		}
	}

	hModified := !eq(hp, sp)
	gModified := !eq(gp, sp)

	switch {
	case !hModified && !gModified:
		return NoOp
	case !hModified && gModified:
		if gp == nil {
			return Remove
		}
		return WriteTheirs
	case hModified && !gModified:
		return NoOp // keep H's state, whatever it is
	default: // both modified relative to S
		if hp == nil && gp == nil {
			return NoOp // deleted on both sides
		}
		if eq(hp, gp) {
			return NoOp // changed identically on both sides
		}
		return Conflict
	}
}

// Paths returns the union of every path appearing in any of s, h, g, in
// lexicographic order.
func Paths(s, h, g *object.Tree) []string {
	seen := make(map[string]struct{})
	var order []string
	for _, t := range []*object.Tree{s, h, g} {
		if t == nil {
			continue
		}
		for _, p := range t.Paths() {
			if _, ok := seen[p]; !ok {
				seen[p] = struct{}{}
				order = append(order, p)
			}
		}
	}
	// Paths are already collected from three independently-sorted
	// sources; re-sort the union for a single deterministic order.
	sort.Strings(order)
	return order
}

// ConflictMarker builds the conflict-marker bytes for a path given H's
// and G's content (nil meaning absent), per spec.md §4.6.
func ConflictMarker(hContent, gContent []byte) []byte {
	var out []byte
	out = append(out, "<<<<<<< HEAD\n"...)
	out = append(out, hContent...)
	out = append(out, "=======\n"...)
	out = append(out, gContent...)
	out = append(out, ">>>>>>>\n"...)
	return out
}
