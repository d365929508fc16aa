// Package merge implements the merge engine's graph algorithm: splitpoint
// discovery over the commit DAG (spec.md §4.6, §9) and the file-level
// three-way classification used to build a merge commit's tree.
package merge

import (
	"github.com/nullstate/gitlet/object"
	"github.com/nullstate/gitlet/oid"
)

// CommitGetter resolves a commit OID to its decoded commit, the only
// capability the split-point search needs from the object store.
type CommitGetter func(oid.OID) (*object.Commit, error)

// distanceMap returns, for every ancestor of start (including start
// itself, at distance 0) reachable by following both Parent and
// SecondParent edges, its minimum distance from start. BFS naturally
// yields minimum distances in an unweighted graph.
func distanceMap(get CommitGetter, start oid.OID) (map[oid.OID]int, error) {
	dist := map[oid.OID]int{start: 0}
	queue := []oid.OID{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		c, err := get(cur)
		if err != nil {
			return nil, err
		}
		d := dist[cur] + 1
		for _, p := range []*oid.OID{c.Parent, c.SecondParent} {
			if p == nil {
				continue
			}
			if _, seen := dist[*p]; seen {
				continue
			}
			dist[*p] = d
			queue = append(queue, *p)
		}
	}
	return dist, nil
}

// SplitPoint finds the latest common ancestor of h and g: over h's
// ancestry, the minimum distance from h to every reachable commit; over
// g's ancestry, a DFS (parent before secondParent, matching spec.md §9)
// that picks the first-encountered ancestor with the smallest such
// distance. The DFS is memoized so diamond-heavy histories stay linear
// instead of exponential (spec.md §9).
func SplitPoint(get CommitGetter, h, g oid.OID) (oid.OID, error) {
	hdist, err := distanceMap(get, h)
	if err != nil {
		return oid.Zero, err
	}

	visited := make(map[oid.OID]bool)
	var best oid.OID
	bestDist := -1
	var visit func(oid.OID) error
	visit = func(cur oid.OID) error {
		if visited[cur] {
			return nil
		}
		visited[cur] = true
		if d, ok := hdist[cur]; ok {
			if bestDist == -1 || d < bestDist {
				best = cur
				bestDist = d
			}
		}
		c, err := get(cur)
		if err != nil {
			return err
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
		return nil
	}
	if err := visit(g); err != nil {
		return oid.Zero, err
	}
	return best, nil
}
