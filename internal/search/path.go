// Package search provides deterministic path finding and visibility
// queries over hex maps. It knows nothing about grids or units; the
// caller supplies movement rules as a cost function.
package search

import (
	"container/heap"
	"errors"
	"fmt"

	"github.com/samdwyer/hexfield/internal/hex"
)

// ErrUnreachable reports that no path exists under the given rules.
var ErrUnreachable = errors.New("no path to goal")

// CostFunc reports the cost of stepping from one coordinate onto an
// adjacent one; ok=false marks the step impassable. Costs must be
// positive and may not depend on how from was reached.
type CostFunc func(from, to hex.Coord) (cost int, ok bool)

// Path is an immutable search result: the coordinates visited from
// start to goal inclusive, and the total entry cost.
type Path struct {
	Coords []hex.Coord
	Cost   int
}

// pathNode tracks one frontier entry.
type pathNode struct {
	coord  hex.Coord
	cost   int
	seq    uint64 // insertion order; breaks cost ties first-discovered-wins
	parent *pathNode
	index  int // heap index
}

type frontier []*pathNode

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	return f[i].seq < f[j].seq
}

func (f frontier) Swap(i, j int) {
	f[i], f[j] = f[j], f[i]
	f[i].index = i
	f[j].index = j
}

func (f *frontier) Push(x any) {
	n := x.(*pathNode)
	n.index = len(*f)
	*f = append(*f, n)
}

func (f *frontier) Pop() any {
	old := *f
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*f = old[:len(old)-1]
	return n
}

// FindPath returns the lowest-cost path from start to goal under the
// given movement rules, using uniform-cost search. Equal-cost routes
// tie-break by discovery order, so identical inputs always yield the
// identical path. The grid is never mutated.
func FindPath(costs CostFunc, start, goal hex.Coord) (Path, error) {
	if start == goal {
		return Path{Coords: []hex.Coord{start}, Cost: 0}, nil
	}

	var seq uint64
	f := &frontier{{coord: start}}
	heap.Init(f)

	best := map[hex.Coord]int{start: 0}
	closed := make(map[hex.Coord]bool)

	for f.Len() > 0 {
		cur := heap.Pop(f).(*pathNode)
		if closed[cur.coord] {
			continue // stale entry superseded by a cheaper one
		}
		closed[cur.coord] = true

		if cur.coord == goal {
			return buildPath(cur), nil
		}

		for _, n := range cur.coord.Neighbors() {
			if closed[n] {
				continue
			}
			stepCost, ok := costs(cur.coord, n)
			if !ok {
				continue
			}
			total := cur.cost + stepCost
			if prev, seen := best[n]; seen && prev <= total {
				continue
			}
			best[n] = total
			seq++
			heap.Push(f, &pathNode{coord: n, cost: total, seq: seq, parent: cur})
		}
	}

	return Path{}, fmt.Errorf("%w: %v -> %v", ErrUnreachable, start, goal)
}

// buildPath walks parent links back to the start and reverses.
func buildPath(end *pathNode) Path {
	var coords []hex.Coord
	for n := end; n != nil; n = n.parent {
		coords = append(coords, n.coord)
	}
	for i, j := 0, len(coords)-1; i < j; i, j = i+1, j-1 {
		coords[i], coords[j] = coords[j], coords[i]
	}
	return Path{Coords: coords, Cost: end.cost}
}
