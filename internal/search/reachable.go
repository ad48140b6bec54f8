package search

import (
	"container/heap"

	"github.com/samdwyer/hexfield/internal/hex"
)

// Reachable returns every coordinate whose minimum cumulative entry
// cost from start is within budget, mapped to that cost. The start is
// always included at cost 0. Membership depends only on minimum
// costs, never on traversal order.
func Reachable(costs CostFunc, start hex.Coord, budget int) map[hex.Coord]int {
	return reachableWith(defaultNeighbors, costs, start, budget)
}

func defaultNeighbors(c hex.Coord) []hex.Coord {
	n := c.Neighbors()
	return n[:]
}

// reachableWith is Reachable with an explicit neighbor enumeration,
// separated so tests can permute visit order.
func reachableWith(neighbors func(hex.Coord) []hex.Coord, costs CostFunc, start hex.Coord, budget int) map[hex.Coord]int {
	best := map[hex.Coord]int{start: 0}
	if budget <= 0 {
		return best
	}

	var seq uint64
	f := &frontier{{coord: start}}
	heap.Init(f)
	closed := make(map[hex.Coord]bool)

	for f.Len() > 0 {
		cur := heap.Pop(f).(*pathNode)
		if closed[cur.coord] {
			continue
		}
		closed[cur.coord] = true

		for _, n := range neighbors(cur.coord) {
			if closed[n] {
				continue
			}
			stepCost, ok := costs(cur.coord, n)
			if !ok {
				continue
			}
			total := cur.cost + stepCost
			if total > budget {
				continue
			}
			if prev, seen := best[n]; seen && prev <= total {
				continue
			}
			best[n] = total
			seq++
			heap.Push(f, &pathNode{coord: n, cost: total, seq: seq})
		}
	}

	return best
}
