package patterns

import (
	"github.com/rawblock/washtrade-engine/internal/graph"
)

// Circular Trading Detection
//
// A wash-trading ring moves an asset around a closed loop of controlled
// wallets (A→B→C→A) to fabricate volume without any change of beneficial
// ownership. The detector enumerates directed simple cycles of length in
// (2, maxCycleLength]:
//
//   - length 1 (self-loops) is excluded: covered by self-dealing
//   - length 2 (back-and-forth) is excluded: covered by ping-pong
//
// keeping each transfer pattern counted by exactly one detector.
//
// Cycle enumeration grows combinatorially with graph density, so the
// search runs per connected component rather than over the whole graph,
// and the length bound stays small (default 4).

// DefaultMaxCycleLength bounds the cycle search.
const DefaultMaxCycleLength = 4

// CircularTrading returns every directed simple cycle with more than two
// and at most maxCycleLength wallets. Each cycle appears once, rotated so
// its lexicographically smallest wallet comes first.
func CircularTrading(g *graph.Graph, maxCycleLength int) [][]string {
	var cycles [][]string
	for _, comp := range graph.ComponentNodes(g) {
		if len(comp) < 3 {
			continue
		}
		for _, ids := range graph.BoundedCycles(g, comp, maxCycleLength) {
			cycle := make([]string, len(ids))
			for i, id := range ids {
				cycle[i] = g.Wallet(id)
			}
			cycles = append(cycles, rotateToMin(cycle))
		}
	}
	return cycles
}

// rotateToMin rotates a cycle so its smallest wallet is first, preserving
// traversal order. Cycles are equal up to rotation; this picks the
// canonical representative.
func rotateToMin(cycle []string) []string {
	min := 0
	for i, w := range cycle {
		if w < cycle[min] {
			min = i
		}
	}
	if min == 0 {
		return cycle
	}
	rotated := make([]string, 0, len(cycle))
	rotated = append(rotated, cycle[min:]...)
	rotated = append(rotated, cycle[:min]...)
	return rotated
}
