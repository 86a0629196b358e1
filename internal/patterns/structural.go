package patterns

import (
	"sort"

	"github.com/rawblock/washtrade-engine/internal/graph"
	"github.com/rawblock/washtrade-engine/pkg/models"
)

// Structural Analysis
//
// A diagnostic summary of the transfer graph rather than a fraud flag:
// node and edge counts plus the strongly connected components. A large
// SCC means every member can reach every other member through directed
// transfers, which is where circular flows live; the reporting layer uses
// the summary to size and prioritize deeper review.

// Structural returns the graph summary. Component members are sorted
// lexicographically and components ordered by first member, so the
// summary is stable across runs.
func Structural(g *graph.Graph) models.StructuralSummary {
	idComps := graph.StronglyConnected(g)
	comps := make([][]string, 0, len(idComps))
	for _, ids := range idComps {
		comp := make([]string, 0, len(ids))
		for _, id := range ids {
			comp = append(comp, g.Wallet(id))
		}
		sort.Strings(comp)
		comps = append(comps, comp)
	}
	sort.Slice(comps, func(i, j int) bool { return comps[i][0] < comps[j][0] })

	return models.StructuralSummary{
		NumNodes:         g.NumNodes(),
		NumEdges:         g.NumEdges(),
		StrongComponents: comps,
	}
}
