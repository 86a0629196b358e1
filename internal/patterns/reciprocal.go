package patterns

import (
	"sort"

	"github.com/rawblock/washtrade-engine/internal/graph"
	"github.com/rawblock/washtrade-engine/pkg/models"
)

// Self-Dealing and Ping-Pong Detection
//
// The two cheapest wash-trading shapes:
//
//   - Self-dealing: a wallet transfers to itself. Zero counterparty risk,
//     trivially detectable as a self-loop edge.
//   - Ping-pong: two wallets trade the same asset back and forth. Shows up
//     as parallel edges in both directions between one pair.
//
// Ping-pong requires the minimum count in BOTH directions: two A→B
// transfers with a single B→A reply is ordinary repayment traffic, not a
// reciprocal pattern.

// DefaultPingPongMinCount is the per-direction transfer minimum.
const DefaultPingPongMinCount = 2

// SelfDealing returns the wallets with at least one self-loop transfer,
// in node order.
func SelfDealing(g *graph.Graph) []string {
	var wallets []string
	for _, w := range g.Wallets() {
		if g.HasEdge(w, w) {
			wallets = append(wallets, w)
		}
	}
	return wallets
}

// PingPong returns the unordered pairs with at least minCount transfers in
// each direction.
func PingPong(g *graph.Graph, minCount int) []models.PingPongPair {
	var pairs []models.PingPongPair
	for _, a := range g.Wallets() {
		partners := sortedPartners(g, a)
		for _, b := range partners {
			if b <= a {
				continue // visit each unordered pair once, and never a self-pair
			}
			fwd := g.EdgeCount(a, b)
			rev := g.EdgeCount(b, a)
			if fwd >= minCount && rev >= minCount {
				pairs = append(pairs, models.PingPongPair{
					Pair:         models.NewWalletPair(a, b),
					ForwardCount: fwd,
					ReverseCount: rev,
				})
			}
		}
	}
	return pairs
}

// sortedPartners returns a wallet's counterparties in lexicographic order,
// so detector output does not depend on map iteration.
func sortedPartners(g *graph.Graph, wallet string) []string {
	set := g.Partners(wallet)
	partners := make([]string, 0, len(set))
	for p := range set {
		partners = append(partners, p)
	}
	sort.Strings(partners)
	return partners
}
