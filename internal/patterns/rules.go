package patterns

import (
	"github.com/rawblock/washtrade-engine/internal/graph"
	"github.com/rawblock/washtrade-engine/pkg/models"
)

// Rule-Based Aggregation
//
// Unions the wallets implicated by the three structural detectors
// (circular trading, self-dealing, ping-pong) and surfaces every transfer
// touching any of them. A wallet caught in one ring taints its whole
// transfer history for review, not just the ring's own transfers.

// RuleBasedFlags returns the transfers touching any wallet flagged by the
// structural detectors, in batch order.
func RuleBasedFlags(g *graph.Graph, maxCycleLength, pingPongMinCount int) []models.TransferRecord {
	flagged := make(map[string]struct{})
	for _, cycle := range CircularTrading(g, maxCycleLength) {
		for _, w := range cycle {
			flagged[w] = struct{}{}
		}
	}
	for _, w := range SelfDealing(g) {
		flagged[w] = struct{}{}
	}
	for _, pp := range PingPong(g, pingPongMinCount) {
		flagged[pp.Pair.A] = struct{}{}
		flagged[pp.Pair.B] = struct{}{}
	}

	var flaggedTxs []models.TransferRecord
	for _, tx := range g.Records() {
		if _, ok := flagged[tx.FromWallet]; ok {
			flaggedTxs = append(flaggedTxs, tx)
			continue
		}
		if _, ok := flagged[tx.ToWallet]; ok {
			flaggedTxs = append(flaggedTxs, tx)
		}
	}
	return flaggedTxs
}
