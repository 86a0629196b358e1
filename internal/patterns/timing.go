package patterns

import (
	"sort"

	"github.com/rawblock/washtrade-engine/internal/graph"
	"github.com/rawblock/washtrade-engine/pkg/models"
)

// Suspicious Timing Detection
//
// Humans do not transfer on a metronome. For each ordered wallet pair the
// detector collects transfer timestamps, computes the inter-transfer
// intervals, and flags pairs that are simultaneously:
//
//   - near-perfectly periodic: interval standard deviation below 1e-3
//   - high frequency: mean interval under the threshold (default 60s)
//
// Both together are a strong bot signal; either alone is common in
// organic activity (periodic payroll is slow, bursty trading is
// irregular).

// DefaultIntervalThreshold is the mean-interval ceiling in seconds.
const DefaultIntervalThreshold = 60.0

// timingStddevEpsilon is the periodicity cutoff on interval deviation.
const timingStddevEpsilon = 1e-3

// SuspiciousTiming flags ordered pairs with near-perfectly periodic,
// high-frequency transfers. Pairs with fewer than two transfers have no
// interval and are never flagged.
func SuspiciousTiming(g *graph.Graph, intervalThreshold float64) []models.TimingFlag {
	var flags []models.TimingFlag
	for fromID, from := range g.Wallets() {
		for _, toID := range g.Successors(fromID) {
			to := g.Wallet(toID)
			records := g.PairRecords(from, to)
			if len(records) < 2 {
				continue
			}

			times := make([]int64, len(records))
			for i, tx := range records {
				times[i] = tx.Timestamp
			}
			sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

			intervals := make([]float64, len(times)-1)
			for i := 1; i < len(times); i++ {
				intervals[i-1] = float64(times[i] - times[i-1])
			}

			if stddev(intervals) < timingStddevEpsilon && mean(intervals) < intervalThreshold {
				flags = append(flags, models.TimingFlag{
					FromWallet:   from,
					ToWallet:     to,
					MeanInterval: mean(intervals),
					Count:        len(times),
				})
			}
		}
	}
	return flags
}
