package patterns

import (
	"sort"

	"github.com/google/uuid"

	"github.com/rawblock/washtrade-engine/internal/graph"
	"github.com/rawblock/washtrade-engine/pkg/models"
)

// Temporal Sequence Detection
//
// Coordinated wash-trading campaigns fire transfers in tight bursts.
// The detector sorts the batch by timestamp and slides a time window
// (default 120s) over it, evicting from the front whenever the newest
// transfer outruns the oldest by more than the window. Every time the
// window holds more than burstMinSize transfers, its current contents are
// emitted as a candidate burst.
//
// Overlapping bursts are each emitted without deduplication; collapsing
// near-identical bursts is left to the reporting layer, which knows the
// alerting granularity it wants.

// DefaultBurstWindowSeconds is the sliding window span.
const DefaultBurstWindowSeconds int64 = 120

// burstMinSize is the window occupancy above which a burst is emitted.
const burstMinSize = 3

// TemporalSequences returns the candidate bursts in timestamp order, each
// tagged with a fresh sequence ID.
func TemporalSequences(g *graph.Graph, windowSeconds int64) []models.BurstSequence {
	records := g.Records()
	sorted := make([]models.TransferRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Timestamp < sorted[j].Timestamp })

	var bursts []models.BurstSequence
	var window []models.TransferRecord
	for _, tx := range sorted {
		window = append(window, tx)
		for len(window) > 0 && tx.Timestamp-window[0].Timestamp > windowSeconds {
			window = window[1:]
		}
		if len(window) > burstMinSize {
			burst := make([]models.TransferRecord, len(window))
			copy(burst, window)
			bursts = append(bursts, models.BurstSequence{
				ID:      uuid.NewString(),
				Records: burst,
			})
		}
	}
	return bursts
}
