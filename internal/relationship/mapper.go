package relationship

import (
	"sort"
	"strconv"

	"github.com/rawblock/washtrade-engine/internal/graph"
	"github.com/rawblock/washtrade-engine/internal/pool"
	"github.com/rawblock/washtrade-engine/pkg/models"
)

// Wallet Relationship Mapping
//
// Infers which wallets are likely controlled or coordinated by the same
// operator. Signals, cheapest first:
//
//   - Common funding: one sender fanning out to many recipients
//   - Behavioral similarity: two wallets sharing many counterparties
//   - Temporal coordination: distinct wallets transacting inside one
//     anchored time window
//   - Fee overlap: near-identical fee-value sets, a fingerprint of shared
//     tooling or batch submission
//   - Clustering: connected components of the undirected transfer graph,
//     the partition that scopes all pairwise scoring
//
// The two O(n²) stages (behavioral similarity, fee overlap) fan out over
// the worker pool: worker i compares wallet i against every j > i and
// keeps its results local; the merge after the join is the only shared
// write. Merge order never affects the result set.

// Default thresholds, matching the tuning the detectors shipped with.
const (
	DefaultMinSharedPartners   = 3
	DefaultTimeWindowSeconds   = int64(600)
	DefaultFeeOverlapThreshold = 0.9
)

// coordinationMinWallets: a "group" of one or two wallets is just a trade.
const coordinationMinWallets = 2

// Mapper computes relationship signals over a built transfer graph.
type Mapper struct {
	g    *graph.Graph
	pool *pool.Pool
	prof *pool.Profiler
}

// NewMapper creates a mapper. A nil profiler gets a private one so
// callers that do not care about timings can pass nil.
func NewMapper(g *graph.Graph, p *pool.Pool, prof *pool.Profiler) *Mapper {
	if prof == nil {
		prof = pool.NewProfiler()
	}
	return &Mapper{g: g, pool: p, prof: prof}
}

// FundingSources maps each sender to the distinct recipients it has
// funded, sorted. The reporting layer uses this to spot fan-out funding.
func (m *Mapper) FundingSources() map[string][]string {
	funded := make(map[string]map[string]struct{})
	for _, tx := range m.g.Records() {
		set, ok := funded[tx.FromWallet]
		if !ok {
			set = make(map[string]struct{})
			funded[tx.FromWallet] = set
		}
		set[tx.ToWallet] = struct{}{}
	}

	out := make(map[string][]string, len(funded))
	for sender, set := range funded {
		recipients := make([]string, 0, len(set))
		for r := range set {
			recipients = append(recipients, r)
		}
		sort.Strings(recipients)
		out[sender] = recipients
	}
	return out
}

// BehavioralSimilarity returns the unordered pairs sharing at least
// minShared counterparties, computed across the worker pool.
func (m *Mapper) BehavioralSimilarity(minShared int) ([]models.WalletPair, error) {
	defer m.prof.Track("behavioral_similarity")()

	wallets := m.g.Wallets()
	partial := make([][]models.WalletPair, len(wallets))

	err := m.pool.RunIndexed(len(wallets), func(i int) error {
		pi := m.g.Partners(wallets[i])
		var local []models.WalletPair
		for j := i + 1; j < len(wallets); j++ {
			if sharedPartners(pi, m.g.Partners(wallets[j])) >= minShared {
				local = append(local, models.NewWalletPair(wallets[i], wallets[j]))
			}
		}
		partial[i] = local
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mergePairs(partial), nil
}

// sharedPartners counts the intersection, walking the smaller set.
func sharedPartners(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	shared := 0
	for p := range a {
		if _, ok := b[p]; ok {
			shared++
		}
	}
	return shared
}

// TemporalCoordination groups transfers by anchored time windows: a group
// opens at its first transfer's timestamp and absorbs every transfer
// within windowSeconds of that anchor. The anchor is fixed at group start,
// not re-based per addition, so a group spans at most one window measured
// from its first member. Groups involving more than two distinct wallets
// are emitted; the groups are disjoint and cover the batch in time order.
func (m *Mapper) TemporalCoordination(windowSeconds int64) []models.CoordinationGroup {
	records := m.g.Records()
	sorted := make([]models.TransferRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Timestamp < sorted[j].Timestamp })

	var groups []models.CoordinationGroup
	for i := 0; i < len(sorted); {
		anchor := sorted[i].Timestamp
		wallets := map[string]struct{}{
			sorted[i].FromWallet: {},
			sorted[i].ToWallet:   {},
		}

		j := i + 1
		for j < len(sorted) && sorted[j].Timestamp-anchor <= windowSeconds {
			wallets[sorted[j].FromWallet] = struct{}{}
			wallets[sorted[j].ToWallet] = struct{}{}
			j++
		}

		if len(wallets) > coordinationMinWallets {
			members := make([]string, 0, len(wallets))
			for w := range wallets {
				members = append(members, w)
			}
			sort.Strings(members)
			groups = append(groups, models.CoordinationGroup{
				AnchorTimestamp: anchor,
				Wallets:         members,
			})
		}
		i = j
	}
	return groups
}

// FeeOverlap returns the unordered pairs whose fee-value sets overlap at
// or above the threshold (|intersection| / |union|), computed across the
// worker pool. Wallets that never paid a fee as sender are skipped.
func (m *Mapper) FeeOverlap(threshold float64) ([]models.WalletPair, error) {
	defer m.prof.Track("fee_overlap")()

	var wallets []string
	for _, w := range m.g.Wallets() {
		if len(m.g.Fees(w)) > 0 {
			wallets = append(wallets, w)
		}
	}

	feeSets := make([]map[string]struct{}, len(wallets))
	for i, w := range wallets {
		feeSets[i] = feeSet(m.g.Fees(w))
	}

	partial := make([][]models.WalletPair, len(wallets))
	err := m.pool.RunIndexed(len(wallets), func(i int) error {
		var local []models.WalletPair
		for j := i + 1; j < len(wallets); j++ {
			if feeJaccard(feeSets[i], feeSets[j]) >= threshold {
				local = append(local, models.NewWalletPair(wallets[i], wallets[j]))
			}
		}
		partial[i] = local
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mergePairs(partial), nil
}

// feeSet builds the distinct-value set of a fee list. Values are keyed by
// their shortest exact formatting so set membership matches float
// equality without using floats as map keys.
func feeSet(fees []float64) map[string]struct{} {
	set := make(map[string]struct{}, len(fees))
	for _, f := range fees {
		set[strconv.FormatFloat(f, 'g', -1, 64)] = struct{}{}
	}
	return set
}

// feeJaccard is |intersection| / |union| of two fee-value sets.
func feeJaccard(a, b map[string]struct{}) float64 {
	inter := 0
	for v := range a {
		if _, ok := b[v]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union < 1 {
		union = 1
	}
	return float64(inter) / float64(union)
}

// Clusters returns the connected components of the undirected projection
// of the transfer graph: every wallet in the batch belongs to exactly one
// cluster. Only pairs within one cluster are ever scored.
func (m *Mapper) Clusters() [][]string {
	defer m.prof.Track("cluster_wallets")()
	return graph.Components(m.g)
}

// mergePairs flattens per-worker results after the join point. Input
// slices are indexed by wallet, so the merged order is deterministic even
// though consumers treat the result as an unordered set.
func mergePairs(partial [][]models.WalletPair) []models.WalletPair {
	var merged []models.WalletPair
	for _, local := range partial {
		merged = append(merged, local...)
	}
	return merged
}
