package relationship

import (
	"github.com/rawblock/washtrade-engine/internal/graph"
	"github.com/rawblock/washtrade-engine/internal/pool"
	"github.com/rawblock/washtrade-engine/pkg/models"
)

// Relationship Scoring
//
// For every unordered wallet pair inside one cluster, five independent
// factors in [0,1]. They are not collapsed into a scalar here; weighting
// is an alerting policy the reporting layer owns.
//
//   confidence   min(1, pair transfer count / 5)
//   strength     min(1, pair transfer value / 100)
//   historical   0 with no transfers, 0.1 with one, else span / 30 days
//   multi_hop    0 when directly connected (a direct edge is already
//                explained) or unreachable within maxHops; otherwise
//                1 − (distance−1)/maxHops, decaying with hop count
//   cross_chain  1 when the wallets' chain sets intersect
//
// Cross-cluster pairs are never scored: with no undirected path between
// them, every factor but cross_chain is trivially minimal. A missing
// path or unknown node is always a 0 factor, never an error.

// DefaultMaxHops bounds the multi-hop path search.
const DefaultMaxHops = 3

// Factor normalization constants.
const (
	confidenceFullCount  = 5.0
	strengthFullValue    = 100.0
	historyFullSpan      = float64(30 * 24 * 60 * 60) // 30 days in seconds
	singleTransferScore  = 0.1
)

// Scorer computes pairwise relationship scores over a built graph.
type Scorer struct {
	g       *graph.Graph
	maxHops int
	prof    *pool.Profiler
}

// NewScorer creates a scorer. Non-positive maxHops falls back to the
// default; nil profilers get a private one.
func NewScorer(g *graph.Graph, maxHops int, prof *pool.Profiler) *Scorer {
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}
	if prof == nil {
		prof = pool.NewProfiler()
	}
	return &Scorer{g: g, maxHops: maxHops, prof: prof}
}

// ScoreAll computes the factor set for every unordered in-cluster pair.
// Keys are canonical wallet pairs; each key is written exactly once.
func (s *Scorer) ScoreAll(clusters [][]string) map[models.WalletPair]models.RelationshipScore {
	defer s.prof.Track("score_relationships")()

	scores := make(map[models.WalletPair]models.RelationshipScore)
	for _, cluster := range clusters {
		for i := 0; i < len(cluster); i++ {
			for j := i + 1; j < len(cluster); j++ {
				pair := models.NewWalletPair(cluster[i], cluster[j])
				scores[pair] = s.scorePair(pair)
			}
		}
	}
	return scores
}

func (s *Scorer) scorePair(pair models.WalletPair) models.RelationshipScore {
	txs := s.g.BetweenRecords(pair.A, pair.B)

	totalValue := 0.0
	for _, tx := range txs {
		totalValue += tx.Amount
	}

	return models.RelationshipScore{
		Confidence:          clamp1(float64(len(txs)) / confidenceFullCount),
		Strength:            clamp1(totalValue / strengthFullValue),
		HistoricalEvolution: s.historicalEvolution(txs),
		MultiHop:            s.multiHop(pair.A, pair.B),
		CrossChain:          s.crossChain(pair.A, pair.B),
	}
}

// historicalEvolution rewards relationships observed over a longer span.
func (s *Scorer) historicalEvolution(txs []models.TransferRecord) float64 {
	if len(txs) == 0 {
		return 0
	}
	if len(txs) == 1 {
		return singleTransferScore
	}

	minTS, maxTS := txs[0].Timestamp, txs[0].Timestamp
	for _, tx := range txs[1:] {
		if tx.Timestamp < minTS {
			minTS = tx.Timestamp
		}
		if tx.Timestamp > maxTS {
			maxTS = tx.Timestamp
		}
	}
	return clamp1(float64(maxTS-minTS) / historyFullSpan)
}

// multiHop scores the indirect link between two wallets. The pair is
// unordered, so the distance is the shorter of the two directed BFS
// distances.
func (s *Scorer) multiHop(a, b string) float64 {
	aID, okA := s.g.NodeID(a)
	bID, okB := s.g.NodeID(b)
	if !okA || !okB {
		return 0
	}

	dist := graph.Distance(s.g, aID, bID)
	if rev := graph.Distance(s.g, bID, aID); rev != -1 && (dist == -1 || rev < dist) {
		dist = rev
	}

	switch {
	case dist <= 1: // unreachable (-1) or directly connected
		return 0
	case dist <= s.maxHops:
		return 1 - float64(dist-1)/float64(s.maxHops)
	default:
		return 0
	}
}

// crossChain is 1 when the wallets have transacted on at least one common
// chain. Records without a chain contribute nothing, so a batch with no
// chain data degrades this factor to 0.
func (s *Scorer) crossChain(a, b string) float64 {
	ca := s.g.Chains(a)
	cb := s.g.Chains(b)
	if len(cb) < len(ca) {
		ca, cb = cb, ca
	}
	for chain := range ca {
		if _, ok := cb[chain]; ok {
			return 1
		}
	}
	return 0
}

func clamp1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
