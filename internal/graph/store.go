package graph

import (
	"sort"
	"sync"

	"github.com/rawblock/washtrade-engine/pkg/models"
)

// Transfer Graph Store
//
// Owns the directed multigraph derived from one transfer batch. Nodes are
// wallets, edges are individual transfers (parallel edges between the same
// pair are preserved, each carrying its record). The graph and its lookup
// indices are built exactly once per batch: concurrent first callers race
// on a double-checked lock and every later caller gets the cached graph.
//
// Everything the store hands out is read-only after construction, so the
// pattern detectors and the pairwise mapper stages can share it across
// workers without further synchronization.

// Store guards the build-once graph for a single transfer batch.
type Store struct {
	mu      sync.RWMutex
	records []models.TransferRecord
	graph   *Graph
}

// NewStore wraps a transfer batch. The graph is not built until the first
// Graph call.
func NewStore(records []models.TransferRecord) *Store {
	return &Store{records: records}
}

// Graph returns the cached graph, building it on first use. Safe for
// concurrent callers; at most one build runs.
func (s *Store) Graph() *Graph {
	s.mu.RLock()
	g := s.graph
	s.mu.RUnlock()
	if g != nil {
		return g
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.graph == nil {
		s.graph = build(s.records)
	}
	return s.graph
}

// edge is one transfer projected onto the node arena.
type edge struct {
	from, to int
	tx       int // index into records
}

// Graph is the directed multigraph plus the lookup indices built alongside
// it. All fields are immutable once build returns.
type Graph struct {
	records []models.TransferRecord

	ids     map[string]int
	wallets []string // arena: wallet for node id i

	edges []edge
	succ  [][]int // deduplicated successor node ids, ascending

	pairTxs  map[[2]string][]int // ordered (from,to) -> record indices
	partners map[string]map[string]struct{}
	fees     map[string][]float64
	chains   map[string]map[string]struct{}
}

func build(records []models.TransferRecord) *Graph {
	g := &Graph{
		records:  records,
		ids:      make(map[string]int),
		pairTxs:  make(map[[2]string][]int),
		partners: make(map[string]map[string]struct{}),
		fees:     make(map[string][]float64),
		chains:   make(map[string]map[string]struct{}),
	}

	for i, tx := range records {
		from := g.intern(tx.FromWallet)
		to := g.intern(tx.ToWallet)
		g.edges = append(g.edges, edge{from: from, to: to, tx: i})

		g.pairTxs[[2]string{tx.FromWallet, tx.ToWallet}] = append(g.pairTxs[[2]string{tx.FromWallet, tx.ToWallet}], i)
		g.partner(tx.FromWallet)[tx.ToWallet] = struct{}{}
		g.partner(tx.ToWallet)[tx.FromWallet] = struct{}{}
		g.fees[tx.FromWallet] = append(g.fees[tx.FromWallet], tx.Fee)
		if tx.Chain != "" {
			g.chain(tx.FromWallet)[tx.Chain] = struct{}{}
			g.chain(tx.ToWallet)[tx.Chain] = struct{}{}
		}
	}

	// Collapse parallel edges into one successor entry per neighbor.
	g.succ = make([][]int, len(g.wallets))
	seen := make(map[[2]int]struct{}, len(g.edges))
	for _, e := range g.edges {
		key := [2]int{e.from, e.to}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		g.succ[e.from] = append(g.succ[e.from], e.to)
	}
	for _, nbrs := range g.succ {
		sort.Ints(nbrs)
	}

	return g
}

func (g *Graph) intern(wallet string) int {
	if id, ok := g.ids[wallet]; ok {
		return id
	}
	id := len(g.wallets)
	g.ids[wallet] = id
	g.wallets = append(g.wallets, wallet)
	return id
}

func (g *Graph) partner(wallet string) map[string]struct{} {
	set, ok := g.partners[wallet]
	if !ok {
		set = make(map[string]struct{})
		g.partners[wallet] = set
	}
	return set
}

func (g *Graph) chain(wallet string) map[string]struct{} {
	set, ok := g.chains[wallet]
	if !ok {
		set = make(map[string]struct{})
		g.chains[wallet] = set
	}
	return set
}

// NumNodes returns the number of distinct wallets in the batch.
func (g *Graph) NumNodes() int { return len(g.wallets) }

// NumEdges returns the number of transfers, counting parallel edges.
func (g *Graph) NumEdges() int { return len(g.edges) }

// Records returns the underlying batch. Callers must not mutate it.
func (g *Graph) Records() []models.TransferRecord { return g.records }

// Wallets returns the node arena in insertion order. Callers must not
// mutate it.
func (g *Graph) Wallets() []string { return g.wallets }

// NodeID resolves a wallet to its arena id.
func (g *Graph) NodeID(wallet string) (int, bool) {
	id, ok := g.ids[wallet]
	return id, ok
}

// Wallet returns the wallet at arena id i.
func (g *Graph) Wallet(i int) string { return g.wallets[i] }

// Successors returns the deduplicated successor node ids of i.
func (g *Graph) Successors(i int) []int { return g.succ[i] }

// HasEdge reports whether at least one transfer from one wallet to another
// exists.
func (g *Graph) HasEdge(from, to string) bool {
	return len(g.pairTxs[[2]string{from, to}]) > 0
}

// EdgeCount returns the number of parallel transfers on the ordered pair.
func (g *Graph) EdgeCount(from, to string) int {
	return len(g.pairTxs[[2]string{from, to}])
}

// PairRecords returns the transfers on the ordered pair, in batch order.
func (g *Graph) PairRecords(from, to string) []models.TransferRecord {
	idxs := g.pairTxs[[2]string{from, to}]
	if len(idxs) == 0 {
		return nil
	}
	out := make([]models.TransferRecord, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, g.records[i])
	}
	return out
}

// BetweenRecords returns the transfers between an unordered pair, both
// directions, in batch order per direction.
func (g *Graph) BetweenRecords(a, b string) []models.TransferRecord {
	return append(g.PairRecords(a, b), g.PairRecords(b, a)...)
}

// Partners returns the set of counterparties a wallet has traded with,
// in either direction. Callers must not mutate it.
func (g *Graph) Partners(wallet string) map[string]struct{} { return g.partners[wallet] }

// Fees returns the fees paid by a wallet as sender, in batch order.
// Callers must not mutate it.
func (g *Graph) Fees(wallet string) []float64 { return g.fees[wallet] }

// Chains returns the set of chains a wallet has transacted on. Records
// without a chain contribute nothing. Callers must not mutate it.
func (g *Graph) Chains(wallet string) map[string]struct{} { return g.chains[wallet] }
