package models

import (
	"errors"
	"fmt"
)

// TransferRecord represents a single wallet-to-wallet transfer.
// Records are the source of truth for one analysis batch and are
// never mutated after ingestion.
type TransferRecord struct {
	ID         string  `json:"id"`
	FromWallet string  `json:"fromWallet"`
	ToWallet   string  `json:"toWallet"`
	Amount     float64 `json:"amount"`
	Timestamp  int64   `json:"timestamp"` // Unix seconds
	Fee        float64 `json:"fee"`
	FeeRate    float64 `json:"feeRate,omitempty"`
	Price      float64 `json:"price"`
	Chain      string  `json:"chain,omitempty"`   // Network the transfer executed on
	TokenID    string  `json:"tokenId,omitempty"` // Asset identifier, when known
}

// ErrMalformedRecord is returned when a record is missing a required field.
// Malformed input is the only hard failure in the engine; every other
// degenerate case degrades to an empty or zero result.
var ErrMalformedRecord = errors.New("malformed transfer record")

// Validate checks the required fields of a batch. The returned error names
// the offending record index and the first missing field.
func Validate(records []TransferRecord) error {
	for i, tx := range records {
		if tx.FromWallet == "" {
			return fmt.Errorf("%w: record %d missing fromWallet", ErrMalformedRecord, i)
		}
		if tx.ToWallet == "" {
			return fmt.Errorf("%w: record %d missing toWallet", ErrMalformedRecord, i)
		}
	}
	return nil
}

// WalletPair is an unordered wallet pair. A is always the lexicographically
// smaller wallet, so a pair is usable as a map key regardless of direction.
type WalletPair struct {
	A string `json:"a"`
	B string `json:"b"`
}

// NewWalletPair builds the canonical form of an unordered pair.
func NewWalletPair(x, y string) WalletPair {
	if y < x {
		x, y = y, x
	}
	return WalletPair{A: x, B: y}
}

// Less orders pairs lexicographically, for deterministic report output.
func (p WalletPair) Less(q WalletPair) bool {
	if p.A != q.A {
		return p.A < q.A
	}
	return p.B < q.B
}

// PingPongPair is a wallet pair with repeated reciprocal transfers.
type PingPongPair struct {
	Pair         WalletPair `json:"pair"`
	ForwardCount int        `json:"forwardCount"` // A→B transfer count
	ReverseCount int        `json:"reverseCount"` // B→A transfer count
}

// TimingFlag marks an ordered wallet pair whose transfers are near-perfectly
// periodic at high frequency.
type TimingFlag struct {
	FromWallet   string  `json:"fromWallet"`
	ToWallet     string  `json:"toWallet"`
	MeanInterval float64 `json:"meanInterval"` // Seconds between transfers
	Count        int     `json:"count"`        // Transfers observed on the pair
}

// StructuralSummary is a diagnostic description of the transfer graph,
// not a fraud flag by itself.
type StructuralSummary struct {
	NumNodes         int        `json:"numNodes"`
	NumEdges         int        `json:"numEdges"`
	StrongComponents [][]string `json:"strongComponents"`
}

// BurstSequence is a candidate burst: more transfers inside one sliding
// window than organic activity usually produces. Overlapping bursts are
// each emitted; deduplication is a reporting concern.
type BurstSequence struct {
	ID      string           `json:"id"`
	Records []TransferRecord `json:"records"`
}

// CoordinationGroup is a set of wallets all transacting within one time
// window anchored at the group's first transfer.
type CoordinationGroup struct {
	AnchorTimestamp int64    `json:"anchorTimestamp"`
	Wallets         []string `json:"wallets"`
}

// EconomicFlag marks a transfer that fails an economic sanity check.
type EconomicFlag struct {
	Record TransferRecord `json:"record"`
	Reason string         `json:"reason"` // "irrational_value"/"high_fee_ratio"
}

// RelationshipScore holds the five independent factors computed for an
// in-cluster wallet pair. Factors are kept separate; collapsing them into
// a single scalar is a reporting-layer decision.
type RelationshipScore struct {
	Confidence          float64 `json:"confidence"`          // Transfer volume between the pair
	Strength            float64 `json:"strength"`            // Value moved between the pair
	HistoricalEvolution float64 `json:"historicalEvolution"` // Span of the observed relationship
	MultiHop            float64 `json:"multiHop"`            // Indirect-link confidence, decaying with distance
	CrossChain          float64 `json:"crossChain"`          // 1 if the wallets share a chain
}

// ScoredPair couples a wallet pair with its relationship score for
// deterministic, sortable report output.
type ScoredPair struct {
	Pair  WalletPair        `json:"pair"`
	Score RelationshipScore `json:"score"`
}
