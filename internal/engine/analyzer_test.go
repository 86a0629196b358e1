package engine

import (
	"errors"
	"sort"
	"testing"

	"github.com/rawblock/washtrade-engine/internal/config"
	"github.com/rawblock/washtrade-engine/internal/logger"
	"github.com/rawblock/washtrade-engine/internal/metrics"
	"github.com/rawblock/washtrade-engine/pkg/models"
)

func newTestAnalyzer(tracker *metrics.Tracker) *Analyzer {
	return New(config.Default(), logger.NewNop(), tracker)
}

// washBatch is a small batch with known fraud signals: a 3-wallet ring,
// a self-dealer, and one clean transfer on a separate island.
func washBatch() []models.TransferRecord {
	return []models.TransferRecord{
		{ID: "1", FromWallet: "A", ToWallet: "B", Amount: 10, Timestamp: 0, Price: 100.5},
		{ID: "2", FromWallet: "B", ToWallet: "C", Amount: 10, Timestamp: 10, Price: 100.5},
		{ID: "3", FromWallet: "C", ToWallet: "A", Amount: 10, Timestamp: 20, Price: 100.5},
		{ID: "4", FromWallet: "D", ToWallet: "D", Amount: 5, Timestamp: 30, Price: 100.5},
		{ID: "5", FromWallet: "E", ToWallet: "F", Amount: 7, Timestamp: 5000, Price: 100.5},
	}
}

func TestAnalyze_EndToEnd(t *testing.T) {
	a := newTestAnalyzer(nil)

	report, err := a.Analyze(washBatch())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.RunID == "" {
		t.Error("report must carry a run id")
	}
	if report.TransferCount != 5 {
		t.Errorf("transferCount = %d, want 5", report.TransferCount)
	}
	if report.WalletCount != 6 {
		t.Errorf("walletCount = %d, want 6", report.WalletCount)
	}

	if len(report.Cycles) != 1 {
		t.Fatalf("cycles = %v, want the one ring", report.Cycles)
	}
	if got := report.Cycles[0]; len(got) != 3 || got[0] != "A" {
		t.Errorf("ring = %v, want canonical [A B C]", got)
	}
	if len(report.SelfDealing) != 1 || report.SelfDealing[0] != "D" {
		t.Errorf("selfDealing = %v, want [D]", report.SelfDealing)
	}

	// Three islands: the ring, the self-dealer, the clean pair.
	if len(report.Clusters) != 3 {
		t.Errorf("clusters = %v, want 3", report.Clusters)
	}
}

func TestAnalyze_RejectsMalformedRecord(t *testing.T) {
	a := newTestAnalyzer(nil)

	records := washBatch()
	records[2].ToWallet = ""

	_, err := a.Analyze(records)
	if !errors.Is(err, models.ErrMalformedRecord) {
		t.Errorf("err = %v, want ErrMalformedRecord", err)
	}
}

func TestAnalyze_EmptyBatch(t *testing.T) {
	a := newTestAnalyzer(nil)

	report, err := a.Analyze(nil)
	if err != nil {
		t.Fatalf("empty batch must not error: %v", err)
	}
	if report.WalletCount != 0 || len(report.Cycles) != 0 || len(report.Scores) != 0 {
		t.Errorf("empty batch must produce an empty report, got %+v", report)
	}
}

func TestAnalyze_ScoresAreSortedAndInCluster(t *testing.T) {
	a := newTestAnalyzer(nil)

	report, err := a.Analyze(washBatch())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !sort.SliceIsSorted(report.Scores, func(i, j int) bool {
		return report.Scores[i].Pair.Less(report.Scores[j].Pair)
	}) {
		t.Error("scores must be pair-sorted")
	}

	member := make(map[string]int)
	for ci, cluster := range report.Clusters {
		for _, w := range cluster {
			member[w] = ci
		}
	}
	for _, sp := range report.Scores {
		if member[sp.Pair.A] != member[sp.Pair.B] {
			t.Errorf("scored pair %v spans clusters", sp.Pair)
		}
	}
}

func TestAnalyze_ProfileCoversStages(t *testing.T) {
	a := newTestAnalyzer(nil)

	report, err := a.Analyze(washBatch())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, stage := range []string{
		"build_graph",
		"pattern_detectors",
		"behavioral_similarity",
		"fee_overlap",
		"cluster_wallets",
		"score_relationships",
	} {
		if _, ok := report.ProfileSeconds[stage]; !ok {
			t.Errorf("profile missing stage %q", stage)
		}
	}
}

func TestAnalyze_RecordsLatency(t *testing.T) {
	tracker := metrics.NewTracker()
	a := newTestAnalyzer(tracker)

	if _, err := a.Analyze(washBatch()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tracker.Report().RunsRecorded != 1 {
		t.Error("a completed run must record its latency")
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	a := newTestAnalyzer(nil)

	first, err := a.Analyze(washBatch())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := a.Analyze(washBatch())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first.Scores) != len(second.Scores) {
		t.Fatalf("score counts differ: %d vs %d", len(first.Scores), len(second.Scores))
	}
	for i := range first.Scores {
		if first.Scores[i] != second.Scores[i] {
			t.Errorf("score %d differs between runs: %+v vs %+v",
				i, first.Scores[i], second.Scores[i])
		}
	}
}
