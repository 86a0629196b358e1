package engine

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rawblock/washtrade-engine/internal/config"
	"github.com/rawblock/washtrade-engine/internal/graph"
	"github.com/rawblock/washtrade-engine/internal/logger"
	"github.com/rawblock/washtrade-engine/internal/metrics"
	"github.com/rawblock/washtrade-engine/internal/patterns"
	"github.com/rawblock/washtrade-engine/internal/pool"
	"github.com/rawblock/washtrade-engine/internal/relationship"
	"github.com/rawblock/washtrade-engine/pkg/models"
)

// Analysis Orchestration
//
// One Analyze call runs the whole pipeline over a transfer batch:
//
//	validate → build graph → pattern detectors → relationship mapper
//	→ clusters → pairwise scores → report
//
// Detectors share the read-only graph and run without shared mutable
// state; the O(n²) mapper stages fan out over the worker pool. The
// report is the hand-off to the external reporting layer, so ordering is
// made deterministic here (pairs sorted lexicographically) even though
// the internal stages produce unordered collections.

// Analyzer runs batch analyses with fixed configuration.
type Analyzer struct {
	cfg     *config.Config
	log     *logger.Logger
	tracker *metrics.Tracker
}

// New creates an analyzer. A nil tracker disables KPI accumulation by
// using a private one.
func New(cfg *config.Config, log *logger.Logger, tracker *metrics.Tracker) *Analyzer {
	if tracker == nil {
		tracker = metrics.NewTracker()
	}
	return &Analyzer{cfg: cfg, log: log.WithComponent("analyzer"), tracker: tracker}
}

// AnalysisReport is everything one run hands to the reporting layer.
type AnalysisReport struct {
	RunID            string    `json:"runId"`
	GeneratedAt      time.Time `json:"generatedAt"`
	TransferCount    int       `json:"transferCount"`
	WalletCount      int       `json:"walletCount"`

	Cycles           [][]string                 `json:"cycles"`
	SelfDealing      []string                   `json:"selfDealing"`
	PingPong         []models.PingPongPair      `json:"pingPong"`
	SuspiciousTiming []models.TimingFlag        `json:"suspiciousTiming"`
	UnusualPrices    []models.TransferRecord    `json:"unusualPrices"`
	Structural       models.StructuralSummary   `json:"structural"`
	Bursts           []models.BurstSequence     `json:"bursts"`
	PriceOutliers    []models.TransferRecord    `json:"priceOutliers"`
	RuleFlags        []models.TransferRecord    `json:"ruleFlags"`
	EconomicFlags    []models.EconomicFlag      `json:"economicFlags"`

	FundingSources     map[string][]string        `json:"fundingSources"`
	SimilarPairs       []models.WalletPair        `json:"similarPairs"`
	CoordinationGroups []models.CoordinationGroup `json:"coordinationGroups"`
	FeeOverlapPairs    []models.WalletPair        `json:"feeOverlapPairs"`
	Clusters           [][]string                 `json:"clusters"`
	Scores             []models.ScoredPair        `json:"scores"`

	ProfileSeconds map[string]float64 `json:"profileSeconds"`
}

// Analyze runs the full pipeline over one batch. The only error is a
// malformed record; every degenerate input degrades to empty results.
func (a *Analyzer) Analyze(records []models.TransferRecord) (*AnalysisReport, error) {
	start := time.Now()

	if err := models.Validate(records); err != nil {
		a.log.Error("batch rejected", zap.Error(err))
		return nil, err
	}

	runID := uuid.NewString()
	prof := pool.NewProfiler()
	workers := pool.New(a.cfg.App.WorkerPoolSize)

	store := graph.NewStore(records)
	var g *graph.Graph
	func() {
		defer prof.Track("build_graph")()
		g = store.Graph()
	}()
	a.log.Info("graph built",
		zap.String("runId", runID),
		zap.Int("transfers", g.NumEdges()),
		zap.Int("wallets", g.NumNodes()))

	report := &AnalysisReport{
		RunID:         runID,
		GeneratedAt:   time.Now().UTC(),
		TransferCount: len(records),
		WalletCount:   g.NumNodes(),
	}

	a.runDetectors(g, report, prof)

	mapper := relationship.NewMapper(g, workers, prof)
	report.FundingSources = mapper.FundingSources()

	similar, err := mapper.BehavioralSimilarity(a.cfg.Mapping.MinSharedPartners)
	if err != nil {
		return nil, err
	}
	report.SimilarPairs = sortPairs(similar)

	report.CoordinationGroups = mapper.TemporalCoordination(a.cfg.Mapping.TimeWindowSeconds)

	feePairs, err := mapper.FeeOverlap(a.cfg.Mapping.FeeOverlapThreshold)
	if err != nil {
		return nil, err
	}
	report.FeeOverlapPairs = sortPairs(feePairs)

	report.Clusters = mapper.Clusters()

	scorer := relationship.NewScorer(g, a.cfg.Mapping.MaxHops, prof)
	report.Scores = sortScores(scorer.ScoreAll(report.Clusters))

	report.ProfileSeconds = profileSeconds(prof)

	elapsed := time.Since(start)
	a.tracker.RecordLatency(elapsed)
	a.log.Info("analysis complete",
		zap.String("runId", runID),
		zap.Int("clusters", len(report.Clusters)),
		zap.Int("scoredPairs", len(report.Scores)),
		zap.Duration("elapsed", elapsed))

	return report, nil
}

func (a *Analyzer) runDetectors(g *graph.Graph, report *AnalysisReport, prof *pool.Profiler) {
	defer prof.Track("pattern_detectors")()

	d := a.cfg.Detectors
	report.Cycles = patterns.CircularTrading(g, d.MaxCycleLength)
	report.SelfDealing = patterns.SelfDealing(g)
	report.PingPong = patterns.PingPong(g, d.PingPongMinCount)
	report.SuspiciousTiming = patterns.SuspiciousTiming(g, d.IntervalThresholdSeconds)
	report.UnusualPrices = patterns.UnusualPrices(g, d.PriceThreshold)
	report.Structural = patterns.Structural(g)
	report.Bursts = patterns.TemporalSequences(g, d.BurstWindowSeconds)
	report.PriceOutliers = patterns.PriceOutliers(g, d.ZScoreThreshold)
	report.RuleFlags = patterns.RuleBasedFlags(g, d.MaxCycleLength, d.PingPongMinCount)
	report.EconomicFlags = append(
		patterns.IrrationalValues(g.Records()),
		patterns.HighFeeRatio(g.Records(), d.FeeRatioThreshold)...)
}

// sortPairs orders an unordered pair set lexicographically for the report
// boundary.
func sortPairs(pairs []models.WalletPair) []models.WalletPair {
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Less(pairs[j]) })
	return pairs
}

// sortScores flattens the score map into pair-sorted entries.
func sortScores(scores map[models.WalletPair]models.RelationshipScore) []models.ScoredPair {
	out := make([]models.ScoredPair, 0, len(scores))
	for pair, score := range scores {
		out = append(out, models.ScoredPair{Pair: pair, Score: score})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pair.Less(out[j].Pair) })
	return out
}

func profileSeconds(prof *pool.Profiler) map[string]float64 {
	out := make(map[string]float64)
	for stage, d := range prof.Snapshot() {
		out[stage] = d.Seconds()
	}
	return out
}
