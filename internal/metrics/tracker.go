package metrics

import (
	"sync"
	"time"
)

// Analysis KPI Tracker
//
// Accumulates the success metrics the feedback and reporting layers need
// to evaluate the engine over time:
//
//   - detection precision: confirmed true/false positives and misses fed
//     back from reviewed alerts
//   - processing latency: wall-clock duration of whole analysis runs
//   - alert precision: fraction of emitted alerts later confirmed
//
// The tracker only accumulates; interpretation and thresholds on these
// numbers belong to the consumers.

// Tracker is a thread-safe KPI accumulator.
type Tracker struct {
	mu sync.RWMutex

	truePositives  int
	falsePositives int
	falseNegatives int

	latencies []time.Duration

	alertsConfirmed int
	alertsTotal     int
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// RecordDetection adds reviewed detection outcomes.
func (t *Tracker) RecordDetection(tp, fp, fn int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.truePositives += tp
	t.falsePositives += fp
	t.falseNegatives += fn
}

// Precision returns detection precision as a percentage, 0 with no data.
func (t *Tracker) Precision() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	total := t.truePositives + t.falsePositives
	if total == 0 {
		return 0
	}
	return float64(t.truePositives) / float64(total) * 100
}

// FalsePositiveRate returns the share of flagged results that were wrong,
// as a percentage.
func (t *Tracker) FalsePositiveRate() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	total := t.truePositives + t.falsePositives
	if total == 0 {
		return 0
	}
	return float64(t.falsePositives) / float64(total) * 100
}

// RecordLatency adds one analysis-run duration.
func (t *Tracker) RecordLatency(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.latencies = append(t.latencies, d)
}

// AverageLatency returns the mean run duration, 0 with no samples.
func (t *Tracker) AverageLatency() time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.latencies) == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range t.latencies {
		sum += d
	}
	return sum / time.Duration(len(t.latencies))
}

// RecordAlert counts an emitted alert and whether review confirmed it.
func (t *Tracker) RecordAlert(confirmed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.alertsTotal++
	if confirmed {
		t.alertsConfirmed++
	}
}

// AlertPrecision returns the confirmed share of emitted alerts, as a
// percentage.
func (t *Tracker) AlertPrecision() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.alertsTotal == 0 {
		return 0
	}
	return float64(t.alertsConfirmed) / float64(t.alertsTotal) * 100
}

// Snapshot is a point-in-time view of all KPIs.
type Snapshot struct {
	Precision         float64       `json:"precision"`
	FalsePositiveRate float64       `json:"falsePositiveRate"`
	AverageLatency    time.Duration `json:"averageLatency"`
	AlertPrecision    float64       `json:"alertPrecision"`
	RunsRecorded      int           `json:"runsRecorded"`
}

// Report returns the current KPI snapshot.
func (t *Tracker) Report() Snapshot {
	t.mu.RLock()
	runs := len(t.latencies)
	t.mu.RUnlock()

	return Snapshot{
		Precision:         t.Precision(),
		FalsePositiveRate: t.FalsePositiveRate(),
		AverageLatency:    t.AverageLatency(),
		AlertPrecision:    t.AlertPrecision(),
		RunsRecorded:      runs,
	}
}
