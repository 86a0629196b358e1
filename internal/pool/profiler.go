package pool

import (
	"sync"
	"time"
)

// Profiler records per-stage wall-clock timings for one analysis run.
// It is an injected collaborator rather than global state, so concurrent
// runs keep separate timings and tests can assert on them.
type Profiler struct {
	mu      sync.Mutex
	timings map[string]time.Duration
}

// NewProfiler creates an empty profiler.
func NewProfiler() *Profiler {
	return &Profiler{timings: make(map[string]time.Duration)}
}

// Track starts timing a stage and returns the stop function, meant for
// the defer-at-entry idiom:
//
//	defer prof.Track("cluster_wallets")()
//
// A stage tracked twice keeps its latest timing.
func (p *Profiler) Track(stage string) func() {
	start := time.Now()
	return func() {
		elapsed := time.Since(start)
		p.mu.Lock()
		p.timings[stage] = elapsed
		p.mu.Unlock()
	}
}

// Snapshot returns a copy of the recorded timings.
func (p *Profiler) Snapshot() map[string]time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make(map[string]time.Duration, len(p.timings))
	for stage, d := range p.timings {
		out[stage] = d
	}
	return out
}
