package pool

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestRunIndexed_CoversEveryIndexOnce(t *testing.T) {
	p := New(4)

	var mu sync.Mutex
	seen := make(map[int]int)
	err := p.RunIndexed(23, func(i int) error {
		mu.Lock()
		seen[i]++
		mu.Unlock()
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(seen) != 23 {
		t.Fatalf("covered %d indices, want 23", len(seen))
	}
	for i := 0; i < 23; i++ {
		if seen[i] != 1 {
			t.Errorf("index %d executed %d times, want exactly once", i, seen[i])
		}
	}
}

func TestRunIndexed_FewerUnitsThanWorkers(t *testing.T) {
	p := New(8)

	var mu sync.Mutex
	var got []int
	err := p.RunIndexed(3, func(i int) error {
		mu.Lock()
		got = append(got, i)
		mu.Unlock()
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("executed %d units, want 3", len(got))
	}
}

func TestRunIndexed_PropagatesError(t *testing.T) {
	p := New(2)
	boom := errors.New("boom")

	err := p.RunIndexed(10, func(i int) error {
		if i == 7 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}

func TestRunIndexed_ZeroUnits(t *testing.T) {
	p := New(4)
	called := false
	if err := p.RunIndexed(0, func(i int) error { called = true; return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Error("fn must not run with no units")
	}
}

func TestNew_NonPositiveFallsBack(t *testing.T) {
	if got := New(0).Workers(); got != DefaultWorkers {
		t.Errorf("Workers() = %d, want %d", got, DefaultWorkers)
	}
	if got := New(-3).Workers(); got != DefaultWorkers {
		t.Errorf("Workers() = %d, want %d", got, DefaultWorkers)
	}
}

func TestProfiler_TrackAndSnapshot(t *testing.T) {
	prof := NewProfiler()

	stop := prof.Track("build_graph")
	time.Sleep(time.Millisecond)
	stop()

	snap := prof.Snapshot()
	if d, ok := snap["build_graph"]; !ok || d <= 0 {
		t.Errorf("snapshot = %v, want positive build_graph timing", snap)
	}
}

func TestProfiler_LatestTimingWins(t *testing.T) {
	prof := NewProfiler()

	prof.Track("stage")()
	stop := prof.Track("stage")
	time.Sleep(time.Millisecond)
	stop()

	snap := prof.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("snapshot has %d stages, want 1", len(snap))
	}
	if snap["stage"] < time.Millisecond {
		t.Errorf("stage = %v, want latest timing of at least 1ms", snap["stage"])
	}
}

func TestProfiler_SnapshotIsACopy(t *testing.T) {
	prof := NewProfiler()
	prof.Track("stage")()

	snap := prof.Snapshot()
	snap["stage"] = 0
	snap["injected"] = time.Second

	fresh := prof.Snapshot()
	if _, ok := fresh["injected"]; ok {
		t.Error("mutating a snapshot must not affect the profiler")
	}
}
