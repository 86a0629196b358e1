package pool

import (
	"golang.org/x/sync/errgroup"
)

// Worker Pool Coordinator
//
// Executes the O(n²) pairwise mapper stages. The unit of work is one
// wallet index i compared against every j > i, so units are fully
// independent: a worker owns a contiguous index range and touches no
// shared mutable state while computing. Workers collect results locally
// and the caller merges after the join point, which is the only place a
// shared collection is written.
//
// There is deliberately no cancellation or timeout here; the engine is a
// pure batch computation and callers bound latency from outside.

// DefaultWorkers is the pool size when configuration supplies none.
const DefaultWorkers = 8

// Pool is a fixed-size worker pool.
type Pool struct {
	workers int
}

// New creates a pool with the given worker count; non-positive counts
// fall back to DefaultWorkers.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Pool{workers: workers}
}

// Workers returns the pool size.
func (p *Pool) Workers() int { return p.workers }

// RunIndexed partitions [0, n) into one contiguous range per worker and
// calls fn for every index. It blocks until all workers finish and
// returns the first error any unit produced.
func (p *Pool) RunIndexed(n int, fn func(i int) error) error {
	if n <= 0 {
		return nil
	}

	chunk := (n + p.workers - 1) / p.workers
	var g errgroup.Group
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		lo := lo
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := fn(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
