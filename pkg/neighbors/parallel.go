package neighbors

import (
	"golang.org/x/sync/errgroup"

	"maskmeta/pkg/indexer"
)

// Parallel runs the lattice scan over contiguous column ranges, one range per
// worker. Workers <= 0 means one worker per available CPU.
type Parallel struct {
	Workers int
}

// Name implements Finder.
func (Parallel) Name() string { return ParallelName }

// Available reports whether more than one worker can run.
func (p Parallel) Available() bool {
	return p.workers() > 1
}

// WorkerCount returns the number of workers Find runs.
func (p Parallel) WorkerCount() int {
	return p.workers()
}

func (p Parallel) workers() int {
	if p.Workers > 0 {
		return p.Workers
	}
	return defaultWorkers()
}

// Find implements Finder.
func (p Parallel) Find(idx *indexer.Index, radius int, metric Metric) (*Table, error) {
	if err := validate(idx, radius, metric); err != nil {
		return nil, err
	}
	s := newScan(idx, radius, metric)

	counts := make([]int32, idx.M)
	if err := p.each(idx.M, func(lo, hi int) { s.count(lo, hi, counts) }); err != nil {
		return nil, err
	}

	table := newTable(counts)
	if err := p.each(idx.M, func(lo, hi int) { s.fill(lo, hi, table) }); err != nil {
		return nil, err
	}

	return table, nil
}

// each splits [0, n) into one chunk per worker and waits for all of them.
func (p Parallel) each(n int, fn func(lo, hi int)) error {
	workers := p.workers()
	if n == 0 {
		return nil
	}
	perWorker := (n + workers - 1) / workers

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		lo := w * perWorker
		if lo >= n {
			break
		}
		hi := lo + perWorker
		if hi > n {
			hi = n
		}
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	return g.Wait()
}
