package neighbors

import (
	"runtime"

	"maskmeta/pkg/indexer"
)

// Strategy names reported by Finder.Name.
const (
	ReferenceName = "reference"
	ParallelName  = "parallel"
	KDTreeName    = "kdtree"
)

// Finder computes the neighbor table of an indexed mask.
type Finder interface {
	// Name identifies the strategy in logs and results.
	Name() string

	// Find returns the neighbor table for every column of idx.
	Find(idx *indexer.Index, radius int, metric Metric) (*Table, error)
}

// Select returns the strategy to use for a build. When accelerate is set and
// more than one worker can run, the parallel finder is returned. Otherwise the
// reference finder is returned; ok is false only when acceleration was
// requested but could not be provided.
func Select(accelerate bool, workers int) (f Finder, ok bool) {
	if !accelerate {
		return Reference{}, true
	}
	p := Parallel{Workers: workers}
	if p.Available() {
		return p, true
	}
	return Reference{}, false
}

// ByName returns the strategy registered under name.
func ByName(name string, workers int) (Finder, bool) {
	switch name {
	case ReferenceName:
		return Reference{}, true
	case ParallelName:
		return Parallel{Workers: workers}, true
	case KDTreeName:
		return KDTree{}, true
	default:
		return nil, false
	}
}

func validate(idx *indexer.Index, radius int, metric Metric) error {
	if idx == nil {
		return ErrNilIndex
	}
	if radius < 1 {
		return ErrInvalidRadius
	}
	if !metric.Valid() {
		return ErrUnknownMetric
	}
	return nil
}

func defaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}
