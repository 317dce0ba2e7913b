package meta

import (
	"runtime"
	"strconv"
	"strings"

	"maskmeta/pkg/logging"
	"maskmeta/pkg/neighbors"
)

// Recognized option names.
const (
	OptRadius         = "radius"
	OptBuildAdjacency = "buildAdjacency"
	OptAccelerate     = "accelerate"
	OptMetric         = "metric"
	OptWorkers        = "workers"
	OptStrategy       = "strategy"
)

// Defaults.
const (
	DefaultRadius         = 1
	DefaultBuildAdjacency = false
	DefaultAccelerate     = true
	DefaultMetric         = neighbors.Chebyshev
)

// KnownOptions lists every recognized option name.
var KnownOptions = []string{
	OptRadius, OptBuildAdjacency, OptAccelerate, OptMetric, OptWorkers, OptStrategy,
}

// IsKnownOption reports whether name is a recognized option.
func IsKnownOption(name string) bool {
	for _, k := range KnownOptions {
		if k == name {
			return true
		}
	}
	return false
}

// Options configures a build.
type Options struct {
	// Radius is the neighbor search radius in lattice units (>= 1)
	Radius int

	// BuildAdjacency requests the sparse adjacency matrix; only honored at radius 1
	BuildAdjacency bool

	// Accelerate prefers the parallel strategy when it can run
	Accelerate bool

	// Metric selects box (Chebyshev) or sphere (Euclidean) neighborhoods
	Metric neighbors.Metric

	// Workers bounds the parallel strategy; 0 means one per CPU
	Workers int

	// Strategy names a neighbor strategy (reference, parallel, kdtree); when set
	// it replaces the choice made by Accelerate
	Strategy string

	// Finder, when set, is used instead of Strategy and Accelerate
	Finder neighbors.Finder

	// Logger receives warnings and progress; nil discards them
	Logger logging.Logger
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Radius:         DefaultRadius,
		BuildAdjacency: DefaultBuildAdjacency,
		Accelerate:     DefaultAccelerate,
		Metric:         DefaultMetric,
		Workers:        runtime.NumCPU(),
	}
}

// Validate checks every field and returns an *OptionError naming the first
// offending option.
func (o Options) Validate() error {
	if o.Radius < 1 {
		return InvalidOption(OptRadius, strconv.Itoa(o.Radius))
	}
	if !o.Metric.Valid() {
		return InvalidOption(OptMetric, o.Metric.String())
	}
	if o.Workers < 0 {
		return InvalidOption(OptWorkers, strconv.Itoa(o.Workers))
	}
	if _, err := o.ExplicitFinder(); err != nil {
		return err
	}
	return nil
}

// ExplicitFinder returns the strategy fixed by Finder or Strategy, or nil when
// Accelerate decides. Strategy is resolved against the current Workers.
func (o Options) ExplicitFinder() (neighbors.Finder, error) {
	if o.Finder != nil {
		return o.Finder, nil
	}
	if o.Strategy == "" {
		return nil, nil
	}
	f, ok := neighbors.ByName(strings.ToLower(o.Strategy), o.Workers)
	if !ok {
		return nil, InvalidOption(OptStrategy, o.Strategy)
	}
	return f, nil
}

func (o Options) logger() logging.Logger {
	if o.Logger == nil {
		return logging.Discard
	}
	return o.Logger
}
