// Package meta assembles the column bookkeeping of a labelled mask into one
// immutable structure: coordinate lookups in both directions, the flattened
// offsets used to project column vectors back into a volume, the neighbor
// table, the region groups, and optionally the adjacency matrix.
//
// A Meta is built once per mask. There is no update path; a changed mask
// needs a new build.
package meta

import (
	"fmt"

	"maskmeta/internal/models"
	"maskmeta/pkg/adjacency"
	"maskmeta/pkg/indexer"
	"maskmeta/pkg/logging"
	"maskmeta/pkg/neighbors"
	"maskmeta/pkg/roi"
)

// Meta is the result of a build. Slices returned by its accessors alias
// internal storage and must be treated as read-only.
type Meta struct {
	index     *indexer.Index
	table     *neighbors.Table
	groups    *roi.Groups
	adjacency *adjacency.Matrix

	radius   int
	metric   neighbors.Metric
	strategy string
	warnings []Warning
}

// Builder builds Meta structures with a fixed set of options.
type Builder struct {
	opts Options
}

// NewBuilder validates opts and returns a builder for them.
func NewBuilder(opts Options) (*Builder, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Builder{opts: opts}, nil
}

// Build is shorthand for NewBuilder(opts) followed by Build(mask).
func Build(mask *models.Mask, opts Options) (*Meta, error) {
	b, err := NewBuilder(opts)
	if err != nil {
		return nil, err
	}
	return b.Build(mask)
}

// Build runs the pipeline on mask. Warnings are logged and kept on the
// result; they never fail the build.
func (b *Builder) Build(mask *models.Mask) (*Meta, error) {
	log := b.opts.logger()
	m := &Meta{
		radius: b.opts.Radius,
		metric: b.opts.Metric,
	}

	// Step 1: resolve the adjacency request against the radius
	buildAdjacency := b.opts.BuildAdjacency
	if buildAdjacency && b.opts.Radius > 1 {
		buildAdjacency = false
		m.warn(log, DegenerateInput, fmt.Sprintf(
			"adjacency matrix disabled for radius %d; it is only built for radius 1", b.opts.Radius))
	}

	// Step 2: choose the neighbor strategy
	finder, err := b.opts.ExplicitFinder()
	if err != nil {
		return nil, err
	}
	if finder != nil {
		if b.opts.Accelerate {
			log.Infof("neighbor strategy %s set explicitly; accelerate is not consulted", finder.Name())
		}
	} else {
		var ok bool
		finder, ok = neighbors.Select(b.opts.Accelerate, b.opts.Workers)
		if !ok {
			workers := neighbors.Parallel{Workers: b.opts.Workers}.WorkerCount()
			m.warn(log, AccelerationUnavailable, fmt.Sprintf(
				"no accelerated neighbor search available with %d worker(s); using %s", workers, finder.Name()))
		}
	}
	m.strategy = finder.Name()

	// Step 3: index the selected voxels
	idx, err := indexer.Build(mask)
	if err != nil {
		return nil, fmt.Errorf("failed to index mask: %w", err)
	}
	m.index = idx
	log.Debugf("indexed %d of %d voxels in %s mask", idx.M, idx.Dims.Len(), idx.Dims)

	// Step 4: find neighbors
	table, err := finder.Find(idx, b.opts.Radius, b.opts.Metric)
	if err != nil {
		return nil, fmt.Errorf("failed to find neighbors: %w", err)
	}
	m.table = table
	log.Debugf("%s search at radius %d (%s): max %d neighbors per voxel",
		finder.Name(), b.opts.Radius, b.opts.Metric, table.Width)

	// Step 5: group columns by label
	m.groups = roi.Group(idx.Labels)

	// Step 6: assemble the adjacency matrix if requested
	if buildAdjacency {
		m.adjacency = adjacency.Build(table)
		log.Debugf("adjacency matrix with %d entries", m.adjacency.NNZ())
	}

	return m, nil
}

func (m *Meta) warn(log logging.Logger, kind WarningKind, msg string) {
	w := Warning{Kind: kind, Message: msg}
	m.warnings = append(m.warnings, w)
	log.Warningf("%s", w)
}

// Dims returns the lattice extent of the mask.
func (m *Meta) Dims() models.Dims { return m.index.Dims }

// M returns the number of selected voxels, which is the number of columns.
func (m *Meta) M() int { return m.index.M }

// ColToCoord returns the coordinate of every column.
func (m *Meta) ColToCoord() []models.Coord { return m.index.ColToCoord }

// Coord returns the coordinate of column col.
func (m *Meta) Coord(col int) models.Coord { return m.index.Coord(col) }

// CoordToCol returns the dense lookup from flattened offset to column;
// indexer.Absent marks unselected cells.
func (m *Meta) CoordToCol() []int32 { return m.index.CoordToCol }

// Column returns the column of the voxel at (x, y, z).
func (m *Meta) Column(x, y, z int) (int, bool) { return m.index.Column(x, y, z) }

// LinearIndices returns the flattened offset of every column.
func (m *Meta) LinearIndices() []int { return m.index.LinearIndices }

// Labels returns the mask label of every column.
func (m *Meta) Labels() []int { return m.index.Labels }

// Neighbors returns the neighbor columns of col in ascending order.
func (m *Meta) Neighbors(col int) []int32 { return m.table.Neighbors(col) }

// NeighborCount returns the number of neighbors of col.
func (m *Meta) NeighborCount(col int) int { return m.table.Count(col) }

// NeighborCounts returns the neighbor count of every column.
func (m *Meta) NeighborCounts() []int32 { return m.table.Counts }

// NeighborTable returns the fixed-width neighbor table.
func (m *Meta) NeighborTable() *neighbors.Table { return m.table }

// ROIs returns a copy of the region groups.
func (m *Meta) ROIs() *roi.Groups { return m.groups.Clone() }

// Adjacency returns the adjacency matrix, or nil when it was not built.
func (m *Meta) Adjacency() *adjacency.Matrix { return m.adjacency }

// Radius returns the search radius used for the build.
func (m *Meta) Radius() int { return m.radius }

// Metric returns the distance metric used for the build.
func (m *Meta) Metric() neighbors.Metric { return m.metric }

// Strategy returns the name of the neighbor strategy that ran.
func (m *Meta) Strategy() string { return m.strategy }

// Warnings returns a copy of the advisories raised during the build.
func (m *Meta) Warnings() []Warning {
	out := make([]Warning, len(m.warnings))
	copy(out, m.warnings)
	return out
}

// HasWarning reports whether a warning of kind was raised.
func (m *Meta) HasWarning(kind WarningKind) bool {
	for _, w := range m.warnings {
		if w.Kind == kind {
			return true
		}
	}
	return false
}
