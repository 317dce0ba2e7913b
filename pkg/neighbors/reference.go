package neighbors

import (
	"maskmeta/pkg/indexer"
)

// Reference is the single-goroutine lattice scan.
type Reference struct{}

// Name implements Finder.
func (Reference) Name() string { return ReferenceName }

// Find implements Finder.
func (Reference) Find(idx *indexer.Index, radius int, metric Metric) (*Table, error) {
	if err := validate(idx, radius, metric); err != nil {
		return nil, err
	}
	s := newScan(idx, radius, metric)

	counts := make([]int32, idx.M)
	s.count(0, idx.M, counts)

	table := newTable(counts)
	s.fill(0, idx.M, table)

	return table, nil
}

// scan carries the state shared by the lattice strategies. It is read-only
// during count and fill, which makes disjoint column ranges safe to process
// concurrently.
type scan struct {
	idx  *indexer.Index
	offs []Offset
}

func newScan(idx *indexer.Index, radius int, metric Metric) *scan {
	return &scan{
		idx:  idx,
		offs: latticeOffsets(idx.Dims, radius, metric),
	}
}

// visit calls fn with every neighbor column of col in ascending order.
// Offsets are ordered by (dz, dy, dx), and for in-bounds candidates that is
// also the order of their flattened offsets and thus of their columns.
func (s *scan) visit(col int, fn func(int32)) {
	dims := s.idx.Dims
	c := s.idx.ColToCoord[col]
	for _, o := range s.offs {
		x, y, z := c.X+o.DX, c.Y+o.DY, c.Z+o.DZ
		if !dims.InBounds(x, y, z) {
			continue
		}
		nb := s.idx.CoordToCol[dims.Index(x, y, z)]
		if nb == indexer.Absent || int(nb) == col {
			continue
		}
		fn(nb)
	}
}

func (s *scan) count(lo, hi int, counts []int32) {
	for col := lo; col < hi; col++ {
		n := int32(0)
		s.visit(col, func(int32) { n++ })
		counts[col] = n
	}
}

func (s *scan) fill(lo, hi int, t *Table) {
	for col := lo; col < hi; col++ {
		row := t.row(col)
		k := 0
		s.visit(col, func(nb int32) {
			row[k] = nb
			k++
		})
	}
}
