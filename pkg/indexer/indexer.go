// Package indexer builds the bidirectional mapping between mask columns and
// lattice coordinates.
//
// Columns are numbered from 0 in scan order: x varies fastest, then y, then z.
// Column i is therefore the i-th selected voxel met when walking the flattened
// volume from offset 0 upwards.
package indexer

import (
	"errors"
	"fmt"

	"maskmeta/internal/models"
)

// Absent marks an unselected cell in the dense coordinate lookup.
const Absent int32 = -1

// ErrInvalidDims is returned for a mask whose dimensions are not all positive.
var ErrInvalidDims = errors.New("indexer: mask dimensions must each be >= 1")

// Index holds the column bookkeeping for one mask. It is read-only once built.
type Index struct {
	// Dims is the lattice extent of the source mask
	Dims models.Dims

	// M is the number of selected voxels
	M int

	// ColToCoord holds the coordinate of each column
	ColToCoord []models.Coord

	// CoordToCol is a dense lookup indexed by flattened offset; Absent when unselected
	CoordToCol []int32

	// LinearIndices holds the flattened offset of each column
	LinearIndices []int

	// Labels holds the mask value of each column
	Labels []int
}

// Build indexes the selected voxels of mask. A mask without selected voxels
// yields an empty index.
func Build(mask *models.Mask) (*Index, error) {
	if mask == nil || !mask.Dims.Valid() {
		return nil, ErrInvalidDims
	}
	if len(mask.Labels) != mask.Dims.Len() {
		return nil, fmt.Errorf("indexer: %w", models.ErrMaskSize)
	}

	total := mask.Dims.Len()
	m := mask.Count()

	idx := &Index{
		Dims:          mask.Dims,
		M:             m,
		ColToCoord:    make([]models.Coord, 0, m),
		CoordToCol:    make([]int32, total),
		LinearIndices: make([]int, 0, m),
		Labels:        make([]int, 0, m),
	}

	col := int32(0)
	for offset, label := range mask.Labels {
		if label <= 0 {
			idx.CoordToCol[offset] = Absent
			continue
		}
		idx.CoordToCol[offset] = col
		idx.ColToCoord = append(idx.ColToCoord, mask.Dims.Coordinate(offset))
		idx.LinearIndices = append(idx.LinearIndices, offset)
		idx.Labels = append(idx.Labels, label)
		col++
	}

	return idx, nil
}

// Column returns the column of the voxel at (x, y, z). ok is false when the
// coordinate is outside the lattice or not selected.
func (idx *Index) Column(x, y, z int) (col int, ok bool) {
	if !idx.Dims.InBounds(x, y, z) {
		return 0, false
	}
	c := idx.CoordToCol[idx.Dims.Index(x, y, z)]
	if c == Absent {
		return 0, false
	}
	return int(c), true
}

// Coord returns the coordinate of column col.
func (idx *Index) Coord(col int) models.Coord {
	return idx.ColToCoord[col]
}
