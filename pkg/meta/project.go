package meta

import (
	"fmt"
	"unsafe"

	"maskmeta/internal/models"
)

// Project writes values, one per column, into a fresh volume laid out like the
// mask. Cells outside the mask hold fill; math.NaN() is the usual choice.
func (m *Meta) Project(values []float64, fill float64) ([]float64, error) {
	if len(values) != m.M() {
		return nil, fmt.Errorf("%w: got %d values for %d columns", ErrValueLength, len(values), m.M())
	}
	volume := make([]float64, m.Dims().Len())
	for i := range volume {
		volume[i] = fill
	}
	for col, offset := range m.index.LinearIndices {
		volume[offset] = values[col]
	}
	return volume, nil
}

// Gather reads the value of every column out of a volume laid out like the mask.
func (m *Meta) Gather(volume []float64) ([]float64, error) {
	if len(volume) != m.Dims().Len() {
		return nil, fmt.Errorf("%w: got %d cells for %s", ErrVolumeLength, len(volume), m.Dims())
	}
	values := make([]float64, m.M())
	for col, offset := range m.index.LinearIndices {
		values[col] = volume[offset]
	}
	return values, nil
}

// Summary holds the headline numbers of a build.
type Summary struct {
	Dims         string
	Voxels       int
	Selected     int
	ROIs         int
	Pairs        int
	MaxNeighbors int
	AdjacencyNNZ int
	Strategy     string
	Bytes        uint64
}

// Summary reports counts and the approximate memory held by m.
func (m *Meta) Summary() Summary {
	s := Summary{
		Dims:         m.Dims().String(),
		Voxels:       m.Dims().Len(),
		Selected:     m.M(),
		ROIs:         m.groups.Len(),
		Pairs:        m.table.Total() / 2,
		MaxNeighbors: m.table.Width,
		Strategy:     m.strategy,
	}

	var (
		i32   int32
		word  int
		coord models.Coord
	)
	bytes := uintptr(len(m.index.CoordToCol)) * unsafe.Sizeof(i32)
	bytes += uintptr(len(m.index.ColToCoord)) * unsafe.Sizeof(coord)
	bytes += uintptr(len(m.index.LinearIndices)+len(m.index.Labels)) * unsafe.Sizeof(word)
	bytes += uintptr(len(m.table.Slots)+len(m.table.Counts)) * unsafe.Sizeof(i32)
	if m.adjacency != nil {
		s.AdjacencyNNZ = m.adjacency.NNZ()
		r, _ := m.adjacency.Dims()
		bytes += uintptr(s.AdjacencyNNZ)*unsafe.Sizeof(i32) + uintptr(r+1)*unsafe.Sizeof(word)
	}
	s.Bytes = uint64(bytes)
	return s
}
