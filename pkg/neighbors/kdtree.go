package neighbors

import (
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"

	"maskmeta/internal/models"
	"maskmeta/pkg/indexer"
)

// voxel is a selected lattice point carrying its column.
type voxel struct {
	models.Coord
	col int32
}

// Compare implements the kdtree.Comparable interface
func (v voxel) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(voxel)
	switch d {
	case 0:
		return float64(v.X - q.X)
	case 1:
		return float64(v.Y - q.Y)
	case 2:
		return float64(v.Z - q.Z)
	default:
		panic("illegal dimension")
	}
}

// Dims returns the number of dimensions for the KD-tree
func (v voxel) Dims() int { return 3 }

// Distance returns the squared Euclidean distance between two voxels
func (v voxel) Distance(c kdtree.Comparable) float64 {
	q := c.(voxel)
	dx := float64(v.X - q.X)
	dy := float64(v.Y - q.Y)
	dz := float64(v.Z - q.Z)
	return dx*dx + dy*dy + dz*dz
}

// voxels satisfies kdtree.Interface
type voxels []voxel

func (p voxels) Index(i int) kdtree.Comparable         { return p[i] }
func (p voxels) Len() int                              { return len(p) }
func (p voxels) Slice(start, end int) kdtree.Interface { return p[start:end] }

// Pivot implements the kdtree.Interface method
func (p voxels) Pivot(d kdtree.Dim) int {
	return kdtree.Partition(voxelPlane{voxels: p, Dim: d}, kdtree.MedianOfRandoms(voxelPlane{voxels: p, Dim: d}, 100))
}

// voxelPlane implements sort.Interface and kdtree.SortSlicer for voxels
type voxelPlane struct {
	voxels
	kdtree.Dim
}

func (p voxelPlane) Less(i, j int) bool {
	switch p.Dim {
	case 0:
		return p.voxels[i].X < p.voxels[j].X
	case 1:
		return p.voxels[i].Y < p.voxels[j].Y
	case 2:
		return p.voxels[i].Z < p.voxels[j].Z
	default:
		panic("illegal dimension")
	}
}

func (p voxelPlane) Slice(start, end int) kdtree.SortSlicer {
	return voxelPlane{voxels: p.voxels[start:end], Dim: p.Dim}
}

func (p voxelPlane) Swap(i, j int) {
	p.voxels[i], p.voxels[j] = p.voxels[j], p.voxels[i]
}

// KDTree answers each voxel's neighborhood with a range query over a k-d tree
// of the selected voxels. It does not touch the dense lookup, so its cost
// follows the number of selected voxels rather than the lattice volume.
type KDTree struct{}

// Name implements Finder.
func (KDTree) Name() string { return KDTreeName }

// Find implements Finder.
func (KDTree) Find(idx *indexer.Index, radius int, metric Metric) (*Table, error) {
	if err := validate(idx, radius, metric); err != nil {
		return nil, err
	}
	if idx.M == 0 {
		return newTable(nil), nil
	}

	pts := make(voxels, idx.M)
	for col, c := range idx.ColToCoord {
		pts[col] = voxel{Coord: c, col: int32(col)}
	}
	// kdtree.New reorders its input; keep pts addressable by column.
	points := make(voxels, len(pts))
	copy(points, pts)
	tree := kdtree.New(points, true)

	// Squared distances are integral, so the half-unit margin only guards the
	// keeper's boundary comparison.
	reach := metric.reach(radius) + 0.5

	lists := make([][]int32, idx.M)
	counts := make([]int32, idx.M)
	keeper := &rangeKeeper{reach: reach}
	for col, q := range pts {
		keeper.found = keeper.found[:0]
		tree.NearestSet(keeper, q)

		var found []int32
		for _, p := range keeper.found {
			if p.col == q.col {
				continue
			}
			if !metric.within(p.X-q.X, p.Y-q.Y, p.Z-q.Z, radius) {
				continue
			}
			found = append(found, p.col)
		}
		sort.Slice(found, func(i, j int) bool { return found[i] < found[j] })
		lists[col] = found
		counts[col] = int32(len(found))
	}

	table := newTable(counts)
	for col, found := range lists {
		copy(table.row(col), found)
	}
	return table, nil
}

// rangeKeeper collects every point within a fixed squared distance. Unlike
// the bounded keepers it never tightens its pruning distance, and its heap
// stays empty so NearestSet has nothing to reorder.
type rangeKeeper struct {
	kdtree.Heap
	reach float64
	found []voxel
}

// Keep implements kdtree.Keeper.
func (k *rangeKeeper) Keep(c kdtree.ComparableDist) {
	if c.Dist <= k.reach {
		k.found = append(k.found, c.Comparable.(voxel))
	}
}

// Max implements kdtree.Keeper.
func (k *rangeKeeper) Max() kdtree.ComparableDist {
	return kdtree.ComparableDist{Dist: k.reach}
}
