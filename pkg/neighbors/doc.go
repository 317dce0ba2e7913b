// Package neighbors finds, for every selected voxel of an indexed mask, the
// other selected voxels within a lattice radius.
//
// The search never compares voxels pairwise. Each voxel walks a precomputed
// box of offsets and probes the dense coordinate lookup, so the per-voxel cost
// is bounded by the box size rather than by the number of selected voxels.
//
// Strategies:
//
//   - Reference: single goroutine, always available.
//   - Parallel: the same scan split across workers; each voxel writes only its
//     own slots of the output table.
//   - KDTree: range queries over a gonum k-d tree, independent of lattice size.
//
// All strategies emit identical tables. Neighbor lists are in ascending
// column order and never contain the voxel itself.
package neighbors
