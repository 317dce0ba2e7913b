package models

import (
	"errors"
	"fmt"
)

var (
	// ErrMaskSize is returned when a label slice does not match the volume dimensions.
	ErrMaskSize = errors.New("models: label count does not match dimensions")

	// ErrNegativeLabel is returned when a mask holds a label below zero.
	ErrNegativeLabel = errors.New("models: mask labels must be non-negative")
)

// Dims holds the extent of the voxel lattice along each axis.
type Dims struct {
	X, Y, Z int
}

// Valid reports whether every axis has at least one voxel.
func (d Dims) Valid() bool {
	return d.X >= 1 && d.Y >= 1 && d.Z >= 1
}

// Len returns the number of voxels in the lattice.
func (d Dims) Len() int {
	return d.X * d.Y * d.Z
}

// InBounds reports whether (x, y, z) lies inside the lattice.
func (d Dims) InBounds(x, y, z int) bool {
	return x >= 0 && x < d.X && y >= 0 && y < d.Y && z >= 0 && z < d.Z
}

// Index maps (x, y, z) to its offset in the flattened volume.
// x varies fastest, then y, then z.
func (d Dims) Index(x, y, z int) int {
	return z*d.X*d.Y + y*d.X + x
}

// Coordinate converts a flattened offset back to (x, y, z).
func (d Dims) Coordinate(idx int) Coord {
	plane := d.X * d.Y
	return Coord{
		X: idx % d.X,
		Y: (idx % plane) / d.X,
		Z: idx / plane,
	}
}

func (d Dims) String() string {
	return fmt.Sprintf("%dx%dx%d", d.X, d.Y, d.Z)
}

// Coord is an integer lattice coordinate.
type Coord struct {
	X, Y, Z int
}

// Mask represents a labelled selection over a voxel lattice.
// A label of 0 means the voxel is not selected; any positive label selects the
// voxel and names the region it belongs to.
type Mask struct {
	// Dims is the extent of the lattice
	Dims Dims

	// Labels holds one value per voxel in the order given by Dims.Index
	Labels []int
}

// NewMask allocates an all-zero mask.
func NewMask(dims Dims) *Mask {
	n := 0
	if dims.Valid() {
		n = dims.Len()
	}
	return &Mask{
		Dims:   dims,
		Labels: make([]int, n),
	}
}

// MaskFromLabels wraps an existing label slice. The slice is copied.
func MaskFromLabels(dims Dims, labels []int) (*Mask, error) {
	if !dims.Valid() || len(labels) != dims.Len() {
		return nil, fmt.Errorf("%w: dims %s, got %d labels", ErrMaskSize, dims, len(labels))
	}
	for i, v := range labels {
		if v < 0 {
			return nil, fmt.Errorf("%w: label %d at offset %d", ErrNegativeLabel, v, i)
		}
	}
	cp := make([]int, len(labels))
	copy(cp, labels)
	return &Mask{Dims: dims, Labels: cp}, nil
}

// At returns the label at (x, y, z).
func (m *Mask) At(x, y, z int) int {
	return m.Labels[m.Dims.Index(x, y, z)]
}

// Set assigns a label to (x, y, z).
func (m *Mask) Set(x, y, z, label int) {
	m.Labels[m.Dims.Index(x, y, z)] = label
}

// Count returns the number of selected voxels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Labels {
		if v > 0 {
			n++
		}
	}
	return n
}

// Fill selects every voxel with the given label.
func (m *Mask) Fill(label int) {
	for i := range m.Labels {
		m.Labels[i] = label
	}
}

// Sphere labels every voxel within radius of center (Euclidean, inclusive).
// Voxels outside the lattice are ignored.
func (m *Mask) Sphere(center Coord, radius float64, label int) {
	r2 := radius * radius
	for z := 0; z < m.Dims.Z; z++ {
		for y := 0; y < m.Dims.Y; y++ {
			for x := 0; x < m.Dims.X; x++ {
				dx := float64(x - center.X)
				dy := float64(y - center.Y)
				dz := float64(z - center.Z)
				if dx*dx+dy*dy+dz*dz <= r2 {
					m.Set(x, y, z, label)
				}
			}
		}
	}
}
