// Package visualization renders volumes projected from mask columns as
// grayscale slice images.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"maskmeta/internal/models"
)

// Viewer extracts axis-aligned slices from a flattened volume. Values are
// scaled linearly from the finite minimum and maximum of the volume onto the
// full gray range; NaN cells, the usual fill outside a mask, render black.
type Viewer struct {
	// volumeData holds the volume in the order given by models.Dims.Index
	volumeData []float64

	// dims is the lattice extent
	dims models.Dims

	// lo and scale map a value v to (v-lo)*scale in [0, 1]
	lo    float64
	scale float64
}

// NewViewer creates a viewer over volumeData. It returns an error when the
// data does not match dims.
func NewViewer(volumeData []float64, dims models.Dims) (*Viewer, error) {
	if !dims.Valid() || len(volumeData) != dims.Len() {
		return nil, fmt.Errorf("volume of %d cells does not match dims %s", len(volumeData), dims)
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range volumeData {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	scale := 0.0
	switch {
	case math.IsInf(lo, 1):
		lo = 0
	case hi > lo:
		scale = 1 / (hi - lo)
	default:
		// constant volume renders white
		lo, scale = lo-1, 1
	}
	return &Viewer{
		volumeData: volumeData,
		dims:       dims,
		lo:         lo,
		scale:      scale,
	}, nil
}

func (v *Viewer) gray(idx int) color.Gray16 {
	val := v.volumeData[idx]
	if math.IsNaN(val) {
		return color.Gray16{}
	}
	n := (val - v.lo) * v.scale
	return color.Gray16{Y: uint16(math.Max(0, math.Min(65535, n*65535)))}
}

// ExtractSlice extracts a 2D slice from the volume along the specified axis.
// An x slice is depth×height, a y slice width×depth and a z slice
// width×height.
func (v *Viewer) ExtractSlice(axis string, position int) (image.Image, error) {
	if position < 0 {
		return nil, fmt.Errorf("position must be non-negative")
	}
	d := v.dims

	var img *image.Gray16

	switch axis {
	case "x", "X":
		// Extract slice along YZ plane
		if position >= d.X {
			return nil, fmt.Errorf("position %d exceeds width %d", position, d.X)
		}
		img = image.NewGray16(image.Rect(0, 0, d.Z, d.Y))
		for y := 0; y < d.Y; y++ {
			for z := 0; z < d.Z; z++ {
				img.SetGray16(z, y, v.gray(d.Index(position, y, z)))
			}
		}

	case "y", "Y":
		// Extract slice along XZ plane
		if position >= d.Y {
			return nil, fmt.Errorf("position %d exceeds height %d", position, d.Y)
		}
		img = image.NewGray16(image.Rect(0, 0, d.X, d.Z))
		for z := 0; z < d.Z; z++ {
			for x := 0; x < d.X; x++ {
				img.SetGray16(x, z, v.gray(d.Index(x, position, z)))
			}
		}

	case "z", "Z":
		// Extract slice along XY plane
		if position >= d.Z {
			return nil, fmt.Errorf("position %d exceeds depth %d", position, d.Z)
		}
		img = image.NewGray16(image.Rect(0, 0, d.X, d.Y))
		for y := 0; y < d.Y; y++ {
			for x := 0; x < d.X; x++ {
				img.SetGray16(x, y, v.gray(d.Index(x, y, position)))
			}
		}

	default:
		return nil, fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
	}

	return img, nil
}

// SaveSlice saves an extracted slice as a PNG image
func (v *Viewer) SaveSlice(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// SaveSliceSequence extracts and saves every slice along the specified axis
func (v *Viewer) SaveSliceSequence(axis string, outputDir string) error {
	var maxPos int
	switch axis {
	case "x", "X":
		maxPos = v.dims.X
	case "y", "Y":
		maxPos = v.dims.Y
	case "z", "Z":
		maxPos = v.dims.Z
	default:
		return fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	for pos := 0; pos < maxPos; pos++ {
		img, err := v.ExtractSlice(axis, pos)
		if err != nil {
			return err
		}

		filename := filepath.Join(outputDir, fmt.Sprintf("slice_%s_%03d.png", axis, pos))
		if err := v.SaveSlice(img, filename); err != nil {
			return err
		}
	}

	return nil
}
