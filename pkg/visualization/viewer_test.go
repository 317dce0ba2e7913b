package visualization

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"testing"

	"maskmeta/internal/models"
)

// TestNewViewer verifies scaling bounds and size validation
func TestNewViewer(t *testing.T) {
	dims := models.Dims{X: 4, Y: 3, Z: 2}
	volumeData := make([]float64, dims.Len())
	for i := range volumeData {
		volumeData[i] = float64(i)
	}
	volumeData[5] = math.NaN()

	viewer, err := NewViewer(volumeData, dims)
	if err != nil {
		t.Fatalf("NewViewer failed: %v", err)
	}
	if viewer.lo != 0 {
		t.Errorf("Expected minimum 0, got %f", viewer.lo)
	}
	if math.Abs(viewer.scale-1.0/23) > 1e-12 {
		t.Errorf("Expected scale 1/23, got %f", viewer.scale)
	}

	if _, err := NewViewer(volumeData[:3], dims); err == nil {
		t.Error("Expected error for mismatched volume, got nil")
	}
}

// TestExtractSlice verifies slice dimensions and pixel values
func TestExtractSlice(t *testing.T) {
	dims := models.Dims{X: 6, Y: 4, Z: 3}
	volumeData := make([]float64, dims.Len())

	// each z slice holds its own index; NaN marks one cell outside the mask
	for z := 0; z < dims.Z; z++ {
		for y := 0; y < dims.Y; y++ {
			for x := 0; x < dims.X; x++ {
				volumeData[dims.Index(x, y, z)] = float64(z)
			}
		}
	}
	volumeData[dims.Index(0, 0, 1)] = math.NaN()

	viewer, err := NewViewer(volumeData, dims)
	if err != nil {
		t.Fatalf("NewViewer failed: %v", err)
	}

	for z := 0; z < dims.Z; z++ {
		img, err := viewer.ExtractSlice("z", z)
		if err != nil {
			t.Fatalf("Failed to extract Z slice at position %d: %v", z, err)
		}
		bounds := img.Bounds()
		if bounds.Dx() != dims.X || bounds.Dy() != dims.Y {
			t.Errorf("Expected Z slice dimensions %dx%d, got %dx%d",
				dims.X, dims.Y, bounds.Dx(), bounds.Dy())
		}
		gray, ok := img.(*image.Gray16)
		if !ok {
			t.Fatalf("Expected *image.Gray16, got %T", img)
		}
		want := uint16(float64(z) / 2 * 65535)
		if got := gray.Gray16At(2, 2).Y; got != want {
			t.Errorf("Expected value %d in slice %d, got %d", want, z, got)
		}
	}

	img, _ := viewer.ExtractSlice("z", 1)
	if got := img.(*image.Gray16).Gray16At(0, 0).Y; got != 0 {
		t.Errorf("Expected NaN cell to render black, got %d", got)
	}

	imgX, err := viewer.ExtractSlice("x", 1)
	if err != nil {
		t.Fatalf("Failed to extract X slice: %v", err)
	}
	if b := imgX.Bounds(); b.Dx() != dims.Z || b.Dy() != dims.Y {
		t.Errorf("Expected X slice dimensions %dx%d, got %dx%d", dims.Z, dims.Y, b.Dx(), b.Dy())
	}

	imgY, err := viewer.ExtractSlice("y", 1)
	if err != nil {
		t.Fatalf("Failed to extract Y slice: %v", err)
	}
	if b := imgY.Bounds(); b.Dx() != dims.X || b.Dy() != dims.Z {
		t.Errorf("Expected Y slice dimensions %dx%d, got %dx%d", dims.X, dims.Z, b.Dx(), b.Dy())
	}

	if _, err := viewer.ExtractSlice("invalid", 0); err == nil {
		t.Error("Expected error for invalid axis, got nil")
	}
	if _, err := viewer.ExtractSlice("z", dims.Z); err == nil {
		t.Error("Expected error for out of bounds position, got nil")
	}
	if _, err := viewer.ExtractSlice("x", -1); err == nil {
		t.Error("Expected error for negative position, got nil")
	}
}

// TestSaveSliceSequence verifies that a sequence of slices can be saved
func TestSaveSliceSequence(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping file I/O test in short mode")
	}

	dims := models.Dims{X: 5, Y: 5, Z: 3}
	volumeData := make([]float64, dims.Len())
	for i := range volumeData {
		volumeData[i] = 0.5
	}
	viewer, err := NewViewer(volumeData, dims)
	if err != nil {
		t.Fatalf("NewViewer failed: %v", err)
	}

	outputDir := filepath.Join(t.TempDir(), "slices")
	if err := viewer.SaveSliceSequence("z", outputDir); err != nil {
		t.Fatalf("Failed to save slice sequence: %v", err)
	}

	for z := 0; z < dims.Z; z++ {
		filename := filepath.Join(outputDir, fmt.Sprintf("slice_z_%03d.png", z))
		if _, err := os.Stat(filename); os.IsNotExist(err) {
			t.Errorf("Expected slice file does not exist: %s", filename)
		}
	}

	if err := viewer.SaveSliceSequence("invalid", outputDir); err == nil {
		t.Error("Expected error for invalid axis, got nil")
	}
}
