package models

import (
	"errors"
	"testing"
)

func TestDimsIndexCoordinate(t *testing.T) {
	d := Dims{X: 4, Y: 3, Z: 2}
	if d.Len() != 24 {
		t.Fatalf("Expected 24 voxels, got %d", d.Len())
	}
	for idx := 0; idx < d.Len(); idx++ {
		c := d.Coordinate(idx)
		if !d.InBounds(c.X, c.Y, c.Z) {
			t.Fatalf("Coordinate %v of offset %d is out of bounds", c, idx)
		}
		if got := d.Index(c.X, c.Y, c.Z); got != idx {
			t.Errorf("Expected offset %d, got %d for %v", idx, got, c)
		}
	}
	// x varies fastest
	if d.Index(1, 0, 0) != 1 || d.Index(0, 1, 0) != 4 || d.Index(0, 0, 1) != 12 {
		t.Errorf("Unexpected scan order")
	}
}

func TestDimsValid(t *testing.T) {
	if (Dims{1, 1, 1}).Valid() != true {
		t.Errorf("Expected 1x1x1 to be valid")
	}
	if (Dims{0, 2, 2}).Valid() {
		t.Errorf("Expected 0x2x2 to be invalid")
	}
}

func TestMaskFromLabels(t *testing.T) {
	d := Dims{X: 2, Y: 2, Z: 1}
	if _, err := MaskFromLabels(d, []int{1, 0, 0}); !errors.Is(err, ErrMaskSize) {
		t.Errorf("Expected ErrMaskSize, got %v", err)
	}
	if _, err := MaskFromLabels(d, []int{1, -1, 0, 0}); !errors.Is(err, ErrNegativeLabel) {
		t.Errorf("Expected ErrNegativeLabel, got %v", err)
	}

	labels := []int{1, 0, 2, 0}
	m, err := MaskFromLabels(d, labels)
	if err != nil {
		t.Fatalf("MaskFromLabels failed: %v", err)
	}
	labels[0] = 7
	if m.At(0, 0, 0) != 1 {
		t.Errorf("Mask must not alias the input slice")
	}
	if m.Count() != 2 {
		t.Errorf("Expected 2 selected voxels, got %d", m.Count())
	}
}

func TestMaskSphere(t *testing.T) {
	m := NewMask(Dims{X: 5, Y: 5, Z: 5})
	m.Sphere(Coord{2, 2, 2}, 1, 3)
	// center plus six face neighbors
	if m.Count() != 7 {
		t.Errorf("Expected 7 voxels in unit sphere, got %d", m.Count())
	}
	if m.At(2, 2, 2) != 3 {
		t.Errorf("Expected center label 3, got %d", m.At(2, 2, 2))
	}
}
