package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"strconv"
	"strings"

	"maskmeta/internal/models"
)

// parseDims parses "X,Y,Z" (or "XxYxZ") into lattice dimensions.
func parseDims(s string) (models.Dims, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == 'x' || r == 'X' })
	if len(fields) != 3 {
		return models.Dims{}, fmt.Errorf("dims %q must have three components", s)
	}
	var v [3]int
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || n < 1 {
			return models.Dims{}, fmt.Errorf("dims %q: component %q must be a positive integer", s, f)
		}
		v[i] = n
	}
	return models.Dims{X: v[0], Y: v[1], Z: v[2]}, nil
}

// loadRawMask reads a headerless little-endian label volume in x-fastest order.
// dtype is one of uint8, uint16 or int32.
func loadRawMask(path string, dims models.Dims, dtype string) (*models.Mask, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mask: %w", err)
	}

	n := dims.Len()
	labels := make([]int, n)
	r := bytes.NewReader(data)
	switch dtype {
	case "uint8":
		if len(data) != n {
			return nil, fmt.Errorf("mask %s holds %d bytes, want %d", path, len(data), n)
		}
		for i, b := range data {
			labels[i] = int(b)
		}
	case "uint16":
		buf := make([]uint16, n)
		if len(data) != 2*n {
			return nil, fmt.Errorf("mask %s holds %d bytes, want %d", path, len(data), 2*n)
		}
		if err := binary.Read(r, binary.LittleEndian, buf); err != nil {
			return nil, fmt.Errorf("failed to decode mask: %w", err)
		}
		for i, v := range buf {
			labels[i] = int(v)
		}
	case "int32":
		buf := make([]int32, n)
		if len(data) != 4*n {
			return nil, fmt.Errorf("mask %s holds %d bytes, want %d", path, len(data), 4*n)
		}
		if err := binary.Read(r, binary.LittleEndian, buf); err != nil {
			return nil, fmt.Errorf("failed to decode mask: %w", err)
		}
		for i, v := range buf {
			labels[i] = int(v)
		}
	default:
		return nil, fmt.Errorf("unsupported dtype %q (must be uint8, uint16 or int32)", dtype)
	}

	return models.MaskFromLabels(dims, labels)
}

// syntheticMask places two labelled spheres in the lattice: a large one and a
// small one overlapping its edge, which takes the later label.
func syntheticMask(dims models.Dims) *models.Mask {
	m := models.NewMask(dims)
	c := models.Coord{X: dims.X / 2, Y: dims.Y / 2, Z: dims.Z / 2}
	r := float64(minInt(dims.X, minInt(dims.Y, dims.Z))) / 3
	m.Sphere(c, r, 1)
	m.Sphere(models.Coord{X: c.X + int(r), Y: c.Y, Z: c.Z}, r/2, 2)
	return m
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
