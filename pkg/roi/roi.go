// Package roi partitions mask columns into regions that share a label.
package roi

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ErrValueLength is returned when a value vector does not have one entry per column.
var ErrValueLength = errors.New("roi: value count does not match column count")

// Groups maps each distinct positive label to the columns carrying it.
// IDs are ascending and Columns[i] lists the columns of IDs[i] in ascending
// order. Every column belongs to exactly one group.
type Groups struct {
	IDs     []int
	Columns [][]int

	m    int
	byID map[int]int
}

// Group partitions columns by label. labels[i] is the mask value of column i
// and must be positive.
func Group(labels []int) *Groups {
	byLabel := make(map[int][]int)
	for col, label := range labels {
		byLabel[label] = append(byLabel[label], col)
	}

	ids := make([]int, 0, len(byLabel))
	for id := range byLabel {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	g := &Groups{
		IDs:     ids,
		Columns: make([][]int, len(ids)),
		m:       len(labels),
		byID:    make(map[int]int, len(ids)),
	}
	for i, id := range ids {
		g.Columns[i] = byLabel[id]
		g.byID[id] = i
	}
	return g
}

// Clone returns a deep copy of g.
func (g *Groups) Clone() *Groups {
	c := &Groups{
		IDs:     append([]int(nil), g.IDs...),
		Columns: make([][]int, len(g.Columns)),
		m:       g.m,
		byID:    make(map[int]int, len(g.byID)),
	}
	for i, cols := range g.Columns {
		c.Columns[i] = append([]int(nil), cols...)
	}
	for id, i := range g.byID {
		c.byID[id] = i
	}
	return c
}

// Len returns the number of groups.
func (g *Groups) Len() int {
	return len(g.IDs)
}

// Lookup returns the columns carrying label id.
func (g *Groups) Lookup(id int) ([]int, bool) {
	i, ok := g.byID[id]
	if !ok {
		return nil, false
	}
	return g.Columns[i], true
}

// Sizes returns the number of columns of each group, aligned with IDs.
func (g *Groups) Sizes() []int {
	sizes := make([]int, len(g.Columns))
	for i, cols := range g.Columns {
		sizes[i] = len(cols)
	}
	return sizes
}

// Summary describes the values of one region.
type Summary struct {
	ID     int
	Count  int
	Mean   float64
	StdDev float64
}

// Summarize aggregates a per-column value vector over every region.
// StdDev is the unbiased sample standard deviation and is NaN for a region
// holding a single column.
func (g *Groups) Summarize(values []float64) ([]Summary, error) {
	if len(values) != g.m {
		return nil, fmt.Errorf("%w: got %d values for %d columns", ErrValueLength, len(values), g.m)
	}
	out := make([]Summary, len(g.IDs))
	buf := make([]float64, 0)
	for i, id := range g.IDs {
		buf = buf[:0]
		for _, col := range g.Columns[i] {
			buf = append(buf, values[col])
		}
		mean, std := stat.MeanStdDev(buf, nil)
		out[i] = Summary{
			ID:     id,
			Count:  len(buf),
			Mean:   mean,
			StdDev: std,
		}
	}
	return out, nil
}
