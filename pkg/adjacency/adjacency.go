// Package adjacency materializes a neighbor table as a sparse boolean m×m
// matrix in compressed sparse row form.
//
// Matrix satisfies gonum's mat.Matrix and mat.Symmetric interfaces, so it can
// be passed to gonum routines that read a matrix element-wise. Graph exposes the
// same relation as a gonum undirected graph.
package adjacency

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/mat"

	"maskmeta/pkg/neighbors"
)

var (
	_ mat.Matrix    = (*Matrix)(nil)
	_ mat.Symmetric = (*Matrix)(nil)
)

// Matrix is a square boolean matrix. Row i holds the columns
// colIdx[rowPtr[i]:rowPtr[i+1]] in ascending order.
type Matrix struct {
	n      int
	rowPtr []int
	colIdx []int32
}

// Build assembles the adjacency matrix of table. Entry (i, j) is set exactly
// when j is listed as a neighbor of i.
func Build(table *neighbors.Table) *Matrix {
	n := table.Len()
	rowPtr := make([]int, n+1)
	for i := 0; i < n; i++ {
		rowPtr[i+1] = rowPtr[i] + table.Count(i)
	}
	colIdx := make([]int32, rowPtr[n])
	for i := 0; i < n; i++ {
		row := colIdx[rowPtr[i]:rowPtr[i+1]]
		copy(row, table.Neighbors(i))
		sort.Slice(row, func(a, b int) bool { return row[a] < row[b] })
	}
	return &Matrix{n: n, rowPtr: rowPtr, colIdx: colIdx}
}

// Dims returns the matrix dimensions.
func (m *Matrix) Dims() (r, c int) {
	return m.n, m.n
}

// SymmetricDim returns the row and column count.
func (m *Matrix) SymmetricDim() int {
	return m.n
}

// At returns 1 when (i, j) is set and 0 otherwise. It panics with
// mat.ErrRowAccess or mat.ErrColAccess when an index is out of range.
func (m *Matrix) At(i, j int) float64 {
	if i < 0 || i >= m.n {
		panic(mat.ErrRowAccess)
	}
	if j < 0 || j >= m.n {
		panic(mat.ErrColAccess)
	}
	if m.Has(i, j) {
		return 1
	}
	return 0
}

// T returns the transpose. The relation is symmetric, so this is m itself.
func (m *Matrix) T() mat.Matrix {
	return m
}

// Has reports whether (i, j) is set. Out-of-range indices report false.
func (m *Matrix) Has(i, j int) bool {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		return false
	}
	row := m.Row(i)
	k := sort.Search(len(row), func(k int) bool { return row[k] >= int32(j) })
	return k < len(row) && row[k] == int32(j)
}

// Row returns the set columns of row i. The slice aliases the matrix.
func (m *Matrix) Row(i int) []int32 {
	return m.colIdx[m.rowPtr[i]:m.rowPtr[i+1]]
}

// NNZ returns the number of set entries.
func (m *Matrix) NNZ() int {
	return len(m.colIdx)
}

// IsSymmetric reports whether (i, j) set implies (j, i) set for every entry.
func (m *Matrix) IsSymmetric() bool {
	for i := 0; i < m.n; i++ {
		for _, j := range m.Row(i) {
			if !m.Has(int(j), i) {
				return false
			}
		}
	}
	return true
}

// Graph returns the matrix as an undirected graph whose node IDs are columns.
// Columns without neighbors are present as isolated nodes.
func (m *Matrix) Graph() *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for i := 0; i < m.n; i++ {
		g.AddNode(simple.Node(i))
	}
	for i := 0; i < m.n; i++ {
		for _, j := range m.Row(i) {
			if int(j) > i {
				g.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(j)})
			}
		}
	}
	return g
}

// Components returns the connected clusters of columns, each sorted
// ascending, ordered by their smallest column.
func (m *Matrix) Components() [][]int {
	cc := topo.ConnectedComponents(m.Graph())
	out := make([][]int, 0, len(cc))
	for _, nodes := range cc {
		out = append(out, nodeIDs(nodes))
	}
	sort.Slice(out, func(a, b int) bool { return out[a][0] < out[b][0] })
	return out
}

func nodeIDs(nodes []graph.Node) []int {
	ids := make([]int, len(nodes))
	for i, n := range nodes {
		ids[i] = int(n.ID())
	}
	sort.Ints(ids)
	return ids
}
