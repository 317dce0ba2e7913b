package neighbors

// Table stores ragged neighbor lists in one fixed-width arena.
// Row i occupies Slots[i*Width : i*Width+Counts[i]]; the trailing slots of a
// row are unused and hold -1.
type Table struct {
	// Width is the largest neighbor count observed over all columns
	Width int

	// Slots holds Len()*Width column indices
	Slots []int32

	// Counts holds the number of valid slots per column
	Counts []int32
}

// newTable allocates a table sized to the maximum of counts.
func newTable(counts []int32) *Table {
	width := 0
	for _, c := range counts {
		if int(c) > width {
			width = int(c)
		}
	}
	slots := make([]int32, len(counts)*width)
	for i := range slots {
		slots[i] = -1
	}
	return &Table{
		Width:  width,
		Slots:  slots,
		Counts: counts,
	}
}

// Len returns the number of columns in the table.
func (t *Table) Len() int {
	return len(t.Counts)
}

// Count returns the number of neighbors of column col.
func (t *Table) Count(col int) int {
	return int(t.Counts[col])
}

// Neighbors returns the neighbor columns of col. The returned slice aliases
// the table and must not be modified.
func (t *Table) Neighbors(col int) []int32 {
	start := col * t.Width
	return t.Slots[start : start+int(t.Counts[col])]
}

// row returns the full slot range of col for filling.
func (t *Table) row(col int) []int32 {
	start := col * t.Width
	return t.Slots[start : start+t.Width]
}

// Total returns the sum of all neighbor counts, which is twice the number of
// neighbor pairs.
func (t *Table) Total() int {
	n := 0
	for _, c := range t.Counts {
		n += int(c)
	}
	return n
}

// Lists copies the table into one slice per column.
func (t *Table) Lists() [][]int {
	out := make([][]int, t.Len())
	for col := range out {
		nb := t.Neighbors(col)
		row := make([]int, len(nb))
		for i, v := range nb {
			row[i] = int(v)
		}
		out[col] = row
	}
	return out
}

// Equal reports whether t and other hold the same neighbor lists. Width is
// not compared beyond what the lists imply.
func (t *Table) Equal(other *Table) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Len() != other.Len() {
		return false
	}
	for col := 0; col < t.Len(); col++ {
		a, b := t.Neighbors(col), other.Neighbors(col)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	}
	return true
}
