package highlight

// Table is the longest-common-subsequence table for two line sequences of
// lengths m and n. Cell (i, j) holds the LCS length of before[i:] and after[j:].
// The (m+1)x(n+1) grid is stored row-major in a single slice.
type Table struct {
	m, n  int
	cells []int
}

// BuildTable fills the LCS table for before and after, from the highest indices
// down. Time and space are both O(m*n).
func BuildTable(before, after []string) *Table {
	m, n := len(before), len(after)
	t := &Table{
		m:     m,
		n:     n,
		cells: make([]int, (m+1)*(n+1)),
	}

	stride := n + 1
	for i := m - 1; i >= 0; i-- {
		row := i * stride
		next := row + stride
		for j := n - 1; j >= 0; j-- {
			if before[i] == after[j] {
				t.cells[row+j] = t.cells[next+j+1] + 1
			} else {
				t.cells[row+j] = max(t.cells[next+j], t.cells[row+j+1])
			}
		}
	}
	return t
}

// At returns the LCS length of before[i:] and after[j:].
func (t *Table) At(i, j int) int {
	return t.cells[i*(t.n+1)+j]
}

// Len returns the length of the longest common subsequence.
func (t *Table) Len() int {
	return t.At(0, 0)
}

// Dims returns the lengths of the two sequences the table was built from.
func (t *Table) Dims() (m, n int) {
	return t.m, t.n
}
