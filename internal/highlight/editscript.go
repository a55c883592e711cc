package highlight

// EditOp is one step of an edit script. It is one of Equal, Delete or Insert.
type EditOp interface {
	editOp()
}

// Equal keeps a line that appears in both sequences.
type Equal struct {
	Before, After string
}

// Delete removes a line from the before sequence.
type Delete struct {
	Line string
}

// Insert adds a line from the after sequence.
type Insert struct {
	Line string
}

func (Equal) editOp()  {}
func (Delete) editOp() {}
func (Insert) editOp() {}

// Reconstruct walks table forward from (0, 0) and returns the edit script that
// turns before into after. When both alternatives keep the same LCS length the
// mismatch is emitted as a Delete first; output stability depends on this order.
func Reconstruct(before, after []string, table *Table) []EditOp {
	m, n := len(before), len(after)
	ops := make([]EditOp, 0, max(m, n))

	i, j := 0, 0
	for i < m && j < n {
		switch {
		case before[i] == after[j]:
			ops = append(ops, Equal{Before: before[i], After: after[j]})
			i++
			j++
		case table.At(i+1, j) >= table.At(i, j+1):
			ops = append(ops, Delete{Line: before[i]})
			i++
		default:
			ops = append(ops, Insert{Line: after[j]})
			j++
		}
	}
	for ; i < m; i++ {
		ops = append(ops, Delete{Line: before[i]})
	}
	for ; j < n; j++ {
		ops = append(ops, Insert{Line: after[j]})
	}
	return ops
}

// DiffLines builds the LCS table for before and after and reconstructs the
// edit script from it.
func DiffLines(before, after []string) []EditOp {
	return Reconstruct(before, after, BuildTable(before, after))
}
