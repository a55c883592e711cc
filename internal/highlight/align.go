package highlight

// LineKind tags one side of an aligned row.
type LineKind int

const (
	LineEqual LineKind = iota
	LineRemoved
	LineAdded
	LinePlaceholder
)

func (k LineKind) String() string {
	switch k {
	case LineEqual:
		return "equal"
	case LineRemoved:
		return "removed"
	case LineAdded:
		return "added"
	case LinePlaceholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

// Cell is one side of a row. When Marked is set, Span.Diff is the character
// range that differs from the other side of the row.
type Cell struct {
	Kind   LineKind
	Span   InlineSpan
	Marked bool
}

// Text returns the unmarked line text.
func (c Cell) Text() string {
	return c.Span.Text()
}

// Row pairs the before and after sides of one displayed line.
type Row struct {
	Before Cell
	After  Cell
}

var placeholder = Cell{Kind: LinePlaceholder}

func lineCell(kind LineKind, line string) Cell {
	return Cell{Kind: kind, Span: InlineSpan{Prefix: line}}
}

// Align turns an edit script into rows with one entry per displayed line on each
// side. A Delete immediately followed by an Insert becomes a single replace row
// refined with InlineDiff; a lone Delete or Insert is paired with a placeholder.
func Align(ops []EditOp) []Row {
	rows := make([]Row, 0, len(ops))
	for i := 0; i < len(ops); i++ {
		switch op := ops[i].(type) {
		case Equal:
			rows = append(rows, Row{
				Before: lineCell(LineEqual, op.Before),
				After:  lineCell(LineEqual, op.After),
			})
		case Delete:
			if i+1 < len(ops) {
				if ins, ok := ops[i+1].(Insert); ok {
					before, after, marked := InlineDiff(op.Line, ins.Line)
					rows = append(rows, Row{
						Before: Cell{Kind: LineRemoved, Span: before, Marked: marked},
						After:  Cell{Kind: LineAdded, Span: after, Marked: marked},
					})
					i++
					continue
				}
			}
			rows = append(rows, Row{Before: lineCell(LineRemoved, op.Line), After: placeholder})
		case Insert:
			rows = append(rows, Row{Before: placeholder, After: lineCell(LineAdded, op.Line)})
		}
	}
	return rows
}

// EqualRows returns one equal row per line, used when both sides are identical.
func EqualRows(lines []string) []Row {
	rows := make([]Row, len(lines))
	for i, line := range lines {
		rows[i] = Row{Before: lineCell(LineEqual, line), After: lineCell(LineEqual, line)}
	}
	return rows
}

// Summary counts rows by kind.
type Summary struct {
	Equal   int
	Changed int
	Removed int
	Added   int
}

// Summarize counts rows: a replace row is Changed, a removed or added line
// opposite a placeholder is Removed or Added.
func Summarize(rows []Row) Summary {
	var s Summary
	for _, r := range rows {
		switch {
		case r.Before.Kind == LineEqual:
			s.Equal++
		case r.Before.Kind == LineRemoved && r.After.Kind == LineAdded:
			s.Changed++
		case r.Before.Kind == LineRemoved:
			s.Removed++
		case r.After.Kind == LineAdded:
			s.Added++
		}
	}
	return s
}
