package highlight

// Options configures a Highlighter.
type Options struct {
	// RecordFormat selects the serialization of maps and structs. Defaults to
	// RecordJSON.
	RecordFormat RecordFormat
}

// Highlighter compares values using a fixed set of options. It holds no mutable
// state and is safe for concurrent use.
type Highlighter struct {
	records RecordFormat
}

// New returns a Highlighter for opts.
func New(opts Options) *Highlighter {
	records := opts.RecordFormat
	if records != RecordYAML {
		records = RecordJSON
	}
	return &Highlighter{records: records}
}

// Normalize converts v into canonical text.
func (h *Highlighter) Normalize(v any) string {
	return normalize(v, h.records)
}

// Comparison is the outcome of comparing two canonical texts.
type Comparison struct {
	BeforeText string
	AfterText  string
	// Identical is set when the texts are byte-equal; Rows is nil in that case.
	Identical bool
	Rows      []Row
}

// Compare normalizes before and after and compares the results.
func (h *Highlighter) Compare(before, after any) Comparison {
	return CompareText(h.Normalize(before), h.Normalize(after))
}

// CompareText compares two canonical texts line by line. Byte-equal texts skip
// the table entirely.
func CompareText(beforeText, afterText string) Comparison {
	c := Comparison{BeforeText: beforeText, AfterText: afterText}
	if beforeText == afterText {
		c.Identical = true
		return c
	}
	c.Rows = Align(DiffLines(SplitLines(beforeText), SplitLines(afterText)))
	return c
}

// AlignedRows returns the rows to display. For identical texts every line is an
// equal row.
func (c Comparison) AlignedRows() []Row {
	if c.Identical {
		return EqualRows(SplitLines(c.BeforeText))
	}
	return c.Rows
}

// Markup renders the comparison. Identical texts render as the same escaped
// text on both sides without line spans.
func (c Comparison) Markup() RenderedPair {
	if c.Identical {
		escaped := escapeOrNBSP(c.BeforeText)
		return RenderedPair{Before: escaped, After: escaped}
	}
	return RenderRows(c.Rows)
}

// HighlightDiff compares before and after and renders the result.
func (h *Highlighter) HighlightDiff(before, after any) RenderedPair {
	return h.Compare(before, after).Markup()
}

// HighlightDiff compares before and after with default options and returns the
// markup for both columns.
func HighlightDiff(before, after any) RenderedPair {
	return New(Options{}).HighlightDiff(before, after)
}
