package highlight

import "github.com/sergi/go-diff/diffmatchpatch"

// InlineSpan splits a line into a prefix and suffix shared with its counterpart
// and the differing middle. Any part may be empty.
type InlineSpan struct {
	Prefix string
	Diff   string
	Suffix string
}

// Text returns the whole line.
func (s InlineSpan) Text() string {
	return s.Prefix + s.Diff + s.Suffix
}

// InlineDiff finds the common prefix of before and after, then the common suffix
// of what remains, and returns the split of each line. Positions are counted in
// code points. The returned bool is false when the lines are equal, in which case
// each span holds the whole line as its prefix and nothing is marked.
func InlineDiff(before, after string) (InlineSpan, InlineSpan, bool) {
	if before == after {
		return InlineSpan{Prefix: before}, InlineSpan{Prefix: after}, false
	}

	dmp := diffmatchpatch.New()
	b, a := []rune(before), []rune(after)
	prefix := dmp.DiffCommonPrefix(before, after)
	suffix := dmp.DiffCommonSuffix(string(b[prefix:]), string(a[prefix:]))

	return splitRunes(b, prefix, suffix), splitRunes(a, prefix, suffix), true
}

func splitRunes(r []rune, prefix, suffix int) InlineSpan {
	end := len(r) - suffix
	return InlineSpan{
		Prefix: string(r[:prefix]),
		Diff:   string(r[prefix:end]),
		Suffix: string(r[end:]),
	}
}
