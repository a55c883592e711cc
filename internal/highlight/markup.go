package highlight

import "strings"

// Class names used in the rendered markup.
const (
	ClassLine            = "diff-line"
	ClassLineRemove      = "diff-line diff-line-remove"
	ClassLineAdd         = "diff-line diff-line-add"
	ClassLinePlaceholder = "diff-line diff-line-placeholder"
	ClassMarkRemove      = "diff-mark diff-remove"
	ClassMarkAdd         = "diff-mark diff-add"
)

// NBSP stands in for empty text so that empty lines and empty marks keep a
// visible, selectable box.
const NBSP = "&nbsp;"

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// Escape replaces the five HTML-significant characters with entities.
func Escape(text string) string {
	return escaper.Replace(text)
}

func escapeOrNBSP(text string) string {
	if text == "" {
		return NBSP
	}
	return Escape(text)
}

// RenderedPair is the markup for the before and after columns.
type RenderedPair struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// Render aligns ops and renders the rows as markup.
func Render(ops []EditOp) RenderedPair {
	return RenderRows(Align(ops))
}

// RenderRows renders each row as one line span per side.
func RenderRows(rows []Row) RenderedPair {
	var before, after strings.Builder
	for _, r := range rows {
		writeCell(&before, r.Before)
		writeCell(&after, r.After)
	}
	return RenderedPair{Before: before.String(), After: after.String()}
}

func writeCell(b *strings.Builder, c Cell) {
	var class, mark string
	switch c.Kind {
	case LinePlaceholder:
		b.WriteString(`<span class="` + ClassLinePlaceholder + `">` + NBSP + `</span>`)
		return
	case LineRemoved:
		class, mark = ClassLineRemove, ClassMarkRemove
	case LineAdded:
		class, mark = ClassLineAdd, ClassMarkAdd
	default:
		class = ClassLine
	}

	b.WriteString(`<span class="` + class + `">`)
	if c.Marked {
		b.WriteString(Escape(c.Span.Prefix))
		b.WriteString(`<span class="` + mark + `">`)
		b.WriteString(escapeOrNBSP(c.Span.Diff))
		b.WriteString(`</span>`)
		b.WriteString(Escape(c.Span.Suffix))
	} else {
		b.WriteString(escapeOrNBSP(c.Text()))
	}
	b.WriteString(`</span>`)
}
