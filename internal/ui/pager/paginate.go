package pager

import (
	"strings"

	"github.com/kk-code-lab/shellpage/internal/textutil"
	"github.com/muesli/reflow/wrap"
)

// UsableWidth returns the number of columns left for page text once the
// prompt has been drawn. It never drops below one column.
func UsableWidth(columns, promptWidth int) int {
	width := columns - promptWidth
	if width < 1 {
		return 1
	}
	return width
}

// Paginate turns document lines into pages no wider than width columns.
// Every page is a fragment of exactly one line and fragments keep the line
// order. A width below one is treated as one.
func Paginate(lines []string, width int) []string {
	if width < 1 {
		width = 1
	}
	pages := make([]string, 0, len(lines))
	for _, line := range lines {
		pages = append(pages, WrapLine(line, width)...)
	}
	return pages
}

// WrapLine greedily packs the whitespace-separated words of line into
// fragments of at most width columns. Runs of whitespace collapse to a single
// space. A word wider than width is hard-broken; its tail starts the next
// fragment.
func WrapLine(line string, width int) []string {
	if width < 1 {
		width = 1
	}

	var (
		out      []string
		current  strings.Builder
		curWidth int
	)
	flush := func() {
		if curWidth == 0 {
			return
		}
		out = append(out, current.String())
		current.Reset()
		curWidth = 0
	}

	for _, word := range strings.Fields(line) {
		wordWidth := textutil.DisplayWidth(word)
		switch {
		case wordWidth > width:
			flush()
			pieces := hardBreak(word, width)
			if len(pieces) == 0 {
				continue
			}
			out = append(out, pieces[:len(pieces)-1]...)
			last := pieces[len(pieces)-1]
			current.WriteString(last)
			curWidth = textutil.DisplayWidth(last)
		case curWidth == 0:
			current.WriteString(word)
			curWidth = wordWidth
		case curWidth+1+wordWidth <= width:
			current.WriteByte(' ')
			current.WriteString(word)
			curWidth += 1 + wordWidth
		default:
			flush()
			current.WriteString(word)
			curWidth = wordWidth
		}
	}
	flush()
	return out
}

// hardBreak splits a single word into column-limited chunks. A rune wider
// than width still gets a chunk of its own.
func hardBreak(word string, width int) []string {
	wrapped := wrap.String(word, width)
	parts := strings.Split(wrapped, "\n")
	pieces := parts[:0]
	for _, part := range parts {
		if part != "" {
			pieces = append(pieces, part)
		}
	}
	return pieces
}
