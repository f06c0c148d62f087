package search

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// foldText normalizes text for case-insensitive comparison.
func foldText(text string) string {
	return folder.String(norm.NFC.String(text))
}

// FindPage returns the index of the first page containing needle, ignoring
// case. Pages from start to the end are scanned first; when none match the
// scan wraps and covers every page from the beginning. ok is false when no
// page matches. Callers filter empty needles.
func FindPage(pages []string, needle string, start int) (index int, ok bool) {
	if len(pages) == 0 {
		return 0, false
	}
	if start < 0 {
		start = 0
	}
	if start > len(pages) {
		start = len(pages)
	}

	target := foldText(needle)
	matches := func(i int) bool {
		return strings.Contains(foldText(pages[i]), target)
	}

	for i := start; i < len(pages); i++ {
		if matches(i) {
			return i, true
		}
	}
	for i := 0; i < len(pages); i++ {
		if matches(i) {
			return i, true
		}
	}
	return 0, false
}
