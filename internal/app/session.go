package app

import (
	fsutil "github.com/kk-code-lab/shellpage/internal/fs"
)

// Session is the document being read, its pages and the reading position.
type Session struct {
	Doc      fsutil.Document
	Pages    []string
	Position int
}

// Page returns the page at the reading position.
func (s *Session) Page() string {
	if len(s.Pages) == 0 {
		return ""
	}
	return s.Pages[s.Position]
}

// Step moves the reading position by delta pages, wrapping at both ends.
func (s *Session) Step(delta int) {
	n := len(s.Pages)
	if n == 0 {
		return
	}
	s.Position = ((s.Position+delta)%n + n) % n
}
