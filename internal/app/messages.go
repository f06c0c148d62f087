package app

import "github.com/charmbracelet/lipgloss"

const (
	selectLabel   = "Select a document (↑/↓ to choose, Enter to open, Esc to quit): "
	menuLabel     = "Choose [1 continue reading / 2 jump to keyword, b back]: "
	keywordLabel  = "Keyword: "
	notFoundText  = "No page contains that keyword (press Enter)."
	emptyDocText  = "Nothing to read in %s (press Enter)."
	loadErrorText = "Cannot open %s: %v (press Enter)."
	invalidText   = "Invalid choice %q, enter 1 or 2."
)

var noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

// notice styles a transient message shown in place of page text.
func notice(text string) string {
	return noticeStyle.Render(text)
}
