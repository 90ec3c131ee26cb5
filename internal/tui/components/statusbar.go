package components

import (
	"strings"

	"github.com/theirongolddev/payplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. right is drawn flush
// against the right edge; busy (a spinner frame, usually) precedes it.
func RenderStatusBar(width int, right, busy string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	left := " [?]help  [q]uit"
	if busy != "" {
		right = busy + " " + right
	}
	right += " "

	// Pad middle
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return style.Render(left + strings.Repeat(" ", padding) + right)
}
