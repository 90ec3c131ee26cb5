package components

import (
	"strings"

	"github.com/theirongolddev/payplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Plan", Key: 'p', KeyPos: 0},
	{Name: "History", Key: 'h', KeyPos: 0},
	{Name: "Tiers", Key: 't', KeyPos: 0},
	{Name: "Settings", Key: 'x', KeyPos: -1}, // x is not in "Settings"
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	sep := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	parts := make([]string, 0, len(Tabs))
	for i, tab := range Tabs {
		parts = append(parts, renderTab(tab, i == activeIdx))
	}
	row := strings.Join(parts, sep)

	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(row)
}

// TabVisualWidth returns the rendered width of tab, for mouse hit testing.
func TabVisualWidth(tab Tab, active bool) int {
	return lipgloss.Width(renderTab(tab, active))
}

func renderTab(tab Tab, active bool) string {
	t := theme.Active

	if active {
		return lipgloss.NewStyle().
			Foreground(t.AccentBright).
			Background(t.SurfaceHover).
			Bold(true).
			Padding(0, 1).
			Render(tab.Name)
	}

	inactiveStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	dimKeyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pad := inactiveStyle.Render(" ")

	// Highlight the shortcut letter in place
	if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
		before := tab.Name[:tab.KeyPos]
		key := string(tab.Name[tab.KeyPos])
		after := tab.Name[tab.KeyPos+1:]
		return pad + inactiveStyle.Render(before) + keyStyle.Render(key) + inactiveStyle.Render(after) + pad
	}

	// Key not in name (e.g., "Settings" with 'x')
	return pad + inactiveStyle.Render(tab.Name) +
		dimKeyStyle.Render("[") + keyStyle.Render(string(tab.Key)) + dimKeyStyle.Render("]") + pad
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
