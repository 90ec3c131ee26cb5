package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/payplan/internal/tui/components"
	"github.com/theirongolddev/payplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

type binding struct{ keys, desc string }

type bindingGroup struct {
	name     string
	bindings []binding
}

var keymap = []bindingGroup{
	{"Navigation", []binding{
		{"p h t x", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Scroll history / settings"},
		{"g G", "History top / bottom"},
	}},
	{"Plan", []binding{
		{"Enter / n", "New submission"},
		{"Esc", "Close the form"},
	}},
	{"History", []binding{
		{"/", "Search by YYYY-MM"},
		{"Esc", "Clear search"},
	}},
	{"General", []binding{
		{"?", "Toggle help"},
		{"q", "Quit"},
	}},
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

func (a App) viewTooNarrow() string {
	msg := fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  payplan needs at least %d columns.\n",
		a.width, minTerminalWidth)
	return fitLines(msg, max(a.height, minContentHeight))
}

func (a App) viewHelp() string {
	t := theme.Active
	on := lipgloss.NewStyle().Background(t.Surface)
	heading := on.Foreground(t.Accent).Bold(true)
	keyStyle := on.Foreground(t.Highlight).Bold(true).Width(12)
	desc := on.Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(on.Foreground(t.AccentBright).Bold(true).Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, g := range keymap {
		b.WriteString("\n" + heading.Render(g.name) + "\n")
		for _, kb := range g.bindings {
			b.WriteString(on.Render("  ") + keyStyle.Render(kb.keys) + desc.Render(kb.desc) + "\n")
		}
	}
	b.WriteString("\n" + on.Foreground(t.TextDim).Render("Press any key to close"))

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3).
		Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusText() (right, busy string) {
	right = fmt.Sprintf("Records: %d", a.log.Size())
	if a.journal != nil {
		right += fmt.Sprintf(" │ Journaled: %d", a.journaled)
		if a.journalErr != nil {
			right += " (last write failed)"
		}
	}
	if a.journalPending > 0 {
		busy = a.spinner.View()
	}
	return right, busy
}

func (a App) viewMain() string {
	t := theme.Active
	cw := a.contentWidth()

	header := components.RenderTabBar(a.activeTab, a.width)
	right, busy := a.statusText()
	status := components.RenderStatusBar(a.width, right, busy)
	bodyH := max(a.height-lipgloss.Height(header)-lipgloss.Height(status), minContentHeight)

	var body string
	switch a.activeTab {
	case tabPlan:
		body = a.renderPlanTab(cw)
	case tabHistory:
		body = a.renderHistoryTab(cw, bodyH)
	case tabTiers:
		body = a.renderTiersTab(cw)
	case tabSettings:
		body = a.renderSettingsTab(cw)
	}

	// Every body line is filled to cw so the background has no holes, then
	// the block is centered when the terminal is wider than cw.
	body = fillBlock(fitLines(body, bodyH), cw, t.Background)
	body = lipgloss.Place(a.width, bodyH, lipgloss.Center, lipgloss.Top, body,
		lipgloss.WithWhitespaceBackground(t.Background))

	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, header, body, status),
		lipgloss.WithWhitespaceBackground(t.Background))
}

// fitLines cuts or pads s to exactly h lines.
func fitLines(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func fillBlock(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line, lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// tabAtX maps a click column on the tab bar to a tab index, or -1. Tabs are
// laid out left to right with a one-column gap, as RenderTabBar draws them.
func (a App) tabAtX(x int) int {
	left := 0
	for i, tab := range components.Tabs {
		right := left + components.TabVisualWidth(tab, i == a.activeTab)
		if x >= left && x < right {
			return i
		}
		left = right + 1
	}
	return -1
}
