// Package components provides reusable TUI widgets for the payplan screens.
package components

import (
	"strings"

	"github.com/theirongolddev/payplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// SplitWidth distributes total into n widths that sum to exactly total.
// The first widths absorb the remainder.
func SplitWidth(total, n int) []int {
	if n <= 0 {
		return nil
	}
	widths := make([]int, n)
	for i := range widths {
		widths[i] = total / n
		if i < total%n {
			widths[i]++
		}
	}
	return widths
}

// Metric is one headline number on the plan screen.
type Metric struct {
	Label string
	Value string
	Note  string         // optional line under the value
	Tone  lipgloss.Color // value color; empty means primary text
}

func panelStyle(outerWidth int) lipgloss.Style {
	t := theme.Active
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		BorderBackground(t.Surface).
		Background(t.Surface).
		Width(max(outerWidth-2, 10)).
		Padding(0, 1)
}

// MetricTile renders a bordered tile: label, value, optional note.
// outerWidth includes the border.
func MetricTile(m Metric, outerWidth int) string {
	t := theme.Active
	tone := m.Tone
	if tone == "" {
		tone = t.TextPrimary
	}

	lines := []string{
		lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render(m.Label),
		lipgloss.NewStyle().Foreground(tone).Background(t.Surface).Bold(true).Render(m.Value),
	}
	if m.Note != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render(m.Note))
	}
	return panelStyle(outerWidth).Render(strings.Join(lines, "\n"))
}

// MetricRow renders tiles side by side, exactly totalWidth wide.
func MetricRow(metrics []Metric, totalWidth int) string {
	if len(metrics) == 0 {
		return ""
	}
	widths := SplitWidth(totalWidth, len(metrics))
	tiles := make([]string, len(metrics))
	for i, m := range metrics {
		tiles[i] = MetricTile(m, widths[i])
	}
	return PanelRow(tiles...)
}

// Panel renders a bordered panel with an optional title line.
// outerWidth includes the border.
func Panel(title, body string, outerWidth int) string {
	t := theme.Active
	content := body
	if title != "" {
		content = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true).Render(title) + "\n" + body
	}
	return panelStyle(outerWidth).Render(content)
}

// PanelRow joins rendered panels left to right. Shorter panels are extended
// with surface-colored rows so the row has no unstyled holes.
func PanelRow(panels ...string) string {
	if len(panels) == 0 {
		return ""
	}
	tallest := 0
	for _, p := range panels {
		tallest = max(tallest, lipgloss.Height(p))
	}

	fill := lipgloss.NewStyle().Background(theme.Active.Surface)
	padded := make([]string, len(panels))
	for i, p := range panels {
		missing := tallest - lipgloss.Height(p)
		if missing > 0 {
			row := fill.Render(strings.Repeat(" ", lipgloss.Width(p)))
			p += strings.Repeat("\n"+row, missing)
		}
		padded[i] = p
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, padded...)
}

// PanelInnerWidth is the text width inside a Panel of the given outer
// width (border and padding removed).
func PanelInnerWidth(outerWidth int) int {
	return max(outerWidth-4, 10)
}
