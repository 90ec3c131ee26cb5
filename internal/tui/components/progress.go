package components

import (
	"fmt"

	"github.com/theirongolddev/payplan/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// SliceColors returns the Spend, Save and Invest colors of the active theme.
func SliceColors() []lipgloss.Color {
	t := theme.Active
	return []lipgloss.Color{t.Spend, t.Save, t.Invest}
}

// ShareBar renders a labeled bar for one bucket of a paycheck, followed by
// its share to one decimal and the amount.
func ShareBar(label string, pct float64, amount string, color lipgloss.Color, labelW, barWidth int) string {
	t := theme.Active

	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(pct) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%5.1f%%", pct*100)) +
		spaceStyle.Render("  ") +
		amountStyle.Render(amount)
}
