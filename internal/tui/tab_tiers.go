package tui

import (
	"strings"

	"github.com/theirongolddev/payplan/internal/allocation"
	"github.com/theirongolddev/payplan/internal/model"
	"github.com/theirongolddev/payplan/internal/tui/components"
	"github.com/theirongolddev/payplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderTiersTab(cw int) string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	colors := components.SliceColors()

	n := len(model.RiskTiers)
	widths := components.SplitWidth(cw, n)
	if a.isCompactLayout() {
		widths = make([]int, n)
		for i := range widths {
			widths[i] = cw
		}
	}

	var cards []string
	for i, tier := range model.RiskTiers {
		split, err := allocation.Lookup(tier)
		if err != nil {
			continue
		}
		barW := components.PanelInnerWidth(widths[i]) - 16
		if barW < 6 {
			barW = 6
		}

		shares := []struct {
			label string
			pct   float64
		}{
			{"Spend", split.Spend.InexactFloat64()},
			{"Save", split.Save.InexactFloat64()},
			{"Invest", split.Invest.InexactFloat64()},
		}
		var body strings.Builder
		for j, s := range shares {
			body.WriteString(components.ShareBar(s.label, s.pct, "", colors[j], 6, barW))
			body.WriteString("\n")
		}
		body.WriteString(mutedStyle.Render(allocation.DescribeTier(tier)))
		cards = append(cards, components.Panel(string(tier), body.String(), widths[i]))
	}

	var out strings.Builder
	if a.isCompactLayout() {
		out.WriteString(strings.Join(cards, "\n"))
	} else {
		out.WriteString(components.PanelRow(cards...))
	}
	out.WriteString("\n")
	out.WriteString(components.Panel("Projection", mutedStyle.Render(
		"Invested shares grow at 7% a year, compounded monthly. Both paychecks\n"+
			"of a month grow for every month left in the simulation, including their own."), cw))
	return out.String()
}
