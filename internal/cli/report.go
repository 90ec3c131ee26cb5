package cli

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/payplan/internal/allocation"
	"github.com/theirongolddev/payplan/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// ChartTitle heads the per-paycheck proportion chart.
const ChartTitle = "Allocation per Paycheck"

// SliceColors colors the Spend, Save and Invest slices in that order.
var SliceColors = []lipgloss.Color{ColorSpend, ColorSave, ColorInvest}

// ResultText renders a breakdown as the plain results block shown after a
// submission.
func ResultText(b allocation.Breakdown, symbol string) string {
	var s strings.Builder
	fmt.Fprintf(&s, "Risk Level: %s\n", b.Tier)
	fmt.Fprintf(&s, "Total Simulation Length: %d months\n", b.Months)
	fmt.Fprintf(&s, "Total Pay Periods (bi-weekly): %d\n\n", b.Periods)

	s.WriteString("Money Breakdown per Paycheck:\n")
	fmt.Fprintf(&s, "  Spend: %s\n", FormatMoney(symbol, b.Spend))
	fmt.Fprintf(&s, "  Save:  %s\n", FormatMoney(symbol, b.Save))
	fmt.Fprintf(&s, "  Invest: %s\n\n", FormatMoney(symbol, b.Invest))

	s.WriteString("Total for Simulation:\n")
	fmt.Fprintf(&s, "  Total Spent: %s\n", FormatMoney(symbol, b.TotalSpent))
	fmt.Fprintf(&s, "  Total Saved: %s\n", FormatMoney(symbol, b.TotalSaved))
	fmt.Fprintf(&s, "  Total Invested (Before Growth): %s\n\n", FormatMoney(symbol, b.TotalInvested))

	s.WriteString("Investment Growth (S&P 500 Return Applied):\n")
	fmt.Fprintf(&s, "  Total Investment Value: %s\n", FormatMoney(symbol, b.InvestmentValue))
	fmt.Fprintf(&s, "  ROI: %s", FormatROI(b.ROI))
	return s.String()
}

// SliceLabel renders "Spend 30.0%" style labels for the chart legend.
func SliceLabel(s allocation.Slice) string {
	return fmt.Sprintf("%s %s", s.Label, FormatPercent(s.Share))
}

// RenderChart renders the per-paycheck split as colored proportional bars
// under the chart title.
func RenderChart(b allocation.Breakdown, symbol string, width int) string {
	if width < 10 {
		width = 10
	}
	slices := b.Slices()

	var s strings.Builder
	s.WriteString("  ")
	s.WriteString(headerStyle.Render(ChartTitle))
	s.WriteString("\n")

	// Stacked strip: one run per slice, widths proportional to share.
	var strip strings.Builder
	used := 0
	for i, sl := range slices {
		n := int(sl.Share.Mul(decimal.NewFromInt(int64(width))).Round(0).IntPart())
		if i == len(slices)-1 {
			n = width - used
		}
		if n < 0 {
			n = 0
		}
		used += n
		strip.WriteString(lipgloss.NewStyle().Foreground(SliceColors[i%len(SliceColors)]).Render(strings.Repeat("█", n)))
	}
	s.WriteString("  ")
	s.WriteString(strip.String())
	s.WriteString("\n\n")

	for i, sl := range slices {
		bar := RenderHorizontalBar(sl.Label, sl.Share, decimal.NewFromInt(1), width-10, SliceColors[i%len(SliceColors)])
		fmt.Fprintf(&s, "%s %6s  %s\n", bar, FormatPercent(sl.Share), moneyStyle.Render(FormatMoney(symbol, sl.Amount)))
	}
	return s.String()
}

// TierTable renders the fixed tier splits.
func TierTable() Table {
	t := Table{
		Title:   "Risk Tiers",
		Headers: []string{"Tier", "Spend", "Save", "Invest"},
	}
	for _, tier := range model.RiskTiers {
		split, err := allocation.Lookup(tier)
		if err != nil {
			continue
		}
		t.Rows = append(t.Rows, []string{
			string(tier),
			FormatPercent(split.Spend),
			FormatPercent(split.Save),
			FormatPercent(split.Invest),
		})
	}
	return t
}

// SummaryTable renders a breakdown as a per-paycheck / total table.
func SummaryTable(b allocation.Breakdown, symbol string) Table {
	return Table{
		Title:   fmt.Sprintf("%s over %s (%d pay periods)", b.Tier, FormatMonths(b.Months), b.Periods),
		Headers: []string{"Bucket", "Per Paycheck", "Total"},
		Rows: [][]string{
			{"Spend", FormatMoneyGrouped(symbol, b.Spend), FormatMoneyGrouped(symbol, b.TotalSpent)},
			{"Save", FormatMoneyGrouped(symbol, b.Save), FormatMoneyGrouped(symbol, b.TotalSaved)},
			{"Invest", FormatMoneyGrouped(symbol, b.Invest), FormatMoneyGrouped(symbol, b.TotalInvested)},
			{SeparatorRow},
			{"Projected value", "", FormatMoneyGrouped(symbol, b.InvestmentValue)},
			{"ROI", "", FormatROI(b.ROI)},
		},
	}
}

// RenderMessage renders a user-facing validation message.
func RenderMessage(msg string) string {
	return warnStyle.Render(msg)
}

// RenderHint renders secondary text such as the tier info line.
func RenderHint(msg string) string {
	return mutedStyle.Render(msg)
}
