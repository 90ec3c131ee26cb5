package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/theirongolddev/payplan/internal/allocation"
	"github.com/theirongolddev/payplan/internal/cli"
	"github.com/theirongolddev/payplan/internal/config"
	"github.com/theirongolddev/payplan/internal/planner"
	"github.com/theirongolddev/payplan/internal/tui/components"
	"github.com/theirongolddev/payplan/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const pieRadius = 5

// planState tracks the Plan tab: the open form, if any, and the last result.
type planState struct {
	form    *huh.Form
	vals    *planValues
	editing bool

	last    *planner.Result
	message string // user-facing rejection text, empty after a success
}

func newPlanState(cfg config.Config) planState {
	vals := blankPlanValues(cfg.General.DefaultTier, cfg.General.DefaultMonths)
	return planState{
		form:    newPlanForm(vals),
		vals:    vals,
		editing: true,
	}
}

func (a App) planFormWidth() int {
	w := a.contentWidth() - 4
	if !a.isCompactLayout() {
		w = a.contentWidth()/2 - 4
	}
	if w < 30 {
		w = 30
	}
	return w
}

func (a App) startPlanForm() (tea.Model, tea.Cmd) {
	a.plan.form = newPlanForm(a.plan.vals)
	if a.width > 0 {
		a.plan.form = a.plan.form.WithWidth(a.planFormWidth())
	}
	a.plan.editing = true
	return a, a.plan.form.Init()
}

func (a App) updatePlanForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.plan.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.plan.form = f
	}

	switch a.plan.form.State {
	case huh.StateCompleted:
		return a.submitPlan()
	case huh.StateAborted:
		a.plan.editing = false
		return a, nil
	}
	return a, cmd
}

// submitPlan runs the completed form through the planner. A rejected form
// reopens with its values kept and the message shown; an accepted one resets
// to placeholders.
func (a App) submitPlan() (tea.Model, tea.Cmd) {
	res, err := a.planner.Submit(context.Background(), a.plan.vals.form())
	if err != nil {
		a.plan.message = planner.UserMessage(err)
		return a.startPlanForm()
	}

	a.plan.message = ""
	a.plan.last = &res
	a.plan.vals = blankPlanValues(a.cfg.General.DefaultTier, a.cfg.General.DefaultMonths)
	a.plan.form = newPlanForm(a.plan.vals)
	a.plan.editing = false

	if a.journal == nil {
		return a, nil
	}
	a.journalPending++
	return a, tea.Batch(journalCmd(a.journal, res), a.spinner.Tick)
}

func (a App) renderPlanTab(cw int) string {
	t := theme.Active
	warnStyle := lipgloss.NewStyle().Foreground(t.Warn).Background(t.Surface).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	if a.plan.editing {
		var body strings.Builder
		if a.plan.message != "" {
			body.WriteString(warnStyle.Render(a.plan.message))
			body.WriteString("\n\n")
		}
		body.WriteString(a.plan.form.View())
		body.WriteString("\n")
		body.WriteString(hintStyle.Render("[Esc] back to results"))

		formCard := components.Panel("New Submission", body.String(), a.planFormWidth()+4)
		if a.isCompactLayout() || a.plan.last == nil {
			return formCard
		}
		return components.PanelRow(formCard, a.renderResultText(cw-lipgloss.Width(formCard)))
	}

	if a.plan.last == nil {
		return components.Panel("Plan", hintStyle.Render("Press Enter to start a submission."), cw)
	}

	b := a.plan.last.Breakdown
	sym := a.cfg.General.CurrencySymbol

	var out strings.Builder
	out.WriteString(components.MetricRow([]components.Metric{
		{Label: "Per Paycheck", Value: cli.FormatMoneyGrouped(sym, b.Spend.Add(b.Save).Add(b.Invest)), Note: string(b.Tier)},
		{Label: "Total Invested", Value: cli.FormatMoneyGrouped(sym, b.TotalInvested), Note: fmt.Sprintf("%d pay periods", b.Periods), Tone: theme.Active.Invest},
		{Label: "Projected Value", Value: cli.FormatMoneyGrouped(sym, b.InvestmentValue), Note: cli.FormatMonths(b.Months), Tone: theme.Active.Growth},
		{Label: "ROI", Value: cli.FormatROI(b.ROI), Note: "7% annual, monthly compounding"},
	}, cw))
	out.WriteString("\n")

	half := components.SplitWidth(cw, 2)
	if a.isCompactLayout() {
		out.WriteString(a.renderResultText(cw))
		out.WriteString("\n")
		out.WriteString(a.renderChartCard(cw))
	} else {
		out.WriteString(components.PanelRow(
			a.renderResultText(half[0]),
			a.renderChartCard(half[1]),
		))
	}
	out.WriteString("\n")
	out.WriteString(a.renderTrajectoryCard(b, cw))
	out.WriteString("\n")
	out.WriteString(hintStyle.Render("  [Enter] new submission"))
	return out.String()
}

func (a App) renderResultText(w int) string {
	if a.plan.last == nil {
		return ""
	}
	t := theme.Active
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	return components.Panel("Results", textStyle.Render(cli.ResultText(a.plan.last.Breakdown, a.cfg.General.CurrencySymbol)), w)
}

func (a App) renderChartCard(w int) string {
	b := a.plan.last.Breakdown
	colors := components.SliceColors()
	var slices []components.PieSlice
	for i, s := range b.Slices() {
		slices = append(slices, components.PieSlice{
			Label:  s.Label,
			Share:  s.Share.InexactFloat64(),
			Amount: cli.FormatMoney(a.cfg.General.CurrencySymbol, s.Amount),
			Color:  colors[i%len(colors)],
		})
	}
	return components.Panel("", components.AllocationChart(cli.ChartTitle, slices, pieRadius), w)
}

func (a App) renderTrajectoryCard(b allocation.Breakdown, w int) string {
	perMonth := b.Invest.Mul(decimal.NewFromInt(allocation.PeriodsPerMonth))
	var points []components.GrowthPoint
	for i, v := range b.Trajectory() {
		points = append(points, components.GrowthPoint{
			Month:  i + 1,
			PaidIn: perMonth.Mul(decimal.NewFromInt(int64(i + 1))).InexactFloat64(),
			Value:  v.InexactFloat64(),
		})
	}
	chart := components.GrowthChart(points, components.PanelInnerWidth(w), 8)
	return components.Panel("Projected Investment Value by Month", chart, w)
}
