package tui

import (
	"strings"

	"github.com/theirongolddev/payplan/internal/config"
	"github.com/theirongolddev/payplan/internal/model"
	"github.com/theirongolddev/payplan/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// setupValues backs the first-run form.
type setupValues struct {
	theme       string
	currency    string
	defaultTier string
	journal     bool
	saveErr     error
}

func newSetupValues(cfg config.Config) *setupValues {
	return &setupValues{
		theme:       cfg.Appearance.Theme,
		currency:    cfg.General.CurrencySymbol,
		defaultTier: cfg.General.DefaultTier,
		journal:     cfg.Journal.Enabled,
	}
}

func newSetupForm(v *setupValues) *huh.Form {
	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themes = append(themes, huh.NewOption(name, name))
	}

	tiers := []huh.Option[string]{huh.NewOption("No default", "")}
	for _, t := range model.RiskTiers {
		tiers = append(tiers, huh.NewOption(string(t), string(t)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to payplan").
				Description("Split each paycheck into spend, save and invest,\nand project what the invested share grows to.\n\nA few settings first."),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&v.theme),

			huh.NewInput().
				Title("Currency symbol").
				CharLimit(4).
				Value(&v.currency),

			huh.NewSelect[string]().
				Title("Default risk level").
				Description("Preselected on every new submission").
				Options(tiers...).
				Value(&v.defaultTier),

			huh.NewConfirm().
				Title("Keep a journal of submissions?").
				Description("Appends every result to a local SQLite file. The history tab still shows this session only.").
				Value(&v.journal),
		),
	).WithShowHelp(true)
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		a.saveSetupConfig()
		a.needSetup = false
		a.setupForm = nil
		a.plan = newPlanState(a.cfg)
		return a.startPlanForm()
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a.startPlanForm()
	}

	return a, cmd
}

func (a *App) saveSetupConfig() {
	cfg := a.cfg
	if theme.Valid(a.setupVals.theme) {
		cfg.Appearance.Theme = a.setupVals.theme
		theme.SetActive(cfg.Appearance.Theme)
	}
	if c := strings.TrimSpace(a.setupVals.currency); c != "" {
		cfg.General.CurrencySymbol = c
	}
	cfg.General.DefaultTier = a.setupVals.defaultTier
	cfg.Journal.Enabled = a.setupVals.journal

	a.cfg = cfg
	a.setupVals.saveErr = config.Save(cfg)
	if a.setupVals.saveErr != nil {
		a.logger.Warn().Err(a.setupVals.saveErr).Msg("saving first-run config")
	}
}

func (a App) viewSetup() string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2).
		Render(a.setupForm.View())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}
