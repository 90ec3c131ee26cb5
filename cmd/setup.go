package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/payplan/internal/config"
	"github.com/theirongolddev/payplan/internal/intake"
	"github.com/theirongolddev/payplan/internal/model"
	"github.com/theirongolddev/payplan/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive configuration wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg, _ := config.Load()

	themeName := cfg.Appearance.Theme
	currency := cfg.General.CurrencySymbol
	tier := cfg.General.DefaultTier
	months := ""
	if cfg.General.DefaultMonths > 0 {
		months = strconv.Itoa(cfg.General.DefaultMonths)
	}
	journal := cfg.Journal.Enabled

	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themes = append(themes, huh.NewOption(name, name))
	}
	tiers := []huh.Option[string]{huh.NewOption("No default", "")}
	for _, t := range model.RiskTiers {
		tiers = append(tiers, huh.NewOption(string(t), string(t)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&themeName),

			huh.NewInput().
				Title("Currency symbol").
				CharLimit(4).
				Value(&currency),

			huh.NewSelect[string]().
				Title("Default risk level").
				Options(tiers...).
				Value(&tier),

			huh.NewInput().
				Title("Default simulation length (months)").
				Description("Leave empty for none").
				Validate(validateMonths).
				Value(&months),

			huh.NewConfirm().
				Title("Keep a journal of submissions?").
				Value(&journal),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	cfg.Appearance.Theme = themeName
	cfg.General.CurrencySymbol = strings.TrimSpace(currency)
	if cfg.General.CurrencySymbol == "" {
		cfg.General.CurrencySymbol = config.DefaultConfig().General.CurrencySymbol
	}
	cfg.General.DefaultTier = tier
	cfg.General.DefaultMonths, _ = strconv.Atoi(strings.TrimSpace(months))
	cfg.Journal.Enabled = journal

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `payplan setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}

func validateMonths(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > intake.MaxMonths {
		return fmt.Errorf("enter a whole number of months from 1 to %d", intake.MaxMonths)
	}
	return nil
}
