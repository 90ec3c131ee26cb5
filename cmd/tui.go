package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/theirongolddev/payplan/internal/config"
	"github.com/theirongolddev/payplan/internal/history"
	"github.com/theirongolddev/payplan/internal/logging"
	"github.com/theirongolddev/payplan/internal/planner"
	"github.com/theirongolddev/payplan/internal/store"
	"github.com/theirongolddev/payplan/internal/tui"
	"github.com/theirongolddev/payplan/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive planner",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	lvl, err := logging.ParseLevel(flagLogLevel)
	if err != nil {
		return err
	}
	// stderr belongs to the alt screen
	logger, logf, err := logging.NewFile(filepath.Join(config.CacheDir(), "tui.log"), lvl)
	if err != nil {
		return err
	}
	defer func() { _ = logf.Close() }()

	cfg := loadConfig(logger)
	theme.SetActive(config.Theme(cfg))

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	log := history.New()
	opts := tui.Options{
		Log:       log,
		Planner:   planner.New(log, planner.WithLogger(logger)),
		Config:    cfg,
		NeedSetup: !config.Exists(),
		Logger:    logger,
	}

	if config.JournalEnabled(cfg) {
		j, err := store.Open(config.JournalPath(cfg))
		if err != nil {
			logger.Warn().Err(err).Msg("journal unavailable, continuing without it")
		} else {
			defer func() { _ = j.Close() }()
			opts.Journal = j
		}
	}

	p := tea.NewProgram(tui.NewApp(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
