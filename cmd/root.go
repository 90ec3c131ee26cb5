package cmd

import (
	"os"

	"github.com/theirongolddev/payplan/internal/config"
	"github.com/theirongolddev/payplan/internal/logging"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagLogLevel string
	flagQuiet    bool
)

var rootCmd = &cobra.Command{
	Use:   "payplan",
	Short: "Paycheck allocation planner",
	Long:  "Split each paycheck into spend, save and invest by risk tier, and project the invest portion's growth.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		config.LoadEnv()
	},
	RunE:         runTUI,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress diagnostic output")
}

// stderrLogger is the console logger used by the non-interactive commands.
func stderrLogger() (zerolog.Logger, error) {
	lvl, err := logging.ParseLevel(flagLogLevel)
	if err != nil {
		return zerolog.Nop(), err
	}
	if flagQuiet {
		lvl = zerolog.Disabled
	}
	return logging.New(os.Stderr, logging.Console, lvl), nil
}

// loadConfig returns the config file contents, falling back to defaults
// with a warning when the file is unreadable.
func loadConfig(logger zerolog.Logger) config.Config {
	cfg, err := config.Load()
	if err != nil {
		logger.Warn().Err(err).Str("path", config.ConfigPath()).Msg("using default config")
		return config.DefaultConfig()
	}
	return cfg
}
