// Package cmd implements the payplan CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/payplan/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Currency symbol: %s\n", cfg.General.CurrencySymbol)
	if cfg.General.DefaultTier != "" {
		fmt.Printf("    Default tier:    %s\n", cfg.General.DefaultTier)
	} else {
		fmt.Println("    Default tier:    none")
	}
	if cfg.General.DefaultMonths > 0 {
		fmt.Printf("    Default months:  %d\n", cfg.General.DefaultMonths)
	} else {
		fmt.Println("    Default months:  none")
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", config.Theme(cfg))
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:       %s\n", config.ServerAddr(cfg))
	fmt.Printf("    Events buffer: %d\n", cfg.Server.EventsBuffer)
	fmt.Println()

	fmt.Println("  [Journal]")
	if config.JournalEnabled(cfg) {
		fmt.Println("    Enabled: yes")
		fmt.Printf("    Path:    %s\n", config.JournalPath(cfg))
	} else {
		fmt.Println("    Enabled: no")
	}
	fmt.Println()

	fmt.Println("  Run `payplan setup` to reconfigure.")
	return nil
}
