package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/payplan/internal/cli"
	"github.com/theirongolddev/payplan/internal/config"
	"github.com/theirongolddev/payplan/internal/model"
	"github.com/theirongolddev/payplan/internal/store"

	"github.com/spf13/cobra"
)

var flagJournalLimit int

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "List journaled submissions",
	RunE:  runJournal,
}

func init() {
	journalCmd.Flags().IntVarP(&flagJournalLimit, "limit", "n", 20, "Max entries to show (0 for all)")
	rootCmd.AddCommand(journalCmd)
}

func runJournal(cmd *cobra.Command, _ []string) error {
	logger, err := stderrLogger()
	if err != nil {
		return err
	}
	cfg := loadConfig(logger)
	if !config.JournalEnabled(cfg) {
		return errors.New("journal is disabled; enable it with `payplan setup` or PAYPLAN_JOURNAL=1")
	}

	j, err := store.Open(config.JournalPath(cfg))
	if err != nil {
		return err
	}
	defer func() { _ = j.Close() }()

	entries, err := j.List(cmd.Context(), flagJournalLimit)
	if err != nil {
		return err
	}
	total, err := j.Count(cmd.Context())
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("\n  No journaled submissions yet.")
		return nil
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(journalTable(entries, total, cfg.General.CurrencySymbol)))
	fmt.Println()
	return nil
}

func journalTable(entries []store.Entry, total int, symbol string) cli.Table {
	t := cli.Table{
		Title:   fmt.Sprintf("Journal (%d of %d)", len(entries), total),
		Headers: []string{"Date", "Income", "Class", "21+", "Tier", "Months", "Invested", "Value", "ROI"},
	}
	for _, e := range entries {
		t.Rows = append(t.Rows, []string{
			e.SubmittedOn.Format(model.DateLayout),
			cli.FormatMoneyGrouped(symbol, e.Income),
			string(e.ClassYear),
			cli.FormatYesNo(e.Over21),
			string(e.RiskTier),
			fmt.Sprintf("%d", e.SimulationMonths),
			cli.FormatMoneyGrouped(symbol, e.TotalInvested),
			cli.FormatMoneyGrouped(symbol, e.InvestmentValue),
			cli.FormatROI(e.ROI),
		})
	}
	return t
}
