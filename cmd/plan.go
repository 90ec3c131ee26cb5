package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/theirongolddev/payplan/internal/allocation"
	"github.com/theirongolddev/payplan/internal/cli"
	"github.com/theirongolddev/payplan/internal/config"
	"github.com/theirongolddev/payplan/internal/history"
	"github.com/theirongolddev/payplan/internal/intake"
	"github.com/theirongolddev/payplan/internal/planner"
	"github.com/theirongolddev/payplan/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagIncome        string
	flagClassYear     string
	flagOver21        string
	flagTier          string
	flagMonths        string
	flagPlanJSON      bool
	flagPlanNoJournal bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute one allocation from flags",
	Example: `  payplan plan --income 1000 --class-year 2/c --over21 yes --tier Balancer --months 12
  payplan plan --income 1000 --class-year 1/c --over21 no --tier saver --months 6 --json`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&flagIncome, "income", "", "Income per bi-weekly pay period")
	planCmd.Flags().StringVar(&flagClassYear, "class-year", "", "Class year (1/c, 2/c, 3/c, 4/c)")
	planCmd.Flags().StringVar(&flagOver21, "over21", "", "Over 21 (yes/no)")
	planCmd.Flags().StringVar(&flagTier, "tier", "", "Risk tier (Saver, Balancer, Gambler); defaults to the configured tier")
	planCmd.Flags().StringVar(&flagMonths, "months", "", "Simulation length in months; defaults to the configured horizon")
	planCmd.Flags().BoolVar(&flagPlanJSON, "json", false, "Print the record and breakdown as JSON")
	planCmd.Flags().BoolVar(&flagPlanNoJournal, "no-journal", false, "Do not journal this submission")
	rootCmd.AddCommand(planCmd)
}

// planForm assembles the raw form from flags. Unset selections stay on their
// placeholders so the planner reports them the same way the TUI form does.
func planForm(cfg config.Config) intake.Form {
	f := intake.Blank()
	f.Income = flagIncome
	if flagClassYear != "" {
		f.ClassYear = flagClassYear
	}
	if flagOver21 != "" {
		f.Over21 = flagOver21
	}

	switch {
	case flagTier != "":
		f.RiskTier = flagTier
	case cfg.General.DefaultTier != "":
		f.RiskTier = cfg.General.DefaultTier
	}

	switch {
	case flagMonths != "":
		f.Months = flagMonths
	case cfg.General.DefaultMonths > 0:
		f.Months = strconv.Itoa(cfg.General.DefaultMonths)
	}
	return f
}

func runPlan(cmd *cobra.Command, _ []string) error {
	logger, err := stderrLogger()
	if err != nil {
		return err
	}
	cfg := loadConfig(logger)

	opts := []planner.Option{planner.WithLogger(logger)}
	if config.JournalEnabled(cfg) && !flagPlanNoJournal {
		j, err := store.Open(config.JournalPath(cfg))
		if err != nil {
			logger.Warn().Err(err).Msg("journal unavailable, continuing without it")
		} else {
			defer func() { _ = j.Close() }()
			opts = append(opts, planner.WithJournal(j))
		}
	}

	p := planner.New(history.New(), opts...)
	res, err := p.Submit(cmd.Context(), planForm(cfg))
	if err != nil {
		logger.Debug().Err(err).Msg("submission rejected")
		return errors.New(planner.UserMessage(err))
	}

	if flagPlanJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res.View())
	}

	printPlan(res, cfg.General.CurrencySymbol)
	return nil
}

func printPlan(res planner.Result, symbol string) {
	b := res.Breakdown
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PAYPLAN  %s  %s", res.Record.Date(), b.Tier)))
	fmt.Println()
	fmt.Println(cli.ResultText(b, symbol))
	fmt.Println()
	fmt.Println(cli.RenderChart(b, symbol, 40))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.SummaryTable(b, symbol)))
	if hint := allocation.DescribeTier(b.Tier); hint != "" {
		fmt.Println(cli.RenderHint("  " + hint))
	}
	fmt.Println()
}
