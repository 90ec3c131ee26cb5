package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/payplan/internal/cli"
	"github.com/theirongolddev/payplan/internal/config"
	"github.com/theirongolddev/payplan/internal/history"
	"github.com/theirongolddev/payplan/internal/pipeline"
	"github.com/theirongolddev/payplan/internal/planner"
	"github.com/theirongolddev/payplan/internal/source"
	"github.com/theirongolddev/payplan/internal/store"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	flagBatchJSON      bool
	flagBatchNoJournal bool
)

var batchCmd = &cobra.Command{
	Use:   "batch PATH...",
	Short: "Run JSONL files of submissions and summarize them",
	Long: `Each line of a batch file is one form, e.g.
  {"income":"1000","class_year":"2/c","over_21":"Yes","risk_tier":"Balancer","simulation_months":"12"}
Directories are scanned for *.jsonl files.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().BoolVar(&flagBatchJSON, "json", false, "Print every accepted result as JSON")
	batchCmd.Flags().BoolVar(&flagBatchNoJournal, "no-journal", false, "Do not journal the accepted submissions")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	logger, err := stderrLogger()
	if err != nil {
		return err
	}
	cfg := loadConfig(logger)

	files, err := source.ScanPaths(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no .jsonl batch files found")
	}

	opts := []planner.Option{planner.WithLogger(logger)}
	if config.JournalEnabled(cfg) && !flagBatchNoJournal {
		j, err := store.Open(config.JournalPath(cfg))
		if err != nil {
			logger.Warn().Err(err).Msg("journal unavailable, continuing without it")
		} else {
			defer func() { _ = j.Close() }()
			opts = append(opts, planner.WithJournal(j))
		}
	}
	p := planner.New(history.New(), opts...)

	progressFn := func(current, total int) {
		if flagQuiet || flagBatchJSON {
			return
		}
		if current%100 == 0 || current == total {
			fmt.Fprintf(os.Stderr, "\r  Evaluating [%d/%d]", current, total)
		}
	}

	res, err := pipeline.Run(cmd.Context(), p, files, progressFn)
	if err != nil {
		return err
	}
	if !flagQuiet && !flagBatchJSON && len(res.Items) > 0 {
		fmt.Fprintln(os.Stderr)
	}

	if flagBatchJSON {
		views := make([]planner.ResultView, 0, len(res.Items))
		for _, it := range res.Items {
			if it.Result != nil {
				views = append(views, it.Result.View())
			}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	}

	printBatch(res, cfg.General.CurrencySymbol)
	return nil
}

func printBatch(res *pipeline.BatchResult, symbol string) {
	s := pipeline.Aggregate(res.Items)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BATCH  %d files  %s submissions", res.ParsedFiles, cli.FormatNumber(int64(s.Submissions)))))
	fmt.Println()

	rows := [][]string{
		{"Accepted", cli.FormatNumber(int64(s.Accepted))},
		{"Rejected", cli.FormatNumber(int64(s.Rejected))},
	}
	for _, msg := range s.RejectionMessages() {
		rows = append(rows, []string{"  " + msg, cli.FormatNumber(int64(s.Rejections[msg]))})
	}
	rows = append(rows,
		[]string{"Unreadable lines", cli.FormatNumber(int64(res.ParseErrors))},
		[]string{"Unreadable files", cli.FormatNumber(int64(res.FileErrors))},
		[]string{cli.SeparatorRow},
		[]string{"Total spent", cli.FormatMoneyGrouped(symbol, s.TotalSpent)},
		[]string{"Total saved", cli.FormatMoneyGrouped(symbol, s.TotalSaved)},
		[]string{"Total invested", cli.FormatMoneyGrouped(symbol, s.TotalInvested)},
		[]string{"Projected value", cli.FormatMoneyGrouped(symbol, s.InvestmentValue)},
		[]string{"ROI", cli.FormatROI(s.ROI)},
	)
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Summary",
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))
	fmt.Println()

	if len(s.Tiers) > 0 {
		t := cli.Table{
			Title:   "By Tier",
			Headers: []string{"Tier", "Count", "Invested", "Value", "ROI"},
		}
		for _, ts := range s.Tiers {
			t.Rows = append(t.Rows, []string{
				string(ts.Tier),
				cli.FormatNumber(int64(ts.Count)),
				cli.FormatMoneyGrouped(symbol, ts.TotalInvested),
				cli.FormatMoneyGrouped(symbol, ts.InvestmentValue),
				cli.FormatROI(ts.ROI),
			})
		}
		fmt.Print(cli.RenderTable(t))
		fmt.Println()
	}

	if s.Rejected > 0 {
		t := cli.Table{
			Title:   "Rejections",
			Headers: []string{"File", "Line", "Reason"},
			Align:   []lipgloss.Position{lipgloss.Left, lipgloss.Right, lipgloss.Left},
		}
		for _, it := range res.Items {
			if it.Result == nil {
				t.Rows = append(t.Rows, []string{filepath.Base(it.Path), fmt.Sprintf("%d", it.Line), planner.UserMessage(it.Err)})
			}
		}
		fmt.Print(cli.RenderTable(t))
		fmt.Println()
	}
}
