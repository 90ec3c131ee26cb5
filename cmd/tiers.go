package cmd

import (
	"fmt"

	"github.com/theirongolddev/payplan/internal/allocation"
	"github.com/theirongolddev/payplan/internal/cli"
	"github.com/theirongolddev/payplan/internal/model"

	"github.com/spf13/cobra"
)

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "Show the spend/save/invest split of each risk tier",
	RunE:  runTiers,
}

func init() {
	rootCmd.AddCommand(tiersCmd)
}

func runTiers(_ *cobra.Command, _ []string) error {
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.TierTable()))
	for _, tier := range model.RiskTiers {
		fmt.Println(cli.RenderHint("  " + allocation.DescribeTier(tier)))
	}
	fmt.Println()
	fmt.Println(cli.RenderHint("  Invest is compounded monthly at 7% a year over the simulation length."))
	fmt.Println()
	return nil
}
