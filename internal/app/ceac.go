package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openhta/ceaplane/internal/ceac"
	"github.com/openhta/ceaplane/internal/input"
	"github.com/openhta/ceaplane/internal/output"
	"github.com/openhta/ceaplane/internal/report"
	"github.com/openhta/ceaplane/internal/scenario"
)

var (
	ceacDraws  string
	ceacGrid   []float64
	ceacAppend bool

	ceacCmd = &cobra.Command{
		Use:   "ceac",
		Short: "Compute cost-effectiveness acceptability curves and the frontier",
		Long: `For each willingness-to-pay threshold, compute the probability that each
strategy has the highest net monetary benefit across the PSA draws, and flag
the frontier strategy (highest mean NMB).

Ties for the per-draw maximum count for no strategy.`,
		Example: `  ceaplane ceac --draws draws.csv
  ceaplane ceac --draws draws.csv --wtp 0,25000,50000,75000,100000 --append`,
		RunE: runCEAC,
	}
)

func init() {
	ceacCmd.Flags().StringVar(&ceacDraws, "draws", "", "draw table CSV (required)")
	ceacCmd.Flags().Float64SliceVar(&ceacGrid, "wtp", scenario.DefaultWTPGrid(), "willingness-to-pay grid")
	ceacCmd.Flags().BoolVar(&ceacAppend, "append", false, "append the curve to the markdown artifact")
	ceacCmd.MarkFlagRequired("draws")
}

func runCEAC(cmd *cobra.Command, args []string) error {
	table, err := input.ReadDrawTable(ceacDraws)
	if err != nil {
		return err
	}

	curve, err := ceac.Compute(table, ceacGrid)
	if err != nil {
		return fmt.Errorf("failed to compute acceptability: %w", err)
	}

	strategies := table.Strategies()
	fmt.Print(output.RenderCEACTable(curve, strategies))

	if ceacAppend {
		return report.AppendSection(summaryArtifactPath(), report.CEACSection(curve, strategies))
	}
	return nil
}
