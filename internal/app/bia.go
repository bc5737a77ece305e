package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openhta/ceaplane/internal/bia"
	"github.com/openhta/ceaplane/internal/report"
	"github.com/openhta/ceaplane/internal/scenario"
)

var (
	biaScenario string
	biaAppend   bool

	biaCmd = &cobra.Command{
		Use:   "bia",
		Short: "Project the budget impact of adopting a therapy",
		Long: `Run the deterministic budget-impact model from the budget_impact block of a
scenario file: eligible population, a per-year uptake ramp, per-patient cost
and the per-patient cost of displaced care.`,
		Example: `  ceaplane bia --scenario ontario.yaml
  ceaplane bia --scenario ontario.yaml --append`,
		RunE: runBIA,
	}
)

func init() {
	biaCmd.Flags().StringVar(&biaScenario, "scenario", "", "scenario YAML file (required)")
	biaCmd.Flags().BoolVar(&biaAppend, "append", false, "append the projection to the markdown artifact")
	biaCmd.MarkFlagRequired("scenario")
}

func runBIA(cmd *cobra.Command, args []string) error {
	sc, err := scenario.Load(biaScenario)
	if err != nil {
		return err
	}
	if sc.BudgetImpact == nil {
		return fmt.Errorf("scenario %s has no budget_impact block", sc.Name)
	}

	res, err := bia.Run(bia.Inputs{
		Jurisdiction:       sc.Jurisdiction,
		EligiblePopulation: sc.BudgetImpact.EligiblePopulation,
		Uptake:             sc.BudgetImpact.Uptake,
		CostPerPatient:     sc.BudgetImpact.CostPerPatient,
		OffsetPerPatient:   sc.BudgetImpact.OffsetPerPatient,
	})
	if err != nil {
		return fmt.Errorf("budget impact for %s: %w", sc.Name, err)
	}

	section := report.BIASection(res)
	fmt.Print(section)

	if biaAppend {
		return report.AppendSection(summaryArtifactPath(), section)
	}
	return nil
}
