package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openhta/ceaplane/internal/input"
	"github.com/openhta/ceaplane/internal/report"
	"github.com/openhta/ceaplane/internal/scenario"
	"github.com/openhta/ceaplane/internal/voi"
)

var (
	voiDraws      string
	voiGrid       []float64
	voiPopulation int
	voiYears      int
	voiDiscount   float64
	voiParamCSV   string
	voiBins       int
	voiAppend     bool

	voiCmd = &cobra.Command{
		Use:   "voi",
		Short: "Value-of-information analysis (EVPI, optionally EVPPI)",
		Long: `Compute the per-person expected value of perfect information across the WTP
grid, optionally scaled to a population over a discounted horizon.

With --param, also estimate the expected value of partial perfect information
for one parameter via the binning estimator. The parameter CSV carries one
value per draw (header draw,value).`,
		Example: `  ceaplane voi --draws draws.csv
  ceaplane voi --draws draws.csv --population 120000 --years 10 --discount 0.015
  ceaplane voi --draws draws.csv --param remission.csv --bins 20`,
		RunE: runVoI,
	}
)

func init() {
	voiCmd.Flags().StringVar(&voiDraws, "draws", "", "draw table CSV (required)")
	voiCmd.Flags().Float64SliceVar(&voiGrid, "wtp", scenario.DefaultWTPGrid(), "willingness-to-pay grid")
	voiCmd.Flags().IntVar(&voiPopulation, "population", 0, "population size for population EVPI (0 disables)")
	voiCmd.Flags().IntVar(&voiYears, "years", 10, "horizon in years for population EVPI")
	voiCmd.Flags().Float64Var(&voiDiscount, "discount", 0.015, "annual discount rate for population EVPI")
	voiCmd.Flags().StringVar(&voiParamCSV, "param", "", "per-draw parameter CSV for EVPPI (header draw,value)")
	voiCmd.Flags().IntVar(&voiBins, "bins", 20, "bin count for the EVPPI estimator")
	voiCmd.Flags().BoolVar(&voiAppend, "append", false, "append the results to the markdown artifact")
	voiCmd.MarkFlagRequired("draws")
}

func runVoI(cmd *cobra.Command, args []string) error {
	table, err := input.ReadDrawTable(voiDraws)
	if err != nil {
		return err
	}

	evpiByWTP := make(map[float64]float64, len(voiGrid))
	for _, wtp := range voiGrid {
		v, err := voi.EVPI(table, wtp)
		if err != nil {
			return fmt.Errorf("EVPI at WTP %v: %w", wtp, err)
		}
		evpiByWTP[wtp] = v
	}

	section := report.VoISection(evpiByWTP, voiGrid)
	fmt.Print(section)

	if voiPopulation > 0 && len(voiGrid) > 0 {
		// Scale the top-of-grid EVPI, the threshold decision makers usually
		// quote, to the population.
		top := voiGrid[len(voiGrid)-1]
		pop := voi.Population(evpiByWTP[top], voiPopulation, voiYears, voiDiscount)
		fmt.Printf("\nPopulation EVPI at WTP %.0f over %d years: %.0f\n", top, voiYears, pop)
	}

	if voiParamCSV != "" {
		param, err := input.ReadParamSeries(voiParamCSV)
		if err != nil {
			return err
		}
		for _, wtp := range voiGrid {
			v, err := voi.EVPPI(table, wtp, param, voiBins)
			if err != nil {
				return fmt.Errorf("EVPPI at WTP %v: %w", wtp, err)
			}
			fmt.Printf("EVPPI at WTP %.0f: %.2f\n", wtp, v)
		}
	}

	if voiAppend {
		return report.AppendSection(summaryArtifactPath(), section)
	}
	return nil
}
