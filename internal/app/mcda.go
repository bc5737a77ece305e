package app

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/openhta/ceaplane/internal/mcda"
	"github.com/openhta/ceaplane/internal/report"
	"github.com/openhta/ceaplane/internal/scenario"
)

var (
	mcdaScenario string
	mcdaAppend   bool

	mcdaCmd = &cobra.Command{
		Use:   "mcda",
		Short: "Multi-criteria decision analysis over the scenario strategies",
		Long: `Score the alternatives in the scenario's mcda block with a weighted sum
over the configured criteria, and report the Pareto frontier (alternatives
not dominated on every criterion).

All criteria are oriented so higher is better; invert cost-like criteria in
the scenario file.`,
		Example: `  ceaplane mcda --scenario ontario.yaml
  ceaplane mcda --scenario ontario.yaml --append`,
		RunE: runMCDA,
	}
)

func init() {
	mcdaCmd.Flags().StringVar(&mcdaScenario, "scenario", "", "scenario YAML file (required)")
	mcdaCmd.Flags().BoolVar(&mcdaAppend, "append", false, "append the ranking to the markdown artifact")
	mcdaCmd.MarkFlagRequired("scenario")
}

func runMCDA(cmd *cobra.Command, args []string) error {
	sc, err := scenario.Load(mcdaScenario)
	if err != nil {
		return err
	}
	if sc.MCDA == nil || len(sc.MCDA.Alternatives) == 0 {
		return fmt.Errorf("scenario %s has no mcda block", sc.Name)
	}

	alts := make([]mcda.Alternative, 0, len(sc.MCDA.Alternatives))
	for _, a := range sc.MCDA.Alternatives {
		alts = append(alts, mcda.Alternative{Name: a.Name, Scores: a.Scores})
	}

	ranked, err := mcda.Score(alts, sc.MCDA.Weights)
	if err != nil {
		return fmt.Errorf("MCDA scoring for %s: %w", sc.Name, err)
	}

	criteria := make([]string, 0, len(sc.MCDA.Weights))
	for c := range sc.MCDA.Weights {
		criteria = append(criteria, c)
	}
	sort.Strings(criteria)
	frontier := mcda.Frontier(alts, criteria)

	section := report.MCDASection(ranked, frontier)
	fmt.Print(section)

	if mcdaAppend {
		return report.AppendSection(summaryArtifactPath(), section)
	}
	return nil
}
