package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openhta/ceaplane/internal/cea"
	"github.com/openhta/ceaplane/internal/input"
)

var (
	deltasDraws       string
	deltasBaseline    string
	deltasTherapies   []string
	deltasPerspective string

	deltasCmd = &cobra.Command{
		Use:   "deltas",
		Short: "Derive per-draw incremental deltas against a baseline strategy",
		Long: `Compute the per-draw incremental effect and cost (dE, dC) of each therapy
against the baseline strategy and write one deltas.csv per therapy under the
perspective directory:

  <root>/ce_plane/<therapy>/deltas.csv                 (societal)
  <root>/ce_plane_health_system/<therapy>/deltas.csv   (health_system)

Only draws present for both the therapy and the baseline participate; partial
draws are dropped. A therapy sharing no draws with the baseline still gets an
artifact (header only) plus a warning.`,
		Example: `  # All non-baseline strategies, societal perspective
  ceaplane deltas --draws draws.csv --baseline ect

  # One therapy under the health-system perspective
  ceaplane deltas --draws draws.csv --baseline ect --therapy psilocybin --perspective health_system`,
		RunE: runDeltas,
	}
)

func init() {
	deltasCmd.Flags().StringVar(&deltasDraws, "draws", "", "draw table CSV (required)")
	deltasCmd.Flags().StringVar(&deltasBaseline, "baseline", "", "baseline strategy name (required)")
	deltasCmd.Flags().StringSliceVar(&deltasTherapies, "therapy", nil, "therapy to difference (repeatable; default: every non-baseline strategy)")
	deltasCmd.Flags().StringVar(&deltasPerspective, "perspective", input.SocietalPerspective, "analysis perspective (societal | health_system)")
	deltasCmd.MarkFlagRequired("draws")
	deltasCmd.MarkFlagRequired("baseline")
}

func runDeltas(cmd *cobra.Command, args []string) error {
	// Validate the perspective before touching any file.
	if _, err := input.PerspectiveDir(deltasPerspective); err != nil {
		return err
	}

	table, err := input.ReadDrawTable(deltasDraws)
	if err != nil {
		return err
	}
	if !table.HasStrategy(deltasBaseline) {
		return fmt.Errorf("baseline %q is not in the draw table (strategies: %v)",
			deltasBaseline, table.Strategies())
	}

	therapies := deltasTherapies
	if len(therapies) == 0 {
		for _, s := range table.Strategies() {
			if s != deltasBaseline {
				therapies = append(therapies, s)
			}
		}
	}
	if len(therapies) == 0 {
		return fmt.Errorf("draw table holds only the baseline strategy; nothing to difference")
	}

	for _, therapy := range therapies {
		if therapy == deltasBaseline {
			return fmt.Errorf("therapy %q is the baseline; differencing it against itself is meaningless", therapy)
		}
		if !table.HasStrategy(therapy) {
			return fmt.Errorf("therapy %q is not in the draw table (strategies: %v)",
				therapy, table.Strategies())
		}

		deltas := cea.ComputeDeltas(table, deltasBaseline, therapy)

		path, err := input.DeltasPath(rootDir, deltasPerspective, therapy)
		if err != nil {
			return err
		}
		if err := input.WriteDeltas(path, deltas); err != nil {
			return err
		}

		if len(deltas) == 0 {
			fmt.Fprintf(os.Stderr, "warning: %s shares no draws with baseline %s; wrote empty %s\n",
				therapy, deltasBaseline, path)
		} else {
			fmt.Printf("%s: %d deltas -> %s\n", therapy, len(deltas), path)
		}
	}
	return nil
}
