package app

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/openhta/ceaplane/internal/cea"
	"github.com/openhta/ceaplane/internal/input"
	"github.com/openhta/ceaplane/internal/report"
	"github.com/openhta/ceaplane/internal/store"
)

var (
	summaryTherapy     string
	summaryPerspective string
	summaryStats       bool
	summaryRunID       string

	summaryCmd = &cobra.Command{
		Use:   "summary",
		Short: "Summarize a therapy's delta cloud into CE-plane quadrants",
		Long: `Read a therapy's deltas.csv, classify each draw into a cost-effectiveness
plane quadrant, and append the resulting section to the markdown artifact
(` + report.SummaryFileName + `) under the artifact root.

The artifact only ever grows: summarizing the same therapy twice yields two
sections, preserving the history of analyses. Draws on a quadrant boundary
(dE or dC exactly zero) belong to no quadrant but still count toward n.`,
		Example: `  ceaplane summary --therapy psilocybin
  ceaplane summary --therapy psilocybin --perspective health_system --stats
  ceaplane summary --therapy psilocybin --run 1b4e28ba-2fa1-11d2-883f-0016d3cca427`,
		RunE: runSummary,
	}
)

func init() {
	summaryCmd.Flags().StringVar(&summaryTherapy, "therapy", "", "therapy name (required)")
	summaryCmd.Flags().StringVar(&summaryPerspective, "perspective", input.SocietalPerspective, "analysis perspective (societal | health_system)")
	summaryCmd.Flags().BoolVar(&summaryStats, "stats", false, "also append mean and 95% CrI of the deltas")
	summaryCmd.Flags().StringVar(&summaryRunID, "run", "", "record the summary against this run id in the database")
	summaryCmd.MarkFlagRequired("therapy")
}

func runSummary(cmd *cobra.Command, args []string) error {
	// Validate the perspective before touching any file.
	path, err := input.DeltasPath(rootDir, summaryPerspective, summaryTherapy)
	if err != nil {
		return err
	}

	deltas, err := input.ReadDeltas(path)
	if err != nil {
		return err
	}

	s := cea.Summarize(deltas)
	if err := appendSummary(summaryTherapy, summaryPerspective, s); err != nil {
		return err
	}

	if summaryStats {
		if section := report.DeltaStatsSection(deltas); section != "" {
			if err := report.AppendSection(summaryArtifactPath(), section); err != nil {
				return err
			}
		}
	}

	if summaryRunID == "" {
		return nil
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.GetRun(summaryRunID); err != nil {
		return err
	}
	_, err = db.InsertSummary(&store.SummaryRow{
		RunID:       summaryRunID,
		Therapy:     summaryTherapy,
		Perspective: summaryPerspective,
		N:           s.N,
		NE:          s.NE,
		NW:          s.NW,
		SE:          s.SE,
		SW:          s.SW,
		Dominant:    s.Dominant,
		Dominated:   s.Dominated,
		CreatedAt:   time.Now(),
	})
	return err
}
