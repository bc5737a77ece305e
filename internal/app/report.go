package app

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/openhta/ceaplane/internal/bia"
	"github.com/openhta/ceaplane/internal/cea"
	"github.com/openhta/ceaplane/internal/ceac"
	"github.com/openhta/ceaplane/internal/input"
	"github.com/openhta/ceaplane/internal/report"
	"github.com/openhta/ceaplane/internal/scenario"
	"github.com/openhta/ceaplane/internal/sim"
	"github.com/openhta/ceaplane/internal/store"
)

var (
	reportScenario    string
	reportDraws       string
	reportSeed        uint64
	reportPerspective string
	reportSave        bool
	reportHTML        string
	reportXLSX        string

	reportCmd = &cobra.Command{
		Use:   "report",
		Short: "Run the full analysis pipeline and append every section",
		Long: `Run the whole pipeline for a scenario: sample (or load) the draw table,
derive per-therapy deltas, append quadrant summaries and delta statistics,
compute the acceptability curve, and run whichever of the budget-impact and
MCDA blocks the scenario carries.

Every section is appended to the markdown artifact in order. --html renders
the accumulated artifact to a standalone page; --xlsx exports the tables as
a workbook.`,
		Example: `  ceaplane report --scenario ontario.yaml --seed 7
  ceaplane report --scenario ontario.yaml --draws external.csv --save
  ceaplane report --scenario ontario.yaml --html report.html --xlsx report.xlsx`,
		RunE: runReport,
	}
)

func init() {
	reportCmd.Flags().StringVar(&reportScenario, "scenario", "", "scenario YAML file (required)")
	reportCmd.Flags().StringVar(&reportDraws, "draws", "", "external draw table CSV (default: sample from the scenario)")
	reportCmd.Flags().Uint64Var(&reportSeed, "seed", 42, "random seed when sampling")
	reportCmd.Flags().StringVar(&reportPerspective, "perspective", input.SocietalPerspective, "analysis perspective (societal | health_system)")
	reportCmd.Flags().BoolVar(&reportSave, "save", false, "record the run, draws, deltas and summaries in the database")
	reportCmd.Flags().StringVar(&reportHTML, "html", "", "also render the accumulated artifact to this HTML file")
	reportCmd.Flags().StringVar(&reportXLSX, "xlsx", "", "also export the result tables to this xlsx workbook")
	reportCmd.MarkFlagRequired("scenario")
}

func runReport(cmd *cobra.Command, args []string) error {
	if _, err := input.PerspectiveDir(reportPerspective); err != nil {
		return err
	}

	sc, err := scenario.Load(reportScenario)
	if err != nil {
		return err
	}

	table, err := reportDrawTable(sc)
	if err != nil {
		return err
	}
	if !table.HasStrategy(sc.Baseline) {
		return fmt.Errorf("baseline %q is not in the draw table (strategies: %v)",
			sc.Baseline, table.Strategies())
	}

	therapies := sc.Therapies()
	deltasByTherapy := make([][]cea.Delta, len(therapies))

	// Per-therapy differencing is independent; fan out, then append the
	// sections sequentially so the artifact order stays deterministic.
	var g errgroup.Group
	for i, therapy := range therapies {
		g.Go(func() error {
			deltas := cea.ComputeDeltas(table, sc.Baseline, therapy)
			deltasByTherapy[i] = deltas

			path, err := input.DeltasPath(rootDir, reportPerspective, therapy)
			if err != nil {
				return err
			}
			return input.WriteDeltas(path, deltas)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	summaries := make([]cea.Summary, len(therapies))
	for i, therapy := range therapies {
		deltas := deltasByTherapy[i]
		if len(deltas) == 0 {
			fmt.Fprintf(os.Stderr, "warning: %s shares no draws with baseline %s\n", therapy, sc.Baseline)
		}

		summaries[i] = cea.Summarize(deltas)
		if err := appendSummary(therapy, reportPerspective, summaries[i]); err != nil {
			return err
		}
		if section := report.DeltaStatsSection(deltas); section != "" {
			if err := report.AppendSection(summaryArtifactPath(), section); err != nil {
				return err
			}
		}
	}

	curve, err := ceac.Compute(table, sc.WTPGrid)
	if err != nil {
		return fmt.Errorf("failed to compute acceptability: %w", err)
	}
	strategies := table.Strategies()
	if err := report.AppendSection(summaryArtifactPath(), report.CEACSection(curve, strategies)); err != nil {
		return err
	}

	var biaRes *bia.Result
	if sc.BudgetImpact != nil {
		biaRes, err = bia.Run(bia.Inputs{
			Jurisdiction:       sc.Jurisdiction,
			EligiblePopulation: sc.BudgetImpact.EligiblePopulation,
			Uptake:             sc.BudgetImpact.Uptake,
			CostPerPatient:     sc.BudgetImpact.CostPerPatient,
			OffsetPerPatient:   sc.BudgetImpact.OffsetPerPatient,
		})
		if err != nil {
			return fmt.Errorf("budget impact for %s: %w", sc.Name, err)
		}
		if err := report.AppendSection(summaryArtifactPath(), report.BIASection(biaRes)); err != nil {
			return err
		}
	}

	if reportSave {
		if err := saveReportRun(sc, table, therapies, deltasByTherapy, summaries); err != nil {
			return err
		}
	}

	if reportHTML != "" {
		md, err := os.ReadFile(summaryArtifactPath())
		if err != nil {
			return fmt.Errorf("failed to read artifact for HTML rendering: %w", err)
		}
		if err := os.WriteFile(reportHTML, report.RenderHTML(md), 0644); err != nil {
			return fmt.Errorf("failed to write HTML report: %w", err)
		}
		fmt.Printf("Rendered %s\n", reportHTML)
	}

	if reportXLSX != "" {
		if err := exportWorkbook(therapies, deltasByTherapy, curve, strategies, biaRes); err != nil {
			return err
		}
		fmt.Printf("Exported %s\n", reportXLSX)
	}

	return nil
}

func reportDrawTable(sc *scenario.Scenario) (cea.Table, error) {
	if reportDraws != "" {
		return input.ReadDrawTable(reportDraws)
	}
	table, err := sim.Sample(sc, reportSeed)
	if err != nil {
		return nil, fmt.Errorf("failed to sample scenario %s: %w", sc.Name, err)
	}
	return table, nil
}

func saveReportRun(sc *scenario.Scenario, table cea.Table, therapies []string,
	deltasByTherapy [][]cea.Delta, summaries []cea.Summary) error {

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	run := &store.Run{
		ID:           uuid.NewString(),
		Scenario:     sc.Name,
		Jurisdiction: sc.Jurisdiction,
		Perspective:  reportPerspective,
		Seed:         int64(reportSeed),
		CreatedAt:    time.Now(),
	}
	if err := db.InsertRun(run); err != nil {
		return err
	}
	if err := db.InsertDrawTable(run.ID, table); err != nil {
		return err
	}

	for i, therapy := range therapies {
		if err := db.InsertDeltas(run.ID, therapy, deltasByTherapy[i]); err != nil {
			return err
		}
		s := summaries[i]
		if _, err := db.InsertSummary(&store.SummaryRow{
			RunID:       run.ID,
			Therapy:     therapy,
			Perspective: reportPerspective,
			N:           s.N,
			NE:          s.NE,
			NW:          s.NW,
			SE:          s.SE,
			SW:          s.SW,
			Dominant:    s.Dominant,
			Dominated:   s.Dominated,
			CreatedAt:   time.Now(),
		}); err != nil {
			return err
		}
	}

	fmt.Printf("Recorded run %s\n", run.ID)
	return nil
}

func exportWorkbook(therapies []string, deltasByTherapy [][]cea.Delta,
	curve ceac.Curve, strategies []string, biaRes *bia.Result) error {

	wb := report.NewWorkbook()
	for i, therapy := range therapies {
		if err := wb.AddDeltaSheet(therapy, deltasByTherapy[i]); err != nil {
			return err
		}
	}
	if err := wb.AddCEACSheet(curve, strategies); err != nil {
		return err
	}
	if biaRes != nil {
		if err := wb.AddBIASheet(biaRes); err != nil {
			return err
		}
	}
	return wb.Save(reportXLSX)
}
