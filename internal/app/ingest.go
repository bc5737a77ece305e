package app

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/openhta/ceaplane/internal/input"
	"github.com/openhta/ceaplane/internal/store"
)

var (
	ingestDraws        string
	ingestName         string
	ingestJurisdiction string

	ingestCmd = &cobra.Command{
		Use:   "ingest",
		Short: "Record an externally produced draw table in the run database",
		Long: `Validate and ingest a PSA draw CSV produced by an upstream model.

The file must carry the header draw,strategy,effect,cost. A malformed file
aborts the ingest; nothing is recorded.`,
		Example: `  ceaplane ingest --draws model_output.csv --name trial-psa --jurisdiction ontario`,
		RunE:    runIngest,
	}
)

func init() {
	ingestCmd.Flags().StringVar(&ingestDraws, "draws", "", "draw table CSV (required)")
	ingestCmd.Flags().StringVar(&ingestName, "name", "", "label for the recorded run (required)")
	ingestCmd.Flags().StringVar(&ingestJurisdiction, "jurisdiction", "", "jurisdiction label")
	ingestCmd.MarkFlagRequired("draws")
	ingestCmd.MarkFlagRequired("name")
}

func runIngest(cmd *cobra.Command, args []string) error {
	table, err := input.ReadDrawTable(ingestDraws)
	if err != nil {
		return err
	}

	strategies := table.Strategies()
	if len(strategies) < 2 {
		return fmt.Errorf("draw table %s holds %d strategies; at least two are required for incremental analysis",
			ingestDraws, len(strategies))
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	run := &store.Run{
		ID:           uuid.NewString(),
		Scenario:     ingestName,
		Jurisdiction: ingestJurisdiction,
		CreatedAt:    time.Now(),
	}
	if err := db.InsertRun(run); err != nil {
		return err
	}
	if err := db.InsertDrawTable(run.ID, table); err != nil {
		return err
	}

	fmt.Printf("Ingested %d records (%d strategies) as run %s\n", len(table), len(strategies), run.ID)
	return nil
}
