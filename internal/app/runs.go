package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openhta/ceaplane/internal/output"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded analysis runs",
	Long: `List every run recorded in the database, newest first: scenario label,
perspective, seed and age.`,
	Example: `  ceaplane runs`,
	RunE:    runRuns,
}

func runRuns(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.ListRuns()
	if err != nil {
		return err
	}

	fmt.Print(output.RenderRunTable(runs))
	return nil
}
