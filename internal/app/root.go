package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	rootDir string
	dbPath  string

	// RootCmd is the root command for ceaplane
	RootCmd = &cobra.Command{
		Use:   "ceaplane",
		Short: "Cost-effectiveness plane analysis for health-economic evaluations",
		Long: `ceaplane turns probabilistic sensitivity analysis draws into decision-ready
cost-effectiveness results: incremental delta clouds, quadrant summaries,
acceptability curves, budget impact, one-way sensitivity and value of
information.

Results accumulate: quadrant summaries are appended to a markdown artifact
and recorded in a local SQLite database, so successive runs stay auditable
side by side.

Typical flow:
  1. ceaplane simulate --scenario scenario.yaml   # or bring your own draws CSV
  2. ceaplane deltas --draws draws.csv --baseline ect
  3. ceaplane summary --therapy psilocybin
  4. ceaplane ceac --draws draws.csv

Examples:
  # Generate a draw table from a scenario
  ceaplane simulate --scenario ontario.yaml --seed 7

  # Derive per-draw increments vs the baseline strategy
  ceaplane deltas --draws draws.csv --baseline ect --perspective societal

  # Append a quadrant summary to the report artifact
  ceaplane summary --therapy psilocybin --perspective health_system

  # Re-summarize automatically as delta files change
  ceaplane watch`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

func init() {
	RootCmd.PersistentFlags().StringVar(&rootDir, "root", ".", "artifact root directory for delta files and reports")
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: ~/.ceaplane/ceaplane.db)")

	RootCmd.SuggestionsMinimumDistance = 2

	RootCmd.AddCommand(simulateCmd)
	RootCmd.AddCommand(ingestCmd)
	RootCmd.AddCommand(deltasCmd)
	RootCmd.AddCommand(summaryCmd)
	RootCmd.AddCommand(ceacCmd)
	RootCmd.AddCommand(biaCmd)
	RootCmd.AddCommand(tornadoCmd)
	RootCmd.AddCommand(voiCmd)
	RootCmd.AddCommand(mcdaCmd)
	RootCmd.AddCommand(reportCmd)
	RootCmd.AddCommand(runsCmd)
	RootCmd.AddCommand(watchCmd)
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// getDBPath returns the database path, using the flag value or default
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	ceaplaneDir := filepath.Join(home, ".ceaplane")
	if err := os.MkdirAll(ceaplaneDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create ceaplane directory: %w", err)
	}

	return filepath.Join(ceaplaneDir, "ceaplane.db"), nil
}
