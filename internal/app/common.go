package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/openhta/ceaplane/internal/cea"
	"github.com/openhta/ceaplane/internal/output"
	"github.com/openhta/ceaplane/internal/report"
	"github.com/openhta/ceaplane/internal/store"
)

// openStore opens the run database and makes sure the schema exists.
func openStore() (*store.Store, error) {
	path, err := getDBPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get database path: %w", err)
	}

	db, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.CreateSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create database schema: %w", err)
	}
	return db, nil
}

// summaryArtifactPath is the accumulated markdown report under the artifact
// root.
func summaryArtifactPath() string {
	return filepath.Join(rootDir, report.SummaryFileName)
}

// appendSummary appends one quadrant section to the markdown artifact,
// prints the terminal rendering, and warns on a degenerate cloud. This is
// the shared tail of `summary`, `report` and `watch`.
func appendSummary(therapy, perspective string, s cea.Summary) error {
	if err := report.AppendSection(summaryArtifactPath(), report.SummarySection(therapy, perspective, s)); err != nil {
		return fmt.Errorf("failed to append summary section: %w", err)
	}

	fmt.Print(output.RenderQuadrantTable(therapy, perspective, s))

	if s.Empty() {
		fmt.Fprintf(os.Stderr, "warning: %s/%s produced an empty delta cloud; summary proportions are all zero\n",
			perspective, therapy)
	}
	return nil
}
