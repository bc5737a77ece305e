// Package report renders and accumulates the human-readable outputs of a
// ceaplane run: the append-only markdown summary artifact, full report
// documents, an HTML rendering, and an xlsx export of the result tables.
package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// SummaryFileName is the default append-only summary artifact under the run
// root. Each summarization appends one section; the file is never
// truncated, so repeated runs accumulate duplicate sections and readers
// must expect that.
const SummaryFileName = "psilocybin_inclusion_summary.md"

// AppendSection appends a markdown fragment to the artifact at path,
// creating the file (and parent directories) if needed. Existing content is
// never touched.
func AppendSection(path, section string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open summary artifact: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(section); err != nil {
		return fmt.Errorf("failed to append to summary artifact: %w", err)
	}
	return nil
}
