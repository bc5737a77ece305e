// Package input reads and writes the CSV artifacts ceaplane exchanges with
// its upstream sampling stage and downstream summarization: draw tables
// (draw,strategy,effect,cost) and delta tables (draw,dE,dC).
package input

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/openhta/ceaplane/internal/cea"
)

// ReadDrawTable parses a PSA draw CSV. The header must be exactly
// draw,strategy,effect,cost. A missing or malformed file aborts the run;
// there is no partial recovery.
func ReadDrawTable(path string) (cea.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open draw table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse draw table %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("draw table %s is empty", path)
	}

	if err := checkHeader(rows[0], []string{"draw", "strategy", "effect", "cost"}); err != nil {
		return nil, fmt.Errorf("draw table %s: %w", path, err)
	}

	table := make(cea.Table, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2 // 1-based, after header
		if len(row) != 4 {
			return nil, fmt.Errorf("draw table %s line %d: expected 4 fields, got %d", path, line, len(row))
		}

		draw, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("draw table %s line %d: invalid draw %q", path, line, row[0])
		}
		effect, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("draw table %s line %d: invalid effect %q", path, line, row[2])
		}
		cost, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("draw table %s line %d: invalid cost %q", path, line, row[3])
		}

		table = append(table, cea.Record{
			Draw:     draw,
			Strategy: row[1],
			Effect:   effect,
			Cost:     cost,
		})
	}
	return table, nil
}

// WriteDrawTable writes a draw table CSV, creating parent directories as
// needed.
func WriteDrawTable(path string, table cea.Table) error {
	rows := make([][]string, 0, len(table)+1)
	rows = append(rows, []string{"draw", "strategy", "effect", "cost"})
	for _, r := range table {
		rows = append(rows, []string{
			strconv.Itoa(r.Draw),
			r.Strategy,
			formatFloat(r.Effect),
			formatFloat(r.Cost),
		})
	}
	return writeCSV(path, rows)
}

// ReadDeltas parses a delta CSV with header draw,dE,dC.
func ReadDeltas(path string) ([]cea.Delta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open deltas: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse deltas %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("deltas file %s is empty", path)
	}

	if err := checkHeader(rows[0], []string{"draw", "dE", "dC"}); err != nil {
		return nil, fmt.Errorf("deltas %s: %w", path, err)
	}

	deltas := make([]cea.Delta, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		if len(row) != 3 {
			return nil, fmt.Errorf("deltas %s line %d: expected 3 fields, got %d", path, line, len(row))
		}

		draw, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("deltas %s line %d: invalid draw %q", path, line, row[0])
		}
		de, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("deltas %s line %d: invalid dE %q", path, line, row[1])
		}
		dc, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("deltas %s line %d: invalid dC %q", path, line, row[2])
		}

		deltas = append(deltas, cea.Delta{Draw: draw, DE: de, DC: dc})
	}
	return deltas, nil
}

// WriteDeltas writes the intermediate delta artifact consumed by the
// summary step.
func WriteDeltas(path string, deltas []cea.Delta) error {
	rows := make([][]string, 0, len(deltas)+1)
	rows = append(rows, []string{"draw", "dE", "dC"})
	for _, d := range deltas {
		rows = append(rows, []string{
			strconv.Itoa(d.Draw),
			formatFloat(d.DE),
			formatFloat(d.DC),
		})
	}
	return writeCSV(path, rows)
}

func checkHeader(got, want []string) error {
	if len(got) != len(want) {
		return fmt.Errorf("expected header %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("expected header %v, got %v", want, got)
		}
	}
	return nil
}

func writeCSV(path string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
