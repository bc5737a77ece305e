package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/openhta/ceaplane/internal/cea"
)

// Run operations

// InsertRun records a new analysis run.
func (s *Store) InsertRun(run *Run) error {
	query := `
		INSERT INTO runs (id, scenario, jurisdiction, perspective, seed, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		run.ID,
		run.Scenario,
		run.Jurisdiction,
		run.Perspective,
		run.Seed,
		run.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}
	return nil
}

// GetRun retrieves a run by id.
func (s *Store) GetRun(id string) (*Run, error) {
	query := `
		SELECT id, scenario, jurisdiction, perspective, seed, created_at
		FROM runs
		WHERE id = ?
	`

	var run Run
	var createdAt string

	err := s.db.QueryRow(query, id).Scan(
		&run.ID,
		&run.Scenario,
		&run.Jurisdiction,
		&run.Perspective,
		&run.Seed,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}

	run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at for run %s: %w", id, err)
	}
	return &run, nil
}

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns() ([]*Run, error) {
	query := `
		SELECT id, scenario, jurisdiction, perspective, seed, created_at
		FROM runs
		ORDER BY created_at DESC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var run Run
		var createdAt string

		if err := rows.Scan(&run.ID, &run.Scenario, &run.Jurisdiction,
			&run.Perspective, &run.Seed, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}

		run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for run %s: %w", run.ID, err)
		}
		runs = append(runs, &run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return runs, nil
}

// Draw operations

// InsertDrawTable bulk-inserts a draw table for a run inside one
// transaction.
func (s *Store) InsertDrawTable(runID string, table cea.Table) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO draws (run_id, draw, strategy, effect, cost)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare draw insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range table {
		if _, err := stmt.Exec(runID, r.Draw, r.Strategy, r.Effect, r.Cost); err != nil {
			return fmt.Errorf("failed to insert draw %d/%s: %w", r.Draw, r.Strategy, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit draw table: %w", err)
	}
	return nil
}

// GetDrawTable returns the full draw table for a run, ordered by strategy
// then draw.
func (s *Store) GetDrawTable(runID string) (cea.Table, error) {
	query := `
		SELECT draw, strategy, effect, cost
		FROM draws
		WHERE run_id = ?
		ORDER BY strategy, draw
	`

	rows, err := s.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get draw table for run %s: %w", runID, err)
	}
	defer rows.Close()

	var table cea.Table
	for rows.Next() {
		var r cea.Record
		if err := rows.Scan(&r.Draw, &r.Strategy, &r.Effect, &r.Cost); err != nil {
			return nil, fmt.Errorf("failed to scan draw row: %w", err)
		}
		table = append(table, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating draws: %w", err)
	}
	return table, nil
}

// Delta operations

// InsertDeltas bulk-inserts a therapy's delta table for a run.
func (s *Store) InsertDeltas(runID, therapy string, deltas []cea.Delta) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO deltas (run_id, therapy, draw, d_effect, d_cost)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare delta insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range deltas {
		if _, err := stmt.Exec(runID, therapy, d.Draw, d.DE, d.DC); err != nil {
			return fmt.Errorf("failed to insert delta for draw %d: %w", d.Draw, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit deltas: %w", err)
	}
	return nil
}

// GetDeltas returns a therapy's deltas for a run, ordered by draw.
func (s *Store) GetDeltas(runID, therapy string) ([]cea.Delta, error) {
	query := `
		SELECT draw, d_effect, d_cost
		FROM deltas
		WHERE run_id = ? AND therapy = ?
		ORDER BY draw
	`

	rows, err := s.db.Query(query, runID, therapy)
	if err != nil {
		return nil, fmt.Errorf("failed to get deltas for %s: %w", therapy, err)
	}
	defer rows.Close()

	var deltas []cea.Delta
	for rows.Next() {
		var d cea.Delta
		if err := rows.Scan(&d.Draw, &d.DE, &d.DC); err != nil {
			return nil, fmt.Errorf("failed to scan delta row: %w", err)
		}
		deltas = append(deltas, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deltas: %w", err)
	}
	return deltas, nil
}

// Summary operations

// InsertSummary appends a quadrant summary row and returns its id. Rows are
// never updated or replaced; like the markdown artifact, the table only
// accumulates.
func (s *Store) InsertSummary(row *SummaryRow) (int64, error) {
	query := `
		INSERT INTO summaries
		(run_id, therapy, perspective, n, ne, nw, se, sw, dominant, dominated, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.Exec(query,
		row.RunID,
		row.Therapy,
		row.Perspective,
		row.N,
		row.NE,
		row.NW,
		row.SE,
		row.SW,
		row.Dominant,
		row.Dominated,
		row.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert summary for %s: %w", row.Therapy, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get summary id: %w", err)
	}
	return id, nil
}

// ListSummaries returns all summaries for a run in insertion order.
func (s *Store) ListSummaries(runID string) ([]*SummaryRow, error) {
	query := `
		SELECT id, run_id, therapy, perspective, n, ne, nw, se, sw, dominant, dominated, created_at
		FROM summaries
		WHERE run_id = ?
		ORDER BY id
	`

	rows, err := s.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries for run %s: %w", runID, err)
	}
	defer rows.Close()

	var summaries []*SummaryRow
	for rows.Next() {
		var row SummaryRow
		var createdAt string

		if err := rows.Scan(&row.ID, &row.RunID, &row.Therapy, &row.Perspective,
			&row.N, &row.NE, &row.NW, &row.SE, &row.SW,
			&row.Dominant, &row.Dominated, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}

		row.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for summary %d: %w", row.ID, err)
		}
		summaries = append(summaries, &row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating summaries: %w", err)
	}
	return summaries, nil
}
