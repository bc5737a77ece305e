package store

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/openhta/ceaplane/internal/cea"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.CreateSchema(); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return s
}

func newTestRun(t *testing.T, s *Store) *Run {
	t.Helper()
	run := &Run{
		ID:           uuid.NewString(),
		Scenario:     "ontario_psilocybin",
		Jurisdiction: "ontario",
		Perspective:  "societal",
		Seed:         42,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	if err := s.InsertRun(run); err != nil {
		t.Fatalf("failed to insert run: %v", err)
	}
	return run
}

func TestRunRoundTrip(t *testing.T) {
	s := newTestStore(t)
	run := newTestRun(t, s)

	got, err := s.GetRun(run.ID)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if diff := cmp.Diff(run, got); diff != "" {
		t.Errorf("run mismatch (-inserted +read):\n%s", diff)
	}
}

func TestGetRun_NotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetRun("no-such-run"); err == nil {
		t.Error("expected error for unknown run id")
	}
}

func TestListRuns_NewestFirst(t *testing.T) {
	s := newTestStore(t)

	older := &Run{
		ID: uuid.NewString(), Scenario: "a", Perspective: "societal",
		CreatedAt: time.Now().UTC().Add(-time.Hour).Truncate(time.Second),
	}
	newer := &Run{
		ID: uuid.NewString(), Scenario: "b", Perspective: "societal",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	for _, r := range []*Run{older, newer} {
		if err := s.InsertRun(r); err != nil {
			t.Fatalf("InsertRun failed: %v", err)
		}
	}

	runs, err := s.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != newer.ID {
		t.Errorf("expected newest run first, got order %v, %v", runs[0].Scenario, runs[1].Scenario)
	}
}

func TestDrawTableRoundTrip(t *testing.T) {
	s := newTestStore(t)
	run := newTestRun(t, s)

	table := cea.Table{
		{Draw: 1, Strategy: "psilocybin", Effect: 2.2, Cost: 90},
		{Draw: 2, Strategy: "psilocybin", Effect: 2.3, Cost: 130},
		{Draw: 1, Strategy: "usual_care", Effect: 2.0, Cost: 100},
		{Draw: 2, Strategy: "usual_care", Effect: 2.5, Cost: 110},
	}
	if err := s.InsertDrawTable(run.ID, table); err != nil {
		t.Fatalf("InsertDrawTable failed: %v", err)
	}

	got, err := s.GetDrawTable(run.ID)
	if err != nil {
		t.Fatalf("GetDrawTable failed: %v", err)
	}
	// Stored ordering is (strategy, draw); the fixture is already in that
	// order.
	if diff := cmp.Diff(table, got); diff != "" {
		t.Errorf("draw table mismatch (-inserted +read):\n%s", diff)
	}
}

func TestDeltasRoundTrip(t *testing.T) {
	s := newTestStore(t)
	run := newTestRun(t, s)

	deltas := []cea.Delta{
		{Draw: 1, DE: 0.2, DC: -10},
		{Draw: 2, DE: -0.2, DC: 20},
	}
	if err := s.InsertDeltas(run.ID, "psilocybin", deltas); err != nil {
		t.Fatalf("InsertDeltas failed: %v", err)
	}

	got, err := s.GetDeltas(run.ID, "psilocybin")
	if err != nil {
		t.Fatalf("GetDeltas failed: %v", err)
	}
	if diff := cmp.Diff(deltas, got); diff != "" {
		t.Errorf("deltas mismatch (-inserted +read):\n%s", diff)
	}

	// A therapy with no stored deltas yields an empty slice, not an error.
	none, err := s.GetDeltas(run.ID, "ect")
	if err != nil {
		t.Fatalf("GetDeltas failed for absent therapy: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no deltas for absent therapy, got %d", len(none))
	}
}

func TestSummariesAccumulate(t *testing.T) {
	s := newTestStore(t)
	run := newTestRun(t, s)

	row := &SummaryRow{
		RunID:       run.ID,
		Therapy:     "psilocybin",
		Perspective: "societal",
		N:           2,
		SE:          0.5,
		NW:          0.5,
		Dominant:    1,
		Dominated:   1,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}

	// Inserting the same summary twice must accumulate, mirroring the
	// append-only markdown artifact.
	if _, err := s.InsertSummary(row); err != nil {
		t.Fatalf("InsertSummary failed: %v", err)
	}
	if _, err := s.InsertSummary(row); err != nil {
		t.Fatalf("second InsertSummary failed: %v", err)
	}

	got, err := s.ListSummaries(run.ID)
	if err != nil {
		t.Fatalf("ListSummaries failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 accumulated summaries, got %d", len(got))
	}
	if got[0].Therapy != "psilocybin" || got[0].N != 2 {
		t.Errorf("unexpected summary row: %+v", got[0])
	}
}
