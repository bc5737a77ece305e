package store

import "time"

// Run is one recorded analysis run. IDs are UUIDs minted at ingest or
// simulate time.
type Run struct {
	ID           string
	Scenario     string
	Jurisdiction string
	Perspective  string
	Seed         int64
	CreatedAt    time.Time
}

// SummaryRow is a persisted quadrant summary for one (run, therapy,
// perspective) triple. Mirrors cea.Summary plus identifying context.
type SummaryRow struct {
	ID          int64
	RunID       string
	Therapy     string
	Perspective string
	N           int
	NE          float64
	NW          float64
	SE          float64
	SW          float64
	Dominant    int
	Dominated   int
	CreatedAt   time.Time
}
