// Package cea implements the cost-effectiveness plane core: incremental
// delta computation between a therapy and a baseline strategy over paired
// PSA draws, and quadrant summarization of the resulting (ΔE, ΔC) cloud.
package cea

// Record is one (strategy, draw) outcome from a PSA run.
// The draw index is shared across strategies so that per-draw comparisons
// preserve the correlation structure of the underlying Monte-Carlo sample.
type Record struct {
	Draw     int
	Strategy string
	Effect   float64 // health outcome, e.g. QALYs
	Cost     float64
}

// Table is an ordered collection of PSA records covering one or more
// strategies.
type Table []Record

// Strategies returns the distinct strategy labels present in the table,
// in first-appearance order.
func (t Table) Strategies() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range t {
		if !seen[r.Strategy] {
			seen[r.Strategy] = true
			out = append(out, r.Strategy)
		}
	}
	return out
}

// HasStrategy reports whether at least one record carries the given label.
func (t Table) HasStrategy(name string) bool {
	for _, r := range t {
		if r.Strategy == name {
			return true
		}
	}
	return false
}

// Delta is the per-draw incremental outcome of a therapy relative to the
// baseline strategy.
type Delta struct {
	Draw int
	DE   float64 // effect_therapy − effect_baseline
	DC   float64 // cost_therapy − cost_baseline
}

// Summary aggregates a delta cloud into cost-effectiveness plane quadrant
// proportions plus dominance counts.
//
// Proportions are fractions of N. Draws exactly on an axis (DE == 0 or
// DC == 0) fall into no quadrant but still count toward N, so
// NE+NW+SE+SW <= 1 with equality only when no draw is axis-aligned.
type Summary struct {
	N  int // max(1, number of deltas) — floored so an empty cloud divides safely
	NE float64
	NW float64
	SE float64
	SW float64

	// Dominant is the number of draws where the therapy is strictly more
	// effective and strictly cheaper (the SE raw count). Dominated is the
	// mirror image (the NW raw count).
	Dominant  int
	Dominated int
}

// Empty reports whether the summary was produced from zero deltas, i.e. the
// N=1 floor is in effect and all proportions are degenerate zeros. Callers
// must not read such a summary as a zero-variance result.
func (s Summary) Empty() bool {
	return s.Dominant == 0 && s.Dominated == 0 &&
		s.NE == 0 && s.NW == 0 && s.SE == 0 && s.SW == 0 && s.N == 1
}
