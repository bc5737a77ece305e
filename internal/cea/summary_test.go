package cea

import "testing"

func TestSummarize_Quadrants(t *testing.T) {
	deltas := []Delta{
		{Draw: 1, DE: 0.2, DC: 50},   // NE
		{Draw: 2, DE: -0.1, DC: 30},  // NW (dominated)
		{Draw: 3, DE: 0.3, DC: -20},  // SE (dominant)
		{Draw: 4, DE: -0.2, DC: -10}, // SW
		{Draw: 5, DE: 0.1, DC: 40},   // NE
	}

	s := Summarize(deltas)

	if s.N != 5 {
		t.Errorf("N = %d, want 5", s.N)
	}
	if !approxEqual(s.NE, 0.4) {
		t.Errorf("NE = %v, want 0.4", s.NE)
	}
	if !approxEqual(s.NW, 0.2) {
		t.Errorf("NW = %v, want 0.2", s.NW)
	}
	if !approxEqual(s.SE, 0.2) {
		t.Errorf("SE = %v, want 0.2", s.SE)
	}
	if !approxEqual(s.SW, 0.2) {
		t.Errorf("SW = %v, want 0.2", s.SW)
	}
	if s.Dominant != 1 {
		t.Errorf("Dominant = %d, want 1", s.Dominant)
	}
	if s.Dominated != 1 {
		t.Errorf("Dominated = %d, want 1", s.Dominated)
	}
}

func TestSummarize_AxisDrawsExcluded(t *testing.T) {
	deltas := []Delta{
		{Draw: 1, DE: 0, DC: 50},   // on the ΔE axis: no quadrant
		{Draw: 2, DE: 0.1, DC: 0},  // on the ΔC axis: no quadrant
		{Draw: 3, DE: 0.1, DC: 10}, // NE
		{Draw: 4, DE: 0, DC: 0},    // origin: no quadrant
	}

	s := Summarize(deltas)

	if s.N != 4 {
		t.Errorf("N = %d, want 4 (axis draws still count toward N)", s.N)
	}
	sum := s.NE + s.NW + s.SE + s.SW
	if !approxEqual(sum, 0.25) {
		t.Errorf("quadrant proportions sum = %v, want 0.25", sum)
	}
}

func TestSummarize_ProportionsBounded(t *testing.T) {
	tests := []struct {
		name   string
		deltas []Delta
		// wantFull marks inputs with no axis-aligned draw, where the
		// proportions must sum to exactly 1.
		wantFull bool
	}{
		{
			name: "no axis draws",
			deltas: []Delta{
				{DE: 1, DC: 1}, {DE: -1, DC: 1}, {DE: 1, DC: -1}, {DE: -1, DC: -1},
			},
			wantFull: true,
		},
		{
			name: "with axis draws",
			deltas: []Delta{
				{DE: 1, DC: 1}, {DE: 0, DC: 1}, {DE: 1, DC: 0},
			},
			wantFull: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.deltas)
			sum := s.NE + s.NW + s.SE + s.SW
			if sum > 1+1e-9 {
				t.Errorf("proportions sum %v exceeds 1", sum)
			}
			if tt.wantFull && !approxEqual(sum, 1) {
				t.Errorf("proportions sum %v, want exactly 1", sum)
			}
			if !tt.wantFull && sum >= 1 {
				t.Errorf("proportions sum %v, want < 1 with axis draws present", sum)
			}
		})
	}
}

func TestSummarize_DominanceMatchesRawCounts(t *testing.T) {
	deltas := []Delta{
		{DE: 0.5, DC: -100}, {DE: 0.2, DC: -5}, {DE: -0.3, DC: 40},
		{DE: 0.1, DC: 10}, {DE: -0.1, DC: -10},
	}

	s := Summarize(deltas)

	// Cross-check against the proportions: dominant == SE*n, dominated == NW*n.
	if got := int(s.SE*float64(s.N) + 0.5); got != s.Dominant {
		t.Errorf("Dominant = %d, SE*N rounds to %d", s.Dominant, got)
	}
	if got := int(s.NW*float64(s.N) + 0.5); got != s.Dominated {
		t.Errorf("Dominated = %d, NW*N rounds to %d", s.Dominated, got)
	}
	if s.Dominant != 2 || s.Dominated != 1 {
		t.Errorf("Dominant/Dominated = %d/%d, want 2/1", s.Dominant, s.Dominated)
	}
}

func TestSummarize_EmptyFloor(t *testing.T) {
	s := Summarize(nil)

	if s.N != 1 {
		t.Errorf("N = %d, want floor of 1", s.N)
	}
	if s.NE != 0 || s.NW != 0 || s.SE != 0 || s.SW != 0 {
		t.Errorf("expected all-zero proportions, got %+v", s)
	}
	if s.Dominant != 0 || s.Dominated != 0 {
		t.Errorf("expected zero dominance counts, got %+v", s)
	}
	if !s.Empty() {
		t.Error("Empty() should report true for the degenerate summary")
	}
}

func TestSummarize_EndToEndScenario(t *testing.T) {
	table := Table{
		{Draw: 1, Strategy: "usual_care", Effect: 2.0, Cost: 100},
		{Draw: 2, Strategy: "usual_care", Effect: 2.5, Cost: 110},
		{Draw: 1, Strategy: "psilocybin", Effect: 2.2, Cost: 90},
		{Draw: 2, Strategy: "psilocybin", Effect: 2.3, Cost: 130},
	}

	s := Summarize(ComputeDeltas(table, "usual_care", "psilocybin"))

	if s.N != 2 {
		t.Errorf("N = %d, want 2", s.N)
	}
	if !approxEqual(s.SE, 0.5) || !approxEqual(s.NW, 0.5) {
		t.Errorf("SE/NW = %v/%v, want 0.5/0.5", s.SE, s.NW)
	}
	if s.NE != 0 || s.SW != 0 {
		t.Errorf("NE/SW = %v/%v, want 0/0", s.NE, s.SW)
	}
	if s.Dominant != 1 || s.Dominated != 1 {
		t.Errorf("Dominant/Dominated = %d/%d, want 1/1", s.Dominant, s.Dominated)
	}
	if s.Empty() {
		t.Error("Empty() must be false for a populated summary")
	}
}
