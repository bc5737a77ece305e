package ceac

import (
	"testing"

	"github.com/openhta/ceaplane/internal/cea"
)

func testTable() cea.Table {
	// Two strategies, three shared draws. At low WTP usual_care wins on
	// cost; at high WTP psilocybin wins on effect.
	return cea.Table{
		{Draw: 1, Strategy: "usual_care", Effect: 2.0, Cost: 100},
		{Draw: 2, Strategy: "usual_care", Effect: 2.1, Cost: 110},
		{Draw: 3, Strategy: "usual_care", Effect: 1.9, Cost: 105},
		{Draw: 1, Strategy: "psilocybin", Effect: 2.4, Cost: 9000},
		{Draw: 2, Strategy: "psilocybin", Effect: 2.5, Cost: 9100},
		{Draw: 3, Strategy: "psilocybin", Effect: 2.3, Cost: 8900},
	}
}

func TestCompute_ProbabilitiesAtExtremes(t *testing.T) {
	curve, err := Compute(testTable(), []float64{0, 100000})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if len(curve) != 2 {
		t.Fatalf("expected 2 points, got %d", len(curve))
	}

	// λ=0: NMB is just negative cost; usual_care always cheaper.
	if got := curve[0].Probability["usual_care"]; got != 1.0 {
		t.Errorf("P(usual_care | λ=0) = %v, want 1.0", got)
	}
	// λ=100k: effect gain (0.4 QALY ≈ $40k) dwarfs the cost gap.
	if got := curve[1].Probability["psilocybin"]; got != 1.0 {
		t.Errorf("P(psilocybin | λ=100k) = %v, want 1.0", got)
	}
}

func TestCompute_FrontierFollowsMeanNMB(t *testing.T) {
	curve, err := Compute(testTable(), []float64{0, 100000})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if curve[0].Frontier != "usual_care" {
		t.Errorf("frontier at λ=0 = %q, want usual_care", curve[0].Frontier)
	}
	if curve[1].Frontier != "psilocybin" {
		t.Errorf("frontier at λ=100k = %q, want psilocybin", curve[1].Frontier)
	}
	if curve[1].FrontierProb != curve[1].Probability["psilocybin"] {
		t.Error("frontier probability must equal the frontier strategy's CEAC value")
	}
}

func TestCompute_GridSorted(t *testing.T) {
	curve, err := Compute(testTable(), []float64{50000, 0, 20000})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	for i := 1; i < len(curve); i++ {
		if curve[i].WTP <= curve[i-1].WTP {
			t.Errorf("curve not sorted by WTP: %v after %v", curve[i].WTP, curve[i-1].WTP)
		}
	}
}

func TestCompute_PartialDrawsDropped(t *testing.T) {
	table := append(testTable(),
		// Draw 4 exists only for psilocybin and must not participate.
		cea.Record{Draw: 4, Strategy: "psilocybin", Effect: 9.9, Cost: 1},
	)

	curve, err := Compute(table, []float64{0})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	// With draw 4 excluded usual_care still wins every shared draw at λ=0.
	if got := curve[0].Probability["usual_care"]; got != 1.0 {
		t.Errorf("P(usual_care | λ=0) = %v, want 1.0 after dropping partial draw", got)
	}
}

func TestCompute_TiedDrawCountsForNoStrategy(t *testing.T) {
	table := cea.Table{
		{Draw: 1, Strategy: "a", Effect: 1.0, Cost: 100},
		{Draw: 1, Strategy: "b", Effect: 1.0, Cost: 100},
		{Draw: 2, Strategy: "a", Effect: 2.0, Cost: 100},
		{Draw: 2, Strategy: "b", Effect: 1.0, Cost: 100},
	}

	curve, err := Compute(table, []float64{1000})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	p := curve[0].Probability
	if p["a"]+p["b"] >= 1.0 {
		t.Errorf("tied draw must count for no strategy: P(a)+P(b) = %v", p["a"]+p["b"])
	}
	if p["a"] != 0.5 {
		t.Errorf("P(a) = %v, want 0.5", p["a"])
	}
}

func TestCompute_Errors(t *testing.T) {
	if _, err := Compute(cea.Table{{Draw: 1, Strategy: "only", Effect: 1, Cost: 1}}, []float64{0}); err == nil {
		t.Error("expected error for single-strategy table")
	}

	disjoint := cea.Table{
		{Draw: 1, Strategy: "a", Effect: 1, Cost: 1},
		{Draw: 2, Strategy: "b", Effect: 1, Cost: 1},
	}
	if _, err := Compute(disjoint, []float64{0}); err == nil {
		t.Error("expected error when no draw is shared by all strategies")
	}
}
