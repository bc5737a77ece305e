package scenario

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
name: ontario_psilocybin
jurisdiction: ontario
baseline: usual_care
draws: 500
wtp_grid: [0, 25000, 50000]
strategies:
  - name: usual_care
    effect: {dist: normal, mean: 2.0, sd: 0.2}
    cost: {dist: gamma, alpha: 20, beta: 0.2}
  - name: psilocybin
    effect: {dist: beta, alpha: 8, beta: 2, scale: 3}
    cost: {dist: lognormal, mu: 9.1, sigma: 0.3}
budget_impact:
  eligible_population: 10000
  uptake: [0.05, 0.1, 0.2]
  cost_per_patient: 12000
  offset_per_patient: 3000
mcda:
  weights: {efficacy: 0.5, tolerability: 0.5}
  alternatives:
    - name: psilocybin
      scores: {efficacy: 0.6, tolerability: 0.8}
`

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write scenario file: %v", err)
	}
	return path
}

func TestLoad_Valid(t *testing.T) {
	sc, err := Load(writeScenario(t, validYAML))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if sc.Name != "ontario_psilocybin" {
		t.Errorf("name = %q", sc.Name)
	}
	if sc.Draws != 500 {
		t.Errorf("draws = %d, want 500", sc.Draws)
	}
	if len(sc.Strategies) != 2 {
		t.Errorf("strategies = %d, want 2", len(sc.Strategies))
	}
	if sc.Strategies[1].Effect.Kind != "beta" {
		t.Errorf("psilocybin effect dist = %q, want beta", sc.Strategies[1].Effect.Kind)
	}
	if sc.BudgetImpact == nil || sc.BudgetImpact.EligiblePopulation != 10000 {
		t.Errorf("budget_impact not parsed: %+v", sc.BudgetImpact)
	}

	therapies := sc.Therapies()
	if len(therapies) != 1 || therapies[0] != "psilocybin" {
		t.Errorf("therapies = %v, want [psilocybin]", therapies)
	}
}

func TestLoad_Defaults(t *testing.T) {
	minimal := `
name: minimal
baseline: a
strategies:
  - name: a
    effect: {dist: normal, mean: 1, sd: 0.1}
    cost: {dist: normal, mean: 10, sd: 1}
  - name: b
    effect: {dist: normal, mean: 1.2, sd: 0.1}
    cost: {dist: normal, mean: 20, sd: 2}
`
	sc, err := Load(writeScenario(t, minimal))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if sc.Draws != DefaultDraws {
		t.Errorf("draws = %d, want default %d", sc.Draws, DefaultDraws)
	}
	if len(sc.WTPGrid) != 11 || sc.WTPGrid[0] != 0 || sc.WTPGrid[10] != 100000 {
		t.Errorf("default WTP grid = %v", sc.WTPGrid)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing scenario file")
	}
}

func TestLoad_Malformed(t *testing.T) {
	if _, err := Load(writeScenario(t, "strategies: [not: {valid")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Scenario {
		return &Scenario{
			Name:     "t",
			Baseline: "a",
			Draws:    10,
			WTPGrid:  []float64{0},
			Strategies: []Strategy{
				{Name: "a"}, {Name: "b"},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Scenario)
		wantErr bool
	}{
		{"valid", func(*Scenario) {}, false},
		{"no name", func(s *Scenario) { s.Name = "" }, true},
		{"single strategy", func(s *Scenario) { s.Strategies = s.Strategies[:1] }, true},
		{"baseline absent", func(s *Scenario) { s.Baseline = "zzz" }, true},
		{"duplicate strategy", func(s *Scenario) { s.Strategies[1].Name = "a" }, true},
		{"negative wtp", func(s *Scenario) { s.WTPGrid = []float64{-1} }, true},
		{"zero draws", func(s *Scenario) { s.Draws = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := base()
			tt.mutate(sc)
			err := sc.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
