// Package scenario loads and validates the YAML scenario files that drive a
// ceaplane run: strategies and their outcome distributions, the WTP grid,
// and the parameter blocks for the budget-impact, tornado and MCDA analyses.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the scenario file.
const (
	DefaultDraws = 1000
)

// DefaultWTPGrid spans $0 to $100k in $10k steps, the range psychiatric CEA
// publications conventionally plot.
func DefaultWTPGrid() []float64 {
	grid := make([]float64, 0, 11)
	for wtp := 0.0; wtp <= 100000; wtp += 10000 {
		grid = append(grid, wtp)
	}
	return grid
}

// Scenario is the top-level configuration for one (jurisdiction, comparison)
// analysis. Fields map 1:1 to the scenario YAML file.
type Scenario struct {
	// Name labels the run in reports and the run manifest.
	Name string `yaml:"name"`

	// Jurisdiction is a free-form label (e.g. "ontario", "australia").
	Jurisdiction string `yaml:"jurisdiction"`

	// Baseline is the comparator strategy every therapy is measured
	// against. It must name one of Strategies.
	Baseline string `yaml:"baseline"`

	// Draws is the Monte-Carlo sample size used by `ceaplane simulate`.
	Draws int `yaml:"draws"`

	// WTPGrid is the ascending willingness-to-pay grid for CEAC/CEAF and
	// value-of-information output.
	WTPGrid []float64 `yaml:"wtp_grid"`

	Strategies []Strategy `yaml:"strategies"`

	BudgetImpact *BudgetImpact `yaml:"budget_impact"`
	Tornado      *Tornado      `yaml:"tornado"`
	MCDA         *MCDA         `yaml:"mcda"`
}

// Strategy describes one treatment arm and its outcome distributions.
type Strategy struct {
	Name   string       `yaml:"name"`
	Effect Distribution `yaml:"effect"`
	Cost   Distribution `yaml:"cost"`
}

// Distribution selects a parametric sampling distribution.
// Kind is one of: normal | beta | gamma | lognormal.
type Distribution struct {
	Kind string `yaml:"dist"`

	// normal: Mean/SD. lognormal: Mu/Sigma on the log scale.
	Mean  float64 `yaml:"mean"`
	SD    float64 `yaml:"sd"`
	Mu    float64 `yaml:"mu"`
	Sigma float64 `yaml:"sigma"`

	// beta: Alpha/Beta, optionally rescaled by Scale (default 1).
	// gamma: Alpha (shape) / Beta (rate).
	Alpha float64 `yaml:"alpha"`
	Beta  float64 `yaml:"beta"`
	Scale float64 `yaml:"scale"`
}

// BudgetImpact mirrors bia.Inputs.
type BudgetImpact struct {
	EligiblePopulation int       `yaml:"eligible_population"`
	Uptake             []float64 `yaml:"uptake"`
	CostPerPatient     float64   `yaml:"cost_per_patient"`
	OffsetPerPatient   float64   `yaml:"offset_per_patient"`
}

// Tornado lists the one-way sensitivity parameters.
type Tornado struct {
	Parameters []TornadoParameter `yaml:"parameters"`
}

// TornadoParameter mirrors dsa.Parameter.
type TornadoParameter struct {
	Name string  `yaml:"name"`
	Low  float64 `yaml:"low"`
	Base float64 `yaml:"base"`
	High float64 `yaml:"high"`
}

// MCDA holds criterion weights and per-strategy criterion scores.
type MCDA struct {
	Weights      map[string]float64 `yaml:"weights"`
	Alternatives []MCDAAlternative  `yaml:"alternatives"`
}

// MCDAAlternative mirrors mcda.Alternative.
type MCDAAlternative struct {
	Name   string             `yaml:"name"`
	Scores map[string]float64 `yaml:"scores"`
}

// Load reads and validates a scenario file. A missing file is an error: a
// run without its scenario cannot proceed.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file %s: %w", path, err)
	}

	sc.applyDefaults()
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &sc, nil
}

func (s *Scenario) applyDefaults() {
	if s.Draws == 0 {
		s.Draws = DefaultDraws
	}
	if len(s.WTPGrid) == 0 {
		s.WTPGrid = DefaultWTPGrid()
	}
}

// Validate checks cross-field constraints. Distribution parameters are
// validated lazily by the sampler, which knows each kind's requirements.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Strategies) < 2 {
		return fmt.Errorf("at least two strategies are required, got %d", len(s.Strategies))
	}
	if s.Baseline == "" {
		return fmt.Errorf("baseline is required")
	}

	seen := make(map[string]bool, len(s.Strategies))
	for _, st := range s.Strategies {
		if st.Name == "" {
			return fmt.Errorf("strategy with empty name")
		}
		if seen[st.Name] {
			return fmt.Errorf("duplicate strategy %s", st.Name)
		}
		seen[st.Name] = true
	}
	if !seen[s.Baseline] {
		return fmt.Errorf("baseline %s is not among the strategies", s.Baseline)
	}

	if s.Draws <= 0 {
		return fmt.Errorf("draws must be positive, got %d", s.Draws)
	}
	for i, wtp := range s.WTPGrid {
		if wtp < 0 {
			return fmt.Errorf("wtp_grid[%d] = %v is negative", i, wtp)
		}
	}
	return nil
}

// Therapies returns every non-baseline strategy name, in file order.
func (s *Scenario) Therapies() []string {
	var out []string
	for _, st := range s.Strategies {
		if st.Name != s.Baseline {
			out = append(out, st.Name)
		}
	}
	return out
}
