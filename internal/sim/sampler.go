// Package sim generates PSA draw tables from a scenario's outcome
// distributions. It stands in for the upstream sampling stage when no
// external draw CSV is available.
//
// Sampling is quantile-coupled: each draw index uses one shared uniform for
// effects and one for costs across every strategy, so strategies are
// comonotonic within a draw and per-draw incremental comparisons stay
// meaningful. The seed is an explicit parameter threaded from the CLI; there
// is no process-global RNG state.
package sim

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/openhta/ceaplane/internal/cea"
	"github.com/openhta/ceaplane/internal/scenario"
)

// quantiler is the slice of distuv behavior the sampler needs.
type quantiler interface {
	Quantile(p float64) float64
}

// scaled rescales a unit-interval distribution (beta) to a wider support.
type scaled struct {
	q     quantiler
	scale float64
}

func (s scaled) Quantile(p float64) float64 { return s.q.Quantile(p) * s.scale }

// Sample generates a draw table for every strategy in the scenario.
// Identical (scenario, seed) pairs always produce identical tables.
func Sample(sc *scenario.Scenario, seed uint64) (cea.Table, error) {
	type arm struct {
		name   string
		effect quantiler
		cost   quantiler
	}

	arms := make([]arm, 0, len(sc.Strategies))
	for _, st := range sc.Strategies {
		effect, err := build(st.Effect)
		if err != nil {
			return nil, fmt.Errorf("strategy %s effect: %w", st.Name, err)
		}
		cost, err := build(st.Cost)
		if err != nil {
			return nil, fmt.Errorf("strategy %s cost: %w", st.Name, err)
		}
		arms = append(arms, arm{name: st.Name, effect: effect, cost: cost})
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	table := make(cea.Table, 0, sc.Draws*len(arms))
	for draw := 1; draw <= sc.Draws; draw++ {
		uEffect := rng.Float64()
		uCost := rng.Float64()
		for _, a := range arms {
			table = append(table, cea.Record{
				Draw:     draw,
				Strategy: a.name,
				Effect:   a.effect.Quantile(uEffect),
				Cost:     a.cost.Quantile(uCost),
			})
		}
	}
	return table, nil
}

// build maps a scenario distribution spec onto a gonum distuv distribution.
func build(d scenario.Distribution) (quantiler, error) {
	switch d.Kind {
	case "normal":
		if d.SD <= 0 {
			return nil, fmt.Errorf("normal: sd must be positive, got %v", d.SD)
		}
		return distuv.Normal{Mu: d.Mean, Sigma: d.SD}, nil

	case "beta":
		if d.Alpha <= 0 || d.Beta <= 0 {
			return nil, fmt.Errorf("beta: alpha and beta must be positive, got %v/%v", d.Alpha, d.Beta)
		}
		dist := distuv.Beta{Alpha: d.Alpha, Beta: d.Beta}
		if d.Scale != 0 && d.Scale != 1 {
			return scaled{q: dist, scale: d.Scale}, nil
		}
		return dist, nil

	case "gamma":
		if d.Alpha <= 0 || d.Beta <= 0 {
			return nil, fmt.Errorf("gamma: shape and rate must be positive, got %v/%v", d.Alpha, d.Beta)
		}
		return distuv.Gamma{Alpha: d.Alpha, Beta: d.Beta}, nil

	case "lognormal":
		if d.Sigma <= 0 {
			return nil, fmt.Errorf("lognormal: sigma must be positive, got %v", d.Sigma)
		}
		return distuv.LogNormal{Mu: d.Mu, Sigma: d.Sigma}, nil

	case "":
		return nil, fmt.Errorf("dist is required (normal | beta | gamma | lognormal)")

	default:
		return nil, fmt.Errorf("unknown distribution %q", d.Kind)
	}
}
