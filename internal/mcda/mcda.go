// Package mcda implements multi-criteria decision analysis for treatment
// strategies: weighted-sum scoring over named criteria plus a strict
// Pareto dominance frontier.
package mcda

import (
	"fmt"
	"sort"
)

// Alternative is one strategy scored across criteria. All criteria are
// oriented so that higher is better; callers invert cost-like criteria
// before scoring.
type Alternative struct {
	Name   string
	Scores map[string]float64
}

// Ranked is one alternative's weighted total.
type Ranked struct {
	Name  string
	Total float64
}

// Score computes weighted-sum totals. Weights are normalized to sum to 1
// before applying, so only their relative magnitudes matter. Every
// alternative must carry a score for every weighted criterion.
func Score(alts []Alternative, weights map[string]float64) ([]Ranked, error) {
	if len(alts) == 0 {
		return nil, fmt.Errorf("no alternatives to score")
	}
	if len(weights) == 0 {
		return nil, fmt.Errorf("no criterion weights given")
	}

	var weightSum float64
	for name, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("criterion %s: negative weight %v", name, w)
		}
		weightSum += w
	}
	if weightSum == 0 {
		return nil, fmt.Errorf("criterion weights sum to zero")
	}

	ranked := make([]Ranked, 0, len(alts))
	for _, alt := range alts {
		total := 0.0
		for name, w := range weights {
			score, ok := alt.Scores[name]
			if !ok {
				return nil, fmt.Errorf("alternative %s is missing criterion %s", alt.Name, name)
			}
			total += score * w / weightSum
		}
		ranked = append(ranked, Ranked{Name: alt.Name, Total: total})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total > ranked[j].Total
	})
	return ranked, nil
}

// Frontier returns the Pareto-optimal alternatives over the given criteria:
// those not dominated by any other. A dominates B when A is >= B on every
// criterion and strictly better on at least one. O(n²) dominance check,
// fine for the handful of strategies a CEA compares.
func Frontier(alts []Alternative, criteria []string) []Alternative {
	if len(alts) <= 1 {
		return alts
	}

	var frontier []Alternative
	for i := range alts {
		dominated := false
		for j := range alts {
			if i == j {
				continue
			}
			if dominates(alts[j], alts[i], criteria) {
				dominated = true
				break
			}
		}
		if !dominated {
			frontier = append(frontier, alts[i])
		}
	}
	return frontier
}

// dominates returns true if a dominates b on the given criteria.
func dominates(a, b Alternative, criteria []string) bool {
	strictlyBetter := false
	for _, c := range criteria {
		av, bv := a.Scores[c], b.Scores[c]
		if av < bv {
			return false
		}
		if av > bv {
			strictlyBetter = true
		}
	}
	return strictlyBetter
}
