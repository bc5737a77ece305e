// Package voi computes value-of-information measures from a PSA draw table:
// the expected value of perfect information (EVPI) and a binned estimator of
// the expected value of partial perfect information (EVPPI).
package voi

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/openhta/ceaplane/internal/cea"
)

// nmbMatrix holds per-draw net monetary benefit for each strategy, restricted
// to draws shared by all strategies.
type nmbMatrix struct {
	strategies []string
	draws      []int
	// values[strategyIndex][drawIndex]
	values [][]float64
}

func buildMatrix(table cea.Table, wtp float64) (*nmbMatrix, error) {
	strategies := table.Strategies()
	if len(strategies) < 2 {
		return nil, fmt.Errorf("value of information needs at least two strategies, got %d", len(strategies))
	}

	byStrategy := make(map[string]map[int]cea.Record, len(strategies))
	for _, s := range strategies {
		byStrategy[s] = make(map[int]cea.Record)
	}
	for _, r := range table {
		byStrategy[r.Strategy][r.Draw] = r
	}

	var draws []int
	for draw := range byStrategy[strategies[0]] {
		shared := true
		for _, s := range strategies[1:] {
			if _, ok := byStrategy[s][draw]; !ok {
				shared = false
				break
			}
		}
		if shared {
			draws = append(draws, draw)
		}
	}
	if len(draws) == 0 {
		return nil, fmt.Errorf("no draw is shared by all strategies")
	}
	sort.Ints(draws)

	m := &nmbMatrix{strategies: strategies, draws: draws}
	for _, s := range strategies {
		row := make([]float64, len(draws))
		for i, draw := range draws {
			r := byStrategy[s][draw]
			row[i] = wtp*r.Effect - r.Cost
		}
		m.values = append(m.values, row)
	}
	return m, nil
}

// EVPI returns the per-person expected value of perfect information at the
// given willingness-to-pay threshold:
//
//	mean over draws of (max over strategies) − max over strategies of (mean over draws)
//
// Non-negative by Jensen's inequality; zero when one strategy wins every draw.
func EVPI(table cea.Table, wtp float64) (float64, error) {
	m, err := buildMatrix(table, wtp)
	if err != nil {
		return 0, err
	}
	return evpiFromMatrix(m), nil
}

func evpiFromMatrix(m *nmbMatrix) float64 {
	nDraws := len(m.draws)

	meanOfMax := 0.0
	for i := 0; i < nDraws; i++ {
		best := m.values[0][i]
		for s := 1; s < len(m.strategies); s++ {
			if m.values[s][i] > best {
				best = m.values[s][i]
			}
		}
		meanOfMax += best
	}
	meanOfMax /= float64(nDraws)

	maxOfMean := stat.Mean(m.values[0], nil)
	for s := 1; s < len(m.strategies); s++ {
		if mean := stat.Mean(m.values[s], nil); mean > maxOfMean {
			maxOfMean = mean
		}
	}

	return meanOfMax - maxOfMean
}

// EVPPI estimates the per-person expected value of perfect information about
// a single parameter via the binning estimator: draws are sorted by the
// parameter value, partitioned into bins, and within each bin the parameter
// is treated as known while everything else keeps its PSA uncertainty.
//
// param maps draw index -> parameter value; draws absent from the map are
// dropped. bins must be at least 2 and no greater than the usable draw count.
func EVPPI(table cea.Table, wtp float64, param map[int]float64, bins int) (float64, error) {
	if bins < 2 {
		return 0, fmt.Errorf("bins must be at least 2, got %d", bins)
	}

	m, err := buildMatrix(table, wtp)
	if err != nil {
		return 0, err
	}

	// Restrict to draws with a known parameter value, ordered by it.
	type drawVal struct {
		idx int // column in the matrix
		val float64
	}
	var usable []drawVal
	for i, draw := range m.draws {
		if v, ok := param[draw]; ok {
			usable = append(usable, drawVal{idx: i, val: v})
		}
	}
	if len(usable) < bins {
		return 0, fmt.Errorf("only %d draws carry the parameter, need at least %d for %d bins",
			len(usable), bins, bins)
	}
	sort.Slice(usable, func(i, j int) bool { return usable[i].val < usable[j].val })

	// mean of per-bin max of per-bin strategy means
	meanOfBinMax := 0.0
	binSize := len(usable) / bins
	counted := 0
	for b := 0; b < bins; b++ {
		lo := b * binSize
		hi := lo + binSize
		if b == bins-1 {
			hi = len(usable) // last bin absorbs the remainder
		}

		binBest := 0.0
		for s := range m.strategies {
			sum := 0.0
			for _, dv := range usable[lo:hi] {
				sum += m.values[s][dv.idx]
			}
			mean := sum / float64(hi-lo)
			if s == 0 || mean > binBest {
				binBest = mean
			}
		}
		meanOfBinMax += binBest * float64(hi-lo)
		counted += hi - lo
	}
	meanOfBinMax /= float64(counted)

	// max of overall strategy means, over the same usable draws
	maxOfMean := 0.0
	for s := range m.strategies {
		sum := 0.0
		for _, dv := range usable {
			sum += m.values[s][dv.idx]
		}
		mean := sum / float64(len(usable))
		if s == 0 || mean > maxOfMean {
			maxOfMean = mean
		}
	}

	evppi := meanOfBinMax - maxOfMean
	if evppi < 0 {
		evppi = 0 // estimator noise; the true quantity is non-negative
	}
	return evppi, nil
}

// Population scales a per-person value to a population figure over a horizon
// of years, with simple per-year discounting.
func Population(perPerson float64, population int, years int, discount float64) float64 {
	total := 0.0
	factor := 1.0
	for y := 0; y < years; y++ {
		total += perPerson * float64(population) / factor
		factor *= 1 + discount
	}
	return total
}
