// Package ceac derives cost-effectiveness acceptability curves and the
// acceptability frontier from a multi-strategy PSA draw table.
package ceac

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/openhta/ceaplane/internal/cea"
)

// Point is the acceptability result for one willingness-to-pay threshold.
type Point struct {
	WTP float64

	// Probability maps strategy -> fraction of draws where that strategy
	// has the strictly highest net monetary benefit. A draw whose maximum
	// is tied counts for no strategy, mirroring the strict-inequality
	// quadrant classification in the plane summary.
	Probability map[string]float64

	// Frontier is the strategy with the highest mean NMB at this
	// threshold, and FrontierProb its acceptability probability.
	Frontier     string
	FrontierProb float64
}

// Curve is the acceptability result across an ascending WTP grid.
type Curve []Point

// Compute builds the CEAC/CEAF over the given WTP grid.
//
// Only draws present for every strategy participate; partial draws are
// dropped the same inner-join way ComputeDeltas drops them. Returns an
// error when the table holds fewer than two strategies or when no draw is
// shared by all of them.
func Compute(table cea.Table, wtpGrid []float64) (Curve, error) {
	strategies := table.Strategies()
	if len(strategies) < 2 {
		return nil, fmt.Errorf("acceptability needs at least two strategies, got %d", len(strategies))
	}

	// strategy -> draw -> record
	byStrategy := make(map[string]map[int]cea.Record, len(strategies))
	for _, s := range strategies {
		byStrategy[s] = make(map[int]cea.Record)
	}
	for _, r := range table {
		byStrategy[r.Strategy][r.Draw] = r
	}

	draws := commonDraws(byStrategy, strategies)
	if len(draws) == 0 {
		return nil, fmt.Errorf("no draw is shared by all %d strategies", len(strategies))
	}

	grid := append([]float64(nil), wtpGrid...)
	sort.Float64s(grid)

	curve := make(Curve, 0, len(grid))
	for _, wtp := range grid {
		curve = append(curve, pointAt(byStrategy, strategies, draws, wtp))
	}
	return curve, nil
}

// commonDraws returns the ascending draw indexes present for every strategy.
func commonDraws(byStrategy map[string]map[int]cea.Record, strategies []string) []int {
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
	sort.Ints(draws)
	return draws
}

func pointAt(byStrategy map[string]map[int]cea.Record, strategies []string, draws []int, wtp float64) Point {
	wins := make(map[string]int, len(strategies))
	nmbByStrategy := make(map[string][]float64, len(strategies))

	for _, draw := range draws {
		best := ""
		bestNMB := 0.0
		tied := false
		for _, s := range strategies {
			r := byStrategy[s][draw]
			nmb := wtp*r.Effect - r.Cost
			nmbByStrategy[s] = append(nmbByStrategy[s], nmb)
			switch {
			case best == "" || nmb > bestNMB:
				best, bestNMB, tied = s, nmb, false
			case nmb == bestNMB:
				tied = true
			}
		}
		if !tied {
			wins[best]++
		}
	}

	p := Point{
		WTP:         wtp,
		Probability: make(map[string]float64, len(strategies)),
	}
	n := float64(len(draws))
	for _, s := range strategies {
		p.Probability[s] = float64(wins[s]) / n
	}

	// Frontier: highest mean NMB. Ties resolve to the strategy appearing
	// first in the table, which is deterministic for a given input.
	bestMean := 0.0
	for _, s := range strategies {
		mean := stat.Mean(nmbByStrategy[s], nil)
		if p.Frontier == "" || mean > bestMean {
			p.Frontier, bestMean = s, mean
		}
	}
	p.FrontierProb = p.Probability[p.Frontier]
	return p
}
