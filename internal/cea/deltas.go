package cea

import "sort"

// ComputeDeltas derives the per-draw incremental effect and cost of a
// therapy relative to a baseline strategy.
//
// The join is an inner join on draw index: a draw present for only one of
// the two strategies is silently dropped. Rows belonging to any other
// strategy are ignored. If either strategy is entirely absent the result is
// empty — downstream summarization handles that without failing.
//
// The result is ordered by ascending draw so identical input always yields
// identical output.
func ComputeDeltas(table Table, baseline, therapy string) []Delta {
	baseEffect := make(map[int]float64)
	baseCost := make(map[int]float64)
	for _, r := range table {
		if r.Strategy == baseline {
			baseEffect[r.Draw] = r.Effect
			baseCost[r.Draw] = r.Cost
		}
	}

	var deltas []Delta
	for _, r := range table {
		if r.Strategy != therapy {
			continue
		}
		be, ok := baseEffect[r.Draw]
		if !ok {
			continue // no baseline counterpart for this draw
		}
		deltas = append(deltas, Delta{
			Draw: r.Draw,
			DE:   r.Effect - be,
			DC:   r.Cost - baseCost[r.Draw],
		})
	}

	sort.Slice(deltas, func(i, j int) bool {
		return deltas[i].Draw < deltas[j].Draw
	})

	return deltas
}
