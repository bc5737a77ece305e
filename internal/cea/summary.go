package cea

// Summarize classifies each delta into a cost-effectiveness plane quadrant
// and returns aggregate proportions plus dominance counts.
//
// Classification uses strict inequalities: a draw with DE == 0 or DC == 0
// belongs to no quadrant. It is still counted in N, so the four proportions
// sum to at most 1.
//
// N is floored at 1 so an empty delta cloud produces an all-zero summary
// instead of dividing by zero. That keeps report generation non-fatal when
// the upstream join yielded nothing, but the degenerate output must not be
// mistaken for a valid zero-variance result — check Summary.Empty.
func Summarize(deltas []Delta) Summary {
	n := len(deltas)
	if n < 1 {
		n = 1
	}

	var ne, nw, se, sw int
	for _, d := range deltas {
		switch {
		case d.DE > 0 && d.DC > 0:
			ne++
		case d.DE < 0 && d.DC > 0:
			nw++
		case d.DE > 0 && d.DC < 0:
			se++
		case d.DE < 0 && d.DC < 0:
			sw++
		}
	}

	return Summary{
		N:         n,
		NE:        float64(ne) / float64(n),
		NW:        float64(nw) / float64(n),
		SE:        float64(se) / float64(n),
		SW:        float64(sw) / float64(n),
		Dominant:  se,
		Dominated: nw,
	}
}
