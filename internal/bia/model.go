// Package bia implements a deterministic budget-impact model: the net cost
// to a payer of introducing a therapy for an eligible population over a
// multi-year horizon with a configurable uptake ramp.
package bia

import "fmt"

// Inputs holds the budget-impact parameters for one jurisdiction.
type Inputs struct {
	Jurisdiction string

	// EligiblePopulation is the number of patients eligible for the
	// therapy each year.
	EligiblePopulation int

	// Uptake is the fraction of the eligible population treated in each
	// horizon year. Its length fixes the horizon.
	Uptake []float64

	// CostPerPatient is the per-patient cost of the new therapy;
	// OffsetPerPatient is the per-patient cost of the displaced care it
	// replaces.
	CostPerPatient   float64
	OffsetPerPatient float64
}

// YearImpact is the budget impact of one horizon year.
type YearImpact struct {
	Year      int // 1-based
	Treated   int
	GrossCost float64
	Offset    float64
	Net       float64
}

// Result is the full horizon projection.
type Result struct {
	Jurisdiction  string
	Years         []YearImpact
	CumulativeNet float64
}

// Run projects the budget impact across the horizon. It fails fast on
// malformed inputs; this is a single-shot batch computation with no partial
// recovery.
func Run(in Inputs) (*Result, error) {
	if in.EligiblePopulation <= 0 {
		return nil, fmt.Errorf("eligible population must be positive, got %d", in.EligiblePopulation)
	}
	if len(in.Uptake) == 0 {
		return nil, fmt.Errorf("uptake ramp is empty; horizon must be at least one year")
	}
	for i, u := range in.Uptake {
		if u < 0 || u > 1 {
			return nil, fmt.Errorf("uptake[%d] = %v out of range [0,1]", i, u)
		}
	}
	if in.CostPerPatient < 0 || in.OffsetPerPatient < 0 {
		return nil, fmt.Errorf("per-patient costs must be non-negative")
	}

	res := &Result{Jurisdiction: in.Jurisdiction}
	for i, u := range in.Uptake {
		treated := int(float64(in.EligiblePopulation) * u)
		gross := float64(treated) * in.CostPerPatient
		offset := float64(treated) * in.OffsetPerPatient

		y := YearImpact{
			Year:      i + 1,
			Treated:   treated,
			GrossCost: gross,
			Offset:    offset,
			Net:       gross - offset,
		}
		res.Years = append(res.Years, y)
		res.CumulativeNet += y.Net
	}

	return res, nil
}
