// Package dsa implements one-way deterministic sensitivity analysis: each
// parameter is swung from its low to high bound while the rest stay at base
// values, and the resulting ICER excursions are ranked for a tornado display.
package dsa

import (
	"fmt"
	"math"
	"sort"
)

// Parameter is one input to the sensitivity analysis.
type Parameter struct {
	Name string
	Low  float64
	Base float64
	High float64
}

// Evaluator maps a full parameter assignment (name -> value) to an outcome,
// typically an ICER. Implementations must be pure.
type Evaluator func(values map[string]float64) float64

// Bar is the outcome excursion for one parameter.
type Bar struct {
	Name    string
	AtLow   float64
	AtHigh  float64
	Swing   float64 // |AtHigh − AtLow|
	BaseRun float64 // outcome with every parameter at base
}

// Run evaluates the one-way swings and returns bars sorted by descending
// swing, the conventional tornado ordering.
func Run(params []Parameter, eval Evaluator) ([]Bar, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("no parameters to vary")
	}
	for _, p := range params {
		if p.Low > p.High {
			return nil, fmt.Errorf("parameter %s: low %v exceeds high %v", p.Name, p.Low, p.High)
		}
	}

	base := make(map[string]float64, len(params))
	for _, p := range params {
		base[p.Name] = p.Base
	}
	baseline := eval(base)

	bars := make([]Bar, 0, len(params))
	for _, p := range params {
		atLow := evalWith(base, p.Name, p.Low, eval)
		atHigh := evalWith(base, p.Name, p.High, eval)

		bars = append(bars, Bar{
			Name:    p.Name,
			AtLow:   atLow,
			AtHigh:  atHigh,
			Swing:   math.Abs(atHigh - atLow),
			BaseRun: baseline,
		})
	}

	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Swing > bars[j].Swing
	})
	return bars, nil
}

// evalWith evaluates with a single parameter overridden, leaving the shared
// base assignment untouched.
func evalWith(base map[string]float64, name string, value float64, eval Evaluator) float64 {
	values := make(map[string]float64, len(base))
	for k, v := range base {
		values[k] = v
	}
	values[name] = value
	return eval(values)
}
