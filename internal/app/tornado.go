package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openhta/ceaplane/internal/dsa"
	"github.com/openhta/ceaplane/internal/report"
	"github.com/openhta/ceaplane/internal/scenario"
)

var (
	tornadoScenario string
	tornadoAppend   bool

	tornadoCmd = &cobra.Command{
		Use:   "tornado",
		Short: "One-way deterministic sensitivity analysis",
		Long: `Swing each parameter in the scenario's tornado block from its low to high
bound, holding the others at base, and rank the ICER excursions.

The outcome is the ICER built from the parameter names: parameters prefixed
"cost" sum to the numerator, parameters prefixed "effect" sum to the
denominator. The block must contain at least one of each.`,
		Example: `  ceaplane tornado --scenario ontario.yaml
  ceaplane tornado --scenario ontario.yaml --append`,
		RunE: runTornado,
	}
)

func init() {
	tornadoCmd.Flags().StringVar(&tornadoScenario, "scenario", "", "scenario YAML file (required)")
	tornadoCmd.Flags().BoolVar(&tornadoAppend, "append", false, "append the bars to the markdown artifact")
	tornadoCmd.MarkFlagRequired("scenario")
}

func runTornado(cmd *cobra.Command, args []string) error {
	sc, err := scenario.Load(tornadoScenario)
	if err != nil {
		return err
	}
	if sc.Tornado == nil || len(sc.Tornado.Parameters) == 0 {
		return fmt.Errorf("scenario %s has no tornado parameters", sc.Name)
	}

	params := make([]dsa.Parameter, 0, len(sc.Tornado.Parameters))
	for _, p := range sc.Tornado.Parameters {
		params = append(params, dsa.Parameter{Name: p.Name, Low: p.Low, Base: p.Base, High: p.High})
	}

	eval, err := icerEvaluator(params)
	if err != nil {
		return err
	}

	bars, err := dsa.Run(params, eval)
	if err != nil {
		return fmt.Errorf("sensitivity analysis for %s: %w", sc.Name, err)
	}

	section := report.TornadoSection(bars)
	fmt.Print(section)

	if tornadoAppend {
		return report.AppendSection(summaryArtifactPath(), section)
	}
	return nil
}

// icerEvaluator builds the ICER outcome from parameter naming: cost-prefixed
// parameters sum to incremental cost, effect-prefixed to incremental effect.
func icerEvaluator(params []dsa.Parameter) (dsa.Evaluator, error) {
	var hasCost, hasEffect bool
	for _, p := range params {
		switch {
		case strings.HasPrefix(p.Name, "cost"):
			hasCost = true
		case strings.HasPrefix(p.Name, "effect"):
			hasEffect = true
		}
	}
	if !hasCost || !hasEffect {
		return nil, fmt.Errorf("tornado parameters need at least one cost-prefixed and one effect-prefixed name to form an ICER")
	}

	return func(values map[string]float64) float64 {
		var cost, effect float64
		for name, v := range values {
			switch {
			case strings.HasPrefix(name, "cost"):
				cost += v
			case strings.HasPrefix(name, "effect"):
				effect += v
			}
		}
		if effect == 0 {
			return 0
		}
		return cost / effect
	}, nil
}
