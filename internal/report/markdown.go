package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/montanaflynn/stats"

	"github.com/openhta/ceaplane/internal/bia"
	"github.com/openhta/ceaplane/internal/cea"
	"github.com/openhta/ceaplane/internal/ceac"
	"github.com/openhta/ceaplane/internal/dsa"
	"github.com/openhta/ceaplane/internal/mcda"
)

// SummarySection renders the quadrant summary fragment appended to the
// summary artifact: the draw count, the four quadrant percentages to one
// decimal place, and the two dominance counts.
func SummarySection(therapy, perspective string, s cea.Summary) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("\n## %s (%s)\n\n", therapy, perspective))
	sb.WriteString(fmt.Sprintf("- draws (n): %d\n", s.N))
	sb.WriteString(fmt.Sprintf("- NE (more effective, more costly): %.1f%%\n", s.NE*100))
	sb.WriteString(fmt.Sprintf("- NW (less effective, more costly): %.1f%%\n", s.NW*100))
	sb.WriteString(fmt.Sprintf("- SE (more effective, less costly): %.1f%%\n", s.SE*100))
	sb.WriteString(fmt.Sprintf("- SW (less effective, less costly): %.1f%%\n", s.SW*100))
	sb.WriteString(fmt.Sprintf("- dominant: %d\n", s.Dominant))
	sb.WriteString(fmt.Sprintf("- dominated: %d\n", s.Dominated))

	return sb.String()
}

// DeltaStatsSection renders descriptive statistics for a delta cloud: mean
// and 95% credible interval for both increments. Returns an empty string
// for an empty cloud rather than fabricating numbers.
func DeltaStatsSection(deltas []cea.Delta) string {
	if len(deltas) == 0 {
		return ""
	}

	de := make([]float64, len(deltas))
	dc := make([]float64, len(deltas))
	for i, d := range deltas {
		de[i] = d.DE
		dc[i] = d.DC
	}

	var sb strings.Builder
	sb.WriteString("\n| increment | mean | 95% CrI |\n")
	sb.WriteString("|---|---|---|\n")
	sb.WriteString(fmt.Sprintf("| ΔE (QALYs) | %.3f | %s |\n", mean(de), credibleInterval(de, "%.3f")))
	sb.WriteString(fmt.Sprintf("| ΔC | %s | %s |\n", money(mean(dc)), moneyInterval(dc)))
	return sb.String()
}

// CEACSection renders the acceptability curve as a markdown table, one row
// per WTP threshold with the frontier strategy flagged.
func CEACSection(curve ceac.Curve, strategies []string) string {
	var sb strings.Builder

	sb.WriteString("\n## Cost-effectiveness acceptability\n\n")
	sb.WriteString("| WTP | ")
	for _, s := range strategies {
		sb.WriteString(s + " | ")
	}
	sb.WriteString("frontier |\n|---|")
	sb.WriteString(strings.Repeat("---|", len(strategies)+1))
	sb.WriteString("\n")

	for _, p := range curve {
		sb.WriteString(fmt.Sprintf("| %s | ", money(p.WTP)))
		for _, s := range strategies {
			sb.WriteString(fmt.Sprintf("%.1f%% | ", p.Probability[s]*100))
		}
		sb.WriteString(p.Frontier + " |\n")
	}
	return sb.String()
}

// BIASection renders the budget-impact horizon table.
func BIASection(res *bia.Result) string {
	var sb strings.Builder

	sb.WriteString("\n## Budget impact")
	if res.Jurisdiction != "" {
		sb.WriteString(" — " + res.Jurisdiction)
	}
	sb.WriteString("\n\n| year | treated | gross | offset | net |\n|---|---|---|---|---|\n")

	for _, y := range res.Years {
		sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s |\n",
			y.Year,
			humanize.Comma(int64(y.Treated)),
			money(y.GrossCost),
			money(y.Offset),
			money(y.Net)))
	}
	sb.WriteString(fmt.Sprintf("\nCumulative net impact: %s\n", money(res.CumulativeNet)))
	return sb.String()
}

// TornadoSection renders the one-way sensitivity bars, widest first.
func TornadoSection(bars []dsa.Bar) string {
	var sb strings.Builder

	sb.WriteString("\n## One-way sensitivity (tornado)\n\n")
	sb.WriteString("| parameter | at low | at high | swing |\n|---|---|---|---|\n")
	for _, b := range bars {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			b.Name, money(b.AtLow), money(b.AtHigh), money(b.Swing)))
	}
	if len(bars) > 0 {
		sb.WriteString(fmt.Sprintf("\nBase-case result: %s\n", money(bars[0].BaseRun)))
	}
	return sb.String()
}

// VoISection renders the per-threshold EVPI values.
func VoISection(evpi map[float64]float64, grid []float64) string {
	var sb strings.Builder

	sb.WriteString("\n## Expected value of perfect information\n\n")
	sb.WriteString("| WTP | EVPI per person |\n|---|---|\n")
	for _, wtp := range grid {
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", money(wtp), money(evpi[wtp])))
	}
	return sb.String()
}

// MCDASection renders the weighted scores and the Pareto frontier.
func MCDASection(ranked []mcda.Ranked, frontier []mcda.Alternative) string {
	var sb strings.Builder

	sb.WriteString("\n## Multi-criteria decision analysis\n\n")
	sb.WriteString("| strategy | weighted score |\n|---|---|\n")
	for _, r := range ranked {
		sb.WriteString(fmt.Sprintf("| %s | %.3f |\n", r.Name, r.Total))
	}

	if len(frontier) > 0 {
		names := make([]string, len(frontier))
		for i, a := range frontier {
			names[i] = a.Name
		}
		sb.WriteString(fmt.Sprintf("\nPareto frontier: %s\n", strings.Join(names, ", ")))
	}
	return sb.String()
}

func mean(xs []float64) float64 {
	m, _ := stats.Mean(xs)
	return m
}

func credibleInterval(xs []float64, format string) string {
	lo, _ := stats.Percentile(xs, 2.5)
	hi, _ := stats.Percentile(xs, 97.5)
	return fmt.Sprintf("("+format+", "+format+")", lo, hi)
}

func moneyInterval(xs []float64) string {
	lo, _ := stats.Percentile(xs, 2.5)
	hi, _ := stats.Percentile(xs, 97.5)
	return fmt.Sprintf("(%s, %s)", money(lo), money(hi))
}

// money renders a currency amount with thousands separators and a sign.
func money(v float64) string {
	if v < 0 {
		return "-$" + humanize.CommafWithDigits(-v, 2)
	}
	return "$" + humanize.CommafWithDigits(v, 2)
}
