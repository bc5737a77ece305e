// Package output provides terminal output utilities for ceaplane.
//
// Table rendering uses ASCII characters and ANSI color codes; colors are
// emitted only when stdout is a TTY and NO_COLOR is unset, so piped and CI
// output stays plain.
package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/openhta/ceaplane/internal/cea"
	"github.com/openhta/ceaplane/internal/ceac"
	"github.com/openhta/ceaplane/internal/store"
)

// ANSI color codes for quadrant emphasis.
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// RenderQuadrantTable renders one quadrant summary as a compact terminal
// block. Dominance is highlighted: mostly-dominant therapies green,
// mostly-dominated red.
func RenderQuadrantTable(therapy, perspective string, s cea.Summary) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Therapy:     %s (%s)\n", therapy, perspective))
	sb.WriteString(fmt.Sprintf("Draws:       %s\n", humanize.Comma(int64(s.N))))
	sb.WriteString(strings.Repeat("─", 44))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%-36s %6.1f%%\n", "NE  more effective, more costly", s.NE*100))
	sb.WriteString(fmt.Sprintf("%-36s %6.1f%%\n", "NW  less effective, more costly", s.NW*100))
	sb.WriteString(fmt.Sprintf("%-36s %6.1f%%\n", "SE  more effective, less costly", s.SE*100))
	sb.WriteString(fmt.Sprintf("%-36s %6.1f%%\n", "SW  less effective, less costly", s.SW*100))

	dominant := fmt.Sprintf("%d", s.Dominant)
	dominated := fmt.Sprintf("%d", s.Dominated)
	if s.Dominant > s.Dominated {
		dominant = colorize(colorGreen, dominant)
	} else if s.Dominated > s.Dominant {
		dominated = colorize(colorRed, dominated)
	}
	sb.WriteString(fmt.Sprintf("Dominant: %s · Dominated: %s\n", dominant, dominated))

	if s.Empty() {
		sb.WriteString(colorize(colorYellow,
			"Warning: empty delta cloud; n floored to 1. Check the upstream join.\n"))
	}
	return sb.String()
}

// RenderCEACTable renders the acceptability curve with the frontier
// strategy per threshold.
func RenderCEACTable(curve ceac.Curve, strategies []string) string {
	if len(curve) == 0 {
		return "No acceptability points computed.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-12s", "WTP"))
	for _, s := range strategies {
		sb.WriteString(fmt.Sprintf(" %-14s", truncate(s, 14)))
	}
	sb.WriteString(" Frontier\n")
	sb.WriteString(strings.Repeat("─", 14+15*len(strategies)+9))
	sb.WriteString("\n")

	for _, p := range curve {
		sb.WriteString(fmt.Sprintf("%-12s", "$"+humanize.Commaf(p.WTP)))
		for _, s := range strategies {
			sb.WriteString(fmt.Sprintf(" %-14s", fmt.Sprintf("%.1f%%", p.Probability[s]*100)))
		}
		sb.WriteString(" " + colorize(colorGreen, p.Frontier) + "\n")
	}
	return sb.String()
}

// RenderRunTable renders recorded runs, newest first.
func RenderRunTable(runs []*store.Run) string {
	if len(runs) == 0 {
		return "No runs recorded.\n"
	}

	sorted := make([]*store.Run, len(runs))
	copy(sorted, runs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-38s %-22s %-14s %-8s %s\n",
		"Run", "Scenario", "Perspective", "Seed", "Created"))
	sb.WriteString(strings.Repeat("─", 100))
	sb.WriteString("\n")

	for _, r := range sorted {
		sb.WriteString(fmt.Sprintf("%-38s %-22s %-14s %-8d %s\n",
			r.ID,
			truncate(r.Scenario, 22),
			r.Perspective,
			r.Seed,
			formatRelativeTime(r.CreatedAt)))
	}
	return sb.String()
}

// formatRelativeTime converts a timestamp to relative time (e.g., "2 days ago").
func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.Time(t)
}

// truncate truncates a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
