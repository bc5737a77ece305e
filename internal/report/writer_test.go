package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/openhta/ceaplane/internal/cea"
)

func TestAppendSection_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", SummaryFileName)

	if err := AppendSection(path, "## first\n"); err != nil {
		t.Fatalf("AppendSection failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("artifact not created: %v", err)
	}
	if string(data) != "## first\n" {
		t.Errorf("artifact content = %q", data)
	}
}

func TestAppendSection_NeverTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), SummaryFileName)

	s := cea.Summary{N: 2, SE: 0.5, NW: 0.5, Dominant: 1, Dominated: 1}
	section := SummarySection("psilocybin", "societal", s)

	// Writing the same summary twice results in two sections, not one
	// overwritten section.
	if err := AppendSection(path, section); err != nil {
		t.Fatalf("first append failed: %v", err)
	}
	if err := AppendSection(path, section); err != nil {
		t.Fatalf("second append failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), "## psilocybin (societal)"); got != 2 {
		t.Errorf("expected 2 accumulated sections, found %d", got)
	}
}

func TestSummarySection_Format(t *testing.T) {
	s := cea.Summary{
		N: 2, SE: 0.5, NW: 0.5, Dominant: 1, Dominated: 1,
	}

	got := SummarySection("psilocybin", "societal", s)

	for _, want := range []string{
		"## psilocybin (societal)",
		"draws (n): 2",
		"NE (more effective, more costly): 0.0%",
		"NW (less effective, more costly): 50.0%",
		"SE (more effective, less costly): 50.0%",
		"SW (less effective, less costly): 0.0%",
		"dominant: 1",
		"dominated: 1",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("section missing %q:\n%s", want, got)
		}
	}
}

func TestSummarySection_DegenerateFloor(t *testing.T) {
	got := SummarySection("ect", "health_system", cea.Summary{N: 1})

	if !strings.Contains(got, "draws (n): 1") {
		t.Errorf("degenerate section should report the floored n=1:\n%s", got)
	}
	if !strings.Contains(got, "NE (more effective, more costly): 0.0%") {
		t.Errorf("degenerate section should report zero proportions:\n%s", got)
	}
}

func TestDeltaStatsSection(t *testing.T) {
	deltas := []cea.Delta{
		{Draw: 1, DE: 0.1, DC: -100},
		{Draw: 2, DE: 0.2, DC: -200},
		{Draw: 3, DE: 0.3, DC: -300},
	}

	got := DeltaStatsSection(deltas)
	if !strings.Contains(got, "ΔE (QALYs) | 0.200") {
		t.Errorf("expected mean ΔE 0.200 in:\n%s", got)
	}
	if !strings.Contains(got, "-$200") {
		t.Errorf("expected mean ΔC -$200 in:\n%s", got)
	}

	if DeltaStatsSection(nil) != "" {
		t.Error("empty delta cloud must render no statistics")
	}
}
