package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setDeltasFlags swaps the package-level deltas flag state for one test.
func setDeltasFlags(t *testing.T, draws, baseline string, therapies []string, perspective string) {
	t.Helper()

	oldDraws, oldBaseline := deltasDraws, deltasBaseline
	oldTherapies, oldPerspective := deltasTherapies, deltasPerspective
	oldRoot := rootDir
	t.Cleanup(func() {
		deltasDraws, deltasBaseline = oldDraws, oldBaseline
		deltasTherapies, deltasPerspective = oldTherapies, oldPerspective
		rootDir = oldRoot
	})

	deltasDraws = draws
	deltasBaseline = baseline
	deltasTherapies = therapies
	deltasPerspective = perspective
	rootDir = t.TempDir()
}

func writeDrawCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "draws.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const twoArmDraws = `draw,strategy,effect,cost
1,ect,0.5,10000
1,psilocybin,0.7,9000
2,ect,0.6,11000
2,psilocybin,0.5,12000
`

func TestRunDeltas_WritesPerTherapyArtifacts(t *testing.T) {
	draws := writeDrawCSV(t, twoArmDraws)
	setDeltasFlags(t, draws, "ect", nil, "societal")

	if err := runDeltas(deltasCmd, nil); err != nil {
		t.Fatalf("runDeltas: %v", err)
	}

	path := filepath.Join(rootDir, "ce_plane", "psilocybin", "deltas.csv")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("delta artifact not written: %v", err)
	}

	content := string(data)
	if !strings.HasPrefix(content, "draw,dE,dC\n") {
		t.Errorf("unexpected header in %q", content)
	}
	if !strings.Contains(content, "1,") || !strings.Contains(content, "2,") {
		t.Errorf("expected both draws in artifact:\n%s", content)
	}
}

func TestRunDeltas_HealthSystemDirectory(t *testing.T) {
	draws := writeDrawCSV(t, twoArmDraws)
	setDeltasFlags(t, draws, "ect", []string{"psilocybin"}, "health_system")

	if err := runDeltas(deltasCmd, nil); err != nil {
		t.Fatalf("runDeltas: %v", err)
	}

	path := filepath.Join(rootDir, "ce_plane_health_system", "psilocybin", "deltas.csv")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected health-system artifact at %s: %v", path, err)
	}
}

func TestRunDeltas_RejectsPerspectiveBeforeIO(t *testing.T) {
	// The draws path does not exist; a perspective error proves validation
	// ran before any file was opened.
	setDeltasFlags(t, "/nonexistent/draws.csv", "ect", nil, "payer")

	err := runDeltas(deltasCmd, nil)
	if err == nil {
		t.Fatal("expected error for unknown perspective")
	}
	if !strings.Contains(err.Error(), "perspective") {
		t.Errorf("expected a perspective error, got: %v", err)
	}
}

func TestRunDeltas_UnknownBaseline(t *testing.T) {
	draws := writeDrawCSV(t, twoArmDraws)
	setDeltasFlags(t, draws, "ketamine", nil, "societal")

	if err := runDeltas(deltasCmd, nil); err == nil {
		t.Error("expected error for baseline absent from the draw table")
	}
}

func TestRunDeltas_TherapyEqualsBaseline(t *testing.T) {
	draws := writeDrawCSV(t, twoArmDraws)
	setDeltasFlags(t, draws, "ect", []string{"ect"}, "societal")

	if err := runDeltas(deltasCmd, nil); err == nil {
		t.Error("expected error when the therapy is the baseline")
	}
}
