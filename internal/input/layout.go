package input

import (
	"fmt"
	"path/filepath"
)

// Perspective labels accepted on the CLI.
const (
	SocietalPerspective     = "societal"
	HealthSystemPerspective = "health_system"
)

// Artifact directory names. The societal perspective owns the unsuffixed
// directory; health-system results live beside it. These names are shared
// with downstream consumers and must not change.
const (
	societalDir     = "ce_plane"
	healthSystemDir = "ce_plane_health_system"
)

// DeltasFileName is the per-therapy delta artifact inside a perspective
// directory.
const DeltasFileName = "deltas.csv"

// PerspectiveDir maps a perspective label to its artifact directory.
// Unknown labels are rejected before any I/O happens.
func PerspectiveDir(perspective string) (string, error) {
	switch perspective {
	case SocietalPerspective:
		return societalDir, nil
	case HealthSystemPerspective:
		return healthSystemDir, nil
	default:
		return "", fmt.Errorf("unknown perspective %q (expected %s or %s)",
			perspective, SocietalPerspective, HealthSystemPerspective)
	}
}

// PerspectiveFromDir is the inverse mapping, used when recovering context
// from an artifact path.
func PerspectiveFromDir(dir string) (string, bool) {
	switch dir {
	case societalDir:
		return SocietalPerspective, true
	case healthSystemDir:
		return HealthSystemPerspective, true
	default:
		return "", false
	}
}

// DeltasPath returns the canonical location of a therapy's delta artifact:
// <root>/<perspective dir>/<therapy>/deltas.csv.
func DeltasPath(root, perspective, therapy string) (string, error) {
	dir, err := PerspectiveDir(perspective)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, dir, therapy, DeltasFileName), nil
}
