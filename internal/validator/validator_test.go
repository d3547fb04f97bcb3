package validator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jdahm/lattice/pkg/backend"
	"github.com/jdahm/lattice/pkg/scenario"
)

func TestCheck(t *testing.T) {
	// Scenario A: valid document
	good, err := scenario.NewBuilder("good").
		Grid(16, 16, 4).
		Steps(5).
		Box(6, 6, 1.0, 0).
		Backend(backend.Vector).
		Build()
	if err != nil {
		t.Fatalf("build scenario: %v", err)
	}

	if err := Check(good, backend.Names()); err != nil {
		t.Errorf("Scenario A (valid) failed: %v", err)
	}

	// Scenario B: several problems at once
	bad := &scenario.Scenario{Name: "bad", Backend: "warp"}

	err = Check(bad, backend.Names())
	if err == nil {
		t.Error("Scenario B (broken) should have failed, but got nil")
	} else {
		if !strings.Contains(err.Error(), "found") {
			t.Errorf("Expected a problem count, got: %v", err)
		}
		if !strings.Contains(err.Error(), "warp") {
			t.Errorf("Expected the unknown backend to be reported, got: %v", err)
		}
	}
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	doc := `name: file-test
grid:
  nx: 8
  ny: 8
  nz: 2
  halo: 2
params:
  dx: 1.0
  dt: 0.1
  alpha: -0.02
steps: 3
backend: debug
initial:
  kind: box
  options:
    width: 4
    height: 4
    inside: 1.0
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write scenario file: %v", err)
	}

	sc, err := CheckFile(path, backend.Names())
	if err != nil {
		t.Fatalf("CheckFile: %v", err)
	}
	if sc.Name != "file-test" {
		t.Errorf("Expected name file-test, got %q", sc.Name)
	}

	if _, err := CheckFile(filepath.Join(dir, "nope.yaml"), nil); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
