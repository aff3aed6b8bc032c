package yardspec

import (
	"os"
	"path/filepath"
	"testing"
)

const minimalYAML = `
spec_version: "1.0"
name: Minimal yard
drawing:
  bounds:
    min_x: 0
    min_y: 0
    max_x: 500
    max_y: 300
gates:
  - name: main
    x: 5
    y: 150
paths:
  - name: main_entry
    waypoints:
      - [5, 150]
      - [100, 150]
`

func writeProject(t *testing.T, yaml string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "yard.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return dir
}

func TestLoadProjectDefaults(t *testing.T) {
	spec, err := LoadProject(writeProject(t, minimalYAML))
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	if spec.Name != "Minimal yard" {
		t.Errorf("name = %q", spec.Name)
	}
	if spec.Drawing.Units != "m" {
		t.Errorf("units should default to m, got %q", spec.Drawing.Units)
	}
	if spec.Grid.CellSize != 20 {
		t.Errorf("cell size should default to 20, got %g", spec.Grid.CellSize)
	}
	if spec.Placement.Padding != 100 {
		t.Errorf("padding should default to 100, got %g", spec.Placement.Padding)
	}
	if spec.Backend.RefreshSeconds != 30 {
		t.Errorf("refresh should default to 30s, got %d", spec.Backend.RefreshSeconds)
	}
}

func TestLoadProjectAccessors(t *testing.T) {
	spec, err := LoadProject(writeProject(t, minimalYAML))
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	gate := spec.GateByName("main")
	if gate == nil || gate.Point().X != 5 {
		t.Fatalf("GateByName(main) = %+v", gate)
	}
	if spec.GateByName("nope") != nil {
		t.Error("unknown gate should be nil")
	}
	path := spec.PathByName("main_entry")
	if path == nil || len(path.Points()) != 2 {
		t.Fatalf("PathByName(main_entry) = %+v", path)
	}
	r := spec.Drawing.Bounds.Rect()
	if r.Width() != 500 || r.Height() != 300 {
		t.Errorf("bounds rect = %+v", r)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := LoadProject(t.TempDir()); err == nil {
		t.Fatal("missing yard.yaml should fail")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	if _, err := LoadProject(writeProject(t, ":\n  not yaml: [")); err == nil {
		t.Fatal("malformed YAML should fail")
	}
}
