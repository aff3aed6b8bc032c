package yardspec

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads a yard spec from a YAML file.
func Load(path string) (*YardSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading yard spec: %w", err)
	}

	var spec YardSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing yard spec YAML: %w", err)
	}

	applyDefaults(&spec)
	return &spec, nil
}

// LoadProject loads a yard spec from a project directory. It looks
// for yard.yaml in the given directory.
func LoadProject(projectDir string) (*YardSpec, error) {
	return Load(filepath.Join(projectDir, "yard.yaml"))
}

func applyDefaults(s *YardSpec) {
	if s.Grid.CellSize == 0 {
		s.Grid.CellSize = 20
	}
	if s.Placement.Padding == 0 {
		s.Placement.Padding = 100
	}
	if s.Backend.RefreshSeconds == 0 {
		s.Backend.RefreshSeconds = 30
	}
	if s.Drawing.Units == "" {
		s.Drawing.Units = "m"
	}
}
