package validation

import (
	"fmt"

	"github.com/izzat1998/terminal-pro-sub004/pkg/transform"
	"github.com/izzat1998/terminal-pro-sub004/pkg/yardspec"
)

// ValidateSchema checks the structural correctness of a parsed yard
// spec before any spatial computation runs.
func ValidateSchema(s *yardspec.YardSpec) *Report {
	r := NewReport()

	validateDrawing(s, r)
	validateGrid(s, r)
	validateStacking(s, r)
	validateGates(s, r)
	validateCameras(s, r)
	validatePaths(s, r)

	return r
}

func validateDrawing(s *yardspec.YardSpec, r *Report) {
	if _, err := transform.UnitScale(transform.Unit(s.Drawing.Units)); err != nil {
		r.AddError(Result{
			Level:    LevelSchema,
			Message:  fmt.Sprintf("drawing.units %q is not a known unit system", s.Drawing.Units),
			Field:    "drawing.units",
			Actual:   s.Drawing.Units,
			Expected: "mm, cm, m, in or ft",
		})
	}
	if s.Drawing.Bounds != nil && s.Drawing.Bounds.Rect().IsEmpty() {
		r.AddError(Result{
			Level:   LevelSchema,
			Message: "drawing.bounds has zero extent",
			Field:   "drawing.bounds",
		})
	}
}

func validateGrid(s *yardspec.YardSpec, r *Report) {
	if s.Grid.CellSize <= 0 {
		r.AddError(Result{
			Level:    LevelSchema,
			Message:  fmt.Sprintf("grid.cell_size must be positive, got %g", s.Grid.CellSize),
			Field:    "grid.cell_size",
			Actual:   s.Grid.CellSize,
			Expected: "> 0",
		})
	}
}

func validateStacking(s *yardspec.YardSpec, r *Report) {
	if s.Stacking.Rate < 0 || s.Stacking.Rate > 1 {
		r.AddError(Result{
			Level:    LevelSchema,
			Message:  fmt.Sprintf("stacking.rate %.3f must be within [0, 1]", s.Stacking.Rate),
			Field:    "stacking.rate",
			Actual:   s.Stacking.Rate,
			Expected: "0-1",
		})
	}
	if s.Stacking.MaxTier < 0 {
		r.AddError(Result{
			Level:   LevelSchema,
			Message: "stacking.max_tier must be >= 0",
			Field:   "stacking.max_tier",
			Actual:  s.Stacking.MaxTier,
		})
	}
}

func validateGates(s *yardspec.YardSpec, r *Report) {
	seen := make(map[string]bool)
	for i, g := range s.Gates {
		if g.Name == "" {
			r.AddError(Result{
				Level:   LevelSchema,
				Message: fmt.Sprintf("gates[%d] has no name", i),
				Field:   fmt.Sprintf("gates[%d].name", i),
			})
			continue
		}
		if seen[g.Name] {
			r.AddError(Result{
				Level:   LevelSchema,
				Message: fmt.Sprintf("duplicate gate name %q", g.Name),
				Field:   fmt.Sprintf("gates[%d].name", i),
			})
		}
		seen[g.Name] = true

		if s.Drawing.Bounds != nil && !s.Drawing.Bounds.Rect().Contains(g.Point()) {
			r.AddWarning(Result{
				Level:   LevelSpatial,
				Message: fmt.Sprintf("gate %q lies outside the drawing bounds", g.Name),
				Field:   fmt.Sprintf("gates[%d]", i),
			})
		}
	}
}

func validateCameras(s *yardspec.YardSpec, r *Report) {
	for i, c := range s.Cameras {
		if len(c.Polygon) < 3 {
			r.AddError(Result{
				Level:    LevelSchema,
				Message:  fmt.Sprintf("camera %q detection polygon has %d vertices", c.Name, len(c.Polygon)),
				Field:    fmt.Sprintf("cameras[%d].polygon", i),
				Actual:   len(c.Polygon),
				Expected: ">= 3 vertices",
			})
		}
		if c.Gate != "" && s.GateByName(c.Gate) == nil {
			r.AddError(Result{
				Level:   LevelSchema,
				Message: fmt.Sprintf("camera %q references unknown gate %q", c.Name, c.Gate),
				Field:   fmt.Sprintf("cameras[%d].gate", i),
			})
		}
	}
}

func validatePaths(s *yardspec.YardSpec, r *Report) {
	seen := make(map[string]bool)
	for i, p := range s.Paths {
		if seen[p.Name] {
			r.AddError(Result{
				Level:   LevelSchema,
				Message: fmt.Sprintf("duplicate path name %q", p.Name),
				Field:   fmt.Sprintf("paths[%d].name", i),
			})
		}
		seen[p.Name] = true

		if len(p.Waypoints) < 2 {
			r.AddError(Result{
				Level:    LevelSchema,
				Message:  fmt.Sprintf("path %q needs at least 2 waypoints, got %d", p.Name, len(p.Waypoints)),
				Field:    fmt.Sprintf("paths[%d].waypoints", i),
				Actual:   len(p.Waypoints),
				Expected: ">= 2",
			})
		}
	}
}
