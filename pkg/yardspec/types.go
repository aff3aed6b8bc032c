// Package yardspec defines the loadable yard project specification.
package yardspec

import (
	"github.com/izzat1998/terminal-pro-sub004/pkg/geo"
)

// YardSpec is the top-level specification of a terminal yard project.
type YardSpec struct {
	SpecVersion string        `yaml:"spec_version" json:"spec_version"`
	Name        string        `yaml:"name" json:"name"`
	Drawing     DrawingDef    `yaml:"drawing" json:"drawing"`
	Grid        GridDef       `yaml:"grid" json:"grid"`
	Placement   PlacementDef  `yaml:"placement" json:"placement"`
	Stacking    StackingDef   `yaml:"stacking" json:"stacking"`
	Gates       []GateDef     `yaml:"gates" json:"gates"`
	Cameras     []CameraDef   `yaml:"cameras" json:"cameras"`
	Paths       []PathDef     `yaml:"paths" json:"paths"`
	Buildings   []BuildingDef `yaml:"buildings" json:"buildings"`
	Backend     BackendDef    `yaml:"backend" json:"backend"`
}

// DrawingDef describes the source CAD drawing. Bounds act as a
// fallback when the parsing collaborator provides none.
type DrawingDef struct {
	Units  string     `yaml:"units" json:"units"`
	Bounds *BoundsDef `yaml:"bounds,omitempty" json:"bounds,omitempty"`
}

// BoundsDef is a drawing-space rectangle.
type BoundsDef struct {
	MinX float64 `yaml:"min_x" json:"min_x"`
	MinY float64 `yaml:"min_y" json:"min_y"`
	MaxX float64 `yaml:"max_x" json:"max_x"`
	MaxY float64 `yaml:"max_y" json:"max_y"`
}

// Rect converts the bounds to a geo.Rect.
func (b BoundsDef) Rect() geo.Rect {
	return geo.NewRect(geo.Pt(b.MinX, b.MinY), geo.Pt(b.MaxX, b.MaxY))
}

// GridDef configures the diagnostic/addressing grid.
type GridDef struct {
	CellSize float64 `yaml:"cell_size" json:"cell_size"`
}

// PlacementDef configures the placement engine.
type PlacementDef struct {
	Padding float64 `yaml:"padding" json:"padding"`
}

// StackingDef configures the demo stacking policy.
type StackingDef struct {
	MaxTier int     `yaml:"max_tier" json:"max_tier"`
	Rate    float64 `yaml:"rate" json:"rate"`
	Seed    int64   `yaml:"seed" json:"seed"`
}

// GateDef is a named vehicle gate in drawing space.
type GateDef struct {
	Name string  `yaml:"name" json:"name"`
	X    float64 `yaml:"x" json:"x"`
	Y    float64 `yaml:"y" json:"y"`
}

// Point returns the gate position.
func (g GateDef) Point() geo.Point2D {
	return geo.Pt(g.X, g.Y)
}

// CameraDef is a gate camera with its detection polygon.
type CameraDef struct {
	Name    string       `yaml:"name" json:"name"`
	Gate    string       `yaml:"gate" json:"gate"`
	Polygon [][2]float64 `yaml:"polygon" json:"polygon"`
}

// Vertices returns the detection polygon vertices.
func (c CameraDef) Vertices() []geo.Point2D {
	pts := make([]geo.Point2D, len(c.Polygon))
	for i, v := range c.Polygon {
		pts[i] = geo.Pt(v[0], v[1])
	}
	return pts
}

// PathDef is a named waypoint path in drawing space.
type PathDef struct {
	Name      string       `yaml:"name" json:"name"`
	Waypoints [][2]float64 `yaml:"waypoints" json:"waypoints"`
}

// Points returns the path waypoints.
func (p PathDef) Points() []geo.Point2D {
	pts := make([]geo.Point2D, len(p.Waypoints))
	for i, v := range p.Waypoints {
		pts[i] = geo.Pt(v[0], v[1])
	}
	return pts
}

// BuildingDef is a static structure footprint in drawing space.
type BuildingDef struct {
	ID     string  `yaml:"id" json:"id"`
	Name   string  `yaml:"name" json:"name"`
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	Width  float64 `yaml:"width" json:"width"`
	Depth  float64 `yaml:"depth" json:"depth"`
	Height float64 `yaml:"height" json:"height"`
	Kind   string  `yaml:"kind" json:"kind"`
}

// Center returns the footprint center.
func (b BuildingDef) Center() geo.Point2D {
	return geo.Pt(b.X, b.Y)
}

// BackendDef points at the slot-record API.
type BackendDef struct {
	URL            string `yaml:"url" json:"url"`
	RefreshSeconds int    `yaml:"refresh_seconds" json:"refresh_seconds"`
}

// GateByName returns the gate definition, or nil if not found.
func (s *YardSpec) GateByName(name string) *GateDef {
	for i := range s.Gates {
		if s.Gates[i].Name == name {
			return &s.Gates[i]
		}
	}
	return nil
}

// PathByName returns the path definition, or nil if not found.
func (s *YardSpec) PathByName(name string) *PathDef {
	for i := range s.Paths {
		if s.Paths[i].Name == name {
			return &s.Paths[i]
		}
	}
	return nil
}
