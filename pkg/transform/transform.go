// Package transform maps between drawing space (CAD layout XY) and
// scene space (renderer XZ ground plane, Y up).
package transform

import (
	"errors"
	"fmt"

	"github.com/izzat1998/terminal-pro-sub004/pkg/geo"
)

// ErrNotReady is returned when a conversion is requested before a
// coordinate system has been loaded. Callers retry after load; a
// zero-valued point would be indistinguishable from the origin.
var ErrNotReady = errors.New("transform: no coordinate system loaded")

// Unit is the declared unit system of a source drawing.
type Unit string

const (
	UnitMillimeters Unit = "mm"
	UnitCentimeters Unit = "cm"
	UnitMeters      Unit = "m"
	UnitInches      Unit = "in"
	UnitFeet        Unit = "ft"
)

// UnitScale returns the meters-per-drawing-unit factor for a declared
// unit system. Unknown units are an error rather than a silent 1.0.
func UnitScale(u Unit) (float64, error) {
	switch u {
	case UnitMillimeters:
		return 0.001, nil
	case UnitCentimeters:
		return 0.01, nil
	case UnitMeters:
		return 1.0, nil
	case UnitInches:
		return 0.0254, nil
	case UnitFeet:
		return 0.3048, nil
	default:
		return 0, fmt.Errorf("transform: unknown drawing unit %q", u)
	}
}

// CoordinateSystem is the immutable per-session mapping configuration
// derived from a loaded drawing. It is replaced wholesale on reload,
// never mutated.
type CoordinateSystem struct {
	Center geo.Point2D `json:"center"`
	Scale  float64     `json:"scale"`
	Bounds geo.Rect    `json:"bounds"`
}

// NewCoordinateSystem builds a coordinate system centered on the given
// drawing bounds with a unit-derived scale.
func NewCoordinateSystem(bounds geo.Rect, units Unit) (*CoordinateSystem, error) {
	scale, err := UnitScale(units)
	if err != nil {
		return nil, err
	}
	return NewCoordinateSystemScale(bounds, scale)
}

// NewCoordinateSystemScale builds a coordinate system with an explicit
// scale factor.
func NewCoordinateSystemScale(bounds geo.Rect, scale float64) (*CoordinateSystem, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("transform: scale must be positive, got %g", scale)
	}
	if bounds.IsEmpty() {
		return nil, fmt.Errorf("transform: degenerate drawing bounds %+v", bounds)
	}
	return &CoordinateSystem{
		Center: bounds.Center(),
		Scale:  scale,
		Bounds: bounds,
	}, nil
}

// Transformer converts points between drawing and scene space using
// the active coordinate system. One Transformer exists per yard
// session; Set swaps the system atomically from the session's single
// thread of control.
type Transformer struct {
	cs *CoordinateSystem
}

// NewTransformer creates a transformer with no coordinate system
// loaded yet.
func NewTransformer() *Transformer {
	return &Transformer{}
}

// Set replaces the active coordinate system.
func (t *Transformer) Set(cs *CoordinateSystem) {
	t.cs = cs
}

// Ready reports whether a coordinate system has been loaded.
func (t *Transformer) Ready() bool {
	return t.cs != nil
}

// System returns the active coordinate system, or nil before load.
func (t *Transformer) System() *CoordinateSystem {
	return t.cs
}

// ToScene maps a drawing point onto the scene ground plane. Drawing
// "up" (+Y) maps to scene "away from viewer" (-Z); the returned scene
// Y is always 0 and is owned by the caller.
func (t *Transformer) ToScene(p geo.Point2D) (geo.Point3D, error) {
	if t.cs == nil {
		return geo.Point3D{}, ErrNotReady
	}
	return geo.Point3D{
		X: (p.X - t.cs.Center.X) * t.cs.Scale,
		Y: 0,
		Z: -(p.Y - t.cs.Center.Y) * t.cs.Scale,
	}, nil
}

// ToDrawing maps a scene point back to drawing space, ignoring the
// vertical scene Y component. It is the exact inverse of ToScene.
func (t *Transformer) ToDrawing(p geo.Point3D) (geo.Point2D, error) {
	if t.cs == nil {
		return geo.Point2D{}, ErrNotReady
	}
	return geo.Point2D{
		X: p.X/t.cs.Scale + t.cs.Center.X,
		Y: -p.Z/t.cs.Scale + t.cs.Center.Y,
	}, nil
}
