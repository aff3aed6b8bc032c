package vehicle

import (
	"fmt"

	"github.com/izzat1998/terminal-pro-sub004/pkg/geo"
)

// DetectionZone approximates a gate camera's field of view as a
// drawing-space polygon. Vertex winding does not matter.
type DetectionZone struct {
	Name    string      `json:"name"`
	Gate    string      `json:"gate"`
	Polygon geo.Polygon `json:"polygon"`
}

// NewDetectionZone validates and builds a zone. Polygons need at
// least 3 vertices.
func NewDetectionZone(name, gate string, vertices []geo.Point2D) (DetectionZone, error) {
	poly := geo.Polygon{Vertices: vertices}
	if poly.IsDegenerate() {
		return DetectionZone{}, fmt.Errorf("vehicle: detection zone %q has %d vertices, need at least 3", name, len(vertices))
	}
	return DetectionZone{Name: name, Gate: gate, Polygon: poly}, nil
}

// Contains reports whether the camera's simulated field of view
// currently covers the drawing point. The answer is winding-agnostic
// and stable for points on an edge (see geo.Polygon.Contains).
func (z DetectionZone) Contains(p geo.Point2D) bool {
	return z.Polygon.Contains(p)
}

// ZoneSet is the session's detection zones in declaration order.
type ZoneSet struct {
	zones []DetectionZone
}

// NewZoneSet builds a zone set.
func NewZoneSet(zones ...DetectionZone) *ZoneSet {
	return &ZoneSet{zones: zones}
}

// Add appends a zone.
func (s *ZoneSet) Add(z DetectionZone) {
	s.zones = append(s.zones, z)
}

// Zones returns the zones in declaration order.
func (s *ZoneSet) Zones() []DetectionZone {
	return s.zones
}

// Containing returns the names of every zone covering the point.
func (s *ZoneSet) Containing(p geo.Point2D) []string {
	var names []string
	for _, z := range s.zones {
		if z.Contains(p) {
			names = append(names, z.Name)
		}
	}
	return names
}
