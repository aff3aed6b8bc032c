// Package picking resolves pointer positions against the registered
// spatial entities of a yard session.
package picking

import (
	"math"

	"github.com/izzat1998/terminal-pro-sub004/pkg/geo"
)

// Category classifies a pickable entity. Priority between categories
// is fixed and total: a container hit outranks a building hit at any
// depth, and both outrank everything else.
type Category string

const (
	CategoryContainer Category = "container"
	CategoryBuilding  Category = "building"
	CategoryVehicle   Category = "vehicle"
	CategoryOther     Category = "other"
)

func categoryRank(c Category) int {
	switch c {
	case CategoryContainer:
		return 3
	case CategoryBuilding:
		return 2
	case CategoryVehicle:
		return 1
	default:
		return 0
	}
}

// Candidate is a resolved hit against one entity.
type Candidate struct {
	Category Category `json:"category"`
	EntityID string   `json:"entity_id"`
	Distance float64  `json:"distance"`
}

// Camera projects scene-space points into normalized device
// coordinates. Implemented by the render-layer collaborator.
type Camera interface {
	// Project returns the NDC position of a scene point, its distance
	// from the camera, and whether it is inside the view frustum.
	Project(p geo.Point3D) (ndc geo.Point2D, distance float64, visible bool)
}

// Target is one pickable entity. The render layer owns the entity
// registry; the picking engine only reads it.
type Target struct {
	ID       string
	Category Category
	Center   geo.Point3D
	// Radius is the pick tolerance around the projected center, in NDC
	// units.
	Radius float64
}

// Registry exposes the render layer's pickable entity set.
type Registry interface {
	Targets() []Target
}

// Query resolves a pointer position to the best hit, or nil when
// nothing is under the pointer. Pointer coordinates are NDC in
// [-1,1]x[-1,1]; converting raw pixels through the viewport rectangle
// is the caller's job. An empty registry yields nil, never an error.
func Query(pointer geo.Point2D, cam Camera, reg Registry) *Candidate {
	if cam == nil || reg == nil {
		return nil
	}

	var best *Candidate
	for _, tgt := range reg.Targets() {
		ndc, dist, visible := cam.Project(tgt.Center)
		if !visible {
			continue
		}
		if math.Hypot(ndc.X-pointer.X, ndc.Y-pointer.Y) > tgt.Radius {
			continue
		}
		cand := Candidate{Category: tgt.Category, EntityID: tgt.ID, Distance: dist}
		if best == nil || better(cand, *best) {
			c := cand
			best = &c
		}
	}
	return best
}

// better reports whether a outranks b: higher category priority first,
// then nearer distance within the same category.
func better(a, b Candidate) bool {
	ra, rb := categoryRank(a.Category), categoryRank(b.Category)
	if ra != rb {
		return ra > rb
	}
	return a.Distance < b.Distance
}
