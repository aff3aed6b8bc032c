// Package scene builds the render-ready entity graph consumed by the
// 3D renderer collaborator.
package scene

import (
	"math"

	"github.com/izzat1998/terminal-pro-sub004/pkg/geo"
)

// EntityKind identifies the kind of scene entity.
type EntityKind string

const (
	KindContainer EntityKind = "container"
	KindBuilding  EntityKind = "building"
	KindVehicle   EntityKind = "vehicle"
	KindGridLine  EntityKind = "grid_line"
	KindGridLabel EntityKind = "grid_label"
)

// Entity is a single element in the scene graph.
type Entity struct {
	ID         string         `json:"id"`
	Kind       EntityKind     `json:"kind"`
	Position   geo.Point3D    `json:"position"`
	Dimensions geo.Point3D    `json:"dimensions"`
	Rotation   [4]float64     `json:"rotation"` // quaternion [x, y, z, w]
	Material   string         `json:"material"`
	Zone       string         `json:"zone,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// BoundingBox is an axis-aligned scene-space box.
type BoundingBox struct {
	Min geo.Point3D `json:"min"`
	Max geo.Point3D `json:"max"`
}

// Metadata holds scene-level information.
type Metadata struct {
	SpecVersion string      `json:"spec_version"`
	GeneratedAt string      `json:"generated_at"`
	YardBounds  BoundingBox `json:"yard_bounds"`
}

// Groups indexes entity IDs by kind and zone for fast filtering and
// per-arena disposal by the render layer.
type Groups struct {
	Kinds map[EntityKind][]string `json:"kinds"`
	Zones map[string][]string     `json:"zones"`
}

// Graph is the complete scene graph for one yard session snapshot.
type Graph struct {
	Metadata Metadata `json:"metadata"`
	Entities []Entity `json:"entities"`
	Groups   Groups   `json:"groups"`
}

// NewGraph creates an empty scene graph.
func NewGraph() *Graph {
	return &Graph{
		Entities: []Entity{},
		Groups: Groups{
			Kinds: make(map[EntityKind][]string),
			Zones: make(map[string][]string),
		},
	}
}

// addEntity appends an entity and updates the group indices.
func addEntity(g *Graph, e Entity) {
	g.Entities = append(g.Entities, e)
	g.Groups.Kinds[e.Kind] = append(g.Groups.Kinds[e.Kind], e.ID)
	if e.Zone != "" {
		g.Groups.Zones[e.Zone] = append(g.Groups.Zones[e.Zone], e.ID)
	}
}

// computeBounds calculates the AABB of all entities.
func computeBounds(entities []Entity) BoundingBox {
	if len(entities) == 0 {
		return BoundingBox{}
	}
	minV := geo.Point3D{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64}
	maxV := geo.Point3D{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64}

	for _, e := range entities {
		halfX := e.Dimensions.X / 2
		halfZ := e.Dimensions.Z / 2

		lo := geo.Point3D{X: e.Position.X - halfX, Y: e.Position.Y, Z: e.Position.Z - halfZ}
		hi := geo.Point3D{X: e.Position.X + halfX, Y: e.Position.Y + e.Dimensions.Y, Z: e.Position.Z + halfZ}

		minV.X = math.Min(minV.X, lo.X)
		minV.Y = math.Min(minV.Y, lo.Y)
		minV.Z = math.Min(minV.Z, lo.Z)
		maxV.X = math.Max(maxV.X, hi.X)
		maxV.Y = math.Max(maxV.Y, hi.Y)
		maxV.Z = math.Max(maxV.Z, hi.Z)
	}
	return BoundingBox{Min: minV, Max: maxV}
}

func identityQuat() [4]float64 {
	return [4]float64{0, 0, 0, 1}
}

func yawQuat(angle float64) [4]float64 {
	half := angle / 2
	return [4]float64{0, math.Sin(half), 0, math.Cos(half)}
}
