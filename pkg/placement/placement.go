// Package placement assigns container records to yard slot positions
// and maintains the session's occupancy set.
package placement

import (
	"fmt"

	"github.com/izzat1998/terminal-pro-sub004/pkg/geo"
	"github.com/izzat1998/terminal-pro-sub004/pkg/transform"
	"github.com/izzat1998/terminal-pro-sub004/pkg/validation"
)

// DefaultPadding is how far outside the drawing bounds a point may lie
// and still be placed. CAD exports put title blocks and legends far
// outside the yard outline; the padding keeps real edge slots while
// dropping those artifacts.
const DefaultPadding = 100.0

// BlockKind is the container footprint size.
type BlockKind string

const (
	Block20ft BlockKind = "20ft"
	Block40ft BlockKind = "40ft"
)

// Status is the load state of a container.
type Status string

const (
	StatusLaden Status = "LADEN"
	StatusEmpty Status = "EMPTY"
)

// ContainerData carries the domain attributes joined to a placed
// container by id. The engine reads it, never writes it.
type ContainerData struct {
	Status      Status  `json:"status"`
	DwellDays   float64 `json:"dwell_days"`
	Hazmat      bool    `json:"hazmat"`
	HazmatClass string  `json:"hazmat_class,omitempty"`
	Priority    int     `json:"priority"`
	Company     string  `json:"company,omitempty"`
	Vessel      string  `json:"vessel,omitempty"`
	Booking     string  `json:"booking,omitempty"`
}

// ContainerPosition is a validated, scene-placed container. The
// drawing point is authoritative; Scene is re-derived whenever the
// coordinate system changes and is never the source of truth.
type ContainerPosition struct {
	ID           string         `json:"id"`
	Zone         string         `json:"zone"`
	Scene        geo.Point3D    `json:"scene"`
	Rotation     float64        `json:"rotation"`
	Kind         BlockKind      `json:"block_kind"`
	Tier         int            `json:"tier"`
	DrawingPoint geo.Point2D    `json:"drawing_point"`
	Data         *ContainerData `json:"data,omitempty"`
}

// Item is one raw placement input: a slot point in drawing space plus
// the container attributes occupying it.
type Item struct {
	ID       string
	Zone     string
	Point    geo.Point2D
	Rotation float64
	Kind     BlockKind
	Tier     int
	Data     *ContainerData
}

// Engine owns the session's ContainerPosition records. It is driven
// from the single frame-tick thread and is not safe for concurrent
// mutation.
type Engine struct {
	tr      *transform.Transformer
	padding float64

	positions []ContainerPosition
	columns   map[string][]int // column key -> sorted occupied tiers
	dropped   int
}

// NewEngine creates a placement engine bound to a transformer.
func NewEngine(tr *transform.Transformer) *Engine {
	return &Engine{
		tr:      tr,
		padding: DefaultPadding,
		columns: make(map[string][]int),
	}
}

// SetPadding overrides the bounds-filter padding in drawing units.
func (e *Engine) SetPadding(pad float64) {
	e.padding = pad
}

// Place validates and stores the given items, replacing any previous
// set. Points outside the padded drawing bounds are dropped silently
// from the placed set but counted for diagnostics. Returns the placed
// positions and a report.
func (e *Engine) Place(items []Item) ([]ContainerPosition, *validation.Report) {
	report := validation.NewReport()
	if !e.tr.Ready() {
		report.AddError(validation.Result{
			Level:   validation.LevelSpatial,
			Message: "cannot place containers before a coordinate system loads",
		})
		return nil, report
	}

	accepted := e.tr.System().Bounds.Expand(e.padding)
	e.positions = e.positions[:0]
	e.columns = make(map[string][]int)
	e.dropped = 0

	for _, it := range items {
		if !accepted.Contains(it.Point) {
			e.dropped++
			continue
		}
		scene, err := e.tr.ToScene(it.Point)
		if err != nil {
			report.AddError(validation.Result{
				Level:   validation.LevelSpatial,
				Message: fmt.Sprintf("projecting container %s: %v", it.ID, err),
			})
			continue
		}
		pos := ContainerPosition{
			ID:           it.ID,
			Zone:         it.Zone,
			Scene:        scene,
			Rotation:     it.Rotation,
			Kind:         it.Kind,
			Tier:         it.Tier,
			DrawingPoint: it.Point,
			Data:         it.Data,
		}
		e.positions = append(e.positions, pos)
		key := columnKey(it.Point)
		e.columns[key] = insertTier(e.columns[key], it.Tier)
	}

	if e.dropped > 0 {
		report.AddInfo(validation.Result{
			Level:   validation.LevelSpatial,
			Message: fmt.Sprintf("dropped %d out-of-bounds points (padding %.0f)", e.dropped, e.padding),
		})
	}
	report.AddInfo(validation.Result{
		Level:   validation.LevelSpatial,
		Message: fmt.Sprintf("placed %d containers in %d columns", len(e.positions), len(e.columns)),
	})
	return e.clone(), report
}

// Recenter re-projects every stored drawing point through the current
// coordinate system. Call after the coordinate system is swapped.
func (e *Engine) Recenter() error {
	for i := range e.positions {
		scene, err := e.tr.ToScene(e.positions[i].DrawingPoint)
		if err != nil {
			return fmt.Errorf("recentering container %s: %w", e.positions[i].ID, err)
		}
		e.positions[i].Scene = scene
	}
	return nil
}

// Positions returns a copy of the current occupancy set.
func (e *Engine) Positions() []ContainerPosition {
	return e.clone()
}

// Dropped returns how many input points the last Place call filtered
// out as out-of-bounds.
func (e *Engine) Dropped() int {
	return e.dropped
}

// ColumnTiers returns the sorted occupied tiers of the column at the
// given drawing point, or nil if the column is empty.
func (e *Engine) ColumnTiers(p geo.Point2D) []int {
	tiers := e.columns[columnKey(p)]
	out := make([]int, len(tiers))
	copy(out, tiers)
	return out
}

func (e *Engine) clone() []ContainerPosition {
	out := make([]ContainerPosition, len(e.positions))
	copy(out, e.positions)
	return out
}

// columnKey quantizes a drawing point so float noise below a
// millimeter cannot split a stack into two columns.
func columnKey(p geo.Point2D) string {
	return fmt.Sprintf("%.3f:%.3f", p.X, p.Y)
}

func insertTier(tiers []int, tier int) []int {
	i := 0
	for i < len(tiers) && tiers[i] < tier {
		i++
	}
	tiers = append(tiers, 0)
	copy(tiers[i+1:], tiers[i:])
	tiers[i] = tier
	return tiers
}
