package scene

import (
	"fmt"
	"time"

	"github.com/izzat1998/terminal-pro-sub004/pkg/geo"
	"github.com/izzat1998/terminal-pro-sub004/pkg/grid"
	"github.com/izzat1998/terminal-pro-sub004/pkg/placement"
	"github.com/izzat1998/terminal-pro-sub004/pkg/transform"
	"github.com/izzat1998/terminal-pro-sub004/pkg/vehicle"
	"github.com/izzat1998/terminal-pro-sub004/pkg/yardspec"
)

// ISO container dimensions in meters.
const (
	containerHeight = 2.59
	containerWidth  = 2.44
	length20ft      = 6.06
	length40ft      = 12.19
)

// Assemble converts the current session state into a scene graph. The
// overlay is optional; pass nil when diagnostic rendering is off.
func Assemble(
	s *yardspec.YardSpec,
	tr *transform.Transformer,
	containers []placement.ContainerPosition,
	actors []vehicle.Actor,
	overlay *grid.Overlay,
) (*Graph, error) {
	g := NewGraph()

	assembleContainers(containers, g)
	if err := assembleBuildings(s, tr, g); err != nil {
		return nil, err
	}
	assembleVehicles(actors, g)
	if overlay != nil {
		assembleOverlay(overlay, g)
	}

	g.Metadata = Metadata{
		SpecVersion: s.SpecVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		YardBounds:  computeBounds(g.Entities),
	}
	return g, nil
}

func assembleContainers(containers []placement.ContainerPosition, g *Graph) {
	for _, c := range containers {
		length := length40ft
		if c.Kind == placement.Block20ft {
			length = length20ft
		}

		mat := "corten"
		meta := map[string]any{"tier": c.Tier}
		if c.Data != nil {
			meta["status"] = string(c.Data.Status)
			meta["dwell_days"] = c.Data.DwellDays
			if c.Data.Company != "" {
				meta["company"] = c.Data.Company
			}
			if c.Data.Hazmat {
				mat = "hazmat"
				meta["hazmat_class"] = c.Data.HazmatClass
			} else if c.Data.Status == placement.StatusEmpty {
				mat = "corten_faded"
			}
		}

		pos := c.Scene
		pos.Y = float64(c.Tier) * containerHeight

		addEntity(g, Entity{
			ID:         c.ID,
			Kind:       KindContainer,
			Position:   pos,
			Dimensions: geo.Pt3(length, containerHeight, containerWidth),
			Rotation:   yawQuat(c.Rotation),
			Material:   mat,
			Zone:       c.Zone,
			Metadata:   meta,
		})
	}
}

func assembleBuildings(s *yardspec.YardSpec, tr *transform.Transformer, g *Graph) error {
	scale := 1.0
	if cs := tr.System(); cs != nil {
		scale = cs.Scale
	}
	for _, b := range s.Buildings {
		center, err := tr.ToScene(b.Center())
		if err != nil {
			return fmt.Errorf("scene: projecting building %s: %w", b.ID, err)
		}
		addEntity(g, Entity{
			ID:         b.ID,
			Kind:       KindBuilding,
			Position:   center,
			Dimensions: geo.Pt3(b.Width*scale, b.Height*scale, b.Depth*scale),
			Rotation:   identityQuat(),
			Material:   "concrete",
			Metadata:   map[string]any{"name": b.Name, "building_kind": b.Kind},
		})
	}
	return nil
}

func assembleVehicles(actors []vehicle.Actor, g *Graph) {
	for _, a := range actors {
		addEntity(g, Entity{
			ID:         a.ID,
			Kind:       KindVehicle,
			Position:   a.Position,
			Dimensions: geo.Pt3(7.5, 3.2, 2.5),
			Rotation:   yawQuat(a.Rotation),
			Material:   "paint",
			Metadata: map[string]any{
				"plate":     a.Plate,
				"category":  string(a.Category),
				"direction": string(a.Direction),
				"state":     string(a.State),
			},
		})
	}
}

func assembleOverlay(ov *grid.Overlay, g *Graph) {
	addLine := func(prefix string, i int, l grid.Line) {
		mid := geo.LerpScene(l.From, l.To, 0.5)
		addEntity(g, Entity{
			ID:         fmt.Sprintf("%s_%d", prefix, i),
			Kind:       KindGridLine,
			Position:   mid,
			Dimensions: geo.Pt3(l.To.X-l.From.X, 0, l.To.Z-l.From.Z),
			Rotation:   identityQuat(),
			Material:   "debug",
		})
	}
	for i, l := range ov.Vertical {
		addLine("gridv", i, l)
	}
	for i, l := range ov.Horizontal {
		addLine("gridh", i, l)
	}
	for i, lb := range ov.Labels {
		addEntity(g, Entity{
			ID:       fmt.Sprintf("gridlabel_%d", i),
			Kind:     KindGridLabel,
			Position: lb.At,
			Rotation: identityQuat(),
			Material: "debug",
			Metadata: map[string]any{"text": lb.Text},
		})
	}
}
