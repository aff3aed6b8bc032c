package server

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/izzat1998/terminal-pro-sub004/pkg/analytics"
	"github.com/izzat1998/terminal-pro-sub004/pkg/geo"
	"github.com/izzat1998/terminal-pro-sub004/pkg/grid"
	"github.com/izzat1998/terminal-pro-sub004/pkg/picking"
	"github.com/izzat1998/terminal-pro-sub004/pkg/placement"
	"github.com/izzat1998/terminal-pro-sub004/pkg/scene"
	"github.com/izzat1998/terminal-pro-sub004/pkg/transform"
	"github.com/izzat1998/terminal-pro-sub004/pkg/validation"
	"github.com/izzat1998/terminal-pro-sub004/pkg/vehicle"
	"github.com/izzat1998/terminal-pro-sub004/pkg/yardspec"
)

// maxRecentEvents bounds the lifecycle event log kept for the UI.
const maxRecentEvents = 200

// Session owns the complete spatial-engine state of one loaded yard.
// The engine itself is single-threaded by design; the session mutex
// serializes HTTP access so readers never observe a half-swapped
// coordinate system or placement set.
type Session struct {
	mu sync.RWMutex

	Spec     *yardspec.YardSpec
	tr       *transform.Transformer
	model    *grid.Model
	engine   *placement.Engine
	animator *vehicle.Animator
	zones    *vehicle.ZoneSet
	picker   *picking.Session

	// schemaReport is fixed at construction; placeReport is replaced
	// wholesale by each placement pass so the combined report stays
	// bounded no matter how long the poller runs.
	schemaReport *validation.Report
	placeReport  *validation.Report

	recentEvents []vehicle.Event
}

// NewSession validates the spec and wires the engine components.
// Detection zones, gates and paths come from the spec; the coordinate
// system comes from the spec's fallback bounds when present and is
// otherwise supplied later by the drawing collaborator via LoadDrawing.
func NewSession(spec *yardspec.YardSpec) (*Session, error) {
	report := validation.ValidateSchema(spec)
	if !report.Valid {
		return nil, fmt.Errorf("invalid yard spec: %s", report.Summary)
	}

	tr := transform.NewTransformer()
	s := &Session{
		Spec:         spec,
		tr:           tr,
		engine:       placement.NewEngine(tr),
		animator:     vehicle.NewAnimator(tr),
		zones:        vehicle.NewZoneSet(),
		picker:       picking.NewSession(),
		schemaReport: report,
	}
	s.engine.SetPadding(spec.Placement.Padding)

	for _, g := range spec.Gates {
		s.animator.SetGate(g.Name, g.Point())
	}
	for _, p := range spec.Paths {
		s.animator.SetPath(p.Name, p.Points())
	}
	for _, c := range spec.Cameras {
		zone, err := vehicle.NewDetectionZone(c.Name, c.Gate, c.Vertices())
		if err != nil {
			return nil, err
		}
		s.zones.Add(zone)
	}

	if spec.Drawing.Bounds != nil {
		if err := s.LoadDrawing(spec.Drawing.Bounds.Rect(), transform.Unit(spec.Drawing.Units)); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// LoadDrawing installs a coordinate system from drawing bounds and
// units, rebuilds the grid model and re-projects every stored
// container. The swap is atomic with respect to readers.
func (s *Session) LoadDrawing(bounds geo.Rect, units transform.Unit) error {
	cs, err := transform.NewCoordinateSystem(bounds, units)
	if err != nil {
		return err
	}
	model, err := grid.NewModel(bounds, s.Spec.Grid.CellSize)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.animator.CancelAll()
	s.tr.Set(cs)
	s.model = model
	return s.engine.Recenter()
}

// Ready reports whether a coordinate system has loaded.
func (s *Session) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tr.Ready()
}

// PlaceItems replaces the placed container set. The report of the
// previous pass is discarded with the positions it described.
func (s *Session) PlaceItems(items []placement.Item) *validation.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, report := s.engine.Place(items)
	s.placeReport = report
	return report
}

// AddDemoStacks applies the randomized stacking policy from the spec.
// Only meaningful for generated demo data; backend records carry
// authoritative tiers and skip this.
func (s *Session) AddDemoStacks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.Spec.Stacking
	if st.MaxTier == 0 || st.Rate == 0 {
		return 0
	}
	before := len(s.engine.Positions())
	after := s.engine.AddStacking(st.MaxTier, st.Rate, rand.New(rand.NewSource(st.Seed)))
	return len(after) - before
}

// Detect handles one plate detection at a gate: spawn (deduplicated by
// plate) and, when the spec defines an entry path for the gate, start
// the drive-in animation.
func (s *Session) Detect(det vehicle.Detection, gate string) (*vehicle.Actor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor, ok := s.animator.Spawn(det, gate)
	if !ok {
		return nil, false
	}
	entry := gate + "_entry"
	if s.Spec.PathByName(entry) != nil {
		s.animator.AnimateAlong(det.Plate, entry, 120, nil)
	}
	s.collectEvents(s.animator.DrainEvents())
	return actor, true
}

// Tick advances the animation scheduler one frame.
func (s *Session) Tick() []vehicle.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.animator.Tick()
	s.collectEvents(events)
	return events
}

func (s *Session) collectEvents(events []vehicle.Event) {
	s.recentEvents = append(s.recentEvents, events...)
	if n := len(s.recentEvents); n > maxRecentEvents {
		s.recentEvents = s.recentEvents[n-maxRecentEvents:]
	}
}

// RecentEvents returns the retained lifecycle event log.
func (s *Session) RecentEvents() []vehicle.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]vehicle.Event, len(s.recentEvents))
	copy(out, s.recentEvents)
	return out
}

// Actors returns a snapshot of live vehicle actors.
func (s *Session) Actors() []vehicle.Actor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.animator.Actors()
}

// Containers returns a snapshot of placed containers.
func (s *Session) Containers() []placement.ContainerPosition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.Positions()
}

// Scene assembles the current scene graph, with the diagnostic grid
// overlay when requested.
func (s *Session) Scene(includeGrid bool) (*scene.Graph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var overlay *grid.Overlay
	if includeGrid && s.model != nil {
		var err error
		overlay, err = grid.GenerateOverlay(s.tr, s.model)
		if err != nil {
			return nil, err
		}
	}
	return scene.Assemble(s.Spec, s.tr, s.engine.Positions(), s.animator.Actors(), overlay)
}

// Overlay returns the diagnostic grid geometry.
func (s *Session) Overlay() (*grid.Overlay, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.model == nil {
		return nil, transform.ErrNotReady
	}
	return grid.GenerateOverlay(s.tr, s.model)
}

// Stats computes the utilization summary.
func (s *Session) Stats() *analytics.YardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return analytics.Summarize(s.engine.Positions())
}

// Report combines the schema report with the latest placement report.
func (s *Session) Report() *validation.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	combined := validation.NewReport()
	combined.Merge(s.schemaReport)
	if s.placeReport != nil {
		combined.Merge(s.placeReport)
	}
	return combined
}

// Model returns the grid model, or nil before a drawing loads.
func (s *Session) Model() *grid.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

// ZoneForPoint derives the storage zone letter of a drawing point from
// its grid column, matching hover labels exactly.
func (s *Session) ZoneForPoint(p geo.Point2D) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.model == nil {
		return ""
	}
	col, _ := s.model.CellIndex(p)
	return string(grid.ColumnLetter(col))
}

// Picker exposes the hover/selection state for UI event handling.
func (s *Session) Picker() *picking.Session {
	return s.picker
}

// Zones exposes the camera detection zones.
func (s *Session) Zones() *vehicle.ZoneSet {
	return s.zones
}
