package server

import (
	"testing"

	"github.com/izzat1998/terminal-pro-sub004/pkg/geo"
	"github.com/izzat1998/terminal-pro-sub004/pkg/placement"
	"github.com/izzat1998/terminal-pro-sub004/pkg/transform"
	"github.com/izzat1998/terminal-pro-sub004/pkg/vehicle"
	"github.com/izzat1998/terminal-pro-sub004/pkg/yardspec"
)

func testSpec() *yardspec.YardSpec {
	return &yardspec.YardSpec{
		SpecVersion: "1.0",
		Name:        "test yard",
		Drawing: yardspec.DrawingDef{
			Units:  "m",
			Bounds: &yardspec.BoundsDef{MinX: 0, MinY: 0, MaxX: 1000, MaxY: 600},
		},
		Grid:      yardspec.GridDef{CellSize: 100},
		Placement: yardspec.PlacementDef{Padding: 100},
		Stacking:  yardspec.StackingDef{MaxTier: 2, Rate: 0.5, Seed: 7},
		Gates:     []yardspec.GateDef{{Name: "main", X: 10, Y: 300}},
		Cameras: []yardspec.CameraDef{{
			Name:    "cam_main",
			Gate:    "main",
			Polygon: [][2]float64{{0, 280}, {40, 280}, {40, 320}, {0, 320}},
		}},
		Paths: []yardspec.PathDef{{
			Name:      "main_entry",
			Waypoints: [][2]float64{{10, 300}, {200, 300}},
		}},
	}
}

func testItems() []placement.Item {
	return []placement.Item{
		{ID: "CTRA", Zone: "A", Point: geo.Pt(50, 550), Kind: placement.Block40ft,
			Data: &placement.ContainerData{Status: placement.StatusLaden, DwellDays: 3}},
		{ID: "CTRB", Zone: "A", Point: geo.Pt(150, 550), Kind: placement.Block20ft,
			Data: &placement.ContainerData{Status: placement.StatusEmpty}},
	}
}

func TestNewSessionRejectsInvalidSpec(t *testing.T) {
	s := testSpec()
	s.Drawing.Units = "furlongs"
	if _, err := NewSession(s); err == nil {
		t.Fatal("unknown drawing units should fail session construction")
	}
}

func TestNewSessionReadyFromFallbackBounds(t *testing.T) {
	s, err := NewSession(testSpec())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if !s.Ready() {
		t.Error("spec bounds should load a coordinate system")
	}
	if s.Model() == nil {
		t.Error("spec bounds should build a grid model")
	}
}

func TestLoadDrawingRecenters(t *testing.T) {
	s, err := NewSession(testSpec())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if r := s.PlaceItems(testItems()); !r.Valid {
		t.Fatalf("placement failed: %s", r.Summary)
	}
	before := s.Containers()[0].Scene

	// Shift the drawing bounds; the authoritative drawing point must
	// re-project against the new center.
	if err := s.LoadDrawing(geo.NewRect(geo.Pt(0, 0), geo.Pt(2000, 600)), transform.UnitMeters); err != nil {
		t.Fatalf("LoadDrawing: %v", err)
	}
	after := s.Containers()[0].Scene
	if before.X == after.X {
		t.Error("recenter should change the projected scene position")
	}
}

func TestDetectStartsEntryAnimation(t *testing.T) {
	s, err := NewSession(testSpec())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	det := vehicle.Detection{Plate: "01KZ123AA", Category: vehicle.CategoryTruck, Confidence: 0.93}

	actor, ok := s.Detect(det, "main")
	if !ok {
		t.Fatal("first detection should spawn")
	}
	if actor.Plate != "01KZ123AA" {
		t.Errorf("actor plate = %q", actor.Plate)
	}
	if _, ok := s.Detect(det, "main"); ok {
		t.Error("duplicate plate should not spawn a second actor")
	}

	actors := s.Actors()
	if len(actors) != 1 || actors[0].State != vehicle.StateAnimating {
		t.Fatalf("spec defines main_entry, actor should be animating: %+v", actors)
	}
	for i := 0; i < 120; i++ {
		s.Tick()
	}
	actors = s.Actors()
	if len(actors) != 1 || actors[0].State != vehicle.StateParked {
		t.Errorf("actor should park after the entry drive, got %+v", actors)
	}
}

func TestAddDemoStacks(t *testing.T) {
	s, err := NewSession(testSpec())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	s.PlaceItems(testItems())
	added := s.AddDemoStacks()
	if got := len(s.Containers()); got != len(testItems())+added {
		t.Errorf("container count %d does not match %d placed + %d stacked",
			got, len(testItems()), added)
	}

	s2, _ := NewSession(testSpec())
	s2.PlaceItems(testItems())
	if s2.AddDemoStacks() != added {
		t.Error("stacking with the same seed should be deterministic")
	}
}

func TestReportBoundedAcrossRefreshes(t *testing.T) {
	s, err := NewSession(testSpec())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	s.PlaceItems(testItems())
	first := s.Report()
	s.PlaceItems(testItems())
	second := s.Report()

	// Each placement pass replaces the previous pass's findings; a
	// server polling every 30 seconds must not accumulate them.
	if len(second.Info) != len(first.Info) {
		t.Errorf("info entries grew from %d to %d across refreshes",
			len(first.Info), len(second.Info))
	}
	if len(second.Errors) != len(first.Errors) || len(second.Warnings) != len(first.Warnings) {
		t.Errorf("report grew across refreshes: %s then %s", first.Summary, second.Summary)
	}
	if !second.Valid {
		t.Error("combined report should stay valid")
	}
}

func TestZoneForPoint(t *testing.T) {
	s, err := NewSession(testSpec())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if z := s.ZoneForPoint(geo.Pt(50, 550)); z != "A" {
		t.Errorf("first column should be zone A, got %q", z)
	}
	if z := s.ZoneForPoint(geo.Pt(250, 550)); z != "C" {
		t.Errorf("third column should be zone C, got %q", z)
	}
}
