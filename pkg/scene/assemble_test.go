package scene

import (
	"testing"

	"github.com/izzat1998/terminal-pro-sub004/pkg/geo"
	"github.com/izzat1998/terminal-pro-sub004/pkg/grid"
	"github.com/izzat1998/terminal-pro-sub004/pkg/placement"
	"github.com/izzat1998/terminal-pro-sub004/pkg/transform"
	"github.com/izzat1998/terminal-pro-sub004/pkg/vehicle"
	"github.com/izzat1998/terminal-pro-sub004/pkg/yardspec"
)

func testSetup(t *testing.T) (*yardspec.YardSpec, *transform.Transformer) {
	t.Helper()
	s := &yardspec.YardSpec{
		SpecVersion: "1.0",
		Name:        "test yard",
		Buildings: []yardspec.BuildingDef{
			{ID: "admin", Name: "Admin office", X: 100, Y: 100, Width: 30, Depth: 15, Height: 8, Kind: "office"},
		},
	}
	tr := transform.NewTransformer()
	cs, err := transform.NewCoordinateSystemScale(geo.NewRect(geo.Pt(0, 0), geo.Pt(1000, 600)), 1)
	if err != nil {
		t.Fatalf("coordinate system: %v", err)
	}
	tr.Set(cs)
	return s, tr
}

func testContainers() []placement.ContainerPosition {
	return []placement.ContainerPosition{
		{
			ID:   "CTRA",
			Zone: "A",
			Kind: placement.Block40ft,
			Tier: 0,
			Data: &placement.ContainerData{Status: placement.StatusLaden, DwellDays: 3},
		},
		{
			ID:   "CTRA.1",
			Zone: "A",
			Kind: placement.Block40ft,
			Tier: 1,
			Data: &placement.ContainerData{Status: placement.StatusEmpty},
		},
		{
			ID:   "HAZ1",
			Zone: "B",
			Kind: placement.Block20ft,
			Tier: 0,
			Data: &placement.ContainerData{Status: placement.StatusLaden, Hazmat: true, HazmatClass: "3"},
		},
	}
}

func TestAssembleGroups(t *testing.T) {
	s, tr := testSetup(t)
	g, err := Assemble(s, tr, testContainers(), nil, nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if len(g.Groups.Kinds[KindContainer]) != 3 {
		t.Errorf("expected 3 containers, got %d", len(g.Groups.Kinds[KindContainer]))
	}
	if len(g.Groups.Kinds[KindBuilding]) != 1 {
		t.Errorf("expected 1 building, got %d", len(g.Groups.Kinds[KindBuilding]))
	}
	if len(g.Groups.Zones["A"]) != 2 || len(g.Groups.Zones["B"]) != 1 {
		t.Errorf("unexpected zone groups: %+v", g.Groups.Zones)
	}
}

func TestAssembleTierElevation(t *testing.T) {
	s, tr := testSetup(t)
	g, err := Assemble(s, tr, testContainers(), nil, nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	byID := make(map[string]Entity)
	for _, e := range g.Entities {
		byID[e.ID] = e
	}
	base, stacked := byID["CTRA"], byID["CTRA.1"]
	if base.Position.Y != 0 {
		t.Errorf("tier 0 should sit on the ground, got Y=%f", base.Position.Y)
	}
	if stacked.Position.Y <= base.Position.Y {
		t.Errorf("tier 1 should sit above tier 0, got %f vs %f", stacked.Position.Y, base.Position.Y)
	}
}

func TestAssembleMaterials(t *testing.T) {
	s, tr := testSetup(t)
	g, _ := Assemble(s, tr, testContainers(), nil, nil)

	byID := make(map[string]Entity)
	for _, e := range g.Entities {
		byID[e.ID] = e
	}
	if byID["HAZ1"].Material != "hazmat" {
		t.Errorf("hazmat container material = %q", byID["HAZ1"].Material)
	}
	if byID["CTRA.1"].Material != "corten_faded" {
		t.Errorf("empty container material = %q", byID["CTRA.1"].Material)
	}
	if byID["HAZ1"].Dimensions.X >= byID["CTRA"].Dimensions.X {
		t.Error("20ft container should be shorter than 40ft")
	}
}

func TestAssembleVehiclesAndOverlay(t *testing.T) {
	s, tr := testSetup(t)
	actors := []vehicle.Actor{{
		ID:    "v-1",
		Plate: "01KZ123",
		State: vehicle.StateAnimating,
	}}
	m, err := grid.NewModel(tr.System().Bounds, 200)
	if err != nil {
		t.Fatalf("grid model: %v", err)
	}
	ov, err := grid.GenerateOverlay(tr, m)
	if err != nil {
		t.Fatalf("overlay: %v", err)
	}

	g, err := Assemble(s, tr, nil, actors, ov)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(g.Groups.Kinds[KindVehicle]) != 1 {
		t.Errorf("expected 1 vehicle, got %d", len(g.Groups.Kinds[KindVehicle]))
	}
	wantLines := (m.Columns() + 1) + (m.Rows() + 1)
	if len(g.Groups.Kinds[KindGridLine]) != wantLines {
		t.Errorf("expected %d grid lines, got %d", wantLines, len(g.Groups.Kinds[KindGridLine]))
	}
	if len(g.Groups.Kinds[KindGridLabel]) != m.Columns()*m.Rows() {
		t.Errorf("expected %d labels, got %d", m.Columns()*m.Rows(), len(g.Groups.Kinds[KindGridLabel]))
	}
}

func TestAssembleBuildingNotReady(t *testing.T) {
	s, _ := testSetup(t)
	if _, err := Assemble(s, transform.NewTransformer(), nil, nil, nil); err == nil {
		t.Error("assembling buildings without a coordinate system should fail")
	}
}

func TestComputeBoundsEmpty(t *testing.T) {
	if bb := computeBounds(nil); bb.Min != bb.Max {
		t.Errorf("empty scene should have zero bounds, got %+v", bb)
	}
}
