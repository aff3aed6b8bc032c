package vehicle

import (
	"math"
	"testing"

	"github.com/izzat1998/terminal-pro-sub004/pkg/geo"
	"github.com/izzat1998/terminal-pro-sub004/pkg/transform"
)

func testAnimator(t *testing.T) *Animator {
	t.Helper()
	tr := transform.NewTransformer()
	cs, err := transform.NewCoordinateSystemScale(geo.NewRect(geo.Pt(0, 0), geo.Pt(1000, 1000)), 1)
	if err != nil {
		t.Fatalf("coordinate system: %v", err)
	}
	tr.Set(cs)

	a := NewAnimator(tr)
	a.SetGate("main", geo.Pt(0, 500))
	a.SetPath("main_to_lot", []geo.Point2D{geo.Pt(0, 500), geo.Pt(400, 500), geo.Pt(400, 800)})
	return a
}

func detection(plate string) Detection {
	return Detection{Plate: plate, Category: CategoryTruck, Direction: DirectionEntering, Confidence: 0.95}
}

func TestSpawnAtGate(t *testing.T) {
	a := testAnimator(t)
	actor, ok := a.Spawn(detection("01KZ123"), "main")
	if !ok || actor == nil {
		t.Fatal("spawn at a known gate should succeed")
	}
	if actor.State != StateSpawned {
		t.Errorf("expected spawned state, got %s", actor.State)
	}
	if actor.ID == "" {
		t.Error("actor should get an instance id")
	}
}

func TestSpawnFailureModes(t *testing.T) {
	// Missing coordinate system: no-op, not a crash.
	bare := NewAnimator(transform.NewTransformer())
	bare.SetGate("main", geo.Pt(0, 0))
	if _, ok := bare.Spawn(detection("X"), "main"); ok {
		t.Error("spawn without a coordinate system should not spawn")
	}

	// Unknown gate: no-op.
	a := testAnimator(t)
	if _, ok := a.Spawn(detection("X"), "no_such_gate"); ok {
		t.Error("spawn at unknown gate should not spawn")
	}
}

func TestPlateDeduplication(t *testing.T) {
	a := testAnimator(t)
	if _, ok := a.Spawn(detection("DUP"), "main"); !ok {
		t.Fatal("first spawn should succeed")
	}
	// The detector and the event poller report the same physical event.
	if _, ok := a.Spawn(detection("DUP"), "main"); ok {
		t.Error("second spawn for a live plate must be skipped")
	}
	if len(a.Actors()) != 1 {
		t.Fatalf("expected exactly one live actor, got %d", len(a.Actors()))
	}

	// Removal releases the plate immediately.
	if !a.Remove("DUP") {
		t.Fatal("explicit removal should succeed")
	}
	if _, ok := a.Spawn(detection("DUP"), "main"); !ok {
		t.Error("spawn after removal should succeed")
	}
}

func TestAnimateAlongParks(t *testing.T) {
	a := testAnimator(t)
	a.Spawn(detection("T1"), "main")
	a.DrainEvents()

	var outcome Outcome
	if !a.AnimateAlong("T1", "main_to_lot", 10, func(o Outcome) { outcome = o }) {
		t.Fatal("animation along a known path should start")
	}

	var states []State
	for i := 0; i < 12; i++ {
		for _, ev := range a.Tick() {
			states = append(states, ev.State)
		}
	}
	if outcome != OutcomeCompleted {
		t.Errorf("expected completed outcome, got %q", outcome)
	}

	actors := a.Actors()
	if len(actors) != 1 || actors[0].State != StateParked {
		t.Fatalf("actor should be parked, got %+v", actors)
	}
	// Path ends at drawing (400,800); scene = (400-500, -(800-500)) = (-100,-300).
	if math.Abs(actors[0].Position.X-(-100)) > 1e-9 || math.Abs(actors[0].Position.Z-(-300)) > 1e-9 {
		t.Errorf("parked at %+v, want (-100,0,-300)", actors[0].Position)
	}
	if len(states) == 0 || states[len(states)-1] != StateParked {
		t.Errorf("expected a parked lifecycle event, got %v", states)
	}
}

func TestAnimateNoopCases(t *testing.T) {
	a := testAnimator(t)
	a.Spawn(detection("T1"), "main")

	if a.AnimateAlong("T1", "unknown_path", 10, nil) {
		t.Error("unknown path should be a no-op")
	}
	a.SetPath("single", []geo.Point2D{geo.Pt(0, 0)})
	if a.AnimateAlong("T1", "single", 10, nil) {
		t.Error("a path with fewer than 2 waypoints should be a no-op")
	}
	if a.AnimateAlong("GHOST", "main_to_lot", 10, nil) {
		t.Error("unknown plate should be a no-op")
	}
}

func TestCancellationResolvesAtWaypointBoundary(t *testing.T) {
	a := testAnimator(t)
	a.Spawn(detection("T1"), "main")

	var outcome Outcome
	fired := 0
	a.AnimateAlong("T1", "main_to_lot", 100, func(o Outcome) {
		outcome = o
		fired++
	})

	a.Tick()
	a.Tick()
	if !a.Cancel("T1") {
		t.Fatal("cancel of an in-flight task should succeed")
	}
	a.Tick()

	if fired != 1 || outcome != OutcomeCancelled {
		t.Errorf("expected exactly one cancelled resolution, got %d x %q", fired, outcome)
	}

	actor := a.Actors()[0]
	if actor.State != StateSpawned {
		t.Errorf("cancelled actor should return to spawned, got %s", actor.State)
	}
	// Position must sit exactly on a path waypoint, never mid-segment.
	waypoints := []geo.Point3D{
		{X: -500, Z: 0}, {X: -100, Z: 0}, {X: -100, Z: -300},
	}
	onBoundary := false
	for _, w := range waypoints {
		if geo.GroundDistance(actor.Position, w) < 1e-9 {
			onBoundary = true
		}
	}
	if !onBoundary {
		t.Errorf("cancelled actor stopped mid-segment at %+v", actor.Position)
	}

	// Further ticks never complete the cancelled task.
	for i := 0; i < 200; i++ {
		a.Tick()
	}
	if fired != 1 {
		t.Errorf("cancelled task fired again, total %d", fired)
	}
}

func TestFadeOutRemoves(t *testing.T) {
	a := testAnimator(t)
	a.SetTimings(300, 3)
	a.Spawn(detection("T1"), "main")

	a.AnimateTo("T1", geo.Pt(200, 500), 5, nil)
	for i := 0; i < 5; i++ {
		a.Tick()
	}
	if got := a.Actors(); len(got) != 1 || got[0].State != StateFadingOut {
		t.Fatalf("actor should be fading out, got %+v", got)
	}
	for i := 0; i < 3; i++ {
		a.Tick()
	}
	if a.Live("T1") {
		t.Error("faded-out actor should be removed")
	}
}

func TestParkTimeoutRemoves(t *testing.T) {
	a := testAnimator(t)
	a.SetTimings(4, 60)
	a.Spawn(detection("T1"), "main")
	a.AnimateAlong("T1", "main_to_lot", 2, nil)

	for i := 0; i < 2; i++ {
		a.Tick()
	}
	if got := a.Actors(); len(got) != 1 || got[0].State != StateParked {
		t.Fatalf("actor should be parked, got %+v", got)
	}
	for i := 0; i < 5; i++ {
		a.Tick()
	}
	if a.Live("T1") {
		t.Error("parked actor should auto-remove after the timeout")
	}
	if _, ok := a.Spawn(detection("T1"), "main"); !ok {
		t.Error("plate should be free after auto-removal")
	}
}

func TestRotationFollowsPath(t *testing.T) {
	a := testAnimator(t)
	a.Spawn(detection("T1"), "main")
	a.AnimateAlong("T1", "main_to_lot", 10, nil)

	// First segment heads along +X in scene space: yaw 0.
	a.Tick()
	if yaw := a.Actors()[0].Rotation; math.Abs(yaw) > 1e-9 {
		t.Errorf("first segment yaw should be 0, got %f", yaw)
	}
	// Finish; last segment heads along -Z: yaw -pi/2.
	for i := 0; i < 12; i++ {
		a.Tick()
	}
	if yaw := a.Actors()[0].Rotation; math.Abs(yaw-(-math.Pi/2)) > 1e-9 {
		t.Errorf("final segment yaw should be -pi/2, got %f", yaw)
	}
}

func TestDetectionZoneWindingAgnostic(t *testing.T) {
	square := []geo.Point2D{geo.Pt(0, 0), geo.Pt(10, 0), geo.Pt(10, 10), geo.Pt(0, 10)}
	reversed := []geo.Point2D{geo.Pt(0, 10), geo.Pt(10, 10), geo.Pt(10, 0), geo.Pt(0, 0)}

	cw, err := NewDetectionZone("gate_cam", "main", square)
	if err != nil {
		t.Fatalf("NewDetectionZone: %v", err)
	}
	ccw, err := NewDetectionZone("gate_cam_r", "main", reversed)
	if err != nil {
		t.Fatalf("NewDetectionZone: %v", err)
	}

	if !cw.Contains(geo.Pt(5, 5)) || !ccw.Contains(geo.Pt(5, 5)) {
		t.Error("(5,5) should be inside both windings")
	}
	if cw.Contains(geo.Pt(15, 5)) || ccw.Contains(geo.Pt(15, 5)) {
		t.Error("(15,5) should be outside both windings")
	}
}

func TestDetectionZoneDegenerate(t *testing.T) {
	if _, err := NewDetectionZone("bad", "main", []geo.Point2D{geo.Pt(0, 0), geo.Pt(1, 1)}); err == nil {
		t.Error("two-vertex zone should be rejected")
	}
}

func TestZoneSetContaining(t *testing.T) {
	z1, _ := NewDetectionZone("north", "main", []geo.Point2D{geo.Pt(0, 0), geo.Pt(10, 0), geo.Pt(10, 10), geo.Pt(0, 10)})
	z2, _ := NewDetectionZone("wide", "main", []geo.Point2D{geo.Pt(-5, -5), geo.Pt(20, -5), geo.Pt(20, 20), geo.Pt(-5, 20)})
	set := NewZoneSet(z1, z2)

	got := set.Containing(geo.Pt(5, 5))
	if len(got) != 2 {
		t.Errorf("expected both zones to contain (5,5), got %v", got)
	}
	got = set.Containing(geo.Pt(15, 15))
	if len(got) != 1 || got[0] != "wide" {
		t.Errorf("expected only the wide zone, got %v", got)
	}
}
