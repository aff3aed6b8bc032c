package vehicle

import (
	"math"

	"github.com/google/uuid"

	"github.com/izzat1998/terminal-pro-sub004/pkg/geo"
	"github.com/izzat1998/terminal-pro-sub004/pkg/transform"
)

// Default lifecycle timings, in frame ticks.
const (
	DefaultParkTimeout = 300
	DefaultFadeTicks   = 60
)

// task is one in-flight animation. Tasks are cooperative: the
// scheduler advances each task exactly one step per tick, in spawn
// order, so no two tasks ever interleave within a step.
type task struct {
	plate     string
	waypoints []geo.Point3D
	lengths   []float64 // per segment
	total     float64
	seg       int
	traveled  float64
	perTick   float64
	park      bool
	cancelled bool
	done      func(Outcome)
}

// Animator owns all live vehicle actors of a yard session and advances
// their animations one cooperative step per frame tick.
type Animator struct {
	tr    *transform.Transformer
	gates map[string]geo.Point2D
	paths map[string][]geo.Point2D

	actors map[string]*Actor // keyed by plate while live
	order  []string          // deterministic iteration order
	tasks  map[string]*task

	parkTimeout int
	fadeTicks   int
	parkedAt    map[string]int
	fadeLeft    map[string]int

	tick   int
	events []Event
}

// NewAnimator creates an animator bound to the session transformer.
func NewAnimator(tr *transform.Transformer) *Animator {
	return &Animator{
		tr:          tr,
		gates:       make(map[string]geo.Point2D),
		paths:       make(map[string][]geo.Point2D),
		actors:      make(map[string]*Actor),
		tasks:       make(map[string]*task),
		parkTimeout: DefaultParkTimeout,
		fadeTicks:   DefaultFadeTicks,
		parkedAt:    make(map[string]int),
		fadeLeft:    make(map[string]int),
	}
}

// SetTimings overrides the park-timeout and fade durations in ticks.
func (a *Animator) SetTimings(parkTimeout, fadeTicks int) {
	a.parkTimeout = parkTimeout
	a.fadeTicks = fadeTicks
}

// SetGate registers a named gate spawn point in drawing space.
func (a *Animator) SetGate(name string, p geo.Point2D) {
	a.gates[name] = p
}

// SetPath registers a named waypoint path in drawing space.
func (a *Animator) SetPath(name string, pts []geo.Point2D) {
	a.paths[name] = pts
}

// Spawn creates an actor for a detection at the named gate. It returns
// (nil, false) without error when the gate is unknown, the coordinate
// system has not loaded, or an actor with the same plate is already
// live. Plate deduplication is the invariant that reconciles the
// camera feed with the out-of-band event poller reporting the same
// physical event.
func (a *Animator) Spawn(det Detection, gate string) (*Actor, bool) {
	if !a.tr.Ready() {
		return nil, false
	}
	gatePoint, ok := a.gates[gate]
	if !ok {
		return nil, false
	}
	if _, live := a.actors[det.Plate]; live {
		return nil, false
	}
	pos, err := a.tr.ToScene(gatePoint)
	if err != nil {
		return nil, false
	}

	actor := &Actor{
		ID:        uuid.NewString(),
		Plate:     det.Plate,
		Category:  det.Category,
		Direction: det.Direction,
		Position:  pos,
		State:     StateSpawned,
	}
	a.actors[det.Plate] = actor
	a.order = append(a.order, det.Plate)
	a.emit(actor)
	return a.snapshot(actor), true
}

// AnimateAlong starts an animation along a named path over the given
// number of ticks. Actors that complete the path park. Paths with
// fewer than 2 waypoints, unknown paths and unknown plates are no-ops.
func (a *Animator) AnimateAlong(plate, pathName string, durationTicks int, done func(Outcome)) bool {
	pts, ok := a.paths[pathName]
	if !ok {
		return false
	}
	return a.animate(plate, pts, durationTicks, true, done)
}

// AnimateTo starts an animation from the actor's current position to a
// drawing-space destination. The actor fades out on arrival; this is
// the transient detection demo path.
func (a *Animator) AnimateTo(plate string, dest geo.Point2D, durationTicks int, done func(Outcome)) bool {
	actor, ok := a.actors[plate]
	if !ok || actor.State != StateSpawned {
		return false
	}
	cur, err := a.tr.ToDrawing(actor.Position)
	if err != nil {
		return false
	}
	return a.animate(plate, []geo.Point2D{cur, dest}, durationTicks, false, done)
}

func (a *Animator) animate(plate string, pts []geo.Point2D, durationTicks int, park bool, done func(Outcome)) bool {
	if len(pts) < 2 || durationTicks < 1 {
		return false
	}
	actor, ok := a.actors[plate]
	if !ok || actor.State != StateSpawned {
		return false
	}

	waypoints := make([]geo.Point3D, len(pts))
	for i, p := range pts {
		sp, err := a.tr.ToScene(p)
		if err != nil {
			return false
		}
		waypoints[i] = sp
	}

	t := &task{
		plate:     plate,
		waypoints: waypoints,
		park:      park,
		done:      done,
	}
	for i := 0; i < len(waypoints)-1; i++ {
		l := geo.GroundDistance(waypoints[i], waypoints[i+1])
		t.lengths = append(t.lengths, l)
		t.total += l
	}
	t.perTick = t.total / float64(durationTicks)

	actor.Position = waypoints[0]
	actor.Rotation = segmentYaw(waypoints[0], waypoints[1])
	actor.State = StateAnimating
	a.tasks[plate] = t
	a.emit(actor)
	return true
}

// Cancel requests cancellation of the actor's in-flight animation. The
// task resolves at the next waypoint boundary with OutcomeCancelled
// and the actor returns to the idle spawned state.
func (a *Animator) Cancel(plate string) bool {
	t, ok := a.tasks[plate]
	if !ok {
		return false
	}
	t.cancelled = true
	return true
}

// CancelAll cancels every in-flight animation; used when the session
// reloads its drawing.
func (a *Animator) CancelAll() {
	for _, t := range a.tasks {
		t.cancelled = true
	}
}

// Remove destroys the actor immediately and releases its plate key, so
// a new detection for the same plate can spawn again. Any in-flight
// task is dropped without firing its callback.
func (a *Animator) Remove(plate string) bool {
	actor, ok := a.actors[plate]
	if !ok {
		return false
	}
	delete(a.tasks, plate)
	a.remove(actor)
	return true
}

func (a *Animator) remove(actor *Actor) {
	actor.State = StateRemoved
	a.emit(actor)
	delete(a.actors, actor.Plate)
	delete(a.parkedAt, actor.Plate)
	delete(a.fadeLeft, actor.Plate)
	for i, p := range a.order {
		if p == actor.Plate {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

// Tick advances every animation task one cooperative step, expires
// parked and fading actors, and returns the lifecycle events produced
// since the previous call. Within one tick each task's step runs to
// completion before the next task's, so picking queries between ticks
// always see fully-updated actors.
func (a *Animator) Tick() []Event {
	a.tick++

	for _, plate := range append([]string(nil), a.order...) {
		if t, ok := a.tasks[plate]; ok {
			a.step(t)
		}
	}

	// Fade-out countdowns.
	for _, plate := range append([]string(nil), a.order...) {
		actor := a.actors[plate]
		if actor == nil || actor.State != StateFadingOut {
			continue
		}
		a.fadeLeft[plate]--
		if a.fadeLeft[plate] <= 0 {
			a.remove(actor)
		}
	}

	// Parked actors expire after the timeout.
	for _, plate := range append([]string(nil), a.order...) {
		actor := a.actors[plate]
		if actor == nil || actor.State != StateParked {
			continue
		}
		if a.tick-a.parkedAt[plate] >= a.parkTimeout {
			a.remove(actor)
		}
	}

	return a.drain()
}

func (a *Animator) step(t *task) {
	actor := a.actors[t.plate]
	if actor == nil {
		delete(a.tasks, t.plate)
		return
	}

	if t.cancelled {
		// Resolve at the end of the current segment: a waypoint
		// boundary, with the segment's own rotation.
		boundary := t.seg + 1
		if boundary >= len(t.waypoints) {
			boundary = len(t.waypoints) - 1
		}
		actor.Position = t.waypoints[boundary]
		actor.State = StateSpawned
		delete(a.tasks, t.plate)
		a.emit(actor)
		if t.done != nil {
			t.done(OutcomeCancelled)
		}
		return
	}

	t.traveled += t.perTick
	if t.traveled >= t.total || t.total == 0 {
		a.finish(t, actor)
		return
	}

	// Locate the current segment by cumulative length.
	remaining := t.traveled
	seg := 0
	for seg < len(t.lengths) && remaining > t.lengths[seg] {
		remaining -= t.lengths[seg]
		seg++
	}
	if seg != t.seg {
		t.seg = seg
		actor.Rotation = segmentYaw(t.waypoints[seg], t.waypoints[seg+1])
	}
	frac := 0.0
	if t.lengths[seg] > 0 {
		frac = remaining / t.lengths[seg]
	}
	actor.Position = geo.LerpScene(t.waypoints[seg], t.waypoints[seg+1], frac)
}

func (a *Animator) finish(t *task, actor *Actor) {
	last := len(t.waypoints) - 1
	actor.Position = t.waypoints[last]
	actor.Rotation = segmentYaw(t.waypoints[last-1], t.waypoints[last])
	delete(a.tasks, t.plate)

	if t.park {
		actor.State = StateParked
		a.parkedAt[t.plate] = a.tick
	} else {
		actor.State = StateFadingOut
		a.fadeLeft[t.plate] = a.fadeTicks
	}
	a.emit(actor)
	if t.done != nil {
		t.done(OutcomeCompleted)
	}
}

// Actors returns a snapshot of all live actors in spawn order.
func (a *Animator) Actors() []Actor {
	out := make([]Actor, 0, len(a.order))
	for _, plate := range a.order {
		if actor, ok := a.actors[plate]; ok {
			out = append(out, *actor)
		}
	}
	return out
}

// Live reports whether an actor currently holds the plate key.
func (a *Animator) Live(plate string) bool {
	_, ok := a.actors[plate]
	return ok
}

func (a *Animator) snapshot(actor *Actor) *Actor {
	c := *actor
	return &c
}

func (a *Animator) emit(actor *Actor) {
	a.events = append(a.events, Event{
		Tick:    a.tick,
		ActorID: actor.ID,
		Plate:   actor.Plate,
		State:   actor.State,
	})
}

func (a *Animator) drain() []Event {
	out := a.events
	a.events = nil
	return out
}

// DrainEvents returns pending lifecycle events outside a tick, such as
// spawn notifications.
func (a *Animator) DrainEvents() []Event {
	return a.drain()
}

// segmentYaw returns the heading of a scene segment on the XZ ground
// plane, measured from +X toward +Z.
func segmentYaw(from, to geo.Point3D) float64 {
	return math.Atan2(to.Z-from.Z, to.X-from.X)
}
