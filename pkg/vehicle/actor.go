// Package vehicle drives time-based vehicle actors along gate paths
// and evaluates camera detection zones.
package vehicle

import (
	"github.com/izzat1998/terminal-pro-sub004/pkg/geo"
)

// Category is the detected vehicle class.
type Category string

const (
	CategoryTruck     Category = "truck"
	CategoryCar       Category = "car"
	CategoryForklift  Category = "forklift"
	CategoryReachStkr Category = "reach_stacker"
)

// Direction indicates gate traversal direction.
type Direction string

const (
	DirectionEntering Direction = "entering"
	DirectionExiting  Direction = "exiting"
)

// State is an actor's lifecycle state. Parked and Removed are
// terminal; nothing leaves a terminal state except explicit removal.
type State string

const (
	StateSpawned   State = "spawned"
	StateAnimating State = "animating"
	StateFadingOut State = "fading_out"
	StateParked    State = "parked"
	StateRemoved   State = "removed"
)

// Detection is one plate-recognition event from a gate camera or the
// out-of-band event poller. The same physical event can arrive from
// both sources; Plate is the identity key that reconciles them.
type Detection struct {
	Plate      string    `json:"plate"`
	Category   Category  `json:"category"`
	Direction  Direction `json:"direction"`
	Confidence float64   `json:"confidence"`
}

// Actor is a live vehicle in the scene. The animator exclusively owns
// and mutates actor records.
type Actor struct {
	ID        string      `json:"id"`
	Plate     string      `json:"plate"`
	Category  Category    `json:"category"`
	Direction Direction   `json:"direction"`
	Position  geo.Point3D `json:"position"`
	Rotation  float64     `json:"rotation"` // yaw, radians
	State     State       `json:"state"`
}

// Event is a lifecycle notification emitted for the UI log.
type Event struct {
	Tick    int    `json:"tick"`
	ActorID string `json:"actor_id"`
	Plate   string `json:"plate"`
	State   State  `json:"state"`
}

// Outcome distinguishes how an animation task ended.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeCancelled Outcome = "cancelled"
)
