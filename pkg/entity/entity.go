// pkg/entity/entity.go
package entity

import (
	"sync/atomic"

	"github.com/opd-ai/go-armada/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

var nextID atomic.Uint64

// GenerateID generates a unique ID for entities. Drivers spawn from their own
// goroutines, so the counter is atomic.
func GenerateID() ID {
	return ID(nextID.Add(1))
}

// Pilot is the optional autonomous-control capability of a vessel. A vessel
// with a nil Pilot is externally driven (the player). Code branches on
// "has a pilot", never on a vessel type hierarchy.
type Pilot interface {
	// Decide consumes a world snapshot and emits the helm/trigger command
	// for this tick.
	Decide(dt float64, view WorldView) physics.Intent
	// NotifyDamage informs the pilot its vessel took combat damage at the
	// given simulation time.
	NotifyDamage(now float64)
}

// WorldView is the per-tick snapshot handed to a pilot: its target, the
// other live hulls around it, the world bounds and the simulation clock.
type WorldView struct {
	Target    *Vessel
	Neighbors []*Vessel
	Bounds    physics.Rect
	Now       float64
}
