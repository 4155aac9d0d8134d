// pkg/entity/vessel.go
package entity

import (
	"math/rand/v2"

	"github.com/opd-ai/go-armada/pkg/physics"
)

// Vessel is one hull in the simulation: kinematic body, health, weapon
// battery and, for autonomous vessels, a pilot. A vessel at zero health
// starts sinking: it stops answering helm and trigger but keeps coasting on
// momentum until its sink timer runs out, after which it is a ghost awaiting
// removal.
type Vessel struct {
	ID    ID
	Name  string
	Class Class

	Body    *physics.Body
	Battery *Battery

	Health    float64
	MaxHealth float64

	Sinking   bool
	SinkTimer float64
	Sunk      bool

	// Pilot is the optional autonomous-control capability. Nil for the
	// player vessel.
	Pilot Pilot

	stats Stats
}

// NewVessel creates a vessel of the given class at a position and heading.
// rng feeds the battery's randomized reload times and spread.
func NewVessel(id ID, name string, class Class, position physics.Vector2D, heading float64, rng *rand.Rand) *Vessel {
	return NewVesselWithStats(id, name, class, ClassStats(class), position, heading, rng)
}

// NewVesselWithStats creates a vessel from an explicit stat preset. This is
// how elite variants are built: same constructor, larger preset.
func NewVesselWithStats(id ID, name string, class Class, stats Stats, position physics.Vector2D, heading float64, rng *rand.Rand) *Vessel {
	body := physics.NewBody(position, heading, stats.Length, stats.Width)
	body.MaxSpeed = stats.MaxSpeed
	body.ThrustAccel = stats.ThrustAccel
	body.ReverseAccel = stats.ReverseAccel
	body.TurnAccel = stats.TurnAccel
	body.LinearDrag = stats.LinearDrag
	body.AngularDrag = stats.AngularDrag
	body.RudderRate = stats.RudderRate

	return &Vessel{
		ID:        id,
		Name:      name,
		Class:     class,
		Body:      body,
		Battery:   NewBattery(stats, rng),
		Health:    stats.MaxHealth,
		MaxHealth: stats.MaxHealth,
		SinkTimer: stats.SinkDuration,
		stats:     stats,
	}
}

// Stats returns the preset the vessel was built from
func (v *Vessel) Stats() Stats {
	return v.stats
}

// DamageFactor scales thrust and turn authority with hull damage, linear
// from 1.0 at full health down to 0.5 at zero.
func (v *Vessel) DamageFactor() float64 {
	if v.MaxHealth <= 0 {
		return 0.5
	}
	frac := physics.Clamp(v.Health/v.MaxHealth, 0, 1)
	return 0.5 + 0.5*frac
}

// ApplyDamage removes health, clamped into [0, MaxHealth], and reports
// whether this hit put the vessel under. The pilot, if any, is notified so
// its aggression state can flip the same tick.
func (v *Vessel) ApplyDamage(amount, now float64) bool {
	if amount <= 0 || v.Sinking {
		return false
	}
	v.Health -= amount
	if v.Health < 0 {
		v.Health = 0
	}
	if v.Pilot != nil {
		v.Pilot.NotifyDamage(now)
	}
	if v.Health == 0 {
		v.Sinking = true
		return true
	}
	return false
}

// HastenSink shaves time off the sink timer. Applied when a sinking hull
// keeps taking hits.
func (v *Vessel) HastenSink(seconds float64) {
	if !v.Sinking || seconds <= 0 {
		return
	}
	v.SinkTimer -= seconds
}

// Update advances the vessel one tick: battery cooldowns always run down,
// the body integrates under the intent (forced to no-op while sinking so the
// hull coasts to a stop instead of freezing), and fire intent discharges
// both broadsides plus the torpedo tube. Newly fired projectiles are
// appended to out.
func (v *Vessel) Update(dt float64, intent physics.Intent, out *[]*Projectile) {
	v.Battery.Update(dt)

	if v.Sinking {
		v.SinkTimer -= dt
		if v.SinkTimer <= 0 {
			v.Sunk = true
		}
		intent = physics.Intent{}
	}

	v.Body.Integrate(dt, intent, v.DamageFactor())

	if intent.Fire && !v.Sinking {
		v.fire(out)
	}
}

// fire attempts every firing group independently: each broadside discharges
// at most one mount, and the torpedo tube launches if loaded.
func (v *Vessel) fire(out *[]*Projectile) {
	if out == nil {
		return
	}
	for _, side := range []Side{Port, Starboard} {
		if p := v.Battery.Fire(v.ID, side, v.Body); p != nil {
			*out = append(*out, p)
		}
	}
	if p := v.Battery.FireTorpedo(v.ID, v.Body); p != nil {
		*out = append(*out, p)
	}
}

// HullPolygon returns the hull outline in world space
func (v *Vessel) HullPolygon() []physics.Vector2D {
	return v.Body.HullPolygon()
}

// Collider returns the vessel's broad-phase collision circle
func (v *Vessel) Collider() physics.Circle {
	return v.Body.Collider()
}

// Targetable reports whether projectiles can still strike the hull. A
// merely-sinking vessel is still hittable; a fully sunk one is a ghost.
func (v *Vessel) Targetable() bool {
	return !v.Sunk
}
