// pkg/engine/collision.go
package engine

import (
	"math"
	"sort"

	"github.com/opd-ai/go-armada/pkg/config"
	"github.com/opd-ai/go-armada/pkg/entity"
	"github.com/opd-ai/go-armada/pkg/event"
	"github.com/opd-ai/go-armada/pkg/physics"
)

// positionPasses is how many times the pairwise ship-ship pass runs per
// tick. Two passes settle the positional corrections of pile-ups that a
// single pass leaves overlapping.
const positionPasses = 2

// bowDamageReturn is the fraction of the ramming damage the rammer takes
// back on a clean bow strike.
const bowDamageReturn = 1.0 / 3.0

// sideDamageShare is each hull's share of the speed-proportional damage
// when neither (or both) struck bow-first.
const sideDamageShare = 0.5

// pairKey identifies an unordered vessel pair
type pairKey struct {
	a, b entity.ID
}

// makePairKey normalizes the pair so (a,b) and (b,a) collide into one key
func makePairKey(a, b entity.ID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// Resolver owns the two-stage collision pipeline: the ship-ship physics
// solver with ramming damage, and the projectile-hull hit tester. Ramming
// damage for a given pair is rate-limited by a per-pair cooldown so two
// hulls grinding along each other are not shredded every tick.
type Resolver struct {
	restitution    float64
	friction       float64
	ramCooldown    float64
	ramDamageScale float64
	bowCone        float64 // radians
	sinkHasten     float64

	ramTimers map[pairKey]float64
	bus       *event.Bus
}

// newResolver creates a resolver from the physics configuration
func newResolver(cfg config.PhysicsConfig, bus *event.Bus) *Resolver {
	return &Resolver{
		restitution:    cfg.Restitution,
		friction:       cfg.Friction,
		ramCooldown:    cfg.RamCooldown,
		ramDamageScale: cfg.RamDamageScale,
		bowCone:        cfg.BowConeDegrees * math.Pi / 180,
		sinkHasten:     cfg.SinkHastenPerHit,
		ramTimers:      make(map[pairKey]float64),
		bus:            bus,
	}
}

// Update advances the per-pair ram cooldowns and drops the expired ones
func (r *Resolver) Update(dt float64) {
	for key, timer := range r.ramTimers {
		timer -= dt
		if timer <= 0 {
			delete(r.ramTimers, key)
		} else {
			r.ramTimers[key] = timer
		}
	}
}

// ResolveVessels runs the pairwise ship-ship pass. Every unordered pair of
// non-fully-sunk hulls is tested circle-against-circle; overlaps get a
// positional correction plus impulse, and on the first pass ramming damage
// keyed by the pair's cooldown. vessels must already be in stable order.
func (r *Resolver) ResolveVessels(vessels []*entity.Vessel, now float64) {
	for pass := 0; pass < positionPasses; pass++ {
		for i := 0; i < len(vessels); i++ {
			for j := i + 1; j < len(vessels); j++ {
				r.resolvePair(vessels[i], vessels[j], pass == 0, now)
			}
		}
	}
}

// resolvePair handles one vessel pair: overlap test, physics response and,
// on damage passes, ramming damage from the pre-impulse closing speed.
func (r *Resolver) resolvePair(a, b *entity.Vessel, damagePass bool, now float64) {
	if a.Sunk || b.Sunk {
		return
	}

	result := physics.CheckCollision(a.Collider(), b.Collider())
	if !result.Collided {
		return
	}

	// Closing speed along the normal, captured before the impulse wipes it.
	closingSpeed := -b.Body.Velocity.Sub(a.Body.Velocity).Dot(result.Normal)

	physics.ResolveOverlap(a.Body, b.Body, result, r.restitution, r.friction)

	if damagePass && closingSpeed > 0 {
		r.applyRamDamage(a, b, closingSpeed, now)
	}
}

// applyRamDamage deals hull-to-hull impact damage once per pair per
// cooldown. A strike inside exactly one hull's bow cone is a deliberate
// ram: the struck hull takes the full speed-proportional share and the
// rammer takes a third of it back. Otherwise it is a mutual scrape and both
// take the smaller equal share.
func (r *Resolver) applyRamDamage(a, b *entity.Vessel, closingSpeed, now float64) {
	key := makePairKey(a.ID, b.ID)
	if _, cooling := r.ramTimers[key]; cooling {
		return
	}
	r.ramTimers[key] = r.ramCooldown

	aBow := r.bowStrike(a, b)
	bBow := r.bowStrike(b, a)

	var damageA, damageB float64
	var bowRam bool
	var rammer *entity.Vessel

	switch {
	case aBow && !bBow:
		bowRam, rammer = true, a
		damageB = closingSpeed * r.ramDamageScale
		damageA = damageB * bowDamageReturn
	case bBow && !aBow:
		bowRam, rammer = true, b
		damageA = closingSpeed * r.ramDamageScale
		damageB = damageA * bowDamageReturn
	default:
		damageA = closingSpeed * r.ramDamageScale * sideDamageShare
		damageB = damageA
	}

	r.damageVessel(a, damageA, now)
	r.damageVessel(b, damageB, now)

	rammerID := uint64(0)
	if rammer != nil {
		rammerID = uint64(rammer.ID)
	}
	r.bus.Publish(event.NewRamEvent(
		r,
		uint64(a.ID),
		uint64(b.ID),
		bowRam,
		rammerID,
		damageA,
		damageB,
	))
}

// bowStrike reports whether v is hitting other inside its bow cone
func (r *Resolver) bowStrike(v, other *entity.Vessel) bool {
	toOther := other.Body.Position.Sub(v.Body.Position)
	if toOther.LengthSquared() == 0 {
		return false
	}
	offBow := physics.AngleDiff(v.Body.Heading, toOther.Angle())
	return math.Abs(offBow) <= r.bowCone
}

// damageVessel applies ram damage and publishes the sinking transition
func (r *Resolver) damageVessel(v *entity.Vessel, damage, now float64) {
	if damage <= 0 {
		return
	}
	if v.ApplyDamage(damage, now) {
		r.bus.Publish(event.NewVesselEvent(
			event.VesselSinking,
			r,
			uint64(v.ID),
			v.Class.String(),
			false,
		))
	}
}

// ResolveProjectiles tests every live projectile against the hulls near it.
// The first hull whose polygon the projectile touches takes the range-faded
// damage; the projectile dies on impact. Fully sunk hulls are ghosts, but a
// merely sinking hull still soaks hits, which also hasten its sinking.
func (r *Resolver) ResolveProjectiles(g *Game, now float64) {
	for _, projectile := range g.orderedProjectiles() {
		if !projectile.Alive() {
			continue
		}
		r.resolveProjectile(g, projectile, now)
	}
}

// resolveProjectile broad-phases one projectile through the spatial index
// and narrow-phases against candidate hull polygons.
func (r *Resolver) resolveProjectile(g *Game, projectile *entity.Projectile, now float64) {
	span := projectile.Radius + g.maxHullReach
	area := physics.Rect{
		MinX: projectile.Position.X - span,
		MinY: projectile.Position.Y - span,
		MaxX: projectile.Position.X + span,
		MaxY: projectile.Position.Y + span,
	}

	candidates := make([]*entity.Vessel, 0, 4)
	for _, obj := range g.SpatialIndex.Query(area) {
		if vessel, ok := obj.(*entity.Vessel); ok {
			candidates = append(candidates, vessel)
		}
	}
	// Hulls the index rejected are always candidates.
	candidates = append(candidates, g.indexOverflow...)
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ID < candidates[j].ID
	})

	for _, vessel := range candidates {
		if vessel.ID == projectile.OwnerID || !vessel.Targetable() {
			continue
		}
		if !physics.CircleTouchesPolygon(projectile.Position, projectile.Radius, vessel.HullPolygon()) {
			continue
		}
		r.applyProjectileHit(vessel, projectile, now)
		return
	}
}

// applyProjectileHit damages the struck hull, kills the projectile and
// publishes the hit with everything a driver needs to react. A hit on an
// already sinking hull hastens the sinking instead of dealing health damage,
// and the event reports zero so drivers crediting damage are not over-paid.
func (r *Resolver) applyProjectileHit(vessel *entity.Vessel, projectile *entity.Projectile, now float64) {
	dealt := projectile.Damage()
	lethal := false
	if vessel.Sinking {
		dealt = 0
		vessel.HastenSink(r.sinkHasten)
	} else {
		lethal = vessel.ApplyDamage(dealt, now)
	}
	projectile.Kill()

	r.bus.Publish(event.NewHitEvent(
		r,
		uint64(projectile.ID),
		uint64(projectile.OwnerID),
		uint64(vessel.ID),
		dealt,
		lethal,
	))
	if lethal {
		r.bus.Publish(event.NewVesselEvent(
			event.VesselSinking,
			r,
			uint64(vessel.ID),
			vessel.Class.String(),
			false,
		))
	}
}
