// pkg/ai/controller.go

// Package ai implements the autonomous vessel controller: a two-state
// aggression machine (passive wandering vs. engaged) feeding a blended
// steering signal. Pursuit, broadside presentation, neighbor separation,
// edge avoidance and wandering all collapse into one desired heading plus a
// contextual throttle, which keeps the per-tick cost linear in neighbors and
// the emergent motion smooth.
package ai

import (
	"math"
	"math/rand/v2"

	"github.com/opd-ai/go-armada/pkg/entity"
	"github.com/opd-ai/go-armada/pkg/physics"
)

// Controller drives one autonomous vessel. It implements entity.Pilot.
type Controller struct {
	vessel        *entity.Vessel
	tuning        Tuning
	preferredSide entity.Side

	aggressive       bool
	forcedAggressive bool
	lastDamageAt     float64

	wanderTarget *physics.Vector2D
	wanderTimer  float64

	travelDest *physics.Vector2D

	rng *rand.Rand
}

// NewController creates a controller for the given vessel with a fixed
// broadside preference.
func NewController(vessel *entity.Vessel, preferredSide entity.Side, tuning Tuning, rng *rand.Rand) *Controller {
	return &Controller{
		vessel:        vessel,
		tuning:        tuning,
		preferredSide: preferredSide,
		rng:           rng,
	}
}

// ForceAggressive pins the controller in the aggressive state. Used by the
// elite vessel factory; the passive timeout no longer applies.
func (c *Controller) ForceAggressive() {
	c.forcedAggressive = true
	c.aggressive = true
}

// Aggressive reports whether the controller is currently engaged
func (c *Controller) Aggressive() bool {
	return c.aggressive || c.forcedAggressive
}

// PreferredSide returns the fixed broadside preference
func (c *Controller) PreferredSide() entity.Side {
	return c.preferredSide
}

// SetTravel puts the controller in travel mode: direct pursuit of a fixed
// destination at cruise speed, still avoidance-blended. It cancels on damage
// or on arrival.
func (c *Controller) SetTravel(dest physics.Vector2D) {
	d := dest
	c.travelDest = &d
}

// Travelling reports whether a travel destination is set
func (c *Controller) Travelling() bool {
	return c.travelDest != nil
}

// WanderTarget returns the current wander target, or nil
func (c *Controller) WanderTarget() *physics.Vector2D {
	return c.wanderTarget
}

// NotifyDamage flips the controller aggressive the moment its vessel is
// hurt. Travel mode is abandoned; the fight comes first.
func (c *Controller) NotifyDamage(now float64) {
	c.aggressive = true
	c.lastDamageAt = now
	c.travelDest = nil
}

// Decide consumes the world snapshot and emits this tick's helm and trigger
// command.
func (c *Controller) Decide(dt float64, view entity.WorldView) physics.Intent {
	c.updateAggression(view.Now)

	desiredHeading, desiredSpeed := c.desiredCourse(dt, view)
	desiredHeading = c.blendAvoidance(desiredHeading, view)

	intent := physics.Intent{}
	c.steerToward(&intent, desiredHeading)
	c.throttleToward(&intent, desiredSpeed, view.Bounds)
	intent.Fire = c.shouldFire(view)
	return intent
}

// updateAggression drops back to passive once the passive timeout has passed
// with no fresh damage, clearing the wander state on the transition.
func (c *Controller) updateAggression(now float64) {
	if !c.aggressive || c.forcedAggressive {
		return
	}
	if now-c.lastDamageAt > c.tuning.PassiveTimeout {
		c.aggressive = false
		c.wanderTarget = nil
		c.wanderTimer = 0
	}
}

// desiredCourse picks the raw desired heading and speed before avoidance:
// travel destination, then engagement geometry, then wandering.
func (c *Controller) desiredCourse(dt float64, view entity.WorldView) (heading, speed float64) {
	maxSpeed := c.vessel.Body.MaxSpeed

	if c.travelDest != nil {
		if c.vessel.Body.Position.Distance(*c.travelDest) <= c.tuning.TravelReach {
			c.travelDest = nil
		} else {
			bearing := c.travelDest.Sub(c.vessel.Body.Position).Angle()
			return bearing, maxSpeed * c.tuning.CruiseSpeedFrac
		}
	}

	target := view.Target
	if c.Aggressive() && target != nil && target.Targetable() {
		return c.engagementCourse(target, maxSpeed)
	}

	return c.wanderCourse(dt, view, maxSpeed)
}

// engagementCourse closes on the target at full speed until combat range,
// then turns to present the preferred broadside and holds a moderate speed.
func (c *Controller) engagementCourse(target *entity.Vessel, maxSpeed float64) (float64, float64) {
	toTarget := target.Body.Position.Sub(c.vessel.Body.Position)
	bearing := toTarget.Angle()
	distance := toTarget.Length()

	if distance > c.tuning.CombatRange {
		return bearing, maxSpeed * c.tuning.CloseSpeedFrac
	}

	// Broadside presentation: heading perpendicular to the bearing, signed
	// so the target ends up on the preferred side.
	presentation := bearing - math.Pi/2
	if c.preferredSide == entity.Port {
		presentation = bearing + math.Pi/2
	}
	return physics.NormalizeAngle(presentation), maxSpeed * c.tuning.HoldSpeedFrac
}

// wanderCourse steers toward the current wander target, choosing a fresh one
// when none exists, the old one was reached, or its timer ran out.
func (c *Controller) wanderCourse(dt float64, view entity.WorldView, maxSpeed float64) (float64, float64) {
	c.wanderTimer -= dt

	if c.wanderTarget != nil &&
		c.vessel.Body.Position.Distance(*c.wanderTarget) <= c.tuning.WanderReach {
		c.wanderTarget = nil
	}
	if c.wanderTimer <= 0 {
		c.wanderTarget = nil
	}
	if c.wanderTarget == nil {
		c.pickWanderTarget(view.Bounds)
	}

	bearing := c.wanderTarget.Sub(c.vessel.Body.Position).Angle()
	return bearing, maxSpeed * c.tuning.HoldSpeedFrac
}

// pickWanderTarget chooses a random point strictly inside the bounds shrunk
// by the wander pad and rolls a fresh timer from the configured band.
func (c *Controller) pickWanderTarget(bounds physics.Rect) {
	safe := bounds.Inset(c.tuning.WanderPad)
	target := physics.Vector2D{
		X: safe.MinX + c.rng.Float64()*safe.Width(),
		Y: safe.MinY + c.rng.Float64()*safe.Height(),
	}
	c.wanderTarget = &target
	span := c.tuning.WanderTimeMax - c.tuning.WanderTimeMin
	if span < 0 {
		span = 0
	}
	c.wanderTimer = c.tuning.WanderTimeMin + c.rng.Float64()*span
}

// blendAvoidance folds the repulsion field (neighbors plus world edges) into
// the desired heading. Avoidance gets less say while engaged: combat
// geometry outranks comfort.
func (c *Controller) blendAvoidance(desiredHeading float64, view entity.WorldView) float64 {
	avoid := c.avoidanceVector(view)
	if avoid.LengthSquared() == 0 {
		return desiredHeading
	}

	weight := c.tuning.AvoidWeightPassive
	if c.Aggressive() {
		weight = c.tuning.AvoidWeightCombat
	}

	blended := physics.FromAngle(desiredHeading, 1).Scale(1 - weight).
		Add(avoid.Normalize().Scale(weight))
	if blended.LengthSquared() == 0 {
		return desiredHeading
	}
	return blended.Angle()
}

// avoidanceVector sums inverse-distance-weighted repulsion from close
// neighbors and linear repulsion from nearby world edges. An empty result
// simply means nothing to avoid.
func (c *Controller) avoidanceVector(view entity.WorldView) physics.Vector2D {
	pos := c.vessel.Body.Position
	separation := c.tuning.SeparationFactor * c.vessel.Body.Length

	var repulse physics.Vector2D
	for _, other := range view.Neighbors {
		if other == nil || other.ID == c.vessel.ID || !other.Targetable() {
			continue
		}
		away := pos.Sub(other.Body.Position)
		distance := away.Length()
		if distance == 0 || distance >= separation {
			// Coincident hulls are left to the collision solver's nudge.
			continue
		}
		repulse = repulse.Add(away.Scale((separation - distance) / (distance * separation)))
	}

	repulse = repulse.Add(c.edgeRepulsion(pos, view.Bounds))
	return repulse
}

// edgeRepulsion pushes linearly inward from any world edge closer than the
// edge margin.
func (c *Controller) edgeRepulsion(pos physics.Vector2D, bounds physics.Rect) physics.Vector2D {
	margin := c.tuning.EdgeMargin
	if margin <= 0 {
		return physics.Vector2D{}
	}

	var push physics.Vector2D
	if d := pos.X - bounds.MinX; d < margin {
		push.X += (margin - d) / margin
	}
	if d := bounds.MaxX - pos.X; d < margin {
		push.X -= (margin - d) / margin
	}
	if d := pos.Y - bounds.MinY; d < margin {
		push.Y += (margin - d) / margin
	}
	if d := bounds.MaxY - pos.Y; d < margin {
		push.Y -= (margin - d) / margin
	}
	return push
}

// steerToward sets the turn flags from the signed heading error, past a
// small dead-band so the rudder is not sawed back and forth on course.
func (c *Controller) steerToward(intent *physics.Intent, desiredHeading float64) {
	err := physics.AngleDiff(c.vessel.Body.Heading, desiredHeading)
	if err > c.tuning.TurnDeadBand {
		intent.TurnRight = true
	} else if err < -c.tuning.TurnDeadBand {
		intent.TurnLeft = true
	}
}

// throttleToward sets the thrust flags comparing current forward speed to
// the desired speed with a tolerance band. Desired speed is further reduced
// near the world edge.
func (c *Controller) throttleToward(intent *physics.Intent, desiredSpeed float64, bounds physics.Rect) {
	if c.nearEdge(bounds) {
		edgeSpeed := c.vessel.Body.MaxSpeed * c.tuning.EdgeSpeedFrac
		if desiredSpeed > edgeSpeed {
			desiredSpeed = edgeSpeed
		}
	}

	current := c.vessel.Body.ForwardSpeed()
	if current < desiredSpeed-c.tuning.ThrottleTolerance {
		intent.ThrustForward = true
	} else if current > desiredSpeed+c.tuning.ThrottleTolerance {
		intent.ThrustReverse = true
	}
}

// nearEdge reports whether the vessel sits within the edge margin of any
// world boundary.
func (c *Controller) nearEdge(bounds physics.Rect) bool {
	pos := c.vessel.Body.Position
	margin := c.tuning.EdgeMargin
	return pos.X-bounds.MinX < margin ||
		bounds.MaxX-pos.X < margin ||
		pos.Y-bounds.MinY < margin ||
		bounds.MaxY-pos.Y < margin
}

// shouldFire gates the trigger: engaged, target inside weapon range but past
// the minimum-range guard, and the bearing within alignment tolerance of
// either broadside normal.
func (c *Controller) shouldFire(view entity.WorldView) bool {
	target := view.Target
	if !c.Aggressive() || target == nil || !target.Targetable() {
		return false
	}

	toTarget := target.Body.Position.Sub(c.vessel.Body.Position)
	distance := toTarget.Length()
	if distance < c.tuning.MinFireRange || distance > c.tuning.WeaponRange {
		return false
	}

	bearing := toTarget.Angle()
	for _, side := range []entity.Side{entity.Port, entity.Starboard} {
		sideBearing := side.Normal(c.vessel.Body.Heading).Angle()
		if math.Abs(physics.AngleDiff(sideBearing, bearing)) <= c.tuning.AlignTolerance {
			return true
		}
	}
	return false
}
