// pkg/physics/collision.go
package physics

import "math"

// Circle represents a circular collision shape
type Circle struct {
	Center Vector2D
	Radius float64
}

// Collides checks if two circles are colliding
func (c Circle) Collides(other Circle) bool {
	return c.Center.Distance(other.Center) < c.Radius+other.Radius
}

// CollisionResult contains information about a collision
type CollisionResult struct {
	Collided     bool
	Normal       Vector2D // unit vector from A toward B
	Penetration  float64
	ContactPoint Vector2D
}

// Restitution and friction defaults for hull-on-hull contact. Wooden hulls
// barely bounce; most of the tangential speed survives the scrape.
const (
	DefaultRestitution = 0.3
	DefaultFriction    = 0.2

	// angularKickFactor converts tangential relative speed at the contact
	// into a small spin on both hulls.
	angularKickFactor = 0.003
	maxAngularKick    = 0.8
)

// CheckCollision performs detailed collision detection between two circles.
// Coincident centers resolve to a fixed +X normal so the caller never sees a
// zero-length normal.
func CheckCollision(a, b Circle) CollisionResult {
	normal := b.Center.Sub(a.Center)
	distance := normal.Length()

	if distance > a.Radius+b.Radius {
		return CollisionResult{Collided: false}
	}

	penetration := a.Radius + b.Radius - distance

	if distance == 0 {
		// Deterministic nudge for exactly stacked centers.
		normal = Vector2D{X: 1, Y: 0}
	} else {
		normal = normal.Normalize()
	}
	contactPoint := a.Center.Add(normal.Scale(a.Radius))

	return CollisionResult{
		Collided:     true,
		Normal:       normal,
		Penetration:  penetration,
		ContactPoint: contactPoint,
	}
}

// ResolveOverlap separates two overlapping bodies and applies the contact
// impulse. The positional correction is split in proportion to the other
// body's mass, so a sloop bounces off a galleon far more than the reverse.
// The result must come from CheckCollision(a's circle, b's circle): the
// normal points from a toward b. All applications are equal and opposite,
// so processing a pair as (a, b) or (b, a) yields the same state.
func ResolveOverlap(a, b *Body, result CollisionResult, restitution, friction float64) {
	if !result.Collided {
		return
	}

	massA := math.Max(a.Mass, minMass)
	massB := math.Max(b.Mass, minMass)
	totalMass := massA + massB

	separateBodies(a, b, result, massA, massB, totalMass)

	relVel := b.Velocity.Sub(a.Velocity)
	closingSpeed := relVel.Dot(result.Normal)
	if closingSpeed >= 0 {
		return // already separating
	}

	applyNormalImpulse(a, b, result.Normal, closingSpeed, restitution, massA, massB)
	applyFrictionAndSpin(a, b, result.Normal, relVel, closingSpeed, friction, massA, massB)
}

// separateBodies performs the positional correction along the normal.
func separateBodies(a, b *Body, result CollisionResult, massA, massB, totalMass float64) {
	shift := result.Normal.Scale(result.Penetration)
	a.Position = a.Position.Sub(shift.Scale(massB / totalMass))
	b.Position = b.Position.Add(shift.Scale(massA / totalMass))
}

// applyNormalImpulse applies the 1-D restitution impulse along the normal.
func applyNormalImpulse(a, b *Body, normal Vector2D, closingSpeed, restitution float64, massA, massB float64) {
	impulse := -(1 + restitution) * closingSpeed / (1/massA + 1/massB)
	a.Velocity = a.Velocity.Sub(normal.Scale(impulse / massA))
	b.Velocity = b.Velocity.Add(normal.Scale(impulse / massB))
}

// applyFrictionAndSpin damps the tangential relative velocity (clamped so
// friction can never reverse the slide) and converts a fraction of it into
// an angular kick on both hulls.
func applyFrictionAndSpin(a, b *Body, normal, relVel Vector2D, closingSpeed, friction float64, massA, massB float64) {
	tangentVel := relVel.Sub(normal.Scale(closingSpeed))
	tangentSpeed := tangentVel.Length()
	if tangentSpeed == 0 {
		return
	}
	tangent := tangentVel.Scale(1 / tangentSpeed)

	// Friction impulse, clamped to what would zero the tangential motion.
	maxImpulse := tangentSpeed / (1/massA + 1/massB)
	frictionImpulse := math.Min(friction*tangentSpeed*math.Min(massA, massB), maxImpulse)
	a.Velocity = a.Velocity.Add(tangent.Scale(frictionImpulse / massA))
	b.Velocity = b.Velocity.Sub(tangent.Scale(frictionImpulse / massB))

	// Spin both hulls slightly, signed by which side the scrape happened on.
	spin := Clamp(normal.Cross(tangent)*tangentSpeed*angularKickFactor, -maxAngularKick, maxAngularKick)
	a.AngularVelocity += spin
	b.AngularVelocity -= spin
}
