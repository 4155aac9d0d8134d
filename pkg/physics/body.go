// pkg/physics/body.go
package physics

import "math"

// Intent is the helm and trigger command applied to a body for one tick.
// Controllers (player input or AI) produce one Intent per tick.
type Intent struct {
	ThrustForward bool
	ThrustReverse bool
	TurnLeft      bool
	TurnRight     bool
	Fire          bool
}

// Turn authority scales with speed: a ship dead in the water barely answers
// the rudder, a ship at full speed turns hard.
const (
	minTurnAuthority = 0.4
	maxTurnAuthority = 1.6
)

// minMass is the floor applied to derived mass so impulse math never divides
// by a non-positive value.
const minMass = 1.0

// Body holds the kinematic state of one hull: position, velocity, heading,
// angular velocity and the smoothed rudder, plus the tuning constants that
// drive integration.
type Body struct {
	Position        Vector2D
	Velocity        Vector2D
	Heading         float64 // radians, 0 points along +X
	AngularVelocity float64
	Rudder          float64 // smoothed, in [-1, 1]

	Length float64
	Width  float64
	Mass   float64
	Radius float64 // broad-phase collision circle

	MaxSpeed     float64
	ThrustAccel  float64
	ReverseAccel float64
	TurnAccel    float64
	LinearDrag   float64
	AngularDrag  float64
	RudderRate   float64 // rudder travel per second toward the commanded value
}

// NewBody creates a body at the given position and heading with hull
// dimensions. Mass is proportional to the hull footprint and floored so the
// collision solver never sees a degenerate mass.
func NewBody(position Vector2D, heading, length, width float64) *Body {
	mass := length * width
	if mass < minMass {
		mass = minMass
	}
	return &Body{
		Position: position,
		Heading:  NormalizeAngle(heading),
		Length:   length,
		Width:    width,
		Mass:     mass,
		Radius:   length * 0.4,
	}
}

// HeadingVector returns the unit vector along the current heading
func (b *Body) HeadingVector() Vector2D {
	return FromAngle(b.Heading, 1)
}

// ForwardSpeed returns the velocity component along the heading. Negative
// values mean the hull is making sternway.
func (b *Body) ForwardSpeed() float64 {
	return b.Velocity.Dot(b.HeadingVector())
}

// Integrate advances the body by dt seconds under the given intent.
// damageFactor scales thrust and turning (1.0 healthy down to 0.5 wrecked).
// A sinking vessel passes the zero Intent so only drag and momentum apply.
func (b *Body) Integrate(dt float64, intent Intent, damageFactor float64) {
	if dt < 0 {
		dt = 0
	}

	b.applyThrust(dt, intent, damageFactor)
	b.capSpeed()
	b.applyRudder(dt, intent, damageFactor)
	b.applyDrag(dt)

	b.Position = b.Position.Add(b.Velocity.Scale(dt))
	b.Heading = NormalizeAngle(b.Heading + b.AngularVelocity*dt)
}

// applyThrust accelerates along the heading for forward thrust and against
// it for reverse. Reverse uses its own, weaker acceleration.
func (b *Body) applyThrust(dt float64, intent Intent, damageFactor float64) {
	if intent.ThrustForward {
		accel := FromAngle(b.Heading, b.ThrustAccel*damageFactor)
		b.Velocity = b.Velocity.Add(accel.Scale(dt))
	}
	if intent.ThrustReverse {
		accel := FromAngle(b.Heading, -b.ReverseAccel*damageFactor)
		b.Velocity = b.Velocity.Add(accel.Scale(dt))
	}
}

// capSpeed rescales the whole velocity vector when it exceeds MaxSpeed.
// Rescaling rather than per-axis clamping keeps the travel direction intact.
func (b *Body) capSpeed() {
	if b.MaxSpeed <= 0 {
		return
	}
	if b.Velocity.Length() > b.MaxSpeed {
		b.Velocity = b.Velocity.Normalize().Scale(b.MaxSpeed)
	}
}

// applyRudder moves the smoothed rudder toward the commanded direction and
// converts it into angular acceleration scaled by damage and speed.
func (b *Body) applyRudder(dt float64, intent Intent, damageFactor float64) {
	command := 0.0
	if intent.TurnLeft {
		command -= 1
	}
	if intent.TurnRight {
		command += 1
	}

	step := b.RudderRate * dt
	if b.Rudder < command {
		b.Rudder = math.Min(b.Rudder+step, command)
	} else if b.Rudder > command {
		b.Rudder = math.Max(b.Rudder-step, command)
	}
	b.Rudder = Clamp(b.Rudder, -1, 1)

	b.AngularVelocity += b.Rudder * b.TurnAccel * damageFactor * b.turnAuthority() * dt
}

// turnAuthority maps current speed onto the [minTurnAuthority,
// maxTurnAuthority] band.
func (b *Body) turnAuthority() float64 {
	if b.MaxSpeed <= 0 {
		return minTurnAuthority
	}
	frac := Clamp(b.Velocity.Length()/b.MaxSpeed, 0, 1)
	return minTurnAuthority + (maxTurnAuthority-minTurnAuthority)*frac
}

// applyDrag damps linear and angular velocity with the 1/(1+k*dt) form,
// which stays stable for any non-negative dt.
func (b *Body) applyDrag(dt float64) {
	b.Velocity = b.Velocity.Scale(1 / (1 + b.LinearDrag*dt))
	b.AngularVelocity *= 1 / (1 + b.AngularDrag*dt)
}

// HullPolygon returns the hull outline in world space: a rectangle pinched
// into a bow point at the front. Used for precise projectile hit testing.
func (b *Body) HullPolygon() []Vector2D {
	halfL := b.Length / 2
	halfW := b.Width / 2
	local := []Vector2D{
		{X: halfL * 1.1, Y: 0}, // bow tip
		{X: halfL * 0.5, Y: -halfW},
		{X: -halfL, Y: -halfW},
		{X: -halfL, Y: halfW},
		{X: halfL * 0.5, Y: halfW},
	}
	world := make([]Vector2D, len(local))
	for i, p := range local {
		world[i] = p.Rotate(b.Heading).Add(b.Position)
	}
	return world
}

// Collider returns the broad-phase collision circle for the body
func (b *Body) Collider() Circle {
	return Circle{Center: b.Position, Radius: b.Radius}
}

// Sanitize replaces any non-finite kinematic state with a safe fallback and
// reports whether a reset happened. A corrupted entity is clamped in place
// rather than allowed to poison the rest of the tick.
func (b *Body) Sanitize(fallback Vector2D) bool {
	reset := false
	if !b.Position.IsFinite() {
		b.Position = fallback
		reset = true
	}
	if !b.Velocity.IsFinite() {
		b.Velocity = Vector2D{}
		reset = true
	}
	if math.IsNaN(b.Heading) || math.IsInf(b.Heading, 0) {
		b.Heading = 0
		reset = true
	}
	if math.IsNaN(b.AngularVelocity) || math.IsInf(b.AngularVelocity, 0) {
		b.AngularVelocity = 0
		reset = true
	}
	if math.IsNaN(b.Rudder) || math.IsInf(b.Rudder, 0) {
		b.Rudder = 0
		reset = true
	}
	return reset
}
