package physics

import (
	"math"
	"testing"
)

func testBody() *Body {
	b := NewBody(Vector2D{}, 0, 40, 12)
	b.MaxSpeed = 80
	b.ThrustAccel = 25
	b.ReverseAccel = 10
	b.TurnAccel = 1.8
	b.LinearDrag = 0.5
	b.AngularDrag = 2.0
	b.RudderRate = 2.5
	return b
}

func TestNewBody_MassFromFootprint(t *testing.T) {
	b := NewBody(Vector2D{}, 0, 40, 12)
	if b.Mass != 480 {
		t.Errorf("Mass = %f, want 480", b.Mass)
	}
	if !almostEqual(b.Radius, 16) {
		t.Errorf("Radius = %f, want 16", b.Radius)
	}
}

func TestNewBody_MassFloor(t *testing.T) {
	b := NewBody(Vector2D{}, 0, 0.5, 0.5)
	if b.Mass != 1 {
		t.Errorf("Mass = %f, want floor of 1", b.Mass)
	}
}

func TestBody_ThrustAcceleratesAlongHeading(t *testing.T) {
	b := testBody()
	b.Heading = math.Pi / 2

	b.Integrate(0.1, Intent{ThrustForward: true}, 1.0)

	if b.Velocity.X > epsilon {
		t.Errorf("Velocity.X = %f, want ~0 for heading pi/2", b.Velocity.X)
	}
	if b.Velocity.Y <= 0 {
		t.Errorf("Velocity.Y = %f, want positive", b.Velocity.Y)
	}
}

func TestBody_DamageFactorScalesThrust(t *testing.T) {
	healthy := testBody()
	wrecked := testBody()

	healthy.Integrate(0.1, Intent{ThrustForward: true}, 1.0)
	wrecked.Integrate(0.1, Intent{ThrustForward: true}, 0.5)

	if wrecked.Velocity.Length() >= healthy.Velocity.Length() {
		t.Errorf("wrecked speed %f should be below healthy speed %f",
			wrecked.Velocity.Length(), healthy.Velocity.Length())
	}
	if !almostEqual(wrecked.Velocity.Length()*2, healthy.Velocity.Length()) {
		t.Errorf("thrust at 0.5 damage factor should be half: got %f vs %f",
			wrecked.Velocity.Length(), healthy.Velocity.Length())
	}
}

func TestBody_SpeedCapPreservesDirection(t *testing.T) {
	b := testBody()
	b.Velocity = Vector2D{X: 300, Y: 400} // length 500, well over cap

	b.Integrate(0.001, Intent{}, 1.0)

	speed := b.Velocity.Length()
	if speed > b.MaxSpeed+epsilon {
		t.Errorf("speed %f exceeds cap %f", speed, b.MaxSpeed)
	}
	// Direction survives the rescale.
	dir := b.Velocity.Normalize()
	want := Vector2D{X: 0.6, Y: 0.8}
	if !vectorsAlmostEqual(dir, want) {
		t.Errorf("direction after cap = %+v, want %+v", dir, want)
	}
}

func TestBody_DragDecaysVelocity(t *testing.T) {
	b := testBody()
	b.Velocity = Vector2D{X: 50, Y: 0}
	b.AngularVelocity = 1.0

	for i := 0; i < 100; i++ {
		b.Integrate(0.1, Intent{}, 1.0)
	}

	if b.Velocity.Length() > 1 {
		t.Errorf("velocity should decay toward zero under drag, got %f", b.Velocity.Length())
	}
	if math.Abs(b.AngularVelocity) > 0.01 {
		t.Errorf("angular velocity should decay, got %f", b.AngularVelocity)
	}
}

func TestBody_RudderSmoothing(t *testing.T) {
	b := testBody()

	// One short tick cannot slam the rudder hard over.
	b.Integrate(0.1, Intent{TurnRight: true}, 1.0)
	if b.Rudder <= 0 || b.Rudder >= 1 {
		t.Errorf("Rudder = %f after one tick, want partial deflection in (0, 1)", b.Rudder)
	}

	// Held long enough, it saturates at full deflection.
	for i := 0; i < 50; i++ {
		b.Integrate(0.1, Intent{TurnRight: true}, 1.0)
	}
	if b.Rudder != 1 {
		t.Errorf("Rudder = %f after sustained command, want 1", b.Rudder)
	}

	// Releasing the helm recenters, again gradually.
	b.Integrate(0.1, Intent{}, 1.0)
	if b.Rudder >= 1 || b.Rudder <= 0 {
		t.Errorf("Rudder = %f right after release, want partial recenter", b.Rudder)
	}
}

func TestBody_TurnAuthorityGrowsWithSpeed(t *testing.T) {
	slow := testBody()
	fast := testBody()
	fast.Velocity = FromAngle(0, fast.MaxSpeed)

	// Same rudder command from rest; pre-load the rudder so only the
	// authority term differs.
	slow.Rudder = 1
	fast.Rudder = 1
	slow.Integrate(0.1, Intent{TurnRight: true}, 1.0)
	fast.Integrate(0.1, Intent{TurnRight: true}, 1.0)

	if fast.AngularVelocity <= slow.AngularVelocity {
		t.Errorf("turn rate at speed (%f) should exceed turn rate at rest (%f)",
			fast.AngularVelocity, slow.AngularVelocity)
	}
}

func TestBody_CoastsWithZeroIntent(t *testing.T) {
	b := testBody()
	b.Velocity = Vector2D{X: 40, Y: 0}

	before := b.Position
	b.Integrate(0.1, Intent{}, 1.0)

	if b.Position == before {
		t.Error("body with velocity should keep moving under zero intent")
	}
	if b.Velocity.Length() >= 40 {
		t.Errorf("coasting speed should decay, got %f", b.Velocity.Length())
	}
}

func TestBody_HullPolygonBowLeads(t *testing.T) {
	b := testBody() // heading 0, bow along +X

	hull := b.HullPolygon()
	if len(hull) != 5 {
		t.Fatalf("hull has %d points, want 5", len(hull))
	}

	// The bow tip is the first vertex and sticks out past the box corners.
	bow := hull[0]
	if !almostEqual(bow.X, b.Length/2*1.1) || !almostEqual(bow.Y, 0) {
		t.Errorf("bow tip = %+v, want {%f 0}", bow, b.Length/2*1.1)
	}
	for i := 1; i < len(hull); i++ {
		if hull[i].X >= bow.X {
			t.Errorf("vertex %d at X=%f should trail the bow tip at X=%f", i, hull[i].X, bow.X)
		}
	}
}

func TestBody_Sanitize(t *testing.T) {
	fallback := Vector2D{X: 100, Y: 100}

	b := testBody()
	if b.Sanitize(fallback) {
		t.Error("Sanitize() on clean state should report no reset")
	}

	b.Position = Vector2D{X: math.NaN(), Y: 0}
	b.Velocity = Vector2D{X: math.Inf(1), Y: 0}
	b.Heading = math.NaN()
	b.AngularVelocity = math.Inf(-1)
	b.Rudder = math.NaN()

	if !b.Sanitize(fallback) {
		t.Fatal("Sanitize() should report a reset for corrupted state")
	}
	if b.Position != fallback {
		t.Errorf("Position = %+v, want fallback %+v", b.Position, fallback)
	}
	if b.Velocity != (Vector2D{}) || b.Heading != 0 || b.AngularVelocity != 0 || b.Rudder != 0 {
		t.Errorf("corrupted fields should zero: vel=%+v heading=%f angvel=%f rudder=%f",
			b.Velocity, b.Heading, b.AngularVelocity, b.Rudder)
	}
}
