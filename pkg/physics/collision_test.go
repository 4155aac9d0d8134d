package physics

import (
	"math"
	"testing"
)

func TestCheckCollision_NoOverlap(t *testing.T) {
	a := Circle{Center: Vector2D{X: 0, Y: 0}, Radius: 10}
	b := Circle{Center: Vector2D{X: 100, Y: 0}, Radius: 10}

	result := CheckCollision(a, b)
	if result.Collided {
		t.Error("CheckCollision() reported collision for separated circles")
	}
}

func TestCheckCollision_Overlap(t *testing.T) {
	a := Circle{Center: Vector2D{X: 0, Y: 0}, Radius: 10}
	b := Circle{Center: Vector2D{X: 15, Y: 0}, Radius: 10}

	result := CheckCollision(a, b)
	if !result.Collided {
		t.Fatal("CheckCollision() missed overlapping circles")
	}
	if !vectorsAlmostEqual(result.Normal, Vector2D{X: 1, Y: 0}) {
		t.Errorf("Normal = %+v, want {1 0}", result.Normal)
	}
	if !almostEqual(result.Penetration, 5) {
		t.Errorf("Penetration = %f, want 5", result.Penetration)
	}
}

func TestCheckCollision_CoincidentCenters(t *testing.T) {
	a := Circle{Center: Vector2D{X: 50, Y: 50}, Radius: 10}
	b := Circle{Center: Vector2D{X: 50, Y: 50}, Radius: 10}

	result := CheckCollision(a, b)
	if !result.Collided {
		t.Fatal("CheckCollision() missed coincident circles")
	}
	// Exactly stacked centers resolve along +X, never a zero normal.
	if !vectorsAlmostEqual(result.Normal, Vector2D{X: 1, Y: 0}) {
		t.Errorf("Normal = %+v, want deterministic {1 0}", result.Normal)
	}
	if !almostEqual(result.Penetration, 20) {
		t.Errorf("Penetration = %f, want 20", result.Penetration)
	}
}

func collidingBodies() (*Body, *Body) {
	a := NewBody(Vector2D{X: 0, Y: 0}, 0, 40, 12)
	b := NewBody(Vector2D{X: 20, Y: 0}, math.Pi, 40, 12)
	a.Velocity = Vector2D{X: 30, Y: 0}
	b.Velocity = Vector2D{X: -30, Y: 0}
	return a, b
}

func TestResolveOverlap_SeparatesBodies(t *testing.T) {
	a, b := collidingBodies()
	result := CheckCollision(a.Collider(), b.Collider())

	ResolveOverlap(a, b, result, DefaultRestitution, DefaultFriction)

	distance := a.Position.Distance(b.Position)
	if distance < a.Radius+b.Radius-epsilon {
		t.Errorf("bodies still overlap after resolution: distance %f, want >= %f",
			distance, a.Radius+b.Radius)
	}
}

func TestResolveOverlap_ConservesMomentum(t *testing.T) {
	a, b := collidingBodies()
	result := CheckCollision(a.Collider(), b.Collider())

	before := a.Velocity.Scale(a.Mass).Add(b.Velocity.Scale(b.Mass))
	ResolveOverlap(a, b, result, DefaultRestitution, DefaultFriction)
	after := a.Velocity.Scale(a.Mass).Add(b.Velocity.Scale(b.Mass))

	if !vectorsAlmostEqual(before, after) {
		t.Errorf("momentum changed: before %+v, after %+v", before, after)
	}
}

func TestResolveOverlap_ReversesClosing(t *testing.T) {
	a, b := collidingBodies()
	result := CheckCollision(a.Collider(), b.Collider())

	ResolveOverlap(a, b, result, DefaultRestitution, DefaultFriction)

	closing := b.Velocity.Sub(a.Velocity).Dot(result.Normal)
	if closing < 0 {
		t.Errorf("bodies still closing after impulse: relative normal speed %f", closing)
	}
}

func TestResolveOverlap_MassProportionalSeparation(t *testing.T) {
	// A small hull against a much heavier one: the light hull gets pushed
	// almost all of the way out.
	light := NewBody(Vector2D{X: 0, Y: 0}, 0, 10, 4)
	heavy := NewBody(Vector2D{X: 5, Y: 0}, 0, 60, 18)

	lightBefore := light.Position
	heavyBefore := heavy.Position

	result := CheckCollision(light.Collider(), heavy.Collider())
	if !result.Collided {
		t.Fatal("expected overlap")
	}
	ResolveOverlap(light, heavy, result, DefaultRestitution, DefaultFriction)

	lightShift := light.Position.Distance(lightBefore)
	heavyShift := heavy.Position.Distance(heavyBefore)
	if lightShift <= heavyShift {
		t.Errorf("light hull shifted %f, heavy hull %f; light should move more",
			lightShift, heavyShift)
	}
}

func TestResolveOverlap_SymmetricPairOrder(t *testing.T) {
	a1, b1 := collidingBodies()
	a2, b2 := collidingBodies()

	ResolveOverlap(a1, b1, CheckCollision(a1.Collider(), b1.Collider()), DefaultRestitution, DefaultFriction)
	// Processing the same pair the other way around.
	ResolveOverlap(b2, a2, CheckCollision(b2.Collider(), a2.Collider()), DefaultRestitution, DefaultFriction)

	if !vectorsAlmostEqual(a1.Velocity, a2.Velocity) || !vectorsAlmostEqual(b1.Velocity, b2.Velocity) {
		t.Errorf("pair order changed the outcome: (%+v, %+v) vs (%+v, %+v)",
			a1.Velocity, b1.Velocity, a2.Velocity, b2.Velocity)
	}
	if !vectorsAlmostEqual(a1.Position, a2.Position) || !vectorsAlmostEqual(b1.Position, b2.Position) {
		t.Errorf("pair order changed the positions: (%+v, %+v) vs (%+v, %+v)",
			a1.Position, b1.Position, a2.Position, b2.Position)
	}
}
