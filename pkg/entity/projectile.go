// pkg/entity/projectile.go
package entity

import (
	"github.com/opd-ai/go-armada/pkg/physics"
)

// DamageProfile selects how a projectile's damage varies with the distance
// it has travelled from its origin.
type DamageProfile int

const (
	// ProfileShell deals full damage out to a near range, then decays
	// linearly to roughly a third of it at the far range. Beyond the far
	// range the shell is spent.
	ProfileShell DamageProfile = iota
	// ProfileTorpedo deals a flat low contact damage up close (it has not
	// armed yet), ramps linearly to a much higher ceiling at the far range
	// and stays there until it expires.
	ProfileTorpedo
)

// Ballistics presets for the two projectile kinds.
const (
	ShellDamage   = 12.0
	ShellNear     = 600.0
	ShellFar      = 1200.0
	ShellLifetime = 6.0
	ShellRadius   = 4.0

	TorpedoNearDamage = 8.0
	TorpedoFarDamage  = 60.0
	TorpedoNear       = 300.0
	TorpedoFar        = 1000.0
	TorpedoMaxRange   = 1600.0
	TorpedoLifetime   = 14.0
	TorpedoSpeed      = 120.0
	TorpedoRadius     = 6.0
)

// Projectile is an independent ballistic body. It keeps its origin so damage
// can fall off with the distance travelled, and an owner reference used only
// to exclude self-hits.
type Projectile struct {
	ID      ID
	OwnerID ID

	Position physics.Vector2D
	Velocity physics.Vector2D
	Origin   physics.Vector2D
	Radius   float64

	Age         float64
	MaxLifetime float64
	MaxRange    float64

	Profile    DamageProfile
	NearRange  float64
	FarRange   float64
	NearDamage float64
	FarDamage  float64
}

// NewShell creates a standard cannonball projectile
func NewShell(ownerID ID, position, velocity physics.Vector2D) *Projectile {
	return &Projectile{
		ID:          GenerateID(),
		OwnerID:     ownerID,
		Position:    position,
		Velocity:    velocity,
		Origin:      position,
		Radius:      ShellRadius,
		MaxLifetime: ShellLifetime,
		MaxRange:    ShellFar,
		Profile:     ProfileShell,
		NearRange:   ShellNear,
		FarRange:    ShellFar,
		NearDamage:  ShellDamage,
		FarDamage:   ShellDamage / 3,
	}
}

// NewTorpedo creates a heavy torpedo projectile
func NewTorpedo(ownerID ID, position, velocity physics.Vector2D) *Projectile {
	return &Projectile{
		ID:          GenerateID(),
		OwnerID:     ownerID,
		Position:    position,
		Velocity:    velocity,
		Origin:      position,
		Radius:      TorpedoRadius,
		MaxLifetime: TorpedoLifetime,
		MaxRange:    TorpedoMaxRange,
		Profile:     ProfileTorpedo,
		NearRange:   TorpedoNear,
		FarRange:    TorpedoFar,
		NearDamage:  TorpedoNearDamage,
		FarDamage:   TorpedoFarDamage,
	}
}

// Update advances the projectile by dt seconds. Projectiles fly unforced,
// with no drag.
func (p *Projectile) Update(dt float64) {
	if dt < 0 {
		dt = 0
	}
	p.Position = p.Position.Add(p.Velocity.Scale(dt))
	p.Age += dt
}

// Travelled returns the distance from the firing origin
func (p *Projectile) Travelled() float64 {
	return p.Position.Distance(p.Origin)
}

// Alive reports whether the projectile is still live. Both the lifetime and
// the range budget must hold.
func (p *Projectile) Alive() bool {
	return p.Age < p.MaxLifetime && p.Travelled() < p.MaxRange
}

// Damage returns the damage the projectile deals at its current distance
// from origin.
func (p *Projectile) Damage() float64 {
	return p.DamageAt(p.Travelled())
}

// DamageAt returns the damage dealt at the given distance from origin.
// Shells decay with distance, torpedoes ramp up; anything at or past the
// max range deals nothing.
func (p *Projectile) DamageAt(distance float64) float64 {
	if distance >= p.MaxRange {
		return 0
	}
	switch p.Profile {
	case ProfileTorpedo:
		if distance <= p.NearRange {
			return p.NearDamage
		}
		if distance >= p.FarRange {
			return p.FarDamage
		}
		frac := (distance - p.NearRange) / (p.FarRange - p.NearRange)
		return p.NearDamage + (p.FarDamage-p.NearDamage)*frac
	default:
		if distance <= p.NearRange {
			return p.NearDamage
		}
		if distance >= p.FarRange {
			return p.FarDamage
		}
		frac := (distance - p.NearRange) / (p.FarRange - p.NearRange)
		return p.NearDamage + (p.FarDamage-p.NearDamage)*frac
	}
}

// Kill spends the projectile immediately; it is removed at end-of-tick
// cleanup.
func (p *Projectile) Kill() {
	p.Age = p.MaxLifetime
}

// Collider returns the projectile's collision circle
func (p *Projectile) Collider() physics.Circle {
	return physics.Circle{Center: p.Position, Radius: p.Radius}
}
