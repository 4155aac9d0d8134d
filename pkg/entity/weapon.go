// pkg/entity/weapon.go
package entity

import (
	"math"
	"math/rand/v2"

	"github.com/opd-ai/go-armada/pkg/physics"
)

// Side identifies one broadside of a vessel
type Side int

const (
	Port Side = iota
	Starboard
)

// String returns the side name
func (s Side) String() string {
	if s == Port {
		return "Port"
	}
	return "Starboard"
}

// Normal returns the outward unit normal of this side for a hull at the
// given heading. Port is to the left of the bow, starboard to the right,
// with +Y a quarter turn clockwise from +X.
func (s Side) Normal(heading float64) physics.Vector2D {
	if s == Port {
		return physics.FromAngle(heading-math.Pi/2, 1)
	}
	return physics.FromAngle(heading+math.Pi/2, 1)
}

// Mount is a single weapon emplacement: a local hull offset, its broadside
// assignment and an independent reload timer. The reload duration itself is
// randomized at creation so a broadside never settles into a metronome.
type Mount struct {
	Offset     physics.Vector2D // local hull frame, +X toward the bow
	Side       Side
	ReloadTime float64
	Cooldown   float64
}

// Ready reports whether the mount can fire
func (m *Mount) Ready() bool {
	return m.Cooldown <= 0
}

// broadside groups the mounts of one side with a round-robin cursor and the
// shared inter-shot pacing timer.
type broadside struct {
	mounts    []*Mount
	cursor    int
	shotTimer float64
}

// Battery is the full armament of a vessel: mounts partitioned into two
// broadside groups plus an optional bow torpedo tube.
type Battery struct {
	sides     [2]broadside
	shotDelay float64

	muzzleSpeed float64
	spread      float64

	torpedoTube     bool
	torpedoReload   float64
	torpedoCooldown float64

	rng *rand.Rand
}

// NewBattery builds a battery for a hull of the given dimensions from its
// class stats. Mounts are spaced evenly along each gunwale and each gets its
// own reload duration drawn from the stats' reload band.
func NewBattery(stats Stats, rng *rand.Rand) *Battery {
	b := &Battery{
		shotDelay:     stats.ShotDelay,
		muzzleSpeed:   stats.MuzzleSpeed,
		spread:        stats.Spread,
		torpedoTube:   stats.TorpedoTube,
		torpedoReload: stats.TorpedoReload,
		rng:           rng,
	}
	for side := Port; side <= Starboard; side++ {
		b.sides[side].mounts = b.buildMounts(stats, side)
	}
	return b
}

// buildMounts lays one side's mounts out along the hull
func (b *Battery) buildMounts(stats Stats, side Side) []*Mount {
	n := stats.MountsPerSide
	if n < 1 {
		n = 1
	}
	mounts := make([]*Mount, 0, n)
	// Guns sit along the middle half of the hull, bow to stern.
	span := stats.Length * 0.5
	start := span / 2
	for i := 0; i < n; i++ {
		x := start
		if n > 1 {
			x = start - span*float64(i)/float64(n-1)
		}
		y := stats.Width / 2
		if side == Port {
			y = -y
		}
		mounts = append(mounts, &Mount{
			Offset:     physics.Vector2D{X: x, Y: y},
			Side:       side,
			ReloadTime: b.randomReload(stats),
		})
	}
	return mounts
}

// randomReload draws a per-mount reload duration from the class band
func (b *Battery) randomReload(stats Stats) float64 {
	if stats.ReloadMax <= stats.ReloadMin {
		return stats.ReloadMin
	}
	return stats.ReloadMin + b.rng.Float64()*(stats.ReloadMax-stats.ReloadMin)
}

// Update decrements every mount cooldown, both inter-shot timers and the
// torpedo cooldown. Cooldowns tick down unconditionally, firing or not.
func (b *Battery) Update(dt float64) {
	if dt < 0 {
		dt = 0
	}
	for side := range b.sides {
		bs := &b.sides[side]
		for _, m := range bs.mounts {
			if m.Cooldown > 0 {
				m.Cooldown = math.Max(0, m.Cooldown-dt)
			}
		}
		if bs.shotTimer > 0 {
			bs.shotTimer = math.Max(0, bs.shotTimer-dt)
		}
	}
	if b.torpedoCooldown > 0 {
		b.torpedoCooldown = math.Max(0, b.torpedoCooldown-dt)
	}
}

// Fire attempts to discharge one mount on the given side. At most one mount
// fires per side per tick, gated by the side's inter-shot timer: scanning in
// cursor order, the first ready mount fires, resets to its own reload
// duration, and the cursor advances past it. Several ready mounts therefore
// walk down the broadside shot by shot instead of volleying at once.
// Returns nil when nothing could fire.
func (b *Battery) Fire(ownerID ID, side Side, body *physics.Body) *Projectile {
	bs := &b.sides[side]
	if bs.shotTimer > 0 || len(bs.mounts) == 0 {
		return nil
	}

	n := len(bs.mounts)
	for i := 0; i < n; i++ {
		idx := (bs.cursor + i) % n
		mount := bs.mounts[idx]
		if !mount.Ready() {
			continue
		}
		mount.Cooldown = mount.ReloadTime
		bs.cursor = (idx + 1) % n
		bs.shotTimer = b.shotDelay
		return b.dischargeMount(ownerID, mount, body)
	}
	return nil
}

// dischargeMount builds the shell leaving the given mount: muzzle position
// is the mount offset rotated into world space, muzzle velocity is ship
// velocity plus the outward normal at muzzle speed, skewed by a small random
// spread.
func (b *Battery) dischargeMount(ownerID ID, mount *Mount, body *physics.Body) *Projectile {
	muzzlePos := mount.Offset.Rotate(body.Heading).Add(body.Position)
	jitter := (b.rng.Float64()*2 - 1) * b.spread
	direction := mount.Side.Normal(body.Heading).Rotate(jitter)
	velocity := body.Velocity.Add(direction.Scale(b.muzzleSpeed))
	return NewShell(ownerID, muzzlePos, velocity)
}

// FireTorpedo attempts to launch a torpedo straight off the bow. Returns nil
// when the vessel has no tube or the tube is still reloading.
func (b *Battery) FireTorpedo(ownerID ID, body *physics.Body) *Projectile {
	if !b.torpedoTube || b.torpedoCooldown > 0 {
		return nil
	}
	b.torpedoCooldown = b.torpedoReload
	bowPos := physics.Vector2D{X: body.Length * 0.6}.Rotate(body.Heading).Add(body.Position)
	velocity := body.Velocity.Add(physics.FromAngle(body.Heading, TorpedoSpeed))
	return NewTorpedo(ownerID, bowPos, velocity)
}

// MountsOn returns the mounts of one side, in cursor-independent hull order.
// Exposed for drivers that render gun state.
func (b *Battery) MountsOn(side Side) []*Mount {
	return b.sides[side].mounts
}

// ShotTimer returns the remaining inter-shot delay on a side
func (b *Battery) ShotTimer(side Side) float64 {
	return b.sides[side].shotTimer
}

// TorpedoReady reports whether the torpedo tube exists and is loaded
func (b *Battery) TorpedoReady() bool {
	return b.torpedoTube && b.torpedoCooldown <= 0
}
