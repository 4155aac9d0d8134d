package entity

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/opd-ai/go-armada/pkg/physics"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func testBattery(mounts int) (*Battery, *physics.Body) {
	stats := ClassStats(Galleon)
	stats.MountsPerSide = mounts
	stats.ShotDelay = 0.25
	battery := NewBattery(stats, testRNG())
	body := physics.NewBody(physics.Vector2D{}, 0, stats.Length, stats.Width)
	return battery, body
}

func TestSide_Normal(t *testing.T) {
	// Heading 0 points along +X; starboard is a quarter turn toward +Y.
	starboard := Starboard.Normal(0)
	if math.Abs(starboard.X) > 1e-9 || math.Abs(starboard.Y-1) > 1e-9 {
		t.Errorf("Starboard.Normal(0) = %+v, want {0 1}", starboard)
	}
	port := Port.Normal(0)
	if math.Abs(port.X) > 1e-9 || math.Abs(port.Y+1) > 1e-9 {
		t.Errorf("Port.Normal(0) = %+v, want {0 -1}", port)
	}
}

func TestBattery_MountLayout(t *testing.T) {
	battery, _ := testBattery(4)

	for _, side := range []Side{Port, Starboard} {
		mounts := battery.MountsOn(side)
		if len(mounts) != 4 {
			t.Fatalf("%v has %d mounts, want 4", side, len(mounts))
		}
		for i, m := range mounts {
			if m.Side != side {
				t.Errorf("%v mount %d assigned to %v", side, i, m.Side)
			}
			if m.ReloadTime <= 0 {
				t.Errorf("%v mount %d has no reload time", side, i)
			}
			if i > 0 && mounts[i].Offset.X >= mounts[i-1].Offset.X {
				t.Errorf("%v mounts should run bow to stern: mount %d at X=%f after X=%f",
					side, i, mounts[i].Offset.X, mounts[i-1].Offset.X)
			}
		}
	}
}

func TestBattery_RoundRobinWalksTheBroadside(t *testing.T) {
	battery, body := testBattery(4)
	mounts := battery.MountsOn(Starboard)

	// With all mounts loaded, repeated fire commands walk down the side one
	// mount per shot instead of volleying.
	for shot := 0; shot < 4; shot++ {
		p := battery.Fire(1, Starboard, body)
		if p == nil {
			t.Fatalf("shot %d did not fire", shot)
		}
		if mounts[shot].Cooldown <= 0 {
			t.Errorf("shot %d should have spent mount %d", shot, shot)
		}
		for later := shot + 1; later < 4; later++ {
			if mounts[later].Cooldown > 0 {
				t.Errorf("shot %d spent mount %d early", shot, later)
			}
		}
		// Clear the inter-shot gate without reloading the spent mounts.
		battery.Update(0.3)
	}

	// Every mount spent exactly once; the next attempt finds nothing ready.
	if p := battery.Fire(1, Starboard, body); p != nil {
		t.Error("fifth shot should find no loaded mount")
	}
}

func TestBattery_InterShotGate(t *testing.T) {
	battery, body := testBattery(4)

	if p := battery.Fire(1, Starboard, body); p == nil {
		t.Fatal("first shot did not fire")
	}
	// Immediately again: the side's pacing timer blocks it despite three
	// loaded mounts.
	if p := battery.Fire(1, Starboard, body); p != nil {
		t.Error("second shot in the same instant should be gated")
	}
	if battery.ShotTimer(Starboard) <= 0 {
		t.Error("shot timer should be running after a discharge")
	}

	// The other side paces independently.
	if p := battery.Fire(1, Port, body); p == nil {
		t.Error("port side should fire while starboard is gated")
	}
}

func TestBattery_ShellInheritsShipVelocity(t *testing.T) {
	battery, body := testBattery(2)
	body.Velocity = physics.Vector2D{X: 40, Y: 0}
	stats := ClassStats(Galleon)

	p := battery.Fire(1, Starboard, body)
	if p == nil {
		t.Fatal("shot did not fire")
	}

	// Muzzle velocity = ship velocity + outward normal * muzzle speed, with
	// a small spread; the starboard normal at heading 0 is +Y.
	if p.Velocity.Y < stats.MuzzleSpeed*0.9 {
		t.Errorf("shell Y velocity %f should carry the muzzle speed %f",
			p.Velocity.Y, stats.MuzzleSpeed)
	}
	if math.Abs(p.Velocity.X-40) > stats.MuzzleSpeed*0.2 {
		t.Errorf("shell X velocity %f should roughly carry the ship's 40", p.Velocity.X)
	}
}

func TestBattery_FireTorpedo(t *testing.T) {
	battery, body := testBattery(2) // Galleon stats carry a tube

	if !battery.TorpedoReady() {
		t.Fatal("fresh galleon tube should be loaded")
	}

	p := battery.FireTorpedo(1, body)
	if p == nil {
		t.Fatal("torpedo did not launch")
	}
	if p.Profile != ProfileTorpedo {
		t.Errorf("launched projectile profile = %v, want torpedo", p.Profile)
	}
	// Launched off the bow, along the heading.
	if p.Position.X <= 0 {
		t.Errorf("torpedo should launch ahead of the hull, got X=%f", p.Position.X)
	}
	if p.Velocity.X < TorpedoSpeed*0.9 {
		t.Errorf("torpedo velocity %f should be near %f along the bow", p.Velocity.X, TorpedoSpeed)
	}

	if battery.FireTorpedo(1, body) != nil {
		t.Error("tube should need reloading after a launch")
	}
	if battery.TorpedoReady() {
		t.Error("TorpedoReady() should be false right after a launch")
	}
}

func TestBattery_NoTorpedoTube(t *testing.T) {
	stats := ClassStats(Sloop)
	battery := NewBattery(stats, testRNG())
	body := physics.NewBody(physics.Vector2D{}, 0, stats.Length, stats.Width)

	if battery.TorpedoReady() {
		t.Error("sloop should have no torpedo tube")
	}
	if battery.FireTorpedo(1, body) != nil {
		t.Error("sloop should not launch torpedoes")
	}
}

func TestBattery_CooldownsTickWhileGated(t *testing.T) {
	battery, body := testBattery(2)
	mounts := battery.MountsOn(Starboard)

	p := battery.Fire(1, Starboard, body)
	if p == nil {
		t.Fatal("shot did not fire")
	}
	spent := mounts[0].Cooldown

	// Cooldowns keep draining whether or not anyone pulls the trigger.
	battery.Update(1.0)
	if mounts[0].Cooldown >= spent {
		t.Errorf("cooldown did not drain: %f -> %f", spent, mounts[0].Cooldown)
	}
}
