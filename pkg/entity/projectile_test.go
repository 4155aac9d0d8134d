package entity

import (
	"math"
	"testing"

	"github.com/opd-ai/go-armada/pkg/physics"
)

func TestShell_DamageFalloff(t *testing.T) {
	shell := NewShell(1, physics.Vector2D{}, physics.Vector2D{X: 260})

	tests := []struct {
		name     string
		distance float64
		want     float64
	}{
		{"point blank", 0, 12},
		{"at near range", 600, 12},
		{"halfway into the falloff", 900, 8},
		{"at max range", 1200, 0},
		{"beyond max range", 1500, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shell.DamageAt(tt.distance)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DamageAt(%f) = %f, want %f", tt.distance, got, tt.want)
			}
		})
	}
}

func TestShell_FalloffIsMonotonic(t *testing.T) {
	shell := NewShell(1, physics.Vector2D{}, physics.Vector2D{X: 260})
	prev := shell.DamageAt(0)
	for d := 50.0; d < 1200; d += 50 {
		got := shell.DamageAt(d)
		if got > prev+1e-9 {
			t.Fatalf("shell damage rose from %f to %f at distance %f", prev, got, d)
		}
		prev = got
	}
}

func TestTorpedo_DamageRamp(t *testing.T) {
	torpedo := NewTorpedo(1, physics.Vector2D{}, physics.Vector2D{X: TorpedoSpeed})

	tests := []struct {
		name     string
		distance float64
		want     float64
	}{
		{"unarmed contact", 100, 8},
		{"at arming range", 300, 8},
		{"mid ramp", 650, 34},
		{"fully armed", 1000, 60},
		{"holds past the ramp", 1400, 60},
		{"spent at max range", 1600, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := torpedo.DamageAt(tt.distance)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DamageAt(%f) = %f, want %f", tt.distance, got, tt.want)
			}
		})
	}
}

func TestProjectile_AliveLifetime(t *testing.T) {
	shell := NewShell(1, physics.Vector2D{}, physics.Vector2D{}) // stationary

	if !shell.Alive() {
		t.Fatal("fresh shell should be alive")
	}

	shell.Update(ShellLifetime + 0.1)
	if shell.Alive() {
		t.Error("shell past its lifetime should be dead even without travelling")
	}
}

func TestProjectile_AliveRange(t *testing.T) {
	// Fast enough to exhaust the range budget well inside the lifetime.
	shell := NewShell(1, physics.Vector2D{}, physics.Vector2D{X: 1500})

	shell.Update(1.0)
	if shell.Travelled() < ShellFar {
		t.Fatalf("test setup: shell travelled %f, want >= %f", shell.Travelled(), ShellFar)
	}
	if shell.Alive() {
		t.Error("shell past its max range should be dead even within its lifetime")
	}
}

func TestProjectile_UpdateMovesWithVelocity(t *testing.T) {
	shell := NewShell(1, physics.Vector2D{X: 10, Y: 20}, physics.Vector2D{X: 100, Y: -50})
	shell.Update(0.5)

	want := physics.Vector2D{X: 60, Y: -5}
	if shell.Position != want {
		t.Errorf("Position = %+v, want %+v", shell.Position, want)
	}
	if shell.Age != 0.5 {
		t.Errorf("Age = %f, want 0.5", shell.Age)
	}
}

func TestProjectile_Kill(t *testing.T) {
	shell := NewShell(1, physics.Vector2D{}, physics.Vector2D{X: 100})
	shell.Kill()
	if shell.Alive() {
		t.Error("killed projectile should not be alive")
	}
}

func TestProjectile_DamageUsesTravelledDistance(t *testing.T) {
	shell := NewShell(1, physics.Vector2D{}, physics.Vector2D{X: 900})
	shell.Update(1.0) // 900 units from origin

	if got := shell.Damage(); math.Abs(got-8) > 1e-9 {
		t.Errorf("Damage() at 900 travelled = %f, want 8", got)
	}
}
