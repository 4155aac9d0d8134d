package render

import (
	"bytes"
	"log/slog"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/opd-ai/go-armada/pkg/entity"
	"github.com/opd-ai/go-armada/pkg/logging"
	"github.com/opd-ai/go-armada/pkg/physics"
)

// captureRenderer builds a NullRenderer whose log output lands in the
// returned buffer.
func captureRenderer() (*NullRenderer, *bytes.Buffer) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	renderer := &NullRenderer{
		logger: &logging.Logger{Logger: slog.New(handler)},
	}
	return renderer, &buf
}

func testVessel() *entity.Vessel {
	rng := rand.New(rand.NewPCG(1, 2))
	return entity.NewVessel(entity.GenerateID(), "tester", entity.Brig,
		physics.Vector2D{X: 100, Y: 200}, 0, rng)
}

func TestNullRenderer_Clear_LogsExpectedMessage(t *testing.T) {
	renderer, buf := captureRenderer()

	renderer.Clear()

	if !strings.Contains(buf.String(), "Clear called") {
		t.Errorf("Expected log to contain 'Clear called', got: %s", buf.String())
	}
}

func TestNullRenderer_Present_LogsExpectedMessage(t *testing.T) {
	renderer, buf := captureRenderer()

	renderer.Present()

	if !strings.Contains(buf.String(), "Present called") {
		t.Errorf("Expected log to contain 'Present called', got: %s", buf.String())
	}
}

func TestNullRenderer_RenderVessel_LogsVesselInformation(t *testing.T) {
	tests := []struct {
		name     string
		vessel   *entity.Vessel
		expected string
	}{
		{
			name:     "ValidVessel_LogsCorrectly",
			vessel:   testVessel(),
			expected: "RenderVessel called",
		},
		{
			name:     "NilVessel_HandlesGracefully",
			vessel:   nil,
			expected: "RenderVessel called with nil vessel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer, buf := captureRenderer()

			renderer.RenderVessel(tt.vessel)

			if !strings.Contains(buf.String(), tt.expected) {
				t.Errorf("Expected log to contain %q, got: %s", tt.expected, buf.String())
			}
		})
	}
}

func TestNullRenderer_RenderProjectile_LogsProjectileInformation(t *testing.T) {
	owner := entity.GenerateID()
	tests := []struct {
		name       string
		projectile *entity.Projectile
		expected   string
	}{
		{
			name:       "Shell_LogsCorrectly",
			projectile: entity.NewShell(owner, physics.Vector2D{X: 10, Y: 20}, physics.Vector2D{}),
			expected:   "RenderProjectile called",
		},
		{
			name:       "Torpedo_LogsCorrectly",
			projectile: entity.NewTorpedo(owner, physics.Vector2D{X: 10, Y: 20}, physics.Vector2D{}),
			expected:   "RenderProjectile called",
		},
		{
			name:       "NilProjectile_HandlesGracefully",
			projectile: nil,
			expected:   "RenderProjectile called with nil projectile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer, buf := captureRenderer()

			renderer.RenderProjectile(tt.projectile)

			if !strings.Contains(buf.String(), tt.expected) {
				t.Errorf("Expected log to contain %q, got: %s", tt.expected, buf.String())
			}
		})
	}
}

func TestNullRendererInstance_IsUsable(t *testing.T) {
	if NullRendererInstance == nil {
		t.Fatal("NullRendererInstance is nil")
	}
	// Must absorb a full frame without a live entity in sight.
	NullRendererInstance.Clear()
	NullRendererInstance.RenderVessel(nil)
	NullRendererInstance.RenderProjectile(nil)
	NullRendererInstance.Present()
}
