// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/opd-ai/go-armada/pkg/ai"
	"github.com/opd-ai/go-armada/pkg/physics"
)

// GameConfig contains configuration for one battle
type GameConfig struct {
	WorldBounds BoundsConfig  `json:"worldBounds"`
	MaxTick     float64       `json:"maxTick"` // dt clamp in seconds
	Physics     PhysicsConfig `json:"physics"`
	AI          ai.Tuning     `json:"ai"`
	FleetFile   string        `json:"fleetFile,omitempty"`
}

// BoundsConfig describes the world rectangle
type BoundsConfig struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// ToRect converts the bounds into the physics rectangle type
func (b BoundsConfig) ToRect() physics.Rect {
	return physics.Rect{MinX: b.MinX, MinY: b.MinY, MaxX: b.MaxX, MaxY: b.MaxY}
}

// PhysicsConfig contains the contact and ramming tuning
type PhysicsConfig struct {
	Restitution      float64 `json:"restitution"`
	Friction         float64 `json:"friction"`
	RamCooldown      float64 `json:"ramCooldown"`      // seconds between ram damage for one pair
	RamDamageScale   float64 `json:"ramDamageScale"`   // damage per unit of closing speed
	BowConeDegrees   float64 `json:"bowConeDegrees"`   // half-angle classifying a bow strike
	SinkHastenPerHit float64 `json:"sinkHastenPerHit"` // seconds shaved off a sinking hull per hit
}

// LoadConfig loads a configuration from a file
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the configuration for values the simulation cannot run
// with.
func (c *GameConfig) Validate() error {
	if c.WorldBounds.MaxX <= c.WorldBounds.MinX ||
		c.WorldBounds.MaxY <= c.WorldBounds.MinY {
		return fmt.Errorf("world bounds have non-positive area: %+v", c.WorldBounds)
	}
	if c.MaxTick <= 0 {
		return fmt.Errorf("maxTick must be positive, got %f", c.MaxTick)
	}
	if c.Physics.Restitution < 0 || c.Physics.Restitution > 1 {
		return fmt.Errorf("restitution must be in [0, 1], got %f", c.Physics.Restitution)
	}
	if c.Physics.Friction < 0 {
		return fmt.Errorf("friction must be non-negative, got %f", c.Physics.Friction)
	}
	if c.Physics.RamCooldown < 0 {
		return fmt.Errorf("ramCooldown must be non-negative, got %f", c.Physics.RamCooldown)
	}
	if c.Physics.BowConeDegrees <= 0 || c.Physics.BowConeDegrees >= 90 {
		return fmt.Errorf("bowConeDegrees must be in (0, 90), got %f", c.Physics.BowConeDegrees)
	}
	if c.AI.PassiveTimeout <= 0 {
		return fmt.Errorf("ai passiveTimeout must be positive, got %f", c.AI.PassiveTimeout)
	}
	return nil
}

// DefaultConfig returns a default battle configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		WorldBounds: BoundsConfig{
			MinX: 0,
			MinY: 0,
			MaxX: 6000,
			MaxY: 6000,
		},
		MaxTick: 0.033,
		Physics: PhysicsConfig{
			Restitution:      physics.DefaultRestitution,
			Friction:         physics.DefaultFriction,
			RamCooldown:      1.5,
			RamDamageScale:   0.12,
			BowConeDegrees:   45,
			SinkHastenPerHit: 0.5,
		},
		AI: ai.DefaultTuning(),
	}
}
