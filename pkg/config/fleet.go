// pkg/config/fleet.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-armada/pkg/entity"
)

// FleetConfig describes the autonomous fleet spawned into a battle. It is
// kept in YAML so scenarios can be edited by hand.
type FleetConfig struct {
	Spawns []SpawnConfig `yaml:"spawns"`
}

// SpawnConfig is one spawn entry: a class preset, how many to place, and
// optional elite scaling or a travel destination.
type SpawnConfig struct {
	Class  string       `yaml:"class"`
	Count  int          `yaml:"count"`
	Name   string       `yaml:"name,omitempty"`
	Elite  bool         `yaml:"elite,omitempty"`
	Travel *PointConfig `yaml:"travel,omitempty"`
}

// PointConfig is a world coordinate in a fleet file
type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// LoadFleet loads and validates a fleet file
func LoadFleet(path string) (*FleetConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fleet file: %w", err)
	}

	var fleet FleetConfig
	if err := yaml.Unmarshal(data, &fleet); err != nil {
		return nil, fmt.Errorf("failed to parse fleet file: %w", err)
	}

	if err := fleet.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fleet file %s: %w", path, err)
	}
	return &fleet, nil
}

// SaveFleet writes a fleet file
func SaveFleet(fleet *FleetConfig, path string) error {
	data, err := yaml.Marshal(fleet)
	if err != nil {
		return fmt.Errorf("failed to marshal fleet: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write fleet file: %w", err)
	}
	return nil
}

// Validate checks every spawn entry references a known class and a sane
// count.
func (f *FleetConfig) Validate() error {
	if len(f.Spawns) == 0 {
		return fmt.Errorf("fleet has no spawn entries")
	}
	for i, spawn := range f.Spawns {
		if spawn.Count < 1 {
			return fmt.Errorf("spawn %d: count must be at least 1, got %d", i, spawn.Count)
		}
		if entity.ClassFromString(spawn.Class).String() != spawn.Class {
			return fmt.Errorf("spawn %d: unknown vessel class %q", i, spawn.Class)
		}
	}
	return nil
}

// DefaultFleet returns a small mixed patrol
func DefaultFleet() *FleetConfig {
	return &FleetConfig{
		Spawns: []SpawnConfig{
			{Class: "Sloop", Count: 4},
			{Class: "Brig", Count: 2},
			{Class: "Frigate", Count: 1, Elite: true},
		},
	}
}
