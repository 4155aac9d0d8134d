// pkg/config/env_config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// EnvironmentConfig contains deployment-level settings read from ARMADA_*
// environment variables: entity caps, driver pacing and shutdown behavior.
type EnvironmentConfig struct {
	MaxVessels      int
	MaxProjectiles  int
	UpdateRate      int // driver ticks per second
	ShutdownTimeout time.Duration
}

// Environment variable names and their defaults.
const (
	envMaxVessels      = "ARMADA_MAX_VESSELS"
	envMaxProjectiles  = "ARMADA_MAX_PROJECTILES"
	envUpdateRate      = "ARMADA_UPDATE_RATE"
	envShutdownTimeout = "ARMADA_SHUTDOWN_TIMEOUT"

	defaultMaxVessels      = 64
	defaultMaxProjectiles  = 2048
	defaultUpdateRate      = 30
	defaultShutdownTimeout = 10 * time.Second
)

// LoadConfigFromEnv reads the environment configuration, applying defaults
// for unset variables and validating the result.
func LoadConfigFromEnv() (*EnvironmentConfig, error) {
	cfg := &EnvironmentConfig{
		MaxVessels:      defaultMaxVessels,
		MaxProjectiles:  defaultMaxProjectiles,
		UpdateRate:      defaultUpdateRate,
		ShutdownTimeout: defaultShutdownTimeout,
	}

	var err error
	if cfg.MaxVessels, err = intFromEnv(envMaxVessels, cfg.MaxVessels); err != nil {
		return nil, err
	}
	if cfg.MaxProjectiles, err = intFromEnv(envMaxProjectiles, cfg.MaxProjectiles); err != nil {
		return nil, err
	}
	if cfg.UpdateRate, err = intFromEnv(envUpdateRate, cfg.UpdateRate); err != nil {
		return nil, err
	}
	if raw := os.Getenv(envShutdownTimeout); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q: %w", envShutdownTimeout, raw, err)
		}
		cfg.ShutdownTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the environment configuration for unusable values
func (c *EnvironmentConfig) Validate() error {
	if c.MaxVessels < 2 {
		return fmt.Errorf("%s must allow at least 2 vessels, got %d", envMaxVessels, c.MaxVessels)
	}
	if c.MaxProjectiles < 1 {
		return fmt.Errorf("%s must be positive, got %d", envMaxProjectiles, c.MaxProjectiles)
	}
	if c.UpdateRate < 1 || c.UpdateRate > 240 {
		return fmt.Errorf("%s must be in [1, 240], got %d", envUpdateRate, c.UpdateRate)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%s must be positive, got %s", envShutdownTimeout, c.ShutdownTimeout)
	}
	return nil
}

// intFromEnv parses an integer environment variable, keeping the fallback
// when it is unset.
func intFromEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return v, nil
}
