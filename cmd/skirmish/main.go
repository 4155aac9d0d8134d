// cmd/skirmish/main.go
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opd-ai/go-armada/pkg/config"
	"github.com/opd-ai/go-armada/pkg/engine"
	"github.com/opd-ai/go-armada/pkg/entity"
	"github.com/opd-ai/go-armada/pkg/event"
	"github.com/opd-ai/go-armada/pkg/logging"
	"github.com/opd-ai/go-armada/pkg/physics"
	"github.com/opd-ai/go-armada/pkg/render"
)

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	configPath := flag.String("config", "config.json", "Path to configuration file")
	fleetPath := flag.String("fleet", "", "Path to fleet file (overrides config)")
	createDefault := flag.Bool("default", false, "Create default configuration and fleet files")
	duration := flag.Duration("duration", 2*time.Minute, "Battle duration (0 runs until one vessel remains)")
	seed := flag.Uint64("seed", 0, "Random seed (0 leaves the game unseeded)")
	ascii := flag.Bool("ascii", false, "Draw the battle as ASCII in the terminal")
	flag.Parse()

	if *createDefault {
		createDefaultFiles(ctx, logger, *configPath)
		return
	}

	gameConfig := loadGameConfig(ctx, logger, *configPath)
	fleet := loadFleet(ctx, logger, gameConfig, *fleetPath)

	envConfig, err := config.LoadConfigFromEnv()
	if err != nil {
		logger.Error(ctx, "Failed to load environment configuration", err)
		os.Exit(1)
	}

	game := engine.NewGame(gameConfig)
	game.ApplyEnvironment(envConfig)
	if *seed != 0 {
		game.SetSeed(*seed)
	}

	stats := subscribeBattleLog(ctx, logger, game.EventBus)

	if err := game.SpawnFleet(fleet); err != nil {
		logger.Error(ctx, "Failed to spawn fleet", err)
		os.Exit(1)
	}

	renderer := render.NullRendererInstance
	if *ascii {
		terminal := render.NewTerminalRenderer(100, 36, gameConfig.WorldBounds.ToRect().Width()/100)
		center := physics.Vector2D{
			X: (gameConfig.WorldBounds.MinX + gameConfig.WorldBounds.MaxX) / 2,
			Y: (gameConfig.WorldBounds.MinY + gameConfig.WorldBounds.MaxY) / 2,
		}
		terminal.SetCenter(center)
		renderer = terminal
	}

	logger.Info(ctx, "Starting skirmish",
		"vessels", len(game.Vessels),
		"duration", duration.String(),
		"update_rate", envConfig.UpdateRate,
	)
	runBattle(game, renderer, envConfig.UpdateRate, *duration)

	logger.Info(ctx, "Skirmish finished",
		"ticks", game.CurrentTick,
		"elapsed_seconds", game.Elapsed,
		"vessels_left", len(game.Vessels),
		"shots_fired", stats.shots,
		"hits", stats.hits,
		"rams", stats.rams,
		"vessels_sunk", stats.sunk,
	)
}

// createDefaultFiles writes a default configuration and fleet next to it
func createDefaultFiles(ctx context.Context, logger *logging.Logger, configPath string) {
	if err := config.SaveConfig(config.DefaultConfig(), configPath); err != nil {
		logger.Error(ctx, "Failed to create default configuration", err,
			"config_path", configPath,
		)
		os.Exit(1)
	}
	if err := config.SaveFleet(config.DefaultFleet(), "fleet.yaml"); err != nil {
		logger.Error(ctx, "Failed to create default fleet file", err)
		os.Exit(1)
	}
	logger.Info(ctx, "Created default configuration and fleet files",
		"config_path", configPath,
		"fleet_path", "fleet.yaml",
	)
}

// loadGameConfig loads the battle configuration, falling back to defaults
// when the file does not exist.
func loadGameConfig(ctx context.Context, logger *logging.Logger, path string) *config.GameConfig {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		return config.DefaultConfig()
	}

	gameConfig, err := config.LoadConfig(path)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", path,
		)
		os.Exit(1)
	}
	return gameConfig
}

// loadFleet resolves the fleet: the -fleet flag wins, then the config's
// fleetFile, then the built-in default patrol.
func loadFleet(ctx context.Context, logger *logging.Logger, gameConfig *config.GameConfig, flagPath string) *config.FleetConfig {
	path := flagPath
	if path == "" {
		path = gameConfig.FleetFile
	}
	if path == "" {
		return config.DefaultFleet()
	}

	fleet, err := config.LoadFleet(path)
	if err != nil {
		logger.Error(ctx, "Failed to load fleet file", err,
			"fleet_path", path,
		)
		os.Exit(1)
	}
	return fleet
}

// battleStats accumulates counters from the event bus for the end summary
type battleStats struct {
	shots int
	hits  int
	rams  int
	sunk  int
}

// subscribeBattleLog wires the event bus into the structured log and the
// summary counters.
func subscribeBattleLog(ctx context.Context, logger *logging.Logger, bus *event.Bus) *battleStats {
	stats := &battleStats{}

	bus.Subscribe(event.ProjectileFired, func(e event.Event) {
		stats.shots++
	})
	bus.Subscribe(event.ProjectileHit, func(e event.Event) {
		stats.hits++
		hit := e.(*event.HitEvent)
		logger.Debug(ctx, "projectile hit",
			"owner_id", hit.OwnerID,
			"vessel_id", hit.VesselID,
			"damage", hit.Damage,
			"lethal", hit.Lethal,
		)
	})
	bus.Subscribe(event.VesselsRammed, func(e event.Event) {
		stats.rams++
		ram := e.(*event.RamEvent)
		logger.Info(ctx, "vessels rammed",
			"vessel_a", ram.VesselA,
			"vessel_b", ram.VesselB,
			"bow_ram", ram.BowRam,
			"damage_a", ram.DamageA,
			"damage_b", ram.DamageB,
		)
	})
	bus.Subscribe(event.VesselSinking, func(e event.Event) {
		stats.sunk++
		sinking := e.(*event.VesselEvent)
		logger.Info(ctx, "vessel sinking",
			"vessel_id", sinking.VesselID,
			"class", sinking.Class,
		)
	})

	return stats
}

// runBattle drives the fixed-step simulation loop until the duration
// expires, the battle resolves itself or the process is signalled.
func runBattle(game *engine.Game, renderer entity.Renderer, updateRate int, duration time.Duration) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	step := time.Second / time.Duration(updateRate)
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	var deadline <-chan time.Time
	if duration > 0 {
		deadline = time.After(duration)
	}

	game.Start()
	defer game.Stop()

	dt := step.Seconds()
	for {
		select {
		case <-ticker.C:
			game.Update(dt, physics.Intent{})
			drawFrame(game, renderer)
			if len(game.Vessels) <= 1 {
				return
			}
		case <-deadline:
			return
		case <-sigChan:
			return
		}
	}
}

// drawFrame renders the current game state
func drawFrame(game *engine.Game, renderer entity.Renderer) {
	renderer.Clear()
	for _, vessel := range game.Vessels {
		renderer.RenderVessel(vessel)
	}
	for _, projectile := range game.Projectiles {
		renderer.RenderProjectile(projectile)
	}
	renderer.Present()
}
