// pkg/engine/spawn.go
package engine

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/opd-ai/go-armada/pkg/ai"
	"github.com/opd-ai/go-armada/pkg/config"
	"github.com/opd-ai/go-armada/pkg/entity"
	"github.com/opd-ai/go-armada/pkg/event"
	"github.com/opd-ai/go-armada/pkg/physics"
)

// spawnInsetFraction keeps random spawn positions away from the world edge
// by this fraction of the smaller world dimension.
const spawnInsetFraction = 0.1

// SpawnPlayerVessel places the player's vessel and records its ID. The
// player has no Pilot; its intents come straight from the driver.
func (g *Game) SpawnPlayerVessel(name string, class entity.Class, position physics.Vector2D, heading float64) (*entity.Vessel, error) {
	vessel := entity.NewVessel(entity.GenerateID(), name, class, position, heading, g.batteryRNG())
	if err := g.addVessel(vessel, false); err != nil {
		return nil, err
	}
	g.PlayerID = vessel.ID
	return vessel, nil
}

// SpawnPatrolVessel places an autonomous vessel with a blended-steering
// controller. It starts passive and turns aggressive when damaged.
func (g *Game) SpawnPatrolVessel(name string, class entity.Class, position physics.Vector2D, heading float64) (*entity.Vessel, error) {
	vessel := entity.NewVessel(entity.GenerateID(), name, class, position, heading, g.batteryRNG())
	vessel.Pilot = g.newController(vessel)
	if err := g.addVessel(vessel, false); err != nil {
		return nil, err
	}
	return vessel, nil
}

// SpawnEliteVessel places an autonomous vessel with the class's elite stat
// scaling. Elites are permanently aggressive.
func (g *Game) SpawnEliteVessel(name string, class entity.Class, position physics.Vector2D, heading float64) (*entity.Vessel, error) {
	stats := entity.ClassStats(class).Elite()
	vessel := entity.NewVesselWithStats(entity.GenerateID(), name, class, stats, position, heading, g.batteryRNG())

	controller := g.newController(vessel)
	controller.ForceAggressive()
	vessel.Pilot = controller

	if err := g.addVessel(vessel, true); err != nil {
		return nil, err
	}
	return vessel, nil
}

// SpawnTraveller places an autonomous vessel that sails toward dest until it
// arrives or is attacked.
func (g *Game) SpawnTraveller(name string, class entity.Class, position physics.Vector2D, heading float64, dest physics.Vector2D) (*entity.Vessel, error) {
	vessel := entity.NewVessel(entity.GenerateID(), name, class, position, heading, g.batteryRNG())

	controller := g.newController(vessel)
	controller.SetTravel(dest)
	vessel.Pilot = controller

	if err := g.addVessel(vessel, false); err != nil {
		return nil, err
	}
	return vessel, nil
}

// SpawnFleet places every entry of a fleet configuration at random positions
// inside the world. It stops at the first spawn the vessel cap rejects.
func (g *Game) SpawnFleet(fleet *config.FleetConfig) error {
	for _, spawn := range fleet.Spawns {
		class := entity.ClassFromString(spawn.Class)
		for i := 0; i < spawn.Count; i++ {
			name := spawn.Name
			if name == "" {
				name = spawn.Class
			}
			if spawn.Count > 1 {
				name = fmt.Sprintf("%s-%d", name, i+1)
			}

			position := g.randomSpawnPosition()
			heading := (g.rng.Float64()*2 - 1) * math.Pi

			var err error
			switch {
			case spawn.Elite:
				_, err = g.SpawnEliteVessel(name, class, position, heading)
			case spawn.Travel != nil:
				dest := physics.Vector2D{X: spawn.Travel.X, Y: spawn.Travel.Y}
				_, err = g.SpawnTraveller(name, class, position, heading, dest)
			default:
				_, err = g.SpawnPatrolVessel(name, class, position, heading)
			}
			if err != nil {
				return fmt.Errorf("spawning %s: %w", name, err)
			}
		}
	}
	return nil
}

// addVessel enforces the vessel cap, stores the vessel and announces it
func (g *Game) addVessel(vessel *entity.Vessel, elite bool) error {
	if len(g.Vessels) >= g.maxVessels {
		return ErrTooManyVessels
	}
	g.Vessels[vessel.ID] = vessel
	g.EventBus.Publish(event.NewVesselEvent(
		event.VesselSpawned,
		g,
		uint64(vessel.ID),
		vessel.Class.String(),
		elite,
	))
	return nil
}

// newController builds a blended-steering controller for the vessel, with a
// random broadside preference and its own random stream derived from the
// game's seed.
func (g *Game) newController(vessel *entity.Vessel) *ai.Controller {
	side := entity.Port
	if g.rng.IntN(2) == 1 {
		side = entity.Starboard
	}
	return ai.NewController(vessel, side, g.Config.AI, g.deriveRNG())
}

// batteryRNG returns a random stream for a new vessel's battery
func (g *Game) batteryRNG() *rand.Rand {
	return g.deriveRNG()
}

// deriveRNG splits a child random stream off the game's seeded source
func (g *Game) deriveRNG() *rand.Rand {
	return rand.New(rand.NewPCG(g.rng.Uint64(), g.rng.Uint64()))
}

// randomSpawnPosition picks a point inside the world, inset from the edges
func (g *Game) randomSpawnPosition() physics.Vector2D {
	width := g.Bounds.Width()
	height := g.Bounds.Height()
	inset := spawnInsetFraction * width
	if height < width {
		inset = spawnInsetFraction * height
	}
	area := g.Bounds.Inset(inset)
	return physics.Vector2D{
		X: area.MinX + g.rng.Float64()*area.Width(),
		Y: area.MinY + g.rng.Float64()*area.Height(),
	}
}
