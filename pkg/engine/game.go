// pkg/engine/game.go
package engine

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/opd-ai/go-armada/pkg/config"
	"github.com/opd-ai/go-armada/pkg/entity"
	"github.com/opd-ai/go-armada/pkg/event"
	"github.com/opd-ai/go-armada/pkg/logging"
	"github.com/opd-ai/go-armada/pkg/physics"
)

// Game is the core simulation state: the live vessels and projectiles, the
// world bounds, the collision resolver and the event bus the driver listens
// on. The whole loop is single-threaded and synchronous; the driver calls
// Update once per frame with a clamped delta.
type Game struct {
	Config   *config.GameConfig
	Bounds   physics.Rect
	PlayerID entity.ID

	Vessels     map[entity.ID]*entity.Vessel
	Projectiles map[entity.ID]*entity.Projectile

	EventBus     *event.Bus
	SpatialIndex *physics.QuadTree

	Running     bool
	CurrentTick uint64
	Elapsed     float64 // simulation seconds, sum of clamped deltas

	maxVessels     int
	maxProjectiles int

	resolver *Resolver
	faults   *faultIsolator
	logger   *logging.Logger
	rng      *rand.Rand

	// scratch buffer for projectiles fired during the current tick
	firedThisTick []*entity.Projectile
	// maximum hull reach seen this tick, sizing the broad-phase query box
	maxHullReach float64
	// hulls the spatial index rejected this tick because they sit outside
	// the world; they are hit-tested by linear scan instead
	indexOverflow []*entity.Vessel
}

// NewGame creates a new game from the given configuration
func NewGame(cfg *config.GameConfig) *Game {
	bounds := cfg.WorldBounds.ToRect()
	bus := event.NewEventBus()

	game := &Game{
		Config:         cfg,
		Bounds:         bounds,
		Vessels:        make(map[entity.ID]*entity.Vessel),
		Projectiles:    make(map[entity.ID]*entity.Projectile),
		EventBus:       bus,
		SpatialIndex:   physics.NewQuadTree(bounds, 8),
		maxVessels:     defaultMaxVessels,
		maxProjectiles: defaultMaxProjectiles,
		resolver:       newResolver(cfg.Physics, bus),
		logger:         logging.NewLogger(),
		rng:            rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	game.faults = newFaultIsolator(game.logger)
	return game
}

// Fallback entity caps used when no environment configuration is applied.
const (
	defaultMaxVessels     = 64
	defaultMaxProjectiles = 2048
)

// ApplyEnvironment installs the deployment-level entity caps
func (g *Game) ApplyEnvironment(env *config.EnvironmentConfig) {
	if env == nil {
		return
	}
	g.maxVessels = env.MaxVessels
	g.maxProjectiles = env.MaxProjectiles
}

// SetSeed replaces the game's random source; spawners and batteries created
// afterwards derive from it. Tests use this for repeatable battles.
func (g *Game) SetSeed(seed uint64) {
	g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Start marks the battle as running
func (g *Game) Start() {
	g.Running = true
	g.EventBus.Publish(&event.BaseEvent{
		EventType: event.GameStarted,
		Source:    g,
	})
}

// Stop halts the battle
func (g *Game) Stop() {
	g.Running = false
	g.EventBus.Publish(&event.BaseEvent{
		EventType: event.GameEnded,
		Source:    g,
	})
}

// Update advances the simulation by one tick. dt comes from the driver and
// is clamped so a hitched frame cannot blow up the integration; playerIntent
// is the player's helm/trigger command for this tick.
func (g *Game) Update(dt float64, playerIntent physics.Intent) {
	dt = physics.Clamp(dt, 0, g.Config.MaxTick)
	g.Elapsed += dt

	intents := g.decideIntents(dt, playerIntent)
	g.updateVessels(dt, intents)
	g.updateProjectiles(dt)
	g.resolver.Update(dt)
	g.resolveVesselContacts()
	g.resolveProjectileHits()
	g.sanitizeEntities()
	g.cleanupEntities()
	g.CurrentTick++
}

// decideIntents collects every vessel's command for this tick before any
// state changes, so all pilots see the same pre-integration snapshot.
func (g *Game) decideIntents(dt float64, playerIntent physics.Intent) map[entity.ID]physics.Intent {
	neighbors := g.orderedVessels()
	target := g.playerTarget()

	intents := make(map[entity.ID]physics.Intent, len(g.Vessels))
	for _, vessel := range neighbors {
		if vessel.ID == g.PlayerID {
			intents[vessel.ID] = playerIntent
			continue
		}
		if vessel.Pilot == nil {
			continue // drifting hulk, no commands
		}
		viewTarget := target
		if viewTarget == nil {
			viewTarget = g.nearestTarget(vessel, neighbors)
		}
		view := entity.WorldView{
			Target:    viewTarget,
			Neighbors: neighbors,
			Bounds:    g.Bounds,
			Now:       g.Elapsed,
		}
		intents[vessel.ID] = vessel.Pilot.Decide(dt, view)
	}
	return intents
}

// nearestTarget picks the closest other targetable hull. With no player
// vessel in the battle, autonomous vessels engage each other instead of
// wandering unopposed.
func (g *Game) nearestTarget(vessel *entity.Vessel, neighbors []*entity.Vessel) *entity.Vessel {
	var best *entity.Vessel
	bestDist := math.MaxFloat64
	for _, other := range neighbors {
		if other.ID == vessel.ID || !other.Targetable() {
			continue
		}
		dist := other.Body.Position.Sub(vessel.Body.Position).LengthSquared()
		if dist < bestDist {
			bestDist = dist
			best = other
		}
	}
	return best
}

// playerTarget returns the player's vessel while it can still be fought
func (g *Game) playerTarget() *entity.Vessel {
	player, ok := g.Vessels[g.PlayerID]
	if !ok || !player.Targetable() {
		return nil
	}
	return player
}

// updateVessels integrates every hull and registers anything it fired
func (g *Game) updateVessels(dt float64, intents map[entity.ID]physics.Intent) {
	g.firedThisTick = g.firedThisTick[:0]
	for _, vessel := range g.orderedVessels() {
		vessel.Update(dt, intents[vessel.ID], &g.firedThisTick)
	}
	for _, projectile := range g.firedThisTick {
		g.registerProjectile(projectile)
	}
}

// registerProjectile adds a fired projectile, enforcing the arena cap, and
// announces it on the bus.
func (g *Game) registerProjectile(projectile *entity.Projectile) {
	if len(g.Projectiles) >= g.maxProjectiles {
		g.logger.Warn(context.Background(), "projectile cap reached, shot dropped",
			"cap", g.maxProjectiles,
		)
		return
	}
	g.Projectiles[projectile.ID] = projectile
	g.EventBus.Publish(event.NewFireEvent(
		g,
		uint64(projectile.ID),
		uint64(projectile.OwnerID),
		projectile.Profile == entity.ProfileTorpedo,
	))
}

// updateProjectiles flies every live projectile forward
func (g *Game) updateProjectiles(dt float64) {
	for _, projectile := range g.Projectiles {
		projectile.Update(dt)
	}
}

// resolveVesselContacts runs the pairwise ship-ship pass
func (g *Game) resolveVesselContacts() {
	g.resolver.ResolveVessels(g.orderedVessels(), g.Elapsed)
}

// resolveProjectileHits rebuilds the broad phase and tests every live
// projectile against the hulls around it.
func (g *Game) resolveProjectileHits() {
	g.rebuildSpatialIndex()
	g.resolver.ResolveProjectiles(g, g.Elapsed)
}

// rebuildSpatialIndex reinserts all targetable hulls for this tick's
// projectile queries and records the largest hull reach for query sizing.
// The index rejects points outside the world; a hull that drifted past the
// bounds goes into the overflow list so it stays hittable.
func (g *Game) rebuildSpatialIndex() {
	g.SpatialIndex.Clear()
	g.maxHullReach = 0
	g.indexOverflow = g.indexOverflow[:0]
	for _, vessel := range g.Vessels {
		if !vessel.Targetable() {
			continue
		}
		if !g.SpatialIndex.Insert(vessel.Body.Position, vessel) {
			g.indexOverflow = append(g.indexOverflow, vessel)
		}
		if reach := vessel.Body.Length * 0.7; reach > g.maxHullReach {
			g.maxHullReach = reach
		}
	}
}

// sanitizeEntities clamps any entity whose state went non-finite and lets
// the fault isolator decide whether it has happened often enough to retire
// the entity. A corrupted vessel never halts the tick.
func (g *Game) sanitizeEntities() {
	center := physics.Vector2D{
		X: (g.Bounds.MinX + g.Bounds.MaxX) / 2,
		Y: (g.Bounds.MinY + g.Bounds.MaxY) / 2,
	}
	for _, vessel := range g.orderedVessels() {
		reset := vessel.Body.Sanitize(center)
		if reset {
			g.logger.Warn(context.Background(), "vessel state reset after non-finite values",
				"vessel_id", uint64(vessel.ID),
			)
		}
		if g.faults.record(vessel.ID, reset) {
			g.logger.Error(context.Background(), "vessel retired by fault isolator", nil,
				"vessel_id", uint64(vessel.ID),
			)
			vessel.Sunk = true
		}
	}

	for _, projectile := range g.Projectiles {
		if !projectile.Position.IsFinite() || !projectile.Velocity.IsFinite() {
			projectile.Kill()
		}
	}
}

// cleanupEntities removes spent projectiles and fully sunk vessels. Removal
// happens only here, at the end of the tick, so no component ever observes a
// mid-tick disappearance.
func (g *Game) cleanupEntities() {
	for id, projectile := range g.Projectiles {
		if !projectile.Alive() {
			delete(g.Projectiles, id)
		}
	}

	for id, vessel := range g.Vessels {
		if !vessel.Sunk {
			continue
		}
		delete(g.Vessels, id)
		g.faults.forget(id)
		g.EventBus.Publish(event.NewVesselEvent(
			event.VesselRemoved,
			g,
			uint64(id),
			vessel.Class.String(),
			false,
		))
	}
}

// orderedVessels returns the live vessels sorted by ID. Map iteration order
// is random; the pairwise collision pass and intent collection want a stable
// order.
func (g *Game) orderedVessels() []*entity.Vessel {
	vessels := make([]*entity.Vessel, 0, len(g.Vessels))
	for _, vessel := range g.Vessels {
		vessels = append(vessels, vessel)
	}
	sort.Slice(vessels, func(i, j int) bool {
		return vessels[i].ID < vessels[j].ID
	})
	return vessels
}

// orderedProjectiles returns the live projectiles sorted by ID, for the same
// reason as orderedVessels.
func (g *Game) orderedProjectiles() []*entity.Projectile {
	projectiles := make([]*entity.Projectile, 0, len(g.Projectiles))
	for _, projectile := range g.Projectiles {
		projectiles = append(projectiles, projectile)
	}
	sort.Slice(projectiles, func(i, j int) bool {
		return projectiles[i].ID < projectiles[j].ID
	})
	return projectiles
}

// Errors returned by the driver-facing API.
var (
	ErrVesselNotFound = errors.New("vessel not found")
	ErrTooManyVessels = errors.New("vessel cap reached")
)

// Vessel looks up a live vessel by ID
func (g *Game) Vessel(id entity.ID) (*entity.Vessel, error) {
	vessel, ok := g.Vessels[id]
	if !ok {
		return nil, ErrVesselNotFound
	}
	return vessel, nil
}

// GameState represents a snapshot of the game state for drivers
type GameState struct {
	Tick        uint64
	Elapsed     float64
	Vessels     map[entity.ID]VesselState
	Projectiles map[entity.ID]ProjectileState
}

// VesselState is a snapshot of one vessel
type VesselState struct {
	ID        entity.ID
	Name      string
	Class     entity.Class
	Position  physics.Vector2D
	Velocity  physics.Vector2D
	Heading   float64
	Health    float64
	MaxHealth float64
	Sinking   bool
	Hull      []physics.Vector2D
	Radius    float64
	Mass      float64
}

// ProjectileState is a snapshot of one projectile
type ProjectileState struct {
	ID       entity.ID
	Position physics.Vector2D
	Velocity physics.Vector2D
	Torpedo  bool
	Damage   float64
}

// GetGameState returns a snapshot of the current game state
func (g *Game) GetGameState() *GameState {
	state := &GameState{
		Tick:        g.CurrentTick,
		Elapsed:     g.Elapsed,
		Vessels:     make(map[entity.ID]VesselState, len(g.Vessels)),
		Projectiles: make(map[entity.ID]ProjectileState, len(g.Projectiles)),
	}

	for id, vessel := range g.Vessels {
		state.Vessels[id] = VesselState{
			ID:        id,
			Name:      vessel.Name,
			Class:     vessel.Class,
			Position:  vessel.Body.Position,
			Velocity:  vessel.Body.Velocity,
			Heading:   vessel.Body.Heading,
			Health:    vessel.Health,
			MaxHealth: vessel.MaxHealth,
			Sinking:   vessel.Sinking,
			Hull:      vessel.HullPolygon(),
			Radius:    vessel.Body.Radius,
			Mass:      vessel.Body.Mass,
		}
	}

	for id, projectile := range g.Projectiles {
		state.Projectiles[id] = ProjectileState{
			ID:       id,
			Position: projectile.Position,
			Velocity: projectile.Velocity,
			Torpedo:  projectile.Profile == entity.ProfileTorpedo,
			Damage:   projectile.Damage(),
		}
	}

	return state
}
