// cmd/viewer/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/opd-ai/go-armada/pkg/config"
	"github.com/opd-ai/go-armada/pkg/engine"
	"github.com/opd-ai/go-armada/pkg/entity"
	"github.com/opd-ai/go-armada/pkg/logging"
	"github.com/opd-ai/go-armada/pkg/physics"
)

const (
	screenWidth  = 1280
	screenHeight = 800
)

// Hull and projectile colors for the viewer.
var (
	seaColor        = color.RGBA{R: 12, G: 36, B: 58, A: 255}
	playerColor     = color.RGBA{R: 120, G: 220, B: 255, A: 255}
	vesselColor     = color.RGBA{R: 220, G: 210, B: 180, A: 255}
	aggressiveColor = color.RGBA{R: 255, G: 120, B: 100, A: 255}
	sinkingColor    = color.RGBA{R: 110, G: 110, B: 110, A: 255}
	shellColor      = color.RGBA{R: 255, G: 240, B: 160, A: 255}
	torpedoColor    = color.RGBA{R: 255, G: 140, B: 60, A: 255}
	boundsColor     = color.RGBA{R: 40, G: 90, B: 120, A: 255}
)

// Viewer is the ebiten driver: it reads the keyboard into a helm intent,
// steps the simulation with a clamped wall-clock delta and draws the hull
// polygons around the player's vessel.
type Viewer struct {
	game     *engine.Game
	logger   *logging.Logger
	lastTime time.Time
	camera   physics.Vector2D
	zoom     float64
}

// Update implements ebiten.Game
func (v *Viewer) Update() error {
	now := time.Now()
	dt := now.Sub(v.lastTime).Seconds()
	v.lastTime = now

	v.game.Update(dt, readIntent())
	v.followPlayer()
	return nil
}

// readIntent maps the keyboard to a helm and trigger command. Arrow keys
// double the WASD bindings; space fires.
func readIntent() physics.Intent {
	return physics.Intent{
		ThrustForward: ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp),
		ThrustReverse: ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown),
		TurnLeft:      ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft),
		TurnRight:     ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight),
		Fire:          ebiten.IsKeyPressed(ebiten.KeySpace),
	}
}

// followPlayer glides the camera toward the player's vessel
func (v *Viewer) followPlayer() {
	player, err := v.game.Vessel(v.game.PlayerID)
	if err != nil {
		return
	}
	v.camera = v.camera.Add(player.Body.Position.Sub(v.camera).Scale(0.1))
}

// worldToScreen projects a world position through the camera
func (v *Viewer) worldToScreen(pos physics.Vector2D) (float32, float32) {
	x := (pos.X-v.camera.X)*v.zoom + screenWidth/2
	y := (pos.Y-v.camera.Y)*v.zoom + screenHeight/2
	return float32(x), float32(y)
}

// Draw implements ebiten.Game
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(seaColor)
	v.drawBounds(screen)

	state := v.game.GetGameState()
	for _, vessel := range state.Vessels {
		v.drawVessel(screen, vessel)
	}
	for _, projectile := range state.Projectiles {
		v.drawProjectile(screen, projectile)
	}

	v.drawHUD(screen, state)
}

// drawBounds outlines the world rectangle
func (v *Viewer) drawBounds(screen *ebiten.Image) {
	x0, y0 := v.worldToScreen(physics.Vector2D{X: v.game.Bounds.MinX, Y: v.game.Bounds.MinY})
	x1, y1 := v.worldToScreen(physics.Vector2D{X: v.game.Bounds.MaxX, Y: v.game.Bounds.MaxY})
	vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 2, boundsColor, true)
}

// drawVessel strokes the hull polygon and a health bar above it
func (v *Viewer) drawVessel(screen *ebiten.Image, vessel engine.VesselState) {
	hullColor := vesselColor
	switch {
	case vessel.Sinking:
		hullColor = sinkingColor
	case vessel.ID == v.game.PlayerID:
		hullColor = playerColor
	case vessel.Health < vessel.MaxHealth:
		hullColor = aggressiveColor
	}

	hull := vessel.Hull
	for i := range hull {
		x0, y0 := v.worldToScreen(hull[i])
		x1, y1 := v.worldToScreen(hull[(i+1)%len(hull)])
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, hullColor, true)
	}

	if !vessel.Sinking {
		v.drawHealthBar(screen, vessel)
	}
}

// drawHealthBar draws the health fraction above the hull
func (v *Viewer) drawHealthBar(screen *ebiten.Image, vessel engine.VesselState) {
	x, y := v.worldToScreen(vessel.Position)
	barWidth := float32(vessel.Radius*2*v.zoom + 8)
	barY := y - float32(vessel.Radius*v.zoom) - 10

	frac := float32(vessel.Health / vessel.MaxHealth)
	vector.StrokeRect(screen, x-barWidth/2, barY, barWidth, 4, 1, boundsColor, true)
	vector.DrawFilledRect(screen, x-barWidth/2, barY, barWidth*frac, 4, vesselColor, true)
}

// drawProjectile draws a filled dot, larger and warmer for torpedoes
func (v *Viewer) drawProjectile(screen *ebiten.Image, projectile engine.ProjectileState) {
	x, y := v.worldToScreen(projectile.Position)
	if projectile.Torpedo {
		vector.DrawFilledCircle(screen, x, y, 4, torpedoColor, true)
		return
	}
	vector.DrawFilledCircle(screen, x, y, 2.5, shellColor, true)
}

// drawHUD prints the battle overview in the corner
func (v *Viewer) drawHUD(screen *ebiten.Image, state *engine.GameState) {
	hud := fmt.Sprintf("tick %d  vessels %d  projectiles %d",
		state.Tick, len(state.Vessels), len(state.Projectiles))
	if player, ok := state.Vessels[v.game.PlayerID]; ok {
		hud += fmt.Sprintf("  hull %.0f/%.0f  speed %.0f",
			player.Health, player.MaxHealth, player.Velocity.Length())
	} else {
		hud += "  [sunk]"
	}
	ebitenutil.DebugPrint(screen, hud)
}

// Layout implements ebiten.Game
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	configPath := flag.String("config", "config.json", "Path to configuration file")
	fleetPath := flag.String("fleet", "", "Path to fleet file (overrides config)")
	class := flag.String("class", "Brig", "Player vessel class")
	seed := flag.Uint64("seed", 0, "Random seed (0 leaves the game unseeded)")
	zoom := flag.Float64("zoom", 0.5, "Pixels per world unit")
	flag.Parse()

	gameConfig := config.DefaultConfig()
	if _, err := os.Stat(*configPath); err == nil {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			logger.Error(ctx, "Failed to load configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		gameConfig = loaded
	}

	fleet := config.DefaultFleet()
	path := *fleetPath
	if path == "" {
		path = gameConfig.FleetFile
	}
	if path != "" {
		loaded, err := config.LoadFleet(path)
		if err != nil {
			logger.Error(ctx, "Failed to load fleet file", err,
				"fleet_path", path,
			)
			os.Exit(1)
		}
		fleet = loaded
	}

	game := engine.NewGame(gameConfig)
	if *seed != 0 {
		game.SetSeed(*seed)
	}

	bounds := gameConfig.WorldBounds.ToRect()
	center := physics.Vector2D{
		X: (bounds.MinX + bounds.MaxX) / 2,
		Y: (bounds.MinY + bounds.MaxY) / 2,
	}
	player, err := game.SpawnPlayerVessel("Player", entity.ClassFromString(*class), center, 0)
	if err != nil {
		logger.Error(ctx, "Failed to spawn player vessel", err)
		os.Exit(1)
	}
	if err := game.SpawnFleet(fleet); err != nil {
		logger.Error(ctx, "Failed to spawn fleet", err)
		os.Exit(1)
	}
	game.Start()

	viewer := &Viewer{
		game:     game,
		logger:   logger,
		lastTime: time.Now(),
		camera:   player.Body.Position,
		zoom:     *zoom,
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Armada Viewer")
	if err := ebiten.RunGame(viewer); err != nil {
		logger.Error(ctx, "Viewer exited with error", err)
		os.Exit(1)
	}
}
