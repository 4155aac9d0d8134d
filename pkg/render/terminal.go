// pkg/render/terminal.go
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/opd-ai/go-armada/pkg/entity"
	"github.com/opd-ai/go-armada/pkg/physics"
)

// TerminalRenderer provides a simple ASCII-based rendering for terminals
type TerminalRenderer struct {
	width     int
	height    int
	buffer    [][]rune
	scale     float64
	centerPos physics.Vector2D
}

// NewTerminalRenderer creates a new terminal renderer with the specified dimensions
func NewTerminalRenderer(width, height int, scale float64) *TerminalRenderer {
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}

	return &TerminalRenderer{
		width:  width,
		height: height,
		buffer: buffer,
		scale:  scale,
	}
}

// SetCenter sets the center position of the view
func (r *TerminalRenderer) SetCenter(pos physics.Vector2D) {
	r.centerPos = pos
}

// worldToScreen converts world coordinates to screen coordinates
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	screenX := int((pos.X-r.centerPos.X)/r.scale + float64(r.width)/2)
	screenY := int((pos.Y-r.centerPos.Y)/r.scale + float64(r.height)/2)
	return screenX, screenY
}

// Clear implements entity.Renderer
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
		}
	}
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	// Home the cursor and wipe the screen
	fmt.Print("\033[H\033[2J")

	fmt.Println("+" + strings.Repeat("-", r.width) + "+")
	for y := range r.buffer {
		fmt.Print("|")
		for x := range r.buffer[y] {
			fmt.Print(string(r.buffer[y][x]))
		}
		fmt.Println("|")
	}
	fmt.Println("+" + strings.Repeat("-", r.width) + "+")
}

// headingGlyphs maps an octant of the vessel's heading to an arrow-like rune,
// starting at east and going counterclockwise.
var headingGlyphs = []rune{'>', '/', '^', '\\', '<', '/', 'v', '\\'}

// RenderVessel implements entity.Renderer. A live vessel draws as a heading
// glyph, a sinking one as 'x'.
func (r *TerminalRenderer) RenderVessel(vessel *entity.Vessel) {
	x, y := r.worldToScreen(vessel.Body.Position)
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}

	if vessel.Sinking {
		r.buffer[y][x] = 'x'
		return
	}

	heading := physics.NormalizeAngle(vessel.Body.Heading)
	octant := int(math.Round(heading/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	r.buffer[y][x] = headingGlyphs[octant]
}

// RenderProjectile implements entity.Renderer. Shells draw as '.', torpedoes
// as '*'.
func (r *TerminalRenderer) RenderProjectile(projectile *entity.Projectile) {
	x, y := r.worldToScreen(projectile.Position)
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}

	glyph := '.'
	if projectile.Profile == entity.ProfileTorpedo {
		glyph = '*'
	}
	r.buffer[y][x] = glyph
}
