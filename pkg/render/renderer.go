// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-armada/pkg/entity"
	"github.com/opd-ai/go-armada/pkg/logging"
)

// NullRenderer is a simple implementation of entity.Renderer.
type NullRenderer struct {
	logger *logging.Logger
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer() *NullRenderer {
	return &NullRenderer{
		logger: logging.NewLogger(),
	}
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	ctx := context.Background()
	d.logger.Debug(ctx, "Clear called")
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	ctx := context.Background()
	d.logger.Debug(ctx, "Present called")
}

// RenderVessel implements entity.Renderer.
func (d *NullRenderer) RenderVessel(vessel *entity.Vessel) {
	ctx := context.Background()
	if vessel == nil {
		d.logger.Debug(ctx, "RenderVessel called with nil vessel")
		return
	}
	d.logger.Debug(ctx, "RenderVessel called",
		"vessel_id", uint64(vessel.ID),
		"vessel_name", vessel.Name,
		"vessel_class", vessel.Class.String(),
	)
}

// RenderProjectile implements entity.Renderer.
func (d *NullRenderer) RenderProjectile(projectile *entity.Projectile) {
	ctx := context.Background()
	if projectile == nil {
		d.logger.Debug(ctx, "RenderProjectile called with nil projectile")
		return
	}
	d.logger.Debug(ctx, "RenderProjectile called",
		"projectile_id", uint64(projectile.ID),
		"torpedo", projectile.Profile == entity.ProfileTorpedo,
	)
}

// NullRendererInstance is a global instance of NullRenderer for convenience.
var NullRendererInstance entity.Renderer = NewNullRenderer()
