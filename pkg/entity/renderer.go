package entity

// Renderer handles rendering game entities
type Renderer interface {
	RenderVessel(vessel *Vessel)
	RenderProjectile(projectile *Projectile)
	Clear()
	Present()
}
