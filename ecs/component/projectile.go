package component

import "github.com/go-gl/mathgl/mgl64"

type ProjectileKind string

const (
	ProjectileLaser   ProjectileKind = "laser"
	ProjectileMissile ProjectileKind = "missile"
	ProjectileNuke    ProjectileKind = "nuke"
	ProjectileCube    ProjectileKind = "cube"
	ProjectileBullet  ProjectileKind = "bullet"
)

// Projectile is a fired object. Owner is never hit by its own projectile.
type Projectile struct {
	Kind  ProjectileKind
	Owner uint64
	// Speed is the muzzle speed along the spawn rotation.
	Speed    float64
	Velocity mgl64.Vec3
	Radius   float64
	// ImpulseScale multiplies the projectile velocity into the impulse
	// applied to props it hits.
	ImpulseScale float64
	// Held projectiles sit in the owner's hand and do not move.
	Held bool
	// Spent projectiles no longer collide; they wait for their owner system.
	Spent bool
}

var ProjectileComponent = NewComponent[Projectile]()
