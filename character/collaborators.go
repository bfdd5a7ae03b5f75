package character

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gravityfps/common"
	"github.com/milk9111/gravityfps/ecs"
	"github.com/milk9111/gravityfps/ecs/component"
	"go.uber.org/zap"
)

// Body is the movable body the character drives. component.CharacterBody
// implements it.
type Body interface {
	Position() mgl64.Vec3
	ControlRotation() common.Rotator
	SetControlRotation(r common.Rotator)
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	GravityScale() float64
	SetGravityScale(s float64)
	SetPlaneConstraint(enabled bool, normal mgl64.Vec3)
	MaxWalkSpeed() float64
	SetMaxWalkSpeed(s float64)
	JumpZVelocity() float64
	SetJumpZVelocity(v float64)
	IsFalling() bool
	IsCrouched() bool
	SetCrouched(crouched bool)
	AddMovementInput(dir mgl64.Vec3, scale float64)
	Jump()
	StopJumping()
	Launch(v mgl64.Vec3, overrideXY, overrideZ bool)
}

// Queries is the subset of *ecs.PhysicsWorld the character uses.
type Queries interface {
	OverlapCapsule(center mgl64.Vec3, radius, halfHeight float64, ignore []ecs.Entity) []ecs.TraceHit
	LineTrace(start, end mgl64.Vec3, ignore []ecs.Entity) (ecs.TraceHit, bool)
}

// HUD receives fire-and-forget presentation updates.
type HUD interface {
	ShowInvisibility(visible bool)
	SetFuelPercent(pct float64)
	SetChargePercent(pct float64)
	EquipmentChanged(label string)
	SetRadarVisible(visible bool)
	SetFuelVisible(visible bool)
}

// SpawnRequest describes a projectile to place in the world. Velocity is
// the launch vector on top of the kind's own muzzle speed.
type SpawnRequest struct {
	Kind        component.ProjectileKind
	Location    mgl64.Vec3
	Rotation    common.Rotator
	Velocity    mgl64.Vec3
	Destination mgl64.Vec3
}

// Projectile is the handle returned for a freshly spawned projectile.
type Projectile interface {
	AddVelocity(v mgl64.Vec3)
}

// HeldObject is an object attached to the avatar's hand socket.
type HeldObject interface {
	Throw(location mgl64.Vec3, rotation common.Rotator, velocity mgl64.Vec3)
	Destroy()
}

// Spawner creates projectiles and held objects.
type Spawner interface {
	Spawn(req SpawnRequest) (Projectile, bool)
	Hold(kind component.ProjectileKind, destination mgl64.Vec3) (HeldObject, bool)
}

// Sockets toggles the gun mesh mounted on the human avatar.
type Sockets interface {
	SetGunVisible(visible bool)
}

// Timers arms deferred single-shot callbacks. *ecs.Timers implements it.
type Timers interface {
	After(delay float64, fn func()) ecs.TimerID
	Cancel(id ecs.TimerID) bool
}

// Clock reports simulated seconds. *ecs.World implements it.
type Clock interface {
	Time() float64
}

// Interactor handles the interact action. It reports false when e is not
// something that can be interacted with.
type Interactor interface {
	Interact(e ecs.Entity) bool
}

// FlightMeter is told when thrust starts and stops so it can meter fuel.
type FlightMeter interface {
	UpdateFlightState(thrusting bool)
}

// Collaborators wires a Character to the world. Body and Queries are
// required; everything else may be nil.
type Collaborators struct {
	Self    ecs.Entity
	Body    Body
	Queries Queries
	HUD     HUD
	Spawner Spawner
	Sockets Sockets
	Timers  Timers
	Clock   Clock
	Doors   Interactor
	Fuel    FlightMeter

	// WallRunnable reports whether e may be run along.
	WallRunnable func(e ecs.Entity) bool
	// Describe names e and reports its position for the biopad.
	Describe func(e ecs.Entity) (string, mgl64.Vec3, bool)

	Logger *zap.Logger
}
