package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gravityfps/common"
)

// CharacterBody is the movable body of the avatar. Gameplay code writes its
// velocity and movement parameters; CharacterMovementSystem integrates it.
type CharacterBody struct {
	Pos      mgl64.Vec3
	Control  common.Rotator
	Vel      mgl64.Vec3
	Gravity  float64
	WalkMax  float64
	JumpZ    float64
	Crouched bool
	Falling  bool

	PlaneConstrained bool
	PlaneNormal      mgl64.Vec3

	Radius     float64
	HalfHeight float64

	// Acceleration and BrakingDecel drive walking; AirControl scales input
	// while airborne.
	Acceleration float64
	BrakingDecel float64
	AirControl   float64

	MoveInput    mgl64.Vec3
	JumpPending  bool
	LaunchVel    mgl64.Vec3
	LaunchXY     bool
	LaunchZ      bool
	LaunchQueued bool
}

var CharacterBodyComponent = NewComponent[CharacterBody]()

func (b *CharacterBody) Position() mgl64.Vec3            { return b.Pos }
func (b *CharacterBody) ControlRotation() common.Rotator { return b.Control }
func (b *CharacterBody) SetControlRotation(r common.Rotator) {
	b.Control = r
}
func (b *CharacterBody) Velocity() mgl64.Vec3       { return b.Vel }
func (b *CharacterBody) SetVelocity(v mgl64.Vec3)   { b.Vel = v }
func (b *CharacterBody) GravityScale() float64      { return b.Gravity }
func (b *CharacterBody) SetGravityScale(s float64)  { b.Gravity = s }
func (b *CharacterBody) MaxWalkSpeed() float64      { return b.WalkMax }
func (b *CharacterBody) SetMaxWalkSpeed(s float64)  { b.WalkMax = s }
func (b *CharacterBody) JumpZVelocity() float64     { return b.JumpZ }
func (b *CharacterBody) SetJumpZVelocity(v float64) { b.JumpZ = v }
func (b *CharacterBody) IsFalling() bool            { return b.Falling }
func (b *CharacterBody) IsCrouched() bool           { return b.Crouched }
func (b *CharacterBody) SetCrouched(c bool)         { b.Crouched = c }
func (b *CharacterBody) CapsuleHalfHeight() float64 { return b.HalfHeight }

// SetPlaneConstraint confines movement to the plane with the given normal.
func (b *CharacterBody) SetPlaneConstraint(enabled bool, normal mgl64.Vec3) {
	b.PlaneConstrained = enabled
	b.PlaneNormal = common.SafeNormal(normal)
}

func (b *CharacterBody) PlaneConstraint() (bool, mgl64.Vec3) {
	return b.PlaneConstrained, b.PlaneNormal
}

// AddMovementInput accumulates a world-space move request for this tick.
func (b *CharacterBody) AddMovementInput(dir mgl64.Vec3, scale float64) {
	b.MoveInput = b.MoveInput.Add(dir.Mul(scale))
}

func (b *CharacterBody) Jump()        { b.JumpPending = true }
func (b *CharacterBody) StopJumping() { b.JumpPending = false }

// Launch replaces (or adds to) the velocity on the next integration step.
func (b *CharacterBody) Launch(v mgl64.Vec3, overrideXY, overrideZ bool) {
	b.LaunchVel = v
	b.LaunchXY = overrideXY
	b.LaunchZ = overrideZ
	b.LaunchQueued = true
}
