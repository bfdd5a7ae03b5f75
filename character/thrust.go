package character

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gravityfps/common"
	"go.uber.org/zap"
)

const maxPitch = 89.0

// Move handles a movement axis value (x strafe, y forward). While flying
// the input is stored as camera-relative thrust; otherwise it is fed to the
// body and, for a grounded human, grows momentum by one step.
func (c *Character) Move(input mgl64.Vec2) {
	c.moveKeyHeld = true
	body := c.deps.Body

	if c.mode == ModeArmoured && c.thrusting {
		cam := c.CameraRotation()
		c.thrustInput = cam.Forward().Mul(input.Y()).Add(cam.Right().Mul(input.X()))
		return
	}

	facing := common.Rotator{Yaw: body.ControlRotation().Yaw}
	body.AddMovementInput(facing.Forward(), input.Y())
	body.AddMovementInput(facing.Right(), input.X())

	if c.mode == ModeHuman && !body.IsFalling() {
		c.momentumSpeed = common.Clamp(c.momentumSpeed+c.tuning.MomentumStep, c.tuning.HumanBaseWalk, c.tuning.HumanMaxWalk)
		body.SetMaxWalkSpeed(c.momentumSpeed)
	}
}

// MoveReleased is the key-up edge of the movement axis.
func (c *Character) MoveReleased() {
	c.moveKeyHeld = false
}

func (c *Character) MoveKeyHeld() bool { return c.moveKeyHeld }

// Look turns the camera. Pitch is clamped short of straight up or down.
func (c *Character) Look(delta mgl64.Vec2) {
	body := c.deps.Body
	rot := body.ControlRotation()
	rot.Yaw = common.NormalizeAxis(rot.Yaw + delta.X())
	rot.Pitch = common.Clamp(rot.Pitch-delta.Y(), -maxPitch, maxPitch)
	body.SetControlRotation(rot)
}

func (c *Character) Crouch(crouched bool) {
	c.deps.Body.SetCrouched(crouched)
}

// StartThrusters begins armoured flight: any pending jump is dropped and the
// body lifts off the ground. A stored flying velocity is turned by the yaw
// change since thrust last ended.
func (c *Character) StartThrusters() {
	body := c.deps.Body
	if c.mode != ModeArmoured || body.IsCrouched() || !c.canFly {
		return
	}
	c.thrusting = true
	if c.deps.Fuel != nil {
		c.deps.Fuel.UpdateFlightState(true)
	}
	body.StopJumping()
	body.Launch(mgl64.Vec3{0, 0, body.JumpZVelocity()}, false, true)

	if !common.IsZero(c.flyingVelocity) {
		delta := common.NormalizeAxis(body.ControlRotation().Yaw - c.rotationAtThrusterEnd.Yaw)
		c.flyingVelocity = common.RotateYaw(c.flyingVelocity, delta)
	}
	c.updateState()
	c.logger.Debug("thrusters started", zap.Float64("flying_speed", c.flyingVelocity.Len()))
}

// EndThrusters stops flight and snapshots the rotation for the next start.
func (c *Character) EndThrusters() {
	c.thrusting = false
	if c.deps.Fuel != nil {
		c.deps.Fuel.UpdateFlightState(false)
	}
	c.rotationAtThrusterEnd = c.deps.Body.ControlRotation()
	c.updateState()
}
