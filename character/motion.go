package character

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gravityfps/common"
	"go.uber.org/zap"
)

// motionState is the movement model the character is currently in.
// States are stateless singletons; the character carries the data.
type motionState interface {
	Name() string
	Enter(c *Character)
	Exit(c *Character)
}

var (
	stateGroundedHuman    motionState = &groundedHumanState{}
	stateAirborneHuman    motionState = &airborneHumanState{}
	stateWallRunning      motionState = &wallRunningState{}
	stateArmouredGrounded motionState = &armouredGroundedState{}
	stateArmouredFlying   motionState = &armouredFlyingState{}
)

type groundedHumanState struct{}

type airborneHumanState struct{}

type wallRunningState struct{}

type armouredGroundedState struct{}

type armouredFlyingState struct{}

func (groundedHumanState) Name() string     { return "grounded_human" }
func (groundedHumanState) Enter(*Character) {}
func (groundedHumanState) Exit(*Character)  {}

func (airborneHumanState) Name() string     { return "airborne_human" }
func (airborneHumanState) Enter(*Character) {}
func (airborneHumanState) Exit(*Character)  {}

func (wallRunningState) Name() string { return "wall_running" }
func (wallRunningState) Enter(c *Character) {
	c.logger.Debug("wall run started", zap.Int("contacts", len(c.wallContacts)))
}
func (wallRunningState) Exit(c *Character) {
	c.logger.Debug("wall run ended")
}

func (armouredGroundedState) Name() string     { return "armoured_grounded" }
func (armouredGroundedState) Enter(*Character) {}
func (armouredGroundedState) Exit(*Character)  {}

func (armouredFlyingState) Name() string     { return "armoured_flying" }
func (armouredFlyingState) Enter(*Character) {}
func (armouredFlyingState) Exit(c *Character) {
	c.logger.Debug("flight ended", zap.Float64("flying_speed", c.flyingVelocity.Len()))
}

// MotionState names the current movement model.
func (c *Character) MotionState() string {
	if c.state == nil {
		return ""
	}
	return c.state.Name()
}

func (c *Character) deriveState() motionState {
	if c.mode == ModeArmoured {
		if c.thrusting && c.canFly {
			return stateArmouredFlying
		}
		return stateArmouredGrounded
	}
	switch {
	case c.onWall:
		return stateWallRunning
	case c.deps.Body.IsFalling():
		return stateAirborneHuman
	default:
		return stateGroundedHuman
	}
}

func (c *Character) updateState() {
	next := c.deriveState()
	if next == c.state {
		return
	}
	prev := c.state
	if prev != nil {
		prev.Exit(c)
	}
	c.state = next
	next.Enter(c)
	if prev != nil {
		c.logger.Debug("motion state changed",
			zap.String("from", prev.Name()),
			zap.String("to", next.Name()),
		)
	}
}

// Tick advances the character by dt seconds. The body is integrated
// separately; Tick only writes velocity, gravity and constraints.
func (c *Character) Tick(dt float64) {
	if dt < 0 {
		dt = 0
	}
	body := c.deps.Body

	switch {
	case c.mode == ModeArmoured && c.thrusting && c.canFly:
		c.tickFlight(dt)
	case c.mode == ModeArmoured:
		body.SetGravityScale(c.tuning.GravityScale)
		if c.touchingAnySurface() {
			c.flyingVelocity = mgl64.Vec3{}
		}
	}

	if c.mode == ModeArmoured && c.invisible {
		c.tickInvisibility(dt)
	}

	if c.mode == ModeHuman {
		c.tickHuman()
		if !body.IsFalling() {
			c.flyingVelocity = mgl64.Vec3{}
		}
	}

	c.updateState()
}

func (c *Character) tickFlight(dt float64) {
	body := c.deps.Body
	body.SetGravityScale(0)
	// stale input must not carry into the next landing
	if !c.moveKeyHeld {
		c.thrustInput = mgl64.Vec3{}
	}
	if v := body.Velocity(); v.Z() < 0 {
		body.SetVelocity(mgl64.Vec3{v.X(), v.Y(), 0})
	}
	accel := common.SafeNormal(c.thrustInput).Mul(c.tuning.ThrustAccel * dt)
	c.flyingVelocity = common.ClampMagnitude(c.flyingVelocity.Add(accel), c.tuning.MaxFlyingSpeed)
	body.SetVelocity(c.flyingVelocity)
}

func (c *Character) tickInvisibility(dt float64) {
	c.invisTimer -= dt
	if c.invisTimer > 0 && c.mode == ModeArmoured && c.armoured == ArmouredInvisibility {
		return
	}
	c.invisible = false
	if c.deps.HUD != nil {
		c.deps.HUD.ShowInvisibility(false)
	}
	if c.invisTimer <= 0 {
		c.invisTimer = 0
	}
	c.logger.Debug("invisibility ended", zap.Float64("remaining", c.invisTimer))
}

func (c *Character) tickHuman() {
	body := c.deps.Body
	horizontal := common.Flatten(body.Velocity()).Len()
	if !common.NearlyEqual(horizontal, c.momentumSpeed) {
		if horizontal < c.tuning.HumanBaseWalk {
			c.momentumSpeed = c.tuning.HumanBaseWalk
		} else {
			c.momentumSpeed = horizontal
		}
	}
	moving := c.moveKeyHeld && !common.NearlyZero(horizontal)
	if moving {
		ratio := c.tuning.momentumRatio(c.momentumSpeed)
		body.SetJumpZVelocity(common.Lerp(c.tuning.HumanBaseJump, c.tuning.HumanMaxJump, ratio))
	}

	switch {
	case moving && body.IsFalling():
		c.detectWalls()
	case c.onWall || len(c.wallContacts) > 0:
		// grounded, or airborne without steering: the wall run ends
		c.wallContacts = c.wallContacts[:0]
		c.resetPhysics()
	}
}

// touchingAnySurface overlaps the body capsule, grown by the surface
// margin, against the world.
func (c *Character) touchingAnySurface() bool {
	hits := c.deps.Queries.OverlapCapsule(
		c.deps.Body.Position(),
		c.tuning.CapsuleRadius,
		c.tuning.CapsuleHalfHeight+c.tuning.SurfaceMargin,
		c.ignoreSelf(),
	)
	return len(hits) > 0
}
