package character

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gravityfps/common"
	"github.com/milk9111/gravityfps/ecs"
	"github.com/milk9111/gravityfps/ecs/component"
	"go.uber.org/zap"
)

var (
	ErrNoBody    = errors.New("character: body is nil")
	ErrNoQueries = errors.New("character: spatial queries are nil")
)

// WallContact is one wall-runnable surface touched during a tick.
type WallContact struct {
	Entity ecs.Entity
	Point  mgl64.Vec3
	Normal mgl64.Vec3
}

// Character is the dual-mode avatar. All methods run on the simulation
// goroutine, between or during ticks, never concurrently.
type Character struct {
	tuning Tuning
	deps   Collaborators
	logger *zap.Logger

	mode     Mode
	armoured ArmouredAbility
	human    HumanAbility

	thrusting             bool
	thrustInput           mgl64.Vec3
	flyingVelocity        mgl64.Vec3
	rotationAtThrusterEnd common.Rotator
	moveKeyHeld           bool
	canFly                bool

	momentumSpeed float64

	onWall       bool
	wallNormal   mgl64.Vec3
	wallContacts []WallContact
	holdingJump  bool

	invisTimer float64
	invisible  bool

	nukeCharge    float64
	savedLocation mgl64.Vec3
	lastShot      float64

	primaryHeld   bool
	secondaryHeld bool

	gunVisible bool
	heldCube   HeldObject

	biopad        []ecs.Entity
	biopadDisplay bool

	state        motionState
	widgetTimers []ecs.TimerID
}

// New creates a Human-mode character at the body's current position.
func New(tuning Tuning, deps Collaborators) (*Character, error) {
	if deps.Body == nil {
		return nil, ErrNoBody
	}
	if deps.Queries == nil {
		return nil, ErrNoQueries
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Character{
		tuning:        tuning,
		deps:          deps,
		logger:        logger,
		mode:          ModeHuman,
		armoured:      ArmouredLaser,
		human:         HumanHands,
		canFly:        true,
		momentumSpeed: tuning.HumanBaseWalk,
		invisTimer:    tuning.InvisibilityDuration,
		savedLocation: deps.Body.Position(),
		lastShot:      math.Inf(-1),
		wallContacts:  make([]WallContact, 0, 4),
	}
	c.deps.Logger = logger
	body := deps.Body
	body.SetGravityScale(tuning.GravityScale)
	body.SetMaxWalkSpeed(tuning.HumanBaseWalk)
	body.SetJumpZVelocity(tuning.HumanBaseJump)
	body.SetPlaneConstraint(false, mgl64.Vec3{})
	c.rotationAtThrusterEnd = body.ControlRotation()
	c.state = c.deriveState()
	return c, nil
}

// SetTuning swaps the gameplay constants. Base speeds are reapplied for the
// current mode; in-flight state is kept.
func (c *Character) SetTuning(t Tuning) {
	c.tuning = t
	c.applyModeBase()
	c.logger.Info("tuning applied", zap.String("mode", c.mode.String()))
}

func (c *Character) Tuning() Tuning { return c.tuning }

func (c *Character) Mode() Mode                       { return c.mode }
func (c *Character) ArmouredAbility() ArmouredAbility { return c.armoured }
func (c *Character) HumanAbility() HumanAbility       { return c.human }
func (c *Character) IsThrusting() bool                { return c.thrusting }
func (c *Character) FlyingVelocity() mgl64.Vec3       { return c.flyingVelocity }
func (c *Character) MomentumSpeed() float64           { return c.momentumSpeed }
func (c *Character) OnWall() bool                     { return c.onWall }
func (c *Character) WallNormal() mgl64.Vec3           { return c.wallNormal }
func (c *Character) IsInvisible() bool                { return c.invisible }
func (c *Character) InvisibilityTimer() float64       { return c.invisTimer }
func (c *Character) NukeCharge() float64              { return c.nukeCharge }
func (c *Character) SavedLocation() mgl64.Vec3        { return c.savedLocation }
func (c *Character) CanFly() bool                     { return c.canFly }
func (c *Character) HoldingJump() bool                { return c.holdingJump }
func (c *Character) GunVisible() bool                 { return c.gunVisible }
func (c *Character) HoldingCube() bool                { return c.heldCube != nil }
func (c *Character) Body() Body                       { return c.deps.Body }
func (c *Character) Self() ecs.Entity                 { return c.deps.Self }

// WallContacts returns the contacts recorded by the last wall detection.
func (c *Character) WallContacts() []WallContact {
	out := make([]WallContact, len(c.wallContacts))
	copy(out, c.wallContacts)
	return out
}

// SetFlightAbility is driven by the fuel meter.
func (c *Character) SetFlightAbility(canFly bool) {
	c.canFly = canFly
}

// SetMouseButtons records which mouse buttons are down; cycling is blocked
// while either is held.
func (c *Character) SetMouseButtons(primary, secondary bool) {
	c.primaryHeld = primary
	c.secondaryHeld = secondary
}

// AbilityLabel is the HUD name of the active ability.
func (c *Character) AbilityLabel() string {
	if c.mode == ModeArmoured {
		return c.armoured.String()
	}
	return c.human.String()
}

// CameraLocation is the eye position.
func (c *Character) CameraLocation() mgl64.Vec3 {
	return c.deps.Body.Position().Add(mgl64.Vec3{0, 0, c.tuning.EyeHeight})
}

func (c *Character) CameraRotation() common.Rotator {
	return c.deps.Body.ControlRotation()
}

func (c *Character) CameraForward() mgl64.Vec3 {
	return c.CameraRotation().Forward()
}

// ViewPoint is the camera location pushed forward by the view offset, the
// origin of targeting queries.
func (c *Character) ViewPoint() mgl64.Vec3 {
	return c.CameraLocation().Add(c.CameraForward().Mul(c.tuning.ViewOffset))
}

func (c *Character) ignoreSelf() []ecs.Entity {
	if !c.deps.Self.Valid() {
		return nil
	}
	return []ecs.Entity{c.deps.Self}
}

func (c *Character) applyModeBase() {
	body := c.deps.Body
	if c.mode == ModeArmoured {
		body.SetMaxWalkSpeed(c.tuning.ArmourBaseWalk)
		body.SetJumpZVelocity(c.tuning.ArmourBaseJump)
		return
	}
	body.SetMaxWalkSpeed(c.tuning.HumanBaseWalk)
	body.SetJumpZVelocity(c.tuning.HumanBaseJump)
}

// SwapArmour toggles between Armoured and Human. It is a hard reset of
// wall-run and flight state; ability indices are kept per mode.
func (c *Character) SwapArmour() {
	if c.mode == ModeArmoured {
		c.mode = ModeHuman
	} else {
		c.mode = ModeArmoured
	}
	c.applyModeBase()
	c.emitEquipment()

	c.resetPhysics()
	c.hideSockets()
	if c.mode == ModeHuman {
		c.showSelected()
	}

	if c.thrusting {
		c.EndThrusters()
	}
	if c.mode == ModeHuman {
		c.momentumSpeed = c.tuning.HumanBaseWalk
		if c.invisible {
			c.invisible = false
			if c.deps.HUD != nil {
				c.deps.HUD.ShowInvisibility(false)
			}
		}
	}
	c.armWidgetTimers(c.mode == ModeArmoured)
	c.logger.Debug("armour swapped",
		zap.String("mode", c.mode.String()),
		zap.String("ability", c.AbilityLabel()),
	)
}

// armWidgetTimers schedules the delayed radar and fuel widget toggles.
// Timers armed by an earlier swap are cancelled first.
func (c *Character) armWidgetTimers(visible bool) {
	if c.deps.Timers == nil {
		return
	}
	for _, id := range c.widgetTimers {
		c.deps.Timers.Cancel(id)
	}
	c.widgetTimers = c.widgetTimers[:0]
	hud := c.deps.HUD
	if hud == nil {
		return
	}
	c.widgetTimers = append(c.widgetTimers,
		c.deps.Timers.After(c.tuning.WidgetDelay, func() { hud.SetRadarVisible(visible) }),
		c.deps.Timers.After(c.tuning.WidgetDelay, func() { hud.SetFuelVisible(visible) }),
	)
}

// Cycle moves the active mode's ability index one step with wrap-around.
// It does nothing while a mouse button is held or when scroll is zero.
func (c *Character) Cycle(scroll float64) {
	if c.primaryHeld || c.secondaryHeld || common.NearlyZero(scroll) {
		return
	}
	dir := Forward
	if scroll < 0 {
		dir = Backward
	}
	c.hideSockets()
	if c.mode == ModeArmoured {
		c.armoured = ArmouredAbility(wrapIndex(int(c.armoured), int(armouredAbilityCount), dir))
	} else {
		c.human = HumanAbility(wrapIndex(int(c.human), int(humanAbilityCount), dir))
		c.showSelected()
	}
	c.emitEquipment()
}

func (c *Character) emitEquipment() {
	if c.deps.HUD != nil {
		c.deps.HUD.EquipmentChanged(c.AbilityLabel())
	}
}

// hideSockets hides the gun and destroys any cube in hand.
func (c *Character) hideSockets() {
	if c.gunVisible && c.deps.Sockets != nil {
		c.deps.Sockets.SetGunVisible(false)
	}
	c.gunVisible = false
	if c.heldCube != nil {
		c.heldCube.Destroy()
		c.heldCube = nil
	}
}

// showSelected mounts the socket object of the active human ability.
func (c *Character) showSelected() {
	switch c.human {
	case HumanGun:
		c.gunVisible = true
		if c.deps.Sockets != nil {
			c.deps.Sockets.SetGunVisible(true)
		}
	case HumanEmergencyCube:
		c.holdCube()
	}
}

func (c *Character) holdCube() {
	if c.heldCube != nil || c.deps.Spawner == nil {
		return
	}
	held, ok := c.deps.Spawner.Hold(component.ProjectileCube, c.savedLocation)
	if !ok {
		return
	}
	c.heldCube = held
}
