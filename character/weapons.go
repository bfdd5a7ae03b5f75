package character

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gravityfps/common"
	"github.com/milk9111/gravityfps/ecs/component"
	"go.uber.org/zap"
)

// PrimaryPressed is the press edge of the primary fire button. Every
// ability bound to it checks its own mode and ability and ignores the
// press otherwise.
func (c *Character) PrimaryPressed() {
	c.primaryHeld = true
	c.DropCube()
	c.FireMissile()
	c.ToggleInvisibility()
	c.ScanObject()
	c.FireGun()
}

// PrimaryHeld runs once per tick while the primary button is down.
func (c *Character) PrimaryHeld() {
	c.ShootLaser()
	c.ChargeNuke()
}

func (c *Character) PrimaryReleased() {
	c.primaryHeld = false
	c.FireNuke()
}

func (c *Character) SecondaryPressed() {
	c.secondaryHeld = true
	c.SaveLocation()
	c.RemoveLastSelected()
}

func (c *Character) SecondaryReleased() {
	c.secondaryHeld = false
}

func (c *Character) armouredWith(a ArmouredAbility) bool {
	return c.mode == ModeArmoured && c.armoured == a
}

func (c *Character) humanWith(a HumanAbility) bool {
	return c.mode == ModeHuman && c.human == a
}

func (c *Character) cubeSelected() bool {
	return c.armouredWith(ArmouredEmergencyCube) || c.humanWith(HumanEmergencyCube)
}

func (c *Character) now() float64 {
	if c.deps.Clock == nil {
		return 0
	}
	return c.deps.Clock.Time()
}

// spawnAt requests a projectile at loc with the camera rotation and hands
// it the shooter's velocity.
func (c *Character) spawnAt(kind component.ProjectileKind, loc, launch mgl64.Vec3) bool {
	if c.deps.Spawner == nil {
		return false
	}
	req := SpawnRequest{
		Kind:        kind,
		Location:    loc,
		Rotation:    c.CameraRotation(),
		Velocity:    launch,
		Destination: c.savedLocation,
	}
	p, ok := c.deps.Spawner.Spawn(req)
	if !ok || p == nil {
		return false
	}
	p.AddVelocity(c.deps.Body.Velocity())
	return true
}

func (c *Character) spawnForward(kind component.ProjectileKind, launch mgl64.Vec3) bool {
	loc := c.deps.Body.Position().Add(c.CameraForward().Mul(c.tuning.SpawnOffset))
	return c.spawnAt(kind, loc, launch)
}

// ShootLaser fires one laser bolt, at most once per laser spawn delay.
func (c *Character) ShootLaser() bool {
	if !c.armouredWith(ArmouredLaser) {
		return false
	}
	now := c.now()
	if now-c.lastShot <= c.tuning.LaserSpawnDelay {
		return false
	}
	c.lastShot = now
	return c.spawnForward(component.ProjectileLaser, mgl64.Vec3{})
}

func (c *Character) FireMissile() bool {
	if !c.armouredWith(ArmouredMissile) {
		return false
	}
	return c.spawnForward(component.ProjectileMissile, mgl64.Vec3{})
}

// ChargeNuke accumulates tank rifle charge by one step.
func (c *Character) ChargeNuke() {
	if !c.armouredWith(ArmouredTankRifle) {
		return
	}
	c.nukeCharge += c.tuning.NukeChargeRate
	if c.deps.HUD != nil && c.tuning.NukeMaxCharge > 0 {
		c.deps.HUD.SetChargePercent(common.Clamp(c.nukeCharge/c.tuning.NukeMaxCharge, 0, 1))
	}
}

// FireNuke launches the tank rifle round with speed equal to the clamped
// charge and empties the charge.
func (c *Character) FireNuke() bool {
	if !c.armouredWith(ArmouredTankRifle) {
		return false
	}
	speed := common.Clamp(c.nukeCharge, 0, c.tuning.NukeMaxCharge)
	c.nukeCharge = 0
	if c.deps.HUD != nil {
		c.deps.HUD.SetChargePercent(0)
	}
	c.logger.Debug("nuke fired", zap.Float64("speed", speed))
	return c.spawnForward(component.ProjectileNuke, c.CameraForward().Mul(speed))
}

// DropCube releases an emergency cube. A human throws the cube in hand and
// takes a fresh one; otherwise a new cube is dropped in front.
func (c *Character) DropCube() bool {
	if !c.cubeSelected() {
		return false
	}
	body := c.deps.Body
	if c.mode == ModeHuman && c.heldCube != nil {
		loc := body.Position().Add(c.CameraForward().Mul(c.tuning.SpawnOffset))
		velocity := c.CameraForward().Mul(c.tuning.CubeThrowSpeed).Add(body.Velocity())
		c.heldCube.Throw(loc, c.CameraRotation(), velocity)
		c.heldCube = nil
		c.holdCube()
		return true
	}
	return c.spawnForward(component.ProjectileCube, mgl64.Vec3{})
}

// SaveLocation stores the teleport destination used by emergency cubes.
func (c *Character) SaveLocation() {
	if !c.cubeSelected() {
		return
	}
	c.savedLocation = c.deps.Body.Position()
	c.logger.Debug("location saved", zap.Float64s("at", c.savedLocation[:]))
}

func (c *Character) ToggleInvisibility() {
	if !c.armouredWith(ArmouredInvisibility) {
		return
	}
	c.invisible = !c.invisible
	if c.invisible {
		c.invisTimer = c.tuning.InvisibilityDuration
	}
	if c.deps.HUD != nil {
		c.deps.HUD.ShowInvisibility(c.invisible)
	}
}

// FireGun shoots a bullet from the human gun's muzzle.
func (c *Character) FireGun() bool {
	if !c.humanWith(HumanGun) {
		return false
	}
	loc := c.CameraLocation().Add(c.CameraRotation().Rotate(c.tuning.GunMuzzleOffset))
	return c.spawnAt(component.ProjectileBullet, loc, mgl64.Vec3{})
}
