package character

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gravityfps/common"
	"github.com/milk9111/gravityfps/ecs"
	"go.uber.org/zap"
)

// detectWalls rebuilds the wall contact list from a capsule overlap at the
// wall detector footprint and aligns the plane constraint to the chosen
// wall. Human only.
func (c *Character) detectWalls() {
	if c.mode != ModeHuman {
		return
	}
	body := c.deps.Body
	c.wallContacts = c.wallContacts[:0]

	hits := c.deps.Queries.OverlapCapsule(
		body.Position(),
		c.tuning.WallDetectorRadius,
		c.tuning.CapsuleHalfHeight,
		c.ignoreSelf(),
	)
	for _, hit := range hits {
		if !c.wallRunnable(hit.Entity) {
			continue
		}
		if !c.holdingJump || !body.IsFalling() {
			continue
		}
		c.onWall = true
		body.SetGravityScale(c.tuning.WallGravity)
		c.wallContacts = append(c.wallContacts, WallContact{Entity: hit.Entity, Point: hit.Point, Normal: hit.Normal})
	}

	switch len(c.wallContacts) {
	case 0:
		c.resetPhysics()
		return
	case 1:
		c.wallNormal = c.wallContacts[0].Normal
	default:
		c.wallNormal = nearestContact(body.Position(), c.wallContacts).Normal
	}
	if c.onWall {
		body.SetPlaneConstraint(true, c.wallNormal)
	}
}

func (c *Character) wallRunnable(e ecs.Entity) bool {
	if c.deps.WallRunnable == nil {
		return false
	}
	return c.deps.WallRunnable(e)
}

// nearestContact returns the contact whose impact point is closest to pos.
// On an exact tie the earlier contact wins.
func nearestContact(pos mgl64.Vec3, contacts []WallContact) WallContact {
	best := contacts[0]
	bestDist := best.Point.Sub(pos).Len()
	for _, contact := range contacts[1:] {
		d := contact.Point.Sub(pos).Len()
		if d < bestDist {
			best = contact
			bestDist = d
		}
	}
	return best
}

// resetPhysics leaves the wall: normal gravity, no plane constraint.
func (c *Character) resetPhysics() {
	wasOnWall := c.onWall
	c.onWall = false
	body := c.deps.Body
	body.SetPlaneConstraint(false, c.wallNormal)
	body.SetGravityScale(c.tuning.GravityScale)
	if wasOnWall {
		c.updateState()
	}
}

// JumpPressed requests a jump from the body and marks the jump key held.
func (c *Character) JumpPressed() {
	c.deps.Body.Jump()
	c.holdingJump = true
}

// JumpReleased stops the jump, performs a wall jump when running along a
// wall, then clears the held flag.
func (c *Character) JumpReleased() {
	c.deps.Body.StopJumping()
	c.wallJump()
	c.holdingJump = false
}

func (c *Character) wallJump() {
	body := c.deps.Body
	if c.mode != ModeHuman || !c.onWall || !body.IsFalling() {
		return
	}
	// a vertical normal is a ceiling or floor, not a wall
	if !common.NearlyZero(c.wallNormal.Z()) {
		return
	}
	push := common.SafeNormal(common.Flatten(c.wallNormal)).Mul(c.tuning.HorizontalPush)
	launch := push.Add(common.Up.Mul(body.JumpZVelocity()))
	body.Launch(launch, true, true)
	c.logger.Debug("wall jump", zap.Float64s("launch", launch[:]))
	c.resetPhysics()
}
