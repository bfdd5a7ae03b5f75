package character

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gravityfps/ecs"
	"go.uber.org/zap"
)

// BiopadEntry is one scanned actor as shown on the biopad.
type BiopadEntry struct {
	Entity ecs.Entity
	Name   string
	// Offset is the actor's position relative to the avatar.
	Offset mgl64.Vec3
}

// ScanObject traces from the camera and adds the first actor hit to the
// biopad selection.
func (c *Character) ScanObject() bool {
	if !c.armouredWith(ArmouredBiopad) {
		return false
	}
	start := c.CameraLocation()
	end := start.Add(c.CameraForward().Mul(c.tuning.BiopadTraceRange))
	hit, ok := c.deps.Queries.LineTrace(start, end, c.ignoreSelf())
	if !ok {
		return false
	}
	for _, e := range c.biopad {
		if e == hit.Entity {
			return false
		}
	}
	c.biopad = append(c.biopad, hit.Entity)
	c.logger.Debug("biopad scanned", zap.Stringer("entity", hit.Entity))
	return true
}

// RemoveLastSelected drops the oldest biopad selection.
func (c *Character) RemoveLastSelected() {
	if !c.armouredWith(ArmouredBiopad) || len(c.biopad) == 0 {
		return
	}
	removed := c.biopad[0]
	c.biopad = append(c.biopad[:0], c.biopad[1:]...)
	c.logger.Debug("biopad removed", zap.Stringer("entity", removed))
}

func (c *Character) ToggleBiopadDisplay() {
	if !c.armouredWith(ArmouredBiopad) {
		return
	}
	c.biopadDisplay = !c.biopadDisplay
}

func (c *Character) BiopadDisplayed() bool { return c.biopadDisplay }

// BiopadEntries describes every selected actor that still exists.
func (c *Character) BiopadEntries() []BiopadEntry {
	if c.deps.Describe == nil {
		return nil
	}
	pos := c.deps.Body.Position()
	out := make([]BiopadEntry, 0, len(c.biopad))
	for _, e := range c.biopad {
		name, at, ok := c.deps.Describe(e)
		if !ok {
			continue
		}
		out = append(out, BiopadEntry{Entity: e, Name: name, Offset: at.Sub(pos)})
	}
	return out
}

// Interact traces from the camera and opens whatever door it finds.
func (c *Character) Interact() bool {
	start := c.CameraLocation()
	end := start.Add(c.CameraForward().Mul(c.tuning.DoorDetectionRange))
	hit, ok := c.deps.Queries.LineTrace(start, end, c.ignoreSelf())
	if !ok {
		c.logger.Warn("no actor hit")
		return false
	}
	if c.deps.Doors != nil && c.deps.Doors.Interact(hit.Entity) {
		return true
	}
	c.logger.Warn("actor is not interactable", zap.Stringer("entity", hit.Entity))
	return false
}
