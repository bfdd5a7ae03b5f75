// Package sensor answers "what can I see from here" for homing missiles and
// the radar: cone and sphere queries over the physics world, the closest
// actor selector, and the session's missile registry.
package sensor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gravityfps/common"
	"github.com/milk9111/gravityfps/ecs"
	"github.com/milk9111/gravityfps/ecs/component"
)

// Space is the query surface the sensor needs. *ecs.PhysicsWorld
// implements it.
type Space interface {
	SweepSphere(start, end mgl64.Vec3, radius float64, ignore []ecs.Entity) []ecs.TraceHit
	LineTrace(start, end mgl64.Vec3, ignore []ecs.Entity) (ecs.TraceHit, bool)
}

// Locator reports an actor's position and whether it is static scenery.
type Locator func(e ecs.Entity) (pos mgl64.Vec3, static bool, ok bool)

// View is where a query looks from.
type View struct {
	Origin  mgl64.Vec3
	Forward mgl64.Vec3
}

// Candidate is one actor returned by a query.
type Candidate struct {
	Entity   ecs.Entity
	Position mgl64.Vec3
	Visible  bool
	Static   bool
}

// Sensor runs targeting queries. It keeps no state between calls.
type Sensor struct {
	space  Space
	locate Locator
}

func New(space Space, locate Locator) *Sensor {
	return &Sensor{space: space, locate: locate}
}

// WorldLocator locates actors by their Transform.
func WorldLocator(w *ecs.World) Locator {
	return func(e ecs.Entity) (mgl64.Vec3, bool, bool) {
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return mgl64.Vec3{}, false, false
		}
		return transform.Position, ecs.Has(w, e, component.StaticMeshTagComponent.Kind()), true
	}
}

// IsTargetable reports whether missiles and the radar care about e: it
// carries the HomingTarget tag or the Targetable capability.
func IsTargetable(w *ecs.World, e ecs.Entity) bool {
	return ecs.Has(w, e, component.HomingTargetTagComponent.Kind()) ||
		ecs.Has(w, e, component.TargetableComponent.Kind())
}

// Sphere sweeps a sphere of radius from the view origin along its forward
// direction by traceDistance and returns every actor touched. Visible is
// set from a line of sight check back to the origin.
func (s *Sensor) Sphere(view View, radius, traceDistance float64, ignore []ecs.Entity) []Candidate {
	if s == nil || s.space == nil {
		return nil
	}
	forward := common.SafeNormal(view.Forward)
	end := view.Origin.Add(forward.Mul(traceDistance))
	hits := s.space.SweepSphere(view.Origin, end, radius, ignore)

	out := make([]Candidate, 0, len(hits))
	seen := make(map[ecs.Entity]struct{}, len(hits))
	for _, hit := range hits {
		if _, dup := seen[hit.Entity]; dup {
			continue
		}
		seen[hit.Entity] = struct{}{}
		candidate, ok := s.candidate(hit)
		if !ok {
			continue
		}
		candidate.Visible = s.lineOfSight(view.Origin, candidate, ignore)
		out = append(out, candidate)
	}
	return out
}

// Cone returns the actors touched by the sphere sweep that lie within
// halfAngle degrees of the view's forward direction and are not hidden
// behind another actor.
func (s *Sensor) Cone(view View, radius, traceDistance, halfAngle float64, ignore []ecs.Entity) []Candidate {
	forward := common.SafeNormal(view.Forward)
	if common.IsZero(forward) {
		return nil
	}
	minDot := math.Cos(mgl64.DegToRad(halfAngle))

	swept := s.Sphere(View{Origin: view.Origin, Forward: forward}, radius, traceDistance, ignore)
	out := swept[:0]
	for _, candidate := range swept {
		dir := common.SafeNormal(candidate.Position.Sub(view.Origin))
		if dir.Dot(forward) < minDot {
			continue
		}
		if !candidate.Visible {
			continue
		}
		out = append(out, candidate)
	}
	return out
}

// Filter keeps the candidates keep accepts, preserving order.
func Filter(candidates []Candidate, keep func(Candidate) bool) []Candidate {
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

func (s *Sensor) candidate(hit ecs.TraceHit) (Candidate, bool) {
	if s.locate == nil {
		return Candidate{Entity: hit.Entity, Position: hit.Point}, true
	}
	pos, static, ok := s.locate(hit.Entity)
	if !ok {
		return Candidate{}, false
	}
	return Candidate{Entity: hit.Entity, Position: pos, Static: static}, true
}

// lineOfSight traces from origin to the candidate. Hitting the candidate
// itself, or nothing, counts as visible.
func (s *Sensor) lineOfSight(origin mgl64.Vec3, c Candidate, ignore []ecs.Entity) bool {
	hit, blocked := s.space.LineTrace(origin, c.Position, ignore)
	return !blocked || hit.Entity == c.Entity
}
