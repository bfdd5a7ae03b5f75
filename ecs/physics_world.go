package ecs

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gravityfps/common"
	"github.com/milk9111/gravityfps/ecs/component"
)

// StepHeight is how far above its base a body may stand on a surface.
const StepHeight = 45.0

// TraceHit is one actor reported by a spatial query.
type TraceHit struct {
	Entity   Entity
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
}

type physicsActor struct {
	entity   Entity
	body     *cp.Body
	shape    *cp.Shape
	collider component.Collider
	pos      mgl64.Vec3
}

func (a *physicsActor) minZ() float64 { return a.pos.Z() - a.collider.HalfHeight }
func (a *physicsActor) maxZ() float64 { return a.pos.Z() + a.collider.HalfHeight }

// PhysicsWorld indexes every collidable actor as a vertical prism: a
// Chipmunk shape in the XY plane plus a Z extent. Queries run against the
// Chipmunk spatial index and are then filtered by height.
type PhysicsWorld struct {
	space         *cp.Space
	actors        map[Entity]*physicsActor
	shapeToEntity map[*cp.Shape]Entity
}

// NewPhysicsWorld creates an empty physics world.
func NewPhysicsWorld() *PhysicsWorld {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	return &PhysicsWorld{
		space:         space,
		actors:        make(map[Entity]*physicsActor),
		shapeToEntity: make(map[*cp.Shape]Entity),
	}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// Attach registers e with the given collider centred at pos.
func (pw *PhysicsWorld) Attach(e Entity, pos mgl64.Vec3, yaw float64, c component.Collider) error {
	if pw == nil || pw.space == nil {
		return fmt.Errorf("physics: attach %s: world is nil", e)
	}
	if !c.Valid() {
		return fmt.Errorf("physics: attach %s: collider has no extent", e)
	}
	pw.Remove(e)

	var body *cp.Body
	if c.Static {
		body = cp.NewStaticBody()
	} else {
		body = cp.NewKinematicBody()
	}
	body.SetPosition(cp.Vector{X: pos.X(), Y: pos.Y()})
	body.SetAngle(mgl64.DegToRad(yaw))

	var shape *cp.Shape
	if c.Radius > 0 {
		shape = cp.NewCircle(body, c.Radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, c.HalfX*2, c.HalfY*2, 0)
	}
	shape.SetSensor(c.Sensor)
	shape.UserData = e

	pw.space.AddBody(body)
	pw.space.AddShape(shape)

	pw.actors[e] = &physicsActor{entity: e, body: body, shape: shape, collider: c, pos: pos}
	pw.shapeToEntity[shape] = e
	return nil
}

// Sync moves e's prism to pos.
func (pw *PhysicsWorld) Sync(e Entity, pos mgl64.Vec3) {
	if pw == nil {
		return
	}
	actor, ok := pw.actors[e]
	if !ok {
		return
	}
	actor.pos = pos
	next := cp.Vector{X: pos.X(), Y: pos.Y()}
	if actor.body.Position().Equal(next) {
		return
	}
	// the space is never stepped, so reinsert to refresh the index
	pw.space.RemoveShape(actor.shape)
	actor.body.SetPosition(next)
	pw.space.AddShape(actor.shape)
}

// Remove detaches e. It reports whether e was attached.
func (pw *PhysicsWorld) Remove(e Entity) bool {
	if pw == nil {
		return false
	}
	actor, ok := pw.actors[e]
	if !ok {
		return false
	}
	pw.space.RemoveShape(actor.shape)
	pw.space.RemoveBody(actor.body)
	delete(pw.shapeToEntity, actor.shape)
	delete(pw.actors, e)
	return true
}

func (pw *PhysicsWorld) Has(e Entity) bool {
	if pw == nil {
		return false
	}
	_, ok := pw.actors[e]
	return ok
}

// Collider returns the collider e was attached with.
func (pw *PhysicsWorld) Collider(e Entity) (component.Collider, bool) {
	if pw == nil {
		return component.Collider{}, false
	}
	actor, ok := pw.actors[e]
	if !ok {
		return component.Collider{}, false
	}
	return actor.collider, true
}

func (pw *PhysicsWorld) actorFor(shape *cp.Shape, ignore []Entity) *physicsActor {
	e, ok := pw.shapeToEntity[shape]
	if !ok {
		return nil
	}
	for _, ig := range ignore {
		if ig == e {
			return nil
		}
	}
	return pw.actors[e]
}

// SweepSphere sweeps a sphere from start to end and returns every blocking
// actor it touches, nearest first.
func (pw *PhysicsWorld) SweepSphere(start, end mgl64.Vec3, radius float64, ignore []Entity) []TraceHit {
	if pw == nil {
		return nil
	}
	a := cp.Vector{X: start.X(), Y: start.Y()}
	b := cp.Vector{X: end.X(), Y: end.Y()}
	if a.Near(b, common.Epsilon) {
		return pw.overlapColumn(start, end, radius, ignore, false)
	}

	length := end.Sub(start).Len()
	// cp narrows segment queries by the bare segment, so gather candidates
	// from the swept bounds and test each shape with the radius.
	bounds := cp.BB{
		L: math.Min(a.X, b.X) - radius,
		B: math.Min(a.Y, b.Y) - radius,
		R: math.Max(a.X, b.X) + radius,
		T: math.Max(a.Y, b.Y) + radius,
	}
	var hits []TraceHit
	pw.space.BBQuery(bounds, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		actor := pw.actorFor(shape, ignore)
		if actor == nil || actor.collider.Sensor {
			return
		}
		var info cp.SegmentQueryInfo
		if !shape.SegmentQuery(a, b, radius, &info) {
			return
		}
		z := start.Z() + (end.Z()-start.Z())*info.Alpha
		if z < actor.minZ()-radius || z > actor.maxZ()+radius {
			return
		}
		hits = append(hits, TraceHit{
			Entity:   actor.entity,
			Point:    mgl64.Vec3{info.Point.X, info.Point.Y, common.Clamp(z, actor.minZ(), actor.maxZ())},
			Normal:   mgl64.Vec3{info.Normal.X, info.Normal.Y, 0},
			Distance: info.Alpha * length,
		})
	}, nil)
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

// LineTrace returns the first blocking actor between start and end.
func (pw *PhysicsWorld) LineTrace(start, end mgl64.Vec3, ignore []Entity) (TraceHit, bool) {
	hits := pw.SweepSphere(start, end, 0, ignore)
	if len(hits) == 0 {
		return TraceHit{}, false
	}
	return hits[0], true
}

// OverlapCapsule returns every actor, triggers included, overlapping an
// upright capsule. Normals point from the actor toward the capsule; contacts
// where the vertical overlap is shallower report a vertical normal.
func (pw *PhysicsWorld) OverlapCapsule(center mgl64.Vec3, radius, halfHeight float64, ignore []Entity) []TraceHit {
	if pw == nil || radius <= 0 {
		return nil
	}
	capMin := center.Z() - halfHeight
	capMax := center.Z() + halfHeight

	var hits []TraceHit
	pw.queryCircle(center, radius, func(shape *cp.Shape, points *cp.ContactPointSet) {
		actor := pw.actorFor(shape, ignore)
		if actor == nil || points.Count == 0 {
			return
		}
		if capMax < actor.minZ() || capMin > actor.maxZ() {
			return
		}
		contact := points.Points[0]
		horizontal := -contact.Distance
		normal := mgl64.Vec3{-points.Normal.X, -points.Normal.Y, 0}
		point := mgl64.Vec3{contact.PointB.X, contact.PointB.Y, common.Clamp(center.Z(), actor.minZ(), actor.maxZ())}

		up := actor.maxZ() - capMin
		down := capMax - actor.minZ()
		switch {
		case up < horizontal && up <= down:
			normal = common.Up
			point = mgl64.Vec3{center.X(), center.Y(), actor.maxZ()}
		case down < horizontal:
			normal = common.Up.Mul(-1)
			point = mgl64.Vec3{center.X(), center.Y(), actor.minZ()}
		}
		hits = append(hits, TraceHit{
			Entity:   actor.entity,
			Point:    point,
			Normal:   normal,
			Distance: common.Flatten(point.Sub(center)).Len(),
		})
	})
	return hits
}

// FloorHeight returns the highest surface under a footprint of the given
// radius whose top is no more than StepHeight above pos.
func (pw *PhysicsWorld) FloorHeight(pos mgl64.Vec3, radius float64, ignore []Entity) (float64, bool) {
	if pw == nil {
		return 0, false
	}
	best := math.Inf(-1)
	found := false
	pw.queryCircle(pos, radius, func(shape *cp.Shape, _ *cp.ContactPointSet) {
		actor := pw.actorFor(shape, ignore)
		if actor == nil || actor.collider.Sensor {
			return
		}
		top := actor.maxZ()
		if top > pos.Z()+StepHeight || top <= best {
			return
		}
		best = top
		found = true
	})
	return best, found
}

func (pw *PhysicsWorld) overlapColumn(start, end mgl64.Vec3, radius float64, ignore []Entity, sensors bool) []TraceHit {
	lo := math.Min(start.Z(), end.Z()) - radius
	hi := math.Max(start.Z(), end.Z()) + radius
	probe := math.Max(radius, common.Epsilon)

	var hits []TraceHit
	pw.queryCircle(start, probe, func(shape *cp.Shape, _ *cp.ContactPointSet) {
		actor := pw.actorFor(shape, ignore)
		if actor == nil || (actor.collider.Sensor && !sensors) {
			return
		}
		if hi < actor.minZ() || lo > actor.maxZ() {
			return
		}
		z := actor.maxZ()
		normal := common.Up
		if end.Z() > start.Z() {
			z = actor.minZ()
			normal = common.Up.Mul(-1)
		}
		z = common.Clamp(z, math.Min(start.Z(), end.Z()), math.Max(start.Z(), end.Z()))
		hits = append(hits, TraceHit{
			Entity:   actor.entity,
			Point:    mgl64.Vec3{start.X(), start.Y(), z},
			Normal:   normal,
			Distance: math.Abs(z - start.Z()),
		})
	})
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

func (pw *PhysicsWorld) queryCircle(center mgl64.Vec3, radius float64, fn func(*cp.Shape, *cp.ContactPointSet)) {
	body := cp.NewKinematicBody()
	body.SetPosition(cp.Vector{X: center.X(), Y: center.Y()})
	probe := cp.NewCircle(body, radius, cp.Vector{})
	pw.space.ShapeQuery(probe, fn)
}
