package system

import (
	"math"
	"sort"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/milk9111/gravityfps/ecs"
	"github.com/milk9111/gravityfps/ecs/component"
	"github.com/milk9111/gravityfps/prefabs"
	"go.uber.org/zap"
)

// InteractableSystem runs the tengo scripts behind doors and pressure
// plates. Plates are checked every tick for movable actors stepping on or
// off; doors run when the player interacts with them.
//
// Scripts see an engine map with:
//
//	engine.self()          name of the scripted actor
//	engine.target()        the plate's target name ("" for doors)
//	engine.open(name)      open the named door
//	engine.close(name)     close the named door
//	engine.is_open(name)   report whether the named door is open
//	engine.log(msg)        log at info
type InteractableSystem struct {
	loadScript func(name string) ([]byte, error)
	runtimes   map[ecs.Entity]*scriptRuntime
	logger     *zap.Logger
}

func NewInteractableSystem(logger *zap.Logger) *InteractableSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InteractableSystem{
		loadScript: prefabs.LoadScript,
		runtimes:   map[ecs.Entity]*scriptRuntime{},
		logger:     logger,
	}
}

// SetScriptLoader replaces where scripts are read from.
func (s *InteractableSystem) SetScriptLoader(load func(name string) ([]byte, error)) {
	if load != nil {
		s.loadScript = load
	}
}

// Invalidate drops every compiled script so the next run recompiles from
// the current source.
func (s *InteractableSystem) Invalidate() {
	s.runtimes = map[ecs.Entity]*scriptRuntime{}
}

func (s *InteractableSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}
	ecs.ForEach2(w, component.PressurePlateComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, plate *component.PressurePlate, t *component.Transform) {
		collider, ok := pw.Collider(e)
		if !ok {
			return
		}
		footprint := collider.Radius
		if footprint <= 0 {
			footprint = math.Min(collider.HalfX, collider.HalfY)
		}

		now := map[uint64]bool{}
		for _, hit := range pw.OverlapCapsule(t.Position, footprint, collider.HalfHeight, []ecs.Entity{e}) {
			if ecs.Has(w, hit.Entity, component.CharacterBodyComponent.Kind()) || ecs.Has(w, hit.Entity, component.PropComponent.Kind()) {
				now[uint64(hit.Entity)] = true
			}
		}
		if plate.Overlapping == nil {
			plate.Overlapping = map[uint64]bool{}
		}

		for _, id := range sortedIDs(now) {
			if plate.Overlapping[id] {
				continue
			}
			plate.Overlapping[id] = true
			w.Events().Push(ecs.Event{Type: ecs.EventOverlapBegin, Data: ecs.OverlapEvent{Trigger: e, Other: ecs.Entity(id)}})
			s.runPlate(w, e, plate, "on_begin", ecs.Entity(id))
		}
		for _, id := range sortedIDs(plate.Overlapping) {
			if now[id] {
				continue
			}
			delete(plate.Overlapping, id)
			w.Events().Push(ecs.Event{Type: ecs.EventOverlapEnd, Data: ecs.OverlapEvent{Trigger: e, Other: ecs.Entity(id)}})
			s.runPlate(w, e, plate, "on_end", ecs.Entity(id))
		}
		plate.Pressed = len(plate.Overlapping) > 0
	})
}

// Interact runs e's door script. It reports false when e is not a door.
func (s *InteractableSystem) Interact(w *ecs.World, e ecs.Entity) bool {
	door, ok := ecs.Get(w, e, component.DoorComponent.Kind())
	if !ok {
		return false
	}
	if strings.TrimSpace(door.Script) == "" {
		SetDoorOpen(w, e, !door.Open)
		return true
	}

	rt, err := s.runtime(e, door.Script, doorDispatchScript)
	if err != nil {
		s.logger.Error("load door script", zap.Stringer("entity", e), zap.Error(err))
		return true
	}
	if err := rt.run("interact", "", s.engine(w, e, "")); err != nil {
		s.logger.Error("door script", zap.Stringer("entity", e), zap.Error(err))
	}
	return true
}

func (s *InteractableSystem) runPlate(w *ecs.World, e ecs.Entity, plate *component.PressurePlate, phase string, other ecs.Entity) {
	if strings.TrimSpace(plate.Script) == "" {
		return
	}
	rt, err := s.runtime(e, plate.Script, plateDispatchScript)
	if err != nil {
		s.logger.Error("load plate script", zap.Stringer("entity", e), zap.Error(err))
		return
	}
	if err := rt.run(phase, actorName(w, other), s.engine(w, e, plate.Target)); err != nil {
		s.logger.Error("plate script", zap.Stringer("entity", e), zap.String("phase", phase), zap.Error(err))
	}
}

func (s *InteractableSystem) runtime(e ecs.Entity, path, dispatch string) (*scriptRuntime, error) {
	if rt, ok := s.runtimes[e]; ok && rt != nil && rt.path == path {
		return rt, nil
	}
	src, err := s.loadScript(path)
	if err != nil {
		return nil, err
	}
	rt, err := compileScript(path, src, dispatch)
	if err != nil {
		return nil, err
	}
	s.runtimes[e] = rt
	return rt, nil
}

func (s *InteractableSystem) engine(w *ecs.World, self ecs.Entity, target string) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}
	selfName := actorName(w, self)

	values["self"] = &tengo.UserFunction{Name: "self", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.String{Value: selfName}, nil
	}}

	values["target"] = &tengo.UserFunction{Name: "target", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.String{Value: target}, nil
	}}

	setDoor := func(open bool) func(args ...tengo.Object) (tengo.Object, error) {
		return func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) < 1 {
				return tengo.FalseValue, nil
			}
			e, ok := FindByName(w, strings.TrimSpace(objectAsString(args[0])))
			if !ok {
				return tengo.FalseValue, nil
			}
			return boolObject(SetDoorOpen(w, e, open)), nil
		}
	}
	values["open"] = &tengo.UserFunction{Name: "open", Value: setDoor(true)}
	values["close"] = &tengo.UserFunction{Name: "close", Value: setDoor(false)}

	values["is_open"] = &tengo.UserFunction{Name: "is_open", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		e, ok := FindByName(w, strings.TrimSpace(objectAsString(args[0])))
		if !ok {
			return tengo.FalseValue, nil
		}
		door, ok := ecs.Get(w, e, component.DoorComponent.Kind())
		return boolObject(ok && door.Open), nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		s.logger.Info(strings.Join(parts, " "), zap.String("actor", selfName))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

// SetDoorOpen opens or closes a door. An open door is removed from the
// physics world; closing it puts its collider back. It reports whether e is
// a door.
func SetDoorOpen(w *ecs.World, e ecs.Entity, open bool) bool {
	door, ok := ecs.Get(w, e, component.DoorComponent.Kind())
	if !ok {
		return false
	}
	door.Open = open

	pw := w.PhysicsWorld()
	if open {
		pw.Remove(e)
		return true
	}
	t, hasTransform := ecs.Get(w, e, component.TransformComponent.Kind())
	collider, hasCollider := ecs.Get(w, e, component.ColliderComponent.Kind())
	if hasTransform && hasCollider && !pw.Has(e) {
		_ = pw.Attach(e, t.Position, t.Rotation.Yaw, *collider)
	}
	return true
}

// FindByName returns the first entity whose Name matches.
func FindByName(w *ecs.World, name string) (ecs.Entity, bool) {
	if name == "" {
		return 0, false
	}
	var found ecs.Entity
	ecs.ForEach(w, component.NameComponent.Kind(), func(e ecs.Entity, n *component.Name) {
		if found == 0 && n.Value == name {
			found = e
		}
	})
	return found, found != 0
}

func actorName(w *ecs.World, e ecs.Entity) string {
	if n, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok && n.Value != "" {
		return n.Value
	}
	return e.String()
}

func sortedIDs(set map[uint64]bool) []uint64 {
	ids := make([]uint64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// DoorInteractor binds an InteractableSystem to a world. It satisfies
// character.Interactor.
type DoorInteractor struct {
	world  *ecs.World
	system *InteractableSystem
}

func NewDoorInteractor(w *ecs.World, s *InteractableSystem) *DoorInteractor {
	return &DoorInteractor{world: w, system: s}
}

func (d *DoorInteractor) Interact(e ecs.Entity) bool {
	if d == nil || d.system == nil {
		return false
	}
	return d.system.Interact(d.world, e)
}
