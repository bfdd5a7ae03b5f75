package system

import (
	"github.com/milk9111/gravityfps/common"
	"github.com/milk9111/gravityfps/ecs"
	"github.com/milk9111/gravityfps/ecs/component"
	"go.uber.org/zap"
)

const pickupSpinRate = 90.0

// PickupCollectSystem consumes pickups the player's capsule overlaps. Fuel
// pickups refill the player's tank.
type PickupCollectSystem struct {
	fuel   *FuelSystem
	logger *zap.Logger
}

func NewPickupCollectSystem(fuel *FuelSystem, logger *zap.Logger) *PickupCollectSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PickupCollectSystem{fuel: fuel, logger: logger}
}

func (s *PickupCollectSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.Delta()
	ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Pickup, t *component.Transform) {
		t.Rotation.Yaw = common.NormalizeAxis(t.Rotation.Yaw + pickupSpinRate*dt)
	})

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	body, ok := ecs.Get(w, player, component.CharacterBodyComponent.Kind())
	if !ok {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}

	for _, hit := range pw.OverlapCapsule(body.Pos, body.Radius, body.HalfHeight, []ecs.Entity{player}) {
		pickup, ok := ecs.Get(w, hit.Entity, component.PickupComponent.Kind())
		if !ok || pickup.Collected {
			continue
		}

		switch pickup.Kind {
		case component.PickupKindFuel:
			if s.fuel == nil || !s.fuel.Refill(w, player) {
				continue
			}
		default:
			s.logger.Warn("unknown pickup kind", zap.String("kind", pickup.Kind))
			continue
		}

		pickup.Collected = true
		s.logger.Debug("pickup collected", zap.String("kind", pickup.Kind), zap.Stringer("entity", hit.Entity))
		ecs.DestroyEntity(w, hit.Entity)
	}
}
