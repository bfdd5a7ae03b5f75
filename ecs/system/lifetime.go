package system

import (
	"github.com/milk9111/gravityfps/ecs"
	"github.com/milk9111/gravityfps/ecs/component"
)

// LifetimeSystem counts Lifetime components down and destroys entities when
// they expire. Projectiles are skipped; ProjectileSystem expires them so the
// missile registry sees the removal.
type LifetimeSystem struct{}

func NewLifetimeSystem() *LifetimeSystem {
	return &LifetimeSystem{}
}

func (s *LifetimeSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.Delta()
	ecs.ForEach(w, component.LifetimeComponent.Kind(), func(e ecs.Entity, life *component.Lifetime) {
		if life == nil || ecs.Has(w, e, component.ProjectileComponent.Kind()) {
			return
		}

		life.Remaining -= dt
		if life.Remaining > 0 {
			return
		}

		ecs.DestroyEntity(w, e)
	})
}
