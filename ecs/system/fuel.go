package system

import (
	"github.com/milk9111/gravityfps/ecs"
	"github.com/milk9111/gravityfps/ecs/component"
)

// FlightAbility is told whether the avatar has fuel to fly.
type FlightAbility interface {
	SetFlightAbility(canFly bool)
}

// FuelDisplay shows the remaining fuel.
type FuelDisplay interface {
	SetFuelPercent(pct float64)
}

// FuelSystem meters flight fuel. While thrusting, every tick burns
// Cost / elapsed, where elapsed is the burn time clamped to [0, 1], so
// consumption is steep at the start of a burn and settles at Cost per tick.
// An empty tank grounds the avatar until the burn ends and the tank is
// non-negative again.
type FuelSystem struct {
	ability FlightAbility
	display FuelDisplay
}

func NewFuelSystem(ability FlightAbility, display FuelDisplay) *FuelSystem {
	return &FuelSystem{ability: ability, display: display}
}

const maxFuelOptimization = 1.0

func (s *FuelSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.Delta()
	ecs.ForEach(w, component.FuelComponent.Kind(), func(e ecs.Entity, fuel *component.Fuel) {
		if fuel == nil {
			return
		}

		if !fuel.Thrusting {
			if fuel.Current >= 0 {
				s.setCanFly(fuel, true)
				fuel.Elapsed = 0
			}
			return
		}

		fuel.Elapsed += dt
		if fuel.Elapsed < 0 {
			fuel.Elapsed = 0
		}
		if fuel.Elapsed > maxFuelOptimization {
			fuel.Elapsed = maxFuelOptimization
		}
		if fuel.Elapsed == 0 {
			return
		}
		fuel.Current -= fuel.Cost / fuel.Elapsed
		s.publish(fuel)
	})
}

// Refill tops up e's tank and republishes it.
func (s *FuelSystem) Refill(w *ecs.World, e ecs.Entity) bool {
	fuel, ok := ecs.Get(w, e, component.FuelComponent.Kind())
	if !ok {
		return false
	}
	fuel.Refill()
	s.publish(fuel)
	return true
}

func (s *FuelSystem) publish(fuel *component.Fuel) {
	pct := fuel.Current / fuel.Max
	if fuel.Max <= 0 || pct <= 0 {
		pct = 0
		fuel.Thrusting = false
		s.setCanFly(fuel, false)
	}
	if s.display != nil {
		s.display.SetFuelPercent(pct)
	}
}

func (s *FuelSystem) setCanFly(fuel *component.Fuel, canFly bool) {
	fuel.CanFly = canFly
	if s.ability != nil {
		s.ability.SetFlightAbility(canFly)
	}
}

// FuelMeter starts and stops the flying timer of one entity's tank. It
// satisfies character.FlightMeter.
type FuelMeter struct {
	world  *ecs.World
	entity ecs.Entity
}

func NewFuelMeter(w *ecs.World, e ecs.Entity) *FuelMeter {
	return &FuelMeter{world: w, entity: e}
}

func (m *FuelMeter) UpdateFlightState(thrusting bool) {
	if m == nil {
		return
	}
	fuel, ok := ecs.Get(m.world, m.entity, component.FuelComponent.Kind())
	if !ok {
		return
	}
	fuel.Thrusting = thrusting
	if thrusting {
		fuel.Elapsed = 0
	}
}
