package system

import (
	"github.com/milk9111/gravityfps/ecs"
	"github.com/milk9111/gravityfps/ecs/component"
	"go.uber.org/zap"
)

// HUDPresenter publishes presentation updates into the HUD component of a
// single entity. It satisfies character.HUD and character.Sockets.
type HUDPresenter struct {
	world  *ecs.World
	entity ecs.Entity
	logger *zap.Logger
}

func NewHUDPresenter(w *ecs.World, e ecs.Entity, logger *zap.Logger) *HUDPresenter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !ecs.Has(w, e, component.HUDComponent.Kind()) {
		_ = ecs.Add(w, e, component.HUDComponent.Kind(), &component.HUD{})
	}
	return &HUDPresenter{world: w, entity: e, logger: logger}
}

// State returns the current HUD snapshot, or nil when the entity is gone.
func (h *HUDPresenter) State() *component.HUD {
	if h == nil {
		return nil
	}
	hud, ok := ecs.Get(h.world, h.entity, component.HUDComponent.Kind())
	if !ok {
		return nil
	}
	return hud
}

func (h *HUDPresenter) ShowInvisibility(visible bool) {
	if hud := h.State(); hud != nil {
		hud.Invisibility = visible
		h.logger.Debug("invisibility indicator", zap.Bool("visible", visible))
	}
}

func (h *HUDPresenter) SetFuelPercent(pct float64) {
	if hud := h.State(); hud != nil {
		hud.FuelPercent = pct
	}
}

func (h *HUDPresenter) SetChargePercent(pct float64) {
	if hud := h.State(); hud != nil {
		hud.ChargePercent = pct
	}
}

func (h *HUDPresenter) EquipmentChanged(label string) {
	if hud := h.State(); hud != nil {
		hud.Equipment = label
		h.logger.Debug("equipment changed", zap.String("label", label))
	}
}

func (h *HUDPresenter) SetRadarVisible(visible bool) {
	if hud := h.State(); hud != nil {
		hud.RadarVisible = visible
	}
}

func (h *HUDPresenter) SetFuelVisible(visible bool) {
	if hud := h.State(); hud != nil {
		hud.FuelVisible = visible
	}
}

func (h *HUDPresenter) SetGunVisible(visible bool) {
	if hud := h.State(); hud != nil {
		hud.GunVisible = visible
	}
}

// SetBlips replaces the radar contacts.
func (h *HUDPresenter) SetBlips(blips []component.Blip) {
	if hud := h.State(); hud != nil {
		hud.Blips = append(hud.Blips[:0], blips...)
	}
}
