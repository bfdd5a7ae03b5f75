package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gravityfps/common"
	"github.com/milk9111/gravityfps/ecs"
	"github.com/milk9111/gravityfps/ecs/component"
	"github.com/milk9111/gravityfps/sensor"
	"go.uber.org/zap"
)

// BlipDisplay shows radar contacts.
type BlipDisplay interface {
	SetBlips(blips []component.Blip)
}

// radarYawOffset turns the owner's forward to the top of the widget.
const radarYawOffset = 90.0

// RadarSystem polls a sphere around each Radar owner every Interval seconds
// for targetable actors, and projects the remembered contacts into widget
// space every tick.
type RadarSystem struct {
	sensor  *sensor.Sensor
	display BlipDisplay
	logger  *zap.Logger
}

func NewRadarSystem(s *sensor.Sensor, display BlipDisplay, logger *zap.Logger) *RadarSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RadarSystem{sensor: s, display: display, logger: logger}
}

func (s *RadarSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.Delta()
	ecs.ForEach2(w, component.RadarComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, radar *component.Radar, t *component.Transform) {
		if radar == nil || t == nil {
			return
		}

		radar.Elapsed += dt
		if radar.Elapsed >= radar.Interval {
			radar.Elapsed = 0
			s.detect(w, e, radar, t.Position)
		}

		radar.Blips = ProjectBlips(w, radar, t.Position, t.Rotation.Yaw)
		if s.display != nil {
			s.display.SetBlips(radar.Blips)
		}
	})
}

func (s *RadarSystem) detect(w *ecs.World, owner ecs.Entity, radar *component.Radar, pos mgl64.Vec3) {
	if s.sensor == nil {
		return
	}
	view := sensor.View{Origin: pos, Forward: common.Up}
	found := s.sensor.Sphere(view, radar.Range, radar.Range, []ecs.Entity{owner})

	radar.Targets = radar.Targets[:0]
	for _, c := range found {
		if !sensor.IsTargetable(w, c.Entity) {
			continue
		}
		radar.Targets = append(radar.Targets, uint64(c.Entity))
	}
	s.logger.Debug("radar sweep", zap.Int("hits", len(found)), zap.Int("targets", len(radar.Targets)))
}

// ProjectBlips maps each live target into widget space: the displacement
// from pos is rotated so the owner's facing points up, flattened, and
// scaled from Range to WidgetRadius. Contacts outside the widget are
// dropped.
func ProjectBlips(w *ecs.World, radar *component.Radar, pos mgl64.Vec3, yaw float64) []component.Blip {
	if radar == nil || radar.Range <= 0 {
		return nil
	}
	scale := radar.WidgetRadius / radar.Range

	var blips []component.Blip
	for _, id := range radar.Targets {
		t, ok := ecs.Get(w, ecs.Entity(id), component.TransformComponent.Kind())
		if !ok {
			continue
		}
		disp := common.RotateYaw(t.Position.Sub(pos), -(yaw + radarYawOffset))
		offset := mgl64.Vec2{disp.X(), disp.Y()}.Mul(scale)
		if offset.Len() >= radar.WidgetRadius {
			continue
		}
		blips = append(blips, component.Blip{Entity: id, Offset: offset})
	}
	return blips
}
