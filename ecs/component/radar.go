package component

import "github.com/go-gl/mathgl/mgl64"

// Blip is a radar contact in widget space, centred on the player.
type Blip struct {
	Entity uint64
	Offset mgl64.Vec2
}

// Radar periodically sweeps around its owner for targetable actors.
type Radar struct {
	Range        float64
	WidgetRadius float64
	Interval     float64
	Elapsed      float64
	Targets      []uint64
	Blips        []Blip
	Visible      bool
}

var RadarComponent = NewComponent[Radar]()
