package component

import "github.com/go-gl/mathgl/mgl64"

// Prop is a loose physics object that reacts to impulses.
type Prop struct {
	Velocity mgl64.Vec3
	Mass     float64
	Damping  float64
	Grounded bool
}

var PropComponent = NewComponent[Prop]()
