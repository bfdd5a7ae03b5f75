package component

import "github.com/go-gl/mathgl/mgl64"

// Cube teleports the closest actor to Destination shortly after it lands.
type Cube struct {
	Destination mgl64.Vec3
	Delay       float64
	Armed       bool
	Remaining   float64
}

var CubeComponent = NewComponent[Cube]()
