package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gravityfps/common"
)

// Transform places an actor. Position is the centre of its collider.
type Transform struct {
	Position mgl64.Vec3
	Rotation common.Rotator
}

var TransformComponent = NewComponent[Transform]()
