package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rotator is an orientation in degrees. Yaw 0 faces +X, yaw 90 faces +Y,
// positive pitch looks up.
type Rotator struct {
	Pitch float64
	Yaw   float64
	Roll  float64
}

// Forward returns the unit direction the rotator faces.
func (r Rotator) Forward() mgl64.Vec3 {
	pitch := mgl64.DegToRad(r.Pitch)
	yaw := mgl64.DegToRad(r.Yaw)
	cp := math.Cos(pitch)
	return mgl64.Vec3{cp * math.Cos(yaw), cp * math.Sin(yaw), math.Sin(pitch)}
}

// Right returns the horizontal unit direction to the right of the yaw.
func (r Rotator) Right() mgl64.Vec3 {
	yaw := mgl64.DegToRad(r.Yaw)
	return mgl64.Vec3{-math.Sin(yaw), math.Cos(yaw), 0}
}

// Rotate applies the rotator to a local-space vector (x forward, y right, z up).
func (r Rotator) Rotate(local mgl64.Vec3) mgl64.Vec3 {
	up := r.Right().Cross(r.Forward()).Mul(-1)
	return r.Forward().Mul(local.X()).Add(r.Right().Mul(local.Y())).Add(up.Mul(local.Z()))
}

func (r Rotator) Normalized() Rotator {
	return Rotator{
		Pitch: NormalizeAxis(r.Pitch),
		Yaw:   NormalizeAxis(r.Yaw),
		Roll:  NormalizeAxis(r.Roll),
	}
}
