package common

import "github.com/go-gl/mathgl/mgl64"

var (
	Up   = mgl64.Vec3{0, 0, 1}
	Zero = mgl64.Vec3{}
)

// SafeNormal returns v normalized, or the zero vector when v is too short
// to have a direction.
func SafeNormal(v mgl64.Vec3) mgl64.Vec3 {
	if v.LenSqr() <= Epsilon*Epsilon {
		return mgl64.Vec3{}
	}
	return v.Normalize()
}

func SafeNormal2(v mgl64.Vec2) mgl64.Vec2 {
	if v.LenSqr() <= Epsilon*Epsilon {
		return mgl64.Vec2{}
	}
	return v.Normalize()
}

// Flatten drops the vertical component.
func Flatten(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), v.Y(), 0}
}

// ClampMagnitude scales v down so its length does not exceed max.
func ClampMagnitude(v mgl64.Vec3, max float64) mgl64.Vec3 {
	if max <= 0 {
		return mgl64.Vec3{}
	}
	lenSq := v.LenSqr()
	if lenSq <= max*max {
		return v
	}
	return v.Mul(max / v.Len())
}

// RotateYaw rotates v around the up axis by deg degrees.
func RotateYaw(v mgl64.Vec3, deg float64) mgl64.Vec3 {
	if NearlyZero(deg) {
		return v
	}
	return mgl64.Rotate3DZ(mgl64.DegToRad(deg)).Mul3x1(v)
}

func IsZero(v mgl64.Vec3) bool {
	return v.LenSqr() <= Epsilon*Epsilon
}
