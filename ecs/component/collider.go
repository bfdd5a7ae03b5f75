package component

// Collider is an upright prism: a circle of Radius, or a box of HalfX by
// HalfY when Radius is zero, extending HalfHeight above and below the
// actor's position.
type Collider struct {
	Radius     float64
	HalfX      float64
	HalfY      float64
	HalfHeight float64
	Static     bool
	// Sensor colliders report overlaps but never block traces or movement.
	Sensor bool
}

func (c Collider) Valid() bool {
	if c.HalfHeight <= 0 {
		return false
	}
	return c.Radius > 0 || (c.HalfX > 0 && c.HalfY > 0)
}

var ColliderComponent = NewComponent[Collider]()
