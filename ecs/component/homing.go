package component

// Homing steers a projectile toward Target once a lock is acquired.
type Homing struct {
	Target   uint64
	Locked   bool
	Accel    float64
	MaxSpeed float64
	Acquired bool
}

var HomingComponent = NewComponent[Homing]()
