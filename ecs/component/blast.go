package component

// Blast destroys what a projectile hits and pushes nearby props away.
type Blast struct {
	Radius  float64
	Impulse float64
}

var BlastComponent = NewComponent[Blast]()
