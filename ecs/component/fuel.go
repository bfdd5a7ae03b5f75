package component

// Fuel is the flight resource of the armoured avatar.
type Fuel struct {
	Current float64
	Max     float64
	// Cost scales consumption per tick while thrusting.
	Cost   float64
	CanFly bool

	// Thrusting and Elapsed are the flying timer: Elapsed counts seconds of
	// the current burn, clamped to [0, 1].
	Thrusting bool
	Elapsed   float64
}

// Percent returns the remaining fuel in 0..1.
func (f *Fuel) Percent() float64 {
	if f == nil || f.Max <= 0 {
		return 0
	}
	p := f.Current / f.Max
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Refill tops the tank back up to Max.
func (f *Fuel) Refill() {
	if f == nil {
		return
	}
	f.Current = f.Max
}

var FuelComponent = NewComponent[Fuel]()
