package component

const PickupKindFuel = "fuel"

// Pickup is a collectible consumed when the player overlaps it.
type Pickup struct {
	Kind      string
	Collected bool
}

var PickupComponent = NewComponent[Pickup]()
