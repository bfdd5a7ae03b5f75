package component

// PressurePlate runs Script hooks when actors step on or off it. Target
// names the actor the script drives.
type PressurePlate struct {
	Script      string
	Target      string
	Overlapping map[uint64]bool
	Pressed     bool
}

var PressurePlateComponent = NewComponent[PressurePlate]()
