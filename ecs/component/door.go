package component

// Door runs Script when the player interacts with it. An open door stops
// blocking movement and traces.
type Door struct {
	Script string
	Open   bool
}

var DoorComponent = NewComponent[Door]()
