package component

import "github.com/go-gl/mathgl/mgl64"

// Input is the player's input for the current tick. Held state persists
// between ticks; edge flags are cleared by InputSystem at the start of
// every tick.
type Input struct {
	Move     mgl64.Vec2
	MoveHeld bool
	Look     mgl64.Vec2

	PrimaryHeld   bool
	SecondaryHeld bool

	MoveReleased      bool
	JumpPressed       bool
	JumpReleased      bool
	ThrustStart       bool
	ThrustStop        bool
	CrouchStart       bool
	CrouchStop        bool
	SwapArmour        bool
	Scroll            float64
	PrimaryPressed    bool
	PrimaryReleased   bool
	SecondaryPressed  bool
	SecondaryReleased bool
	MiddlePressed     bool
	Interact          bool
	ToggleInvisible   bool
	BiopadRemove      bool
}

// ClearEdges drops every one-tick flag and keeps held state.
func (in *Input) ClearEdges() {
	if in == nil {
		return
	}
	*in = Input{
		Move:          in.Move,
		MoveHeld:      in.MoveHeld,
		PrimaryHeld:   in.PrimaryHeld,
		SecondaryHeld: in.SecondaryHeld,
	}
}

var InputComponent = NewComponent[Input]()
